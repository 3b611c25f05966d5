package service

import (
	"sort"

	"github.com/fortuna/dugout/internal/reconcile"
	"github.com/fortuna/dugout/internal/store"
)

// BuildCareers folds every season's player list into cross-season careers,
// keyed by normalized name so that "José Ramírez" in one season and a
// mangled "Jos\xc3\xa9 Ramirez" in another land in the same record. Roster
// entries that never matched a stat row still appear, carrying their
// rostered seasons at zero points.
func BuildCareers(seasons map[int][]store.PlayerSeason) map[string]store.PlayerCareer {
	years := make([]int, 0, len(seasons))
	for year := range seasons {
		years = append(years, year)
	}
	sort.Ints(years)

	careers := make(map[string]store.PlayerCareer)
	for _, year := range years {
		for _, player := range seasons[year] {
			key := reconcile.NormalizeName(player.Name)
			if key == "" {
				continue
			}

			career, ok := careers[key]
			if !ok {
				career = store.PlayerCareer{Name: player.Name}
			}
			career.Seasons = append(career.Seasons, store.CareerSeason{
				Year:          year,
				TeamName:      player.TeamName,
				Manager:       player.Manager,
				FantasyPoints: player.FantasyPoints,
				PositionType:  player.PositionType,
				Stats:         player.Stats,
			})
			career.CareerFantasyPoints = round1(career.CareerFantasyPoints + player.FantasyPoints)
			careers[key] = career
		}
	}

	return careers
}
