package service

import (
	"math"
	"sort"

	"github.com/fortuna/dugout/internal/store"
)

// playoffRankCutoff is the worst finish that still counts as a playoff
// appearance in this league's format.
const playoffRankCutoff = 6

// BuildManagerStats aggregates every manager's career from the per-season
// standings. Nicknames are resolved to canonical identities first, so the
// same human never splits into two records, and the 2019 playoff correction
// is applied before anything is counted.
func BuildManagerStats(seasons map[int][]store.Standing) ([]store.ManagerRecord, []store.ManagerHistoryRow) {
	years := make([]int, 0, len(seasons))
	for year := range seasons {
		years = append(years, year)
	}
	sort.Ints(years)

	records := make(map[string]*store.ManagerRecord)
	var order []string

	for _, year := range years {
		standings := seasons[year]
		if year == 2019 {
			standings = Correct2019Playoffs(standings)
		}

		for _, st := range standings {
			manager := ResolveManager(st.Manager, year, st.TeamKey, st.TeamName)
			if manager == "" {
				continue
			}

			rec, ok := records[manager]
			if !ok {
				rec = &store.ManagerRecord{ManagerName: manager, FirstSeason: year}
				records[manager] = rec
				order = append(order, manager)
			}

			rec.TotalWins += st.Wins
			rec.TotalLosses += st.Losses
			rec.TotalTies += st.Ties
			rec.TotalPointsFor += st.PointsFor
			rec.SeasonsPlayed++
			switch {
			case st.Rank == 1:
				rec.Championships++
			case st.Rank == 2:
				rec.RunnerUps++
			}
			if st.Rank >= 1 && st.Rank <= playoffRankCutoff {
				rec.PlayoffAppearances++
			}
			rec.SeasonHistory = append(rec.SeasonHistory, store.ManagerSeason{
				Year:      year,
				TeamName:  st.TeamName,
				Rank:      st.Rank,
				Wins:      st.Wins,
				Losses:    st.Losses,
				PointsFor: st.PointsFor,
			})
		}
	}

	out := make([]store.ManagerRecord, 0, len(order))
	var history []store.ManagerHistoryRow
	for _, manager := range order {
		rec := records[manager]
		// win pct is decided games only; ties stay out of the denominator
		games := rec.TotalWins + rec.TotalLosses
		if games > 0 {
			rec.WinPct = round3(float64(rec.TotalWins) / float64(games))
		}
		finishSum := 0
		for _, season := range rec.SeasonHistory {
			finishSum += season.Rank
		}
		if rec.SeasonsPlayed > 0 {
			rec.AvgFinish = round1(float64(finishSum) / float64(rec.SeasonsPlayed))
		}
		rec.TotalPointsFor = round1(rec.TotalPointsFor)
		out = append(out, *rec)

		for _, season := range rec.SeasonHistory {
			history = append(history, store.ManagerHistoryRow{Manager: manager, ManagerSeason: season})
		}
	}

	// Career record first by titles, then by win rate, for the site's
	// all-time table.
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Championships != out[j].Championships {
			return out[i].Championships > out[j].Championships
		}
		return out[i].WinPct > out[j].WinPct
	})

	return out, history
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
