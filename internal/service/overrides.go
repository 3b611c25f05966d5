// Package service composes the providers, the reconciliation core, and the
// scoring engine into the league's collection pipeline.
package service

import (
	"sort"
	"strings"

	"github.com/fortuna/dugout/internal/store"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Manager identity corrections. These are per-year data fixes for seasons
// where two managers shared a Yahoo nickname, not rules: the tables below
// are consulted before any aggregation and never generalized.

// managerTeam2023 splits the two Logans by 2023 team name.
var managerTeam2023 = map[string]string{
	"Draft Pool":           "Logan C",
	"Peanut Butter & Elly": "Logan S",
}

// loganTeamKeys2023 splits the two Logans by 2023 team key, which survives
// mid-season team renames.
var loganTeamKeys2023 = map[string]string{
	"422.l.6780.t.4":  "Logan C",
	"422.l.6780.t.12": "Logan S",
}

// correct2019Ranks overrides the recorded 2019 final standings with the
// actual playoff results, which Yahoo archived wrong.
var correct2019Ranks = map[string]int{
	"Ryan":  1,
	"Rich":  2,
	"Tyler": 3,
}

var titleCaser = cases.Title(language.English)

// ResolveManager maps a raw Yahoo nickname to the manager's canonical
// identity for a season.
func ResolveManager(raw string, year int, teamKey, teamName string) string {
	name := titleCaser.String(strings.TrimSpace(raw))

	switch name {
	case "Logan":
		switch {
		case year == 2023:
			if m, ok := loganTeamKeys2023[teamKey]; ok {
				return m
			}
			if m, ok := managerTeam2023[teamName]; ok {
				return m
			}
			if strings.Contains(teamName, "Draft Pool") {
				return "Logan C"
			}
			if strings.Contains(teamName, "Peanut Butter") || strings.Contains(teamName, "Elly") {
				return "Logan S"
			}
			return "Logan"
		case year >= 2020 && year <= 2022:
			return "Logan C"
		case year >= 2024:
			return "Logan S"
		}
	case "Josh":
		if year >= 2019 {
			if strings.HasSuffix(teamKey, "t.1") {
				return "Josh B"
			}
			if year <= 2022 {
				return "Josh S"
			}
		}
		return "Josh"
	}

	return name
}

// Correct2019Playoffs rewrites the 2019 standings with the real playoff
// finish and re-sorts by rank. Other seasons pass through untouched.
func Correct2019Playoffs(standings []store.Standing) []store.Standing {
	corrected := make([]store.Standing, len(standings))
	copy(corrected, standings)

	for i := range corrected {
		if rank, ok := correct2019Ranks[corrected[i].Manager]; ok {
			corrected[i].Rank = rank
		}
	}

	sort.SliceStable(corrected, func(i, j int) bool {
		return corrected[i].Rank < corrected[j].Rank
	})
	return corrected
}
