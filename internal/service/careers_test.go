package service

import (
	"testing"

	"github.com/fortuna/dugout/internal/scoring"
	"github.com/fortuna/dugout/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCareersMergesSpellingVariants(t *testing.T) {
	seasons := map[int][]store.PlayerSeason{
		2022: {{
			RosterPlayer:  store.RosterPlayer{Name: "José Ramírez", TeamName: "The Bashers", Manager: "Ryan", PositionType: "B"},
			Stats:         scoring.StatLine{"HR": 29},
			FantasyPoints: 812.4,
		}},
		2023: {{
			RosterPlayer:  store.RosterPlayer{Name: "Jose Ramirez", TeamName: "Draft Pool", Manager: "Logan C", PositionType: "B"},
			FantasyPoints: 790.1,
		}},
	}

	careers := BuildCareers(seasons)
	require.Len(t, careers, 1)

	career, ok := careers["jose ramirez"]
	require.True(t, ok)
	assert.Equal(t, "José Ramírez", career.Name) // first spelling seen wins
	require.Len(t, career.Seasons, 2)
	assert.Equal(t, 2022, career.Seasons[0].Year)
	assert.Equal(t, 2023, career.Seasons[1].Year)
	assert.Equal(t, "Logan C", career.Seasons[1].Manager)
	assert.Equal(t, 1602.5, career.CareerFantasyPoints)
}

func TestBuildCareersKeepsUnmatchedRosterEntries(t *testing.T) {
	seasons := map[int][]store.PlayerSeason{
		2023: {{
			RosterPlayer: store.RosterPlayer{Name: "Prospect Nobody", PositionType: "B"},
			Stats:        scoring.StatLine{},
		}},
	}

	careers := BuildCareers(seasons)
	require.Len(t, careers, 1)
	assert.Equal(t, 0.0, careers["prospect nobody"].CareerFantasyPoints)
}
