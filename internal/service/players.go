package service

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/fortuna/dugout/internal/ingest/fangraphs"
	"github.com/fortuna/dugout/internal/reconcile"
	"github.com/fortuna/dugout/internal/scoring"
	"github.com/fortuna/dugout/internal/store"
)

const maxSuggestions = 3

// RosterSource yields the league's rosters and scoring declarations for a
// season.
type RosterSource interface {
	Rosters(ctx context.Context, year int) ([]store.RosterPlayer, error)
	ScoringSettings(ctx context.Context, year int) ([]scoring.DeclaredStat, error)
}

// StatSource yields the season-long MLB leaderboards.
type StatSource interface {
	BattingStats(ctx context.Context, year int) ([]fangraphs.StatRow, error)
	PitchingStats(ctx context.Context, year int) ([]fangraphs.StatRow, error)
}

// PlayerService resolves every roster entry against the stat provider and
// scores the matches under the season's point tables.
type PlayerService struct {
	rosters RosterSource
	stats   StatSource
}

func NewPlayerService(rosters RosterSource, stats StatSource) *PlayerService {
	return &PlayerService{rosters: rosters, stats: stats}
}

// BuildSeason produces the season's enriched player list, sorted by fantasy
// points, plus the roster entries that resolved to no stat row. Unmatched
// players keep their roster identity with empty stats rather than being
// dropped, so team pages stay complete.
func (s *PlayerService) BuildSeason(ctx context.Context, year int) ([]store.PlayerSeason, []store.UnmatchedPlayer, error) {
	roster, err := s.rosters.Rosters(ctx, year)
	if err != nil {
		return nil, nil, fmt.Errorf("rosters for %d: %w", year, err)
	}
	if len(roster) == 0 {
		return nil, nil, fmt.Errorf("no rosters returned for %d", year)
	}

	declared, err := s.rosters.ScoringSettings(ctx, year)
	if err != nil {
		log.Printf("⚠ [players] scoring settings for %d unavailable, using defaults: %v", year, err)
	}
	battingTable, pitchingTable := scoring.BuildPointTables(declared)

	batting, err := s.stats.BattingStats(ctx, year)
	if err != nil {
		return nil, nil, fmt.Errorf("batting leaderboard for %d: %w", year, err)
	}
	pitching, err := s.stats.PitchingStats(ctx, year)
	if err != nil {
		return nil, nil, fmt.Errorf("pitching leaderboard for %d: %w", year, err)
	}

	battingRows := fangraphs.ByName(batting)
	pitchingRows := fangraphs.ByName(pitching)
	battingNames := fangraphs.Names(batting)
	pitchingNames := fangraphs.Names(pitching)
	battingMatcher := reconcile.NewMatcher(battingNames)
	pitchingMatcher := reconcile.NewMatcher(pitchingNames)

	players := make([]store.PlayerSeason, 0, len(roster))
	var unmatched []store.UnmatchedPlayer

	for _, entry := range roster {
		season := store.PlayerSeason{RosterPlayer: entry, Stats: scoring.StatLine{}}

		matcher, rows, names := battingMatcher, battingRows, battingNames
		if entry.PositionType == "P" {
			matcher, rows, names = pitchingMatcher, pitchingRows, pitchingNames
		}

		if matched, ok := matcher.Match(entry.Name); ok {
			row := rows[matched]
			season.Stats = row.Stats.Clone()
			season.MLBTeam = row.Team
			if entry.PositionType == "P" {
				season.FantasyPoints = scoring.ScorePitching(season.Stats, pitchingTable)
			} else {
				deriveSingles(season.Stats)
				season.FantasyPoints = scoring.ScoreBatting(season.Stats, battingTable)
			}
		} else {
			unmatched = append(unmatched, store.UnmatchedPlayer{
				Name:         entry.Name,
				PositionType: entry.PositionType,
				TeamName:     entry.TeamName,
				Suggestions:  reconcile.Suggest(entry.Name, names, maxSuggestions),
			})
		}

		players = append(players, season)
	}

	sort.SliceStable(players, func(i, j int) bool {
		return players[i].FantasyPoints > players[j].FantasyPoints
	})

	matched := len(players) - len(unmatched)
	log.Printf("✓ [players] %d: matched %d/%d roster entries", year, matched, len(players))
	return players, unmatched, nil
}

// deriveSingles materializes 1B into the stat line when the leaderboard only
// carries total hits, so the persisted stats show what was actually scored.
func deriveSingles(stats scoring.StatLine) {
	if _, ok := stats["1B"]; ok {
		return
	}
	hits, ok := stats["H"]
	if !ok {
		return
	}
	stats["1B"] = hits - stats["2B"] - stats["3B"] - stats["HR"]
}
