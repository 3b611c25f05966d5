package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/fortuna/dugout/internal/scoring"
	"github.com/fortuna/dugout/internal/store"
)

// LeagueSource is the full provider surface the collector drives. It is the
// Yahoo league client in production and a stub in tests.
type LeagueSource interface {
	RosterSource
	Standings(ctx context.Context, year int) ([]store.Standing, error)
	Teams(ctx context.Context, year int) ([]store.Team, error)
	Transactions(ctx context.Context, year, maxPerType int) ([]store.Transaction, error)
	SeasonScores(ctx context.Context, year, numWeeks int) ([]store.WeekScore, error)
	Draft(ctx context.Context, year int) ([]map[string]any, error)
}

// ProgressEvent is one step of a collection run, broadcast to subscribers
// while the run is in flight.
type ProgressEvent struct {
	Stage   string `json:"stage"`
	Season  int    `json:"season,omitempty"`
	Message string `json:"message"`
	Done    bool   `json:"done"`
	Error   string `json:"error,omitempty"`
}

// Progress receives collection run events. A nil Progress is valid and
// silently drops them.
type Progress func(ProgressEvent)

// CollectorConfig carries the league constants a run needs.
type CollectorConfig struct {
	LeagueName        string
	CurrentSeason     int
	HistoricalSeasons []int
	FoundedYear       int
	TotalTeams        int
	MaxWeeks          int
	MaxTransactions   int
}

// Collector runs the collection pipelines end to end: provider fetch,
// reconciliation and scoring, then archive writes.
type Collector struct {
	league   LeagueSource
	players  *PlayerService
	archive  *store.Archive
	cfg      CollectorConfig
	progress Progress
}

func NewCollector(league LeagueSource, players *PlayerService, archive *store.Archive, cfg CollectorConfig, progress Progress) *Collector {
	if cfg.MaxWeeks == 0 {
		cfg.MaxWeeks = 25
	}
	if cfg.MaxTransactions == 0 {
		cfg.MaxTransactions = 100
	}
	return &Collector{league: league, players: players, archive: archive, cfg: cfg, progress: progress}
}

func (c *Collector) emit(ev ProgressEvent) {
	if c.progress != nil {
		c.progress(ev)
	}
}

// InitialSetup archives every historical season plus the current one, then
// rebuilds the manager aggregates and league info. Seasons that already have
// final standings on disk are skipped, so reruns only fill gaps.
func (c *Collector) InitialSetup(ctx context.Context) error {
	log.Printf("[collector] initial setup: %d historical seasons + %d", len(c.cfg.HistoricalSeasons), c.cfg.CurrentSeason)

	for _, year := range c.cfg.HistoricalSeasons {
		if c.archive.HasStandings(year) {
			log.Printf("✓ [collector] %d already archived, skipping", year)
			continue
		}
		if err := c.collectSeason(ctx, year); err != nil {
			return fmt.Errorf("season %d: %w", year, err)
		}
	}
	if err := c.collectSeason(ctx, c.cfg.CurrentSeason); err != nil {
		return fmt.Errorf("season %d: %w", c.cfg.CurrentSeason, err)
	}

	if err := c.RebuildManagers(); err != nil {
		return err
	}
	if err := c.writeLeagueInfo(); err != nil {
		return err
	}
	c.emit(ProgressEvent{Stage: "setup", Message: "initial setup complete", Done: true})
	return nil
}

// WeeklyUpdate refreshes the current season's artifacts and the manager
// aggregates that depend on them.
func (c *Collector) WeeklyUpdate(ctx context.Context) error {
	log.Printf("[collector] weekly update for %d", c.cfg.CurrentSeason)
	if err := c.collectSeason(ctx, c.cfg.CurrentSeason); err != nil {
		return fmt.Errorf("season %d: %w", c.cfg.CurrentSeason, err)
	}
	if err := c.RebuildManagers(); err != nil {
		return err
	}
	if err := c.writeLeagueInfo(); err != nil {
		return err
	}
	c.emit(ProgressEvent{Stage: "weekly", Season: c.cfg.CurrentSeason, Message: "weekly update complete", Done: true})
	return nil
}

// PlayerDataSetup builds the enriched player list for every season, then the
// cross-season careers.
func (c *Collector) PlayerDataSetup(ctx context.Context) error {
	seasons := append(append([]int{}, c.cfg.HistoricalSeasons...), c.cfg.CurrentSeason)
	for _, year := range seasons {
		if err := c.collectPlayers(ctx, year); err != nil {
			c.emit(ProgressEvent{Stage: "players", Season: year, Error: err.Error()})
			log.Printf("⚠ [collector] player stats for %d failed: %v", year, err)
			continue
		}
	}
	return c.RebuildCareers()
}

// FullWeeklyUpdate is the scheduled in-season run: league artifacts, current
// season player stats, careers.
func (c *Collector) FullWeeklyUpdate(ctx context.Context) error {
	if err := c.WeeklyUpdate(ctx); err != nil {
		return err
	}
	if err := c.collectPlayers(ctx, c.cfg.CurrentSeason); err != nil {
		return err
	}
	return c.RebuildCareers()
}

// TestYear collects a single season end to end without touching the
// cross-season aggregates, for verifying credentials and key overrides one
// year at a time.
func (c *Collector) TestYear(ctx context.Context, year int) error {
	if err := c.collectSeason(ctx, year); err != nil {
		return err
	}
	if err := c.collectPlayers(ctx, year); err != nil {
		log.Printf("⚠ [collector] player stats for %d failed: %v", year, err)
	}
	return nil
}

func (c *Collector) collectSeason(ctx context.Context, year int) error {
	c.emit(ProgressEvent{Stage: "season", Season: year, Message: "collecting league data"})
	log.Printf("[collector] collecting %d", year)

	standings, err := c.league.Standings(ctx, year)
	if err != nil {
		return fmt.Errorf("standings: %w", err)
	}
	// Standings are archived as served; the 2019 playoff correction is
	// applied at aggregation time so the raw artifact stays the provider's.
	if err := c.archive.SaveStandings(year, standings); err != nil {
		return err
	}

	teams, err := c.league.Teams(ctx, year)
	if err != nil {
		return fmt.Errorf("teams: %w", err)
	}
	if err := c.archive.SaveTeams(year, teams); err != nil {
		return err
	}

	scores, err := c.league.SeasonScores(ctx, year, c.cfg.MaxWeeks)
	if err != nil {
		log.Printf("⚠ [collector] weekly scores for %d: %v", year, err)
	} else if err := c.archive.SaveScores(year, scores); err != nil {
		return err
	}

	transactions, err := c.league.Transactions(ctx, year, c.cfg.MaxTransactions)
	if err != nil {
		log.Printf("⚠ [collector] transactions for %d: %v", year, err)
	} else if err := c.archive.SaveTransactions(year, transactions); err != nil {
		return err
	}

	declared, err := c.league.ScoringSettings(ctx, year)
	if err != nil {
		log.Printf("⚠ [collector] scoring settings for %d: %v", year, err)
	} else {
		batting, pitching := scoring.BuildPointTables(declared)
		settings := store.ScoringSettings{Batting: batting, Pitching: pitching}
		if err := c.archive.SaveScoringSettings(year, settings); err != nil {
			return err
		}
	}

	draft, err := c.league.Draft(ctx, year)
	if err != nil {
		log.Printf("⚠ [collector] draft for %d: %v", year, err)
	} else if len(draft) > 0 {
		if err := c.archive.SaveDraft(year, draft); err != nil {
			return err
		}
	}

	log.Printf("✓ [collector] %d archived (%d teams, %d score rows)", year, len(teams), len(scores))
	return nil
}

func (c *Collector) collectPlayers(ctx context.Context, year int) error {
	c.emit(ProgressEvent{Stage: "players", Season: year, Message: "building player stats"})

	players, unmatched, err := c.players.BuildSeason(ctx, year)
	if err != nil {
		return err
	}
	if err := c.archive.SavePlayerStats(year, players); err != nil {
		return err
	}
	if err := c.archive.SaveUnmatched(year, unmatched); err != nil {
		return err
	}

	c.emit(ProgressEvent{
		Stage:   "players",
		Season:  year,
		Message: fmt.Sprintf("%d players, %d unmatched", len(players), len(unmatched)),
		Done:    true,
	})
	return nil
}

// RebuildManagers recomputes the manager aggregates from every archived
// standings file.
func (c *Collector) RebuildManagers() error {
	seasons := make(map[int][]store.Standing)
	for _, year := range append(append([]int{}, c.cfg.HistoricalSeasons...), c.cfg.CurrentSeason) {
		standings, err := c.archive.LoadStandings(year)
		if err != nil {
			if store.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("standings for %d: %w", year, err)
		}
		seasons[year] = standings
	}

	records, history := BuildManagerStats(seasons)
	if err := c.archive.SaveManagerStats(records); err != nil {
		return err
	}
	if err := c.archive.SaveManagerHistory(history); err != nil {
		return err
	}
	log.Printf("✓ [collector] manager stats rebuilt for %d managers across %d seasons", len(records), len(seasons))
	return nil
}

// RebuildCareers recomputes cross-season player careers from every archived
// player stats file.
func (c *Collector) RebuildCareers() error {
	seasons := make(map[int][]store.PlayerSeason)
	for _, year := range append(append([]int{}, c.cfg.HistoricalSeasons...), c.cfg.CurrentSeason) {
		players, err := c.archive.LoadPlayerStats(year)
		if err != nil {
			if store.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("player stats for %d: %w", year, err)
		}
		seasons[year] = players
	}

	careers := BuildCareers(seasons)
	if err := c.archive.SaveCareers(careers); err != nil {
		return err
	}
	log.Printf("✓ [collector] careers rebuilt for %d players", len(careers))
	return nil
}

func (c *Collector) writeLeagueInfo() error {
	return c.archive.SaveLeagueInfo(store.LeagueInfo{
		LeagueName:    c.cfg.LeagueName,
		Founded:       c.cfg.FoundedYear,
		CurrentSeason: c.cfg.CurrentSeason,
		TotalTeams:    c.cfg.TotalTeams,
		LeagueType:    "head-to-head points",
		LastUpdated:   time.Now().UTC().Format(time.RFC3339),
	})
}
