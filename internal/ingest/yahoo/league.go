package yahoo

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/fortuna/dugout/internal/scoring"
	"github.com/fortuna/dugout/internal/store"
)

// League wraps the client with league-level operations for a given game code.
type League struct {
	client *Client

	// keyOverrides pins specific seasons to a league key, for years where the
	// account carried more than one league.
	keyOverrides map[int]string

	keyCache map[int]string
}

// NewLeague creates league operations over the client. overrides may be nil.
func NewLeague(client *Client, overrides map[int]string) *League {
	return &League{
		client:       client,
		keyOverrides: overrides,
		keyCache:     map[int]string{},
	}
}

// LeagueKey resolves the league key for a season, preferring the per-year
// override table, then the first league on the signed-in account.
func (l *League) LeagueKey(ctx context.Context, year int) (string, error) {
	if key, ok := l.keyOverrides[year]; ok {
		log.Printf("[yahoo] Using override league key for %d: %s", year, key)
		return key, nil
	}
	if key, ok := l.keyCache[year]; ok {
		return key, nil
	}

	resource := fmt.Sprintf("users;use_login=1/games;game_codes=mlb;seasons=%d/leagues", year)
	payload, err := l.client.getJSON(ctx, resource)
	if err != nil {
		return "", fmt.Errorf("listing leagues for %d: %w", year, err)
	}

	keys := parseLeagueKeys(payload)
	if len(keys) == 0 {
		return "", fmt.Errorf("no league found for %d", year)
	}

	l.keyCache[year] = keys[0]
	return keys[0], nil
}

// Standings returns the season standings in rank order.
func (l *League) Standings(ctx context.Context, year int) ([]store.Standing, error) {
	payload, err := l.fetchStandings(ctx, year)
	if err != nil {
		return nil, err
	}
	standings, _ := parseStandings(payload)
	return standings, nil
}

// Teams returns team identity rows for the season.
func (l *League) Teams(ctx context.Context, year int) ([]store.Team, error) {
	payload, err := l.fetchStandings(ctx, year)
	if err != nil {
		return nil, err
	}
	_, teams := parseStandings(payload)
	return teams, nil
}

func (l *League) fetchStandings(ctx context.Context, year int) (map[string]any, error) {
	key, err := l.LeagueKey(ctx, year)
	if err != nil {
		return nil, err
	}
	payload, err := l.client.getJSON(ctx, fmt.Sprintf("league/%s/standings", key))
	if err != nil {
		return nil, fmt.Errorf("fetching standings for %d: %w", year, err)
	}
	return payload, nil
}

// Rosters returns every rostered player across all teams for the season.
// A team whose roster call fails is logged and skipped; the rest proceed.
func (l *League) Rosters(ctx context.Context, year int) ([]store.RosterPlayer, error) {
	teams, err := l.Teams(ctx, year)
	if err != nil {
		return nil, err
	}

	var players []store.RosterPlayer
	for _, team := range teams {
		payload, err := l.client.getJSON(ctx, fmt.Sprintf("team/%s/roster/players", team.TeamKey))
		if err != nil {
			log.Printf("[yahoo] ⚠ Could not get roster for %s: %v", team.TeamName, err)
			continue
		}
		players = append(players, parseRoster(payload, team)...)
	}
	return players, nil
}

// ScoringSettings returns the league's declared stat categories and point
// values. An empty slice is a valid result; the scorer falls back to
// defaults.
func (l *League) ScoringSettings(ctx context.Context, year int) ([]scoring.DeclaredStat, error) {
	key, err := l.LeagueKey(ctx, year)
	if err != nil {
		return nil, err
	}
	payload, err := l.client.getJSON(ctx, fmt.Sprintf("league/%s/settings", key))
	if err != nil {
		return nil, fmt.Errorf("fetching settings for %d: %w", year, err)
	}
	return parseSettings(payload), nil
}

// transactionTypes mirrors the log's categories; each is fetched separately
// because the API caps combined listings.
var transactionTypes = []string{"add", "drop", "add/drop", "trade"}

// Transactions returns the season's transaction log, newest first. A type
// whose fetch fails is logged and skipped.
func (l *League) Transactions(ctx context.Context, year, maxPerType int) ([]store.Transaction, error) {
	key, err := l.LeagueKey(ctx, year)
	if err != nil {
		return nil, err
	}

	var all []store.Transaction
	for _, transType := range transactionTypes {
		resource := fmt.Sprintf("league/%s/transactions;types=%s;count=%d", key, transType, maxPerType)
		payload, err := l.client.getJSON(ctx, resource)
		if err != nil {
			log.Printf("[yahoo] ⚠ Could not get %s transactions: %v", transType, err)
			continue
		}
		all = append(all, parseTransactions(payload)...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Timestamp > all[j].Timestamp
	})
	return all, nil
}

// Matchups returns both perspectives of every matchup for one week. A week
// the league has not played yet returns an empty slice.
func (l *League) Matchups(ctx context.Context, year, week int) ([]store.WeekScore, error) {
	key, err := l.LeagueKey(ctx, year)
	if err != nil {
		return nil, err
	}
	payload, err := l.client.getJSON(ctx, fmt.Sprintf("league/%s/scoreboard;week=%d", key, week))
	if err != nil {
		return nil, fmt.Errorf("fetching week %d scoreboard: %w", week, err)
	}
	return parseMatchups(payload, week), nil
}

// SeasonScores sweeps every week of a season, stopping at the first week
// with no scores.
func (l *League) SeasonScores(ctx context.Context, year, numWeeks int) ([]store.WeekScore, error) {
	var all []store.WeekScore
	for week := 1; week <= numWeeks; week++ {
		scores, err := l.Matchups(ctx, year, week)
		if err != nil {
			log.Printf("[yahoo] ✗ Week %d not available: %v", week, err)
			break
		}
		if len(scores) == 0 {
			break
		}
		all = append(all, scores...)
		log.Printf("[yahoo] ✓ Week %d collected", week)
	}
	return all, nil
}

// AvailableSeasons probes which seasons the signed-in account has a league
// for, between from and to inclusive.
func (l *League) AvailableSeasons(ctx context.Context, from, to int) ([]int, error) {
	var years []int
	for year := from; year <= to; year++ {
		if _, err := l.LeagueKey(ctx, year); err == nil {
			years = append(years, year)
		}
	}
	if len(years) == 0 {
		return nil, fmt.Errorf("no seasons with league data between %d and %d", from, to)
	}
	return years, nil
}

// Draft returns the season's raw draft results. The payload is archived
// as-is; nothing downstream consumes it yet.
func (l *League) Draft(ctx context.Context, year int) ([]map[string]any, error) {
	key, err := l.LeagueKey(ctx, year)
	if err != nil {
		return nil, err
	}
	payload, err := l.client.getJSON(ctx, fmt.Sprintf("league/%s/draftresults", key))
	if err != nil {
		return nil, fmt.Errorf("fetching draft results for %d: %w", year, err)
	}

	_, sub := leagueSections(payload)
	var results []map[string]any
	for _, item := range numberedItems(extractMap(sub, "draft_results")) {
		if dr, ok := item["draft_result"].(map[string]any); ok {
			results = append(results, dr)
		}
	}
	return results, nil
}
