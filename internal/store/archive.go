package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Archive reads and writes the league's JSON artifacts under a data root:
//
//	current_season/    standings, teams, scores, players, transactions
//	historical/<year>/ the same artifacts for finished seasons
//	managers/          career aggregates
//	players/           cross-season player history
//	unmatched/         per-season manual-review reports
type Archive struct {
	root          string
	currentSeason int
}

// NewArchive creates an archive rooted at dir. currentSeason decides which
// season writes into current_season/ instead of historical/.
func NewArchive(dir string, currentSeason int) *Archive {
	return &Archive{root: dir, currentSeason: currentSeason}
}

// Root returns the archive's data root directory.
func (a *Archive) Root() string { return a.root }

// seasonDir maps a season year to its directory.
func (a *Archive) seasonDir(year int) string {
	if year == a.currentSeason {
		return "current_season"
	}
	return filepath.Join("historical", fmt.Sprintf("%d", year))
}

// standingsFile keeps the historical naming quirk: finished seasons archive
// final standings under a distinct filename.
func (a *Archive) standingsFile(year int) string {
	if year == a.currentSeason {
		return filepath.Join(a.seasonDir(year), "standings.json")
	}
	return filepath.Join(a.seasonDir(year), "final_standings.json")
}

func (a *Archive) save(rel string, v any) error {
	path := filepath.Join(a.root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(rel), err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", rel, err)
	}

	return os.WriteFile(path, data, 0o644)
}

func (a *Archive) load(rel string, v any) error {
	data, err := os.ReadFile(filepath.Join(a.root, rel))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding %s: %w", rel, err)
	}
	return nil
}

// Exists reports whether an artifact has been written for the season dir.
func (a *Archive) Exists(rel string) bool {
	_, err := os.Stat(filepath.Join(a.root, rel))
	return err == nil
}

// IsNotExist reports whether err means the artifact was never collected.
func IsNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}

func (a *Archive) SaveStandings(year int, standings []Standing) error {
	return a.save(a.standingsFile(year), standings)
}

func (a *Archive) LoadStandings(year int) ([]Standing, error) {
	var standings []Standing
	err := a.load(a.standingsFile(year), &standings)
	return standings, err
}

// HasStandings reports whether a season was already archived, which is the
// marker setup runs use to skip it.
func (a *Archive) HasStandings(year int) bool {
	return a.Exists(a.standingsFile(year))
}

func (a *Archive) SaveTeams(year int, teams []Team) error {
	return a.save(filepath.Join(a.seasonDir(year), "teams.json"), teams)
}

func (a *Archive) LoadTeams(year int) ([]Team, error) {
	var teams []Team
	err := a.load(filepath.Join(a.seasonDir(year), "teams.json"), &teams)
	return teams, err
}

// SaveScores writes the season's full score list, plus per-week score files
// for the current season so the site can fetch one week at a time.
func (a *Archive) SaveScores(year int, scores []WeekScore) error {
	if err := a.save(filepath.Join(a.seasonDir(year), "all_scores.json"), scores); err != nil {
		return err
	}
	if year != a.currentSeason {
		return nil
	}

	byWeek := map[int][]WeekScore{}
	for _, s := range scores {
		byWeek[s.Week] = append(byWeek[s.Week], s)
	}
	for week, weekScores := range byWeek {
		rel := filepath.Join(a.seasonDir(year), fmt.Sprintf("week_%d_scores.json", week))
		if err := a.save(rel, weekScores); err != nil {
			return err
		}
	}
	return nil
}

func (a *Archive) LoadScores(year int) ([]WeekScore, error) {
	var scores []WeekScore
	err := a.load(filepath.Join(a.seasonDir(year), "all_scores.json"), &scores)
	return scores, err
}

func (a *Archive) SavePlayerStats(year int, players []PlayerSeason) error {
	return a.save(filepath.Join(a.seasonDir(year), "player_stats.json"), players)
}

func (a *Archive) LoadPlayerStats(year int) ([]PlayerSeason, error) {
	var players []PlayerSeason
	err := a.load(filepath.Join(a.seasonDir(year), "player_stats.json"), &players)
	return players, err
}

func (a *Archive) SaveTransactions(year int, transactions []Transaction) error {
	return a.save(filepath.Join(a.seasonDir(year), "transactions.json"), transactions)
}

func (a *Archive) LoadTransactions(year int) ([]Transaction, error) {
	var transactions []Transaction
	err := a.load(filepath.Join(a.seasonDir(year), "transactions.json"), &transactions)
	return transactions, err
}

func (a *Archive) SaveScoringSettings(year int, settings ScoringSettings) error {
	return a.save(filepath.Join(a.seasonDir(year), "scoring_settings.json"), settings)
}

func (a *Archive) LoadScoringSettings(year int) (ScoringSettings, error) {
	var settings ScoringSettings
	err := a.load(filepath.Join(a.seasonDir(year), "scoring_settings.json"), &settings)
	return settings, err
}

func (a *Archive) SaveDraft(year int, draft []map[string]any) error {
	return a.save(filepath.Join(a.seasonDir(year), "draft.json"), draft)
}

func (a *Archive) SaveManagerStats(records []ManagerRecord) error {
	return a.save(filepath.Join("managers", "all_time_stats.json"), records)
}

func (a *Archive) LoadManagerStats() ([]ManagerRecord, error) {
	var records []ManagerRecord
	err := a.load(filepath.Join("managers", "all_time_stats.json"), &records)
	return records, err
}

// SaveManagerHistory flattens every manager's season list into one artifact.
func (a *Archive) SaveManagerHistory(history []ManagerHistoryRow) error {
	return a.save(filepath.Join("managers", "manager_history.json"), history)
}

func (a *Archive) LoadManagerHistory() ([]ManagerHistoryRow, error) {
	var history []ManagerHistoryRow
	err := a.load(filepath.Join("managers", "manager_history.json"), &history)
	return history, err
}

func (a *Archive) SaveCareers(careers map[string]PlayerCareer) error {
	return a.save(filepath.Join("players", "player_history.json"), careers)
}

func (a *Archive) LoadCareers() (map[string]PlayerCareer, error) {
	careers := map[string]PlayerCareer{}
	err := a.load(filepath.Join("players", "player_history.json"), &careers)
	return careers, err
}

func (a *Archive) SaveUnmatched(year int, players []UnmatchedPlayer) error {
	return a.save(filepath.Join("unmatched", fmt.Sprintf("%d.json", year)), players)
}

func (a *Archive) LoadUnmatched(year int) ([]UnmatchedPlayer, error) {
	var players []UnmatchedPlayer
	err := a.load(filepath.Join("unmatched", fmt.Sprintf("%d.json", year)), &players)
	return players, err
}

func (a *Archive) SaveLeagueInfo(info LeagueInfo) error {
	return a.save("league_info.json", info)
}

func (a *Archive) LoadLeagueInfo() (LeagueInfo, error) {
	var info LeagueInfo
	err := a.load("league_info.json", &info)
	return info, err
}

// ManagerHistoryRow is one manager-season line in the flattened history
// artifact.
type ManagerHistoryRow struct {
	Manager string `json:"manager"`
	ManagerSeason
}
