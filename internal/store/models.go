// Package store defines the league's domain records and the JSON archive
// they persist into. Every artifact is regenerated whole on each collection
// run; nothing is updated in place.
package store

import (
	"github.com/fortuna/dugout/internal/reconcile"
	"github.com/fortuna/dugout/internal/scoring"
)

// Team is one fantasy team's identity for a season.
type Team struct {
	TeamKey  string `json:"team_key"`
	TeamName string `json:"team_name"`
	TeamLogo string `json:"team_logo"`
	Manager  string `json:"manager"`
}

// Standing is one team's final (or current) season placement.
type Standing struct {
	Rank          int     `json:"rank"`
	TeamKey       string  `json:"team_key"`
	TeamName      string  `json:"team_name"`
	Manager       string  `json:"manager"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Ties          int     `json:"ties"`
	WinPct        float64 `json:"win_pct"`
	PointsFor     float64 `json:"points_for"`
	PointsAgainst float64 `json:"points_against"`
}

// WeekScore is one team's side of a weekly head-to-head matchup.
type WeekScore struct {
	TeamKey       string  `json:"team_key"`
	TeamScore     float64 `json:"team_score"`
	Week          int     `json:"week"`
	OpponentKey   string  `json:"opponent_key"`
	OpponentScore float64 `json:"opponent_score"`
}

// RosterPlayer is one player on one fantasy team's roster.
type RosterPlayer struct {
	PlayerID          string   `json:"player_id"`
	Name              string   `json:"name"`
	PositionType      string   `json:"position_type"` // "B" or "P"
	EligiblePositions []string `json:"eligible_positions"`
	PrimaryPosition   string   `json:"primary_position"`
	SelectedPosition  string   `json:"selected_position"`
	Status            string   `json:"status"`
	TeamKey           string   `json:"team_key"`
	TeamName          string   `json:"team_name"`
	TeamLogo          string   `json:"team_logo"`
	Manager           string   `json:"manager"`
}

// PlayerSeason is a roster entry enriched with the stats and fantasy points
// resolved from the stat provider. Stats stays empty and FantasyPoints zero
// when the player went unmatched.
type PlayerSeason struct {
	RosterPlayer
	Stats         scoring.StatLine `json:"stats"`
	FantasyPoints float64          `json:"fantasy_points"`
	MLBTeam       string           `json:"mlb_team"`
}

// Transaction is one league transaction (add, drop, trade).
type Transaction struct {
	TransactionKey string              `json:"transaction_key"`
	TransactionID  string              `json:"transaction_id"`
	Type           string              `json:"type"`
	Timestamp      string              `json:"timestamp"`
	Status         string              `json:"status"`
	Players        []TransactionPlayer `json:"players"`
}

// TransactionPlayer is one player's movement within a transaction.
type TransactionPlayer struct {
	PlayerKey           string `json:"player_key"`
	PlayerName          string `json:"player_name"`
	TransactionType     string `json:"transaction_type"`
	SourceType          string `json:"source_type"`
	SourceTeamKey       string `json:"source_team_key"`
	SourceTeamName      string `json:"source_team_name"`
	DestinationTeamKey  string `json:"destination_team_key"`
	DestinationTeamName string `json:"destination_team_name"`
}

// ScoringSettings are the effective point tables for a league season, league
// declarations merged over the defaults.
type ScoringSettings struct {
	Batting  scoring.PointTable `json:"batting"`
	Pitching scoring.PointTable `json:"pitching"`
}

// ManagerSeason is one manager's line for one season.
type ManagerSeason struct {
	Year      int     `json:"year"`
	TeamName  string  `json:"team_name"`
	Rank      int     `json:"rank"`
	Wins      int     `json:"wins"`
	Losses    int     `json:"losses"`
	PointsFor float64 `json:"points_for"`
}

// ManagerRecord aggregates a manager's career across every season played.
type ManagerRecord struct {
	ManagerName        string          `json:"manager_name"`
	FirstSeason        int             `json:"first_season"`
	TotalWins          int             `json:"total_wins"`
	TotalLosses        int             `json:"total_losses"`
	TotalTies          int             `json:"total_ties"`
	Championships      int             `json:"championships"`
	RunnerUps          int             `json:"runner_ups"`
	PlayoffAppearances int             `json:"playoff_appearances"`
	SeasonsPlayed      int             `json:"seasons_played"`
	TotalPointsFor     float64         `json:"total_points_for"`
	WinPct             float64         `json:"win_pct"`
	AvgFinish          float64         `json:"avg_finish"`
	SeasonHistory      []ManagerSeason `json:"season_history"`
}

// CareerSeason is one season inside a player's cross-season history.
type CareerSeason struct {
	Year          int              `json:"year"`
	TeamName      string           `json:"team_name"`
	Manager       string           `json:"manager"`
	FantasyPoints float64          `json:"fantasy_points"`
	PositionType  string           `json:"position_type"`
	Stats         scoring.StatLine `json:"stats"`
}

// PlayerCareer is a player's full league history, keyed in the archive by
// normalized name so spelling drift across seasons folds together.
type PlayerCareer struct {
	Name                string         `json:"name"`
	Seasons             []CareerSeason `json:"seasons"`
	CareerFantasyPoints float64        `json:"career_fantasy_points"`
}

// UnmatchedPlayer is a roster entry no stat row resolved for, kept for manual
// review alongside the closest near-misses.
type UnmatchedPlayer struct {
	Name         string                 `json:"name"`
	PositionType string                 `json:"position_type"`
	TeamName     string                 `json:"team_name"`
	Suggestions  []reconcile.Suggestion `json:"suggestions,omitempty"`
}

// LeagueInfo is the league metadata artifact.
type LeagueInfo struct {
	LeagueName    string `json:"league_name"`
	Founded       int    `json:"founded"`
	CurrentSeason int    `json:"current_season"`
	TotalTeams    int    `json:"total_teams"`
	LeagueType    string `json:"league_type"`
	LastUpdated   string `json:"last_updated"`
}
