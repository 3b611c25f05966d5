package yahoo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fortuna/dugout/internal/store"
)

func decode(t *testing.T, raw string) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	return payload
}

const standingsFixture = `{
  "fantasy_content": {
    "league": [
      {"league_key": "422.l.6780", "name": "Fantasy Baseball Civil War"},
      {"standings": [
        {"teams": {
          "count": 2,
          "0": {"team": [
            [
              {"team_key": "422.l.6780.t.4"},
              {"name": "Draft Pool"},
              {"team_logos": [{"team_logo": {"url": "https://img.example/4.png"}}]},
              {"managers": [{"manager": {"nickname": "Logan"}}]}
            ],
            {"team_standings": {
              "rank": "1",
              "outcome_totals": {"wins": "14", "losses": "7", "ties": "0", "percentage": ".667"},
              "points_for": "5123.4",
              "points_against": "4800.2"
            }}
          ]},
          "1": {"team": [
            [
              {"team_key": "422.l.6780.t.12"},
              {"name": "Peanut Butter & Elly"},
              {"managers": [{"manager": {"nickname": "Logan"}}]}
            ],
            {"team_standings": {
              "rank": 2,
              "outcome_totals": {"wins": 12, "losses": 9, "ties": 0, "percentage": ".571"},
              "points_for": 4980.1,
              "points_against": 4702.8
            }}
          ]}
        }}
      ]}
    ]
  }
}`

func TestParseStandings(t *testing.T) {
	standings, teams := parseStandings(decode(t, standingsFixture))

	if len(standings) != 2 || len(teams) != 2 {
		t.Fatalf("parsed %d standings, %d teams; want 2, 2", len(standings), len(teams))
	}

	first := standings[0]
	if first.Rank != 1 || first.TeamKey != "422.l.6780.t.4" || first.Wins != 14 || first.PointsFor != 5123.4 {
		t.Errorf("first standing = %+v", first)
	}
	if first.WinPct != 0.667 {
		t.Errorf("win pct = %v, want 0.667", first.WinPct)
	}

	// String and numeric encodings of the same fields both parse.
	second := standings[1]
	if second.Rank != 2 || second.Wins != 12 || second.PointsFor != 4980.1 {
		t.Errorf("second standing = %+v", second)
	}

	if teams[0].TeamLogo != "https://img.example/4.png" || teams[0].Manager != "Logan" {
		t.Errorf("first team = %+v", teams[0])
	}
}

const rosterFixture = `{
  "fantasy_content": {
    "team": [
      [{"team_key": "422.l.6780.t.4"}, {"name": "Draft Pool"}],
      {"roster": {"0": {"players": {
        "count": 2,
        "0": {"player": [
          [
            {"player_key": "422.p.10835"},
            {"player_id": "10835"},
            {"name": {"full": "Shohei Ohtani (Batter)", "first": "Shohei", "last": "Ohtani"}},
            {"position_type": "B"},
            {"eligible_positions": [{"position": "Util"}, {"position": "DH"}]}
          ],
          {"selected_position": [{"position": "Util"}]}
        ]},
        "1": {"player": [
          [
            {"player_key": "422.p.12345"},
            {"player_id": "12345"},
            {"name": {"full": "Tarik Skubal"}},
            {"position_type": "P"},
            {"eligible_positions": [{"position": "SP"}]},
            {"status": "DTD"}
          ],
          {"selected_position": [{"position": "SP"}]}
        ]}
      }}}}
    ]
  }
}`

func TestParseRoster(t *testing.T) {
	team := store.Team{TeamKey: "422.l.6780.t.4", TeamName: "Draft Pool", Manager: "Logan C"}
	players := parseRoster(decode(t, rosterFixture), team)

	if len(players) != 2 {
		t.Fatalf("parsed %d players, want 2", len(players))
	}

	ohtani := players[0]
	if ohtani.Name != "Shohei Ohtani (Batter)" || ohtani.PositionType != "B" {
		t.Errorf("first player = %+v", ohtani)
	}
	if ohtani.PrimaryPosition != "Util" || ohtani.SelectedPosition != "Util" {
		t.Errorf("positions = %q / %q", ohtani.PrimaryPosition, ohtani.SelectedPosition)
	}
	if ohtani.TeamName != "Draft Pool" || ohtani.Manager != "Logan C" {
		t.Errorf("team fields not stamped: %+v", ohtani)
	}

	if players[1].Status != "DTD" || players[1].PositionType != "P" {
		t.Errorf("second player = %+v", players[1])
	}
}

const settingsFixture = `{
  "fantasy_content": {
    "league": [
      {"league_key": "422.l.6780"},
      {"settings": [{
        "stat_categories": {"stats": [
          {"stat": {"stat_id": 12, "display_name": "HR", "position_type": "B"}},
          {"stat": {"stat_id": 42, "display_name": "K", "position_type": "P"}},
          {"stat": {"stat_id": 60, "display_name": "H/AB", "position_type": "B"}}
        ]},
        "stat_modifiers": {"stats": [
          {"stat": {"stat_id": 12, "value": "12"}},
          {"stat": {"stat_id": 42, "value": "3.5"}}
        ]}
      }]}
    ]
  }
}`

func TestParseSettings(t *testing.T) {
	declared := parseSettings(decode(t, settingsFixture))

	if len(declared) != 2 {
		t.Fatalf("parsed %d declared stats, want 2 (display-only categories carry no value)", len(declared))
	}
	if declared[0].StatID != "12" || declared[0].Value != 12 || declared[0].PositionType != "B" {
		t.Errorf("first declared = %+v", declared[0])
	}
	if declared[1].StatID != "42" || declared[1].Value != 3.5 || declared[1].PositionType != "P" {
		t.Errorf("second declared = %+v", declared[1])
	}
}

const scoreboardFixture = `{
  "fantasy_content": {
    "league": [
      {"league_key": "422.l.6780"},
      {"scoreboard": {"week": "5", "0": {"matchups": {
        "count": 1,
        "0": {"matchup": {"0": {"teams": {
          "count": 2,
          "0": {"team": [[{"team_key": "422.l.6780.t.4"}], {"team_points": {"total": "310.5"}}]},
          "1": {"team": [[{"team_key": "422.l.6780.t.12"}], {"team_points": {"total": "280"}}]}
        }}}}
      }}}}
    ]
  }
}`

func TestParseMatchups(t *testing.T) {
	scores := parseMatchups(decode(t, scoreboardFixture), 5)

	if len(scores) != 2 {
		t.Fatalf("parsed %d scores, want both perspectives", len(scores))
	}
	if scores[0].TeamKey != "422.l.6780.t.4" || scores[0].TeamScore != 310.5 || scores[0].Week != 5 {
		t.Errorf("first score = %+v", scores[0])
	}
	if scores[1].TeamKey != "422.l.6780.t.12" || scores[1].OpponentKey != "422.l.6780.t.4" || scores[1].OpponentScore != 310.5 {
		t.Errorf("second score = %+v", scores[1])
	}
}

const transactionsFixture = `{
  "fantasy_content": {
    "league": [
      {"league_key": "422.l.6780"},
      {"transactions": {
        "count": 1,
        "0": {"transaction": [
          {"transaction_key": "422.l.6780.tr.200", "transaction_id": "200", "type": "add/drop", "timestamp": "1717777777", "status": "successful"},
          {"players": {
            "count": 1,
            "0": {"player": [
              [{"player_key": "422.p.9999"}, {"name": {"full": "Jazz Chisholm Jr."}}],
              {"transaction_data": [{"type": "add", "source_type": "freeagents", "destination_team_key": "422.l.6780.t.4", "destination_team_name": "Draft Pool"}]}
            ]}
          }}
        ]}
      }}
    ]
  }
}`

func TestParseTransactions(t *testing.T) {
	transactions := parseTransactions(decode(t, transactionsFixture))

	if len(transactions) != 1 {
		t.Fatalf("parsed %d transactions, want 1", len(transactions))
	}
	trans := transactions[0]
	if trans.Type != "add/drop" || trans.Timestamp != "1717777777" {
		t.Errorf("transaction = %+v", trans)
	}
	if len(trans.Players) != 1 {
		t.Fatalf("parsed %d transaction players, want 1", len(trans.Players))
	}
	p := trans.Players[0]
	if p.PlayerName != "Jazz Chisholm Jr." || p.TransactionType != "add" || p.DestinationTeamName != "Draft Pool" {
		t.Errorf("transaction player = %+v", p)
	}
}

func TestLeagueKeyOverride(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("override years must not hit the API, got %s", r.URL.Path)
	}))
	defer srv.Close()

	league := NewLeague(NewClientWithHTTP(srv.URL, srv.Client()), map[int]string{2020: "398.l.17906"})

	key, err := league.LeagueKey(context.Background(), 2020)
	if err != nil {
		t.Fatalf("LeagueKey: %v", err)
	}
	if key != "398.l.17906" {
		t.Errorf("key = %q, want override", key)
	}
}

func TestGetJSONErrorPaths(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("denied"))
	}))
	defer srv.Close()

	c := NewClientWithHTTP(srv.URL, srv.Client())
	if _, err := c.getJSON(context.Background(), "league/x/standings"); err == nil {
		t.Error("expected error on non-200 response")
	}
}
