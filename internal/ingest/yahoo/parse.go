package yahoo

import (
	"strconv"

	"github.com/fortuna/dugout/internal/scoring"
	"github.com/fortuna/dugout/internal/store"
)

// The Yahoo API encodes objects as arrays of single-key fragment maps and
// collections as maps keyed "0".."count-1". The helpers below flatten that
// shape; every parser tolerates missing keys by skipping the row.

func extractString(m map[string]any, key string) string {
	if v, ok := m[key]; ok {
		switch s := v.(type) {
		case string:
			return s
		case float64:
			return strconv.FormatFloat(s, 'f', -1, 64)
		}
	}
	return ""
}

func extractInt(m map[string]any, key string) int {
	return int(extractFloat(m, key))
}

func extractFloat(m map[string]any, key string) float64 {
	if v, ok := m[key]; ok {
		switch n := v.(type) {
		case float64:
			return n
		case string:
			f, err := strconv.ParseFloat(n, 64)
			if err == nil {
				return f
			}
		}
	}
	return 0
}

func extractMap(m map[string]any, key string) map[string]any {
	if v, ok := m[key]; ok {
		if mapVal, ok := v.(map[string]any); ok {
			return mapVal
		}
	}
	return map[string]any{}
}

func extractArray(m map[string]any, key string) []any {
	if v, ok := m[key]; ok {
		if arrVal, ok := v.([]any); ok {
			return arrVal
		}
	}
	return []any{}
}

// mergeFragments flattens Yahoo's array-of-fragment-maps encoding into a
// single map. Nested fragment arrays one level down are flattened too.
func mergeFragments(v any) map[string]any {
	merged := map[string]any{}
	switch val := v.(type) {
	case map[string]any:
		return val
	case []any:
		for _, frag := range val {
			switch f := frag.(type) {
			case map[string]any:
				for k, fv := range f {
					merged[k] = fv
				}
			case []any:
				for k, fv := range mergeFragments(f) {
					merged[k] = fv
				}
			}
		}
	}
	return merged
}

// numberedItems walks a {"0": ..., "1": ..., "count": n} collection in order.
func numberedItems(m map[string]any) []map[string]any {
	count := extractInt(m, "count")
	if count == 0 {
		count = len(m)
	}
	items := make([]map[string]any, 0, count)
	for i := 0; i < count; i++ {
		if item, ok := m[strconv.Itoa(i)].(map[string]any); ok {
			items = append(items, item)
		}
	}
	return items
}

// leagueSections splits a league resource payload into the metadata fragment
// and the merged subresource fragments.
func leagueSections(payload map[string]any) (meta, sub map[string]any) {
	meta = map[string]any{}
	sub = map[string]any{}
	league := extractArray(extractMap(payload, "fantasy_content"), "league")
	for i, part := range league {
		m, ok := part.(map[string]any)
		if !ok {
			continue
		}
		if i == 0 {
			meta = m
			continue
		}
		for k, v := range m {
			sub[k] = v
		}
	}
	return meta, sub
}

// teamEntry is one team's flattened standings row.
type teamEntry struct {
	team     store.Team
	standing store.Standing
}

// parseTeamEntry flattens a "team" value: the first element is the info
// fragment array, later elements carry team_standings / team_points.
func parseTeamEntry(v any) teamEntry {
	merged := mergeFragments(v)

	team := store.Team{
		TeamKey:  extractString(merged, "team_key"),
		TeamName: extractString(merged, "name"),
	}

	if logos := extractArray(merged, "team_logos"); len(logos) > 0 {
		logo := extractMap(mergeFragments(logos[0]), "team_logo")
		team.TeamLogo = extractString(logo, "url")
	}
	if managers := extractArray(merged, "managers"); len(managers) > 0 {
		manager := extractMap(mergeFragments(managers[0]), "manager")
		team.Manager = extractString(manager, "nickname")
	}

	standing := store.Standing{
		TeamKey:  team.TeamKey,
		TeamName: team.TeamName,
		Manager:  team.Manager,
	}
	if ts := extractMap(merged, "team_standings"); len(ts) > 0 {
		standing.Rank = extractInt(ts, "rank")
		standing.PointsFor = extractFloat(ts, "points_for")
		standing.PointsAgainst = extractFloat(ts, "points_against")
		outcomes := extractMap(ts, "outcome_totals")
		standing.Wins = extractInt(outcomes, "wins")
		standing.Losses = extractInt(outcomes, "losses")
		standing.Ties = extractInt(outcomes, "ties")
		standing.WinPct = extractFloat(outcomes, "percentage")
	}

	return teamEntry{team: team, standing: standing}
}

// parseStandings extracts ranked standings and team info from a league
// standings payload, in rank order as served.
func parseStandings(payload map[string]any) ([]store.Standing, []store.Team) {
	_, sub := leagueSections(payload)

	teamsColl := map[string]any{}
	for _, part := range extractArray(sub, "standings") {
		if m, ok := part.(map[string]any); ok {
			if tc := extractMap(m, "teams"); len(tc) > 0 {
				teamsColl = tc
			}
		}
	}
	if len(teamsColl) == 0 {
		teamsColl = extractMap(extractMap(sub, "standings"), "teams")
	}

	var standings []store.Standing
	var teams []store.Team
	for _, item := range numberedItems(teamsColl) {
		entry := parseTeamEntry(item["team"])
		if entry.team.TeamKey == "" {
			continue
		}
		standings = append(standings, entry.standing)
		teams = append(teams, entry.team)
	}
	return standings, teams
}

// parseRoster extracts the players on one team's roster. Team identity fields
// are stamped onto every player so roster rows stand alone in the archive.
func parseRoster(payload map[string]any, team store.Team) []store.RosterPlayer {
	teamParts := extractArray(extractMap(payload, "fantasy_content"), "team")
	merged := mergeFragments(teamParts)

	playersColl := extractMap(extractMap(extractMap(merged, "roster"), "0"), "players")
	if len(playersColl) == 0 {
		playersColl = extractMap(extractMap(merged, "roster"), "players")
	}

	var players []store.RosterPlayer
	for _, item := range numberedItems(playersColl) {
		p := mergeFragments(item["player"])

		name := ""
		switch n := p["name"].(type) {
		case map[string]any:
			name = extractString(n, "full")
		case string:
			name = n
		}
		if name == "" {
			continue
		}

		var eligible []string
		for _, pos := range extractArray(p, "eligible_positions") {
			if posMap, ok := pos.(map[string]any); ok {
				if ps := extractString(posMap, "position"); ps != "" {
					eligible = append(eligible, ps)
				}
			}
		}
		primary := ""
		if len(eligible) > 0 {
			primary = eligible[0]
		}

		selected := ""
		if sel := mergeFragments(p["selected_position"]); len(sel) > 0 {
			selected = extractString(sel, "position")
		}

		players = append(players, store.RosterPlayer{
			PlayerID:          extractString(p, "player_id"),
			Name:              name,
			PositionType:      extractString(p, "position_type"),
			EligiblePositions: eligible,
			PrimaryPosition:   primary,
			SelectedPosition:  selected,
			Status:            extractString(p, "status"),
			TeamKey:           team.TeamKey,
			TeamName:          team.TeamName,
			TeamLogo:          team.TeamLogo,
			Manager:           team.Manager,
		})
	}
	return players
}

// parseSettings extracts the league's declared stat categories and point
// values. Categories carry the stat identity and position type; modifiers
// carry the point values.
func parseSettings(payload map[string]any) []scoring.DeclaredStat {
	_, sub := leagueSections(payload)
	settings := mergeFragments(sub["settings"])

	type category struct {
		label        string
		positionType string
	}
	categories := map[string]category{}
	for _, item := range extractArray(extractMap(settings, "stat_categories"), "stats") {
		stat := extractMap(mergeFragments(item), "stat")
		id := extractString(stat, "stat_id")
		if id == "" {
			continue
		}
		posType := extractString(stat, "position_type")
		if posType == "" {
			// Some seasons nest position type one level down.
			for _, pt := range extractArray(stat, "position_types") {
				if ptMap, ok := pt.(map[string]any); ok {
					posType = extractString(ptMap, "position_type")
				}
			}
		}
		categories[id] = category{
			label:        extractString(stat, "display_name"),
			positionType: posType,
		}
	}

	var declared []scoring.DeclaredStat
	for _, item := range extractArray(extractMap(settings, "stat_modifiers"), "stats") {
		stat := extractMap(mergeFragments(item), "stat")
		id := extractString(stat, "stat_id")
		value := extractFloat(stat, "value")
		if id == "" || value == 0 {
			continue
		}
		cat := categories[id]
		declared = append(declared, scoring.DeclaredStat{
			StatID:       id,
			Label:        cat.label,
			Value:        value,
			PositionType: cat.positionType,
		})
	}
	return declared
}

// parseTransactions extracts the league transaction log in served order.
func parseTransactions(payload map[string]any) []store.Transaction {
	_, sub := leagueSections(payload)

	var transactions []store.Transaction
	for _, item := range numberedItems(extractMap(sub, "transactions")) {
		t := mergeFragments(item["transaction"])
		trans := store.Transaction{
			TransactionKey: extractString(t, "transaction_key"),
			TransactionID:  extractString(t, "transaction_id"),
			Type:           extractString(t, "type"),
			Timestamp:      extractString(t, "timestamp"),
			Status:         extractString(t, "status"),
		}
		if trans.TransactionKey == "" {
			continue
		}

		for _, pItem := range numberedItems(extractMap(t, "players")) {
			p := mergeFragments(pItem["player"])

			name := ""
			switch n := p["name"].(type) {
			case map[string]any:
				name = extractString(n, "full")
			case string:
				name = n
			}

			td := mergeFragments(p["transaction_data"])
			trans.Players = append(trans.Players, store.TransactionPlayer{
				PlayerKey:           extractString(p, "player_key"),
				PlayerName:          name,
				TransactionType:     extractString(td, "type"),
				SourceType:          extractString(td, "source_type"),
				SourceTeamKey:       extractString(td, "source_team_key"),
				SourceTeamName:      extractString(td, "source_team_name"),
				DestinationTeamKey:  extractString(td, "destination_team_key"),
				DestinationTeamName: extractString(td, "destination_team_name"),
			})
		}

		transactions = append(transactions, trans)
	}
	return transactions
}

// parseMatchups extracts both perspectives of every matchup on a weekly
// scoreboard.
func parseMatchups(payload map[string]any, week int) []store.WeekScore {
	_, sub := leagueSections(payload)

	scoreboard := extractMap(sub, "scoreboard")
	matchupsColl := extractMap(extractMap(scoreboard, "0"), "matchups")
	if len(matchupsColl) == 0 {
		matchupsColl = extractMap(scoreboard, "matchups")
	}
	if w := extractInt(scoreboard, "week"); w != 0 {
		week = w
	}

	var scores []store.WeekScore
	for _, item := range numberedItems(matchupsColl) {
		matchup := mergeFragments(item["matchup"])
		teamsColl := extractMap(extractMap(matchup, "0"), "teams")
		if len(teamsColl) == 0 {
			teamsColl = extractMap(matchup, "teams")
		}

		sides := numberedItems(teamsColl)
		if len(sides) != 2 {
			continue
		}

		type side struct {
			key   string
			score float64
		}
		parsed := make([]side, 0, 2)
		for _, s := range sides {
			team := mergeFragments(s["team"])
			points := extractMap(team, "team_points")
			parsed = append(parsed, side{
				key:   extractString(team, "team_key"),
				score: extractFloat(points, "total"),
			})
		}
		if parsed[0].key == "" || parsed[1].key == "" {
			continue
		}

		scores = append(scores,
			store.WeekScore{TeamKey: parsed[0].key, TeamScore: parsed[0].score, Week: week, OpponentKey: parsed[1].key, OpponentScore: parsed[1].score},
			store.WeekScore{TeamKey: parsed[1].key, TeamScore: parsed[1].score, Week: week, OpponentKey: parsed[0].key, OpponentScore: parsed[0].score},
		)
	}
	return scores
}

// parseLeagueKeys extracts league keys from a users games/leagues payload.
func parseLeagueKeys(payload map[string]any) []string {
	var keys []string

	var walk func(v any)
	walk = func(v any) {
		switch val := v.(type) {
		case map[string]any:
			if key := extractString(val, "league_key"); key != "" {
				keys = append(keys, key)
			}
			for _, child := range val {
				walk(child)
			}
		case []any:
			for _, child := range val {
				walk(child)
			}
		}
	}
	walk(extractMap(payload, "fantasy_content"))

	return keys
}
