package fangraphs

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fortuna/dugout/internal/scoring"
)

// StatRow is one player's leaderboard line. Stats is keyed by the column
// header abbreviation (H, 2B, HR, IP, SO, ...). Row order follows the
// leaderboard, which downstream matching relies on for tie-breaks.
type StatRow struct {
	Name  string
	Team  string
	Stats scoring.StatLine
}

// leaderboard table selectors, oldest layout first
var tableSelectors = []string{
	"table.rgMasterTable",
	"div.table-scroll table",
	"table",
}

// ParseLeaderboard extracts stat rows from a leaderboard page. Column names
// come from the header row; cells that fail numeric parsing score zero
// rather than dropping the row.
func ParseLeaderboard(doc *goquery.Document) ([]StatRow, error) {
	var table *goquery.Selection
	for _, sel := range tableSelectors {
		if t := doc.Find(sel).First(); t.Length() > 0 && t.Find("th").Length() > 0 {
			table = t
			break
		}
	}
	if table == nil {
		return nil, fmt.Errorf("no leaderboard table found")
	}

	var columns []string
	table.Find("thead tr").Last().Find("th").Each(func(i int, th *goquery.Selection) {
		columns = append(columns, strings.TrimSpace(th.Text()))
	})
	if len(columns) == 0 {
		// Header rows are plain <tr><th> in some layouts.
		table.Find("tr").First().Find("th").Each(func(i int, th *goquery.Selection) {
			columns = append(columns, strings.TrimSpace(th.Text()))
		})
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("leaderboard table has no header row")
	}

	var rows []StatRow
	table.Find("tbody tr").Each(func(i int, tr *goquery.Selection) {
		row := StatRow{Stats: scoring.StatLine{}}

		tr.Find("td").Each(func(j int, td *goquery.Selection) {
			if j >= len(columns) {
				return
			}
			text := strings.TrimSpace(td.Text())
			switch columns[j] {
			case "Name":
				row.Name = text
			case "Team":
				row.Team = text
			case "#", "":
				// rank column
			default:
				row.Stats[columns[j]] = parseCell(text)
			}
		})

		if row.Name != "" {
			rows = append(rows, row)
		}
	})

	return rows, nil
}

// parseCell coerces a leaderboard cell to a number; percent signs and
// thousands separators are stripped, anything unparseable is zero.
func parseCell(text string) float64 {
	text = strings.TrimSuffix(text, "%")
	text = strings.ReplaceAll(text, ",", "")
	if text == "" {
		return 0
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0
	}
	return v
}

// Names returns the display names of rows in leaderboard order, the
// candidate pool handed to the identity matcher.
func Names(rows []StatRow) []string {
	names := make([]string, 0, len(rows))
	for _, row := range rows {
		names = append(names, row.Name)
	}
	return names
}

// ByName indexes rows by display name; the first occurrence wins when a name
// repeats.
func ByName(rows []StatRow) map[string]StatRow {
	indexed := make(map[string]StatRow, len(rows))
	for _, row := range rows {
		if _, ok := indexed[row.Name]; !ok {
			indexed[row.Name] = row
		}
	}
	return indexed
}
