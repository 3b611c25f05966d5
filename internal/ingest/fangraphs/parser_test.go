package fangraphs

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

const leaderboardHTML = `<html><body>
<table class="rgMasterTable">
  <thead>
    <tr>
      <th>#</th><th>Name</th><th>Team</th><th>G</th><th>H</th><th>2B</th><th>3B</th><th>HR</th><th>BB%</th>
    </tr>
  </thead>
  <tbody>
    <tr><td>1</td><td>Aaron Judge</td><td>NYY</td><td>152</td><td>180</td><td>36</td><td>1</td><td>58</td><td>18.9%</td></tr>
    <tr><td>2</td><td>José Ramírez</td><td>CLE</td><td>158</td><td>172</td><td>39</td><td>4</td><td>:)</td><td>10.1%</td></tr>
    <tr><td>3</td><td></td><td></td><td></td><td></td><td></td><td></td><td></td><td></td></tr>
  </tbody>
</table>
</body></html>`

func TestParseLeaderboard(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(leaderboardHTML))
	if err != nil {
		t.Fatal(err)
	}

	rows, err := ParseLeaderboard(doc)
	if err != nil {
		t.Fatal(err)
	}

	// Nameless rows drop; everything else survives in leaderboard order.
	if len(rows) != 2 {
		t.Fatalf("parsed %d rows, want 2", len(rows))
	}

	judge := rows[0]
	if judge.Name != "Aaron Judge" || judge.Team != "NYY" {
		t.Errorf("first row = %+v", judge)
	}
	if judge.Stats["HR"] != 58 || judge.Stats["H"] != 180 {
		t.Errorf("judge stats = %v", judge.Stats)
	}
	if judge.Stats["BB%"] != 18.9 {
		t.Errorf("percent cell = %v, want 18.9", judge.Stats["BB%"])
	}

	// Unparseable cell coerces to zero instead of dropping the row.
	ramirez := rows[1]
	if ramirez.Name != "José Ramírez" {
		t.Errorf("second row = %+v", ramirez)
	}
	if ramirez.Stats["HR"] != 0 || ramirez.Stats["2B"] != 39 {
		t.Errorf("ramirez stats = %v", ramirez.Stats)
	}
}

func TestParseLeaderboardNoTable(t *testing.T) {
	doc, _ := goquery.NewDocumentFromReader(strings.NewReader("<html><body><p>blocked</p></body></html>"))
	if _, err := ParseLeaderboard(doc); err == nil {
		t.Error("expected error when no table is present")
	}
}

func TestNamesAndByName(t *testing.T) {
	rows := []StatRow{
		{Name: "A", Team: "X"},
		{Name: "B", Team: "Y"},
		{Name: "A", Team: "Z"},
	}

	names := Names(rows)
	if len(names) != 3 || names[0] != "A" || names[2] != "A" {
		t.Errorf("Names = %v", names)
	}

	indexed := ByName(rows)
	if indexed["A"].Team != "X" {
		t.Errorf("ByName first-occurrence rule violated: %+v", indexed["A"])
	}
}
