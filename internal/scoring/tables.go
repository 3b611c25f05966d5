// Package scoring converts raw season stat lines into fantasy point totals
// under a league's point rules.
package scoring

import "strings"

// PointTable maps a canonical stat abbreviation to its point multiplier.
// Multipliers may be negative.
type PointTable map[string]float64

// Default point tables, the Yahoo points-league defaults. A league's declared
// settings override these per stat; any stat the league leaves undeclared
// still scores at the default rate.
var (
	DefaultBattingTable = PointTable{
		"1B":  2.6,  // singles
		"2B":  5.2,  // doubles
		"3B":  7.8,  // triples
		"HR":  10.4, // home runs
		"RBI": 1.9,  // runs batted in
		"R":   1.9,  // runs
		"BB":  2.6,  // walks
		"HBP": 2.6,  // hit by pitch
		"SB":  4.2,  // stolen bases
		"CS":  -2.6, // caught stealing
		"SO":  -1,   // strikeouts (batting)
	}

	DefaultPitchingTable = PointTable{
		"IP":  5,  // innings pitched, per full inning
		"W":   4,  // wins
		"L":   -4, // losses
		"SV":  8,  // saves
		"HLD": 4,  // holds
		"ER":  -3, // earned runs
		"HA":  -1, // hits allowed
		"BBA": -1, // walks allowed
		"K":   3,  // strikeouts (pitching)
		"QS":  4,  // quality starts
		"CG":  5,  // complete games
		"SO":  5,  // shutouts
	}
)

// statIDNames maps Yahoo stat category IDs to canonical abbreviations.
// Batting and pitching IDs never collide, so one table covers both.
var statIDNames = map[string]string{
	"7": "R", "8": "H", "9": "1B", "10": "2B", "11": "3B", "12": "HR",
	"13": "RBI", "16": "SB", "17": "CS", "18": "BB", "21": "SO", "51": "HBP",
	"28": "IP", "32": "ER", "34": "HA", "35": "BBA", "42": "K",
	"37": "W", "38": "L", "39": "SV", "48": "HLD", "57": "QS",
}

// labelAliases maps the display labels and synonyms providers use for stat
// categories onto canonical abbreviations, for leagues whose settings carry
// names instead of IDs. Keys are lowercased.
var labelAliases = map[string]string{
	"singles": "1B", "doubles": "2B", "triples": "3B",
	"home runs": "HR", "homeruns": "HR",
	"runs batted in": "RBI", "runs": "R",
	"walks": "BB", "base on balls": "BB",
	"hit by pitch": "HBP", "stolen bases": "SB", "caught stealing": "CS",
	"strikeouts": "SO", "hits": "H",
	"innings pitched": "IP", "wins": "W", "losses": "L",
	"saves": "SV", "holds": "HLD", "earned runs": "ER",
	"hits allowed": "HA", "walks allowed": "BBA", "walks issued": "BBA",
	"strikeouts pitched": "K", "quality starts": "QS",
	"complete games": "CG", "shutouts": "SO",
}

// DeclaredStat is one stat category from a league's scoring settings.
// PositionType is "B" for batting categories, "P" for pitching.
type DeclaredStat struct {
	StatID       string
	Label        string
	Value        float64
	PositionType string
}

// CanonicalStat resolves a declared category to its canonical abbreviation,
// trying the stat ID first, then the label as an abbreviation, then known
// synonyms.
func CanonicalStat(statID, label string) (string, bool) {
	if name, ok := statIDNames[statID]; ok {
		return name, true
	}
	key := strings.TrimSpace(label)
	if key == "" {
		return "", false
	}
	upper := strings.ToUpper(key)
	for _, name := range statIDNames {
		if name == upper {
			return name, true
		}
	}
	if name, ok := labelAliases[strings.ToLower(key)]; ok {
		return name, true
	}
	return "", false
}

// BuildPointTables turns a league's declared categories into batting and
// pitching tables, merging the defaults underneath so undeclared stats still
// score. A nil or empty declaration list yields the pure defaults.
func BuildPointTables(declared []DeclaredStat) (batting, pitching PointTable) {
	batting = PointTable{}
	pitching = PointTable{}

	for _, d := range declared {
		if d.Value == 0 {
			continue
		}
		name, ok := CanonicalStat(d.StatID, d.Label)
		if !ok {
			continue
		}
		switch d.PositionType {
		case "B":
			batting[name] = d.Value
		case "P":
			pitching[name] = d.Value
		}
	}

	for stat, value := range DefaultBattingTable {
		if _, ok := batting[stat]; !ok {
			batting[stat] = value
		}
	}
	for stat, value := range DefaultPitchingTable {
		if _, ok := pitching[stat]; !ok {
			pitching[stat] = value
		}
	}

	return batting, pitching
}
