package scoring

import (
	"math"
	"sort"
	"strconv"
)

// StatLine is one player's raw season stats, keyed by the provider's stat
// abbreviation. Missing stats simply have no entry.
type StatLine map[string]float64

// StatLineFromRaw coerces an untyped record (as decoded from provider JSON)
// into a StatLine. Non-numeric, missing, and NaN values become zero; a bad
// field never aborts the line.
func StatLineFromRaw(raw map[string]any) StatLine {
	line := make(StatLine, len(raw))
	for stat, v := range raw {
		line[stat] = coerceNumber(v)
	}
	return line
}

// Clone returns an independent copy of the line.
func (s StatLine) Clone() StatLine {
	out := make(StatLine, len(s))
	for stat, v := range s {
		out[stat] = v
	}
	return out
}

func coerceNumber(v any) float64 {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0
		}
		return n
	case float32:
		return coerceNumber(float64(n))
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return f
	default:
		return 0
	}
}

// pitchingRename maps the stat provider's pitching abbreviations onto the
// scoring table's names. The pitching side of H/BB/SO means hits allowed,
// walks allowed, and strikeouts thrown, which the league tables score as
// HA/BBA/K; an unmapped lookup would silently score them zero.
var pitchingRename = map[string]string{
	"IP": "IP", "W": "W", "L": "L", "SV": "SV", "HLD": "HLD",
	"ER": "ER", "H": "HA", "BB": "BBA", "SO": "K", "QS": "QS",
	"CG": "CG", "ShO": "SO",
}

// ScoreBatting computes a batter's fantasy point total. When the line lacks a
// singles figure but has hits, singles are derived as H - 2B - 3B - HR; a
// negative result from inconsistent source data is scored as computed, not
// clamped, so the discrepancy stays visible downstream.
func ScoreBatting(stats StatLine, table PointTable) float64 {
	points := 0.0

	singles, haveSingles := stats["1B"]
	if !haveSingles {
		if hits, ok := stats["H"]; ok {
			singles = hits - stats["2B"] - stats["3B"] - stats["HR"]
			haveSingles = true
		}
	}

	for _, stat := range sortedStats(stats) {
		if mult, ok := table[stat]; ok {
			points += stats[stat] * mult
		}
	}
	if _, inLine := stats["1B"]; !inLine && haveSingles {
		if mult, ok := table["1B"]; ok {
			points += singles * mult
		}
	}

	return roundPoints(points)
}

// ScorePitching computes a pitcher's fantasy point total, renaming raw stats
// to the table's names before lookup.
func ScorePitching(stats StatLine, table PointTable) float64 {
	points := 0.0

	for _, stat := range sortedStats(stats) {
		name, ok := pitchingRename[stat]
		if !ok {
			continue
		}
		if mult, ok := table[name]; ok {
			points += stats[stat] * mult
		}
	}

	return roundPoints(points)
}

// sortedStats fixes accumulation order so totals are bit-for-bit reproducible
// across runs regardless of map iteration order.
func sortedStats(stats StatLine) []string {
	keys := make([]string, 0, len(stats))
	for stat := range stats {
		keys = append(keys, stat)
	}
	sort.Strings(keys)
	return keys
}

// roundPoints rounds to one decimal place, half away from zero. Ties at .x5
// therefore round up in magnitude, which is the convention league history was
// built on.
func roundPoints(points float64) float64 {
	return math.Round(points*10) / 10
}
