package scoring

import "testing"

func TestScoreBatting(t *testing.T) {
	table := PointTable{"1B": 2.6, "2B": 5.2, "HR": 10.4}

	got := ScoreBatting(StatLine{"1B": 2, "2B": 1, "HR": 1}, table)
	if got != 20.8 {
		t.Errorf("ScoreBatting = %v, want 20.8", got)
	}
}

func TestScoreBattingDerivesSingles(t *testing.T) {
	table := PointTable{"1B": 2.6, "HR": 10.4}

	// 10 hits minus 2 doubles, 1 triple, 3 HR leaves 4 singles.
	got := ScoreBatting(StatLine{"H": 10, "2B": 2, "3B": 1, "HR": 3}, table)
	want := 4*2.6 + 3*10.4
	if got != roundPoints(want) {
		t.Errorf("ScoreBatting = %v, want %v", got, roundPoints(want))
	}
}

func TestScoreBattingExplicitSinglesWin(t *testing.T) {
	table := PointTable{"1B": 2.6}

	// A line that already carries singles is scored as-is, not re-derived.
	got := ScoreBatting(StatLine{"1B": 5, "H": 10, "2B": 2, "3B": 1, "HR": 3}, table)
	if got != 13.0 {
		t.Errorf("ScoreBatting = %v, want 13.0", got)
	}
}

func TestScoreBattingNegativeSinglesPassthrough(t *testing.T) {
	table := PointTable{"1B": 2.6}

	// Inconsistent source rows can derive negative singles; the engine
	// propagates the computed value rather than clamping it.
	got := ScoreBatting(StatLine{"H": 2, "2B": 1, "3B": 1, "HR": 1}, table)
	if got != -2.6 {
		t.Errorf("ScoreBatting = %v, want -2.6", got)
	}
}

func TestScoreBattingMissingStatContributesZero(t *testing.T) {
	table := PointTable{"HR": 10.4, "RBI": 1.9}

	got := ScoreBatting(StatLine{"HR": 1}, table)
	if got != 10.4 {
		t.Errorf("ScoreBatting = %v, want 10.4", got)
	}
}

func TestScorePitchingRename(t *testing.T) {
	table := PointTable{"HA": -1, "BBA": -1, "K": 3}

	// Raw H/BB/SO are the pitching-side stats and must hit HA/BBA/K in the
	// table; an unmapped lookup would score all three as zero.
	got := ScorePitching(StatLine{"H": 5, "BB": 2, "SO": 8}, table)
	if got != 17.0 {
		t.Errorf("ScorePitching = %v, want 17.0", got)
	}
}

func TestScorePitchingDefaultTableScoresAllowedStats(t *testing.T) {
	// The default table keys hits/walks allowed as HA/BBA/K so the rename
	// map reaches them on seasons with no declared settings. 2*-1 + 1*-1
	// + 3*3 = 6.0; keyed H/BB/SO they would silently score zero.
	got := ScorePitching(StatLine{"H": 2, "BB": 1, "SO": 3}, DefaultPitchingTable)
	if got != 6.0 {
		t.Errorf("ScorePitching = %v, want 6.0", got)
	}
}

func TestScorePitchingShutouts(t *testing.T) {
	table := DefaultPitchingTable

	got := ScorePitching(StatLine{"ShO": 2, "CG": 2}, table)
	if got != 2*5.0+2*5.0 {
		t.Errorf("ScorePitching = %v, want 20.0", got)
	}
}

func TestScoreEmptyLines(t *testing.T) {
	if got := ScoreBatting(StatLine{}, DefaultBattingTable); got != 0.0 {
		t.Errorf("ScoreBatting(empty) = %v, want 0.0", got)
	}
	if got := ScorePitching(nil, DefaultPitchingTable); got != 0.0 {
		t.Errorf("ScorePitching(nil) = %v, want 0.0", got)
	}
}

func TestStatLineFromRawCoercion(t *testing.T) {
	line := StatLineFromRaw(map[string]any{
		"HR":   float64(30),
		"RBI":  "95",
		"SB":   nil,
		"AVG":  "not a number",
		"H":    152,
		"OPS":  float32(0.5),
		"WOBA": []string{"junk"},
	})

	want := map[string]float64{"HR": 30, "RBI": 95, "SB": 0, "AVG": 0, "H": 152, "WOBA": 0}
	for stat, v := range want {
		if line[stat] != v {
			t.Errorf("line[%q] = %v, want %v", stat, line[stat], v)
		}
	}
}

func TestRoundPoints(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{20.84, 20.8},
		{20.85, 20.9}, // half rounds away from zero
		{-20.85, -20.9},
		{0.04, 0.0},
		{17.0, 17.0},
	}
	for _, tt := range tests {
		if got := roundPoints(tt.in); got != tt.want {
			t.Errorf("roundPoints(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
