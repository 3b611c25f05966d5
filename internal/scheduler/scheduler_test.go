package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInSeason(t *testing.T) {
	cases := []struct {
		name string
		date time.Time
		want bool
	}{
		{"opening week", time.Date(2024, time.March, 28, 4, 0, 0, 0, time.UTC), true},
		{"midsummer", time.Date(2024, time.July, 4, 4, 0, 0, 0, time.UTC), true},
		{"world series", time.Date(2024, time.October, 25, 4, 0, 0, 0, time.UTC), true},
		{"offseason november", time.Date(2024, time.November, 5, 4, 0, 0, 0, time.UTC), false},
		{"offseason january", time.Date(2025, time.January, 14, 4, 0, 0, 0, time.UTC), false},
		{"spring training", time.Date(2025, time.February, 20, 4, 0, 0, 0, time.UTC), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, inSeason(tc.date))
		})
	}
}
