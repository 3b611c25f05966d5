package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDerivesHistoricalSeasons(t *testing.T) {
	t.Setenv("CURRENT_SEASON", "2025")
	t.Setenv("FOUNDED_YEAR", "2022")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, []int{2022, 2023, 2024}, cfg.League.HistoricalSeasons)
	assert.Equal(t, "398.l.17906", cfg.League.KeyOverrides[2020])
}

func TestNewHonorsExplicitSeasons(t *testing.T) {
	t.Setenv("CURRENT_SEASON", "2025")
	t.Setenv("HISTORICAL_SEASONS", "2019,2021,2023")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, []int{2019, 2021, 2023}, cfg.League.HistoricalSeasons)
}

func TestNewRequiresCurrentSeason(t *testing.T) {
	t.Setenv("CURRENT_SEASON", "")

	_, err := New()
	assert.Error(t, err)
}
