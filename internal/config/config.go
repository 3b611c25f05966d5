// Package config loads service configuration from the environment, with a
// .env file honored when present.
package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	League  League
	Yahoo   Yahoo
	Redis   Redis
	Server  Server
	DataDir string `envconfig:"DATA_DIR" default:"./data"`
}

type League struct {
	Name              string `envconfig:"LEAGUE_NAME" default:"Fantasy Baseball"`
	CurrentSeason     int    `envconfig:"CURRENT_SEASON" required:"true"`
	FoundedYear       int    `envconfig:"FOUNDED_YEAR" default:"2017"`
	TotalTeams        int    `envconfig:"TOTAL_TEAMS" default:"12"`
	HistoricalSeasons []int  `envconfig:"HISTORICAL_SEASONS"`

	// KeyOverrides pins seasons whose league key the season discovery walk
	// cannot find, as "year:game.l.id" pairs.
	KeyOverrides map[int]string `envconfig:"LEAGUE_KEY_OVERRIDES" default:"2020:398.l.17906"`
}

type Yahoo struct {
	CredentialsPath string `envconfig:"YAHOO_CREDENTIALS" default:"./credentials.json"`
	APIBase         string `envconfig:"YAHOO_API_BASE" default:"https://fantasysports.yahooapis.com/fantasy/v2"`
}

type Redis struct {
	URL string `envconfig:"REDIS_URL" default:"redis://localhost:6379"`
}

type Server struct {
	RESTPort string `envconfig:"REST_PORT" default:"8080"`
	WSPort   string `envconfig:"WS_PORT" default:"8081"`
}

func New() (*Config, error) {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, err
	}

	if len(c.League.HistoricalSeasons) == 0 {
		for year := c.League.FoundedYear; year < c.League.CurrentSeason; year++ {
			c.League.HistoricalSeasons = append(c.League.HistoricalSeasons, year)
		}
	}

	return &c, nil
}
