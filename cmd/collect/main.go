// Command collect runs the collection pipelines once and exits. It is the
// manual counterpart to the service's scheduler, used for initial archive
// builds and for re-running a single season after a data fix.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/fortuna/dugout/internal/cache"
	"github.com/fortuna/dugout/internal/config"
	"github.com/fortuna/dugout/internal/ingest/fangraphs"
	"github.com/fortuna/dugout/internal/ingest/yahoo"
	"github.com/fortuna/dugout/internal/service"
	"github.com/fortuna/dugout/internal/store"
)

const appName = "dugout-collect"

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: %s [flags] <command>

Commands:
  setup        archive every historical season plus the current one
  weekly       refresh the current season's league data
  players      build player stats and careers for every season
  full         weekly + current season players + careers
  check        list seasons reachable with the configured credentials
  test-year N  collect a single season without touching the others

Flags:
`, appName)
	flag.PrintDefaults()
}

func main() {
	timeout := flag.Duration("timeout", 30*time.Minute, "overall run timeout")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}
	command := flag.Arg(0)

	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	yahooClient, err := yahoo.NewClient(ctx, cfg.Yahoo.APIBase, cfg.Yahoo.CredentialsPath)
	if err != nil {
		log.Fatalf("Failed to initialize Yahoo client: %v", err)
	}
	league := yahoo.NewLeague(yahooClient, cfg.League.KeyOverrides)

	// Cache is best-effort for one-shot runs
	var statCache fangraphs.Cache
	if redisCache, err := cache.NewRedisCache(cfg.Redis.URL); err == nil {
		defer redisCache.Close()
		statCache = redisCache
	} else {
		log.Printf("⚠ Redis unavailable, leaderboard caching disabled: %v", err)
	}

	statClient := fangraphs.NewClient("", statCache)
	defer statClient.Close()

	archive := store.NewArchive(cfg.DataDir, cfg.League.CurrentSeason)
	players := service.NewPlayerService(league, statClient)
	collector := service.NewCollector(league, players, archive, service.CollectorConfig{
		LeagueName:        cfg.League.Name,
		CurrentSeason:     cfg.League.CurrentSeason,
		HistoricalSeasons: cfg.League.HistoricalSeasons,
		FoundedYear:       cfg.League.FoundedYear,
		TotalTeams:        cfg.League.TotalTeams,
	}, func(ev service.ProgressEvent) {
		if ev.Error != "" {
			log.Printf("⚠ [%s] season %d: %s", ev.Stage, ev.Season, ev.Error)
		}
	})

	switch command {
	case "setup":
		err = collector.InitialSetup(ctx)
	case "weekly":
		err = collector.WeeklyUpdate(ctx)
	case "players":
		err = collector.PlayerDataSetup(ctx)
	case "full":
		err = collector.FullWeeklyUpdate(ctx)
	case "check":
		err = runCheck(ctx, league, cfg)
	case "test-year":
		if flag.NArg() < 2 {
			log.Fatalf("test-year needs a season, e.g. test-year 2021")
		}
		year, convErr := strconv.Atoi(flag.Arg(1))
		if convErr != nil {
			log.Fatalf("Bad season %q: %v", flag.Arg(1), convErr)
		}
		err = collector.TestYear(ctx, year)
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatalf("%s failed: %v", command, err)
	}
	log.Printf("✓ %s completed", command)
}

// runCheck walks the league's seasons and reports which ones the configured
// credentials can actually reach, without writing anything.
func runCheck(ctx context.Context, league *yahoo.League, cfg *config.Config) error {
	from := cfg.League.FoundedYear
	to := cfg.League.CurrentSeason

	seasons, err := league.AvailableSeasons(ctx, from, to)
	if err != nil {
		return err
	}

	log.Printf("Seasons reachable between %d and %d:", from, to)
	reachable := make(map[int]bool, len(seasons))
	for _, year := range seasons {
		reachable[year] = true
	}
	for year := from; year <= to; year++ {
		mark := "✗"
		if reachable[year] {
			mark = "✓"
		}
		log.Printf("  %s %d", mark, year)
	}
	return nil
}
