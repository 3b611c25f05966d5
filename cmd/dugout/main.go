package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fortuna/dugout/internal/api/rest"
	"github.com/fortuna/dugout/internal/api/websocket"
	"github.com/fortuna/dugout/internal/cache"
	"github.com/fortuna/dugout/internal/config"
	"github.com/fortuna/dugout/internal/ingest/fangraphs"
	"github.com/fortuna/dugout/internal/ingest/yahoo"
	"github.com/fortuna/dugout/internal/scheduler"
	"github.com/fortuna/dugout/internal/service"
	"github.com/fortuna/dugout/internal/store"
)

const (
	serviceName    = "dugout"
	serviceVersion = "1.0.0"
)

func main() {
	log.Printf("Starting %s v%s - Fantasy Baseball League Service", serviceName, serviceVersion)

	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize Yahoo client
	yahooClient, err := yahoo.NewClient(ctx, cfg.Yahoo.APIBase, cfg.Yahoo.CredentialsPath)
	if err != nil {
		log.Fatalf("Failed to initialize Yahoo client: %v", err)
	}
	league := yahoo.NewLeague(yahooClient, cfg.League.KeyOverrides)

	log.Println("✓ Yahoo client initialized")

	// Initialize Redis cache with retry logic. The stat provider works
	// without it, so startup survives Redis being down.
	var redisCache *cache.RedisCache
	maxRetries := 10
	retryDelay := 2 * time.Second

	log.Println("Connecting to Redis...")
	for i := 0; i < maxRetries; i++ {
		redisCache, err = cache.NewRedisCache(cfg.Redis.URL)
		if err == nil {
			break
		}
		if i < maxRetries-1 {
			log.Printf("Redis connection attempt %d/%d failed: %v (retrying in %v)", i+1, maxRetries, err, retryDelay)
			time.Sleep(retryDelay)
		}
	}

	var statCache fangraphs.Cache
	if redisCache != nil {
		defer redisCache.Close()
		statCache = redisCache
		log.Println("✓ Connected to Redis")
	} else {
		log.Printf("⚠ Redis unavailable after %d attempts, leaderboard caching disabled", maxRetries)
	}

	// Initialize stat provider
	statClient := fangraphs.NewClient("", statCache)
	defer statClient.Close()

	log.Println("✓ Stat provider initialized")

	// Initialize archive and collector
	archive := store.NewArchive(cfg.DataDir, cfg.League.CurrentSeason)

	// Initialize WebSocket server (progress sink for the collector)
	wsServer := websocket.NewServer()

	players := service.NewPlayerService(league, statClient)
	collector := service.NewCollector(league, players, archive, service.CollectorConfig{
		LeagueName:        cfg.League.Name,
		CurrentSeason:     cfg.League.CurrentSeason,
		HistoricalSeasons: cfg.League.HistoricalSeasons,
		FoundedYear:       cfg.League.FoundedYear,
		TotalTeams:        cfg.League.TotalTeams,
	}, wsServer.BroadcastProgress)

	// Initialize scheduler
	sched, err := scheduler.NewScheduler(collector)
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}
	if err := sched.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	log.Println("✓ Scheduler started")

	// Initialize REST API server
	restServer := rest.NewServer(cfg.Server.RESTPort, archive, collector, cfg.League.CurrentSeason)
	go func() {
		if err := restServer.Start(); err != nil {
			log.Printf("REST server error: %v", err)
		}
	}()

	log.Printf("✓ REST API server listening on :%s", cfg.Server.RESTPort)

	go func() {
		if err := wsServer.Start(cfg.Server.WSPort); err != nil {
			log.Printf("WebSocket server error: %v", err)
		}
	}()

	log.Printf("✓ WebSocket server listening on :%s", cfg.Server.WSPort)
	log.Printf("✓ %s v%s started successfully", serviceName, serviceVersion)
	log.Printf("  REST API: http://0.0.0.0:%s", cfg.Server.RESTPort)
	log.Printf("  WebSocket: ws://0.0.0.0:%s/ws/progress", cfg.Server.WSPort)

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down gracefully...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := restServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("REST API server shutdown error: %v", err)
	}
	if err := wsServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("WebSocket server shutdown error: %v", err)
	}

	log.Println("Stopped")
}
