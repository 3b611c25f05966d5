// Package scheduler drives the standing collection cadence: a full weekly
// update after each scoring week closes, and a lighter standings refresh
// mid-week during the season.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/fortuna/dugout/internal/service"
	"github.com/go-co-op/gocron/v2"
)

type Scheduler struct {
	s         gocron.Scheduler
	collector *service.Collector
	location  *time.Location
}

// inSeason reports whether t falls inside the MLB season window. Spring
// training games in late February are ignored; regular season plus playoffs
// run March through October.
func inSeason(t time.Time) bool {
	return t.Month() >= time.March && t.Month() <= time.October
}

func NewScheduler(collector *service.Collector) (*Scheduler, error) {
	// Yahoo closes scoring weeks on US Eastern time.
	location, err := time.LoadLocation("America/New_York")
	if err != nil {
		return nil, fmt.Errorf("loading league timezone: %w", err)
	}

	s, err := gocron.NewScheduler(
		gocron.WithLocation(location),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{s: s, collector: collector, location: location}, nil
}

func (s *Scheduler) Start() error {
	var err error

	// Full weekly update - Tuesday 04:00, after Monday's games settle and
	// Yahoo finalizes the scoring week
	_, err = s.s.NewJob(
		gocron.WeeklyJob(1, gocron.NewWeekdays(time.Tuesday), gocron.NewAtTimes(gocron.NewAtTime(4, 0, 0))),
		gocron.NewTask(s.runFullWeekly),
	)
	if err != nil {
		return fmt.Errorf("failed to create weekly update job: %w", err)
	}

	// Mid-week standings refresh - Friday 04:00
	_, err = s.s.NewJob(
		gocron.WeeklyJob(1, gocron.NewWeekdays(time.Friday), gocron.NewAtTimes(gocron.NewAtTime(4, 0, 0))),
		gocron.NewTask(s.runStandingsRefresh),
	)
	if err != nil {
		return fmt.Errorf("failed to create standings refresh job: %w", err)
	}

	s.s.Start()
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

func (s *Scheduler) runFullWeekly() {
	if !inSeason(time.Now().In(s.location)) {
		log.Println("[scheduler] off-season, skipping full weekly update")
		return
	}
	log.Println("[scheduler] starting full weekly update")
	if err := s.collector.FullWeeklyUpdate(context.Background()); err != nil {
		log.Printf("⚠ [scheduler] full weekly update failed: %v", err)
		return
	}
	log.Println("✓ [scheduler] full weekly update complete")
}

func (s *Scheduler) runStandingsRefresh() {
	if !inSeason(time.Now().In(s.location)) {
		log.Println("[scheduler] off-season, skipping standings refresh")
		return
	}
	log.Println("[scheduler] starting standings refresh")
	if err := s.collector.WeeklyUpdate(context.Background()); err != nil {
		log.Printf("⚠ [scheduler] standings refresh failed: %v", err)
		return
	}
	log.Println("✓ [scheduler] standings refresh complete")
}
