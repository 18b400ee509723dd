package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"tcg_monitor/config"
	"tcg_monitor/monitor"
)

// Scheduler drives monitoring cycles on a fixed interval or a cron
// expression, plus the optional graph-capture job on its own cron. The
// inter-cycle sleep is the only place cancellation is waited on; a cycle in
// flight finishes naturally.
type Scheduler struct {
	cfg     *config.Config
	monitor *monitor.Monitor
	graphs  *monitor.GraphJob
	cron    *cron.Cron
	ticker  *time.Ticker
	stopCh  chan struct{}
}

func New(cfg *config.Config, mon *monitor.Monitor, graphs *monitor.GraphJob) *Scheduler {
	return &Scheduler{
		cfg:     cfg,
		monitor: mon,
		graphs:  graphs,
		cron:    cron.New(),
		stopCh:  make(chan struct{}),
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	if s.cfg.Monitoring.Cron != "" {
		log.Printf("Starting scheduler with cron: %s", s.cfg.Monitoring.Cron)
		_, err := s.cron.AddFunc(s.cfg.Monitoring.Cron, func() {
			s.runCycle(ctx)
		})
		if err != nil {
			return fmt.Errorf("invalid cron expression: %w", err)
		}
	} else {
		log.Printf("Starting scheduler with interval: %s", s.cfg.Monitoring.Interval)
		s.ticker = time.NewTicker(s.cfg.Monitoring.Interval)
		go func() {
			for {
				select {
				case <-s.ticker.C:
					s.runCycle(ctx)
				case <-s.stopCh:
					return
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	if s.graphs != nil && s.cfg.Graphs.Enabled {
		log.Printf("Starting graph capture with cron: %s", s.cfg.Graphs.Cron)
		_, err := s.cron.AddFunc(s.cfg.Graphs.Cron, func() {
			s.graphs.Run(ctx)
		})
		if err != nil {
			return fmt.Errorf("invalid graph cron expression: %w", err)
		}
	}

	s.cron.Start()
	return nil
}

func (s *Scheduler) runCycle(ctx context.Context) {
	if err := s.monitor.RunCycle(ctx); err != nil {
		log.Printf("Scheduled cycle error: %v", err)
	}
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
	if s.ticker != nil {
		s.ticker.Stop()
	}
	close(s.stopCh)
}
