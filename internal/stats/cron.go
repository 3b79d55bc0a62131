package stats

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"
)

type Scheduler struct {
	service *Service
	spec    string
	cron    *cron.Cron
}

func NewScheduler(service *Service, spec string) *Scheduler {
	return &Scheduler{service: service, spec: spec}
}

// Start begins the periodic cache warm. Spec uses the six-field cron
// format (with seconds).
func (s *Scheduler) Start() {
	c := cron.New(cron.WithSeconds())

	_, err := c.AddFunc(s.spec, func() {
		s.service.Warm(context.Background())
	})
	if err != nil {
		log.Printf("Failed to create stats warm job: %v", err)
		return
	}

	log.Printf("Stats scheduler started (spec %q)", s.spec)
	c.Start()
	s.cron = c
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}
