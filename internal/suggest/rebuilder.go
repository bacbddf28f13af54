package suggest

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Rebuilder wraps robfig/cron and keeps the index vocabulary fresh.
type Rebuilder struct {
	cron   *cron.Cron
	index  *Index
	logger *log.Logger
	spec   string
}

func NewRebuilder(index *Index, every time.Duration, logger *log.Logger) *Rebuilder {
	if every <= 0 {
		every = 15 * time.Minute
	}
	return &Rebuilder{
		cron:   cron.New(),
		index:  index,
		logger: logger,
		spec:   fmt.Sprintf("@every %s", every),
	}
}

// Start registers the rebuild job and runs one build immediately so the
// index serves suggestions without waiting for the first tick.
func (r *Rebuilder) Start(ctx context.Context) error {
	_, err := r.cron.AddFunc(r.spec, func() {
		r.rebuild(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	r.cron.Start()
	r.logger.Printf("[Suggest] rebuild scheduled spec=%s", r.spec)

	go r.rebuild(ctx)
	return nil
}

func (r *Rebuilder) Stop() {
	r.cron.Stop()
	r.logger.Printf("[Suggest] rebuild scheduler stopped")
}

func (r *Rebuilder) rebuild(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	_ = r.index.Rebuild(ctx)
}
