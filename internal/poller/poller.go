// Package poller runs the periodic case-feed sampling loop that synthesizes
// automatic alerts.
package poller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/epidemicwatch/risk-service/internal/alert"
	"github.com/epidemicwatch/risk-service/internal/observability"
)

// CaseFeed supplies per-country case counts.
type CaseFeed interface {
	Countries(ctx context.Context) ([]alert.CountryStats, error)
}

// AlertSink receives accepted alerts for export. May be nil.
type AlertSink interface {
	Publish(ctx context.Context, a alert.Alert) error
}

// Poller fetches the case feed on a fixed period and stores any alerts the
// analyzer produces. Fetch failures are swallowed: one failed cycle has no
// effect and the next cycle starts fresh, with no backoff or retry.
type Poller struct {
	feed       CaseFeed
	store      *alert.Store
	sink       AlertSink
	thresholds alert.Thresholds
	interval   time.Duration
	logger     *slog.Logger
	metrics    *observability.Metrics

	mu   sync.Mutex
	cron *cron.Cron
}

// New creates a Poller. sink may be nil to disable alert export.
func New(feed CaseFeed, store *alert.Store, sink AlertSink, thresholds alert.Thresholds, interval time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Poller {
	return &Poller{
		feed:       feed,
		store:      store,
		sink:       sink,
		thresholds: thresholds,
		interval:   interval,
		logger:     logger,
		metrics:    metrics,
	}
}

// Start runs an immediate poll and schedules the periodic loop. The loop
// stops when ctx is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) error {
	p.Poll(ctx)

	c := cron.New()
	_, err := c.AddFunc(fmt.Sprintf("@every %s", p.interval), func() {
		p.Poll(ctx)
	})
	if err != nil {
		return fmt.Errorf("schedule poll: %w", err)
	}

	c.Start()
	p.mu.Lock()
	p.cron = c
	p.mu.Unlock()
	p.metrics.PollerRunning.Set(1)
	p.logger.Info("case feed poller started", "interval", p.interval)

	go func() {
		<-ctx.Done()
		p.Stop()
	}()

	return nil
}

// Stop halts the periodic loop. Safe to call more than once.
func (p *Poller) Stop() {
	p.mu.Lock()
	c := p.cron
	p.cron = nil
	p.mu.Unlock()
	if c == nil {
		return
	}
	<-c.Stop().Done()
	p.metrics.PollerRunning.Set(0)
	p.logger.Info("case feed poller stopped")
}

// CheckReadiness reports ready once the periodic loop is scheduled.
func (p *Poller) CheckReadiness(_ context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cron == nil {
		return errors.New("poller not running")
	}
	return nil
}

// Poll runs one automated sampling cycle. Errors are logged and swallowed.
func (p *Poller) Poll(ctx context.Context) {
	p.metrics.PollCycles.Inc()

	countries, err := p.feed.Countries(ctx)
	if err != nil {
		p.metrics.PollErrors.Inc()
		p.logger.Warn("case feed fetch failed", "error", err)
		return
	}

	added := p.storeAlerts(ctx, alert.AnalyzeCountries(countries, p.thresholds))
	if added > 0 {
		p.logger.Info("auto alerts created", "count", added)
	}
}

// Refresh runs a manually triggered cycle. Unlike Poll, a fetch failure
// substitutes the fixed demo alerts so the dashboard always has content to
// show. Returns the number of alerts accepted into the store.
func (p *Poller) Refresh(ctx context.Context) int {
	p.metrics.PollCycles.Inc()

	countries, err := p.feed.Countries(ctx)
	if err != nil {
		p.metrics.PollErrors.Inc()
		p.logger.Warn("manual refresh fetch failed, substituting demo alerts", "error", err)
		return p.storeAlerts(ctx, alert.DemoAlerts())
	}

	return p.storeAlerts(ctx, alert.AnalyzeCountries(countries, p.thresholds))
}

// storeAlerts inserts each alert, updating metrics and forwarding accepted
// alerts to the export sink.
func (p *Poller) storeAlerts(ctx context.Context, alerts []alert.Alert) int {
	added := 0
	for _, a := range alerts {
		if !p.store.Add(a) {
			continue
		}
		added++
		p.metrics.AlertsCreated.WithLabelValues(string(a.Origin), string(a.Severity)).Inc()
		if p.sink != nil {
			if err := p.sink.Publish(ctx, a); err != nil {
				p.logger.Warn("alert export failed", "alert_id", a.ID, "error", err)
			}
		}
	}
	p.metrics.AlertsStored.Set(float64(p.store.Len()))
	return added
}
