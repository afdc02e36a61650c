package session

import (
	"context"
	"time"

	"go.uber.org/zap"

	"campus-lms/backend/internal/dto"
)

// Alerter receives one-time poller alerts
type Alerter interface {
	Alert(alert dto.Alert)
}

// AlerterFunc adapts a func to Alerter
type AlerterFunc func(alert dto.Alert)

// Alert calls f
func (f AlerterFunc) Alert(alert dto.Alert) { f(alert) }

// checkFunc one poller tick; nil alert means nothing new
type checkFunc func(ctx context.Context) (*dto.Alert, error)

// poller runs check on a fixed interval until ctx is cancelled.
// A failed tick is logged and retried on the next interval.
type poller struct {
	name     string
	interval time.Duration
	check    checkFunc
	alerter  Alerter
	logger   *zap.Logger
}

func (p *poller) run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Debug("poller started", zap.String("poller", p.name), zap.Duration("interval", p.interval))
	defer p.logger.Debug("poller stopped", zap.String("poller", p.name))

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

func (p *poller) tick(ctx context.Context) {
	alert, err := p.check(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		p.logger.Warn("poller tick failed", zap.String("poller", p.name), zap.Error(err))
		return
	}
	if alert != nil && ctx.Err() == nil {
		p.alerter.Alert(*alert)
	}
}
