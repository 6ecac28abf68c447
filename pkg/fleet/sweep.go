package fleet

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"litenby.com/sound-locator-fleet/pkg/common"
	"litenby.com/sound-locator-fleet/pkg/models"
)

// Sweeper periodically re-evaluates every tracked node against the aging
// thresholds. It only ever moves a node forward (OK -> STALE -> OFFLINE);
// a fresh heartbeat is the only way back to OK.
type Sweeper struct {
	fleet  *Fleet
	period time.Duration

	cancel   context.CancelFunc
	done     chan struct{}
	stopOnce sync.Once
}

func NewSweeper(f *Fleet, period time.Duration) *Sweeper {
	return &Sweeper{
		fleet:  f,
		period: period,
		done:   make(chan struct{}),
	}
}

func (s *Sweeper) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	go s.run(ctx)
}

// Stop cancels the sweep loop and waits for the in-flight pass, if any, to
// finish. Safe to call more than once.
func (s *Sweeper) Stop() {
	if s.cancel == nil {
		return
	}
	s.stopOnce.Do(func() {
		s.cancel()
		<-s.done
	})
}

func (s *Sweeper) run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.fleet.sweepOnce()
		}
	}
}

func (f *Fleet) sweepOnce() {
	logger := common.GetLoggerWith(
		common.LoggerNameFleetCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategorySweep),
	)

	now := f.now()

	f.nodes.Range(func(_, v any) bool {
		rec := v.(*models.NodeRecord)

		if rec.LastSeen.IsZero() {
			// cannot age a record with no usable lastSeen; leave it alone
			logger.Warn("Node record has no lastSeen, skipping", zap.String("key", rec.Key))
			return true
		}

		next := EvaluateStatus(now, rec.LastSeen, f.Thresholds.ForKind(rec.Kind))
		if statusRank(next) <= statusRank(rec.Status) {
			return true
		}

		updated, swapped := f.replaceStatus(rec, next)
		if !swapped {
			// a heartbeat landed after our snapshot; its state wins
			return true
		}

		logger.Info("Node aged out",
			zap.String("key", updated.Key),
			zap.String("from", string(rec.Status)),
			zap.String("to", string(updated.Status)))

		if f.Publisher != nil {
			f.Publisher.PublishNode(updated)
		}
		f.refreshStation(updated.Station)
		return true
	})
}
