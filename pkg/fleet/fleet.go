package fleet

import (
	"context"
	"sync"
	"time"

	"litenby.com/sound-locator-fleet/pkg/db"
	"litenby.com/sound-locator-fleet/pkg/models"
)

type ILiveness interface {
	Upsert(input *models.NodeUpdate) (*models.NodeRecord, error)
	Get(key string) (*models.NodeRecord, bool)
	All() []models.NodeRecord
}

type IRollup interface {
	Aggregate(station string, nodes []models.NodeRecord) models.StationRollup
	All() []models.StationRollup
}

type IPublisher interface {
	PublishNode(rec *models.NodeRecord)
	PublishStation(rollup *models.StationRollup)
}

// Fleet owns the authoritative in-memory liveness state. Durable storage is
// only a mirror of it; it is never read back while the process runs.
type Fleet struct {
	Db         db.DB
	Thresholds ThresholdConfig

	Liveness  ILiveness
	Rollup    IRollup
	Publisher IPublisher

	nodes    sync.Map // key -> *models.NodeRecord, records are never mutated in place
	stations sync.Map // station -> *models.StationRollup

	feed   *Feed
	mirror *mirror

	now func() time.Time
}

type ServiceOpts struct {
	Liveness  ILiveness
	Rollup    IRollup
	Publisher IPublisher
}

func New(dbInstance db.DB, thresholds ThresholdConfig, mirrorQueue int) *Fleet {
	f := &Fleet{
		Db:         dbInstance,
		Thresholds: thresholds,
		feed:       newFeed(),
		now:        time.Now,
	}
	f.mirror = newMirror(dbInstance, mirrorQueue)
	return f.WithServices(ServiceOpts{
		Liveness:  f.GetILiveness(),
		Rollup:    f.GetIRollup(),
		Publisher: f.GetIPublisher(),
	})
}

func (f *Fleet) WithServices(opts ServiceOpts) *Fleet {
	if opts.Liveness != nil {
		f.Liveness = opts.Liveness
	}
	if opts.Rollup != nil {
		f.Rollup = opts.Rollup
	}
	if opts.Publisher != nil {
		f.Publisher = opts.Publisher
	}
	return f
}

// Feed exposes the live change feed for subscribers (the websocket layer).
func (f *Fleet) Feed() *Feed {
	return f.feed
}

// Start launches the durable mirror worker. The sweep has its own lifecycle
// (see Sweeper).
func (f *Fleet) Start(ctx context.Context) {
	f.mirror.start(ctx)
}

// Stop drains nothing: queued mirror writes not yet applied are dropped,
// which the monitoring data tolerates.
func (f *Fleet) Stop() {
	f.mirror.stop()
}
