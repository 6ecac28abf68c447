package fleet

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"gorm.io/gorm/clause"
	"litenby.com/sound-locator-fleet/pkg/common"
	"litenby.com/sound-locator-fleet/pkg/db"
	"litenby.com/sound-locator-fleet/pkg/models"
)

const defaultMirrorQueue = 256

// mirror copies every state change to durable storage on a worker
// goroutine, off the ingest/sweep paths. Write failures are logged, never
// retried; under sustained overload the queue drops new items.
type mirror struct {
	db    db.DB
	queue chan mirrorItem

	done     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

type mirrorItem struct {
	node    *models.NodeRecord
	station *models.StationRollup
}

func newMirror(dbInstance db.DB, queueSize int) *mirror {
	if queueSize <= 0 {
		queueSize = defaultMirrorQueue
	}
	return &mirror{
		db:    dbInstance,
		queue: make(chan mirrorItem, queueSize),
		done:  make(chan struct{}),
	}
}

func (m *mirror) start(ctx context.Context) {
	m.wg.Add(1)
	go m.run(ctx)
}

func (m *mirror) stop() {
	m.stopOnce.Do(func() {
		close(m.done)
	})
	m.wg.Wait()
}

func (m *mirror) run(ctx context.Context) {
	defer m.wg.Done()

	logger := common.GetLoggerWith(
		common.LoggerNameFleetCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryMirror),
	)

	for {
		select {
		case <-ctx.Done():
			return
		case <-m.done:
			return
		case item := <-m.queue:
			m.write(item, logger)
		}
	}
}

func (m *mirror) write(item mirrorItem, logger *zap.Logger) {
	if item.node != nil {
		err := m.db.Conn.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			UpdateAll: true,
		}).Create(item.node).Error
		if err != nil {
			logger.Error("Failed to mirror node record", zap.String("key", item.node.Key), zap.Error(err))
		}
	}

	if item.station != nil {
		err := m.db.Conn.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "station"}},
			UpdateAll: true,
		}).Create(item.station).Error
		if err != nil {
			logger.Error("Failed to mirror station rollup", zap.String("station", item.station.Station), zap.Error(err))
		}
	}
}

func (m *mirror) enqueueNode(rec *models.NodeRecord) {
	m.enqueue(mirrorItem{node: rec})
}

func (m *mirror) enqueueStation(rollup *models.StationRollup) {
	m.enqueue(mirrorItem{station: rollup})
}

func (m *mirror) enqueue(item mirrorItem) {
	select {
	case m.queue <- item:
	default:
		logger := common.GetLoggerWith(
			common.LoggerNameFleetCore,
			zap.String(common.LoggerFieldCategory, common.LoggerCategoryMirror),
		)
		logger.Warn("Mirror queue full, dropping write")
	}
}

// Rehydrate loads mirrored node records into the store at boot. Persisted
// statuses are kept as-is; the first sweep re-ages them. After this call
// durable storage is not consulted again.
func (f *Fleet) Rehydrate() error {
	var recs []models.NodeRecord
	if err := f.Db.Conn.Find(&recs).Error; err != nil {
		return err
	}

	stations := make(map[string]bool)
	for i := range recs {
		rec := recs[i]
		f.nodes.LoadOrStore(rec.Key, &rec)
		stations[rec.Station] = true
	}

	nodes := f.allNodes()
	for station := range stations {
		rollup := f.Rollup.Aggregate(station, nodes)
		f.stations.Store(station, &rollup)
	}
	return nil
}
