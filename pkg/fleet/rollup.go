package fleet

import (
	"sort"

	"go.uber.org/zap"
	"litenby.com/sound-locator-fleet/pkg/common"
	"litenby.com/sound-locator-fleet/pkg/models"
)

// aggregateStation derives a station's rollup from any node set: DOWN beats
// DEGRADED beats OK, and a station with no nodes is vacuously OK.
func (f *Fleet) aggregateStation(station string, nodes []models.NodeRecord) models.StationRollup {
	owned := common.Filter(nodes, func(n models.NodeRecord) bool {
		return n.Station == station
	})

	status := common.Reducer(owned, func(acc models.StationStatus, n models.NodeRecord) models.StationStatus {
		switch {
		case n.Status == models.NodeStatusOffline:
			return models.StationStatusDown
		case n.Status == models.NodeStatusStale && acc != models.StationStatusDown:
			return models.StationStatusDegraded
		default:
			return acc
		}
	}, models.StationStatusOK)

	return models.StationRollup{
		Station:   station,
		Status:    status,
		UpdatedAt: f.now(),
	}
}

// refreshStation recomputes one station's rollup from the live node set,
// retains it for snapshot queries, and publishes it.
func (f *Fleet) refreshStation(station string) models.StationRollup {
	logger := common.GetLoggerWith(
		common.LoggerNameFleetCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryRollup),
	)

	rollup := f.Rollup.Aggregate(station, f.allNodes())
	f.stations.Store(station, &rollup)

	logger.Info("Station rollup refreshed",
		zap.String("station", station),
		zap.String("status", string(rollup.Status)))

	if f.Publisher != nil {
		f.Publisher.PublishStation(&rollup)
	}
	return rollup
}

func (f *Fleet) allStations() []models.StationRollup {
	var rollups []models.StationRollup
	f.stations.Range(func(_, v any) bool {
		rollups = append(rollups, *v.(*models.StationRollup))
		return true
	})
	sort.Slice(rollups, func(i, j int) bool {
		return rollups[i].Station < rollups[j].Station
	})
	return rollups
}

type IRollupImpl struct {
	fleet *Fleet
}

func (ir *IRollupImpl) Aggregate(station string, nodes []models.NodeRecord) models.StationRollup {
	return ir.fleet.aggregateStation(station, nodes)
}

func (ir *IRollupImpl) All() []models.StationRollup {
	return ir.fleet.allStations()
}

func (f *Fleet) GetIRollup() IRollup {
	return &IRollupImpl{fleet: f}
}
