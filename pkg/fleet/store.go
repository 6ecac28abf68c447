package fleet

import (
	"fmt"
	"sort"

	"go.uber.org/zap"
	"litenby.com/sound-locator-fleet/pkg/common"
	"litenby.com/sound-locator-fleet/pkg/models"
)

func (f *Fleet) upsertNode(input *models.NodeUpdate) (*models.NodeRecord, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameFleetCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryLiveness),
	)

	if input.Station == "" || input.Kind == "" || input.ID == "" {
		return nil, fmt.Errorf("node update missing station/kind/id")
	}
	if f.Publisher == nil {
		return nil, fmt.Errorf("publisher service not available")
	}

	rec := &models.NodeRecord{
		Key:      MakeKey(input.Station, input.Kind, input.ID),
		Station:  input.Station,
		Kind:     input.Kind,
		NodeID:   input.ID,
		Name:     input.Name,
		LastSeen: f.now(),
		Status:   models.NodeStatusOK,
		Meta:     input.Meta,
	}

	logger.Info("Received node heartbeat", zap.String("key", rec.Key), zap.Reflect("node", rec))

	// Replace whatever record holds this key, unless a concurrent upsert
	// already stored a strictly fresher one.
	for {
		cur, loaded := f.nodes.LoadOrStore(rec.Key, rec)
		if !loaded {
			break
		}
		prev := cur.(*models.NodeRecord)
		if rec.LastSeen.Before(prev.LastSeen) {
			return prev, nil
		}
		if f.nodes.CompareAndSwap(rec.Key, cur, rec) {
			break
		}
	}

	f.Publisher.PublishNode(rec)
	f.refreshStation(rec.Station)

	return rec, nil
}

func (f *Fleet) getNode(key string) (*models.NodeRecord, bool) {
	v, ok := f.nodes.Load(key)
	if !ok {
		return nil, false
	}
	return v.(*models.NodeRecord), true
}

// allNodes returns a value-copied snapshot, most recently seen first.
func (f *Fleet) allNodes() []models.NodeRecord {
	var nodes []models.NodeRecord
	f.nodes.Range(func(_, v any) bool {
		nodes = append(nodes, *v.(*models.NodeRecord))
		return true
	})
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].LastSeen.Equal(nodes[j].LastSeen) {
			return nodes[i].Key < nodes[j].Key
		}
		return nodes[i].LastSeen.After(nodes[j].LastSeen)
	})
	return nodes
}

// replaceStatus swaps in a copy of prev with the new status, keeping
// lastSeen untouched. It fails (and the sweep must back off) when a
// heartbeat replaced the record after prev was snapshotted.
func (f *Fleet) replaceStatus(prev *models.NodeRecord, status models.NodeStatus) (*models.NodeRecord, bool) {
	next := *prev
	next.Status = status
	if f.nodes.CompareAndSwap(prev.Key, prev, &next) {
		return &next, true
	}
	return nil, false
}

type ILivenessImpl struct {
	fleet *Fleet
}

func (il *ILivenessImpl) Upsert(input *models.NodeUpdate) (*models.NodeRecord, error) {
	return il.fleet.upsertNode(input)
}

func (il *ILivenessImpl) Get(key string) (*models.NodeRecord, bool) {
	return il.fleet.getNode(key)
}

func (il *ILivenessImpl) All() []models.NodeRecord {
	return il.fleet.allNodes()
}

func (f *Fleet) GetILiveness() ILiveness {
	return &ILivenessImpl{fleet: f}
}
