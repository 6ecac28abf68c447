package fleet

import (
	"litenby.com/sound-locator-fleet/pkg/models"
)

func (f *Fleet) publishNode(rec *models.NodeRecord) {
	f.feed.emit(Event{Type: EventNodeUpdate, Data: rec})
	f.mirror.enqueueNode(rec)
}

func (f *Fleet) publishStation(rollup *models.StationRollup) {
	f.feed.emit(Event{Type: EventStationUpdate, Data: rollup})
	f.mirror.enqueueStation(rollup)
}

type IPublisherImpl struct {
	fleet *Fleet
}

func (ip *IPublisherImpl) PublishNode(rec *models.NodeRecord) {
	ip.fleet.publishNode(rec)
}

func (ip *IPublisherImpl) PublishStation(rollup *models.StationRollup) {
	ip.fleet.publishStation(rollup)
}

func (f *Fleet) GetIPublisher() IPublisher {
	return &IPublisherImpl{fleet: f}
}
