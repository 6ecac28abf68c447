package fleet

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"litenby.com/sound-locator-fleet/pkg/common"
	"litenby.com/sound-locator-fleet/pkg/models"
	_ "litenby.com/sound-locator-fleet/pkg/testing"
)

func TestFeedDeliversUpsertEvents(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, fleetObj, _, _, _ := GetMockFleetWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	sub := fleetObj.Feed().Subscribe(16)
	defer sub.Close()

	station := uuid.NewString()
	rec, err := fleetObj.Liveness.Upsert(&models.NodeUpdate{Station: station, Kind: "esp32", ID: "E1"})
	require.NoError(t, err)

	ev := <-sub.C
	assert.Equal(t, EventNodeUpdate, ev.Type)
	assert.Equal(t, rec.Key, ev.Data.(*models.NodeRecord).Key)

	ev = <-sub.C
	assert.Equal(t, EventStationUpdate, ev.Type)
	assert.Equal(t, station, ev.Data.(*models.StationRollup).Station)
}

func TestFeedDropsWhenSubscriberFull(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, fleetObj, _, _, _ := GetMockFleetWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	// a buffer of one fills after the first event; later events are
	// dropped rather than blocking the ingest path
	sub := fleetObj.Feed().Subscribe(1)
	defer sub.Close()

	station := uuid.NewString()
	for k := 0; k < 5; k++ {
		_, err := fleetObj.Liveness.Upsert(&models.NodeUpdate{Station: station, Kind: "esp32", ID: "E1"})
		require.NoError(t, err)
	}

	assert.Len(t, sub.C, 1)
}

func TestSubscriberClose(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, fleetObj, _, _, _ := GetMockFleetWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	feed := fleetObj.Feed()
	before := feed.SubscriberCount()

	sub := feed.Subscribe(1)
	assert.Equal(t, before+1, feed.SubscriberCount())

	sub.Close()
	sub.Close() // safe to call twice
	assert.Equal(t, before, feed.SubscriberCount())

	// channel is closed after Close
	_, ok := <-sub.C
	assert.False(t, ok)

	// emitting to a closed subscriber must not panic
	station := uuid.NewString()
	_, err := fleetObj.Liveness.Upsert(&models.NodeUpdate{Station: station, Kind: "esp32", ID: "E1"})
	require.NoError(t, err)
}
