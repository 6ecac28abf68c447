package fleet

import (
	"bytes"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zapcore"

	"litenby.com/sound-locator-fleet/pkg/common"
	"litenby.com/sound-locator-fleet/pkg/models"
	_ "litenby.com/sound-locator-fleet/pkg/testing"
)

func TestUpsertNode(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, fleetObj, _, _, _ := GetMockFleetWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	station := uuid.NewString()

	before := time.Now()
	rec, err := fleetObj.Liveness.Upsert(&models.NodeUpdate{
		Station: station,
		Kind:    "esp32",
		ID:      "E9",
		Name:    "east mic",
		Meta:    models.Meta{"battery_v": 3.92, "uptime_s": 120},
	})
	require.NoError(t, err)

	assert.Equal(t, MakeKey(station, "esp32", "E9"), rec.Key)
	assert.Equal(t, station, rec.Station)
	assert.Equal(t, models.NodeStatusOK, rec.Status)
	assert.False(t, rec.LastSeen.Before(before))
	assert.Equal(t, 3.92, rec.Meta["battery_v"])

	// first heartbeat for an unseen key creates exactly one record
	count := 0
	for _, n := range fleetObj.Liveness.All() {
		if n.Key == rec.Key {
			count++
		}
	}
	assert.Equal(t, 1, count)

	got, ok := fleetObj.Liveness.Get(rec.Key)
	require.True(t, ok)
	assert.Equal(t, rec.Key, got.Key)
}

func TestUpsertNode_WithLog(t *testing.T) {
	var buf = &bytes.Buffer{}
	common.SetTestCaptureLogger(buf, zapcore.InfoLevel)

	ctrl, fleetObj, _, _, _ := GetMockFleetWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	station := uuid.NewString()
	rec, err := fleetObj.Liveness.Upsert(&models.NodeUpdate{Station: station, Kind: "rpi", ID: "S1R1"})
	require.NoError(t, err)

	logs := ParseLogs(buf)

	found := false
	for _, log := range logs {
		lobj := log.(map[string]any)
		if lobj["category"] == "liveness" &&
			lobj["logger"] == "fleet_core" &&
			lobj["msg"] == "Received node heartbeat" &&
			lobj["key"] == rec.Key {
			found = true
		}
	}
	assert.True(t, found, "log not found")
}

func TestUpsertNode_EdgeCases(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, fleetObj, _, _, _ := GetMockFleetWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	var err error

	_, err = fleetObj.Liveness.Upsert(&models.NodeUpdate{Kind: "esp32", ID: "E1"})
	require.Error(t, err, "node update missing station/kind/id")

	// force the publisher away to cause publisher not available
	fleetObj.Publisher = nil
	_, err = fleetObj.Liveness.Upsert(&models.NodeUpdate{Station: "1", Kind: "esp32", ID: "E1"})
	require.Error(t, err, "publisher service not available")
}

func TestUpsertNode_HeartbeatRecoversOfflineNode(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, fleetObj, _, _, _ := GetMockFleetWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	station := uuid.NewString()
	rec, err := fleetObj.Liveness.Upsert(&models.NodeUpdate{Station: station, Kind: "esp32", ID: "E1"})
	require.NoError(t, err)

	aged, swapped := fleetObj.replaceStatus(rec, models.NodeStatusOffline)
	require.True(t, swapped)
	assert.Equal(t, models.NodeStatusOffline, aged.Status)

	// a fresh heartbeat is the only way back to OK, and it always works
	recovered, err := fleetObj.Liveness.Upsert(&models.NodeUpdate{Station: station, Kind: "esp32", ID: "E1"})
	require.NoError(t, err)
	assert.Equal(t, models.NodeStatusOK, recovered.Status)

	got, ok := fleetObj.Liveness.Get(rec.Key)
	require.True(t, ok)
	assert.Equal(t, models.NodeStatusOK, got.Status)
}

func TestAllSnapshotIdempotent(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, fleetObj, _, _, _ := GetMockFleetWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	station := uuid.NewString()
	for i := 0; i < 5; i++ {
		_, err := fleetObj.Liveness.Upsert(&models.NodeUpdate{Station: station, Kind: "esp32", ID: fmt.Sprintf("E%d", i)})
		require.NoError(t, err)
	}

	first := fleetObj.Liveness.All()
	second := fleetObj.Liveness.All()
	assert.Equal(t, first, second)
}

func TestUpsertNode_ConcurrentSameKey(t *testing.T) {
	common.SetTestLoggerNop()

	// mock out rollup and publisher so the only clock reads are the ones
	// that stamp lastSeen
	ctrl, fleetObj, _, mockRollup, mockPublisher := GetMockFleetWithMemorySqliteDialector(t, false, true, true)
	defer ctrl.Finish()

	mockRollup.EXPECT().Aggregate(gomock.Any(), gomock.Any()).Return(models.StationRollup{}).AnyTimes()
	mockPublisher.EXPECT().PublishNode(gomock.Any()).AnyTimes()
	mockPublisher.EXPECT().PublishStation(gomock.Any()).AnyTimes()

	// hand out strictly increasing lastSeen values across goroutines
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var ticks atomic.Int64
	fleetObj.now = func() time.Time {
		return base.Add(time.Duration(ticks.Add(1)) * time.Millisecond)
	}

	station := uuid.NewString()
	const workers = 64

	wg := sync.WaitGroup{}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := fleetObj.Liveness.Upsert(&models.NodeUpdate{Station: station, Kind: "esp32", ID: "E1"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// the greatest lastSeen must have won
	got, ok := fleetObj.Liveness.Get(MakeKey(station, "esp32", "E1"))
	require.True(t, ok)
	assert.Equal(t, base.Add(workers*time.Millisecond), got.LastSeen)
}
