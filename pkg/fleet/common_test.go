package fleet

import (
	"bufio"
	"encoding/json"
	"io"
	"testing"
	"time"

	"go.uber.org/mock/gomock"
	"litenby.com/sound-locator-fleet/pkg/db"
	"litenby.com/sound-locator-fleet/pkg/fleet/mocks"
)

func testThresholds() ThresholdConfig {
	return ThresholdConfig{
		Default: Thresholds{
			StaleAfter:   10 * time.Second,
			OfflineAfter: 60 * time.Second,
		},
	}
}

func GetMockFleetWithMemorySqliteDialector(t *testing.T, useMockLiveness, useMockRollup, useMockPublisher bool) (
	*gomock.Controller,
	*Fleet,
	*mocks.MockILiveness,
	*mocks.MockIRollup,
	*mocks.MockIPublisher,
) {
	ctrl := gomock.NewController(t)

	mockLiveness := mocks.NewMockILiveness(ctrl)
	mockRollup := mocks.NewMockIRollup(ctrl)
	mockPublisher := mocks.NewMockIPublisher(ctrl)

	dialector := db.UseMemorySqliteDialector()
	dbInstance := db.GetInstance(dialector) // ensure migrations
	fleetInstance := New(*dbInstance, testThresholds(), 0)

	opts := ServiceOpts{}
	if useMockLiveness {
		opts.Liveness = mockLiveness
	}
	if useMockRollup {
		opts.Rollup = mockRollup
	}
	if useMockPublisher {
		opts.Publisher = mockPublisher
	}
	fleetInstance.WithServices(opts)

	return ctrl, fleetInstance, mockLiveness, mockRollup, mockPublisher
}

func ParseLogs(r io.Reader) []any {
	scanner := bufio.NewScanner(r)
	var logs []any

	for scanner.Scan() {
		line := scanner.Text()
		var j any
		if err := json.Unmarshal([]byte(line), &j); err == nil {
			logs = append(logs, j)
		}
	}
	return logs
}
