package fleet

import (
	"encoding/json"
	"fmt"
	"time"

	"litenby.com/sound-locator-fleet/pkg/models"
)

// Thresholds is the aging policy for one node kind. StaleAfter must be
// strictly smaller than OfflineAfter.
type Thresholds struct {
	StaleAfter   time.Duration
	OfflineAfter time.Duration
}

func (t Thresholds) Validate() error {
	if t.StaleAfter <= 0 || t.OfflineAfter <= 0 {
		return fmt.Errorf("thresholds must be positive, got stale_after=%v offline_after=%v", t.StaleAfter, t.OfflineAfter)
	}
	if t.StaleAfter >= t.OfflineAfter {
		return fmt.Errorf("stale_after %v must be smaller than offline_after %v", t.StaleAfter, t.OfflineAfter)
	}
	return nil
}

// ThresholdConfig carries the mandatory default policy plus optional
// per-kind overrides (chatty esp32 boards vs slow-reporting rpi nodes).
type ThresholdConfig struct {
	Default Thresholds
	PerKind map[string]Thresholds
}

func (c ThresholdConfig) ForKind(kind string) Thresholds {
	if th, ok := c.PerKind[kind]; ok {
		return th
	}
	return c.Default
}

func (c ThresholdConfig) Validate() error {
	if err := c.Default.Validate(); err != nil {
		return err
	}
	for kind, th := range c.PerKind {
		if err := th.Validate(); err != nil {
			return fmt.Errorf("kind %q: %w", kind, err)
		}
	}
	return nil
}

// ParseKindThresholds parses the FLEET_KIND_THRESHOLDS JSON value, e.g.
// {"esp32":{"stale_after":"70s","offline_after":"90s"}}.
func ParseKindThresholds(raw string) (map[string]Thresholds, error) {
	var parsed map[string]struct {
		StaleAfter   string `json:"stale_after"`
		OfflineAfter string `json:"offline_after"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, err
	}

	out := make(map[string]Thresholds, len(parsed))
	for kind, entry := range parsed {
		stale, err := time.ParseDuration(entry.StaleAfter)
		if err != nil {
			return nil, fmt.Errorf("kind %q stale_after: %w", kind, err)
		}
		offline, err := time.ParseDuration(entry.OfflineAfter)
		if err != nil {
			return nil, fmt.Errorf("kind %q offline_after: %w", kind, err)
		}
		out[kind] = Thresholds{StaleAfter: stale, OfflineAfter: offline}
	}
	return out, nil
}

// EvaluateStatus maps the age of a node's last heartbeat onto its status.
// Pure; the sweep and tests call it with an explicit now.
func EvaluateStatus(now, lastSeen time.Time, th Thresholds) models.NodeStatus {
	age := now.Sub(lastSeen)
	switch {
	case age > th.OfflineAfter:
		return models.NodeStatusOffline
	case age > th.StaleAfter:
		return models.NodeStatusStale
	default:
		return models.NodeStatusOK
	}
}

// statusRank orders node statuses by severity. The sweep only ever moves a
// node up this order; only a fresh heartbeat resets it to OK.
func statusRank(s models.NodeStatus) int {
	switch s {
	case models.NodeStatusStale:
		return 1
	case models.NodeStatusOffline:
		return 2
	default:
		return 0
	}
}
