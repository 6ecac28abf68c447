package models

import "time"

type NodeStatus string

const (
	NodeStatusOK      NodeStatus = "OK"
	NodeStatusStale   NodeStatus = "STALE"
	NodeStatusOffline NodeStatus = "OFFLINE"
)

type StationStatus string

const (
	StationStatusOK       StationStatus = "OK"
	StationStatusDegraded StationStatus = "DEGRADED"
	StationStatusDown     StationStatus = "DOWN"
)

// Meta carries whatever telemetry a node chooses to report (voltages,
// uptime, IPs, free space). The core never interprets individual keys.
type Meta map[string]any

// NodeRecord is the latest known state of one field node. Key is derived
// from (station, kind, id) and is immutable once created.
type NodeRecord struct {
	Key      string     `gorm:"primaryKey" json:"key"`
	Station  string     `gorm:"index" json:"station"`
	Kind     string     `json:"kind"`
	NodeID   string     `json:"id"`
	Name     string     `json:"name"`
	LastSeen time.Time  `json:"lastSeen"`
	Status   NodeStatus `gorm:"type:varchar(10);check:status IN ('OK','STALE','OFFLINE')" json:"status"`
	Meta     Meta       `gorm:"serializer:json" json:"meta"`
}

// NodeUpdate is one inbound heartbeat from a field node. Station, Kind and
// ID must be present; the HTTP layer validates this before the core sees it.
type NodeUpdate struct {
	Station string
	Kind    string
	ID      string
	Name    string
	Meta    Meta
}

// StationRollup is derived from the statuses of a station's nodes; it is
// never written by clients.
type StationRollup struct {
	Station   string        `gorm:"primaryKey" json:"station"`
	Status    StationStatus `gorm:"type:varchar(10);check:status IN ('OK','DEGRADED','DOWN')" json:"status"`
	UpdatedAt time.Time     `json:"updatedAt"`
}
