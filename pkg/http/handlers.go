package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	z "github.com/Oudwins/zog"
	"litenby.com/sound-locator-fleet/pkg/fleet"
	"litenby.com/sound-locator-fleet/pkg/models"
)

type NodeUpdateRequest struct {
	Station string      `json:"station"`
	Kind    string      `json:"kind"`
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Meta    models.Meta `json:"meta"`
}

var nodeUpdateSchema = z.Struct(z.Shape{
	"Station": z.String().Required(),
	"Kind":    z.String().Required(),
	"ID":      z.String().Required(),
	"Name":    z.String().Optional(),
})

func (rs *RestfulServer) PostNodeUpdate(c *gin.Context) {
	var req NodeUpdateRequest

	// meta is an open map, so bind the body first and let zog validate the
	// identity fields afterwards
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := nodeUpdateSchema.Validate(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	key := fleet.MakeKey(req.Station, req.Kind, req.ID)
	if !rs.CheckNodeLimiter(key) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	rec, err := rs.Fleet.Liveness.Upsert(&models.NodeUpdate{
		Station: req.Station,
		Kind:    req.Kind,
		ID:      req.ID,
		Name:    req.Name,
		Meta:    req.Meta,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "node": rec})
}

func (rs *RestfulServer) ListNodes(c *gin.Context) {
	c.JSON(http.StatusOK, rs.Fleet.Liveness.All())
}

func (rs *RestfulServer) ListStations(c *gin.Context) {
	c.JSON(http.StatusOK, rs.Fleet.Rollup.All())
}

type LimiterRequest struct {
	Station string  `json:"station"`
	Kind    string  `json:"kind"`
	ID      string  `json:"id"`
	Rate    float64 `json:"rate"`
	Burst   int     `json:"burst"`
}

var limiterRequestSchema = z.Struct(z.Shape{
	"Station": z.String().Required(),
	"Kind":    z.String().Required(),
	"ID":      z.String().Required(),
	"Rate":    z.Float64().Required(),
	"Burst":   z.Int().Required(),
})

func (rs *RestfulServer) PostLimiter(c *gin.Context) {
	var req LimiterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := limiterRequestSchema.Validate(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	rs.SetLimiter(fleet.MakeKey(req.Station, req.Kind, req.ID), req.Rate, req.Burst)

	c.Status(http.StatusOK)
}

func (rs *RestfulServer) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
