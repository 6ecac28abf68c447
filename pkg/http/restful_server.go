package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
	"litenby.com/sound-locator-fleet/pkg/fleet"
)

type RestfulServer struct {
	Server           *gin.Engine
	Fleet            *fleet.Fleet
	RateLimiterStore *fleet.RateLimiterStore

	upgrader websocket.Upgrader
}

func (rs *RestfulServer) GetLimiter(key string) *rate.Limiter {
	if rs.RateLimiterStore == nil {
		return nil
	} else {
		return rs.RateLimiterStore.GetLimiter(key)
	}
}

func (rs *RestfulServer) CheckNodeLimiter(key string) bool {
	limiter := rs.GetLimiter(key)
	if limiter == nil {
		return true
	}
	return limiter.Allow()
}

func (rs *RestfulServer) SetLimiter(key string, nodeRate float64, nodeBurst int) {
	if rs.RateLimiterStore == nil {
		return
	}
	rs.RateLimiterStore.SetLimiter(key, rate.Limit(nodeRate), nodeBurst)
}

func (rs *RestfulServer) Setup() {
	// the dashboard is served from a different origin than the API
	rs.upgrader.CheckOrigin = func(r *http.Request) bool { return true }

	rs.Server.GET("/healthz", rs.HealthCheck)

	nodes := rs.Server.Group("/nodes")
	{
		nodes.POST("/update", rs.PostNodeUpdate)
		nodes.GET("", rs.ListNodes)
		nodes.GET("/ws", rs.NodeFeed)
		nodes.POST("/limiter", rs.PostLimiter)
	}

	rs.Server.GET("/stations", rs.ListStations)
}
