package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"litenby.com/sound-locator-fleet/pkg/common"
	"litenby.com/sound-locator-fleet/pkg/fleet"
)

const (
	wsSendBuffer = 64
	wsPingPeriod = 30 * time.Second
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
)

// NodeFeed upgrades the connection and streams node:update / station:update
// events. There is no replay: clients fetch GET /nodes and GET /stations
// first, then subscribe. Events carry full records, so a duplicate between
// snapshot and subscribe is harmless.
func (rs *RestfulServer) NodeFeed(c *gin.Context) {
	logger := common.GetLoggerWith(common.LoggerNameRestfulServer)

	conn, err := rs.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("Websocket upgrade failed", zap.Error(err))
		return
	}

	sub := rs.Fleet.Feed().Subscribe(wsSendBuffer)

	go wsWritePump(conn, sub, logger)
	wsReadPump(conn, sub)
}

func wsWritePump(conn *websocket.Conn, sub *fleet.Subscriber, logger *zap.Logger) {
	ticker := time.NewTicker(wsPingPeriod)
	defer func() {
		ticker.Stop()
		sub.Close()
		conn.Close()
	}()

	for {
		select {
		case ev, ok := <-sub.C:
			if !ok {
				conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutdown"),
					time.Now().Add(wsWriteWait))
				return
			}
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteJSON(ev); err != nil {
				logger.Debug("Websocket write failed, dropping client", zap.Error(err))
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// wsReadPump discards inbound frames; the feed is one-way. It exists to
// notice the client going away and to answer pings.
func wsReadPump(conn *websocket.Conn, sub *fleet.Subscriber) {
	defer func() {
		sub.Close()
		conn.Close()
	}()

	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(wsPongWait))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
