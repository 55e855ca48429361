package handlers

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"hrops-gateway/internal/models"
	"hrops-gateway/internal/realtime"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	feedWriteWait  = 5 * time.Second
	feedPongWait   = 60 * time.Second
	feedPingPeriod = 30 * time.Second
	// subscribers only send pongs and close frames
	feedReadLimit = 1024
)

// feedConn is a realtime.Client over one websocket. gorilla allows a single writer at a
// time, so events and pings share writeMu.
type feedConn struct {
	writeMu sync.Mutex
	conn    *websocket.Conn
}

func (f *feedConn) Send(message []byte) bool {
	if f == nil || f.conn == nil {
		return false
	}
	f.writeMu.Lock()
	defer f.writeMu.Unlock()
	_ = f.conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
	return f.conn.WriteMessage(websocket.TextMessage, message) == nil
}

func (f *feedConn) ping() error {
	f.writeMu.Lock()
	defer f.writeMu.Unlock()
	return f.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(feedWriteWait))
}

func (f *feedConn) Close() {
	if f != nil && f.conn != nil {
		_ = f.conn.Close()
	}
}

// CORS is enforced by the gin middleware; the upgrade accepts any origin.
var feedUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// ChangeFeed streams invalidation events for one channel.
type ChangeFeed struct {
	hub *realtime.Hub
	log *slog.Logger
}

func NewChangeFeed(hub *realtime.Hub, log *slog.Logger) *ChangeFeed {
	return &ChangeFeed{hub: hub, log: log}
}

// Subscribe handles GET /ws?channel=tasks|calendar
// The connection stays registered until the peer goes away or stops answering pings.
func (f *ChangeFeed) Subscribe(c *gin.Context) {
	channel := c.DefaultQuery("channel", realtime.ChannelTasks)
	if !realtime.ValidChannel(channel) {
		c.JSON(http.StatusBadRequest, models.Fail("unknown_channel", ""))
		return
	}

	conn, err := feedUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		f.log.Warn("change feed upgrade failed", "channel", channel, "error", err)
		return
	}

	sub := &feedConn{conn: conn}
	f.hub.Register(channel, sub)
	f.log.Debug("change feed subscribed", "channel", channel, "subscribers", f.hub.Subscribers(channel))

	stop := make(chan struct{})
	go heartbeat(sub, stop)
	defer func() {
		close(stop)
		f.hub.Unregister(channel, sub)
		sub.Close()
	}()

	conn.SetReadLimit(feedReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(feedPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(feedPongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// heartbeat pings until stop closes. A failed ping ends it; the read loop then times out.
func heartbeat(sub *feedConn, stop <-chan struct{}) {
	ticker := time.NewTicker(feedPingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if err := sub.ping(); err != nil {
				return
			}
		}
	}
}
