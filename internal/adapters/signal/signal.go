package signal

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/watchparty/signaling/internal/app"
	"github.com/watchparty/signaling/internal/config"
	"github.com/watchparty/signaling/internal/core"
)

var ErrBackpressure = errors.New("backpressure")

// SignalWSController is the websocket edge of the signaling core: it owns
// connections and decodes inbound events, everything else is delegated.
type SignalWSController struct {
	Lifecycle *app.Lifecycle
	Router    *app.Router
	Sessions  *app.Sessions
	Chat      *ChatRateLimiter
	Cfg       *config.Config
}

func NewSignalWSController(cfg *config.Config, lc *app.Lifecycle, rt *app.Router, sessions *app.Sessions) *SignalWSController {
	return &SignalWSController{
		Lifecycle: lc,
		Router:    rt,
		Sessions:  sessions,
		Chat:      NewChatRateLimiter(cfg.ChatRateLimit, cfg.ChatRateInterval),
		Cfg:       cfg,
	}
}

type WsSignalConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func (c *WsSignalConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *WsSignalConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (ctl *SignalWSController) HandleSignal(ctx context.Context, c *gin.Context) {
	sid := core.SessionID(c.GetString("client_token"))
	log.Info().Str("module", "signal").Str("sid", string(sid)).Msg("new WS connection")

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Msg("ws upgrade")
		return
	}

	conn := &WsSignalConn{
		conn: ws,
		send: make(chan core.Frame, 32),
	}

	ctx, cancel := context.WithCancel(ctx)
	ctl.Sessions.Bind(sid, conn, cancel)

	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, sid, conn)
}
