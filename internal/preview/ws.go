// internal/preview/ws.go
//
// gorilla/websocket transport for the preview channel.
//
// Context
// -------
// The preview frame runs in an iframe on the same tenant host as the
// editor.  Its socket is the only path data takes into the frame, so the
// upgrader checks Origin against the configured allow-list and every
// incoming message passes a per-connection token bucket.
//
// Notes
// -----
//   - Messages over the rate are dropped, counted under reason "rate",
//     and logged at debug level.  The socket stays open.
//   - Writes are serialised by a mutex and carry a deadline, so a stalled
//     client cannot pin a writer goroutine forever.
package preview

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/yanizio/sitekit/internal/metrics"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 1 << 20
)

// NewUpgrader returns an upgrader that accepts same-host requests and
// the listed origins.  "*" allows any origin and is meant for dev only.
func NewUpgrader(allowedOrigins []string) *websocket.Upgrader {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[strings.TrimRight(strings.ToLower(o), "/")] = true
	}
	return &websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || allowed["*"] || allowed[strings.ToLower(origin)] {
				return true
			}
			u, err := url.Parse(origin)
			return err == nil && strings.EqualFold(u.Host, r.Host)
		},
	}
}

// WSConn adapts *websocket.Conn to Conn.
type WSConn struct {
	ws      *websocket.Conn
	limiter *rate.Limiter
	wmu     sync.Mutex
	once    sync.Once
}

// NewWSConn wraps ws.  perSecond <= 0 disables the limiter.
func NewWSConn(ws *websocket.Conn, perSecond float64, burst int) *WSConn {
	ws.SetReadLimit(maxMessageSize)
	c := &WSConn{ws: ws}
	if perSecond > 0 {
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
	return c
}

// ReadMessage returns the next text or binary payload that passes the
// rate limiter.  Cancelling ctx does not interrupt a blocked read; the
// owner closes the connection for that.
func (c *WSConn) ReadMessage(ctx context.Context) ([]byte, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if dl, ok := ctx.Deadline(); ok {
			_ = c.ws.SetReadDeadline(dl)
		}
		_, b, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				zap.S().Debugw("preview socket closed", "err", err)
			}
			return nil, ErrClosed
		}
		if c.limiter != nil && !c.limiter.Allow() {
			metrics.PreviewDropped.WithLabelValues("rate").Inc()
			zap.S().Debugw("preview message over rate", "remote", c.ws.RemoteAddr().String())
			continue
		}
		return b, nil
	}
}

// WriteMessage sends b as one text message.
func (c *WSConn) WriteMessage(ctx context.Context, b []byte) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	dl := time.Now().Add(writeWait)
	if d, ok := ctx.Deadline(); ok && d.Before(dl) {
		dl = d
	}
	_ = c.ws.SetWriteDeadline(dl)
	if err := c.ws.WriteMessage(websocket.TextMessage, b); err != nil {
		return ErrClosed
	}
	return nil
}

// Close sends a close frame on a best-effort basis and closes the socket.
func (c *WSConn) Close() error {
	var err error
	c.once.Do(func() {
		c.wmu.Lock()
		_ = c.ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		c.wmu.Unlock()
		err = c.ws.Close()
	})
	return err
}
