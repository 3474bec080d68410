package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	writeWait      = 10 * time.Second
	maxSocketFrame = 64 << 10
)

// socketConn serializes writes to one connection. Prompts are answered on
// pool workers, so several goroutines may reply at once.
type socketConn struct {
	conn   *websocket.Conn
	logger *slog.Logger
	mu     sync.Mutex
}

func (sc *socketConn) send(event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	sc.mu.Lock()
	defer sc.mu.Unlock()
	if err := sc.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return sc.conn.WriteJSON(Envelope{Event: event, Data: data})
}

func (sc *socketConn) close() {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	_ = sc.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
		time.Now().Add(time.Second))
	_ = sc.conn.Close()
}

func (s *Server) handleSocket(c echo.Context) error {
	conn, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade has already written the HTTP error
		s.logger.Debug("socket upgrade failed", "err", err)
		return nil
	}
	conn.SetReadLimit(maxSocketFrame)

	sc := &socketConn{conn: conn, logger: s.logger.With("conn", uuid.NewString())}
	sc.logger.Debug("socket connected", "remote", c.RealIP())
	s.track(sc)
	defer s.untrack(sc)

	s.serveSocket(sc)
	return nil
}

// serveSocket reads events until the peer goes away. In-flight prompts are
// canceled when the connection closes.
func (s *Server) serveSocket(sc *socketConn) {
	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	defer func() {
		cancel()
		wg.Wait()
		_ = sc.conn.Close()
	}()

	for {
		// Read errors end the connection; decode errors only reject the frame
		_, frame, err := sc.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				sc.logger.Debug("socket closed", "err", err)
			}
			return
		}

		var env Envelope
		if err := json.Unmarshal(frame, &env); err != nil {
			sc.logger.Debug("malformed socket frame", "bytes", len(frame), "err", err)
			s.reply(sc, EventError, ErrorPayload{Error: "malformed message"})
			continue
		}

		switch env.Event {
		case EventPrompt:
			var req PromptRequest
			if err := json.Unmarshal(env.Data, &req); err != nil {
				s.reply(sc, EventError, ErrorPayload{Error: "malformed prompt"})
				continue
			}

			wg.Add(1)
			err := s.pool.Submit(func() {
				defer wg.Done()
				s.promptTask(ctx, sc, req)
			})
			if err != nil {
				wg.Done()
				sc.logger.Warn("prompt rejected by worker pool", "err", err)
				s.reply(sc, EventError, ErrorPayload{Error: unavailableMessage})
			}
		default:
			s.reply(sc, EventError, ErrorPayload{Error: "unknown event: " + env.Event})
		}
	}
}

func (s *Server) promptTask(ctx context.Context, sc *socketConn, req PromptRequest) {
	answer, err := s.answer(ctx, "socket", req)
	if err != nil {
		if ctx.Err() != nil {
			// Nobody is left to read the reply
			return
		}
		_, msg := publicError(err)
		s.reply(sc, EventError, ErrorPayload{Error: msg})
		return
	}
	s.reply(sc, EventResponse, ResponsePayload{Message: answer})
}

func (s *Server) reply(sc *socketConn, event string, payload any) {
	if err := sc.send(event, payload); err != nil {
		sc.logger.Debug("socket write failed", "event", event, "err", err)
	}
}

func (s *Server) track(sc *socketConn) {
	s.mu.Lock()
	s.sockets[sc] = struct{}{}
	s.mu.Unlock()
	s.metrics.activeSockets.Inc()
}

func (s *Server) untrack(sc *socketConn) {
	s.mu.Lock()
	delete(s.sockets, sc)
	s.mu.Unlock()
	s.metrics.activeSockets.Dec()
}

func (s *Server) closeSockets() {
	s.mu.Lock()
	open := make([]*socketConn, 0, len(s.sockets))
	for sc := range s.sockets {
		open = append(open, sc)
	}
	s.mu.Unlock()

	for _, sc := range open {
		sc.close()
	}
}
