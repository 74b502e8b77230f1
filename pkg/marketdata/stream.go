package marketdata

import (
	"context"
	"encoding/json"
	"iter"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rxtech-lab/argo-indicators/internal/logger"
	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"go.uber.org/zap"
)

// closeWait bounds the close frame sent when the context is cancelled.
const closeWait = time.Second

// Socket message types.
const (
	MessageSubscribe = "subscribe"
	MessageBar       = "bar"
	MessageError     = "error"
)

// SubscribeMessage is sent once after the socket connects.
type SubscribeMessage struct {
	Type     string `json:"type"`
	Symbol   string `json:"symbol"`
	Interval string `json:"interval"`
}

// streamMessage is a message pushed by the backend. Data holds a bar when
// Type is "bar"; Message holds the reason when Type is "error".
type streamMessage struct {
	Type    string   `json:"type"`
	Symbol  string   `json:"symbol"`
	Data    chartBar `json:"data"`
	Message string   `json:"message,omitempty"`
}

// Stream reads bars pushed by the backend socket channel.
type Stream struct {
	url    string
	dialer *websocket.Dialer
	logger *logger.Logger
}

// NewStream creates a Stream for the given socket URL (ws:// or wss://).
func NewStream(socketURL string, log *logger.Logger) *Stream {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Stream{
		url:    socketURL,
		dialer: websocket.DefaultDialer,
		logger: log.Named("stream"),
	}
}

// Subscribe returns an iterator over bars for symbol and interval.
// The iterator yields Bar and error pairs; it stops after the first error,
// when the socket closes, or when ctx is cancelled. It does not reconnect.
func (s *Stream) Subscribe(ctx context.Context, symbol, interval string) iter.Seq2[types.Bar, error] {
	return func(yield func(types.Bar, error) bool) {
		conn, _, err := s.dialer.DialContext(ctx, s.url, nil)
		if err != nil {
			yield(types.Bar{}, errors.Wrapf(errors.ErrCodeStreamFailed, err, "failed to connect to %s", s.url))

			return
		}
		defer conn.Close()

		subscribe := SubscribeMessage{Type: MessageSubscribe, Symbol: symbol, Interval: interval}
		if err := conn.WriteJSON(subscribe); err != nil {
			yield(types.Bar{}, errors.Wrap(errors.ErrCodeStreamFailed, "failed to subscribe", err))

			return
		}

		done := make(chan struct{})
		defer close(done)

		// WriteControl may run alongside other writers; WriteMessage may not.
		go func() {
			select {
			case <-ctx.Done():
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "shutdown"),
					time.Now().Add(closeWait))
				conn.Close()
			case <-done:
			}
		}()

		s.logger.Info("Subscribed to bar stream", zap.String("symbol", symbol), zap.String("interval", interval))

		for {
			_, payload, err := conn.ReadMessage()
			if err != nil {
				if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					return
				}

				yield(types.Bar{}, errors.Wrap(errors.ErrCodeStreamFailed, "socket read failed", err))

				return
			}

			var msg streamMessage
			if err := json.Unmarshal(payload, &msg); err != nil {
				s.logger.Warn("Skipping malformed socket message", zap.Error(err))

				continue
			}

			switch msg.Type {
			case MessageBar:
				if msg.Symbol != "" && msg.Symbol != symbol {
					continue
				}

				bar, err := msg.Data.toBar()
				if err != nil {
					s.logger.Warn("Skipping bar with bad time", zap.Error(err))

					continue
				}

				if !yield(bar, nil) {
					return
				}
			case MessageError:
				yield(types.Bar{}, errors.Newf(errors.ErrCodeStreamFailed, "backend error: %s", msg.Message))

				return
			}
		}
	}
}
