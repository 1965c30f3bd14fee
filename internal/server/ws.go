package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/signalsfoundry/binarystar-simulator/internal/logging"
	"github.com/signalsfoundry/binarystar-simulator/kb"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The API is unauthenticated; cross-origin viewers are expected.
	CheckOrigin: func(r *http.Request) bool { return true },
}

const (
	// A slow client that cannot keep up with the tick rate is dropped
	// rather than allowed to stall the catalog subscriber.
	streamBuffer = 32
	writeWait    = 5 * time.Second
)

// handleStream upgrades the connection and pushes every state update of
// one system as a JSON message until the client disconnects.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if _, ok := s.catalog.Get(name); !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("system %q not found", name))
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote an HTTP error.
		s.log.Warn(r.Context(), "websocket upgrade failed", logging.Err(err))
		return
	}
	defer conn.Close()

	s.metrics.WSConnectionOpened()
	defer s.metrics.WSConnectionClosed()

	updates := make(chan kb.StarSystem, streamBuffer)
	unsubscribe := s.catalog.Subscribe(func(ev kb.Event) {
		if ev.System.Name != name || ev.Type != kb.EventSystemStateUpdated {
			return
		}
		select {
		case updates <- ev.System:
		default:
			// Buffer full; drop the frame, the next tick supersedes it.
		}
	})
	defer unsubscribe()

	// Drain the client side so close frames are processed.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	log := logging.LoggerFromContext(r.Context())
	if log == nil {
		log = s.log
	}
	log.Info(r.Context(), "websocket stream opened", logging.String("system", name))

	for {
		select {
		case system := <-updates:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(system); err != nil {
				log.Info(r.Context(), "websocket stream closed", logging.String("system", name), logging.Err(err))
				return
			}
			s.metrics.ObserveWSMessage()
		case <-closed:
			log.Info(r.Context(), "websocket stream closed by client", logging.String("system", name))
			return
		case <-r.Context().Done():
			return
		}
	}
}
