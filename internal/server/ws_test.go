package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/signalsfoundry/binarystar-simulator/core"
	"github.com/signalsfoundry/binarystar-simulator/kb"
	"github.com/signalsfoundry/binarystar-simulator/model"
)

func TestStreamDeliversStateUpdates(t *testing.T) {
	s, catalog := newTestServer(t)
	addDefault(t, catalog, "default")

	ts := httptest.NewServer(s.Routes())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/systems/default"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", wsURL, err)
	}
	defer conn.Close()
	if resp != nil {
		resp.Body.Close()
	}

	// Give the handler a moment to subscribe before pushing state.
	time.Sleep(50 * time.Millisecond)

	orbit, err := core.NewOrbit(model.DefaultStarPair())
	if err != nil {
		t.Fatalf("NewOrbit: %v", err)
	}
	if err := catalog.UpdateState("default", orbit.StateAt(91.25), orbit.RVSampleAt(91.25)); err != nil {
		t.Fatalf("UpdateState: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var system kb.StarSystem
	if err := conn.ReadJSON(&system); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if system.Name != "default" {
		t.Errorf("streamed system = %q", system.Name)
	}
	if system.State.TimeDays != 91.25 {
		t.Errorf("streamed state time = %v, want 91.25", system.State.TimeDays)
	}
	if system.RV.RV1KmS <= 0 {
		t.Errorf("streamed RV1 = %v, want positive at quarter period", system.RV.RV1KmS)
	}
}

func TestStreamUnknownSystem(t *testing.T) {
	s, _ := newTestServer(t)

	ts := httptest.NewServer(s.Routes())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/systems/missing"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err == nil {
		conn.Close()
		t.Fatal("dial to unknown system succeeded")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("handshake response = %+v, want 404", resp)
	}
	resp.Body.Close()
}
