package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/signalsfoundry/binarystar-simulator/internal/logging"
	"github.com/signalsfoundry/binarystar-simulator/internal/server"
)

func TestServerStartupSmoke(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("net.Listen: %v", err)
	}

	cfg := server.Config{
		CatalogPath:     "", // start empty, create over the API
		Tick:            20 * time.Millisecond,
		DaysPerTick:     1,
		ReadTimeout:     time.Second,
		WriteTimeout:    5 * time.Second,
		ShutdownTimeout: time.Second,
	}
	log := logging.New(logging.Config{Level: "warn", Format: "text"})

	errCh := make(chan error, 1)
	go func() {
		errCh <- run(ctx, cfg, log, lis)
	}()

	base := fmt.Sprintf("http://%s", lis.Addr().String())

	body := `{"name":"smoke","mass1_msun":1.5,"mass2_msun":1,"semi_major_axis_au":5,"period_days":365}`
	resp, err := http.Post(base+"/api/v1/systems", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("create system: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", resp.StatusCode)
	}

	// Let the clock tick a few times, then confirm state moved.
	time.Sleep(100 * time.Millisecond)

	resp, err = http.Get(base + "/api/v1/systems/smoke")
	if err != nil {
		t.Fatalf("get system: %v", err)
	}
	defer resp.Body.Close()
	var system struct {
		State struct {
			TimeDays float64 `json:"time_days"`
		} `json:"state"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&system); err != nil {
		t.Fatalf("decode system: %v", err)
	}
	if system.State.TimeDays <= 0 {
		t.Fatalf("state never advanced: %+v", system)
	}

	cancel()
	if err := <-errCh; err != nil {
		t.Fatalf("server returned error: %v", err)
	}
}
