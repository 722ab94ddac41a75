package discovery_test

import (
	"errors"
	"path/filepath"
	"testing"

	"bt/internal/bluez"
	"bt/internal/discovery"
	"bt/internal/logging"
	"bt/internal/testsupport"
)

func TestSessionRoundTrip(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "state", "discovery.lock")
	client := &testsupport.ReplayClient{
		Discovered: []bluez.Device{testsupport.DiscoveredDevice("buds", "AA:BB:CC:DD:EE:FF", -40)},
	}

	sess := discovery.NewSession(client, lockPath, logging.NewNop())
	if err := sess.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	sess.Wait(0)

	devices, err := sess.Devices()
	if err != nil {
		t.Fatalf("Devices: %v", err)
	}
	if len(devices) != 1 || devices[0].Alias != "buds" {
		t.Fatalf("unexpected devices: %+v", devices)
	}

	if err := sess.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if got := client.Calls; len(got) != 2 || got[0] != "start_discovery" || got[1] != "stop_discovery" {
		t.Fatalf("unexpected call sequence: %v", got)
	}
}

func TestSessionLockIsExclusive(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "discovery.lock")
	first := discovery.NewSession(&testsupport.ReplayClient{}, lockPath, logging.NewNop())
	second := discovery.NewSession(&testsupport.ReplayClient{}, lockPath, logging.NewNop())

	if err := first.Start(); err != nil {
		t.Fatalf("first Start: %v", err)
	}
	if err := second.Start(); !errors.Is(err, discovery.ErrSessionActive) {
		t.Fatalf("second Start = %v, want ErrSessionActive", err)
	}

	if err := first.Stop(); err != nil {
		t.Fatalf("first Stop: %v", err)
	}
	if err := second.Start(); err != nil {
		t.Fatalf("Start after release: %v", err)
	}
	_ = second.Stop()
}

func TestSessionStartFailureReleasesLock(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "discovery.lock")
	failing := &testsupport.ReplayClient{FailOp: bluez.OpStartDiscovery}

	sess := discovery.NewSession(failing, lockPath, logging.NewNop())
	if err := sess.Start(); err == nil {
		t.Fatal("expected StartDiscovery failure")
	}

	next := discovery.NewSession(&testsupport.ReplayClient{}, lockPath, logging.NewNop())
	if err := next.Start(); err != nil {
		t.Fatalf("lock leaked after failed start: %v", err)
	}
	_ = next.Stop()
}

func TestSessionStopFailureStillReleasesLock(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "discovery.lock")
	failing := &testsupport.ReplayClient{FailOp: bluez.OpStopDiscovery}

	sess := discovery.NewSession(failing, lockPath, logging.NewNop())
	if err := sess.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	err := sess.Stop()
	var tagged *bluez.Error
	if !errors.As(err, &tagged) || tagged.Op != bluez.OpStopDiscovery {
		t.Fatalf("Stop = %v, want stop_discovery failure", err)
	}

	next := discovery.NewSession(&testsupport.ReplayClient{}, lockPath, logging.NewNop())
	if err := next.Start(); err != nil {
		t.Fatalf("lock leaked after failed stop: %v", err)
	}
	_ = next.Stop()

	if err := sess.Stop(); err != nil {
		t.Fatalf("second Stop must be a no-op, got %v", err)
	}
}
