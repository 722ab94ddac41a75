package discovery

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"bt/internal/bluez"
)

// ErrSessionActive reports that another bt process holds the discovery lock.
var ErrSessionActive = errors.New("another discovery session is already running")

// Session is a single time-bounded discovery window. Sessions are not safe
// for concurrent use; each command creates its own.
type Session struct {
	client bluez.Client
	lock   *flock.Flock
	logger *slog.Logger
	active bool
}

// NewSession prepares a session guarded by the lock file at lockPath.
func NewSession(client bluez.Client, lockPath string, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		client: client,
		lock:   flock.New(lockPath),
		logger: logger,
	}
}

// Start acquires the discovery lock and begins discovery on the adapter.
func (s *Session) Start() error {
	if err := os.MkdirAll(filepath.Dir(s.lock.Path()), 0o755); err != nil {
		return fmt.Errorf("create lock directory: %w", err)
	}
	held, err := s.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire discovery lock: %w", err)
	}
	if !held {
		return ErrSessionActive
	}
	if err := s.client.StartDiscovery(); err != nil {
		_ = s.lock.Unlock()
		return err
	}
	s.active = true
	s.logger.Debug("discovery started", "lock", s.lock.Path())
	return nil
}

// Wait blocks for the discovery window.
func (s *Session) Wait(d time.Duration) {
	s.logger.Debug("discovery window", "duration", d)
	time.Sleep(d)
}

// Devices returns the devices seen broadcasting during this session.
func (s *Session) Devices() ([]bluez.Device, error) {
	return s.client.DiscoveredDevices()
}

// Stop ends discovery and releases the lock. The lock is released even when
// StopDiscovery fails; the failure is still returned.
func (s *Session) Stop() error {
	if !s.active {
		return nil
	}
	s.active = false
	err := s.client.StopDiscovery()
	if unlockErr := s.lock.Unlock(); unlockErr != nil && err == nil {
		err = fmt.Errorf("release discovery lock: %w", unlockErr)
	}
	s.logger.Debug("discovery stopped", "err", err)
	return err
}
