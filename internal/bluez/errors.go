package bluez

import (
	"errors"
	"fmt"
)

// Op names a logical BlueZ operation for error tagging.
type Op string

const (
	OpDial              Op = "dial"
	OpPowerState        Op = "power_state"
	OpTogglePower       Op = "toggle_power"
	OpDevices           Op = "devices"
	OpConnectedDevices  Op = "connected_devices"
	OpDiscoveredDevices Op = "discovered_devices"
	OpStartDiscovery    Op = "start_discovery"
	OpStopDiscovery     Op = "stop_discovery"
	OpConnect           Op = "connect"
	OpDisconnect        Op = "disconnect"
	OpRemove            Op = "remove"
)

// ErrDeviceNotFound reports that no known device matched the requested alias.
var ErrDeviceNotFound = errors.New("device not found")

// Error wraps a failed BlueZ call together with the operation that issued it.
type Error struct {
	Op  Op
	Err error
}

func (e *Error) Error() string {
	if e.Op == OpDial {
		return fmt.Sprintf("unable to establish a BlueZ D-Bus connection: %v", e.Err)
	}
	return fmt.Sprintf("the BlueZ call %q failed: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// wrapOp tags err with op, passing nil through untouched.
func wrapOp(op Op, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}
