package testsupport

import (
	"errors"
	"fmt"

	"bt/internal/bluez"
)

// ReplayClient is a scripted bluez.Client double. It returns the canned
// records it was loaded with, records every mutating call it receives, and
// fails exactly the operation named by FailOp.
type ReplayClient struct {
	Power      bluez.PowerState
	Known      []bluez.Device
	Discovered []bluez.Device

	// FailOp makes the matching operation return Err (or a stock error).
	FailOp bluez.Op
	Err    error

	// Calls records mutating operations in order, e.g. "connect buds".
	Calls []string
}

var _ bluez.Client = (*ReplayClient)(nil)

// ConnectedDevice builds a known, connected device with a battery reading.
func ConnectedDevice(alias, address string, battery uint8) bluez.Device {
	return bluez.Device{
		Alias:     alias,
		Address:   address,
		Connected: true,
		Paired:    true,
		Trusted:   true,
		Battery:   &battery,
	}
}

// DiscoveredDevice builds a freshly-seen device carrying an RSSI reading.
func DiscoveredDevice(alias, address string, rssi int16) bluez.Device {
	return bluez.Device{
		Alias:   alias,
		Address: address,
		RSSI:    &rssi,
	}
}

func (c *ReplayClient) fail(op bluez.Op) error {
	if c.FailOp != op {
		return nil
	}
	err := c.Err
	if err == nil {
		err = errors.New("scripted failure")
	}
	return &bluez.Error{Op: op, Err: err}
}

func (c *ReplayClient) record(format string, args ...any) {
	c.Calls = append(c.Calls, fmt.Sprintf(format, args...))
}

// CallsNamed returns the recorded calls that start with the given verb.
func (c *ReplayClient) CallsNamed(verb string) []string {
	var matched []string
	for _, call := range c.Calls {
		if call == verb || len(call) > len(verb) && call[:len(verb)+1] == verb+" " {
			matched = append(matched, call)
		}
	}
	return matched
}

func (c *ReplayClient) PowerState() (bluez.PowerState, error) {
	if err := c.fail(bluez.OpPowerState); err != nil {
		return bluez.PowerOff, err
	}
	return c.Power, nil
}

func (c *ReplayClient) TogglePower() (bluez.PowerState, error) {
	if err := c.fail(bluez.OpTogglePower); err != nil {
		return c.Power, err
	}
	c.Power = c.Power.Toggled()
	c.record("toggle_power %s", c.Power)
	return c.Power, nil
}

func (c *ReplayClient) Devices() ([]bluez.Device, error) {
	if err := c.fail(bluez.OpDevices); err != nil {
		return nil, err
	}
	return append([]bluez.Device(nil), c.Known...), nil
}

func (c *ReplayClient) ConnectedDevices() ([]bluez.Device, error) {
	if err := c.fail(bluez.OpConnectedDevices); err != nil {
		return nil, err
	}
	connected := make([]bluez.Device, 0, len(c.Known))
	for _, d := range c.Known {
		if d.Connected {
			connected = append(connected, d)
		}
	}
	return connected, nil
}

func (c *ReplayClient) DiscoveredDevices() ([]bluez.Device, error) {
	if err := c.fail(bluez.OpDiscoveredDevices); err != nil {
		return nil, err
	}
	return append([]bluez.Device(nil), c.Discovered...), nil
}

func (c *ReplayClient) StartDiscovery() error {
	if err := c.fail(bluez.OpStartDiscovery); err != nil {
		return err
	}
	c.record("start_discovery")
	return nil
}

func (c *ReplayClient) StopDiscovery() error {
	if err := c.fail(bluez.OpStopDiscovery); err != nil {
		return err
	}
	c.record("stop_discovery")
	return nil
}

func (c *ReplayClient) Connect(alias string) error {
	if err := c.fail(bluez.OpConnect); err != nil {
		return err
	}
	c.record("connect %s", alias)
	return nil
}

func (c *ReplayClient) Disconnect(alias string) error {
	if err := c.fail(bluez.OpDisconnect); err != nil {
		return err
	}
	c.record("disconnect %s", alias)
	return nil
}

func (c *ReplayClient) Remove(alias string) error {
	if err := c.fail(bluez.OpRemove); err != nil {
		return err
	}
	c.record("remove %s", alias)
	return nil
}

func (c *ReplayClient) Close() error {
	c.record("close")
	return nil
}
