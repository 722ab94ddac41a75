package bluez

// PowerState is the adapter's two-valued power flag.
type PowerState string

const (
	PowerOn  PowerState = "on"
	PowerOff PowerState = "off"
)

// PowerStateFromDBus maps the BlueZ PowerState property value. Anything
// other than "on" (including the transitional states) counts as off.
func PowerStateFromDBus(value string) PowerState {
	if value == "on" {
		return PowerOn
	}
	return PowerOff
}

// Toggled returns the opposite state.
func (s PowerState) Toggled() PowerState {
	if s == PowerOn {
		return PowerOff
	}
	return PowerOn
}

// Powered reports the state as the boolean the Powered property expects.
func (s PowerState) Powered() bool { return s == PowerOn }

// String renders the user-facing form shown by status and toggle.
func (s PowerState) String() string {
	if s == PowerOn {
		return "enabled"
	}
	return "disabled"
}

// Device is a point-in-time snapshot of one BlueZ device object. Records are
// built fresh on every call and never cached.
type Device struct {
	Alias     string
	Address   string
	Connected bool
	Paired    bool
	Trusted   bool
	Bonded    bool

	// Battery is set only for connected devices exposing org.bluez.Battery1.
	Battery *uint8

	// RSSI is set only while the device is broadcasting during discovery.
	RSSI *int16
}

// Client is the capability surface this tool needs from the Bluetooth
// service. DBusClient is the real binding; tests substitute a scripted
// replay implementation.
type Client interface {
	PowerState() (PowerState, error)
	TogglePower() (PowerState, error)

	Devices() ([]Device, error)
	ConnectedDevices() ([]Device, error)
	DiscoveredDevices() ([]Device, error)

	StartDiscovery() error
	StopDiscovery() error

	Connect(alias string) error
	Disconnect(alias string) error
	Remove(alias string) error

	Close() error
}
