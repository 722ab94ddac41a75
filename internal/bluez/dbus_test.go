package bluez

import (
	"errors"
	"strings"
	"testing"

	"github.com/godbus/dbus/v5"
)

func TestPowerStateMapping(t *testing.T) {
	cases := []struct {
		raw  string
		want PowerState
	}{
		{"on", PowerOn},
		{"off", PowerOff},
		{"off-enabling", PowerOff},
		{"", PowerOff},
	}
	for _, tc := range cases {
		if got := PowerStateFromDBus(tc.raw); got != tc.want {
			t.Errorf("PowerStateFromDBus(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}

	if PowerOn.Toggled() != PowerOff || PowerOff.Toggled() != PowerOn {
		t.Error("Toggled did not flip the state")
	}
	if PowerOn.String() != "enabled" || PowerOff.String() != "disabled" {
		t.Errorf("unexpected display forms: %q / %q", PowerOn, PowerOff)
	}
	if !PowerOn.Powered() || PowerOff.Powered() {
		t.Error("Powered mapping is wrong")
	}
}

func deviceObject(alias, address string, connected bool, rssi *int16, battery *uint8) map[string]map[string]dbus.Variant {
	props := map[string]dbus.Variant{
		"Alias":     dbus.MakeVariant(alias),
		"Address":   dbus.MakeVariant(address),
		"Connected": dbus.MakeVariant(connected),
		"Paired":    dbus.MakeVariant(true),
		"Trusted":   dbus.MakeVariant(true),
		"Bonded":    dbus.MakeVariant(false),
	}
	if rssi != nil {
		props["RSSI"] = dbus.MakeVariant(*rssi)
	}
	ifaces := map[string]map[string]dbus.Variant{deviceIface: props}
	if battery != nil {
		ifaces[batteryIface] = map[string]dbus.Variant{
			"Percentage": dbus.MakeVariant(*battery),
		}
	}
	return ifaces
}

func TestDevicesFromObjects(t *testing.T) {
	rssi := int16(-42)
	battery := uint8(50)

	objects := managedObjects{
		"/org/bluez/hci0": {
			adapterIface: {"Address": dbus.MakeVariant("00:00:00:00:00:00")},
		},
		"/org/bluez/hci0/dev_BB_00_00_00_00_01": deviceObject("buds", "BB:00:00:00:00:01", true, nil, &battery),
		"/org/bluez/hci0/dev_AA_00_00_00_00_02": deviceObject("speaker", "AA:00:00:00:00:02", false, &rssi, nil),
	}

	devices := devicesFromObjects(objects)
	if len(devices) != 2 {
		t.Fatalf("expected 2 devices, got %d", len(devices))
	}

	// Sorted by address: AA... before BB...
	if devices[0].Alias != "speaker" || devices[1].Alias != "buds" {
		t.Fatalf("unexpected order: %q, %q", devices[0].Alias, devices[1].Alias)
	}

	if devices[0].RSSI == nil || *devices[0].RSSI != -42 {
		t.Error("RSSI missing on discovered device")
	}
	if devices[0].Battery != nil {
		t.Error("battery must not be set on a disconnected device")
	}

	if devices[1].Battery == nil || *devices[1].Battery != 50 {
		t.Error("battery missing on connected device")
	}
	if devices[1].RSSI != nil {
		t.Error("RSSI must not be set outside a discovery window")
	}
}

func TestDevicesFromObjectsSkipsBatteryOnDisconnected(t *testing.T) {
	battery := uint8(80)

	devices := devicesFromObjects(managedObjects{
		"/org/bluez/hci0/dev_CC_00_00_00_00_03": deviceObject("dormant", "CC:00:00:00:00:03", false, nil, &battery),
	})
	if len(devices) != 1 {
		t.Fatalf("expected 1 device, got %d", len(devices))
	}
	if devices[0].Battery != nil {
		t.Error("battery read for a disconnected device")
	}
}

func TestErrorTagging(t *testing.T) {
	underlying := errors.New("boom")
	err := wrapOp(OpStopDiscovery, underlying)

	var tagged *Error
	if !errors.As(err, &tagged) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if tagged.Op != OpStopDiscovery {
		t.Errorf("op = %q, want %q", tagged.Op, OpStopDiscovery)
	}
	if !errors.Is(err, underlying) {
		t.Error("wrapped error lost the cause")
	}
	if !strings.Contains(err.Error(), string(OpStopDiscovery)) {
		t.Errorf("message %q does not name the operation", err.Error())
	}

	if wrapOp(OpConnect, nil) != nil {
		t.Error("wrapOp(nil) must be nil")
	}
}
