package bluez

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/godbus/dbus/v5"
)

const (
	busName      = "org.bluez"
	adapterIface = "org.bluez.Adapter1"
	deviceIface  = "org.bluez.Device1"
	batteryIface = "org.bluez.Battery1"
	propsIface   = "org.freedesktop.DBus.Properties"
)

// managedObjects is the shape returned by ObjectManager.GetManagedObjects:
// object path -> interface name -> property name -> value.
type managedObjects = map[dbus.ObjectPath]map[string]map[string]dbus.Variant

// DBusClient is the real Client binding over the system bus. One instance
// serves one process invocation; it holds no state beyond the connection.
type DBusClient struct {
	conn        *dbus.Conn
	adapterPath dbus.ObjectPath
	logger      *slog.Logger
}

// NewDBusClient connects to the system bus and verifies that BlueZ is
// present. adapter is the bare adapter name, e.g. "hci0".
func NewDBusClient(adapter string, logger *slog.Logger) (*DBusClient, error) {
	conn, err := dbus.SystemBus()
	if err != nil {
		return nil, wrapOp(OpDial, fmt.Errorf("connect to system bus: %w", err))
	}

	var names []string
	if err := conn.BusObject().Call("org.freedesktop.DBus.ListNames", 0).Store(&names); err != nil {
		conn.Close()
		return nil, wrapOp(OpDial, fmt.Errorf("list bus names: %w", err))
	}
	found := false
	for _, n := range names {
		if n == busName {
			found = true
			break
		}
	}
	if !found {
		conn.Close()
		return nil, wrapOp(OpDial, fmt.Errorf("%s not found on system bus; is bluetooth.service running?", busName))
	}

	if logger == nil {
		logger = slog.Default()
	}
	return &DBusClient{
		conn:        conn,
		adapterPath: dbus.ObjectPath("/org/bluez/" + adapter),
		logger:      logger,
	}, nil
}

// Close releases the bus connection.
func (c *DBusClient) Close() error {
	return c.conn.Close()
}

func (c *DBusClient) adapter() dbus.BusObject {
	return c.conn.Object(busName, c.adapterPath)
}

// PowerState reads the adapter's PowerState property.
func (c *DBusClient) PowerState() (PowerState, error) {
	v, err := c.adapter().GetProperty(adapterIface + ".PowerState")
	if err != nil {
		return PowerOff, wrapOp(OpPowerState, err)
	}
	raw, ok := v.Value().(string)
	if !ok {
		return PowerOff, wrapOp(OpPowerState, fmt.Errorf("PowerState property is %T, not string", v.Value()))
	}
	return PowerStateFromDBus(raw), nil
}

// TogglePower flips the adapter's Powered property and returns the new state.
func (c *DBusClient) TogglePower() (PowerState, error) {
	prev, err := c.PowerState()
	if err != nil {
		return prev, wrapOp(OpTogglePower, err)
	}
	next := prev.Toggled()
	call := c.adapter().Call(propsIface+".Set", 0, adapterIface, "Powered", dbus.MakeVariant(next.Powered()))
	if call.Err != nil {
		return prev, wrapOp(OpTogglePower, call.Err)
	}
	c.logger.Debug("adapter power toggled", "state", next.String())
	return next, nil
}

// StartDiscovery begins a discovery session on the adapter.
func (c *DBusClient) StartDiscovery() error {
	return wrapOp(OpStartDiscovery, c.adapter().Call(adapterIface+".StartDiscovery", 0).Err)
}

// StopDiscovery ends the adapter's discovery session.
func (c *DBusClient) StopDiscovery() error {
	return wrapOp(OpStopDiscovery, c.adapter().Call(adapterIface+".StopDiscovery", 0).Err)
}

// Devices enumerates every device object BlueZ currently manages.
func (c *DBusClient) Devices() ([]Device, error) {
	objects, err := c.managedObjects()
	if err != nil {
		return nil, wrapOp(OpDevices, err)
	}
	return devicesFromObjects(objects), nil
}

// ConnectedDevices returns the subset of Devices with an open connection.
func (c *DBusClient) ConnectedDevices() ([]Device, error) {
	objects, err := c.managedObjects()
	if err != nil {
		return nil, wrapOp(OpConnectedDevices, err)
	}
	connected := make([]Device, 0)
	for _, d := range devicesFromObjects(objects) {
		if d.Connected {
			connected = append(connected, d)
		}
	}
	return connected, nil
}

// DiscoveredDevices returns the subset of Devices that carry an RSSI
// reading, i.e. those seen broadcasting during the current discovery window.
func (c *DBusClient) DiscoveredDevices() ([]Device, error) {
	objects, err := c.managedObjects()
	if err != nil {
		return nil, wrapOp(OpDiscoveredDevices, err)
	}
	discovered := make([]Device, 0)
	for _, d := range devicesFromObjects(objects) {
		if d.RSSI != nil {
			discovered = append(discovered, d)
		}
	}
	return discovered, nil
}

// Connect resolves alias to a device object and invokes Device1.Connect.
func (c *DBusClient) Connect(alias string) error {
	path, err := c.devicePathByAlias(alias)
	if err != nil {
		return wrapOp(OpConnect, err)
	}
	return wrapOp(OpConnect, c.conn.Object(busName, path).Call(deviceIface+".Connect", 0).Err)
}

// Disconnect resolves alias to a device object and invokes Device1.Disconnect.
func (c *DBusClient) Disconnect(alias string) error {
	path, err := c.devicePathByAlias(alias)
	if err != nil {
		return wrapOp(OpDisconnect, err)
	}
	return wrapOp(OpDisconnect, c.conn.Object(busName, path).Call(deviceIface+".Disconnect", 0).Err)
}

// Remove resolves alias to a device object and asks the adapter to drop it
// from the known devices list.
func (c *DBusClient) Remove(alias string) error {
	path, err := c.devicePathByAlias(alias)
	if err != nil {
		return wrapOp(OpRemove, err)
	}
	return wrapOp(OpRemove, c.adapter().Call(adapterIface+".RemoveDevice", 0, path).Err)
}

func (c *DBusClient) managedObjects() (managedObjects, error) {
	start := time.Now()
	var objects managedObjects
	obj := c.conn.Object(busName, dbus.ObjectPath("/"))
	if err := obj.Call("org.freedesktop.DBus.ObjectManager.GetManagedObjects", 0).Store(&objects); err != nil {
		return nil, fmt.Errorf("GetManagedObjects: %w", err)
	}
	c.logger.Debug("enumerated bluez objects", "count", len(objects), "elapsed", time.Since(start))
	return objects, nil
}

func (c *DBusClient) devicePathByAlias(alias string) (dbus.ObjectPath, error) {
	objects, err := c.managedObjects()
	if err != nil {
		return "", err
	}
	for path, ifaces := range objects {
		props, ok := ifaces[deviceIface]
		if !ok {
			continue
		}
		if stringProp(props, "Alias") == alias {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: alias %q", ErrDeviceNotFound, alias)
}

// devicesFromObjects builds device records from a managed-objects reply,
// sorted by address so output is stable between calls.
func devicesFromObjects(objects managedObjects) []Device {
	devices := make([]Device, 0, len(objects))
	for path, ifaces := range objects {
		props, ok := ifaces[deviceIface]
		if !ok {
			continue
		}
		// Device paths look like /org/bluez/hci0/dev_AA_BB_...; the path
		// check keeps adapters and media endpoints out regardless of which
		// interfaces they carry.
		if !strings.Contains(string(path), "/dev_") {
			continue
		}

		d := Device{
			Alias:     stringProp(props, "Alias"),
			Address:   stringProp(props, "Address"),
			Connected: boolProp(props, "Connected"),
			Paired:    boolProp(props, "Paired"),
			Trusted:   boolProp(props, "Trusted"),
			Bonded:    boolProp(props, "Bonded"),
		}
		if rssi, ok := props["RSSI"]; ok {
			if v, ok := rssi.Value().(int16); ok {
				d.RSSI = &v
			}
		}
		if d.Connected {
			if battery, ok := ifaces[batteryIface]; ok {
				if v, ok := battery["Percentage"].Value().(byte); ok {
					pct := uint8(v)
					d.Battery = &pct
				}
			}
		}
		devices = append(devices, d)
	}
	sort.Slice(devices, func(i, j int) bool { return devices[i].Address < devices[j].Address })
	return devices
}

func stringProp(props map[string]dbus.Variant, name string) string {
	if v, ok := props[name]; ok {
		if s, ok := v.Value().(string); ok {
			return s
		}
	}
	return ""
}

func boolProp(props map[string]dbus.Variant, name string) bool {
	if v, ok := props[name]; ok {
		if b, ok := v.Value().(bool); ok {
			return b
		}
	}
	return false
}
