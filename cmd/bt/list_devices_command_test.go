package main

import (
	"strings"
	"testing"

	"bt/internal/bluez"
	"bt/internal/testsupport"
)

func listTestClient() *testsupport.ReplayClient {
	disconnected := bluez.Device{Alias: "old_mouse", Address: "AA:AA:AA:AA:AA:AA", Paired: true}
	return &testsupport.ReplayClient{
		Power: bluez.PowerOn,
		Known: []bluez.Device{testDevice(), disconnected},
	}
}

// headerFields returns the fields of the first non-empty output line, which
// for table output is the header row.
func headerFields(t *testing.T, out string) []string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) != "" {
			return strings.Fields(line)
		}
	}
	t.Fatalf("no header line in output %q", out)
	return nil
}

func TestListDevicesDefaultTable(t *testing.T) {
	env := newCLITestEnv(t, listTestClient())

	out, err := env.run(t, "", "list-devices")
	if err != nil {
		t.Fatalf("list-devices: %v", err)
	}

	header := headerFields(t, out)
	want := []string{"ALIAS", "ADDRESS", "CONNECTED", "TRUSTED", "BONDED", "PAIRED"}
	if len(header) != len(want) {
		t.Fatalf("header fields: got %v, want %v", header, want)
	}
	for i := range want {
		if header[i] != want[i] {
			t.Fatalf("header fields: got %v, want %v", header, want)
		}
	}
	requireContains(t, out, "test_dev")
	requireContains(t, out, "old_mouse")
}

func TestListDevicesColumnSubsetKeepsRequestedOrder(t *testing.T) {
	env := newCLITestEnv(t, listTestClient())

	out, err := env.run(t, "", "list-devices", "--columns", "address,alias")
	if err != nil {
		t.Fatalf("list-devices: %v", err)
	}

	header := headerFields(t, out)
	if len(header) != 2 || header[0] != "ADDRESS" || header[1] != "ALIAS" {
		t.Fatalf("header fields: got %v, want [ADDRESS ALIAS]", header)
	}
	if strings.Contains(out, "true") || strings.Contains(out, "false") {
		t.Fatalf("boolean columns leaked into subset output: %q", out)
	}
}

func TestListDevicesTerseValues(t *testing.T) {
	env := newCLITestEnv(t, listTestClient())

	out, err := env.run(t, "", "list-devices", "--values", "alias,address")
	if err != nil {
		t.Fatalf("list-devices: %v", err)
	}
	want := "test_dev/XX:XX:XX:XX:XX:XX\nold_mouse/AA:AA:AA:AA:AA:AA\n"
	if out != want {
		t.Fatalf("terse output:\n got %q\nwant %q", out, want)
	}
}

func TestListDevicesEmptyValuesUsesDefaultKeys(t *testing.T) {
	env := newCLITestEnv(t, listTestClient())

	out, err := env.run(t, "", "list-devices", "--values=")
	if err != nil {
		t.Fatalf("list-devices: %v", err)
	}
	want := "test_dev/XX:XX:XX:XX:XX:XX/true/true/false/true\n" +
		"old_mouse/AA:AA:AA:AA:AA:AA/false/false/false/true\n"
	if out != want {
		t.Fatalf("terse output:\n got %q\nwant %q", out, want)
	}
}

func TestListDevicesColumnsWinOverValues(t *testing.T) {
	env := newCLITestEnv(t, listTestClient())

	out, err := env.run(t, "", "list-devices", "--columns", "alias", "--values", "address")
	if err != nil {
		t.Fatalf("list-devices: %v", err)
	}
	header := headerFields(t, out)
	if len(header) != 1 || header[0] != "ALIAS" {
		t.Fatalf("header fields: got %v, want [ALIAS]", header)
	}
	if strings.Contains(out, "/") {
		t.Fatalf("terse separator leaked into table output: %q", out)
	}
}

func TestListDevicesStatusFilter(t *testing.T) {
	env := newCLITestEnv(t, listTestClient())

	out, err := env.run(t, "", "list-devices", "--status", "connected", "--values", "alias")
	if err != nil {
		t.Fatalf("list-devices: %v", err)
	}
	if want := "test_dev\n"; out != want {
		t.Fatalf("filtered output: got %q, want %q", out, want)
	}

	// Everything that passes the filter is part of the unfiltered listing.
	env = newCLITestEnv(t, listTestClient())
	all, err := env.run(t, "", "list-devices", "--values", "alias")
	if err != nil {
		t.Fatalf("list-devices: %v", err)
	}
	requireContains(t, all, "test_dev")
}

func TestListDevicesRejectsUnknownColumn(t *testing.T) {
	env := newCLITestEnv(t, listTestClient())

	_, err := env.run(t, "", "list-devices", "--columns", "rssi")
	if err == nil {
		t.Fatal("expected an error for an unknown list-devices column")
	}
	requireContains(t, err.Error(), "unknown column")
}

func TestListDevicesRejectsUnknownStatus(t *testing.T) {
	env := newCLITestEnv(t, listTestClient())

	_, err := env.run(t, "", "list-devices", "--status", "sleeping")
	if err == nil {
		t.Fatal("expected an error for an unknown status filter")
	}
	requireContains(t, err.Error(), "unknown status")
}

func TestListDevicesFailure(t *testing.T) {
	client := listTestClient()
	client.FailOp = bluez.OpDevices
	env := newCLITestEnv(t, client)

	_, err := env.run(t, "", "list-devices")
	if err == nil {
		t.Fatal("expected an error when device enumeration fails")
	}
	requireContains(t, err.Error(), "unable to get known devices")
}
