package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"bt/internal/bluez"
)

// deviceColumn is one key of a device listing, shared by the pretty and
// terse output shapes.
type deviceColumn string

const (
	columnAlias     deviceColumn = "alias"
	columnAddress   deviceColumn = "address"
	columnConnected deviceColumn = "connected"
	columnTrusted   deviceColumn = "trusted"
	columnBonded    deviceColumn = "bonded"
	columnPaired    deviceColumn = "paired"
	columnRSSI      deviceColumn = "rssi"
)

// listDeviceColumns are the keys (and default order) for list-devices.
var listDeviceColumns = []deviceColumn{
	columnAlias, columnAddress, columnConnected, columnTrusted, columnBonded, columnPaired,
}

// scanColumns are the keys (and default order) for scan.
var scanColumns = []deviceColumn{columnAlias, columnAddress, columnRSSI}

func (c deviceColumn) header() string { return strings.ToUpper(string(c)) }

func (c deviceColumn) alignment() columnAlignment {
	if c == columnRSSI {
		return alignRight
	}
	return alignLeft
}

// cell renders the column's value for one device record.
func (c deviceColumn) cell(d bluez.Device) string {
	switch c {
	case columnAlias:
		return d.Alias
	case columnAddress:
		return d.Address
	case columnConnected:
		return strconv.FormatBool(d.Connected)
	case columnTrusted:
		return strconv.FormatBool(d.Trusted)
	case columnBonded:
		return strconv.FormatBool(d.Bonded)
	case columnPaired:
		return strconv.FormatBool(d.Paired)
	case columnRSSI:
		if d.RSSI == nil {
			return "0"
		}
		return strconv.FormatInt(int64(*d.RSSI), 10)
	}
	return ""
}

// parseColumns maps the raw --columns/--values items onto the allowed key
// set, preserving order.
func parseColumns(raw []string, allowed []deviceColumn) ([]deviceColumn, error) {
	parsed := make([]deviceColumn, 0, len(raw))
	for _, item := range raw {
		key := deviceColumn(strings.ToLower(strings.TrimSpace(item)))
		if key == "" {
			// `--values=""` selects the shape while keeping the default keys.
			continue
		}
		ok := false
		for _, candidate := range allowed {
			if key == candidate {
				ok = true
				break
			}
		}
		if !ok {
			return nil, fmt.Errorf("unknown column %q (valid: %s)", item, joinColumns(allowed))
		}
		parsed = append(parsed, key)
	}
	return parsed, nil
}

func joinColumns(columns []deviceColumn) string {
	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

// statusFilter is the optional --status predicate of list-devices.
type statusFilter string

const (
	statusConnected statusFilter = "connected"
	statusTrusted   statusFilter = "trusted"
	statusBonded    statusFilter = "bonded"
	statusPaired    statusFilter = "paired"
)

func parseStatusFilter(raw string) (statusFilter, error) {
	filter := statusFilter(strings.ToLower(strings.TrimSpace(raw)))
	switch filter {
	case statusConnected, statusTrusted, statusBonded, statusPaired:
		return filter, nil
	}
	return "", fmt.Errorf("unknown status %q (valid: connected, trusted, bonded, paired)", raw)
}

func (f statusFilter) matches(d bluez.Device) bool {
	switch f {
	case statusConnected:
		return d.Connected
	case statusTrusted:
		return d.Trusted
	case statusBonded:
		return d.Bonded
	case statusPaired:
		return d.Paired
	}
	return true
}

func filterByStatus(devices []bluez.Device, filter statusFilter) []bluez.Device {
	if filter == "" {
		return devices
	}
	kept := make([]bluez.Device, 0, len(devices))
	for _, d := range devices {
		if filter.matches(d) {
			kept = append(kept, d)
		}
	}
	return kept
}

type outputMode int

const (
	modePretty outputMode = iota
	modeTerse
)

// selectListing picks the output shape and key set from the --columns and
// --values flags. Columns win over values; a flag given with no items falls
// back to the default keys; neither flag means the pretty default. Exactly
// one shape is ever produced.
func selectListing(columnsSet, valuesSet bool, columns, values, defaults []deviceColumn) (outputMode, []deviceColumn) {
	switch {
	case columnsSet:
		if len(columns) == 0 {
			return modePretty, defaults
		}
		return modePretty, columns
	case valuesSet:
		if len(values) == 0 {
			return modeTerse, defaults
		}
		return modeTerse, values
	default:
		return modePretty, defaults
	}
}

// writeListing renders devices in the selected shape.
func writeListing(w io.Writer, devices []bluez.Device, keys []deviceColumn, mode outputMode) error {
	if mode == modeTerse {
		var b strings.Builder
		for _, d := range devices {
			cells := make([]string, len(keys))
			for i, key := range keys {
				cells[i] = key.cell(d)
			}
			b.WriteString(strings.Join(cells, "/"))
			b.WriteByte('\n')
		}
		_, err := io.WriteString(w, b.String())
		return err
	}

	headers := make([]string, len(keys))
	aligns := make([]columnAlignment, len(keys))
	for i, key := range keys {
		headers[i] = key.header()
		aligns[i] = key.alignment()
	}
	rows := make([][]string, len(devices))
	for i, d := range devices {
		row := make([]string, len(keys))
		for j, key := range keys {
			row[j] = key.cell(d)
		}
		rows[i] = row
	}
	_, err := fmt.Fprintln(w, renderTable(w, headers, rows, aligns))
	return err
}
