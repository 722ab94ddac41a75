package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"bt/internal/bluez"
)

var (
	errInvalidSelection   = errors.New("the selected device index is not valid")
	errNoConnectedDevices = errors.New("there are no connected devices to disconnect")
)

// promptConnectTarget shows discovered devices as a numbered table, reads
// one index from r, and returns the selected device's alias.
func promptConnectTarget(w io.Writer, r io.Reader, devices []bluez.Device) (string, error) {
	headers := []string{"IDX", "ALIAS", "ADDRESS", "RSSI"}
	rows := make([][]string, len(devices))
	for i, d := range devices {
		rssi := "-"
		if d.RSSI != nil {
			rssi = strconv.FormatInt(int64(*d.RSSI), 10)
		}
		rows[i] = []string{fmt.Sprintf("(%d)", i), d.Alias, d.Address, rssi}
	}

	aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight}
	prompt := renderTable(w, headers, rows, aligns) + "\nSelect the device you wish to connect: "
	if _, err := io.WriteString(w, prompt); err != nil {
		return "", err
	}

	line, err := readLine(r)
	if err != nil {
		return "", err
	}
	idx, err := parseIndex(line)
	if err != nil || idx >= len(devices) {
		return "", errInvalidSelection
	}
	return devices[idx].Alias, nil
}

// promptDisconnectTargets shows connected devices as a numbered table, reads
// a comma-separated index list from r, and returns the selected aliases. An
// invalid or out-of-range index fails the whole selection; no aliases are
// returned.
func promptDisconnectTargets(w io.Writer, r io.Reader, devices []bluez.Device) ([]string, error) {
	headers := []string{"IDX", "ALIAS", "ADDRESS"}
	rows := make([][]string, len(devices))
	for i, d := range devices {
		rows[i] = []string{strconv.Itoa(i), d.Alias, d.Address}
	}

	aligns := []columnAlignment{alignLeft, alignLeft, alignLeft}
	prompt := renderTable(w, headers, rows, aligns) + "\nSelect the device(s) you wish to disconnect: "
	if _, err := io.WriteString(w, prompt); err != nil {
		return nil, err
	}

	line, err := readLine(r)
	if err != nil {
		return nil, err
	}

	aliases := make([]string, 0, len(devices))
	for _, item := range strings.Split(line, ",") {
		idx, err := parseIndex(item)
		if err != nil || idx >= len(devices) {
			return nil, errInvalidSelection
		}
		aliases = append(aliases, devices[idx].Alias)
	}
	return aliases, nil
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read selection: %w", err)
	}
	return line, nil
}

// parseIndex accepts the same range the prompt prints: small non-negative
// integers.
func parseIndex(raw string) (int, error) {
	idx, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 8)
	if err != nil {
		return 0, errInvalidSelection
	}
	return int(idx), nil
}
