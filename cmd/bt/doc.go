// Package main hosts the bt CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into BlueZ
// D-Bus calls: adapter status and power toggling, device listings, discovery
// scans, and connect/disconnect flows with an optional interactive picker.
// It centralizes configuration resolution, structured logging setup, and
// client dialing so subcommands can focus on user experience instead of
// wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
