// Package bluez talks to the BlueZ system service over D-Bus.
//
// It exposes a small capability interface (Client) covering adapter power
// control, discovery start/stop, device enumeration, and per-device
// connect/disconnect/remove. The real binding (DBusClient) maps each call
// onto a single synchronous D-Bus round trip; there are no retries, caches,
// or background goroutines. Every failure is tagged with the logical
// operation that produced it so callers can report precisely which step of a
// command went wrong.
package bluez
