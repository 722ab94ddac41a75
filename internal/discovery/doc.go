// Package discovery runs time-bounded BlueZ discovery sessions.
//
// A session wraps StartDiscovery/StopDiscovery around a fixed sleep and
// holds a host-wide file lock for its duration so two bt invocations cannot
// fight over the adapter's discovery state.
package discovery
