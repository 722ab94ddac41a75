// Package testsupport provides shared fixtures for tests: a scripted
// replay implementation of the bluez client and config scaffolding.
package testsupport
