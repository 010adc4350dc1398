// Package courier contains the Courier aggregate (a mobile field agent)
// and the immutable Position value representing a single GPS ping.
//
// Positions are append-only: a courier's "current position" is the ping
// with the latest recorded-at timestamp that has not outlived the retention
// window. A courier with no unexpired ping is unlocatable and drops out of
// proximity matching.
package courier
