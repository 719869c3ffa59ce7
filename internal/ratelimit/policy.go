// Package ratelimit implements fixed-window request counting per client key.
//
// Counting state lives behind the Store interface so the limiter owns no
// hidden process-global: tests inject a fresh in-memory store, and
// multi-instance deployments can share counters through Redis.
//
// Fixed windows reset at regular intervals rather than sliding, which allows
// short bursts of up to twice the configured rate across a window boundary.
// That trade-off buys O(1) memory per client and no background sweep, and is
// acceptable for administrative-tool traffic.
package ratelimit

import "time"

// Policy defines one rate-limiting budget: how many requests a single client
// key may make within a window, and the message returned on rejection.
type Policy struct {
	// Name namespaces bucket keys so the same client IP is counted
	// independently under different policies.
	Name string

	Window time.Duration
	Max    int

	// Message is returned in the rejection envelope.
	Message string

	// SkipSuccessful un-counts requests that complete with a status below
	// 400. Used on the auth policy so only failed login attempts burn quota.
	SkipSuccessful bool
}

// The four portal policies.
var (
	// General applies to all API routes.
	General = Policy{
		Name:    "general",
		Window:  15 * time.Minute,
		Max:     100,
		Message: "Too many requests from this IP, please try again later.",
	}

	// Auth applies to login/auth routes. Successful requests are excluded
	// from the count.
	Auth = Policy{
		Name:           "auth",
		Window:         15 * time.Minute,
		Max:            5,
		Message:        "Too many authentication attempts, please try again later.",
		SkipSuccessful: true,
	}

	// Dashboard applies to dashboard and reporting routes.
	Dashboard = Policy{
		Name:    "dashboard",
		Window:  1 * time.Minute,
		Max:     30,
		Message: "Too many dashboard requests, please slow down.",
	}

	// Upload applies to file upload routes.
	Upload = Policy{
		Name:    "upload",
		Window:  60 * time.Minute,
		Max:     10,
		Message: "Too many file uploads, please try again later.",
	}
)
