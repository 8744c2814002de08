// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics exposes Prometheus counters for spins, members, stats
// queries and HTTP requests on a private registry, served at /metrics.
package metrics
