// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package render writes the HTML fragments served under /ui for HTMX
// pages: member checkboxes, the speaking order card and stat cards.
// Templates are embedded from templates/.
package render
