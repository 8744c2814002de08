// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("POST /api/spin", middleware.WithLogging(handler))

Logs request start (method, path, client_ip) and completion (status,
duration_ms).

# Metrics

Count requests by method and status code:

	handler := middleware.WithMetrics(m, mux)

WithMetrics and WithLogging share one status recorder when nested.

# CORS Middleware

Enable cross-origin requests for the configured origins:

	server := http.Server{
		Handler: middleware.CORS(cfg.AllowedOrigins, mux),
	}

A "*" entry answers with a literal "*" and no credentials. Explicitly
listed origins are echoed back with credentials allowed. Unlisted origins
get no Access-Control-Allow-Origin header. The HTMX request headers are allowed.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

HTMX endpoints write plain text errors instead:

	middleware.HTMLError(w, http.StatusBadRequest, "No members selected")

Parse JSON request bodies:

	var req models.SpinRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)
*/
package middleware
