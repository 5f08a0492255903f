/*************************************************************************
 * Copyright 2017 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

// Package htcore holds the HTTP middleware shared by the geoip and
// lnsmol services: CORS, gzip, a bounded worker pool, request ids and
// content negotiation.
package htcore

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzhttp"
	"github.com/rs/cors"
	"golang.org/x/sync/semaphore"
)

// Middleware wraps an http.Handler with additional behavior.
type Middleware func(http.Handler) http.Handler

// Chain applies middleware in the order given, so the first one listed
// runs outermost (sees the request first).
func Chain(h http.Handler, mw ...Middleware) http.Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return h
}

// CORS builds the rs/cors middleware used by both services: the
// configured origin (or "*"), GET/OPTIONS only, and the two request
// headers content negotiation relies on.
func CORS(allowedOrigin string) Middleware {
	if allowedOrigin == "" {
		allowedOrigin = "*"
	}
	c := cors.New(cors.Options{
		AllowedOrigins: []string{allowedOrigin},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Accept-Language"},
	})
	return c.Handler
}

// Gzip compresses responses when the client advertises support for it.
func Gzip() Middleware {
	wrap, err := gzhttp.NewWrapper()
	if err != nil {
		// Only returned for invalid options; none are set here.
		panic(err)
	}
	return func(h http.Handler) http.Handler { return wrap(h) }
}

// Throttle bounds concurrent in-flight requests to n, queuing the rest
// on r.Context() until a slot frees up or the client disconnects.
func Throttle(n int64) Middleware {
	if n <= 0 {
		n = 1
	}
	sem := semaphore.NewWeighted(n)
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := sem.Acquire(r.Context(), 1); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			defer sem.Release(1)
			h.ServeHTTP(w, r)
		})
	}
}

// NormalizePath trims a trailing slash from the request path (except
// the root "/") before the mux sees it, so "/self/" behaves the same
// as "/self".
func NormalizePath() Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			trimmed := TrimTrailingSlash(r.URL.Path)
			if trimmed != r.URL.Path {
				r.URL.Path = trimmed
			}
			h.ServeHTTP(w, r)
		})
	}
}

type requestIDKey struct{}

// RequestID stamps an X-Request-Id response header (reusing the
// inbound one if the caller supplied it) and attaches it to the
// request context for handlers and loggers to read.
func RequestID() Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get("X-Request-Id")
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set("X-Request-Id", id)
			ctx := context.WithValue(r.Context(), requestIDKey{}, id)
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestIDFromContext returns the id RequestID attached to ctx, or ""
// if none is present.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
