/*************************************************************************
 * Copyright 2017 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package main

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/netip"

	"github.com/harrybrwn/geocore/apierr"
	"github.com/harrybrwn/geocore/clientip"
	"github.com/harrybrwn/geocore/geodb"
	"github.com/harrybrwn/geocore/htcore"
	glog "github.com/harrybrwn/geocore/log"
	"github.com/harrybrwn/geocore/locale"
)

var errBadAddress = errors.New("not a valid IP address")

type server struct {
	db *geodb.GeoDB
	lg *glog.Logger
}

func newServer(db *geodb.GeoDB, lg *glog.Logger) *server {
	return &server{db: db, lg: lg}
}

func (s *server) routes(mux *http.ServeMux) {
	// /metrics is registered first so instrumentation middleware (an
	// external collaborator, out of scope here) never mistakes a
	// metrics scrape for a hit against the /{address} wildcard.
	mux.HandleFunc("GET /metrics", s.handleMetrics)
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /languages", s.handleSupportedLanguages)
	mux.HandleFunc("GET /self", s.handleSelf)
	mux.HandleFunc("GET /self/languages", s.handleSelfLanguages)
	s.registerDebugRoute(mux)
	mux.HandleFunc("GET /{address}", s.handleLookup)
	mux.HandleFunc("GET /{address}/languages", s.handleLanguages)
}

func (s *server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ip, err := clientip.Resolve(r)
	if err != nil {
		apierr.Write(w, apierr.BadRequestf(err.Error()))
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(ip.String() + "\n"))
}

func (s *server) handleSupportedLanguages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.db.SupportedLanguages())
}

func (s *server) handleSelf(w http.ResponseWriter, r *http.Request) {
	ip, err := clientip.Resolve(r)
	if err != nil {
		apierr.Write(w, apierr.BadRequestf(err.Error()))
		return
	}
	s.lookup(w, r, ip)
}

func (s *server) handleSelfLanguages(w http.ResponseWriter, r *http.Request) {
	ip, err := clientip.Resolve(r)
	if err != nil {
		apierr.Write(w, apierr.BadRequestf(err.Error()))
		return
	}
	s.languages(w, r, ip)
}

func (s *server) handleLookup(w http.ResponseWriter, r *http.Request) {
	ip, err := parseAddressParam(r.PathValue("address"))
	if err != nil {
		apierr.Write(w, apierr.BadRequestf(err.Error()))
		return
	}
	s.lookup(w, r, ip)
}

func (s *server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	ip, err := parseAddressParam(r.PathValue("address"))
	if err != nil {
		apierr.Write(w, apierr.BadRequestf(err.Error()))
		return
	}
	s.languages(w, r, ip)
}

func (s *server) lookup(w http.ResponseWriter, r *http.Request, ip netip.Addr) {
	locales := locale.FromRequest(r)
	resp, err := s.db.Lookup(ip, locales)
	if err != nil {
		s.lg.WarnKV("lookup failed", "request_id", htcore.RequestIDFromContext(r.Context()), "ip", ip.String(), "err", err)
		apierr.Write(w, err)
		return
	}
	if l := resp.Locale(); l != "" {
		w.Header().Set("Content-Language", l)
	}
	writeJSON(w, resp)
}

func (s *server) languages(w http.ResponseWriter, r *http.Request, ip netip.Addr) {
	langs, err := s.db.Languages(ip)
	if err != nil {
		s.lg.WarnKV("languages lookup failed", "request_id", htcore.RequestIDFromContext(r.Context()), "ip", ip.String(), "err", err)
		apierr.Write(w, err)
		return
	}
	writeJSON(w, langs)
}

func parseAddressParam(v string) (netip.Addr, error) {
	ip := net.ParseIP(v)
	if ip == nil {
		addr, err := netip.ParseAddr(v)
		if err != nil {
			return netip.Addr{}, errBadAddress
		}
		return addr, nil
	}
	addr, ok := netip.AddrFromSlice(ip)
	if !ok {
		return netip.Addr{}, errBadAddress
	}
	return addr.Unmap(), nil
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
