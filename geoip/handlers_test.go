/*************************************************************************
 * Copyright 2017 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
)

func TestParseAddressParamV4(t *testing.T) {
	addr, err := parseAddressParam("93.184.216.34")
	if err != nil {
		t.Fatal(err)
	}
	if addr.String() != "93.184.216.34" {
		t.Errorf("got %q", addr.String())
	}
}

func TestParseAddressParamV6(t *testing.T) {
	addr, err := parseAddressParam("2606:2800:220:1:248:1893:25c8:1946")
	if err != nil {
		t.Fatal(err)
	}
	if !addr.Is6() {
		t.Errorf("expected an IPv6 address, got %v", addr)
	}
}

func TestParseAddressParamInvalid(t *testing.T) {
	if _, err := parseAddressParam("not-an-ip"); err != errBadAddress {
		t.Fatalf("err = %v, want errBadAddress", err)
	}
}

func TestHandleIndexReturnsPlainTextIP(t *testing.T) {
	s := newServer(nil, nil)
	ip := gofakeit.IPv4Address()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = ip + ":51234"
	w := httptest.NewRecorder()
	s.handleIndex(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if got := w.Body.String(); got != ip+"\n" {
		t.Fatalf("body = %q, want %q", got, ip+"\n")
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/plain; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestRoutesPreferSelfOverWildcard(t *testing.T) {
	s := newServer(nil, nil)
	mux := http.NewServeMux()
	s.routes(mux)

	req := httptest.NewRequest(http.MethodGet, "/self", nil)
	req.RemoteAddr = gofakeit.IPv4Address() + ":51234"
	var matched string
	_, pattern := mux.Handler(req)
	matched = pattern
	if matched != "GET /self" {
		t.Fatalf("matched pattern = %q, want GET /self", matched)
	}
}
