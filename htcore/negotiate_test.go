/*************************************************************************
 * Copyright 2017 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package htcore

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func testResponder(w http.ResponseWriter) error {
	_, err := w.Write([]byte("ok"))
	return err
}

func TestNegotiatePrefersJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	if err := Negotiate(w, req, Responder{
		Text: testResponder, JSON: testResponder, HTML: testResponder,
	}); err != nil {
		t.Fatal(err)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestNegotiateHTML(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept", "text/html")
	w := httptest.NewRecorder()
	if err := Negotiate(w, req, Responder{
		Text: testResponder, JSON: testResponder, HTML: testResponder,
	}); err != nil {
		t.Fatal(err)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestNegotiateFallsBackToJSONOnWildcardWhenNoTextRenderer(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	if err := Negotiate(w, req, Responder{JSON: testResponder}); err != nil {
		t.Fatal(err)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestNegotiateReturnsNotAcceptable(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept", "application/xml")
	w := httptest.NewRecorder()
	err := Negotiate(w, req, Responder{Text: testResponder, JSON: testResponder, HTML: testResponder})
	if err != ErrNotAcceptable {
		t.Fatalf("err = %v, want ErrNotAcceptable", err)
	}
}

func TestNegotiateTextOnly(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept", "text/plain")
	w := httptest.NewRecorder()
	if err := Negotiate(w, req, Responder{Text: testResponder}); err != nil {
		t.Fatal(err)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/plain; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestTrimTrailingSlash(t *testing.T) {
	cases := map[string]string{
		"/":        "/",
		"/foo/":    "/foo",
		"/foo":     "/foo",
		"/foo/bar": "/foo/bar",
	}
	for in, want := range cases {
		if got := TrimTrailingSlash(in); got != want {
			t.Errorf("TrimTrailingSlash(%q) = %q, want %q", in, got, want)
		}
	}
}
