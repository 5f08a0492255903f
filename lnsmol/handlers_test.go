/*************************************************************************
 * Copyright 2017 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	glog "github.com/harrybrwn/geocore/log"
	"github.com/harrybrwn/geocore/linkstore"
	"github.com/harrybrwn/geocore/linkstore/memkv"
)

func testServer() *server {
	store := linkstore.NewMemStore(memkv.New(), "geo.example")
	return newServer(store, glog.New(bytes.NewBuffer(nil)))
}

func testMux(s *server) http.Handler {
	mux := http.NewServeMux()
	s.routes(mux, "/l")
	return mux
}

func TestHandleCreateJSON(t *testing.T) {
	s := testServer()
	mux := testMux(s)

	body := strings.NewReader(`{"url":"https://dest.example/a"}`)
	req := httptest.NewRequest(http.MethodPost, "/l", body)
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var got struct {
		URL string `json:"url"`
		ID  string `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.URL != "https://dest.example/a" || got.ID == "" {
		t.Fatalf("unexpected body: %+v", got)
	}
}

func TestHandleCreateTextDefault(t *testing.T) {
	s := testServer()
	mux := testMux(s)

	req := httptest.NewRequest(http.MethodPost, "/l", strings.NewReader(`{"url":"https://dest.example/b"}`))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if w.Body.Len() == 0 {
		t.Fatal("expected a plain id body")
	}
}

func TestHandleCreateUnacceptable(t *testing.T) {
	s := testServer()
	mux := testMux(s)

	req := httptest.NewRequest(http.MethodPost, "/l", strings.NewReader(`{"url":"https://dest.example/c"}`))
	req.Header.Set("Accept", "image/png")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestHandleRedirectAndDelete(t *testing.T) {
	s := testServer()
	mux := testMux(s)

	req := httptest.NewRequest(http.MethodPost, "/l", strings.NewReader(`{"url":"https://dest.example/d"}`))
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}

	redirReq := httptest.NewRequest(http.MethodGet, "/l/"+created.ID, nil)
	redirW := httptest.NewRecorder()
	mux.ServeHTTP(redirW, redirReq)
	if redirW.Code != http.StatusTemporaryRedirect {
		t.Fatalf("status = %d, want 307", redirW.Code)
	}
	if got := redirW.Header().Get("Location"); got != "https://dest.example/d" {
		t.Fatalf("Location = %q", got)
	}

	delReq := httptest.NewRequest(http.MethodDelete, "/l/"+created.ID, nil)
	delW := httptest.NewRecorder()
	mux.ServeHTTP(delW, delReq)
	if delW.Code != http.StatusOK {
		t.Fatalf("delete status = %d", delW.Code)
	}

	missingReq := httptest.NewRequest(http.MethodGet, "/l/"+created.ID, nil)
	missingW := httptest.NewRecorder()
	mux.ServeHTTP(missingW, missingReq)
	if missingW.Code != http.StatusNotFound {
		t.Fatalf("status after delete = %d, want 404", missingW.Code)
	}
}

func TestHandleRedirectMissing(t *testing.T) {
	s := testServer()
	mux := testMux(s)

	req := httptest.NewRequest(http.MethodGet, "/l/does-not-exist", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestHandleCreatePageRendersHTML(t *testing.T) {
	s := testServer()
	mux := testMux(s)

	req := httptest.NewRequest(http.MethodGet, "/l", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "<form") {
		t.Fatalf("expected an HTML form, got %s", w.Body.String())
	}
}
