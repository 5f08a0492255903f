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
	"net/http"
	"strconv"

	"github.com/harrybrwn/geocore/apierr"
	glog "github.com/harrybrwn/geocore/log"
	"github.com/harrybrwn/geocore/htcore"
	"github.com/harrybrwn/geocore/linkstore"
)

type server struct {
	store  *linkstore.Store
	lg     *glog.Logger
	prefix string
}

func newServer(store *linkstore.Store, lg *glog.Logger) *server {
	return &server{store: store, lg: lg}
}

// routes registers every link route under prefix (e.g. "/l"). An empty
// prefix mounts them at the root.
func (s *server) routes(mux *http.ServeMux, prefix string) {
	prefix = htcore.TrimTrailingSlash(prefix)
	s.prefix = prefix
	// The prefix root is matched exactly ("/l", not "/l/"), since
	// NormalizePath trims the trailing slash before the mux sees it.
	root := prefix
	if root == "" {
		root = "/{$}"
	}
	mux.HandleFunc("GET /metrics", s.handleMetrics)
	mux.HandleFunc("POST "+root, s.handleCreate)
	mux.HandleFunc("POST "+prefix+"/new", s.handleCreateForm)
	mux.HandleFunc("GET "+root, s.handleCreatePage)
	mux.HandleFunc("GET "+prefix+"/info/{id}", s.handleInfo)
	mux.HandleFunc("GET "+prefix+"/{id}", s.handleRedirect)
	mux.HandleFunc("DELETE "+prefix+"/{id}", s.handleDelete)
}

func (s *server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (s *server) handleCreatePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	createPageTmpl.Execute(w, createPage{Prefix: s.prefix})
}

func (s *server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req linkstore.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.Write(w, apierr.BadRequestf("invalid json body"))
		return
	}
	id, err := s.store.Create(r.Context(), req)
	if err != nil {
		s.lg.WarnKV("create failed", "request_id", htcore.RequestIDFromContext(r.Context()), "url", req.URL, "err", err)
		apierr.Write(w, err)
		return
	}
	err = htcore.Negotiate(w, r, htcore.Responder{
		Text: func(w http.ResponseWriter) error {
			_, err := w.Write([]byte(id))
			return err
		},
		JSON: func(w http.ResponseWriter) error {
			return htcore.WriteJSON(w, struct {
				URL string `json:"url"`
				ID  string `json:"id"`
			}{URL: req.URL, ID: id})
		},
		HTML: func(w http.ResponseWriter) error {
			return newLinkTmpl.Execute(w, newLinkPage{Prefix: s.prefix, ID: id, URL: req.URL})
		},
	})
	if err == htcore.ErrNotAcceptable {
		apierr.Write(w, apierr.BadRequestf("unsupported Accept type"))
	} else if err != nil {
		s.lg.ErrorKV("failed to render create response", "request_id", htcore.RequestIDFromContext(r.Context()), "err", err)
	}
}

func (s *server) handleCreateForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		apierr.Write(w, apierr.BadRequestf("invalid form body"))
		return
	}
	req := linkstore.CreateRequest{URL: r.FormValue("url")}
	if v := r.FormValue("expires"); v != "" {
		if secs, err := strconv.ParseInt(v, 10, 64); err == nil {
			req.Expires = &secs
		}
	}
	id, err := s.store.Create(r.Context(), req)
	if err != nil {
		s.lg.WarnKV("create failed", "request_id", htcore.RequestIDFromContext(r.Context()), "url", req.URL, "err", err)
		apierr.Write(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	newLinkTmpl.Execute(w, newLinkPage{Prefix: s.prefix, ID: id, URL: req.URL})
}

func (s *server) handleInfo(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	link, err := s.store.Get(r.Context(), id)
	if err != nil {
		apierr.Write(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	infoTmpl.Execute(w, infoPage{Prefix: s.prefix, ID: id, URL: link.URL})
}

func (s *server) handleRedirect(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	link, err := s.store.Get(r.Context(), id)
	if err != nil {
		apierr.Write(w, err)
		return
	}
	w.Header().Set("Location", link.URL)
	w.WriteHeader(http.StatusTemporaryRedirect)
}

func (s *server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.store.Del(r.Context(), id); err != nil {
		apierr.Write(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
