/*************************************************************************
 * Copyright 2017 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package htcore

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/harrybrwn/geocore/accept"
	"github.com/harrybrwn/geocore/mime"
)

// ErrNotAcceptable is returned by Negotiate when the request's Accept
// header names a media type none of the supplied renderers produce.
var ErrNotAcceptable = errors.New("htcore: no acceptable representation for this response")

var (
	mediaJSON  = mime.MediaType{Type: mime.TypeApplication, Sub: mime.SubJSON}
	mediaHTML  = mime.MediaType{Type: mime.TypeText, Sub: mime.SubHTML}
	mediaPlain = mime.MediaType{Type: mime.TypeText, Sub: mime.SubPlain}
)

// Responder renders a single result in one of the three wire formats
// this codebase negotiates: plain text, JSON and HTML.
type Responder struct {
	Text func(w http.ResponseWriter) error
	JSON func(w http.ResponseWriter) error
	HTML func(w http.ResponseWriter) error
}

// Negotiate picks the renderer matching r's highest-ranked acceptable
// media type, trying Accept items in q order (equal-q items in header
// order). For each item it checks text/plain (also chosen by a bare
// "*/*", including a missing Accept header), then application/json,
// then text/html, and uses the first supplied renderer the item
// matches; that preference therefore only decides between renderers
// for a single wildcard item such as "*/*" or "text/*". If the Accept
// header names something none of the supplied renderers produce, it
// returns ErrNotAcceptable and writes nothing.
func Negotiate(w http.ResponseWriter, r *http.Request, resp Responder) error {
	list := accept.FromRequest(r)
	for _, item := range list {
		isWildcard := item.Media.Type == mime.TypeAny && item.Media.Sub == mime.SubAny
		switch {
		case (isWildcard || item.Media.Matches(mediaPlain)) && resp.Text != nil:
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			return resp.Text(w)
		case item.Media.Matches(mediaJSON) && resp.JSON != nil:
			w.Header().Set("Content-Type", "application/json")
			return resp.JSON(w)
		case item.Media.Matches(mediaHTML) && resp.HTML != nil:
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			return resp.HTML(w)
		}
	}
	return ErrNotAcceptable
}

// WriteJSON is a small helper for Responder.JSON fields: it encodes v
// and writes it to w.
func WriteJSON(w http.ResponseWriter, v interface{}) error {
	return json.NewEncoder(w).Encode(v)
}
