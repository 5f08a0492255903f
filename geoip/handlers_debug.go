/*************************************************************************
 * Copyright 2017 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

//go:build debug

package main

import (
	"net/http"

	"github.com/harrybrwn/geocore/locale"
)

type debugBody struct {
	Address string      `json:"address"`
	Locales locale.List `json:"locales"`
	Record  interface{} `json:"record"`
	Result  interface{} `json:"result"`
	Err     string      `json:"error,omitempty"`
}

// registerDebugRoute wires GET /{address}/debug, which echoes the raw
// inputs and lookup result alongside any error, for field diagnostics
// in debug builds only.
func (s *server) registerDebugRoute(mux *http.ServeMux) {
	mux.HandleFunc("GET /{address}/debug", s.handleDebug)
}

func (s *server) handleDebug(w http.ResponseWriter, r *http.Request) {
	ip, err := parseAddressParam(r.PathValue("address"))
	body := debugBody{Address: r.PathValue("address"), Locales: locale.FromRequest(r)}
	if err != nil {
		body.Err = err.Error()
		writeJSON(w, body)
		return
	}
	if raw, rawErr := s.db.RawCityRecord(ip); rawErr == nil {
		body.Record = raw
	}
	resp, lookupErr := s.db.Lookup(ip, body.Locales)
	body.Result = resp
	if lookupErr != nil {
		body.Err = lookupErr.Error()
	}
	writeJSON(w, body)
}
