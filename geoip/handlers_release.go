/*************************************************************************
 * Copyright 2017 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

//go:build !debug

package main

import "net/http"

// registerDebugRoute is a no-op in production builds: GET
// /{address}/debug falls through to the ordinary 404 the mux produces
// for any unregistered pattern.
func (s *server) registerDebugRoute(mux *http.ServeMux) {}
