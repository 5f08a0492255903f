/*************************************************************************
 * Copyright 2017 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

// Command lnsmol is both the short-link HTTP service and a
// command-line client against its own storage backend.
package main

import (
	"fmt"
	dlog "log"
	"net/http"
	"os"
	"time"

	"github.com/harrybrwn/geocore/config"
	"github.com/harrybrwn/geocore/debug"
	glog "github.com/harrybrwn/geocore/log"
	"github.com/harrybrwn/geocore/htcore"
	"github.com/harrybrwn/geocore/linkstore"
	"github.com/harrybrwn/geocore/version"
)

const defaultConfigLoc = `/opt/geocore/etc/lnsmol.conf`

func main() {
	root := newRootCmd()
	root.Version = fmt.Sprintf("%d.%d.%d", version.MajorVersion, version.MinorVersion, version.PointVersion)
	if err := root.Execute(); err != nil {
		dlog.Fatal(err)
	}
}

func runServer(confLoc string) error {
	cfg, err := config.LoadLinkConfig(confLoc)
	if err != nil {
		return fmt.Errorf("failed to load config %q: %w", confLoc, err)
	}

	lg := glog.New(os.Stderr)
	if err := lg.SetLevel(cfg.Global.LogLevel()); err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Global.LogLevel(), err)
	}
	lg.SetFormat(cfg.Global.LogFormat())
	lg.SetTarget("lnsmol")
	if lf := cfg.Global.LogFile(); lf != "" {
		fout, err := os.OpenFile(lf, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640)
		if err != nil {
			return err
		}
		lg.AddWriter(fout)
		defer fout.Close()
	}

	go debug.HandleDebugSignals("lnsmol")

	rdb := newRedisClient(cfg)
	store := linkstore.NewRedisStore(rdb, cfg.Domain())

	srv := newServer(store, lg)
	mux := http.NewServeMux()
	srv.routes(mux, cfg.URLPrefix())

	handler := htcore.Chain(mux,
		htcore.NormalizePath(),
		htcore.RequestID(),
		htcore.CORS(cfg.AllowedOrigin()),
		htcore.Gzip(),
		htcore.Throttle(cfg.Global.WorkerCount()),
	)

	httpSrv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	lg.InfoKV("listening", "addr", cfg.Addr())
	return httpSrv.ListenAndServe()
}
