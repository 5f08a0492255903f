/*************************************************************************
 * Copyright 2017 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

// Command geoip serves GeoIP City/ASN lookups over HTTP.
package main

import (
	"flag"
	dlog "log"
	"net/http"
	"os"
	"time"

	"github.com/harrybrwn/geocore/config"
	"github.com/harrybrwn/geocore/debug"
	"github.com/harrybrwn/geocore/geodb"
	"github.com/harrybrwn/geocore/htcore"
	glog "github.com/harrybrwn/geocore/log"
	"github.com/harrybrwn/geocore/version"
)

const defaultConfigLoc = `/opt/geocore/etc/geoip.conf`

var (
	confLoc = flag.String("config-file", defaultConfigLoc, "Location for configuration file")
	ver     = flag.Bool("version", false, "Print the version information and exit")
)

var lg *glog.Logger

func main() {
	flag.Parse()
	if *ver {
		version.PrintVersion(os.Stdout)
		return
	}

	cfg, err := config.LoadGeoIPConfig(*confLoc)
	if err != nil {
		dlog.Fatalf("failed to load config %q: %v", *confLoc, err)
	}

	lg = glog.New(os.Stderr)
	if err := lg.SetLevel(cfg.Global.LogLevel()); err != nil {
		dlog.Fatalf("invalid log level %q: %v", cfg.Global.LogLevel(), err)
	}
	lg.SetFormat(cfg.Global.LogFormat())
	lg.SetTarget("geoip")
	if lf := cfg.Global.LogFile(); lf != "" {
		fout, err := os.OpenFile(lf, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640)
		if err != nil {
			dlog.Fatal(err)
		}
		lg.AddWriter(fout)
		defer fout.Close()
	}

	go debug.HandleDebugSignals("geoip")

	db, err := geodb.OpenRef(cfg.CityFile(), cfg.ASNFile())
	if err != nil {
		lg.Critical("failed to open geoip databases: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	srv := newServer(db, lg)
	mux := http.NewServeMux()
	srv.routes(mux)

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
	if err := httpSrv.ListenAndServe(); err != nil {
		lg.Critical("http server exited: %v", err)
	}
}
