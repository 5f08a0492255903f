/*************************************************************************
 * Copyright 2017 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

// Package config loads service configuration from an optional gcfg
// file, overlaid with environment variables, matching this codebase's
// established "file first, env second" convention.
package config

import "time"

const (
	defaultLogLevel      = `info`
	defaultLogFormat     = `logfmt`
	defaultWorkers       = 8
	defaultLinkTTL       = 7 * 24 * time.Hour
	defaultURLPrefix     = `/l`
	defaultRedisDB       = 0
	defaultGeoIPPort     = 8080
	defaultGeoIPHost     = `0.0.0.0`
	defaultLinkPort      = 8081
	defaultAllowedOrigin = `*`
)

// Global holds settings common to both services, loaded from the
// optional [global] section of a gcfg file.
type Global struct {
	Log_Level  string
	Log_Format string
	Log_File   string
	Workers    int64
}

func (g *Global) loadEnv() error {
	if err := LoadEnvVar(&g.Log_Level, `LOG_LEVEL`, defaultLogLevel); err != nil {
		return err
	}
	if err := LoadEnvVar(&g.Log_Format, `LOG_FORMAT`, defaultLogFormat); err != nil {
		return err
	}
	if err := LoadEnvVar(&g.Log_File, `LOG_FILE`, ``); err != nil {
		return err
	}
	return LoadEnvVar(&g.Workers, `SERVER_WORKERS`, int64(defaultWorkers))
}

// LogLevel returns the RUST_LOG-style level string (off|error|warn|info|debug|trace).
func (g *Global) LogLevel() string { return g.Log_Level }

// LogFormat returns "logfmt" or "json".
func (g *Global) LogFormat() string { return g.Log_Format }

// LogFile returns the path to append logs to, or "" for stderr only.
func (g *Global) LogFile() string { return g.Log_File }

// WorkerCount returns the size of the bounded worker pool.
func (g *Global) WorkerCount() int64 { return g.Workers }

// GeoIPConfig configures the geoip service.
type GeoIPConfig struct {
	Global         Global
	City_File      string
	Asn_File       string
	Host           string
	Port           uint16
	Allowed_Origin string
}

// LoadGeoIPConfig reads an optional gcfg file at path (ignored if it
// doesn't exist), then fills any unset fields from environment
// variables.
func LoadGeoIPConfig(path string) (*GeoIPConfig, error) {
	c := &GeoIPConfig{}
	if path != `` {
		if err := LoadFile(c, path); err != nil {
			return nil, err
		}
	}
	if err := c.Global.loadEnv(); err != nil {
		return nil, err
	}
	if err := LoadEnvVar(&c.City_File, `GEOIP_CITY_FILE`, ``); err != nil {
		return nil, err
	}
	if err := LoadEnvVar(&c.Asn_File, `GEOIP_ASN_FILE`, ``); err != nil {
		return nil, err
	}
	if err := LoadEnvVar(&c.Host, `GEOIP_HOST`, defaultGeoIPHost); err != nil {
		return nil, err
	}
	if err := LoadEnvVar(&c.Port, `GEOIP_PORT`, uint16(defaultGeoIPPort)); err != nil {
		return nil, err
	}
	if err := LoadEnvVar(&c.Allowed_Origin, `GEOIP_ALLOWED_ORIGIN`, defaultAllowedOrigin); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *GeoIPConfig) CityFile() string      { return c.City_File }
func (c *GeoIPConfig) ASNFile() string       { return c.Asn_File }
func (c *GeoIPConfig) Addr() string          { return AppendDefaultPort(c.Host, c.Port) }
func (c *GeoIPConfig) AllowedOrigin() string { return c.Allowed_Origin }

// LinkConfig configures the lnsmol short-link service.
type LinkConfig struct {
	Global         Global
	URL_Prefix     string
	Own_Domain     string
	Client_URL     string
	Redis_Host     string
	Redis_Port     uint16
	Redis_DB       int64
	Redis_User     string
	Redis_Pass     string
	Listen_Port    uint16
	Allowed_Origin string
}

// LoadLinkConfig reads an optional gcfg file at path, then fills any
// unset fields from environment variables.
func LoadLinkConfig(path string) (*LinkConfig, error) {
	c := &LinkConfig{}
	if path != `` {
		if err := LoadFile(c, path); err != nil {
			return nil, err
		}
	}
	if err := c.Global.loadEnv(); err != nil {
		return nil, err
	}
	if err := LoadEnvVar(&c.URL_Prefix, `SERVER_URL_PREFIX`, defaultURLPrefix); err != nil {
		return nil, err
	}
	if err := LoadEnvVar(&c.Own_Domain, `SERVER_DOMAIN`, ``); err != nil {
		return nil, err
	}
	if err := LoadEnvVar(&c.Client_URL, `CLIENT_URL`, ``); err != nil {
		return nil, err
	}
	if err := LoadEnvVar(&c.Redis_Host, `REDIS_HOST`, `localhost`); err != nil {
		return nil, err
	}
	if err := LoadEnvVar(&c.Redis_Port, `REDIS_PORT`, uint16(6379)); err != nil {
		return nil, err
	}
	if err := LoadEnvVar(&c.Redis_DB, `REDIS_DB`, int64(defaultRedisDB)); err != nil {
		return nil, err
	}
	if err := LoadEnvVar(&c.Redis_User, `REDIS_USERNAME`, ``); err != nil {
		return nil, err
	}
	if err := LoadEnvVar(&c.Redis_Pass, `REDIS_PASSWORD`, ``); err != nil {
		return nil, err
	}
	if err := LoadEnvVar(&c.Listen_Port, `SERVER_PORT`, uint16(defaultLinkPort)); err != nil {
		return nil, err
	}
	if err := LoadEnvVar(&c.Allowed_Origin, `LINK_ALLOWED_ORIGIN`, defaultAllowedOrigin); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *LinkConfig) URLPrefix() string { return c.URL_Prefix }
func (c *LinkConfig) Domain() string    { return c.Own_Domain }
func (c *LinkConfig) ClientURL() string {
	if c.Client_URL == `` {
		return c.Own_Domain
	}
	return c.Client_URL
}
func (c *LinkConfig) RedisAddr() string {
	return AppendDefaultPort(c.Redis_Host, c.Redis_Port)
}
func (c *LinkConfig) RedisDB() int       { return int(c.Redis_DB) }
func (c *LinkConfig) RedisUsername() string { return c.Redis_User }
func (c *LinkConfig) RedisPassword() string { return c.Redis_Pass }
func (c *LinkConfig) Addr() string              { return AppendDefaultPort(`0.0.0.0`, c.Listen_Port) }
func (c *LinkConfig) DefaultTTL() time.Duration { return defaultLinkTTL }
func (c *LinkConfig) AllowedOrigin() string     { return c.Allowed_Origin }
