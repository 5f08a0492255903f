// Package geodb wraps a pair of MaxMind City/ASN readers behind a
// shared-reader lock and resolves locale-aware place names. The city
// side decodes straight off maxminddb, since the open-ended BCP-47
// "names" table this package resolves locales against doesn't fit
// geoip2-golang's fixed-field Names struct; the ASN side has no such
// requirement, so it uses geoip2-golang's typed ASN record directly.
package geodb

import (
	"io"
	"net/netip"
	"sync"

	"github.com/oschwald/geoip2-golang/v2"
	"github.com/oschwald/maxminddb-golang/v2"

	"github.com/harrybrwn/geocore/dbsource"
	"github.com/harrybrwn/geocore/locale"
)

// Code is a tagged classification of a lookup failure.
type Code int

const (
	// NotFound means the address has no location record.
	NotFound Code = iota
	// BadRequest means the address itself could not be parsed/used.
	BadRequest
	// BadLang means none of the requested locales resolved a name.
	BadLang
	// Internal means the database is missing data it should have.
	Internal
)

// GeoError is a tagged database error with a stable HTTP-mappable code.
type GeoError struct {
	Code Code
	Msg  string
}

func (e *GeoError) Error() string { return e.Msg }

func newErr(c Code, msg string) *GeoError { return &GeoError{Code: c, Msg: msg} }

// names mirrors the MaxMind "names" table as an open map so that
// arbitrary BCP-47 locale keys (not just a fixed language set) can be
// tried, matching the shape the upstream databases actually encode.
type names map[string]string

type subdivisionRecord struct {
	ISOCode string `maxminddb:"iso_code"`
	Names   names  `maxminddb:"names"`
}

type cityRecord struct {
	Country struct {
		ISOCode string `maxminddb:"iso_code"`
		Names   names  `maxminddb:"names"`
	} `maxminddb:"country"`
	City struct {
		GeoNameID uint  `maxminddb:"geoname_id"`
		Names     names `maxminddb:"names"`
	} `maxminddb:"city"`
	Subdivisions []subdivisionRecord `maxminddb:"subdivisions"`
	Location     struct {
		Latitude  float64 `maxminddb:"latitude"`
		Longitude float64 `maxminddb:"longitude"`
	} `maxminddb:"location"`
}

// Location is a latitude/longitude pair.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Country is a resolved, locale-named country record.
type Country struct {
	ISOCode string `json:"iso_code,omitempty"`
	Name    string `json:"name"`
}

// City is a resolved, locale-named city record.
type City struct {
	ID   uint   `json:"id,omitempty"`
	Name string `json:"name"`
}

// Subdivision is a resolved, locale-named subdivision record.
type Subdivision struct {
	ISOCode string `json:"iso_code,omitempty"`
	Name    string `json:"name"`
}

// Response is the full result of a GeoDB lookup.
type Response struct {
	IP           string        `json:"ip,omitempty"`
	AsOrg        string        `json:"as_org,omitempty"`
	Location     *Location     `json:"location,omitempty"`
	Country      *Country      `json:"country,omitempty"`
	City         *City         `json:"city,omitempty"`
	Subdivisions []Subdivision `json:"subdivisions,omitempty"`

	// locale is the language key that the first successful name
	// resolution settled on; later resolutions prefer it so that a
	// single response never mixes language tables.
	locale string
}

// Locale returns the language key the response's names were resolved
// with, suitable for a Content-Language header. Empty if the response
// carries no locale-named fields.
func (r *Response) Locale() string { return r.locale }

// GeoDB holds the two MaxMind readers used to build a Response: a raw
// maxminddb.Reader for city/country/subdivision name tables, and a
// geoip2.Reader for typed ASN records.
type GeoDB struct {
	mu   sync.RWMutex
	city *maxminddb.Reader
	asn  *geoip2.Reader
}

// Open opens the City and ASN database files at the given paths. If
// the "city" path is actually the ASN database (detected by its
// metadata), the two paths are swapped, making call-site ordering
// forgiving.
func Open(cityPath, asnPath string) (*GeoDB, error) {
	cityPath, asnPath, err := swapByMetadata(cityPath, asnPath, maxminddb.Open)
	if err != nil {
		return nil, err
	}
	city, err := maxminddb.Open(cityPath)
	if err != nil {
		return nil, err
	}
	asn, err := geoip2.Open(asnPath)
	if err != nil {
		city.Close()
		return nil, err
	}
	return &GeoDB{city: city, asn: asn}, nil
}

// OpenRef resolves cityRef and asnRef through dbsource (local path,
// s3://bucket/key, or http(s)://) and loads both databases into
// memory. Unlike Open, this does not mmap the files, since a fetched
// s3 object has no backing file to map.
func OpenRef(cityRef, asnRef string) (*GeoDB, error) {
	cityBytes, err := readRef(cityRef)
	if err != nil {
		return nil, err
	}
	asnBytes, err := readRef(asnRef)
	if err != nil {
		return nil, err
	}
	cityBytes, asnBytes, err = swapBytesByMetadata(cityBytes, asnBytes)
	if err != nil {
		return nil, err
	}
	city, err := maxminddb.FromBytes(cityBytes)
	if err != nil {
		return nil, err
	}
	asn, err := geoip2.FromBytes(asnBytes)
	if err != nil {
		return nil, err
	}
	return &GeoDB{city: city, asn: asn}, nil
}

func readRef(ref string) ([]byte, error) {
	rc, err := dbsource.Open(ref)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// swapByMetadata peeks at the database named by "a" and swaps the two
// paths if it turns out to be the ASN database rather than the City
// one, so Open tolerates either call-site ordering.
func swapByMetadata(a, b string, open func(string) (*maxminddb.Reader, error)) (string, string, error) {
	r, err := open(a)
	if err != nil {
		return "", "", err
	}
	defer r.Close()
	if r.Metadata.DatabaseType == "GeoLite2-ASN" {
		return b, a, nil
	}
	return a, b, nil
}

func swapBytesByMetadata(a, b []byte) ([]byte, []byte, error) {
	r, err := maxminddb.FromBytes(a)
	if err != nil {
		return nil, nil, err
	}
	if r.Metadata.DatabaseType == "GeoLite2-ASN" {
		return b, a, nil
	}
	return a, b, nil
}

// New builds a GeoDB from already-open readers. Unlike Open/OpenRef,
// the caller is responsible for handing city and asn in the right
// order since geoip2.Reader's own database-type guard already rejects
// an ASN reader built from a City file.
func New(city *maxminddb.Reader, asn *geoip2.Reader) *GeoDB {
	return &GeoDB{city: city, asn: asn}
}

// Close releases both underlying readers.
func (db *GeoDB) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()
	err1 := db.city.Close()
	err2 := db.asn.Close()
	if err1 != nil {
		return err1
	}
	return err2
}

// Lookup resolves ip into a locale-named Response, trying locales in
// q-order for each name-bearing field.
func (db *GeoDB) Lookup(ip netip.Addr, locales locale.List) (*Response, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var rec cityRecord
	result := db.city.Lookup(ip)
	if err := result.Decode(&rec); err != nil {
		return nil, mapLookupErr(err)
	}
	if !result.Found() {
		return nil, newErr(NotFound, "ip address location not found")
	}

	resp := &Response{
		IP: ip.String(),
		Location: &Location{
			Latitude:  rec.Location.Latitude,
			Longitude: rec.Location.Longitude,
		},
	}

	if asn, err := db.asn.ASN(ip); err == nil && !asn.IsZero() {
		resp.AsOrg = asn.AutonomousSystemOrganization
	}

	if rec.Country.Names != nil || rec.Country.ISOCode != "" {
		name, key, err := resolveName(rec.Country.Names, resp.locale, locales)
		if err != nil {
			return nil, err
		}
		resp.Country = &Country{ISOCode: rec.Country.ISOCode, Name: name}
		resp.locale = key
	}

	if rec.City.Names != nil || rec.City.GeoNameID != 0 {
		name, key, err := resolveName(rec.City.Names, resp.locale, locales)
		if err != nil {
			return nil, err
		}
		resp.City = &City{ID: rec.City.GeoNameID, Name: name}
		if resp.locale == "" {
			resp.locale = key
		}
	}

	for _, s := range rec.Subdivisions {
		name, _, err := resolveName(s.Names, resp.locale, locales)
		if err != nil {
			// A subdivision without a matching name is omitted, not
			// a failure for the whole lookup.
			continue
		}
		resp.Subdivisions = append(resp.Subdivisions, Subdivision{
			ISOCode: s.ISOCode,
			Name:    name,
		})
	}

	return resp, nil
}

// RawCityRecord decodes the city database's entry for ip into a
// generic map, untouched by locale resolution. Intended for debug
// routes, not the normal lookup path.
func (db *GeoDB) RawCityRecord(ip netip.Addr) (map[string]interface{}, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	var raw map[string]interface{}
	result := db.city.Lookup(ip)
	if err := result.Decode(&raw); err != nil {
		return nil, mapLookupErr(err)
	}
	if !result.Found() {
		return nil, newErr(NotFound, "ip address location not found")
	}
	return raw, nil
}

// Languages returns the set of locale keys available in the country
// names table for ip.
func (db *GeoDB) Languages(ip netip.Addr) ([]string, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var rec cityRecord
	result := db.city.Lookup(ip)
	if err := result.Decode(&rec); err != nil {
		return nil, mapLookupErr(err)
	}
	if !result.Found() || rec.Country.Names == nil {
		return nil, newErr(NotFound, "ip address location not found")
	}
	out := make([]string, 0, len(rec.Country.Names))
	for k := range rec.Country.Names {
		out = append(out, k)
	}
	return out, nil
}

// SupportedLanguages returns the database's full language list, as
// declared in its metadata, independent of any single lookup.
func (db *GeoDB) SupportedLanguages() []string {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.city.Metadata.Languages
}

// resolveName picks a name out of the names table: first the pinned
// hint locale (if non-empty and present), then each requested locale
// in q-order trying "name-region" then "name". It returns the
// resolved name and the key used.
func resolveName(n names, hint string, locales locale.List) (string, string, error) {
	if n == nil {
		return "", "", newErr(Internal, "no locale names in database")
	}
	if hint != "" {
		if name, ok := n[hint]; ok {
			return name, hint, nil
		}
	}
	for _, l := range locales {
		key := l.FullName()
		if name, ok := n[key]; ok {
			return name, key, nil
		}
		if name, ok := n[l.Name]; ok {
			return name, l.Name, nil
		}
	}
	return "", "", newErr(BadLang, "invalid language code")
}

func mapLookupErr(err error) error {
	return newErr(Internal, err.Error())
}
