// Package accept parses and ranks the HTTP Accept header against the
// closed media-type set in package mime.
package accept

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/harrybrwn/geocore/mime"
)

// Item is one parsed Accept entry.
type Item struct {
	Media mime.MediaType
	Q     float64
}

// List is an Accept header parsed into items sorted by q descending.
type List []Item

// Parse parses a comma-separated Accept header value. Items whose
// media type is invalid (either component None, or a subtype not
// registered under its top-level type, e.g. "video/png") are dropped. The
// returned list is sorted by q descending; ties are not required to
// preserve input order, only the q-ordering is guaranteed.
func Parse(header string) List {
	if header == "" {
		return List{{Media: mime.Any(), Q: 1.0}}
	}
	parts := strings.Split(header, ",")
	items := make(List, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		mediaStr, q := splitQ(p)
		m := mime.Parse(strings.TrimSpace(mediaStr))
		if !m.Valid() {
			continue
		}
		items = append(items, Item{Media: m, Q: q})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Q > items[j].Q })
	return items
}

// FromRequest parses the Accept header of r, defaulting to "*/*" when
// absent.
func FromRequest(r *http.Request) List {
	h := r.Header.Get("Accept")
	if h == "" {
		return List{{Media: mime.Any(), Q: 1.0}}
	}
	return Parse(h)
}

// Has reports whether any item in the list matches m.
func (l List) Has(m mime.MediaType) bool {
	for _, it := range l {
		if it.Media.Matches(m) {
			return true
		}
	}
	return false
}

func splitQ(item string) (media string, q float64) {
	q = 1.0
	media, rest, ok := strings.Cut(item, ";")
	if !ok {
		return item, 1.0
	}
	rest = strings.TrimSpace(rest)
	val, found := strings.CutPrefix(rest, "q=")
	if !found {
		return media, 1.0
	}
	parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
	if err != nil {
		return media, 1.0
	}
	return media, parsed
}
