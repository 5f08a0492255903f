package apierr

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/harrybrwn/geocore/geodb"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		code Code
		want int
	}{
		{NotFound, http.StatusNotFound},
		{BadRequest, http.StatusBadRequest},
		{BadLang, http.StatusBadRequest},
		{Conflict, http.StatusConflict},
		{Internal, http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := c.code.Status(); got != c.want {
			t.Errorf("Code(%d).Status() = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestFromGeoError(t *testing.T) {
	ge := &geodb.GeoError{Code: geodb.BadLang, Msg: "invalid language code"}
	e := From(ge)
	if e.Code != BadLang {
		t.Fatalf("got %v, want BadLang", e.Code)
	}
}

func TestWriteRendersJSONBody(t *testing.T) {
	rec := httptest.NewRecorder()
	Write(rec, Conflictf("cannot self link"))
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	want := `{"status":"error","message":"cannot self link"}` + "\n"
	if rec.Body.String() != want {
		t.Fatalf("body = %q, want %q", rec.Body.String(), want)
	}
}
