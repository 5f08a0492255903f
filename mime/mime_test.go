package mime

import "testing"

func TestParseValid(t *testing.T) {
	m := Parse("application/xml")
	if m.Type != TypeApplication || m.Sub != SubXML {
		t.Fatalf("got %+v", m)
	}
	if !m.Valid() {
		t.Fatal("expected valid")
	}
	if !m.Matches(Parse("*/*")) {
		t.Fatal("expected */* to match")
	}
	if !m.Matches(Parse("application/*")) {
		t.Fatal("expected application/* to match")
	}
	if !m.Matches(Parse("*/xml")) {
		t.Fatal("expected */xml to match")
	}
}

func TestAnyMatchesEverythingValid(t *testing.T) {
	any := Any()
	if !any.Matches(Parse("application/yaml")) {
		t.Fatal("expected any to match application/yaml")
	}
}

func TestInvalidCombination(t *testing.T) {
	// video/png is not a registered pairing.
	m := Parse("video/png")
	if m.Valid() {
		t.Fatal("video/png should be invalid")
	}
	// audio/ogg is registered.
	if !Parse("audio/ogg").Valid() {
		t.Fatal("audio/ogg should be valid")
	}
}

func TestNoneNeverMatches(t *testing.T) {
	none := MediaType{}
	if none.Matches(Any()) {
		t.Fatal("none should never match")
	}
	if Any().Matches(none) {
		t.Fatal("none should never match, even from the other side")
	}
}
