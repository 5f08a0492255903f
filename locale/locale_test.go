package locale

import "testing"

func TestParseOrdering(t *testing.T) {
	list := Parse("en-GB; q=0.3, en-US ; q=0.9, en ;q=0.4")
	if len(list) != 3 {
		t.Fatalf("expected 3 entries, got %+v", list)
	}
	want := []Locale{
		{Name: "en", Region: "US", Q: 0.9},
		{Name: "en", Region: "", Q: 0.4},
		{Name: "en", Region: "GB", Q: 0.3},
	}
	for i, w := range want {
		if list[i] != w {
			t.Fatalf("item %d: got %+v, want %+v", i, list[i], w)
		}
	}
}

func TestFullName(t *testing.T) {
	cases := []struct {
		l    Locale
		want string
	}{
		{Locale{Name: "en"}, "en"},
		{Locale{Name: "en", Region: "US"}, "en-US"},
		{Locale{Name: "en", Region: "GB-1998"}, "en-GB-1998"},
	}
	for _, c := range cases {
		if got := c.l.FullName(); got != c.want {
			t.Fatalf("FullName() = %q, want %q", got, c.want)
		}
	}
}

func TestParseSplitsOnFirstDashOnly(t *testing.T) {
	l := parseOne("en-GB-1998;q=0.7")
	if l.Name != "en" || l.Region != "GB-1998" || l.Q != 0.7 {
		t.Fatalf("got %+v", l)
	}
}

func TestParseDefaults(t *testing.T) {
	l := parseOne("ja")
	if l.Name != "ja" || l.Region != "" || l.Q != 1.0 {
		t.Fatalf("got %+v", l)
	}
}
