/*************************************************************************
 * Copyright 2017 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogfmtFormatContainsOrderedFields(t *testing.T) {
	var buf bytes.Buffer
	lg := New(&buf)
	lg.SetTarget("geoip")
	if err := lg.InfoKV("lookup ok", "ip", "1.2.3.4", "count", 3); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, `level=info`) {
		t.Fatalf("missing level field: %s", out)
	}
	if !strings.Contains(out, `target=geoip`) {
		t.Fatalf("missing target field: %s", out)
	}
	if !strings.Contains(out, `msg="lookup ok"`) {
		t.Fatalf("missing msg field: %s", out)
	}
	if !strings.Contains(out, "count=3") || !strings.Contains(out, "ip=1.2.3.4") {
		t.Fatalf("missing kv fields: %s", out)
	}
	if strings.Index(out, "ip=") > strings.Index(out, "count=") {
		t.Fatalf("kv fields not in call order (ip before count): %s", out)
	}
}

func TestLogfmtPreservesCallOrderNotSortOrder(t *testing.T) {
	var buf bytes.Buffer
	lg := New(&buf)
	if err := lg.InfoKV("msg", "zebra", 1, "apple", 2); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if strings.Index(out, "zebra=") > strings.Index(out, "apple=") {
		t.Fatalf("expected zebra before apple (call order), got: %s", out)
	}
}

func TestLogfmtQuotesSpacedStrings(t *testing.T) {
	var buf bytes.Buffer
	lg := New(&buf)
	if err := lg.InfoKV("msg", "reason", "has a space"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `reason="has a space"`) {
		t.Fatalf("expected quoted value: %s", buf.String())
	}
}

func TestJSONFormatFieldOrder(t *testing.T) {
	var buf bytes.Buffer
	lg := New(&buf)
	lg.SetFormat("json")
	lg.SetTarget("lnsmol")
	if err := lg.InfoKV("created", "id", "abc123"); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{`"time"`, `"level"`, `"target"`, `"msg"`, `"id":"abc123"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %s in %s", want, out)
		}
	}
	if strings.Index(out, `"time"`) > strings.Index(out, `"level"`) {
		t.Fatalf("time should precede level: %s", out)
	}
}

func TestCriticalDoesNotExitProcess(t *testing.T) {
	var buf bytes.Buffer
	lg := New(&buf)
	if err := lg.Critical("fatal-looking event"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "level=critical") {
		t.Fatalf("expected critical level: %s", buf.String())
	}
}

func TestSetLevelOffSuppressesOutput(t *testing.T) {
	var buf bytes.Buffer
	lg := New(&buf)
	if err := lg.SetLevel("off"); err != nil {
		t.Fatal(err)
	}
	if err := lg.Error("should not appear"); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}
