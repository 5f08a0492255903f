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
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

func levelName(l logrus.Level) string {
	switch l {
	case logrus.FatalLevel:
		return "critical"
	case logrus.ErrorLevel:
		return "error"
	case logrus.WarnLevel:
		return "warn"
	case logrus.InfoLevel:
		return "info"
	case logrus.DebugLevel:
		return "debug"
	case logrus.TraceLevel:
		return "trace"
	default:
		return l.String()
	}
}

// orderedFields recovers the call-order kv slice fieldsFromKV stashed
// under orderedFieldsKey. Entries logged without kv pairs carry none.
func orderedFields(data logrus.Fields) []kv {
	raw, ok := data[orderedFieldsKey]
	if !ok {
		return nil
	}
	fields, _ := raw.([]kv)
	return fields
}

// logfmtFormatter renders `time="…" level=… target=… msg="…" key=value …`.
// target is a pointer so the formatter always reflects the Logger's
// current target even if SetTarget is called after SetFormat.
type logfmtFormatter struct {
	target *string
}

func (f *logfmtFormatter) Format(e *logrus.Entry) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "time=%q level=%s target=%s msg=%q",
		e.Time.UTC().Format("2006-01-02T15:04:05Z"), levelName(e.Level), *f.target, e.Message)
	for _, field := range orderedFields(e.Data) {
		buf.WriteByte(' ')
		buf.WriteString(field.key)
		buf.WriteByte('=')
		buf.WriteString(logfmtValue(field.val))
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func logfmtValue(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return "nil"
	case string:
		if strings.ContainsAny(t, " \t\"") {
			return strconv.Quote(t)
		}
		return t
	case error:
		return logfmtValue(t.Error())
	default:
		return fmt.Sprintf("%v", t)
	}
}

// jsonFormatter renders a single JSON object with time, level, target,
// msg first, followed by the entry's kv pairs in call order.
type jsonFormatter struct {
	target *string
}

func (f *jsonFormatter) Format(e *logrus.Entry) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	writeJSONField(&buf, true, "time", e.Time.UTC().Format("2006-01-02T15:04:05Z"))
	writeJSONField(&buf, false, "level", levelName(e.Level))
	writeJSONField(&buf, false, "target", *f.target)
	writeJSONField(&buf, false, "msg", e.Message)
	for _, field := range orderedFields(e.Data) {
		writeJSONField(&buf, false, field.key, field.val)
	}
	buf.WriteByte('}')
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func writeJSONField(buf *bytes.Buffer, first bool, key string, value interface{}) {
	if !first {
		buf.WriteByte(',')
	}
	keyJSON, _ := json.Marshal(key)
	buf.Write(keyJSON)
	buf.WriteByte(':')
	switch v := value.(type) {
	case error:
		value = v.Error()
	}
	valJSON, err := json.Marshal(value)
	if err != nil {
		valJSON, _ = json.Marshal(fmt.Sprintf("%v", value))
	}
	buf.Write(valJSON)
}
