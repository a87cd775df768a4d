// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestLogOptsLevel(t *testing.T) {
	tests := []struct {
		name string
		opts logOpts
		want log.Level
	}{
		{"default", logOpts{}, log.InfoLevel},
		{"verbose", logOpts{verbose: true}, log.DebugLevel},
		{"quiet", logOpts{quiet: true}, log.WarnLevel},
		{"quiet wins", logOpts{verbose: true, quiet: true}, log.WarnLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.opts.level(); got != tt.want {
				t.Errorf("level() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	l, err := newLogger(&buf, logOpts{format: "JSON"})
	if err != nil {
		t.Fatalf("newLogger() error = %v, want nil", err)
	}
	l.Debug("hidden")
	l.Info("grid ready", "cells", 9)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("json log %q: %v", buf.String(), err)
	}
	if rec["msg"] != "grid ready" || rec["cells"] != float64(9) || rec["time"] == nil {
		t.Errorf("json log = %v", rec)
	}

	buf.Reset()
	l, err = newLogger(&buf, logOpts{format: "logfmt", verbose: true})
	if err != nil {
		t.Fatalf("newLogger() error = %v, want nil", err)
	}
	l.Debug("route", "cost", 3)
	if out := buf.String(); !strings.Contains(out, "msg=route") || !strings.Contains(out, "cost=3") {
		t.Errorf("logfmt log = %q", out)
	}

	if _, err := newLogger(&buf, logOpts{format: "yaml"}); err == nil {
		t.Errorf("newLogger(yaml) error = nil, want error")
	}
}

func TestRootLogFlags(t *testing.T) {
	out, err := run(t, append([]string{"generate", "-q"}, boxFlags...)...)
	if err != nil {
		t.Fatalf("generate -q error = %v", err)
	}
	if strings.Contains(out, "grid ready") {
		t.Errorf("generate -q output contains info logs:\n%s", out)
	}

	out, err = run(t, append([]string{"generate"}, boxFlags...)...)
	if err != nil {
		t.Fatalf("generate error = %v", err)
	}
	if !strings.Contains(out, "grid ready") {
		t.Errorf("generate output does not contain info logs:\n%s", out)
	}

	if _, err := run(t, append([]string{"generate", "--log-format", "xml"}, boxFlags...)...); err == nil {
		t.Errorf("generate --log-format xml error = nil, want error")
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	l, _ := newLogger(&buf, logOpts{})
	newProgress(l).done("grid ready", "cells", 12)
	out := buf.String()
	for _, want := range []string{"grid ready", "cells=12", "elapsed="} {
		if !strings.Contains(out, want) {
			t.Errorf("progress output %q does not contain %q", out, want)
		}
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Errorf("loggerFromContext() without logger should return log.Default()")
	}
	l, _ := newLogger(&bytes.Buffer{}, logOpts{})
	if loggerFromContext(withLogger(context.Background(), l)) != l {
		t.Errorf("loggerFromContext() should return the attached logger")
	}
}
