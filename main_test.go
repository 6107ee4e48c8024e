package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/op/go-logging"

	"github.com/badele/rtftok/pkg/rtftok"
)

func writeInput(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.rtf")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("unexpected write error: %v", err)
	}
	return path
}

func TestRunFormats(t *testing.T) {
	path := writeInput(t, []byte("{\\rtf1\\ansi caf\xe9}\n"))

	tests := []struct {
		format string
		want   string
	}{
		{"list", "0:0\tTokenGroupOpen\t{"},
		{"table", "TokenControlWord"},
		{"json", `"type": "TokenControlWord"`},
		{"stats", "Total tokens: 5"},
		{"highlight", "café"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			cli := CLI{File: path, Format: tt.format, Encoding: "cp1252"}

			var out bytes.Buffer
			if err := cli.Run(&out); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("expected output to contain %q, got:\n%s", tt.want, out.String())
			}
		})
	}
}

func TestRunLogsTokenCount(t *testing.T) {
	path := writeInput(t, []byte("{\\rtf1\\ansi caf\xe9}\n"))

	for _, format := range []string{"list", "table", "json", "stats", "highlight"} {
		t.Run(format, func(t *testing.T) {
			backend := logging.InitForTesting(logging.DEBUG)

			cli := CLI{File: path, Format: format, Encoding: "cp1252"}
			if err := cli.Run(&bytes.Buffer{}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			var messages []string
			for node := backend.Head(); node != nil; node = node.Next() {
				messages = append(messages, node.Record.Message())
			}
			want := path + ": 5 tokens on 1 lines"
			if !strings.Contains(strings.Join(messages, "\n"), want) {
				t.Errorf("expected log %q, got %q", want, messages)
			}
		})
	}
}

func TestRunStrict(t *testing.T) {
	path := writeInput(t, []byte(`{\b x}\`))

	lenient := CLI{File: path, Format: "list", Encoding: "utf8"}
	if err := lenient.Run(&bytes.Buffer{}); err != nil {
		t.Fatalf("unexpected error without --strict: %v", err)
	}

	for _, format := range []string{"list", "json"} {
		strict := CLI{File: path, Format: format, Encoding: "utf8", Strict: true}
		if err := strict.Run(&bytes.Buffer{}); !errors.Is(err, rtftok.ErrUnterminatedEscape) {
			t.Errorf("%s: expected ErrUnterminatedEscape, got %v", format, err)
		}
	}
}

func TestRunMissingFile(t *testing.T) {
	cli := CLI{File: filepath.Join(t.TempDir(), "missing.rtf"), Format: "list", Encoding: "utf8"}
	if err := cli.Run(&bytes.Buffer{}); err == nil {
		t.Fatal("expected error for missing file")
	}
}
