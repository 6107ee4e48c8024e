package exporter

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/badele/rtftok/internal/importer/rtf"
	"github.com/badele/rtftok/internal/types"
)

const sampleRTF = "{\\rtf1\\ansi\n{\\*\\cxs TEFT}\n\\li-720 x\\\ny}\n"

var sgrPattern = regexp.MustCompile("\x1b\\[[0-9;]*m")

func tokenize(input string) []types.Token {
	return rtf.NewRTFTokenizer([]byte(input)).Tokenize()
}

func TestExportTokenList(t *testing.T) {
	var out bytes.Buffer
	if err := ExportTokenList(tokenize("{\\b x\\\n}"), &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "0:0\tTokenGroupOpen\t{\n" +
		"0:1\tTokenControlWord\t\\b\n" +
		"0:4\tTokenText\tx\n" +
		"0:5\tTokenEscapedNewline\t\\\\n\n" +
		"1:0\tTokenGroupClose\t}\n"
	if out.String() != want {
		t.Errorf("expected %q, got %q", want, out.String())
	}
}

func TestExportTokensToTable(t *testing.T) {
	var out bytes.Buffer
	if err := ExportTokensToTable(tokenize(sampleRTF), &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	table := sgrPattern.ReplaceAllString(out.String(), "")
	for _, want := range []string{"Depth", "Group", "*cxs", "TokenControlWord", `\rtf1`, "-720", "TEFT", `\\n`} {
		if !strings.Contains(table, want) {
			t.Errorf("expected table to contain %q\n%s", want, table)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{"Short", "abc", 10, "abc"},
		{"Exact", "abcdefghij", 10, "abcdefghij"},
		{"Long", "abcdefghijk", 10, "abcdefg..."},
		{"Visible", "a\nb", 10, `a\nb`},
		{"MultiByteBoundary", strings.Repeat("é", 30), 36, strings.Repeat("é", 16) + "..."},
		{"MultiByteRuneDropped", "aé" + strings.Repeat("x", 10), 5, "a..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.input, tt.maxLen)
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
			if !utf8.ValidString(got) {
				t.Errorf("truncated value %q is not valid UTF-8", got)
			}
		})
	}
}

func TestExportTokensToTableGroupColumn(t *testing.T) {
	var out bytes.Buffer
	if err := ExportTokensToTable(tokenize(`x{\rtf1 a{\*\cxs b}c}`), &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	groups := map[string]string{}
	for _, line := range strings.Split(sgrPattern.ReplaceAllString(out.String(), ""), "\n") {
		cells := strings.Split(line, "│")
		if len(cells) < 9 {
			continue
		}
		groups[strings.TrimSpace(cells[8])] = strings.TrimSpace(cells[4])
	}

	expected := map[string]string{"x": "-", "a": "rtf", "b": "*cxs", "c": "rtf"}
	for raw, group := range expected {
		if groups[raw] != group {
			t.Errorf("%q: expected group %q, got %q", raw, group, groups[raw])
		}
	}
}

func TestExportTokensJSON(t *testing.T) {
	var out bytes.Buffer
	tok := rtf.NewRTFTokenizer([]byte(sampleRTF))
	if err := ExportTokensJSON(tok, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded TokenizerJSONOutput
	if err := json.Unmarshal(out.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out.String())
	}

	expected := tokenize(sampleRTF)
	if len(decoded.Tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(decoded.Tokens))
	}
	for i := range expected {
		if decoded.Tokens[i] != expected[i] {
			t.Errorf("token %d: expected %+v, got %+v", i, expected[i], decoded.Tokens[i])
		}
	}
	if decoded.Stats.TotalTokens != len(expected) {
		t.Errorf("expected %d total tokens, got %d", len(expected), decoded.Stats.TotalTokens)
	}
	if decoded.Stats.TokensByType[types.TokenControlWord] != 4 {
		t.Errorf("expected 4 control words, got %d", decoded.Stats.TokensByType[types.TokenControlWord])
	}
}

func TestDisplayStats(t *testing.T) {
	tok := rtf.NewRTFTokenizer([]byte(sampleRTF + `\`))
	tok.Tokenize()

	var out bytes.Buffer
	DisplayStats(tok.GetStats(), &out)

	for _, want := range []string{
		"Total tokens: 14",
		"Max group depth: 2",
		"Unterminated escape at offset",
		`\li`,
		`\cxs`,
		`\*`,
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("expected stats to contain %q\n%s", want, out.String())
		}
	}
}

func TestExportHighlightedANSI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		plain string
	}{
		{"Simple", "{\\b x}\n", "{\\b x}\n"},
		{"MultiLine", "{\\rtf1\n\\par}\n", "{\\rtf1\n\\par}\n"},
		{"EscapedNewline", "a\\\nb", "a\\\nb\n"},
		{"MultiByte", "é{\\b x}", "é{\\b x}\n"},
		{"BlankLines", "a\n\n\nb", "a\n\n\nb\n"},
		{"ShorterLineAfterLonger", "{\\b xxxxxxxx}\n\\b  y", "{\\b xxxxxxxx}\n\\b  y\n"},
		{"Empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := ExportHighlightedANSI(tokenize(tt.input))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := sgrPattern.ReplaceAllString(out, ""); got != tt.plain {
				t.Errorf("expected %q, got %q", tt.plain, got)
			}
		})
	}
}

func TestExportHighlightedANSILongLine(t *testing.T) {
	var input strings.Builder
	for i := 0; i < 2000; i++ {
		input.WriteString("{\\b x}\n")
	}
	input.WriteString("{\\*\\pict " + strings.Repeat("0f", 100000) + "}\n")
	for i := 0; i < 2000; i++ {
		input.WriteString("\\par\n")
	}

	out, err := ExportHighlightedANSI(tokenize(input.String()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := sgrPattern.ReplaceAllString(out, ""); got != input.String() {
		t.Errorf("expected %d bytes of plain output, got %d", input.Len(), len(got))
	}
}

func TestExportHighlightedANSIStyles(t *testing.T) {
	out, err := ExportHighlightedANSI(tokenize("{\\b x}"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(out, "\x1b[0;1;93m{") {
		t.Errorf("expected bold yellow group, got %q", out)
	}
	if !strings.Contains(out, "\x1b[0;96m\\b") {
		t.Errorf("expected aqua control word, got %q", out)
	}
	if !strings.HasSuffix(out, "\x1b[0m\n") {
		t.Errorf("expected reset at end of line, got %q", out)
	}
}
