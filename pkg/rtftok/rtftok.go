// Package rtftok provides a public API for tokenizing RTF documents.
//
// This package provides functions to:
//   - Convert legacy 8-bit input (CP1252, CP437, CP850, ISO-8859-1, Mac Roman) to UTF-8
//   - Split RTF markup into group, control word, control symbol, escaped
//     newline and text tokens with their line and column
//   - Push tokens back for lookahead
//   - Export tokens as a list, a table, JSON, statistics or highlighted ANSI
//
// Example usage:
//
//	import "github.com/badele/rtftok/pkg/rtftok"
//
//	data, _ := os.ReadFile("doc.rtf")
//	utf8Data, _ := rtftok.ConvertToUTF8(data, "cp1252")
//	tokenizer := rtftok.NewRTFTokenizer(utf8Data)
//	for {
//		tok, ok := tokenizer.NextToken()
//		if !ok {
//			break
//		}
//		fmt.Println(tok.Line, tok.Column, tok.Value)
//	}
package rtftok

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/badele/rtftok/internal/exporter"
	"github.com/badele/rtftok/internal/importer/rtf"
	"github.com/badele/rtftok/internal/processor"
	"github.com/badele/rtftok/internal/types"
)

// Type aliases for public API
type (
	// Token represents a lexical RTF token with its literal text and position
	Token = types.Token

	// TokenType represents the type of a token
	TokenType = types.TokenType

	// TokenStats contains statistics about tokenized input
	TokenStats = types.TokenStats

	// Tokenizer is the interface for all tokenizers
	Tokenizer = types.Tokenizer

	// TokenizerWithStats is a tokenizer that also provides statistics
	TokenizerWithStats = types.TokenizerWithStats

	// RTFTokenizer is the tokenizer for RTF markup
	RTFTokenizer = rtf.Tokenizer

	// GroupTracker follows group nesting over a token stream
	GroupTracker = processor.GroupTracker
)

// Token type constants
const (
	TokenText           = types.TokenText
	TokenGroupOpen      = types.TokenGroupOpen
	TokenGroupClose     = types.TokenGroupClose
	TokenControlWord    = types.TokenControlWord
	TokenControlSymbol  = types.TokenControlSymbol
	TokenEscapedNewline = types.TokenEscapedNewline
)

// ErrUnterminatedEscape is reported when the input ends on a lone backslash.
var ErrUnterminatedEscape = types.ErrUnterminatedEscape

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var charmaps = map[string]encoding.Encoding{
	"cp1252":     charmap.Windows1252,
	"cp437":      charmap.CodePage437,
	"cp850":      charmap.CodePage850,
	"iso-8859-1": charmap.ISO8859_1,
	"macroman":   charmap.Macintosh,
}

// Encodings lists the accepted source encodings.
var Encodings = []string{"utf8", "cp1252", "cp437", "cp850", "iso-8859-1", "macroman"}

// ConvertToUTF8 decodes data from one of the Encodings to UTF-8 and drops a
// leading UTF-8 byte order mark.
func ConvertToUTF8(data []byte, sourceEncoding string) ([]byte, error) {
	if sourceEncoding != "utf8" {
		enc, ok := charmaps[sourceEncoding]
		if !ok {
			return nil, fmt.Errorf("unsupported encoding: %s", sourceEncoding)
		}

		decoded, _, err := transform.Bytes(enc.NewDecoder(), data)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", sourceEncoding, err)
		}
		data = decoded
	}

	return bytes.TrimPrefix(data, utf8BOM), nil
}

// NewRTFTokenizer creates a new tokenizer over a copy of input.
// The input should be UTF-8 encoded (use ConvertToUTF8 if needed).
func NewRTFTokenizer(input []byte) *RTFTokenizer {
	return rtf.NewRTFTokenizer(input)
}

// NewGroupTracker creates a tracker for group depth and destinations.
func NewGroupTracker() *GroupTracker {
	return processor.NewGroupTracker()
}

// Classify returns the token type of a literal token text.
func Classify(value string) TokenType {
	return types.Classify(value)
}

// ExportTokenList writes one "line:column<TAB>type<TAB>value" row per token.
func ExportTokenList(tokens []Token, w io.Writer) error {
	return exporter.ExportTokenList(tokens, w)
}

// ExportTokensToTable renders tokens as a table.
func ExportTokensToTable(tokens []Token, w io.Writer) error {
	return exporter.ExportTokensToTable(tokens, w)
}

// ExportTokensJSON drains tok and writes its tokens and statistics as JSON.
func ExportTokensJSON(tok TokenizerWithStats, w io.Writer) error {
	return exporter.ExportTokensJSON(tok, w)
}

// DisplayStats writes human-readable statistics.
func DisplayStats(stats TokenStats, w io.Writer) {
	exporter.DisplayStats(stats, w)
}

// ExportHighlightedANSI renders tokens in their original layout, colored
// by token type.
func ExportHighlightedANSI(tokens []Token) (string, error) {
	return exporter.ExportHighlightedANSI(tokens)
}
