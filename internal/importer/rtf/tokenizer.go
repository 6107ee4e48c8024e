package rtf

// Sources :
// - https://www.biblioscape.com/rtf15_spec.htm#Heading5 (conventions of an RTF reader)
// - https://learn.microsoft.com/en-us/openspecs/exchange_server_protocols/ms-oxrtfcp

import (
	"fmt"
	"unicode/utf8"

	"github.com/op/go-logging"

	"github.com/badele/rtftok/internal/processor"
	"github.com/badele/rtftok/internal/types"
)

var log = logging.MustGetLogger("rtf")

// Library callers that never configure a backend only see warnings.
func init() {
	logging.SetLevel(logging.WARNING, "rtf")
}

// Tokenizer splits RTF markup into group delimiters, control words, control
// symbols, escaped newlines and text runs. Tokens handed back with
// RewindToken are returned before scanning resumes.
//
// A Tokenizer is not safe for concurrent use.
type Tokenizer struct {
	input  string
	pos    int
	line   int
	column int

	// start of the last token returned from the input
	tokPos    int
	tokLine   int
	tokColumn int

	rewind []string

	Tokens []types.Token    `json:"tokens"`
	Stats  types.TokenStats `json:"stats"`
}

func NewRTFTokenizer(input []byte) *Tokenizer {
	return &Tokenizer{
		input:  string(input),
		rewind: make([]string, 0, 8),
		Tokens: make([]types.Token, 0),
		Stats:  types.NewTokenStats(int64(len(input))),
	}
}

// Line returns the 0-based line of the last token returned.
func (t *Tokenizer) Line() int {
	return t.tokLine
}

// Column returns the 0-based byte column of the last token returned.
func (t *Tokenizer) Column() int {
	return t.tokColumn
}

// RewindToken pushes value so that the next call to NextToken returns it.
// The reported position is left untouched.
func (t *Tokenizer) RewindToken(value string) {
	t.rewind = append(t.rewind, value)
}

// NextToken returns the next token. ok is false once the input is exhausted;
// further calls keep returning false with the same position.
func (t *Tokenizer) NextToken() (tok types.Token, ok bool) {
	if n := len(t.rewind); n > 0 {
		value := t.rewind[n-1]
		t.rewind = t.rewind[:n-1]
		return t.token(types.Classify(value), value), true
	}

	for t.pos < len(t.input) {
		c := t.input[t.pos]

		switch c {
		case '\n':
			t.pos++
			t.line++
			t.column = 0
			continue
		case '\r':
			t.pos++
			continue
		}

		t.tokPos, t.tokLine, t.tokColumn = t.pos, t.line, t.column

		switch c {
		case '{':
			return t.emit(types.TokenGroupOpen, t.pos+1, t.pos+1), true
		case '}':
			return t.emit(types.TokenGroupClose, t.pos+1, t.pos+1), true
		case '\\':
			return t.parseEscape(t.pos), true
		default:
			return t.parseText(t.pos), true
		}
	}

	t.tokPos, t.tokLine, t.tokColumn = t.pos, t.line, 0
	if t.column > 0 {
		t.tokLine++
	}
	return types.Token{}, false
}

// Tokenize drains the tokenizer and computes its statistics.
func (t *Tokenizer) Tokenize() []types.Token {
	for {
		tok, ok := t.NextToken()
		if !ok {
			break
		}
		t.Tokens = append(t.Tokens, tok)
	}

	t.calculateStats()

	return t.Tokens
}

func (t *Tokenizer) GetStats() types.TokenStats {
	return t.Stats
}

// Err returns ErrUnterminatedEscape, wrapped with its position, when the
// input ended on a lone backslash.
func (t *Tokenizer) Err() error {
	if t.Stats.PosUnterminatedEscape < 0 {
		return nil
	}
	return fmt.Errorf("offset %d: %w", t.Stats.PosUnterminatedEscape, types.ErrUnterminatedEscape)
}

func (t *Tokenizer) token(tt types.TokenType, value string) types.Token {
	return types.Token{
		Type:   tt,
		Value:  value,
		Pos:    t.tokPos,
		Line:   t.tokLine,
		Column: t.tokColumn,
	}
}

// emit returns the token spanning tokPos..end and moves the cursor to next,
// which is past end when a delimiter is swallowed. The span never holds a
// newline.
func (t *Tokenizer) emit(tt types.TokenType, end, next int) types.Token {
	tok := t.token(tt, t.input[t.tokPos:end])
	t.column += next - t.pos
	t.pos = next
	return tok
}

func (t *Tokenizer) parseEscape(start int) types.Token {
	end := start + 1

	if end >= len(t.input) {
		if t.Stats.PosUnterminatedEscape < 0 {
			t.Stats.PosUnterminatedEscape = int64(start)
		}
		log.Warningf("unterminated escape at %d:%d", t.tokLine, t.tokColumn)
		return t.emit(types.TokenText, end, end)
	}

	c := t.input[end]

	switch {
	case types.IsLetter(c):
		for end < len(t.input) && types.IsLetter(t.input[end]) {
			end++
		}
		if end < len(t.input) && (t.input[end] == '-' || types.IsDigit(t.input[end])) {
			end++
			for end < len(t.input) && types.IsDigit(t.input[end]) {
				end++
			}
		}
		next := end
		if next < len(t.input) && t.input[next] == ' ' {
			next++
		}
		return t.emit(types.TokenControlWord, end, next)

	case c == '\n':
		tok := t.token(types.TokenEscapedNewline, t.input[start:end+1])
		t.pos = end + 1
		t.line++
		t.column = 0
		return tok

	default:
		_, size := utf8.DecodeRuneInString(t.input[end:])
		return t.emit(types.TokenControlSymbol, end+size, end+size)
	}
}

func (t *Tokenizer) parseText(start int) types.Token {
	end := start + 1
	for end < len(t.input) && !isTextStop(t.input[end]) {
		end++
	}
	return t.emit(types.TokenText, end, end)
}

func isTextStop(c byte) bool {
	return c == '{' || c == '}' || c == '\\' || c == '\r' || c == '\n'
}

func (t *Tokenizer) calculateStats() {
	groups := processor.NewGroupTracker()

	unterminated := t.Stats.PosUnterminatedEscape
	t.Stats = types.NewTokenStats(t.Stats.FileSize)
	t.Stats.PosUnterminatedEscape = unterminated
	t.Stats.TotalTokens = len(t.Tokens)

	for _, token := range t.Tokens {
		groups.Apply(token)
		t.Stats.TokensByType[token.Type]++

		switch token.Type {
		case types.TokenControlWord:
			t.Stats.ControlWords[token.Name()]++
		case types.TokenControlSymbol:
			t.Stats.ControlSymbols[token.Value]++
		case types.TokenText:
			t.Stats.TotalTextLength += len(token.Value)
		}
	}

	t.Stats.Lines = t.tokLine
	t.Stats.MaxGroupDepth = groups.MaxDepth()
	t.Stats.UnclosedGroups = groups.Depth()
	t.Stats.UnmatchedCloses = groups.Unmatched()
	t.Stats.Destinations = groups.Destinations()
}
