package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

/////////////////////////////////////////////////////////////////////////////
// TOKEN TYPE
/////////////////////////////////////////////////////////////////////////////

type TokenType int

const (
	TokenText TokenType = iota
	TokenGroupOpen
	TokenGroupClose
	TokenControlWord
	TokenControlSymbol
	TokenEscapedNewline
)

// ErrUnterminatedEscape reports a backslash as the last byte of the input.
var ErrUnterminatedEscape = errors.New("unterminated escape at end of input")

var tokenNames = map[TokenType]string{
	TokenText:           "TokenText",
	TokenGroupOpen:      "TokenGroupOpen",
	TokenGroupClose:     "TokenGroupClose",
	TokenControlWord:    "TokenControlWord",
	TokenControlSymbol:  "TokenControlSymbol",
	TokenEscapedNewline: "TokenEscapedNewline",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", t)
}

func (t TokenType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TokenType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	return t.UnmarshalText([]byte(s))
}

// MarshalText lets TokenType be used as a readable JSON map key.
func (t TokenType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TokenType) UnmarshalText(data []byte) error {
	s := string(data)
	for tt, name := range tokenNames {
		if name == s {
			*t = tt
			return nil
		}
	}
	return fmt.Errorf("unknown TokenType: %s", s)
}

/////////////////////////////////////////////////////////////////////////////
// TOKEN
/////////////////////////////////////////////////////////////////////////////

// Token is a lexical unit of RTF markup. Value holds the literal text exactly
// as it appeared in the input (or as it was rewound by the caller); a control
// word never includes its delimiting space.
type Token struct {
	Type   TokenType `json:"type"`
	Value  string    `json:"value"`
	Pos    int       `json:"pos"`
	Line   int       `json:"line"`
	Column int       `json:"column"`
}

func (t Token) String() string {
	switch t.Type {
	case TokenGroupOpen, TokenGroupClose:
		return "GROUP: " + t.Value
	case TokenControlWord:
		return "WORD: " + t.Value
	case TokenControlSymbol:
		return "SYMBOL: " + t.Value
	case TokenEscapedNewline:
		return "NEWLINE: \\n"
	case TokenText:
		return "TEXT: " + t.Value
	default:
		return "UNKNOWN"
	}
}

// Name returns the letters of a control word without the backslash, or an
// empty string for any other token.
func (t Token) Name() string {
	if t.Type != TokenControlWord {
		return ""
	}
	end := 1
	for end < len(t.Value) && IsLetter(t.Value[end]) {
		end++
	}
	return t.Value[1:end]
}

// Param returns the numeric parameter of a control word. ok is false when the
// word carries no digits.
func (t Token) Param() (value int, ok bool) {
	if t.Type != TokenControlWord {
		return 0, false
	}
	raw := t.Value[1+len(t.Name()):]
	if raw == "" || raw == "-" {
		return 0, false
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return value, true
}

func IsLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func IsDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// Classify returns the token type the scanner would give to value. It is used
// for tokens handed back through a rewind, which may be synthetic.
func Classify(value string) TokenType {
	switch {
	case value == "{":
		return TokenGroupOpen
	case value == "}":
		return TokenGroupClose
	case len(value) >= 2 && value[0] == '\\':
		if value[1] == '\n' && len(value) == 2 {
			return TokenEscapedNewline
		}
		if IsLetter(value[1]) {
			return TokenControlWord
		}
		return TokenControlSymbol
	default:
		return TokenText
	}
}

/////////////////////////////////////////////////////////////////////////////
// TOKEN STATS
/////////////////////////////////////////////////////////////////////////////

type TokenStats struct {
	TotalTokens           int               `json:"total_tokens"`
	TokensByType          map[TokenType]int `json:"tokens_by_type"`
	ControlWords          map[string]int    `json:"control_words"`
	ControlSymbols        map[string]int    `json:"control_symbols"`
	Destinations          map[string]int    `json:"destinations"`
	TotalTextLength       int               `json:"total_text_length"`
	Lines                 int               `json:"lines"`
	MaxGroupDepth         int               `json:"max_group_depth"`
	UnclosedGroups        int               `json:"unclosed_groups"`
	UnmatchedCloses       int               `json:"unmatched_closes"`
	FileSize              int64             `json:"file_size"`
	PosUnterminatedEscape int64             `json:"pos_unterminated_escape"`
}

func NewTokenStats(fileSize int64) TokenStats {
	return TokenStats{
		TokensByType:          make(map[TokenType]int),
		ControlWords:          make(map[string]int),
		ControlSymbols:        make(map[string]int),
		Destinations:          make(map[string]int),
		FileSize:              fileSize,
		PosUnterminatedEscape: -1,
	}
}
