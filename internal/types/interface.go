package types

// Tokenizer produces tokens one at a time and accepts tokens back for
// re-reading. The second result of NextToken is false at end of input.
type Tokenizer interface {
	NextToken() (Token, bool)
	RewindToken(value string)
	Line() int
	Column() int
}

// Tokenize with statistics
type TokenizerWithStats interface {
	Tokenizer
	Tokenize() []Token
	GetStats() TokenStats
}
