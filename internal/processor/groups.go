package processor

import (
	"github.com/badele/rtftok/internal/types"
)

///////////////////////////////////////////////////////////////////////////////
// Group tracker
///////////////////////////////////////////////////////////////////////////////

type group struct {
	destination string
	ignorable   bool
}

// GroupTracker follows group nesting over a token stream. Unbalanced braces
// are counted, never rejected.
type GroupTracker struct {
	stack        []group
	maxDepth     int
	unmatched    int
	expectDest   bool
	destinations map[string]int
}

func NewGroupTracker() *GroupTracker {
	return &GroupTracker{
		stack:        make([]group, 0, 16),
		destinations: make(map[string]int),
	}
}

// ApplyTokens applies every token and returns the depth of each one.
func (g *GroupTracker) ApplyTokens(tokens []types.Token) []int {
	depths := make([]int, len(tokens))
	for i, token := range tokens {
		depths[i] = g.Apply(token)
	}
	return depths
}

// Apply updates the tracker and returns the nesting depth of token. A group
// delimiter reports the depth of the group it opens or closes.
func (g *GroupTracker) Apply(token types.Token) int {
	switch token.Type {
	case types.TokenGroupOpen:
		g.stack = append(g.stack, group{})
		g.expectDest = true
		if len(g.stack) > g.maxDepth {
			g.maxDepth = len(g.stack)
		}
		return len(g.stack)

	case types.TokenGroupClose:
		g.expectDest = false
		depth := len(g.stack)
		if depth == 0 {
			g.unmatched++
			return 0
		}
		g.stack = g.stack[:depth-1]
		return depth

	case types.TokenControlSymbol:
		if g.expectDest && token.Value == `\*` {
			g.stack[len(g.stack)-1].ignorable = true
			return len(g.stack)
		}

	case types.TokenControlWord:
		if g.expectDest {
			g.stack[len(g.stack)-1].destination = token.Name()
			g.destinations[token.Name()]++
		}
	}

	g.expectDest = false
	return len(g.stack)
}

func (g *GroupTracker) Depth() int {
	return len(g.stack)
}

func (g *GroupTracker) MaxDepth() int {
	return g.maxDepth
}

// Unmatched counts closing braces seen with no group open.
func (g *GroupTracker) Unmatched() int {
	return g.unmatched
}

// Destination returns the name of the innermost named group, or "".
func (g *GroupTracker) Destination() string {
	for i := len(g.stack) - 1; i >= 0; i-- {
		if g.stack[i].destination != "" {
			return g.stack[i].destination
		}
	}
	return ""
}

// Ignorable reports whether any enclosing group was marked with \*.
func (g *GroupTracker) Ignorable() bool {
	for _, grp := range g.stack {
		if grp.ignorable {
			return true
		}
	}
	return false
}

// Destinations counts how many groups each control word opened.
func (g *GroupTracker) Destinations() map[string]int {
	return g.destinations
}
