package exporter

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/badele/rtftok/internal/types"
)

var highlightStyles = map[types.TokenType]tcell.Style{
	types.TokenText:           tcell.StyleDefault,
	types.TokenGroupOpen:      tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true),
	types.TokenGroupClose:     tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true),
	types.TokenControlWord:    tcell.StyleDefault.Foreground(tcell.ColorAqua),
	types.TokenControlSymbol:  tcell.StyleDefault.Foreground(tcell.ColorFuchsia),
	types.TokenEscapedNewline: tcell.StyleDefault.Foreground(tcell.ColorRed),
}

var unterminatedStyle = tcell.StyleDefault.Foreground(tcell.ColorRed).Reverse(true)

var sgrForeground = map[tcell.Color]string{
	tcell.ColorBlack:   "30",
	tcell.ColorMaroon:  "31",
	tcell.ColorGreen:   "32",
	tcell.ColorOlive:   "33",
	tcell.ColorNavy:    "34",
	tcell.ColorPurple:  "35",
	tcell.ColorTeal:    "36",
	tcell.ColorSilver:  "37",
	tcell.ColorGray:    "90",
	tcell.ColorRed:     "91",
	tcell.ColorLime:    "92",
	tcell.ColorYellow:  "93",
	tcell.ColorBlue:    "94",
	tcell.ColorFuchsia: "95",
	tcell.ColorAqua:    "96",
	tcell.ColorWhite:   "97",
}

// HighlightBuffer paints tokens at their source coordinates on a simulated
// screen, one style per token type. Row 0 holds source line top.
type HighlightBuffer struct {
	screen    tcell.SimulationScreen
	top       int
	width     int
	height    int
	rowWidths []int
}

func NewHighlightBuffer(width, height int) (*HighlightBuffer, error) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("error initializing screen: %w", err)
	}

	hb := &HighlightBuffer{screen: screen}
	hb.Reset(0, width, height)

	return hb, nil
}

// Reset clears the buffer and resizes it to cover height source lines
// starting at top.
func (hb *HighlightBuffer) Reset(top, width, height int) {
	hb.screen.SetSize(width, height)
	hb.screen.Clear()

	hb.top = top
	hb.width = width
	hb.height = height
	hb.rowWidths = make([]int, height)
}

// placeTokens converts byte columns into cell columns. Shift accumulates the
// extra bytes of multi-byte characters already placed on the current line.
func placeTokens(tokens []types.Token, place func(token types.Token, x int, text string)) {
	line, shift := -1, 0

	for _, token := range tokens {
		if token.Line != line {
			line, shift = token.Line, 0
		}

		text := token.Value
		if token.Type == types.TokenEscapedNewline {
			text = `\`
		}

		x := token.Column - shift
		place(token, x, text)
		shift += len(text) - utf8.RuneCountInString(text)
	}
}

func lineWidth(tokens []types.Token) (width int) {
	placeTokens(tokens, func(token types.Token, x int, text string) {
		width = max(width, x+utf8.RuneCountInString(text))
	})
	return width
}

func (hb *HighlightBuffer) ApplyTokens(tokens []types.Token) {
	placeTokens(tokens, hb.writeToken)
	hb.screen.Show()
}

func (hb *HighlightBuffer) writeToken(token types.Token, x int, text string) {
	y := token.Line - hb.top
	if y < 0 || y >= hb.height {
		return
	}

	style := highlightStyles[token.Type]
	if token.Type == types.TokenText && token.Value == `\` {
		style = unterminatedStyle
	}

	for _, r := range text {
		if x >= 0 && x < hb.width {
			hb.screen.SetContent(x, y, r, nil, style)
			hb.rowWidths[y] = max(hb.rowWidths[y], x+1)
		}
		x++
	}
}

// ExportANSI renders the painted rows as text with SGR sequences.
func (hb *HighlightBuffer) ExportANSI() string {
	var builder strings.Builder

	for y := 0; y < hb.height; y++ {
		current := tcell.StyleDefault

		for x := 0; x < hb.rowWidths[y]; x++ {
			mainc, _, style, _ := hb.screen.GetContent(x, y)
			if style != current {
				builder.WriteString(sgrSequence(style))
				current = style
			}
			if mainc == 0 {
				mainc = ' '
			}
			builder.WriteRune(mainc)
		}

		if current != tcell.StyleDefault {
			builder.WriteString("\x1b[0m")
		}
		builder.WriteString("\n")
	}

	return builder.String()
}

func (hb *HighlightBuffer) Close() {
	hb.screen.Fini()
}

func sgrSequence(style tcell.Style) string {
	fg, _, attrs := style.Decompose()
	codes := []string{"0"}

	if attrs&tcell.AttrBold != 0 {
		codes = append(codes, "1")
	}
	if attrs&tcell.AttrReverse != 0 {
		codes = append(codes, "7")
	}
	if code, ok := sgrForeground[fg]; ok {
		codes = append(codes, code)
	}

	return "\x1b[" + strings.Join(codes, ";") + "m"
}

// ExportHighlightedANSI renders tokens back into their original layout,
// colored by token type. Delimiter spaces swallowed by control words stay
// blank. Lines are painted one at a time so the screen never holds more than
// the current line.
func ExportHighlightedANSI(tokens []types.Token) (string, error) {
	lines := make([]types.Token, 0, len(tokens))
	for _, token := range tokens {
		if token.Line >= 0 {
			lines = append(lines, token)
		}
	}
	if len(lines) == 0 {
		return "", nil
	}
	slices.SortStableFunc(lines, func(a, b types.Token) int {
		return cmp.Compare(a.Line, b.Line)
	})

	buffer, err := NewHighlightBuffer(1, 1)
	if err != nil {
		return "", fmt.Errorf("error creating buffer: %w", err)
	}
	defer buffer.Close()

	var builder strings.Builder
	next := 0

	for start := 0; start < len(lines); {
		line := lines[start].Line
		end := start + 1
		for end < len(lines) && lines[end].Line == line {
			end++
		}

		for ; next < line; next++ {
			builder.WriteString("\n")
		}

		buffer.Reset(line, max(lineWidth(lines[start:end]), 1), 1)
		buffer.ApplyTokens(lines[start:end])
		builder.WriteString(buffer.ExportANSI())

		next = line + 1
		start = end
	}

	return builder.String(), nil
}
