package exporter

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/badele/rtftok/internal/processor"
	"github.com/badele/rtftok/internal/types"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// ExportTokensToTable renders tokens with their position, group depth,
// enclosing destination and, for control words, the split name and
// parameter. Destinations inside a \* group are prefixed with "*".
func ExportTokensToTable(tokens []types.Token, writer io.Writer) error {
	groups := processor.NewGroupTracker()
	rows := make([][]string, 0, len(tokens))

	for i, token := range tokens {
		depth := groups.Apply(token)
		name, param := "-", "-"

		dest := groups.Destination()
		if dest == "" {
			dest = "-"
		} else if groups.Ignorable() {
			dest = "*" + dest
		}

		switch token.Type {
		case types.TokenControlWord:
			name = token.Name()
			if p, ok := token.Param(); ok {
				param = strconv.Itoa(p)
			}
		case types.TokenControlSymbol:
			name = token.Value[1:]
		}

		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			fmt.Sprintf("%d:%d", token.Line, token.Column),
			strconv.Itoa(depth),
			truncate(dest, 24),
			token.Type.String(),
			truncate(name, 24),
			param,
			truncate(token.Value, 36),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("Token", "Pos", "Depth", "Group", "Type", "Name", "Param", "Raw").
		Rows(rows...)

	if _, err := fmt.Fprintln(writer, t.Render()); err != nil {
		return fmt.Errorf("error writing table: %w", err)
	}

	return nil
}
