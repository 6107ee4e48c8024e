package exporter

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/badele/rtftok/internal/types"
)

var visibleReplacer = strings.NewReplacer("\n", `\n`, "\r", `\r`, "\t", `\t`)

// ExportTokenList writes one "line:column<TAB>type<TAB>value" row per token.
func ExportTokenList(tokens []types.Token, writer io.Writer) error {
	for _, token := range tokens {
		_, err := fmt.Fprintf(writer, "%d:%d\t%s\t%s\n",
			token.Line, token.Column, token.Type, visibleReplacer.Replace(token.Value))
		if err != nil {
			return fmt.Errorf("error writing token list: %w", err)
		}
	}
	return nil
}

func truncate(s string, maxLen int) string {
	s = visibleReplacer.Replace(s)

	if len(s) <= maxLen {
		return s
	}

	cut := maxLen - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
