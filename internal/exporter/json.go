package exporter

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/badele/rtftok/internal/types"
)

type TokenizerJSONOutput struct {
	Tokens []types.Token    `json:"tokens"`
	Stats  types.TokenStats `json:"stats"`
}

func ExportTokensJSON(tok types.TokenizerWithStats, writer io.Writer) error {
	output := TokenizerJSONOutput{
		Tokens: tok.Tokenize(),
		Stats:  tok.GetStats(),
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("JSON serialization error: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return fmt.Errorf("error writing JSON: %w", err)
	}

	return nil
}
