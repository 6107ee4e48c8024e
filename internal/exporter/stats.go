package exporter

import (
	"fmt"
	"io"
	"sort"

	"github.com/badele/rtftok/internal/types"
)

func DisplayStats(stats types.TokenStats, writer io.Writer) {
	type typeCount struct {
		Type  types.TokenType
		Count int
	}

	var typeCounts []typeCount

	fmt.Fprint(writer, "=== Token Statistics ===\n\n")
	fmt.Fprintf(writer, "  File size: %d bytes\n", stats.FileSize)
	fmt.Fprintf(writer, "  Lines: %d\n", stats.Lines)
	fmt.Fprintf(writer, "  Total tokens: %d\n", stats.TotalTokens)
	fmt.Fprintf(writer, "  Text length: %d bytes\n", stats.TotalTextLength)
	fmt.Fprintf(writer, "  Max group depth: %d\n", stats.MaxGroupDepth)

	if stats.UnclosedGroups > 0 || stats.UnmatchedCloses > 0 {
		fmt.Fprintf(writer, "  Unclosed groups: %d, unmatched closes: %d\n",
			stats.UnclosedGroups, stats.UnmatchedCloses)
	}
	if stats.PosUnterminatedEscape >= 0 {
		fmt.Fprintf(writer, "  Unterminated escape at offset %d\n", stats.PosUnterminatedEscape)
	}

	fmt.Fprintln(writer, "\n--- Tokens by Type")

	for t, count := range stats.TokensByType {
		typeCounts = append(typeCounts, typeCount{t, count})
	}
	sort.Slice(typeCounts, func(i, j int) bool {
		if typeCounts[i].Count == typeCounts[j].Count {
			return typeCounts[i].Type < typeCounts[j].Type
		}
		return typeCounts[i].Count > typeCounts[j].Count
	})

	for _, tc := range typeCounts {
		percentage := float64(tc.Count) / float64(stats.TotalTokens) * 100
		fmt.Fprintf(writer, "  %-30s:  %5d (%.1f%%)\n", tc.Type.String(), tc.Count, percentage)
	}

	if len(stats.ControlWords) > 0 {
		fmt.Fprintln(writer, "\n--- Most Used Control Words")
		displayTopN(writer, stats.ControlWords, 10, `\`)
	}

	if len(stats.ControlSymbols) > 0 {
		fmt.Fprintln(writer, "\n--- Control Symbols")
		displayTopN(writer, stats.ControlSymbols, 10, "")
	}

	if len(stats.Destinations) > 0 {
		fmt.Fprintln(writer, "\n--- Group Destinations")
		displayTopN(writer, stats.Destinations, 10, `\`)
	}
}

func displayTopN(writer io.Writer, data map[string]int, n int, prefix string) {
	type entry struct {
		Key   string
		Count int
	}

	var entries []entry
	for k, v := range data {
		entries = append(entries, entry{k, v})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count == entries[j].Count {
			return entries[i].Key < entries[j].Key
		}
		return entries[i].Count > entries[j].Count
	})

	for i, e := range entries {
		if i >= n {
			break
		}
		fmt.Fprintf(writer, "  %-30s: %5d\n", prefix+visibleReplacer.Replace(e.Key), e.Count)
	}
}
