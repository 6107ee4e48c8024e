package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/op/go-logging"

	"github.com/badele/rtftok/pkg/rtftok"
)

var log = logging.MustGetLogger("rtftok")

var errNoInput = errors.New("no input: pass a file or pipe data on stdin")

type CLI struct {
	File     string `arg:"" optional:"" type:"existingfile" help:"RTF file to tokenize. Reads stdin when omitted."`
	Format   string `short:"f" enum:"list,table,json,stats,highlight" default:"list" env:"RTFTOK_FORMAT" help:"Output format (${enum})."`
	Encoding string `short:"e" enum:"utf8,cp1252,cp437,cp850,iso-8859-1,macroman" default:"utf8" env:"RTFTOK_ENCODING" help:"Source encoding (${enum})."`
	Strict   bool   `short:"s" env:"RTFTOK_STRICT" help:"Fail when the input ends on a lone backslash."`
	Debug    bool   `short:"d" env:"RTFTOK_DEBUG" help:"Enable debug logging on stderr."`
}

func setupLogging(debug bool) {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	formatter := logging.MustStringFormatter(`%{level:.4s} %{module}: %{message}`)
	leveled := logging.AddModuleLevel(logging.NewBackendFormatter(backend, formatter))

	if debug {
		leveled.SetLevel(logging.DEBUG, "")
	} else {
		leveled.SetLevel(logging.WARNING, "")
	}

	logging.SetBackend(leveled)
}

func (c *CLI) readInput() ([]byte, string, error) {
	if c.File != "" {
		data, err := os.ReadFile(c.File)
		if err != nil {
			return nil, "", fmt.Errorf("error reading file: %w", err)
		}
		return data, c.File, nil
	}

	// Check if stdin is a pipe or has data
	stat, err := os.Stdin.Stat()
	if err != nil {
		return nil, "", fmt.Errorf("error checking stdin: %w", err)
	}
	if (stat.Mode() & os.ModeCharDevice) != 0 {
		return nil, "", errNoInput
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, "", fmt.Errorf("error reading from stdin: %w", err)
	}
	return data, "stdin", nil
}

func (c *CLI) Run(out io.Writer) error {
	data, name, err := c.readInput()
	if err != nil {
		return err
	}
	log.Debugf("read %d bytes from %s", len(data), name)

	utf8Data, err := rtftok.ConvertToUTF8(data, c.Encoding)
	if err != nil {
		return err
	}

	tok := rtftok.NewRTFTokenizer(utf8Data)

	if c.Format == "json" {
		err = rtftok.ExportTokensJSON(tok, out)
	} else {
		err = c.export(tok, out)
	}
	if err != nil {
		return err
	}
	log.Debugf("%s: %d tokens on %d lines", name, len(tok.Tokens), tok.Stats.Lines)

	return c.checkStrict(tok)
}

func (c *CLI) export(tok *rtftok.RTFTokenizer, out io.Writer) error {
	tokens := tok.Tokenize()

	switch c.Format {
	case "table":
		return rtftok.ExportTokensToTable(tokens, out)
	case "stats":
		rtftok.DisplayStats(tok.GetStats(), out)
		return nil
	case "highlight":
		highlighted, err := rtftok.ExportHighlightedANSI(tokens)
		if err != nil {
			return err
		}
		_, err = io.WriteString(out, highlighted)
		return err
	default:
		return rtftok.ExportTokenList(tokens, out)
	}
}

func (c *CLI) checkStrict(tok *rtftok.RTFTokenizer) error {
	if !c.Strict {
		return nil
	}
	return tok.Err()
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("rtftok"),
		kong.Description("Split RTF markup into tokens with their line and column."),
		kong.UsageOnError(),
	)

	setupLogging(cli.Debug)

	if err := cli.Run(os.Stdout); err != nil {
		if errors.Is(err, errNoInput) {
			ctx.FatalIfErrorf(ctx.PrintUsage(false))
		}
		ctx.FatalIfErrorf(err)
	}
}
