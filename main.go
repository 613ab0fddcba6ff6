// wupin: 中文文本转苏州吴语拼音（可选 IPA）

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"wupin-golang/converter"
	"wupin-golang/ipa"
	"wupin-golang/lexicon"
)

const usage = `usage: wupin [flags] [text]

Convert Chinese text to Suzhou Wu romanization.
Input is taken from the text argument, else --file, else stdin.

flags:
`

// cliOptions 命令行参数
type cliOptions struct {
	verbose      bool
	alternatives bool
	file         string
	output       string
	dataDir      string
	format       string
	separator    string
	toIPA        bool
	tone         string
	configPath   string
	traditional  bool
	numbers      bool
	mandarin     bool
	serve        bool
	noColor      bool
}

func newFlagSet(opts *cliOptions, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("wupin", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	fs.BoolVar(&opts.verbose, "v", false, "one line per segment (shorthand)")
	fs.BoolVar(&opts.verbose, "verbose", false, "one line per segment")
	fs.BoolVar(&opts.alternatives, "a", false, "show alternative readings (shorthand)")
	fs.BoolVar(&opts.alternatives, "alternatives", false, "show alternative readings of single characters")
	fs.StringVar(&opts.file, "f", "", "input file (shorthand)")
	fs.StringVar(&opts.file, "file", "", "read input from file")
	fs.StringVar(&opts.output, "o", "", "output file (shorthand)")
	fs.StringVar(&opts.output, "output", "", "write output to file")
	fs.StringVar(&opts.dataDir, "d", "", "data directory (shorthand)")
	fs.StringVar(&opts.dataDir, "data-dir", "", "directory holding words.json and char_base.json")
	fs.StringVar(&opts.format, "format", FormatText, "output format: text, json or yaml")
	fs.StringVar(&opts.separator, "separator", " ", "separator between readings in text output")
	fs.BoolVar(&opts.toIPA, "ipa", false, "output IPA instead of wupin")
	fs.StringVar(&opts.tone, "tone", "", "IPA tone mode: none, base or sandhi")
	fs.StringVar(&opts.configPath, "config", "", "config file (YAML)")
	fs.BoolVar(&opts.traditional, "traditional", false, "convert traditional characters to simplified first")
	fs.BoolVar(&opts.numbers, "numbers", false, "read Arabic numerals as Chinese numerals")
	fs.BoolVar(&opts.mandarin, "mandarin", false, "add Mandarin pinyin to json/yaml records")
	fs.BoolVar(&opts.serve, "serve", false, "run the HTTP service")
	fs.BoolVar(&opts.noColor, "no-color", false, "disable coloured output")
	return fs
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opts cliOptions
	fs := newFlagSet(&opts, stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if err := execute(opts, fs.Args(), stdin, stdout, stderr); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func execute(opts cliOptions, positional []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := LoadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.dataDir != "" {
		cfg.Data.Dir = opts.dataDir
	}
	if opts.tone != "" {
		cfg.Converter.Tone = opts.tone
	}
	logger := NewLogger(cfg.Log, stderr)

	tone, err := ipa.ParseToneMode(cfg.Converter.Tone)
	if err != nil {
		return err
	}
	switch opts.format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", opts.format)
	}

	lex, err := lexicon.LoadDir(cfg.Data.Dir)
	if err != nil {
		return err
	}
	conv, err := converter.New(lex, converter.WithMaxWordLen(cfg.Converter.MaxWordLen))
	if err != nil {
		return err
	}
	logger.Debug("lexicon loaded",
		slog.String("dir", cfg.Data.Dir),
		slog.Int("words", lex.WordCount()),
		slog.Int("chars", lex.CharCount()))

	if opts.serve {
		return StartWupinHTTPService(NewWupinService(lex, conv, tone, cfg.Server), cfg.Server.Port)
	}

	text, err := readInput(opts, positional, stdin)
	if err != nil {
		return err
	}

	prep, err := NewPreparer(PrepareOptions{Traditional: opts.traditional, Numbers: opts.numbers})
	if err != nil {
		return err
	}
	if text, err = prep.Prepare(text); err != nil {
		return err
	}

	out := stdout
	if opts.output != "" {
		f, err := os.Create(opts.output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	result, err := FormatSegments(conv.Convert(text), FormatOptions{
		Format:       opts.format,
		Verbose:      opts.verbose,
		Alternatives: opts.alternatives,
		Separator:    opts.separator,
		IPA:          opts.toIPA,
		Tone:         tone,
		Mandarin:     opts.mandarin,
		Color:        !opts.noColor && isTerminal(out),
	})
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(out, result); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// readInput 输入优先级：命令行文本 > --file > 非终端的 stdin
func readInput(opts cliOptions, positional []string, stdin io.Reader) (string, error) {
	var text string
	switch {
	case len(positional) > 0:
		text = strings.Join(positional, " ")
	case opts.file != "":
		b, err := os.ReadFile(opts.file)
		if err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		text = string(b)
	case stdin != nil && !isTerminal(stdin):
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		text = string(b)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", errors.New("no input text (pass text, --file or pipe stdin)")
	}
	return text, nil
}

// isTerminal 只有 *os.File 才可能是终端
func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
