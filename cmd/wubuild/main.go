// wubuild: 从词典 MDX 导出的 txt 生成 words.json 和 char_base.json

package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v2"

	"wupin-golang/lexicon"
)

// 每处理这么多条刷新一次进度条
const progressStep = 1000

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("wubuild", flag.ContinueOnError)
	fs.SetOutput(stderr)
	input := fs.String("input", "吴语苏州话词典.mdx.txt", "MDX txt export of the dictionary")
	output := fs.String("output", "data", "output directory for words.json and char_base.json")
	quiet := fs.Bool("quiet", false, "no progress bar")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger := slog.New(slog.NewTextHandler(stderr, nil))
	if err := build(*input, *output, *quiet, stderr, logger); err != nil {
		logger.Error("build failed", slog.Any("error", err))
		return 1
	}
	return 0
}

func build(input, output string, quiet bool, progress io.Writer, logger *slog.Logger) error {
	f, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	entries, err := lexicon.ParseMDX(f)
	if err != nil {
		return err
	}
	logger.Info("parsed", slog.String("input", input), slog.Int("entries", len(entries)))

	var bar *progressbar.ProgressBar
	if !quiet {
		bar = progressbar.NewOptions(len(entries), progressbar.OptionSetWriter(progress))
	}

	b := lexicon.NewBuilder()
	for i, e := range entries {
		b.Add(e)
		if bar != nil && (i+1)%progressStep == 0 {
			_ = bar.Add(progressStep)
		}
	}
	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(progress)
	}

	if err := b.WriteDir(output); err != nil {
		return err
	}
	st := b.Stats()
	logger.Info("built",
		slog.String("output", output),
		slog.Int("entries", st.Entries),
		slog.Int("skipped", st.Skipped),
		slog.Int("words", st.Words),
		slog.Int("chars", st.Chars),
		slog.Int("multi_reading_chars", st.MultiReading))
	return nil
}
