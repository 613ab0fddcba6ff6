// wuextract: 从词典 MDX 导出的 txt 抽取吴拼并转写成 IPA，输出 TSV

package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/emirpasic/gods/sets/treeset"

	"wupin-golang/ipa"
	"wupin-golang/lexicon"
)

const (
	modeSyllable = "syllable"
	modeKey      = "key"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("wuextract", flag.ContinueOnError)
	fs.SetOutput(stderr)
	input := fs.String("input", "吴语苏州话词典.mdx.txt", "MDX txt export of the dictionary")
	output := fs.String("output", "out/wupin_syllable_ipa.tsv", "output TSV path")
	mode := fs.String("mode", modeSyllable, "syllable: distinct tokens; key: distinct whole keys")
	toneFlag := fs.String("tone", "sandhi", "tone output: none, base or sandhi")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger := slog.New(slog.NewTextHandler(stderr, nil))
	tone, err := ipa.ParseToneMode(*toneFlag)
	if err != nil {
		logger.Error("bad flag", slog.Any("error", err))
		return 2
	}
	if *mode != modeSyllable && *mode != modeKey {
		logger.Error("bad flag", slog.String("mode", *mode))
		return 2
	}

	n, err := extract(*input, *output, *mode, tone)
	if err != nil {
		logger.Error("extract failed", slog.Any("error", err))
		return 1
	}
	logger.Info("extracted", slog.String("output", *output), slog.Int("rows", n))
	return 0
}

// extract 返回写出的行数（不含表头）
func extract(input, output, mode string, tone ipa.ToneMode) (int, error) {
	f, err := os.Open(input)
	if err != nil {
		return 0, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	keys, err := lexicon.Keys(f)
	if err != nil {
		return 0, err
	}

	// 去重并排序
	set := treeset.NewWithStringComparator()
	for _, key := range keys {
		if mode == modeKey {
			set.Add(key)
			continue
		}
		for _, tok := range ipa.Syllables(key) {
			set.Add(tok)
		}
	}

	toIPA := ipa.TokenToIPA
	if mode == modeKey {
		toIPA = ipa.KeyToIPA
	}
	return set.Size(), writeTSV(output, set, func(s string) string { return toIPA(s, tone) })
}

func writeTSV(path string, rows *treeset.Set, toIPA func(string) string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprint(w, "wupin\tipa\n")
	it := rows.Iterator()
	for it.Next() {
		s := it.Value().(string)
		fmt.Fprintf(w, "%s\t%s\n", s, toIPA(s))
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
