package main

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/mitchellh/colorstring"
	"github.com/rivo/uniseg"

	"wupin-golang/converter"
	"wupin-golang/ipa"
)

// 输出格式
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// FormatOptions 输出选项
type FormatOptions struct {
	Format       string
	Verbose      bool
	Alternatives bool
	Separator    string
	IPA          bool
	Tone         ipa.ToneMode
	Mandarin     bool
	Color        bool
}

// segmentRecord 结构化输出的一条
type segmentRecord struct {
	Text            string   `json:"text" yaml:"text"`
	Pinyin          string   `json:"pinyin" yaml:"pinyin"`
	IsWord          bool     `json:"is_word" yaml:"is_word"`
	Alternatives    []string `json:"alternatives,omitempty" yaml:"alternatives,omitempty"`
	IPA             string   `json:"ipa,omitempty" yaml:"ipa,omitempty"`
	AlternativesIPA []string `json:"alternatives_ipa,omitempty" yaml:"alternatives_ipa,omitempty"`
	Mandarin        string   `json:"mandarin,omitempty" yaml:"mandarin,omitempty"`
}

// displayKeyIPA 片段拼音（可能是多音节 key）转 IPA；标点等非拼音内容原样返回
func displayKeyIPA(s string, tone ipa.ToneMode) string {
	if !looksLikeWupin(s) {
		return s
	}
	return ipa.KeyToIPA(s, tone)
}

// displayTokenIPA 单个备选读音转 IPA
func displayTokenIPA(s string, tone ipa.ToneMode) string {
	if !looksLikeWupin(s) {
		return s
	}
	return ipa.TokenToIPA(s, tone)
}

// looksLikeWupin 至少含一个小写 ASCII 字母，且不是未知标记
func looksLikeWupin(s string) bool {
	if s == "" || s == converter.Unknown {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] >= 'a' && s[i] <= 'z' {
			return true
		}
	}
	return false
}

func buildRecords(segs []converter.Segment, opts FormatOptions) []segmentRecord {
	records := make([]segmentRecord, 0, len(segs))
	for _, seg := range segs {
		rec := segmentRecord{
			Text:         seg.Text,
			Pinyin:       seg.Pinyin,
			IsWord:       seg.IsWord,
			Alternatives: seg.Alternatives,
		}
		if opts.IPA {
			rec.IPA = displayKeyIPA(seg.Pinyin, opts.Tone)
			for _, alt := range seg.Alternatives {
				rec.AlternativesIPA = append(rec.AlternativesIPA, displayTokenIPA(alt, opts.Tone))
			}
		}
		if opts.Mandarin {
			rec.Mandarin = MandarinReading(seg.Text)
		}
		records = append(records, rec)
	}
	return records
}

// FormatSegments 按格式输出片段
func FormatSegments(segs []converter.Segment, opts FormatOptions) (string, error) {
	switch opts.Format {
	case FormatJSON:
		b, err := json.MarshalIndent(buildRecords(segs, opts), "", "  ")
		if err != nil {
			return "", fmt.Errorf("encode json: %w", err)
		}
		return string(b), nil
	case FormatYAML:
		b, err := yaml.Marshal(buildRecords(segs, opts))
		if err != nil {
			return "", fmt.Errorf("encode yaml: %w", err)
		}
		return strings.TrimRight(string(b), "\n"), nil
	case FormatText, "":
		return formatText(segs, opts), nil
	}
	return "", fmt.Errorf("unknown format %q (want text, json or yaml)", opts.Format)
}

func formatText(segs []converter.Segment, opts FormatOptions) string {
	colorize := colorstring.Colorize{
		Colors:  colorstring.DefaultColors,
		Disable: !opts.Color,
		Reset:   true,
	}
	unknown := colorize.Color("[red]" + converter.Unknown)

	display := func(pinyin string) string {
		if opts.IPA {
			pinyin = displayKeyIPA(pinyin, opts.Tone)
		}
		if pinyin == converter.Unknown {
			return unknown
		}
		return pinyin
	}

	if !opts.Verbose && !opts.Alternatives {
		parts := make([]string, len(segs))
		for i, seg := range segs {
			parts[i] = display(seg.Pinyin)
		}
		return strings.Join(parts, opts.Separator)
	}

	// 按显示宽度对齐，汉字占两列
	width := 0
	for _, seg := range segs {
		width = max(width, uniseg.StringWidth(seg.Text))
	}

	lines := make([]string, 0, len(segs))
	for _, seg := range segs {
		pad := strings.Repeat(" ", width-uniseg.StringWidth(seg.Text))
		line := seg.Text + ": " + pad + display(seg.Pinyin)
		if len(seg.Alternatives) > 0 {
			alts := make([]string, len(seg.Alternatives))
			for i, alt := range seg.Alternatives {
				if opts.IPA {
					alt = displayTokenIPA(alt, opts.Tone)
				}
				alts[i] = alt
			}
			line += " [" + strings.Join(alts, "/") + "]"
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
