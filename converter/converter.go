// Package converter 吴语拼音转换器：greedy 最长匹配分词 + 单字 fallback。
//
// 算法：
//  1. 从当前位置开始，在词语表中匹配最长的纯汉字子串（长度 ≥ 2）
//  2. 匹配成功则输出词语拼音，跳过该长度
//  3. 否则查单字表，多音字取第一个读音，未知字记为 "?"
//  4. 非汉字字符原样输出
package converter

import (
	"errors"
	"iter"
	"strings"

	"wupin-golang/lexicon"
)

// DefaultMaxWordLen 最大匹配词语长度，防止过长匹配降低性能
const DefaultMaxWordLen = 15

// Unknown 单字表中也查不到时的拼音
const Unknown = "?"

// ErrNoLexicon 没有提供词典
var ErrNoLexicon = errors.New("converter: lexicon is required")

// Dictionary 转换器依赖的词典查询接口，实现必须在构造后只读。
type Dictionary interface {
	WordReading(word string) (string, bool)
	CharReadings(char string) []string
}

// Segment 分词片段
type Segment struct {
	Text   string `json:"text" yaml:"text"`
	Pinyin string `json:"pinyin" yaml:"pinyin"`
	// IsWord 为 true 表示来自词语表，此时 Alternatives 一定为空
	IsWord bool `json:"is_word" yaml:"is_word"`
	// Alternatives 多音字的全部读音（含 Pinyin 本身），只有单字才有
	Alternatives []string `json:"alternatives,omitempty" yaml:"alternatives,omitempty"`
}

// Detail 带详细信息的转换结果
type Detail struct {
	Text     string    `json:"text" yaml:"text"`
	Pinyin   string    `json:"pinyin" yaml:"pinyin"`
	Segments []Segment `json:"segments" yaml:"segments"`
}

// Stats 词典规模
type Stats struct {
	Words int `json:"word_count"`
	Chars int `json:"char_count"`
}

// Option 配置 Converter
type Option func(*Converter)

// WithMaxWordLen 设置最大匹配词语长度；小于 2 时只按单字转换。
func WithMaxWordLen(n int) Option {
	return func(c *Converter) {
		c.maxWordLen = n
	}
}

// Converter 吴语拼音转换器，可并发使用
type Converter struct {
	dict       Dictionary
	maxWordLen int
}

// New 用已加载好的词典创建转换器。
func New(dict Dictionary, opts ...Option) (*Converter, error) {
	if dict == nil {
		return nil, ErrNoLexicon
	}
	if l, ok := dict.(*lexicon.Lexicon); ok && l == nil {
		return nil, ErrNoLexicon
	}
	c := &Converter{dict: dict, maxWordLen: DefaultMaxWordLen}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Converter) MaxWordLen() int { return c.maxWordLen }

// Convert 将文本转换为吴语拼音片段。任何输入都不会失败。
func (c *Converter) Convert(text string) []Segment {
	var segs []Segment
	c.scan(text, true, func(s Segment) bool {
		segs = append(segs, s)
		return true
	})
	return segs
}

// ConvertToString 转换为拼音字符串
func (c *Converter) ConvertToString(text, separator string) string {
	return join(c.Convert(text), separator)
}

// ConvertWithDetail 返回原文、空格连接的拼音和片段
func (c *Converter) ConvertWithDetail(text string) Detail {
	segs := c.Convert(text)
	return Detail{
		Text:     text,
		Pinyin:   join(segs, " "),
		Segments: segs,
	}
}

// Iter 流式转换，用于大文本；只能遍历一次，不计算多音字备选。
func (c *Converter) Iter(text string) iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		c.scan(text, false, yield)
	}
}

// Stats 词典统计；词典不提供计数时为零
func (c *Converter) Stats() Stats {
	var st Stats
	if l, ok := c.dict.(interface {
		WordCount() int
		CharCount() int
	}); ok {
		st.Words = l.WordCount()
		st.Chars = l.CharCount()
	}
	return st
}

func (c *Converter) scan(text string, withAlternatives bool, yield func(Segment) bool) {
	runes := []rune(text)
	for i := 0; i < len(runes); {
		ch := string(runes[i])

		// 跳过非汉字字符（标点、空格、数字等）
		if !lexicon.IsCJK(runes[i]) {
			if !yield(Segment{Text: ch, Pinyin: ch}) {
				return
			}
			i++
			continue
		}

		if n, seg, ok := c.matchWord(runes[i:]); ok {
			if !yield(seg) {
				return
			}
			i += n
			continue
		}

		// fallback 到单字
		seg := Segment{Text: ch, Pinyin: Unknown}
		readings := c.dict.CharReadings(ch)
		if len(readings) > 0 {
			seg.Pinyin = readings[0]
			if withAlternatives && len(readings) > 1 {
				seg.Alternatives = readings
			}
		}
		if !yield(seg) {
			return
		}
		i++
	}
}

// matchWord 从最长可能长度开始匹配，单字长度不在此尝试
func (c *Converter) matchWord(rest []rune) (int, Segment, bool) {
	for n := min(c.maxWordLen, len(rest)); n >= 2; n-- {
		cand := rest[:n]
		if !allCJK(cand) {
			continue
		}
		word := string(cand)
		if pinyin, ok := c.dict.WordReading(word); ok {
			return n, Segment{Text: word, Pinyin: pinyin, IsWord: true}, true
		}
	}
	return 0, Segment{}, false
}

func allCJK(rs []rune) bool {
	for _, r := range rs {
		if !lexicon.IsCJK(r) {
			return false
		}
	}
	return true
}

func join(segs []Segment, sep string) string {
	parts := make([]string, len(segs))
	for i, s := range segs {
		parts[i] = s.Pinyin
	}
	return strings.Join(parts, sep)
}
