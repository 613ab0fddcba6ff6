package lexicon

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/goccy/go-json"
)

// Entry 词典导出中的一条（读音, 简体, 繁体）
type Entry struct {
	Reading     string
	Simplified  string
	Traditional string
}

// BuildStats 构建统计
type BuildStats struct {
	Entries      int
	Skipped      int
	Words        int
	Chars        int
	MultiReading int
}

var (
	reKeyLine    = regexp.MustCompile(`^[a-z]+[0-9a-z\[\] ]*$`)
	reExtractKey = regexp.MustCompile(`^[a-z]+[0-9a-z\[\] ,]*$`)
	reCell       = regexp.MustCompile(`<p>([^<]*)</p>`)
	reHanziPair  = regexp.MustCompile(`^(.+?) （(.+?)）$`)
	reBracket    = regexp.MustCompile(`\[\d+\]`)
)

// IsCJK 是否为 CJK 统一汉字（U+4E00–U+9FFF）
func IsCJK(r rune) bool {
	return r >= 0x4E00 && r <= 0x9FFF
}

func allCJK(s string) bool {
	for _, r := range s {
		if !IsCJK(r) {
			return false
		}
	}
	return true
}

// NormalizeReading 去掉变调标记和轻声标记，如 "bu4[23]" → "bu4", "aeq5[51]0" → "aeq5"
func NormalizeReading(s string) string {
	s = reBracket.ReplaceAllString(s, "")
	s = strings.TrimRight(s, "0")
	return strings.TrimSpace(s)
}

func newLineScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return sc
}

// ParseMDX 解析 MDX 导出的 txt：
//
//	aeq7
//	<p>aeq7</p><p>揠 （揠）</p><p>阿 （阿）</p>
//	</>
func ParseMDX(r io.Reader) ([]Entry, error) {
	var entries []Entry
	sc := newLineScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" || line == "</>" || !reKeyLine.MatchString(line) {
			continue
		}
		key := NormalizeReading(strings.TrimSpace(line))

		// 拼音行后面紧跟内容行
		if !sc.Scan() {
			break
		}
		cells := reCell.FindAllStringSubmatch(strings.TrimRight(sc.Text(), "\r"), -1)
		if len(cells) < 2 {
			continue
		}
		// 第一格是重复的拼音
		for _, cell := range cells[1:] {
			m := reHanziPair.FindStringSubmatch(strings.TrimSpace(cell[1]))
			if m == nil {
				continue
			}
			entries = append(entries, Entry{
				Reading:     key,
				Simplified:  strings.TrimSpace(m[2]),
				Traditional: strings.TrimSpace(m[1]),
			})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan mdx: %w", err)
	}
	return entries, nil
}

// Keys 抽取所有拼音键（键行后面必须是 <p> 内容行），保留原始写法。
func Keys(r io.Reader) ([]string, error) {
	var keys []string
	sc := newLineScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" || line == "</>" || !reExtractKey.MatchString(line) {
			continue
		}
		if !sc.Scan() {
			break
		}
		if strings.HasPrefix(strings.TrimLeft(sc.Text(), " \t"), "<p>") {
			keys = append(keys, strings.TrimSpace(line))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan mdx: %w", err)
	}
	return keys, nil
}

// byLengthDesc 词语按长度降序，greedy 的朴素实现可以直接顺序匹配
func byLengthDesc(a, b interface{}) int {
	x, y := a.(string), b.(string)
	if lx, ly := utf8.RuneCountInString(x), utf8.RuneCountInString(y); lx != ly {
		return ly - lx
	}
	return strings.Compare(x, y)
}

// byLengthAsc 读音排序：较短的读音大多更常见
func byLengthAsc(a, b interface{}) int {
	x, y := a.(string), b.(string)
	if lx, ly := utf8.RuneCountInString(x), utf8.RuneCountInString(y); lx != ly {
		return lx - ly
	}
	return strings.Compare(x, y)
}

// Builder 把词典条目分流到词语表和单字表。
type Builder struct {
	words *treemap.Map // 词语 → 拼音
	chars *treemap.Map // 单字 → *treeset.Set
	stats BuildStats
}

func NewBuilder() *Builder {
	return &Builder{
		words: treemap.NewWith(byLengthDesc),
		chars: treemap.NewWithStringComparator(),
	}
}

// Add 加入一条；过滤掉带特殊符号或非纯汉字的条目。
func (b *Builder) Add(e Entry) {
	b.stats.Entries++
	s := e.Simplified
	if s == "" || s == "X" || strings.ContainsAny(s, "□[]") || !allCJK(s) {
		b.stats.Skipped++
		return
	}

	if utf8.RuneCountInString(s) == 1 {
		v, ok := b.chars.Get(s)
		if !ok {
			v = treeset.NewWith(byLengthAsc)
			b.chars.Put(s, v)
		}
		if e.Reading != "" {
			v.(*treeset.Set).Add(e.Reading)
		}
		return
	}

	// 同一词语保留较长的拼音（可能是更完整的读音）
	if old, ok := b.words.Get(s); !ok || len(e.Reading) > len(old.(string)) {
		b.words.Put(s, e.Reading)
	}
}

func (b *Builder) Stats() BuildStats {
	st := b.stats
	st.Words = b.words.Size()
	st.Chars = b.chars.Size()
	it := b.chars.Iterator()
	for it.Next() {
		if it.Value().(*treeset.Set).Size() > 1 {
			st.MultiReading++
		}
	}
	return st
}

func (b *Builder) tables() (map[string]string, map[string][]string) {
	words := make(map[string]string, b.words.Size())
	it := b.words.Iterator()
	for it.Next() {
		words[it.Key().(string)] = it.Value().(string)
	}
	chars := make(map[string][]string, b.chars.Size())
	it = b.chars.Iterator()
	for it.Next() {
		chars[it.Key().(string)] = readings(it.Value().(*treeset.Set))
	}
	return words, chars
}

// Lexicon 用当前内容构建只读词典
func (b *Builder) Lexicon() *Lexicon {
	return New(b.tables())
}

// WriteDir 写出 words.json（按词长降序）和 char_base.json（按字排序）
func (b *Builder) WriteDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	if err := writeOrdered(filepath.Join(dir, WordsFile), b.words, func(v interface{}) interface{} { return v }); err != nil {
		return err
	}
	return writeOrdered(filepath.Join(dir, CharsFile), b.chars, func(v interface{}) interface{} {
		return readings(v.(*treeset.Set))
	})
}

func readings(set *treeset.Set) []string {
	out := make([]string, 0, set.Size())
	for _, v := range set.Values() {
		out = append(out, v.(string))
	}
	return out
}

// writeOrdered 按 treemap 的迭代顺序写 JSON 对象，encoding 的 map 序列化会把键重新排序。
func writeOrdered(path string, m *treemap.Map, value func(interface{}) interface{}) error {
	var buf bytes.Buffer
	buf.WriteString("{")
	it := m.Iterator()
	first := true
	for it.Next() {
		k, err := json.Marshal(it.Key())
		if err != nil {
			return fmt.Errorf("encode key %v: %w", it.Key(), err)
		}
		v, err := json.Marshal(value(it.Value()))
		if err != nil {
			return fmt.Errorf("encode value of %s: %w", k, err)
		}
		if !first {
			buf.WriteString(",")
		}
		first = false
		buf.WriteString("\n  ")
		buf.Write(k)
		buf.WriteString(": ")
		buf.Write(v)
	}
	if !first {
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
