package ipa

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// FragmentKind 整行 key 切出的片段类型
type FragmentKind int

const (
	FragWord FragmentKind = iota
	FragSpace
	FragComma
	FragDigits // 以数字开头的词片段，可能是被空格拆开的声调
)

// Fragment key 中的一个片段
type Fragment struct {
	Kind FragmentKind
	Text string
}

func (f Fragment) isDelimiter() bool {
	return f.Kind == FragSpace || f.Kind == FragComma
}

// Lex 第一遍：把整行 key 切成空白、逗号和词片段，分隔符原样保留。
func Lex(key string) []Fragment {
	var frags []Fragment
	for i := 0; i < len(key); {
		r, size := utf8.DecodeRuneInString(key[i:])
		switch {
		case r == ',':
			frags = append(frags, Fragment{Kind: FragComma, Text: ","})
			i += size
		case unicode.IsSpace(r):
			j := i + size
			for j < len(key) {
				r2, s2 := utf8.DecodeRuneInString(key[j:])
				if !unicode.IsSpace(r2) {
					break
				}
				j += s2
			}
			frags = append(frags, Fragment{Kind: FragSpace, Text: key[i:j]})
			i = j
		default:
			j := i + size
			for j < len(key) {
				r2, s2 := utf8.DecodeRuneInString(key[j:])
				if r2 == ',' || unicode.IsSpace(r2) {
					break
				}
				j += s2
			}
			kind := FragWord
			if isDigit(key[i]) {
				kind = FragDigits
			}
			frags = append(frags, Fragment{Kind: kind, Text: key[i:j]})
			i = j
		}
	}
	return frags
}

// Merge 第二遍：修正词典里“声调数字被空格拆开”的 key（如 "soq 7"）。
// 数字片段前的空白被丢弃；数字片段紧跟在音节之后时并入该音节，
// 前面是逗号、空白或行首时保持独立。
func Merge(frags []Fragment) []Fragment {
	merged := make([]Fragment, 0, len(frags))
	for i, f := range frags {
		if f.Text == "" {
			continue
		}
		if f.Kind == FragSpace && i+1 < len(frags) && frags[i+1].Kind == FragDigits {
			continue
		}
		if f.Kind == FragDigits && len(merged) > 0 && !merged[len(merged)-1].isDelimiter() {
			merged[len(merged)-1].Text += f.Text
			continue
		}
		merged = append(merged, f)
	}
	return merged
}

// KeyToIPA 整行 key（可含空格、逗号）逐 token 转写，保留分隔符，去掉首尾空白。
func KeyToIPA(key string, mode ToneMode) string {
	var b strings.Builder
	for _, f := range Merge(Lex(key)) {
		if f.isDelimiter() {
			b.WriteString(f.Text)
			continue
		}
		b.WriteString(TokenToIPA(f.Text, mode))
	}
	return strings.TrimSpace(b.String())
}

// Syllables 把 key 拆成音节 token，用于抽取去重。
// 按空格和逗号切分，以数字开头的 token 接到前一个后面，如 "soq 7" → ["soq7"]。
func Syllables(key string) []string {
	var out []string
	for _, tok := range strings.FieldsFunc(key, func(r rune) bool { return r == ' ' || r == ',' }) {
		if isDigit(tok[0]) && len(out) > 0 {
			out[len(out)-1] += tok
			continue
		}
		out = append(out, tok)
	}
	return out
}
