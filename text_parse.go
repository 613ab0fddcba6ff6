package main

import (
	"regexp"
	"unicode"
)

var (
	// 预编译中文正则，含扩展 A/B 区（OpenCC 需要处理这些字）
	reChinese = regexp.MustCompile(`[\x{4e00}-\x{9fff}\x{3400}-\x{4dbf}\x{20000}-\x{2a6df}]`)

	// 标点符号快速查找表
	punctMap = make(map[rune]struct{})
)

// CharType 字符类别
type CharType string

const (
	TypeChinese     CharType = "chinese"
	TypeLatin       CharType = "latin" // 包含空格
	TypeNumber      CharType = "number"
	TypePunctuation CharType = "punctuation"
	TypeOther       CharType = "other"
)

func init() {
	allPunctuation := `!"#$%&'()*+,-./:;<=>?@[\]^_` + "`{|}~。，、；：？！…—·ˉ¨々～‖∶＂＇｀｜〃〔〕〈〉《》「」『』．“”‘’（）【】〚〛〘〙‹›«»※￥－＊／＝＼＾＿｛｝"
	for _, r := range allPunctuation {
		punctMap[r] = struct{}{}
	}
}

// TextSegment 同类字符组成的连续片段
type TextSegment struct {
	Type    CharType
	Content string
}

// getCharType 判定字符类型
func getCharType(r rune) CharType {
	if reChinese.MatchString(string(r)) {
		return TypeChinese
	}
	if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || unicode.IsSpace(r) {
		return TypeLatin
	}
	if r >= '0' && r <= '9' {
		return TypeNumber
	}
	if _, ok := punctMap[r]; ok || unicode.IsPunct(r) || unicode.IsSymbol(r) {
		return TypePunctuation
	}
	return TypeOther
}

// SplitText 将中文、拉丁字母、数字、符号分离成顺序片段
func SplitText(input string) []TextSegment {
	runes := []rune(input)
	if len(runes) == 0 {
		return nil
	}

	var segments []TextSegment
	start := 0
	current := getCharType(runes[0])

	for i := 1; i < len(runes); i++ {
		t := getCharType(runes[i])
		if t != current {
			segments = append(segments, TextSegment{Type: current, Content: string(runes[start:i])})
			current = t
			start = i
		}
	}

	// 闭合最后一段
	segments = append(segments, TextSegment{Type: current, Content: string(runes[start:])})
	return segments
}
