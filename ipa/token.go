package ipa

import "strings"

// ParsedToken 单个吴拼音节 token 的解析结果。
type ParsedToken struct {
	Raw        string
	Body       string // 字母 + 入声记号 q/h
	BaseTone   string
	SandhiTone string // 最后一个 [..] 中的数字
	Neutral    bool   // 末尾轻声 0
}

// ParseToken 解析 token：
//   - 变调 [..]，取最后一个括号内的数字
//   - 轻声：去括号后末尾的 0
//   - 本调：剩余部分末尾连续数字
//
// 解析不会失败，缺少声调信息时对应字段为空。
func ParseToken(token string) ParsedToken {
	raw := strings.TrimSpace(token)
	if raw == "" {
		return ParsedToken{Raw: token}
	}

	rest, sandhi := stripBracketTones(raw)

	neutral := len(rest) > 1 && strings.HasSuffix(rest, "0")
	if neutral {
		rest = rest[:len(rest)-1]
	}

	i := len(rest)
	for i > 0 && isDigit(rest[i-1]) {
		i--
	}

	return ParsedToken{
		Raw:        raw,
		Body:       rest[:i],
		BaseTone:   rest[i:],
		SandhiTone: sandhi,
		Neutral:    neutral,
	}
}

// stripBracketTones 删除所有 [数字] 组，返回剩余文本与最后一组的数字。
// 括号内不是纯数字（或为空）时原样保留。
func stripBracketTones(s string) (string, string) {
	if !strings.Contains(s, "[") {
		return s, ""
	}
	var b strings.Builder
	last := ""
	for i := 0; i < len(s); {
		if s[i] == '[' {
			j := i + 1
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			if j > i+1 && j < len(s) && s[j] == ']' {
				last = s[i+1 : j]
				i = j + 1
				continue
			}
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String(), last
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func hasDigit(s string) bool {
	for i := 0; i < len(s); i++ {
		if isDigit(s[i]) {
			return true
		}
	}
	return false
}
