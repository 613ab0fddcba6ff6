// Package ipa 将通用吴拼（苏州话）音节转写为国际音标。
//
// 转写规则固定：声母按最长前缀切分，韵母先查入声表、再查舒声表，
// 不认识的韵母剥掉 i-/u- 介音后递归。声调可选不输出、本调或变调。
// 所有表在进程内只读，可并发使用。
package ipa

import (
	"errors"
	"fmt"
	"strings"
)

// Unresolved 无法转写时的占位结果
const Unresolved = "?"

// ErrUnknownToneMode 声调模式不是 none/base/sandhi
var ErrUnknownToneMode = errors.New("unknown tone mode")

// ToneMode 声调输出方式
type ToneMode int

const (
	ToneSandhi ToneMode = iota // 有变调用变调，否则用本调
	ToneBase
	ToneNone
)

func (m ToneMode) String() string {
	switch m {
	case ToneNone:
		return "none"
	case ToneBase:
		return "base"
	default:
		return "sandhi"
	}
}

// ParseToneMode 解析声调模式，空串视为 sandhi。
func ParseToneMode(s string) (ToneMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sandhi":
		return ToneSandhi, nil
	case "base":
		return ToneBase, nil
	case "none":
		return ToneNone, nil
	}
	return ToneSandhi, fmt.Errorf("%w: %q (want none, base or sandhi)", ErrUnknownToneMode, s)
}

// Transcription 带诊断信息的转写结果
type Transcription struct {
	IPA    string
	Parsed ParsedToken
	// Approximate 为 true 表示用到了非标准的保守映射，或声母未在表中而原样透传
	Approximate bool
}

// RimeToIPA 韵母转写（不含声母和声调）。
func RimeToIPA(rime string) (string, bool) {
	s, ok := rimeToIPA(rime)
	return s.ipa, ok
}

func rimeToIPA(rime string) (symbol, bool) {
	if rime == "" {
		return symbol{}, true
	}
	if s, ok := checkedRimeTable[rime]; ok {
		return s, true
	}
	if s, ok := openRimeTable[rime]; ok {
		return s, true
	}
	// 介音递归，每层剥掉一个字符
	if rime[0] == 'i' || rime[0] == 'u' {
		sub, ok := rimeToIPA(rime[1:])
		if !ok {
			return symbol{}, false
		}
		return symbol{ipa: rime[:1] + sub.ipa, approx: sub.approx}, true
	}
	return symbol{}, false
}

// SplitOnsetRime 按最长匹配切分声母和韵母；没有声母时 onset 为空。
func SplitOnsetRime(body string) (onset, rime string) {
	for _, o := range onsetsLongestFirst {
		if strings.HasPrefix(body, o) {
			return o, body[len(o):]
		}
	}
	return "", body
}

// BodyToIPA 音节体（不含声调）→ IPA。含数字的音节体视为粘连损坏，返回 false。
func BodyToIPA(body string) (string, bool) {
	s, ok := bodyToIPA(body)
	return s.ipa, ok
}

func bodyToIPA(body string) (symbol, bool) {
	if body == "" {
		return symbol{}, true
	}
	if hasDigit(body) {
		return symbol{}, false
	}

	// y- 零声母：按普通话拼音 y 规则改写成 i/iu 韵母，前加 ɦ
	if body == "y" {
		return rimeToIPA(body)
	}
	if strings.HasPrefix(body, "y") {
		rest := body[1:]
		pseudo := rest
		if !strings.HasPrefix(rest, "i") {
			pseudo = "i" + rest
		}
		r, ok := rimeToIPA(pseudo)
		if !ok {
			return symbol{}, false
		}
		return symbol{ipa: "ɦ" + r.ipa, approx: r.approx}, true
	}

	onset, rime := SplitOnsetRime(body)
	r, ok := rimeToIPA(rime)
	if !ok {
		return symbol{}, false
	}
	o := lookupOnset(onset)
	return symbol{ipa: o.ipa + r.ipa, approx: o.approx || r.approx}, true
}

// Transcribe 转写单个 token 并返回诊断信息。
func Transcribe(token string, mode ToneMode) Transcription {
	parsed := ParseToken(token)
	body, ok := bodyToIPA(strings.TrimSpace(parsed.Body))
	if !ok || body.ipa == "" {
		return Transcription{IPA: Unresolved, Parsed: parsed}
	}

	var tone string
	switch mode {
	case ToneNone:
	case ToneBase:
		tone = parsed.BaseTone
	default:
		tone = parsed.SandhiTone
		if tone == "" {
			tone = parsed.BaseTone
		}
	}

	return Transcription{
		IPA:         body.ipa + ChaoTone(tone),
		Parsed:      parsed,
		Approximate: body.approx,
	}
}

// TokenToIPA 单个 token 转写为 IPA，无法识别时返回 "?"。
func TokenToIPA(token string, mode ToneMode) string {
	return Transcribe(token, mode).IPA
}
