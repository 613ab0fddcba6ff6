package ipa

import (
	"slices"
	"strings"
)

// symbol 是转写表中的一项。approx 标记词典中极少出现、并非标准 IPA 的保守映射。
type symbol struct {
	ipa    string
	approx bool
}

// toneCategoryToChao 类别声调 → 五度调值（由词典内置 IPA 统计归纳）
// 4 调覆盖不足，保留原值
var toneCategoryToChao = map[string]string{
	"1": "44",
	"2": "223",
	"3": "51",
	"5": "523",
	"6": "231",
	"7": "43",
	"8": "23",
}

// 声母表
var onsetTable = map[string]symbol{
	"tsh": {ipa: "ʦʰ"},
	"ts":  {ipa: "ʦ"},
	"th":  {ipa: "tʰ"},
	"t":   {ipa: "t"},
	"ph":  {ipa: "pʰ"},
	"p":   {ipa: "p"},
	"b":   {ipa: "b"},
	"m":   {ipa: "m"},
	"f":   {ipa: "f"},
	"v":   {ipa: "v"},
	"d":   {ipa: "d"},
	"n":   {ipa: "n"},
	"l":   {ipa: "l"},
	"kh":  {ipa: "kʰ"},
	"k":   {ipa: "k"},
	"g":   {ipa: "g"},
	"ng":  {ipa: "ŋ"},
	"h":   {ipa: "x"},
	"gh":  {ipa: "ɦ"},
	"ch":  {ipa: "ʨʰ"},
	"c":   {ipa: "ʨ"},
	"j":   {ipa: "ʥ"},
	"sh":  {ipa: "ɕ"},
	"gn":  {ipa: "ȵ"},
	"s":   {ipa: "s"},
	"z":   {ipa: "z"},
	// w- 零声母：ɦu + 韵母
	"w": {ipa: "ɦu"},
	// 低频/非标准串，原样输出
	"dz": {ipa: "dz", approx: true},
	"fh": {ipa: "fh", approx: true},
	"pp": {ipa: "pp", approx: true},
	"cn": {ipa: "cn", approx: true},
}

// 舒声韵
var openRimeTable = map[string]symbol{
	"a": {ipa: "ɑ"},
	"e": {ipa: "ᴇ"},
	"i": {ipa: "i"},
	"o": {ipa: "o"},
	"u": {ipa: "u"},
	"y": {ipa: "ɿ"},

	"au":  {ipa: "æ"},
	"eu":  {ipa: "øʏ"},
	"ie":  {ipa: "iɪ"},
	"iu":  {ipa: "y"},
	"oe":  {ipa: "ø"},
	"ou":  {ipa: "əu"},
	"yu":  {ipa: "ʮ"},
	"ieu": {ipa: "iʏ"},

	"an":  {ipa: "ã"},
	"aon": {ipa: "ɑ̃"},
	"oan": {ipa: "ɑ̃"},
	"en":  {ipa: "ən"},
	"in":  {ipa: "in"},
	"on":  {ipa: "oŋ"},
	"iun": {ipa: "yn"},

	"er": {ipa: "əl"},
}

// 入声韵，q/h 两种记号等价
var checkedRimeTable = map[string]symbol{
	"aeq":  {ipa: "aʔ"},
	"aeh":  {ipa: "aʔ"},
	"aq":   {ipa: "ɑʔ"},
	"ah":   {ipa: "ɑʔ"},
	"eq":   {ipa: "əʔ"},
	"eh":   {ipa: "əʔ"},
	"iq":   {ipa: "iəʔ"},
	"ih":   {ipa: "iəʔ"},
	"oq":   {ipa: "oʔ"},
	"oh":   {ipa: "oʔ"},
	"iuq":  {ipa: "yəʔ"},
	"iueh": {ipa: "yəʔ"},
	"yh":   {ipa: "ɿʔ", approx: true},
	"yq":   {ipa: "ɿʔ", approx: true},
}

// onsetsLongestFirst 声母按长度降序，长度相同按字典序，保证切分结果稳定
var onsetsLongestFirst = func() []string {
	keys := make([]string, 0, len(onsetTable))
	for k := range onsetTable {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int {
		if len(a) != len(b) {
			return len(b) - len(a)
		}
		return strings.Compare(a, b)
	})
	return keys
}()

// ChaoTone 把单个类别声调 1-8 换成五度调值；其余输入视为调值原样返回。
func ChaoTone(digits string) string {
	if len(digits) == 1 {
		if v, ok := toneCategoryToChao[digits]; ok {
			return v
		}
	}
	return digits
}

// lookupOnset 查声母；表中没有的拼写原样透传并标记为近似。
func lookupOnset(onset string) symbol {
	if s, ok := onsetTable[onset]; ok {
		return s
	}
	return symbol{ipa: onset, approx: onset != ""}
}
