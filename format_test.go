package main

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wupin-golang/converter"
	"wupin-golang/ipa"
)

var testSegments = []converter.Segment{
	{Text: "苏州", Pinyin: "sou1 tseu1", IsWord: true},
	{Text: "阿", Pinyin: "a1", Alternatives: []string{"a1", "aeq7"}},
	{Text: ",", Pinyin: ","},
	{Text: "吴", Pinyin: converter.Unknown},
}

func TestFormatText_Joined(t *testing.T) {
	got, err := FormatSegments(testSegments, FormatOptions{Separator: " "})
	require.NoError(t, err)
	assert.Equal(t, "sou1 tseu1 a1 , ?", got)

	got, err = FormatSegments(testSegments, FormatOptions{Format: FormatText, Separator: "|"})
	require.NoError(t, err)
	assert.Equal(t, "sou1 tseu1|a1|,|?", got)
}

func TestFormatText_Verbose(t *testing.T) {
	got, err := FormatSegments(testSegments, FormatOptions{Verbose: true})
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"苏州: sou1 tseu1",
		"阿:   a1 [a1/aeq7]",
		",:    ,",
		"吴:   ?",
	}, "\n"), got)
}

func TestFormatText_IPA(t *testing.T) {
	got, err := FormatSegments(testSegments, FormatOptions{Alternatives: true, IPA: true, Tone: ipa.ToneSandhi})
	require.NoError(t, err)
	lines := strings.Split(got, "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "苏州: səu44 ʦøʏ44", lines[0])
	assert.Equal(t, "阿:   ɑ44 [ɑ44/aʔ43]", lines[1])
	assert.Equal(t, ",:    ,", lines[2])
	assert.Equal(t, "吴:   ?", lines[3])
}

func TestFormatText_Color(t *testing.T) {
	got, err := FormatSegments(testSegments[3:], FormatOptions{Color: true})
	require.NoError(t, err)
	assert.Equal(t, "\033[31m?\033[0m", got)
}

func TestFormatJSON(t *testing.T) {
	got, err := FormatSegments(testSegments, FormatOptions{Format: FormatJSON, IPA: true, Tone: ipa.ToneNone})
	require.NoError(t, err)

	var records []map[string]any
	require.NoError(t, json.Unmarshal([]byte(got), &records))
	require.Len(t, records, 4)

	assert.Equal(t, "苏州", records[0]["text"])
	assert.Equal(t, true, records[0]["is_word"])
	assert.Equal(t, "səu ʦøʏ", records[0]["ipa"])
	assert.NotContains(t, records[0], "alternatives")

	assert.Equal(t, []any{"a1", "aeq7"}, records[1]["alternatives"])
	assert.Equal(t, []any{"ɑ", "aʔ"}, records[1]["alternatives_ipa"])

	assert.Equal(t, ",", records[2]["ipa"])
	assert.Equal(t, "?", records[3]["ipa"])
	assert.NotContains(t, records[3], "mandarin")
}

func TestFormatYAML(t *testing.T) {
	got, err := FormatSegments(testSegments[:2], FormatOptions{Format: FormatYAML})
	require.NoError(t, err)

	var records []segmentRecord
	require.NoError(t, yaml.Unmarshal([]byte(got), &records))
	assert.Equal(t, []segmentRecord{
		{Text: "苏州", Pinyin: "sou1 tseu1", IsWord: true},
		{Text: "阿", Pinyin: "a1", Alternatives: []string{"a1", "aeq7"}},
	}, records)
	assert.NotContains(t, got, "ipa")
}

func TestFormat_Unknown(t *testing.T) {
	_, err := FormatSegments(testSegments, FormatOptions{Format: "xml"})
	assert.Error(t, err)
}

func TestLooksLikeWupin(t *testing.T) {
	assert.True(t, looksLikeWupin("sou1"))
	assert.False(t, looksLikeWupin(""))
	assert.False(t, looksLikeWupin("?"))
	assert.False(t, looksLikeWupin("，"))
	assert.False(t, looksLikeWupin("OK"))
}

func TestMandarinReading(t *testing.T) {
	assert.Empty(t, MandarinReading("OK, 123"))

	got := MandarinReading("中文")
	assert.NotEmpty(t, got)
	assert.NotContains(t, got, "中")
}
