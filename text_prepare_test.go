package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wupin-golang/lexicon"
)

// fakeT2S 按字表替换，不依赖 OpenCC 字典文件
type fakeT2S map[rune]rune

func (f fakeT2S) Convert(s string) (string, error) {
	return strings.Map(func(r rune) rune {
		if to, ok := f[r]; ok {
			return to
		}
		return r
	}, s), nil
}

type failingT2S struct{}

func (failingT2S) Convert(string) (string, error) { return "", errors.New("boom") }

func TestPrepare_Passthrough(t *testing.T) {
	p, err := NewPreparer(PrepareOptions{})
	require.NoError(t, err)

	got, err := p.Prepare("蘇州 2024")
	require.NoError(t, err)
	assert.Equal(t, "蘇州 2024", got)
}

func TestPrepare_Traditional(t *testing.T) {
	p := &Preparer{
		opts: PrepareOptions{Traditional: true},
		t2s:  fakeT2S{'蘇': '苏', '話': '话'},
	}
	got, err := p.Prepare("蘇州話, OK 12")
	require.NoError(t, err)
	assert.Equal(t, "苏州话, OK 12", got)
}

func TestPrepare_TraditionalError(t *testing.T) {
	p := &Preparer{opts: PrepareOptions{Traditional: true}, t2s: failingT2S{}}
	_, err := p.Prepare("蘇州")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "t2s")
}

func TestPrepare_Numbers(t *testing.T) {
	p, err := NewPreparer(PrepareOptions{Numbers: true})
	require.NoError(t, err)

	got, err := p.Prepare("3个人")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(got, "个人"), got)
	for _, r := range got {
		assert.True(t, lexicon.IsCJK(r), "unexpected %q in %q", r, got)
	}
}

func TestNumberToChinese_Overflow(t *testing.T) {
	huge := "123456789012345678901234567890"
	assert.Equal(t, huge, numberToChinese(huge))
}
