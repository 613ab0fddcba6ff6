package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMDX = "sou1 tseu1\n" +
	"<p>sou1 tseu1</p><p>蘇州 （苏州）</p>\n" +
	"</>\n" +
	"aeq7\n" +
	"<p>aeq7</p><p>阿 （阿）</p>\n" +
	"</>\n" +
	"soq 7\n" +
	"<p>soq 7</p><p>速 （速）</p>\n" +
	"</>\n" +
	"a1\n" +
	"<p>a1</p><p>阿 （阿）</p>\n" +
	"</>\n" +
	"a1\n" +
	"<p>a1</p><p>啊 （啊）</p>\n" +
	"</>\n" +
	"sou1\n" +
	"no content line\n"

func writeInput(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "dict.mdx.txt")
	require.NoError(t, os.WriteFile(p, []byte(testMDX), 0o644))
	return p
}

func TestRun_SyllableMode(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out", "syllables.tsv")
	var stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"-input", writeInput(t), "-output", out}, &stderr), stderr.String())

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "wupin\tipa\n"+
		"a1\tɑ44\n"+
		"aeq7\taʔ43\n"+
		"soq7\tsoʔ43\n"+
		"sou1\tsəu44\n"+
		"tseu1\tʦøʏ44\n", string(b))
}

func TestRun_KeyMode(t *testing.T) {
	out := filepath.Join(t.TempDir(), "keys.tsv")
	var stderr bytes.Buffer
	args := []string{"-input", writeInput(t), "-output", out, "-mode", "key", "-tone", "none"}
	require.Equal(t, 0, run(args, &stderr), stderr.String())

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "wupin\tipa\n"+
		"a1\tɑ\n"+
		"aeq7\taʔ\n"+
		"soq 7\tsoʔ\n"+
		"sou1 tseu1\tsəu ʦøʏ\n", string(b))
}

func TestRun_BadFlags(t *testing.T) {
	var stderr bytes.Buffer
	assert.Equal(t, 2, run([]string{"-tone", "loud"}, &stderr))
	assert.Equal(t, 2, run([]string{"-mode", "line"}, &stderr))
}
