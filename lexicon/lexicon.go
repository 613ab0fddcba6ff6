// Package lexicon holds the Suzhou wupin dictionary tables: a word map
// (2+ characters → romanization) and a character map (character → readings,
// most common first). A Lexicon is immutable once constructed and may be
// shared by any number of goroutines.
package lexicon

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"unicode/utf8"

	"github.com/goccy/go-json"
)

const (
	WordsFile = "words.json"
	CharsFile = "char_base.json"
)

// ErrDataMissing is returned when a lexicon table file does not exist.
var ErrDataMissing = errors.New("lexicon data missing")

// Lexicon is a read-only view over the word and character tables.
type Lexicon struct {
	words      map[string]string
	chars      map[string][]string
	keys       []string // sorted word keys, for Suggest
	maxWordLen int
}

// New builds a Lexicon from copies of the given tables.
func New(words map[string]string, chars map[string][]string) *Lexicon {
	l := &Lexicon{
		words: make(map[string]string, len(words)),
		chars: make(map[string][]string, len(chars)),
		keys:  make([]string, 0, len(words)),
	}
	for w, r := range words {
		l.words[w] = r
		l.keys = append(l.keys, w)
		if n := utf8.RuneCountInString(w); n > l.maxWordLen {
			l.maxWordLen = n
		}
	}
	slices.Sort(l.keys)
	for c, rs := range chars {
		l.chars[c] = slices.Clone(rs)
	}
	return l
}

// WordReading returns the romanization of a multi-character word.
func (l *Lexicon) WordReading(word string) (string, bool) {
	r, ok := l.words[word]
	return r, ok && r != ""
}

// CharReadings returns every known reading of a single character, most
// common first. The returned slice is a copy; nil means unknown.
func (l *Lexicon) CharReadings(char string) []string {
	return slices.Clone(l.chars[char])
}

func (l *Lexicon) WordCount() int  { return len(l.words) }
func (l *Lexicon) CharCount() int  { return len(l.chars) }
func (l *Lexicon) MaxWordLen() int { return l.maxWordLen }

// Load decodes the two JSON tables.
func Load(words, chars io.Reader) (*Lexicon, error) {
	var w map[string]string
	if err := json.NewDecoder(words).Decode(&w); err != nil {
		return nil, fmt.Errorf("decode %s: %w", WordsFile, err)
	}
	var c map[string][]string
	if err := json.NewDecoder(chars).Decode(&c); err != nil {
		return nil, fmt.Errorf("decode %s: %w", CharsFile, err)
	}
	return New(w, c), nil
}

// LoadDir reads words.json and char_base.json from dir.
func LoadDir(dir string) (*Lexicon, error) {
	wf, err := openTable(dir, WordsFile)
	if err != nil {
		return nil, err
	}
	defer wf.Close()

	cf, err := openTable(dir, CharsFile)
	if err != nil {
		return nil, err
	}
	defer cf.Close()

	return Load(wf, cf)
}

func openTable(dir, name string) (*os.File, error) {
	path := filepath.Join(dir, name)
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s not found (generate it with: wubuild -input <dict.mdx.txt> -output %s)", ErrDataMissing, path, dir)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}
