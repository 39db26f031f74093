// Package textgen produces the label texts that get rendered into samples.
//
// A Producer draws either a word from its word lists or a number. Words may
// be upper-cased with Turkish casing rules, so that "i" becomes "İ" and "ı"
// becomes "I", and may get one punctuation character added at the start, in
// the middle or at the end.
package textgen

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ironsheep/textsynth/internal/rng"
)

// ErrNoWords is returned when words are requested but no list entry fits.
var ErrNoWords = errors.New("no words within the maximum length")

// Characters inserted by the non-alphanumeric step.
var (
	BeginSymbols  = []string{"(", "-", "%", "$", "#", "[", "*", "{"}
	EndSymbols    = []string{")", "-", "%", "$", "#", "]", "*", "}", "!", "?"}
	MiddleSymbols = []string{"-", "_", "&"}
)

// Options holds the draw probabilities of a Producer.
type Options struct {
	MaxLength           int
	PWord               float64
	PLower10            float64
	PAllUpperCase       float64
	PFirstUpperCase     float64
	PAddNonAlphanumeric float64
}

// Producer draws label texts.
type Producer struct {
	opts  Options
	words []string
}

// New creates a producer over words. Words are trimmed, deduplicated and
// sorted, and only those of 1 to opts.MaxLength runes are kept.
func New(words []string, opts Options) (*Producer, error) {
	if opts.MaxLength < 1 {
		return nil, fmt.Errorf("max length must be positive, got %d", opts.MaxLength)
	}
	seen := make(map[string]struct{}, len(words))
	kept := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		n := utf8.RuneCountInString(w)
		if n == 0 || n > opts.MaxLength {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		kept = append(kept, w)
	}
	slices.Sort(kept)
	if len(kept) == 0 && opts.PWord > 0 {
		return nil, ErrNoWords
	}
	return &Producer{opts: opts, words: kept}, nil
}

// Load reads word lists, one word per line, and creates a producer over
// their union.
func Load(paths []string, opts Options) (*Producer, error) {
	var words []string
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open word list: %w", err)
		}
		list, err := ReadWords(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read word list %s: %w", path, err)
		}
		words = append(words, list...)
	}
	return New(words, opts)
}

// ReadWords returns the lines of r.
func ReadWords(r io.Reader) ([]string, error) {
	var words []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		words = append(words, sc.Text())
	}
	return words, sc.Err()
}

// Len returns the number of usable words.
func (p *Producer) Len() int { return len(p.words) }

// Text draws one label: a word with probability PWord, otherwise a number.
func (p *Producer) Text(r *rand.Rand) string {
	if len(p.words) > 0 && rng.Chance(r, p.opts.PWord) {
		return p.Augment(r, p.words[rng.Int(r, 0, len(p.words))])
	}
	return p.Number(r)
}

// Number draws a single digit with probability PLower10, otherwise a number
// in [10, 1e9).
func (p *Producer) Number(r *rand.Rand) string {
	if rng.Chance(r, p.opts.PLower10) {
		return strconv.Itoa(rng.Int(r, 0, 10))
	}
	return strconv.Itoa(rng.Int(r, 10, 1_000_000_000))
}

// Augment applies the casing and punctuation steps to word.
func (p *Producer) Augment(r *rand.Rand, word string) string {
	// A Caser keeps state between calls, so each call gets its own.
	upper := cases.Upper(language.Turkish)
	switch {
	case rng.Chance(r, p.opts.PAllUpperCase):
		word = upper.String(word)
	case rng.Chance(r, p.opts.PFirstUpperCase):
		first, size := utf8.DecodeRuneInString(word)
		word = upper.String(string(first)) + word[size:]
	}

	if !rng.Chance(r, p.opts.PAddNonAlphanumeric) {
		return word
	}
	switch u := r.Float64(); {
	case u < 0.33:
		return pick(r, BeginSymbols) + word
	case u <= 0.66:
		runes := []rune(word)
		mid := len(runes) / 2
		return string(runes[:mid]) + pick(r, MiddleSymbols) + string(runes[mid:])
	default:
		return word + pick(r, EndSymbols)
	}
}

func pick(r *rand.Rand, list []string) string {
	return list[rng.Int(r, 0, len(list))]
}
