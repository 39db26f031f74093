package glyph

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/image/font/opentype"

	"github.com/ironsheep/textsynth/internal/rng"
)

var fontExtensions = map[string]bool{
	".ttf": true,
	".otf": true,
	".ttc": true,
}

// Pool is a fixed set of font files with a size range.
//
// The file listing is taken once by NewPool. Parsed fonts are cached, so
// drawing repeatedly from the same pool only reads each file once.
type Pool struct {
	paths   []string
	minSize int
	maxSize int

	mu     sync.Mutex
	parsed map[string]*opentype.Font
}

// NewPool lists the font files directly under dir. Sizes are drawn from
// [minSize, maxSize).
func NewPool(dir string, minSize, maxSize int) (*Pool, error) {
	if minSize <= 0 || maxSize <= minSize {
		return nil, fmt.Errorf("invalid font size range [%d, %d)", minSize, maxSize)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list fonts: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !fontExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no font files in %s", dir)
	}
	sort.Strings(paths)

	return &Pool{
		paths:   paths,
		minSize: minSize,
		maxSize: maxSize,
		parsed:  make(map[string]*opentype.Font),
	}, nil
}

// Paths returns the font files of the pool.
func (p *Pool) Paths() []string {
	return append([]string(nil), p.paths...)
}

// Random picks a font file uniformly and a size uniformly in [minSize, maxSize).
func (p *Pool) Random(r *rand.Rand) (*Face, error) {
	path := p.paths[rng.Int(r, 0, len(p.paths))]
	size := rng.Int(r, p.minSize, p.maxSize)

	f, err := p.font(path)
	if err != nil {
		return nil, err
	}
	return NewFace(f, float64(size), filepath.Base(path))
}

func (p *Pool) font(path string) (*opentype.Font, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if f, ok := p.parsed[path]; ok {
		return f, nil
	}
	f, err := LoadFont(path)
	if err != nil {
		return nil, err
	}
	p.parsed[path] = f
	return f, nil
}
