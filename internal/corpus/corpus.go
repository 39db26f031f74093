// Package corpus indexes the image collections that backgrounds and textures
// are cut from.
//
// An Index is built once from a directory listing and never changes
// afterwards. Pickers draw images from an index through a shared
// imaging.ImageCache so every corpus file is decoded at most once per run.
package corpus

import (
	"errors"
	"fmt"
	"image"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ironsheep/textsynth/internal/imaging"
	"github.com/ironsheep/textsynth/internal/rng"
)

// MaxAttempts bounds candidate searches over a corpus.
const MaxAttempts = 10

// ErrEmpty is returned when a listing finds no images.
var ErrEmpty = errors.New("corpus has no images")

// Listing selects how a corpus root is scanned.
type Listing int

const (
	// Flat lists the image files directly under the root.
	Flat Listing = iota
	// TwoLevel lists the image files of every subdirectory of the root.
	TwoLevel
)

// ParseListing maps "flat" and "two-level" to a Listing.
func ParseListing(s string) (Listing, error) {
	switch s {
	case "flat", "":
		return Flat, nil
	case "two-level":
		return TwoLevel, nil
	}
	return Flat, fmt.Errorf("unknown corpus listing %q", s)
}

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

// Index is an immutable, sorted list of image paths.
type Index struct {
	root  string
	paths []string
}

// NewIndex scans root according to listing. Hidden files and files without an
// image extension are skipped.
func NewIndex(root string, listing Listing) (*Index, error) {
	var dirs []string
	switch listing {
	case Flat:
		dirs = []string{root}
	case TwoLevel:
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, fmt.Errorf("failed to list corpus %s: %w", root, err)
		}
		for _, e := range entries {
			if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
				dirs = append(dirs, filepath.Join(root, e.Name()))
			}
		}
	default:
		return nil, fmt.Errorf("unknown corpus listing %d", listing)
	}

	var paths []string
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to list corpus %s: %w", dir, err)
		}
		for _, e := range entries {
			name := e.Name()
			if e.IsDir() || strings.HasPrefix(name, ".") {
				continue
			}
			if !imageExtensions[strings.ToLower(filepath.Ext(name))] {
				continue
			}
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%s: %w", root, ErrEmpty)
	}
	sort.Strings(paths)

	return &Index{root: root, paths: paths}, nil
}

// Root returns the scanned directory.
func (ix *Index) Root() string { return ix.root }

// Len returns the number of indexed images.
func (ix *Index) Len() int { return len(ix.paths) }

// Paths returns a copy of the indexed paths.
func (ix *Index) Paths() []string {
	return append([]string(nil), ix.paths...)
}

// Random returns a uniformly chosen path.
func (ix *Index) Random(r *rand.Rand) string {
	return ix.paths[rng.Int(r, 0, len(ix.paths))]
}

// Picker yields candidate images for background and texture searches.
// Errors are not fatal to callers; they consume one attempt.
type Picker interface {
	Pick(r *rand.Rand) (image.Image, error)
}

// ImagePicker picks images from an Index and decodes them through a cache.
type ImagePicker struct {
	index *Index
	cache *imaging.ImageCache
}

// NewImagePicker creates a picker over ix. A nil cache gets a private one.
func NewImagePicker(ix *Index, cache *imaging.ImageCache) *ImagePicker {
	if cache == nil {
		cache = imaging.NewImageCache()
	}
	return &ImagePicker{index: ix, cache: cache}
}

// Len returns the number of indexed images.
func (p *ImagePicker) Len() int { return p.index.Len() }

// Pick loads a uniformly chosen image of the index.
func (p *ImagePicker) Pick(r *rand.Rand) (image.Image, error) {
	return p.cache.Load(p.index.Random(r))
}

// MemoryPicker picks uniformly from images held in memory.
type MemoryPicker struct {
	images []image.Image
}

// NewMemoryPicker creates a picker over images.
func NewMemoryPicker(images ...image.Image) (*MemoryPicker, error) {
	if len(images) == 0 {
		return nil, ErrEmpty
	}
	return &MemoryPicker{images: images}, nil
}

// Pick returns one of the images.
func (p *MemoryPicker) Pick(r *rand.Rand) (image.Image, error) {
	return p.images[rng.Int(r, 0, len(p.images))], nil
}

// Open builds an ImagePicker for root with the named listing.
func Open(root, listing string, cache *imaging.ImageCache) (*ImagePicker, error) {
	l, err := ParseListing(listing)
	if err != nil {
		return nil, err
	}
	ix, err := NewIndex(root, l)
	if err != nil {
		return nil, err
	}
	return NewImagePicker(ix, cache), nil
}
