package writer

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"

	"github.com/ironsheep/textsynth/internal/config"
	"github.com/ironsheep/textsynth/internal/imaging"
)

// Writer stores the samples of one text.
type Writer interface {
	WriteSamples(ctx context.Context, text string, samples []*image.NRGBA) error
	Close() error
}

// Encoding selects the stored image format.
type Encoding struct {
	// Format is "jpg" or "png".
	Format  string
	Quality int
}

// Ext returns the file extension for the format, including the dot.
func (e Encoding) Ext() string { return "." + e.Format }

func (e Encoding) encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, e.Format, e.Quality); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DirWriter writes one file per sample into a directory.
type DirWriter struct {
	root string
	enc  Encoding
	now  func() time.Time
}

// NewDirWriter creates root if needed.
func NewDirWriter(root string, enc Encoding) (*DirWriter, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &DirWriter{root: root, enc: enc, now: time.Now}, nil
}

// Root returns the output directory.
func (w *DirWriter) Root() string { return w.root }

// WriteSamples writes every sample to {root}/{name}.{ext}.
func (w *DirWriter) WriteSamples(ctx context.Context, text string, samples []*image.NRGBA) error {
	for i, img := range samples {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := w.writeFile(text, i, img); err != nil {
			return err
		}
	}
	return nil
}

func (w *DirWriter) writeFile(text string, i int, img *image.NRGBA) (string, error) {
	data, err := w.enc.encode(img)
	if err != nil {
		return "", fmt.Errorf("encode sample %d of %q: %w", i, text, err)
	}
	path := filepath.Join(w.root, SampleName(text, i, w.now())+w.enc.Ext())
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write sample: %w", err)
	}
	return path, nil
}

// Close implements Writer.
func (w *DirWriter) Close() error { return nil }

// RedisWriter stores encoded samples in Redis under prefix + sample name.
//
// When a preview directory is set, sample 0 of every text is also written
// there as a file for eyeballing the dataset.
type RedisWriter struct {
	client  redis.UniversalClient
	prefix  string
	enc     Encoding
	preview *DirWriter
	now     func() time.Time
}

// NewRedisWriter wraps client. previewDir may be empty.
func NewRedisWriter(client redis.UniversalClient, prefix, previewDir string, enc Encoding) (*RedisWriter, error) {
	w := &RedisWriter{client: client, prefix: prefix, enc: enc, now: time.Now}
	if previewDir != "" {
		p, err := NewDirWriter(previewDir, enc)
		if err != nil {
			return nil, err
		}
		w.preview = p
	}
	return w, nil
}

// WriteSamples stores all samples of text in one MULTI/EXEC transaction.
func (w *RedisWriter) WriteSamples(ctx context.Context, text string, samples []*image.NRGBA) error {
	if len(samples) == 0 {
		return nil
	}
	if w.preview != nil {
		if _, err := w.preview.writeFile(text, 0, samples[0]); err != nil {
			return err
		}
	}

	values := make(map[string][]byte, len(samples))
	for i, img := range samples {
		data, err := w.enc.encode(img)
		if err != nil {
			return fmt.Errorf("encode sample %d of %q: %w", i, text, err)
		}
		values[w.Key(text, i)] = data
	}

	_, err := w.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for key, data := range values {
			pipe.Set(ctx, key, data, 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("store samples of %q: %w", text, err)
	}
	return nil
}

// Key returns the Redis key of sample i of text.
func (w *RedisWriter) Key(text string, i int) string {
	return w.prefix + SampleName(text, i, w.now())
}

// Close closes the Redis client.
func (w *RedisWriter) Close() error { return w.client.Close() }

// New builds the sink selected by cfg.Sink and checks that it is reachable.
func New(ctx context.Context, cfg config.Base, logger *log.Logger) (Writer, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	enc := Encoding{Format: cfg.Format, Quality: cfg.JPEGQuality}

	switch cfg.Sink {
	case "dir":
		logger.Debug("writing samples to directory", "root", cfg.Root)
		return NewDirWriter(cfg.Root, enc)
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		logger.Debug("writing samples to redis", "addr", cfg.RedisAddr, "prefix", cfg.RedisPrefix, "preview", cfg.Root)
		w, err := NewRedisWriter(client, cfg.RedisPrefix, cfg.Root, enc)
		if err != nil {
			client.Close()
			return nil, err
		}
		return w, nil
	}
	return nil, fmt.Errorf("%w: unknown sink %q", config.ErrInvalid, cfg.Sink)
}
