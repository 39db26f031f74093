package ocr

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/ironsheep/textsynth/internal/writer"
)

// Result is the outcome for one sample file.
type Result struct {
	File     string  `json:"file"`
	Label    string  `json:"label"`
	Text     string  `json:"text"`
	Accuracy float64 `json:"accuracy"`
	Error    string  `json:"error,omitempty"`
}

// Report summarizes a verification run.
type Report struct {
	Results []Result `json:"results"`

	// Recognized counts files OCR succeeded on, Exact those read back
	// exactly. MeanAccuracy averages over recognized files.
	Recognized   int     `json:"recognized"`
	Exact        int     `json:"exact"`
	MeanAccuracy float64 `json:"mean_accuracy"`
}

var sampleExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}

// Verify recognizes every sample file directly under dir and compares the
// text with the label in its name. Files whose names are not sample names
// are skipped. OCR failures are recorded per file and do not stop the run.
func Verify(dir string, rec Recognizer, logger *log.Logger) (*Report, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read sample dir: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !sampleExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	report := &Report{Results: make([]Result, 0, len(names))}
	var total float64
	for _, name := range names {
		label, _, err := writer.ParseName(name)
		if err != nil {
			logger.Debug("skipping file", "file", name, "err", err)
			continue
		}
		res := Result{File: name, Label: label}
		got, err := rec.RecognizeFile(filepath.Join(dir, name))
		if err != nil {
			res.Error = err.Error()
			logger.Warn("OCR failed", "file", name, "err", err)
			report.Results = append(report.Results, res)
			continue
		}
		res.Text = got
		res.Accuracy = Accuracy(label, got)
		report.Recognized++
		if got == label {
			report.Exact++
		}
		total += res.Accuracy
		logger.Debug("verified", "file", name, "label", label, "text", got, "accuracy", res.Accuracy)
		report.Results = append(report.Results, res)
	}
	if report.Recognized > 0 {
		report.MeanAccuracy = total / float64(report.Recognized)
	}
	return report, nil
}

// Accuracy returns 1 - Levenshtein(want, got) / max(len(want), len(got))
// over runes. Two empty strings match perfectly.
func Accuracy(want, got string) float64 {
	a, b := []rune(want), []rune(got)
	n := max(len(a), len(b))
	if n == 0 {
		return 1
	}
	return 1 - float64(Levenshtein(a, b))/float64(n)
}

// Levenshtein returns the edit distance between a and b.
func Levenshtein(a, b []rune) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}
