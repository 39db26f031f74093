// Package ocr checks the legibility of generated samples with Tesseract.
//
// Samples carry their label in the file name, so a directory written by the
// dir sink can be read back, recognized and scored without a separate label
// file. Verify reports per-file results and the mean character accuracy,
// where the accuracy of one file is 1 - levenshtein(label, ocr) / max(len).
// A low mean usually means the augmentation is too aggressive for the fonts
// in use.
//
// # Prerequisites
//
// Tesseract must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr
//   - macOS: brew install tesseract
//
// Language data files are required for each language:
//   - Ubuntu/Debian: apt-get install tesseract-ocr-tur (for Turkish)
//   - Other languages: tesseract-ocr-<lang> packages
//
// Samples are single text lines, so Tesseract runs in single-line page
// segmentation mode.
package ocr
