package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Recognizer reads the text of one sample file.
type Recognizer interface {
	RecognizeFile(path string) (string, error)
}

// Tesseract recognizes single text lines with the Tesseract engine.
type Tesseract struct {
	// Language is a Tesseract language code such as "eng" or "tur".
	Language string
}

// RecognizeFile runs OCR on the image file at path.
func (t Tesseract) RecognizeFile(path string) (string, error) {
	client, err := t.client()
	if err != nil {
		return "", err
	}
	defer client.Close()

	if err := client.SetImage(path); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}
	return text(client)
}

// Recognize runs OCR on an in-memory image.
func (t Tesseract) Recognize(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}

	client, err := t.client()
	if err != nil {
		return "", err
	}
	defer client.Close()

	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}
	return text(client)
}

func (t Tesseract) client() (*gosseract.Client, error) {
	client := gosseract.NewClient()
	lang := t.Language
	if lang == "" {
		lang = "eng"
	}
	if err := client.SetLanguage(lang); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_LINE); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set page segmentation mode: %w", err)
	}
	return client, nil
}

func text(client *gosseract.Client) (string, error) {
	out, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}
	return strings.TrimSpace(out), nil
}
