package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/ironsheep/textsynth/internal/config"
	"github.com/ironsheep/textsynth/internal/ocr"
	"github.com/ironsheep/textsynth/internal/writer"
)

// execute runs the root command with args and returns stdout and the log output.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, logs bytes.Buffer
	root := NewRootCommand(&logs)
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&out)
	err := root.ExecuteContext(context.Background())
	return out.String(), logs.String(), err
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := NewRootCommand(&bytes.Buffer{})
	for _, name := range []string{"generate", "layout", "verify", "serve"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %s not registered", name)
		}
	}
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "", "--version")
	if err != nil {
		t.Fatalf("--version failed: %v", err)
	}
	want := fmt.Sprintf("textsynth %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
	if out != want {
		t.Errorf("version output = %q, want %q", out, want)
	}
}

func TestLayoutCommand(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		file string
		args []string
	}{
		{"png", "hi.png", []string{"--index"}},
		{"jpeg", "hi.jpg", []string{"--size", "24"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			args := append([]string{"layout", "--text", "Hi", "--out", path}, tt.args...)
			if _, _, err := execute(t, "", args...); err != nil {
				t.Fatalf("layout failed: %v", err)
			}

			f, err := os.Open(path)
			if err != nil {
				t.Fatalf("output not written: %v", err)
			}
			defer f.Close()
			if tt.name == "png" {
				_, err = png.Decode(f)
			} else {
				_, err = jpeg.Decode(f)
			}
			if err != nil {
				t.Errorf("output does not decode: %v", err)
			}
		})
	}
}

func TestLayoutCommand_Errors(t *testing.T) {
	out := filepath.Join(t.TempDir(), "x.png")
	tests := []struct {
		name string
		args []string
	}{
		{"missing text", []string{"layout", "--out", out}},
		{"missing font", []string{"layout", "--text", "a", "--out", out, "--font", "/nonexistent.ttf"}},
		{"bad format", []string{"layout", "--text", "a", "--out", strings.TrimSuffix(out, ".png") + ".gif"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := execute(t, "", tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

// writeRunConfig lays out a font dir, a word list and a config file for a
// small dir-sink run and returns the config path and output dir.
func writeRunConfig(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	fonts := filepath.Join(dir, "fonts")
	out := filepath.Join(dir, "out")
	words := filepath.Join(dir, "words.txt")
	if err := os.Mkdir(fonts, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(fonts, "go.ttf"), goregular.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(words, []byte("elma\narmut\nkiraz\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := fmt.Sprintf(`
[base]
root = %q
format = "png"
num_unique_text = 3
samples = [1, 1, 2]
seed = 5

[base.font]
dir = %q
min_size = 20
max_size = 24

[producer]
datasets = [%q]
p_add_non_alphanumeric = 0.0
`, out, fonts, words)
	path := filepath.Join(dir, "textsynth.toml")
	if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	return path, out
}

func TestGenerateCommand(t *testing.T) {
	cfgPath, out := writeRunConfig(t)

	_, logs, err := execute(t, "", "generate", "--config", cfgPath, "--count", "2")
	if err != nil {
		t.Fatalf("generate failed: %v\n%s", err, logs)
	}
	if !strings.Contains(logs, "Generated 4 samples for 2 texts") {
		t.Errorf("missing summary in logs:\n%s", logs)
	}

	entries, err := os.ReadDir(out)
	if err != nil {
		t.Fatalf("output dir not created: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("no samples written")
	}
	for _, e := range entries {
		if _, _, err := writer.ParseName(e.Name()); err != nil {
			t.Errorf("unexpected file %s: %v", e.Name(), err)
		}
		if filepath.Ext(e.Name()) != ".png" {
			t.Errorf("file %s is not a png", e.Name())
		}
	}
}

func TestGenerateCommand_Errors(t *testing.T) {
	cfgPath, _ := writeRunConfig(t)
	bad := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(bad, []byte("[base]\nunknown_key = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name        string
		args        []string
		wantInvalid bool
	}{
		{"missing config flag", []string{"generate"}, false},
		{"missing config file", []string{"generate", "--config", "/nonexistent.toml"}, false},
		{"unknown key", []string{"generate", "--config", bad}, true},
		{"negative count", []string{"generate", "--config", cfgPath, "--count", "-1"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, "", tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantInvalid && !strings.Contains(err.Error(), config.ErrInvalid.Error()) {
				t.Errorf("error %v should report an invalid configuration", err)
			}
		})
	}
}

func TestServeCommand(t *testing.T) {
	in := `{"jsonrpc":"2.0","id":1,"method":"initialize"}` + "\n" +
		`{"jsonrpc":"2.0","id":2,"method":"tools/list"}` + "\n"

	out, _, err := execute(t, in, "serve")
	if err != nil {
		t.Fatalf("serve failed: %v", err)
	}

	dec := json.NewDecoder(strings.NewReader(out))
	count := 0
	for dec.More() {
		var resp map[string]interface{}
		if err := dec.Decode(&resp); err != nil {
			t.Fatalf("bad response line: %v", err)
		}
		if resp["error"] != nil {
			t.Errorf("unexpected error response: %v", resp["error"])
		}
		count++
	}
	if count != 2 {
		t.Errorf("got %d responses, want 2", count)
	}
	if !strings.Contains(out, `"textsynth"`) {
		t.Errorf("initialize response missing server name: %s", out)
	}
}

func TestVerifyCommand_MissingDir(t *testing.T) {
	if _, _, err := execute(t, "", "verify", "--dir", filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing sample dir")
	}
}

func TestFinishVerify(t *testing.T) {
	var out, logs bytes.Buffer
	cmd := newVerifyCmd()
	cmd.SetOut(&out)
	reportPath := filepath.Join(t.TempDir(), "report.json")

	report := &ocr.Report{
		Results:      []ocr.Result{{File: "a.png", Label: "elma", Text: "elma", Accuracy: 1}, {File: "b.png", Label: "armut", Error: "unreadable"}},
		Recognized:   1,
		Exact:        1,
		MeanAccuracy: 1,
	}
	opts := verifyOpts{dir: "samples", report: reportPath}
	if err := finishVerify(cmd, opts, report, newProgress(newLogger(&logs, log.InfoLevel))); err != nil {
		t.Fatalf("finishVerify failed: %v", err)
	}

	want := "files: 2\nrecognized: 1\nexact: 1\nmean accuracy: 1.0000\n"
	if out.String() != want {
		t.Errorf("summary = %q, want %q", out.String(), want)
	}

	data, err := os.ReadFile(reportPath)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	var decoded ocr.Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("report is not JSON: %v", err)
	}
	if len(decoded.Results) != 2 || decoded.Results[1].Error != "unreadable" {
		t.Errorf("decoded report = %+v", decoded)
	}
}
