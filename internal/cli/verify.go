package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ironsheep/textsynth/internal/ocr"
)

type verifyOpts struct {
	dir    string
	lang   string
	report string
}

// newVerifyCmd creates the verify command, which reads written samples back
// with Tesseract to check that the dataset stays legible.
func newVerifyCmd() *cobra.Command {
	opts := verifyOpts{lang: "eng"}

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "OCR written samples and report character accuracy",
		Long: `Verify runs Tesseract over every sample file in a directory and compares the
recognized text with the label encoded in the file name.`,
		Example: `  textsynth verify --dir out --lang tur
  textsynth verify --dir out --report report.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.dir, "dir", "d", "", "sample directory")
	cmd.Flags().StringVarP(&opts.lang, "lang", "l", opts.lang, "Tesseract language code")
	cmd.Flags().StringVar(&opts.report, "report", "", "write the per-file report as JSON to this file")
	_ = cmd.MarkFlagRequired("dir")

	return cmd
}

func runVerify(cmd *cobra.Command, opts verifyOpts) error {
	logger := loggerFromContext(cmd.Context())
	prog := newProgress(logger)

	report, err := ocr.Verify(opts.dir, ocr.Tesseract{Language: opts.lang}, logger)
	if err != nil {
		return err
	}
	return finishVerify(cmd, opts, report, prog)
}

func finishVerify(cmd *cobra.Command, opts verifyOpts, report *ocr.Report, prog *progress) error {
	if opts.report != "" {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.report, data, 0o644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "files: %d\nrecognized: %d\nexact: %d\nmean accuracy: %.4f\n",
		len(report.Results), report.Recognized, report.Exact, report.MeanAccuracy)
	prog.done("Verified samples", "dir", opts.dir)
	return nil
}
