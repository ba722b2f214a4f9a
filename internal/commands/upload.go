package commands

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/diogo/biotutor/internal/models"
)

func newUploadCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a file for the tutor to index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpload(deps, args[0])
		},
	}
}

// runUpload sends one file. Any backend response counts as indexed; only a
// transport failure or an unreadable file is reported as a failure.
func runUpload(deps *Dependencies, path string) error {
	gw, err := deps.gateway()
	if err != nil {
		return err
	}
	defer gw.Close()

	name := filepath.Base(path)
	prog := startProgress(deps, true, "Uploading "+name)
	receipt, err := gw.SubmitFile(path)
	if err != nil {
		prog.fail()
		deps.Logger.Warn("upload failed", zap.String("file", name), zap.Error(err))
		fmt.Fprintln(deps.Stdout, models.UploadFailedText)
		fmt.Fprintln(deps.Stderr, formatErrorMessage(err, "Upload failed"))
		return errReported
	}
	prog.success("Uploaded")

	fmt.Fprintln(deps.Stdout, models.IndexedNotice(name))

	if deps.Settings.Verbose && receipt != nil {
		dim := lipgloss.NewStyle().Foreground(colorTextDim)
		fmt.Fprintln(deps.Stderr, dim.Render(fmt.Sprintf("[verbose] status %d", receipt.StatusCode)))
		if receipt.Preview != "" {
			fmt.Fprintln(deps.Stderr, dim.Render("[verbose] "+receipt.Preview))
		}
	}
	return nil
}
