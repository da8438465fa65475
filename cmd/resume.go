package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dkoval/hirematch/internal/cache"
	"github.com/dkoval/hirematch/internal/logger"
	"github.com/dkoval/hirematch/internal/preview"
	"github.com/dkoval/hirematch/internal/talentwire"
	"github.com/dkoval/hirematch/internal/upload"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const previewLimit = 2000

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Upload, list, and preview resumes",
}

var resumeUploadCmd = &cobra.Command{
	Use:   "upload [file]...",
	Short: "Upload resume files in one batch",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		log := newLogger()

		client, _, err := newClient(log)
		if err != nil {
			log.Fatal("building the client", zap.Error(err))
		}

		files := make([]talentwire.UploadFile, 0, len(args))
		opened := make([]*os.File, 0, len(args))
		defer func() {
			for _, f := range opened {
				f.Close()
			}
		}()

		for _, path := range args {
			f, err := os.Open(path)
			if err != nil {
				log.Fatal("opening resume file", zap.String("path", path), zap.Error(err))
			}
			opened = append(opened, f)
			files = append(files, talentwire.UploadFile{Name: filepath.Base(path), Reader: f})
		}

		resumes := cache.New("resumes", client.ListResumes, log)
		coordinator := upload.NewCoordinator(client, resumes, log)

		outcome, err := coordinator.Upload(cmd.Context(), files)
		if err != nil {
			if errors.Is(err, upload.ErrNoFiles) {
				log.Fatal("no files to upload")
			}
			log.Fatal("uploading resumes", zap.Error(err))
		}

		fmt.Printf("Uploaded %d of %d file(s).\n", outcome.UploadedCount, len(files))
		for _, failure := range outcome.Failures {
			fmt.Printf("  failed: %s (%s)\n", failure.Filename, failure.Reason)
		}

		if resumes.Loaded() {
			fmt.Printf("Server now holds %d resume(s).\n", resumes.Len())
		}
	},
}

var resumeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List uploaded resumes",
	Run: func(cmd *cobra.Command, _ []string) {
		log := newLogger()

		client, _, err := newClient(log)
		if err != nil {
			log.Fatal("building the client", zap.Error(err))
		}

		resumes, err := client.ListResumes(cmd.Context())
		if err != nil {
			log.Fatal("listing resumes", zap.Error(err))
		}

		if len(resumes) == 0 {
			fmt.Println("No resumes uploaded yet.")
			return
		}

		for _, r := range resumes {
			fmt.Printf("%s  %s  (%s)\n", r.ID, r.Filename, r.CreatedAt)
		}
	},
}

var resumePreviewCmd = &cobra.Command{
	Use:   "preview [id]",
	Short: "Fetch the extracted text of one resume",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		log := newLogger()

		client, _, err := newClient(log)
		if err != nil {
			log.Fatal("building the client", zap.Error(err))
		}

		loader := preview.NewLoader(client, log)

		text, err := loader.Load(cmd.Context(), args[0])
		if err != nil {
			log.Fatal("loading resume text", zap.Error(err))
		}

		fmt.Printf("--- %s ---\n%s\n", text.Filename, logger.TruncateForLog(text.Text, previewLimit))
	},
}

func init() {
	rootCmd.AddCommand(resumeCmd)
	resumeCmd.AddCommand(resumeUploadCmd)
	resumeCmd.AddCommand(resumeListCmd)
	resumeCmd.AddCommand(resumePreviewCmd)
}
