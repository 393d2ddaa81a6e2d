package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"lecture-companion/internal/ingest"
	"lecture-companion/internal/lecture"
	"lecture-companion/internal/worker"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import lecture transcripts",
}

var importYouTubeCmd = &cobra.Command{
	Use:   "youtube <url>...",
	Short: "Import the captions of YouTube videos as lessons",
	Long:  "Fetches the captions of each video and stores them as a lesson under --subject. The lesson name defaults to the video title.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, _ := cmd.Flags().GetString("subject")
		lesson, _ := cmd.Flags().GetString("lesson")
		workers, _ := cmd.Flags().GetInt("workers")
		if lesson != "" && len(args) > 1 {
			return fmt.Errorf("--lesson can only be used with a single URL")
		}

		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		importer := ingest.NewYouTubeImporter(e.lectures, e.log)
		pool := worker.NewPool(workers, e.log)
		return importVideos(cmd.Context(), cmd.OutOrStdout(), pool, importer, args, subject, lesson)
	},
}

func init() {
	importYouTubeCmd.Flags().String("subject", "", "Subject to file the lessons under (required)")
	importYouTubeCmd.Flags().String("lesson", "", "Lesson name for a single video (defaults to the video title)")
	importYouTubeCmd.Flags().Int("workers", 3, "Videos imported in parallel")
	importYouTubeCmd.MarkFlagRequired("subject")

	importCmd.AddCommand(importYouTubeCmd)
}

type videoImporter interface {
	Import(ctx context.Context, videoURL, subject, lesson string) (*ingest.Result, error)
}

func importVideos(ctx context.Context, out io.Writer, pool *worker.Pool, importer videoImporter, urls []string, subject, lesson string) error {
	imported := make([]*ingest.Result, len(urls))
	permanent := make([]error, len(urls))
	jobs := make([]worker.Job, len(urls))
	for i, u := range urls {
		i, u := i, u
		jobs[i] = worker.Job{ID: u, Run: func(ctx context.Context) error {
			res, err := importer.Import(ctx, u, subject, lesson)
			if isPermanent(err) {
				permanent[i] = err
				return nil
			}
			if err != nil {
				return err
			}
			imported[i] = res
			return nil
		}}
	}

	failed := 0
	for i, r := range pool.Run(ctx, jobs) {
		switch {
		case r.Err != nil:
			failed++
			fmt.Fprintf(out, "FAILED  %s: %v\n", r.ID, r.Err)
		case permanent[i] != nil:
			failed++
			fmt.Fprintf(out, "FAILED  %s: %v\n", r.ID, permanent[i])
		default:
			res := imported[i]
			fmt.Fprintf(out, "OK      %s -> %s / %s (%d characters)\n", res.VideoID, res.Subject, res.Lesson, res.Chars)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d imports failed", failed, len(urls))
	}
	return nil
}

// isPermanent reports whether retrying an import cannot help.
func isPermanent(err error) bool {
	return errors.Is(err, ingest.ErrInvalidURL) ||
		errors.Is(err, ingest.ErrNoTranscript) ||
		errors.Is(err, lecture.ErrInvalidName)
}
