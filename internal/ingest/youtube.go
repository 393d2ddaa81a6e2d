// Package ingest pulls lecture transcripts from external sources into a
// lecture store.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	ytapi "github.com/hightemp/youtube-transcript-api-go/api"
	yt "github.com/kkdai/youtube/v2"

	"lecture-companion/internal/lecture"
	"lecture-companion/internal/logger"
)

var (
	ErrInvalidURL   = errors.New("invalid YouTube URL")
	ErrNoTranscript = errors.New("no subtitles available")
)

// TranscriptFetcher returns the caption text of a video.
type TranscriptFetcher interface {
	Transcript(ctx context.Context, videoID string) (string, error)
}

// TitleFetcher returns a video's title.
type TitleFetcher interface {
	Title(ctx context.Context, videoID string) (string, error)
}

type YouTubeImporter struct {
	transcripts TranscriptFetcher
	titles      TitleFetcher
	writer      lecture.Writer
	log         *logger.Logger
}

type Result struct {
	VideoID string
	Subject string
	Lesson  string
	Chars   int
}

func NewYouTubeImporter(writer lecture.Writer, log *logger.Logger) *YouTubeImporter {
	return &YouTubeImporter{
		transcripts: newCaptionSource(),
		titles:      newMetadataSource(),
		writer:      writer,
		log:         log,
	}
}

// Import stores the transcript of videoURL as subject/lesson. When lesson is
// empty the video title is used.
func (i *YouTubeImporter) Import(ctx context.Context, videoURL, subject, lesson string) (*Result, error) {
	if !lecture.ValidName(subject) {
		return nil, lecture.ErrInvalidName
	}

	videoID, err := yt.ExtractVideoID(videoURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	if lesson == "" {
		title, err := i.titles.Title(ctx, videoID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch video title: %w", err)
		}
		lesson = LessonName(title)
		if lesson == "" {
			lesson = videoID
		}
	}
	if !lecture.ValidName(lesson) {
		return nil, lecture.ErrInvalidName
	}

	text, err := i.transcripts.Transcript(ctx, videoID)
	if err != nil {
		return nil, err
	}

	if err := i.writer.Save(ctx, subject, lesson, text); err != nil {
		return nil, err
	}

	i.log.Info("imported lecture", "video_id", videoID, "subject", subject, "lesson", lesson, "chars", len(text))
	return &Result{VideoID: videoID, Subject: subject, Lesson: lesson, Chars: len(text)}, nil
}

// LessonName turns a video title into a usable lesson name.
func LessonName(title string) string {
	r := strings.NewReplacer("/", "-", `\`, "-", "\x00", "")
	name := strings.Join(strings.Fields(r.Replace(title)), " ")
	if name == "." || name == ".." {
		return ""
	}
	return name
}

var captionLanguages = []string{"en", "en-US", "en-GB", "ar"}

type captionSource struct {
	api *ytapi.YouTubeTranscriptApi
}

func newCaptionSource() *captionSource {
	return &captionSource{api: ytapi.NewYouTubeTranscriptApi()}
}

func (s *captionSource) Transcript(ctx context.Context, videoID string) (string, error) {
	transcript, err := s.api.GetTranscript(videoID, captionLanguages)
	if err != nil {
		// Any language is better than none.
		transcript, err = s.api.GetTranscript(videoID, nil)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrNoTranscript, err)
		}
	}

	var fullText strings.Builder
	for _, entry := range transcript.Entries {
		text := strings.TrimSpace(entry.Text)
		if text == "" {
			continue
		}
		fullText.WriteString(text)
		fullText.WriteString(" ")
	}

	cleaned := strings.TrimSpace(fullText.String())
	if cleaned == "" {
		return "", fmt.Errorf("%w: subtitle track is empty", ErrNoTranscript)
	}
	return cleaned, nil
}

type metadataSource struct {
	client *yt.Client
}

func newMetadataSource() *metadataSource {
	return &metadataSource{client: &yt.Client{}}
}

func (s *metadataSource) Title(ctx context.Context, videoID string) (string, error) {
	video, err := s.client.GetVideoContext(ctx, videoID)
	if err != nil {
		return "", err
	}
	return video.Title, nil
}
