package publish

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

const (
	maxTitleWords  = 10
	maxTitleLength = 100
)

// Metadata describes a published short.
type Metadata struct {
	Title       string
	Description string
	Tags        []string
	CategoryID  string
}

// YouTube publishes merged shorts. Authentication uses a service-account file;
// token handling stays inside the Google client libraries.
type YouTube struct {
	service *youtube.Service
}

func NewYouTube(ctx context.Context, serviceAccountFile string) (*YouTube, error) {
	data, err := os.ReadFile(serviceAccountFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read service account file: %w", err)
	}

	cfg, err := google.JWTConfigFromJSON(data, youtube.YoutubeUploadScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse service account: %w", err)
	}

	service, err := youtube.NewService(ctx, option.WithHTTPClient(cfg.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("unable to create YouTube service: %w", err)
	}

	return &YouTube{service: service}, nil
}

// Upload pushes the video file and returns the YouTube video id.
func (y *YouTube) Upload(videoPath string, metadata Metadata) (string, error) {
	file, err := os.Open(videoPath)
	if err != nil {
		return "", fmt.Errorf("failed to open video file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat video file: %w", err)
	}

	log.Printf("Uploading %s (%.2f MB)", videoPath, float64(info.Size())/(1024*1024))

	video := &youtube.Video{
		Snippet: &youtube.VideoSnippet{
			Title:       metadata.Title,
			Description: metadata.Description,
			Tags:        metadata.Tags,
			CategoryId:  metadata.CategoryID,
		},
		Status: &youtube.VideoStatus{
			PrivacyStatus:           "public",
			SelfDeclaredMadeForKids: false,
		},
	}

	call := y.service.Videos.Insert([]string{"snippet", "status"}, video)
	call = call.Media(file)

	response, err := call.Do()
	if err != nil {
		return "", fmt.Errorf("failed to upload video: %w", err)
	}

	log.Printf("Uploaded: https://youtube.com/shorts/%s", response.Id)
	return response.Id, nil
}

// MetadataFromCaption derives upload metadata when the caller supplies none:
// the title is the opening words of the caption text.
func MetadataFromCaption(text string) Metadata {
	words := strings.Fields(text)
	if len(words) > maxTitleWords {
		words = words[:maxTitleWords]
	}

	title := strings.Join(words, " ")
	if len(title) > maxTitleLength {
		title = title[:maxTitleLength-3] + "..."
	}

	return Metadata{
		Title:       title,
		Description: title + "\n\n#shorts #viral",
		Tags:        []string{"shorts", "viral", "ai video"},
		CategoryID:  "24",
	}
}
