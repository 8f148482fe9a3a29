// Package youtube uploads finished videos through the YouTube Data API.
package youtube

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/jonathan/talent-manager/internal/logging"
)

// defaultCategoryID is "Science & Technology".
const defaultCategoryID = "28"

// Uploader wraps the YouTube Data API videos.insert call.
type Uploader struct {
	service *youtube.Service
}

// NewUploader builds an uploader from an OAuth-authorized HTTP client. The
// client must carry the youtube.upload scope.
func NewUploader(ctx context.Context, authClient *http.Client) (*Uploader, error) {
	service, err := youtube.NewService(ctx, option.WithHTTPClient(authClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}
	return &Uploader{service: service}, nil
}

// NewUploaderFromCredentialsFile builds an uploader from a Google
// credentials JSON file, requesting the upload scope.
func NewUploaderFromCredentialsFile(ctx context.Context, path string) (*Uploader, error) {
	if path == "" {
		return nil, fmt.Errorf("credentials file path is required")
	}
	service, err := youtube.NewService(ctx,
		option.WithCredentialsFile(path),
		option.WithScopes(youtube.YoutubeUploadScope))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}
	return &Uploader{service: service}, nil
}

// NewUploaderWithService wraps an existing service, mainly for tests.
func NewUploaderWithService(service *youtube.Service) *Uploader {
	return &Uploader{service: service}
}

// UploadRequest describes one video upload.
type UploadRequest struct {
	VideoPath   string
	Title       string
	Description string
	Tags        []string

	// PrivacyStatus is "public", "unlisted", or "private" (default).
	PrivacyStatus string

	// CategoryID defaults to Science & Technology.
	CategoryID string
}

// Upload sends the video file and returns its watch URL.
func (u *Uploader) Upload(ctx context.Context, req UploadRequest) (string, error) {
	if req.VideoPath == "" {
		return "", fmt.Errorf("video path is required")
	}
	if req.Title == "" {
		return "", fmt.Errorf("video title is required")
	}

	privacy := req.PrivacyStatus
	if privacy == "" {
		privacy = "private"
	}
	categoryID := req.CategoryID
	if categoryID == "" {
		categoryID = defaultCategoryID
	}

	file, err := os.Open(req.VideoPath)
	if err != nil {
		return "", fmt.Errorf("failed to open video file: %w", err)
	}
	defer file.Close()

	video := &youtube.Video{
		Snippet: &youtube.VideoSnippet{
			Title:       req.Title,
			Description: req.Description,
			Tags:        req.Tags,
			CategoryId:  categoryID,
		},
		Status: &youtube.VideoStatus{
			PrivacyStatus: privacy,
		},
	}

	call := u.service.Videos.Insert([]string{"snippet", "status"}, video)
	uploaded, err := call.Media(file).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to upload video %s: %w", req.Title, err)
	}

	url := fmt.Sprintf("https://www.youtube.com/watch?v=%s", uploaded.Id)
	logging.Info("uploaded video", "title", req.Title, "url", url, "privacy", privacy)
	return url, nil
}
