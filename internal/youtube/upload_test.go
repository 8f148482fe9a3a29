package youtube

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpload_RequiresVideoPath(t *testing.T) {
	u := &Uploader{}

	_, err := u.Upload(context.Background(), UploadRequest{Title: "A title"})
	assert.Error(t, err)
}

func TestUpload_RequiresTitle(t *testing.T) {
	u := &Uploader{}

	_, err := u.Upload(context.Background(), UploadRequest{VideoPath: "/tmp/video.mp4"})
	assert.Error(t, err)
}
