package helpers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nadiraputri/seruput/internal/data"
)

type UploadConfig struct {
	MaxSizeBytes     int64
	AllowedMimeTypes []string
	TempBasePath     string
}

var DefaultImageUploadConfig = UploadConfig{
	MaxSizeBytes: 5 * 1024 * 1024, // 5MB
	AllowedMimeTypes: []string{
		"image/jpeg",
		"image/png",
		"image/gif",
		"image/webp",
	},
	TempBasePath: os.TempDir(),
}

// ReceiveUpload checks size and sniffed mime type, parks the upload in a
// temporary file and returns the descriptor the picture store consumes. The
// stored name is derived from the generated filename plus the mime subtype.
func ReceiveUpload(c *gin.Context, fileHeader *multipart.FileHeader, configs ...UploadConfig) (*data.UploadedFile, error) {
	config := DefaultImageUploadConfig
	if len(configs) > 0 {
		config = configs[0]
	}

	if fileHeader.Size > config.MaxSizeBytes {
		return nil, fmt.Errorf("file size exceeds maximum limit of %d MB", config.MaxSizeBytes/(1024*1024))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	buffer := make([]byte, 512)
	if _, err := src.Read(buffer); err != nil {
		return nil, err
	}
	mimeType := http.DetectContentType(buffer)

	mimeTypeAllowed := false
	for _, allowedType := range config.AllowedMimeTypes {
		if mimeType == allowedType {
			mimeTypeAllowed = true
			break
		}
	}
	if !mimeTypeAllowed {
		return nil, fmt.Errorf("invalid file type. Allowed types: %v", config.AllowedMimeTypes)
	}

	filename := uuid.New().String()
	tempPath := filepath.Join(config.TempBasePath, filename+".upload")
	if err := c.SaveUploadedFile(fileHeader, tempPath); err != nil {
		return nil, err
	}

	return &data.UploadedFile{
		Path:     tempPath,
		MimeType: mimeType,
		Filename: filename,
	}, nil
}
