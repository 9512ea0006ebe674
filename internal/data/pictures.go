package data

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/nadiraputri/seruput/internal/apperrors"
)

// UploadedFile describes a file a caller has already received and parked in a
// temporary location.
type UploadedFile struct {
	Path     string
	MimeType string
	Filename string
}

// PictureStore moves uploaded pictures into the public assets directory and
// removes superseded ones. Record documents store the returned relative paths.
type PictureStore struct {
	root string
	log  zerolog.Logger
}

// NewPictureStore creates a PictureStore rooted at root. The pictures
// subdirectory is created on first save.
func NewPictureStore(root string, log zerolog.Logger) *PictureStore {
	return &PictureStore{root: root, log: log.With().Str("component", "pictures").Logger()}
}

// SaveUpload copies the temporary file into the assets directory, deletes the
// temporary file and returns the stored relative path. The destination name is
// derived from the upload's filename plus the extension in its mime type.
func (p *PictureStore) SaveUpload(file UploadedFile) (string, error) {
	raw, err := os.ReadFile(file.Path)
	if err != nil {
		return "", apperrors.Wrap(apperrors.KindAssetWrite, "could not read uploaded file", err)
	}

	ext := file.MimeType
	if i := strings.LastIndex(file.MimeType, "/"); i >= 0 {
		ext = file.MimeType[i+1:]
	}
	name := fmt.Sprintf("%s.%s", file.Filename, ext)
	relative := filepath.ToSlash(filepath.Join("pictures", name))
	destination := filepath.Join(p.root, "pictures", name)

	if err := os.MkdirAll(filepath.Dir(destination), 0o755); err != nil {
		return "", apperrors.Wrap(apperrors.KindAssetWrite, "could not create pictures directory", err)
	}
	if err := os.WriteFile(destination, raw, 0o644); err != nil {
		return "", apperrors.Wrap(apperrors.KindAssetWrite, "could not write picture", err)
	}
	if err := os.Remove(file.Path); err != nil {
		return "", apperrors.Wrap(apperrors.KindAssetWrite, "could not remove temporary file", err)
	}

	p.log.Debug().Str("path", relative).Msg("stored uploaded picture")
	return relative, nil
}

// Remove deletes the asset at the stored relative path. Callers invoke it only
// after the owning record's update has been persisted.
func (p *PictureStore) Remove(relative string) error {
	if relative == "" {
		return nil
	}
	full := filepath.Join(p.root, filepath.FromSlash(relative))
	if err := os.Remove(full); err != nil {
		return apperrors.Wrap(apperrors.KindAssetCleanup, fmt.Sprintf("could not delete old picture at %s", relative), err)
	}
	return nil
}

// Exists reports whether the stored relative path points at an existing file.
// An empty path is allowed and means "no picture".
func (p *PictureStore) Exists(relative string) error {
	if relative == "" {
		return nil
	}
	full := filepath.Join(p.root, filepath.FromSlash(relative))
	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		return apperrors.Newf(apperrors.KindValidation, "file %s does not exist", relative)
	}
	return nil
}
