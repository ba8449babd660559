package services

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"PRESENSI/helper"
	"PRESENSI/models"
)

// CaptureURLPrefix is where the router serves the captures directory.
const CaptureURLPrefix = "/images"

// PhotoStore keeps kiosk captures and the per-intern dataset folders on disk.
type PhotoStore struct {
	facesDir    string
	capturesDir string
}

func NewPhotoStore(facesDir, capturesDir string) *PhotoStore {
	return &PhotoStore{facesDir: facesDir, capturesDir: capturesDir}
}

func (s *PhotoStore) CapturesDir() string {
	return s.capturesDir
}

// SaveCapture writes a kiosk frame as {YYYYmmdd_HHMMSS}_{name}_{TYPE}.jpg
// and returns the URL it is served under.
func (s *PhotoStore) SaveCapture(name string, direction models.Direction, at time.Time, image []byte) (string, error) {
	if err := os.MkdirAll(s.capturesDir, 0o755); err != nil {
		return "", fmt.Errorf("create captures dir: %w", err)
	}

	filename := fmt.Sprintf("%s_%s_%s.jpg", at.Format("20060102_150405"), helper.FileSlug(name), direction)
	if err := os.WriteFile(filepath.Join(s.capturesDir, filename), image, 0o644); err != nil {
		return "", fmt.Errorf("write capture: %w", err)
	}
	return CaptureURLPrefix + "/" + filename, nil
}

// DatasetPath returns faces_dir/<name>/<filename>. Names and file names that
// would escape the dataset folder are rejected.
func (s *PhotoStore) DatasetPath(name, filename string) (string, error) {
	if !safeSegment(name) {
		return "", fmt.Errorf("%w: name %q", ErrInvalidInput, name)
	}
	base := filepath.Base(filename)
	if filename == "" || !safeSegment(base) {
		return "", fmt.Errorf("%w: file name %q", ErrInvalidInput, filename)
	}
	return filepath.Join(s.facesDir, name, base), nil
}

func (s *PhotoStore) SaveDatasetImage(name, filename string, image []byte) (string, error) {
	path, err := s.DatasetPath(name, filename)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create dataset folder: %w", err)
	}
	if err := os.WriteFile(path, image, 0o644); err != nil {
		return "", fmt.Errorf("write dataset image: %w", err)
	}
	return path, nil
}

// RemoveDatasetFolder deletes the folder of an intern and reports whether it existed.
func (s *PhotoStore) RemoveDatasetFolder(name string) (bool, error) {
	if !safeSegment(name) {
		return false, fmt.Errorf("%w: name %q", ErrInvalidInput, name)
	}

	dir := filepath.Join(s.facesDir, name)
	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !info.IsDir() {
		return false, nil
	}
	if err := os.RemoveAll(dir); err != nil {
		return false, fmt.Errorf("remove dataset folder: %w", err)
	}
	return true, nil
}

func safeSegment(s string) bool {
	if s == "" || s == "." || s == ".." {
		return false
	}
	return !strings.ContainsAny(s, `/\`) && !strings.Contains(s, "\x00")
}
