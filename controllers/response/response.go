// Package response holds the error mapping shared by the gin controllers.
package response

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"PRESENSI/services"
)

// MaxImageSize bounds uploaded frames and dataset images.
const MaxImageSize = 10 << 20

// Error writes the status matching err. Unknown errors are logged and become 500.
func Error(c *gin.Context, log zerolog.Logger, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidInput), errors.Is(err, services.ErrInvalidDirection):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNoFace):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Wajah tidak terdeteksi."})
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi masalah pada server"})
	}
}

// ReadFormFile returns the content and client file name of a multipart field.
func ReadFormFile(c *gin.Context, field string) ([]byte, string, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, "", fmt.Errorf("%w: file %q wajib diisi", services.ErrInvalidInput, field)
	}
	if header.Size > MaxImageSize {
		return nil, "", fmt.Errorf("%w: file terlalu besar", services.ErrInvalidInput)
	}

	f, err := header.Open()
	if err != nil {
		return nil, "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxImageSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("%w: file kosong", services.ErrInvalidInput)
	}
	return data, header.Filename, nil
}
