package absen

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"PRESENSI/controllers/response"
	"PRESENSI/services"
)

type Recognizer interface {
	Recognize(ctx context.Context, in services.RecognizeInput) (*services.Decision, error)
}

type AttendanceReporter interface {
	Today(ctx context.Context) ([]services.TodayEntry, error)
	ResetToday(ctx context.Context) (int64, error)
}

type Controller struct {
	engine     Recognizer
	attendance AttendanceReporter
	log        zerolog.Logger
}

func NewController(engine Recognizer, attendance AttendanceReporter, log zerolog.Logger) *Controller {
	return &Controller{engine: engine, attendance: attendance, log: log}
}

// RecognizeHandler menerima frame kamera kiosk (multipart "file") dan jenis
// absensi ("type_absensi": IN/OUT).
func (ctl *Controller) RecognizeHandler(c *gin.Context) {
	// 1. Validasi jenis absensi sebelum membaca gambar
	typeAbsensi := c.PostForm("type_absensi")
	if typeAbsensi == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid type_absensi. Must be 'IN' or 'OUT'."})
		return
	}

	// 2. Ambil gambar
	image, _, err := response.ReadFormFile(c, "file")
	if err != nil {
		response.Error(c, ctl.log, err)
		return
	}

	// 3. Putusan absensi
	decision, err := ctl.engine.Recognize(c.Request.Context(), services.RecognizeInput{
		Image:     image,
		Direction: typeAbsensi,
	})
	if err != nil {
		response.Error(c, ctl.log, err)
		return
	}

	c.JSON(http.StatusOK, decision)
}

// TodayHandler mengembalikan log terakhir setiap intern hari ini.
func (ctl *Controller) TodayHandler(c *gin.Context) {
	entries, err := ctl.attendance.Today(c.Request.Context())
	if err != nil {
		response.Error(c, ctl.log, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (ctl *Controller) ResetHandler(c *gin.Context) {
	deleted, err := ctl.attendance.ResetToday(c.Request.Context())
	if err != nil {
		response.Error(c, ctl.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":        "success",
		"message":       fmt.Sprintf("Berhasil mereset log absensi hari ini. Total %d log dihapus.", deleted),
		"deleted_count": deleted,
	})
}
