package face

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"PRESENSI/controllers/response"
	"PRESENSI/repository"
	"PRESENSI/services"
)

type Dataset interface {
	Upload(ctx context.Context, in services.UploadInput) (*services.UploadResult, error)
	Delete(ctx context.Context, name string) (*services.DeleteResult, error)
	ListFaces(ctx context.Context) ([]repository.FaceCount, error)
	Reindex(ctx context.Context) (*services.ReindexResult, error)
}

type Controller struct {
	dataset Dataset
	log     zerolog.Logger
}

func NewController(dataset Dataset, log zerolog.Logger) *Controller {
	return &Controller{dataset: dataset, log: log}
}

// UploadDatasetHandler menyimpan satu gambar wajah ke dataset intern lalu
// memperbarui centroid-nya.
func (ctl *Controller) UploadDatasetHandler(c *gin.Context) {
	image, filename, err := response.ReadFormFile(c, "file")
	if err != nil {
		response.Error(c, ctl.log, err)
		return
	}

	res, err := ctl.dataset.Upload(c.Request.Context(), services.UploadInput{
		Name:     c.PostForm("name"),
		Instansi: c.PostForm("instansi"),
		Kategori: c.PostForm("kategori"),
		Filename: filename,
		Image:    image,
	})
	if err != nil {
		response.Error(c, ctl.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":          "success",
		"message":         fmt.Sprintf("Gambar tersimpan di folder %s.", res.Name),
		"intern_id":       res.InternId,
		"already_indexed": res.AlreadyIndexed,
	})
}

func (ctl *Controller) ListFacesHandler(c *gin.Context) {
	faces, err := ctl.dataset.ListFaces(c.Request.Context())
	if err != nil {
		response.Error(c, ctl.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "faces": faces})
}

func (ctl *Controller) DeleteFaceHandler(c *gin.Context) {
	name := c.Param("name")

	res, err := ctl.dataset.Delete(c.Request.Context(), name)
	if err != nil {
		response.Error(c, ctl.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": fmt.Sprintf("Data wajah '%s' berhasil dihapus. Vektor: %d dihapus.", name, res.DeletedEmbeddings),
	})
}

// ReloadDBHandler menghitung ulang semua centroid.
func (ctl *Controller) ReloadDBHandler(c *gin.Context) {
	res, err := ctl.dataset.Reindex(c.Request.Context())
	if err != nil {
		response.Error(c, ctl.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "success",
		"message":     "Database wajah berhasil dimuat ulang",
		"total_faces": res.TotalFaces,
		"updated":     len(res.Report.Updated),
		"failed":      len(res.Report.Failed),
	})
}
