package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"PRESENSI/config"
)

type Controller struct {
	cfg config.AuthConfig
	now func() time.Time
	log zerolog.Logger
}

func NewController(cfg config.AuthConfig, log zerolog.Logger) *Controller {
	return &Controller{cfg: cfg, now: time.Now, log: log}
}

type LoginPayload struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginHandler menukar username/password admin dengan token JWT.
func (ctl *Controller) LoginHandler(c *gin.Context) {
	var payload LoginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Input tidak valid: " + err.Error()})
		return
	}

	if ctl.cfg.AdminPasswordHash == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Login admin belum dikonfigurasi"})
		return
	}

	if payload.Username != ctl.cfg.AdminUsername ||
		bcrypt.CompareHashAndPassword([]byte(ctl.cfg.AdminPasswordHash), []byte(payload.Password)) != nil {
		ctl.log.Warn().Str("username", payload.Username).Msg("login admin gagal")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Username atau password salah"})
		return
	}

	now := ctl.now()
	expiresAt := now.Add(ctl.cfg.TokenTTL)
	claims := &config.JWTClaims{
		Username: payload.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   payload.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ctl.cfg.JWTKey)
	if err != nil {
		ctl.log.Error().Err(err).Msg("gagal membuat token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal membuat token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "expires_at": expiresAt})
}
