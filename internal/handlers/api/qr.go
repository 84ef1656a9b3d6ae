package api

import (
	"net/http"
	"strings"

	"github.com/KirkDiggler/secretmafia/internal/services/session"
	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

const qrSize = 256

// joinLink is what a scanned code opens
func (h *Handler) joinLink(code string) string {
	if h.publicURL == "" {
		return code
	}
	return strings.TrimRight(h.publicURL, "/") + "/join/" + code
}

// joinCodeQR renders a room code as a PNG so others can scan their way in
func (h *Handler) joinCodeQR(c *gin.Context) {
	code := session.NormalizeCode(c.Param("code"))
	if !session.IsValidCode(code) {
		h.fail(c, session.ErrInvalidCode)
		return
	}

	png, err := qrcode.Encode(h.joinLink(code), qrcode.Medium, qrSize)
	if err != nil {
		h.logger.Error("Failed to encode QR code", zap.String("code", code), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error", "message": "Could not create the QR code."})
		return
	}

	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "image/png", png)
}
