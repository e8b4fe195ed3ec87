package handlers

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"forumx/internal/db"
	"forumx/internal/models"
	"forumx/internal/utils"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
)

type ImageHandler struct {
	client *http.Client
}

func NewImageHandler() *ImageHandler {
	return &ImageHandler{
		client: &http.Client{Timeout: 20 * time.Second},
	}
}

const maxProxyWidth = 1600

// Serve proxies a stored image through our origin, optionally resized.
// GET /img/:id?w=400&q=75. Responses are immutable, so the cache
// lifetime is a year.
func (h *ImageHandler) Serve(c *gin.Context) {
	imageID := utils.StringToInt(c.Param("id"))

	var image models.PostImage
	if err := db.DB.First(&image, imageID).Error; err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	resp, err := h.client.Get(image.ImageURL)
	if err != nil {
		c.Status(http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		c.Status(http.StatusBadGateway)
		return
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 20<<20))
	if err != nil {
		c.Status(http.StatusBadGateway)
		return
	}

	width := utils.StringToInt(c.Query("w"))
	quality := utils.StringToInt(c.Query("q"))
	if quality <= 0 || quality > 100 {
		quality = 80
	}

	c.Header("Cache-Control", "public, max-age=31536000, immutable")

	// No resize requested: pass the original through untouched.
	if width <= 0 {
		contentType := resp.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		c.Data(http.StatusOK, contentType, raw)
		return
	}
	if width > maxProxyWidth {
		width = maxProxyWidth
	}

	decoded, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		// Not something we can decode; serve as-is.
		c.Data(http.StatusOK, resp.Header.Get("Content-Type"), raw)
		return
	}

	if decoded.Bounds().Dx() > width {
		decoded = imaging.Resize(decoded, width, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, decoded, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("Content-Length", fmt.Sprint(buf.Len()))
	c.Data(http.StatusOK, "image/jpeg", buf.Bytes())
}
