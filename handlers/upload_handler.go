package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"Dealership/images"
	"Dealership/storage"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxUploadSize = 10 << 20

var uploadBuckets = map[string]bool{
	images.CarBucket:     true,
	images.TradeInBucket: true,
}

func isValidImageExtensions(file *multipart.FileHeader) bool {
	allowExtensions := []string{".jpg", ".jpeg", ".png", ".webp"}
	fileExt := strings.ToLower(filepath.Ext(file.Filename))
	for _, allowExt := range allowExtensions {
		if fileExt == allowExt {
			return true
		}
	}
	return false
}

// makeUniqueFileName keeps only the validated extension of the client's
// file name; the rest may hold characters that break the public URL.
func makeUniqueFileName(file *multipart.FileHeader) string {
	fileExt := strings.ToLower(filepath.Ext(file.Filename))
	id := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("public/%d-%s%s", time.Now().UnixMilli(), id, fileExt)
}

// UploadImageHandler stores one multipart "image" in the bucket named by
// the path and returns its public URL.
func UploadImageHandler(c *gin.Context, client storage.Client, logger *zap.Logger) {
	bucketName := c.Param("bucket")
	if !uploadBuckets[bucketName] {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  StatusFailed,
			"message": "Unknown bucket",
		})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  StatusFailed,
			"message": "Missing image file",
			"error":   err.Error(),
		})
		return
	}

	if !isValidImageExtensions(file) || file.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  StatusFailed,
			"message": "Images must be .jpg, .jpeg, .png or .webp and at most 10MB",
		})
		return
	}

	src, err := file.Open()
	if err != nil {
		respondError(c, logger, err, "Failed to read image")
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		respondError(c, logger, err, "Failed to read image")
		return
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  StatusFailed,
			"message": "File content is not an image",
		})
		return
	}

	bucket := client.Bucket(bucketName)
	path := makeUniqueFileName(file)
	err = bucket.Upload(c.Request.Context(), path, data, storage.UploadOptions{ContentType: mtype.String()})
	if err != nil {
		respondError(c, logger, err, "Failed to upload image")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  StatusSuccess,
		"message": "Image uploaded successfully",
		"url":     bucket.PublicURL(path),
	})
}
