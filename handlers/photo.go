package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"moveline/models"
	"moveline/services/order"
	"moveline/services/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PhotoHandler accepts photo uploads for the volume estimation step, stores
// the file and attaches it to the order.
type PhotoHandler struct {
	Svc     order.OrderService
	Storage storage.StorageService
	Logger  *zap.Logger
}

func NewPhotoHandler(svc order.OrderService, store storage.StorageService, logger *zap.Logger) *PhotoHandler {
	return &PhotoHandler{Svc: svc, Storage: store, Logger: logger}
}

// UploadPhoto handles a multipart photo upload. The stored file's URL becomes
// the photo preview.
func (h *PhotoHandler) UploadPhoto(c *gin.Context) {
	file, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required", "details": err.Error()})
		return
	}

	tmpPath := filepath.Join(os.TempDir(), fmt.Sprintf("upload-%s%s", c.Param("sessionID"), filepath.Ext(file.Filename)))
	if err := c.SaveUploadedFile(file, tmpPath); err != nil {
		h.Logger.Error("Failed to save uploaded photo", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save uploaded file"})
		return
	}
	defer os.Remove(tmpPath)

	ctx := c.Request.Context()
	publicID, err := h.Storage.UploadFile(ctx, tmpPath, "order-photos")
	if err != nil {
		h.Logger.Error("Photo storage upload failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to store photo"})
		return
	}
	previewURL, err := h.Storage.GetDownloadURL(ctx, publicID)
	if err != nil {
		h.Logger.Error("Failed to build photo URL", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to store photo"})
		return
	}

	photo := models.UploadedPhoto{
		ID:       publicID,
		FileName: file.Filename,
		Preview:  previewURL,
	}
	sess, err := h.Svc.AddPhoto(ctx, c.Param("sessionID"), photo)
	if err != nil {
		// The photo is orphaned in storage if this fails; clean it up.
		if delErr := h.Storage.DeleteFile(ctx, publicID); delErr != nil {
			h.Logger.Warn("Failed to clean up orphaned photo", zap.String("publicID", publicID), zap.Error(delErr))
		}
		status := http.StatusInternalServerError
		if order.CodeOf(err) == order.CodeSessionNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessionID":  sess.SessionID,
		"generation": sess.Generation,
		"order":      sess.Order,
		"quote":      order.CalculatePrice(sess.Order),
	})
}

// DeletePhoto removes a photo from the order and from storage.
func (h *PhotoHandler) DeletePhoto(c *gin.Context) {
	ctx := c.Request.Context()
	photoID := c.Param("photoID")

	sess, err := h.Svc.RemovePhoto(ctx, c.Param("sessionID"), photoID)
	if err != nil {
		status := http.StatusInternalServerError
		if order.CodeOf(err) == order.CodeSessionNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	if err := h.Storage.DeleteFile(ctx, photoID); err != nil {
		h.Logger.Warn("Failed to delete stored photo", zap.String("photoID", photoID), zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{
		"sessionID":  sess.SessionID,
		"generation": sess.Generation,
		"order":      sess.Order,
		"quote":      order.CalculatePrice(sess.Order),
	})
}
