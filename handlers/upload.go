package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"slotwise/middleware"
	"slotwise/models"
	"slotwise/utils"

	"github.com/gin-gonic/gin"
)

// maxImageBytes caps a single uploaded image.
const maxImageBytes = 10 << 20

// formImage reads an optional multipart image. A missing field is not an error.
func formImage(c *gin.Context, field string, lat, lon *float64) (*models.ImageUpload, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		return nil, nil
	}
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, utils.ValidationError("invalid %s upload: %v", field, err)
	}
	if fh.Size > maxImageBytes {
		return nil, utils.ValidationError("%s is larger than %d MB", field, maxImageBytes>>20)
	}
	data, err := readFormFile(fh)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", field, err)
	}
	return &models.ImageUpload{Filename: fh.Filename, Data: data, Latitude: lat, Longitude: lon}, nil
}

func readFormFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, maxImageBytes))
}

// mustCaller returns the authenticated caller or writes a 401.
func mustCaller(c *gin.Context) (utils.Caller, bool) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated"})
	}
	return caller, ok
}

func bindError(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
}
