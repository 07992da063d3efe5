package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

var unsafeChars = regexp.MustCompile(`[^a-z0-9\-]`)

// fileKey builds an object key under prefix from the uploaded filename,
// slugged and timestamped so repeated uploads never collide.
func fileKey(prefix, original string) string {
	ext := strings.ToLower(path.Ext(original))
	base := strings.TrimSuffix(path.Base(original), path.Ext(original))
	base = strings.ToLower(base)
	base = strings.ReplaceAll(base, " ", "-")
	base = unsafeChars.ReplaceAllString(base, "")

	return fmt.Sprintf("%s/%d_%s%s", prefix, time.Now().UnixMilli(), base, ext)
}

func readUpload(ctx *gin.Context, field string) ([]byte, *multipart.FileHeader, error) {
	header, err := ctx.FormFile(field)
	if err != nil {
		return nil, nil, err
	}

	file, err := header.Open()
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, nil, err
	}

	return data, header, nil
}

func uploadContentType(header *multipart.FileHeader) string {
	if ct := header.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
