package handler

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"docextract/internal/domain"
	"docextract/internal/service"
)

var errInvalidPage = errors.New("page must be a positive integer")

// pageParam reads the 1-indexed page from the form or query; absent means page 1.
func pageParam(c *gin.Context) (int, error) {
	raw := strings.TrimSpace(c.PostForm("page"))
	if raw == "" {
		raw = strings.TrimSpace(c.Query("page"))
	}
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, errInvalidPage
	}
	return page, nil
}

// singleDocument opens the "file" form field. On failure the error response
// is already written and ok is false. The caller closes the returned file.
func singleDocument(c *gin.Context) (in service.DocumentInput, file multipart.File, ok bool) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return service.DocumentInput{}, nil, false
	}
	page, err := pageParam(c)
	if err != nil {
		_ = file.Close()
		RespondError(c, http.StatusBadRequest, "INVALID_PAGE", err.Error())
		return service.DocumentInput{}, nil, false
	}
	return service.DocumentInput{Filename: header.Filename, Body: file, Page: page}, file, true
}

// batchDocuments opens every file under "files" (falling back to "file").
// The returned closer releases all of them.
func batchDocuments(c *gin.Context) ([]service.DocumentInput, func(), bool) {
	form, err := c.MultipartForm()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "multipart form with files is required")
		return nil, nil, false
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		headers = form.File["file"]
	}
	if len(headers) == 0 {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "at least one file is required")
		return nil, nil, false
	}
	page, err := pageParam(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_PAGE", err.Error())
		return nil, nil, false
	}

	var opened []multipart.File
	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}
	inputs := make([]service.DocumentInput, 0, len(headers))
	for _, h := range headers {
		f, err := h.Open()
		if err != nil {
			closeAll()
			HandleError(c, fmt.Errorf("%w: %v", domain.ErrFileIO, err))
			return nil, nil, false
		}
		opened = append(opened, f)
		inputs = append(inputs, service.DocumentInput{Filename: h.Filename, Body: f, Page: page})
	}
	return inputs, closeAll, true
}

// uploadToken reads the token from the form, the query, or X-Upload-Token.
func uploadToken(c *gin.Context) string {
	if t := c.PostForm("upload_token"); t != "" {
		return t
	}
	if t := c.Query("upload_token"); t != "" {
		return t
	}
	return c.GetHeader("X-Upload-Token")
}
