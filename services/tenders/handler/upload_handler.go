package handler

import (
	"fmt"
	"net/http"

	"tender-tracker/internal/filestore"
	model "tender-tracker/internal/models"
	"tender-tracker/services/tenders/helpers"
	"tender-tracker/utils"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	store filestore.Store
}

func NewUploadHandler(store filestore.Store) *UploadHandler {
	return &UploadHandler{store: store}
}

// UploadFilesHandler handles POST /uploads. It accepts a multipart form
// with one or more "files" parts and returns the stored attachments, which
// callers then reference from tender documents or application files.
func (h *UploadHandler) UploadFilesHandler(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		helpers.HandleBindError(c, "UploadFilesHandler", err)
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		helpers.HandleBindError(c, "UploadFilesHandler", fmt.Errorf("no files in request"))
		return
	}

	actor := helpers.CurrentActor(c)
	attachments := make([]model.FileAttachment, 0, len(files))
	for _, fh := range files {
		att, err := h.store.Save(c.Request.Context(), fh)
		if err != nil {
			status, message := helpers.MapErrorToHTTP(err)
			utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
			utils.Warn("UploadFilesHandler: failed to store file", map[string]any{
				"file":     fh.Filename,
				"actor_id": actor.ID,
				"error":    err.Error(),
			})
			return
		}
		attachments = append(attachments, att)
	}

	utils.JSONResponse(c, http.StatusCreated, attachments, "files uploaded successfully")
	helpers.LogSuccess("UploadFilesHandler", "files uploaded successfully", map[string]any{
		"count":    len(attachments),
		"actor_id": actor.ID,
	})
}
