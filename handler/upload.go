package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Pranathi1405/ClauseEase-AI/config"
	"github.com/Pranathi1405/ClauseEase-AI/middleware"
	"github.com/Pranathi1405/ClauseEase-AI/model"
	"github.com/Pranathi1405/ClauseEase-AI/pkg/logger"
	"github.com/Pranathi1405/ClauseEase-AI/service"
	"github.com/gin-gonic/gin"
)

// UploadHandler owns the upload screen and the single-shot processing call.
// The upload lifecycle is an explicit state machine (idle, uploading,
// succeeded, failed) driven by the actual backend response rather than a
// timer.
type UploadHandler struct {
	backend  *service.BackendClient
	store    *service.SessionStore
	maxBytes int64
}

func NewUploadHandler(backend *service.BackendClient, uploadCfg *config.UploadConfig) *UploadHandler {
	return &UploadHandler{
		backend:  backend,
		store:    service.GetSessionStore(),
		maxBytes: int64(uploadCfg.MaxSizeMB) << 20,
	}
}

// UploadView is the template data for the upload screen.
type UploadView struct {
	Username string
	Failed   bool
	Error    string
}

// ShowUpload renders the upload screen. A failed state left over from a
// previous attempt is reset so the form starts clean.
func (h *UploadHandler) ShowUpload(c *gin.Context) {
	session := middleware.GetSession(c)
	if session.UploadState == model.UploadFailed {
		h.store.SetUploadState(session.ID, model.UploadIdle, "")
	}
	c.HTML(http.StatusOK, "upload.html", UploadView{Username: session.Username})
}

// Process forwards exactly one uploaded file to the backend. Starting a new
// upload clears any previously cached result; on success the payload and
// filename are cached for the session and the browser is sent to the
// results screen.
func (h *UploadHandler) Process(c *gin.Context) {
	session := middleware.GetSession(c)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		h.fail(c, session.ID, http.StatusBadRequest, "Please select a file first")
		return
	}
	defer file.Close()

	if h.maxBytes > 0 && header.Size > h.maxBytes {
		h.fail(c, session.ID, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("File is too large (max %d MB)", h.maxBytes>>20))
		return
	}

	h.store.ClearResult(session.ID)
	h.store.SetUploadState(session.ID, model.UploadRunning, "")

	doc, err := h.backend.Process(c.Request.Context(), session.Token, header.Filename, file)
	if err != nil {
		var procErr *service.ProcessError
		if errors.As(err, &procErr) {
			status := http.StatusUnprocessableEntity
			if procErr.Status >= 500 {
				status = http.StatusBadGateway
			}
			h.fail(c, session.ID, status, procErr.Message)
			return
		}
		logger.Error(c.Request.Context(), "process request failed", "error", err)
		h.fail(c, session.ID, http.StatusBadGateway, "Connection error. Please try again.")
		return
	}

	h.store.SetResult(session.ID, doc, header.Filename)
	h.store.SetUploadState(session.ID, model.UploadSucceeded, "")
	logger.Info(c.Request.Context(), "document processed",
		"filename", header.Filename,
		"clause_count", doc.ClauseCount,
	)
	c.Redirect(http.StatusSeeOther, "/results")
}

// Status reports the upload state machine as JSON for the progress surface.
func (h *UploadHandler) Status(c *gin.Context) {
	session := middleware.GetSession(c)
	c.JSON(http.StatusOK, gin.H{
		"state": session.UploadState,
		"error": session.UploadError,
	})
}

func (h *UploadHandler) fail(c *gin.Context, sessionID string, status int, message string) {
	h.store.SetUploadState(sessionID, model.UploadFailed, message)
	c.HTML(status, "upload.html", UploadView{
		Username: middleware.GetUsername(c),
		Failed:   true,
		Error:    message,
	})
}
