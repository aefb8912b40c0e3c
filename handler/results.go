package handler

import (
	"net/http"

	"github.com/Pranathi1405/ClauseEase-AI/middleware"
	"github.com/Pranathi1405/ClauseEase-AI/pkg/logger"
	"github.com/Pranathi1405/ClauseEase-AI/render"
	"github.com/Pranathi1405/ClauseEase-AI/service"
	"github.com/gin-gonic/gin"
)

// ResultsHandler renders the results screen from the session-scoped cached
// payload. Every view is built once per request from the same payload, so
// repeated renders of an unchanged result are identical.
type ResultsHandler struct {
	store *service.SessionStore
}

func NewResultsHandler() *ResultsHandler {
	return &ResultsHandler{store: service.GetSessionStore()}
}

// ShowResults renders all tabs. A session without a cached result is sent
// back to the upload screen before anything is rendered.
func (h *ResultsHandler) ShowResults(c *gin.Context) {
	session := middleware.GetSession(c)
	if !session.HasResult() {
		c.Redirect(http.StatusSeeOther, "/upload")
		c.Abort()
		return
	}

	view := render.BuildResultsView(session.Result, session.DisplayFilename(), session.Username)
	c.HTML(http.StatusOK, "results.html", view)
}

// UploadAnother clears the session-scoped result cache and returns to the
// upload screen. Credentials survive.
func (h *ResultsHandler) UploadAnother(c *gin.Context) {
	session := middleware.GetSession(c)
	h.store.ClearResult(session.ID)
	logger.Info(c.Request.Context(), "result cache cleared for new upload")
	c.Redirect(http.StatusSeeOther, "/upload")
}
