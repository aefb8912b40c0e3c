package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Pranathi1405/ClauseEase-AI/config"
	"github.com/Pranathi1405/ClauseEase-AI/middleware"
	"github.com/Pranathi1405/ClauseEase-AI/model"
	"github.com/Pranathi1405/ClauseEase-AI/service"
	"github.com/Pranathi1405/ClauseEase-AI/templates"
	"github.com/gin-gonic/gin"
)

func newUploadRouter(backend *service.BackendClient, sessionCfg *config.SessionConfig) *gin.Engine {
	handler := NewUploadHandler(backend, &config.UploadConfig{MaxSizeMB: 16})
	store := service.GetSessionStore()

	router := gin.New()
	router.SetHTMLTemplate(templates.Load())
	gated := router.Group("/", middleware.SessionGate(sessionCfg, store))
	{
		gated.GET("/upload", handler.ShowUpload)
		gated.POST("/upload", handler.Process)
		gated.GET("/upload/status", handler.Status)
	}
	return router
}

// openSession creates a store-backed session and returns its cookie.
func openSession(t *testing.T, cfg *config.SessionConfig) (*model.Session, *http.Cookie) {
	t.Helper()
	session := service.GetSessionStore().Create("backend-token", "alice")
	token, _, err := middleware.GenerateSessionToken(session.ID, cfg)
	if err != nil {
		t.Fatalf("Failed to sign session token: %v", err)
	}
	return session, &http.Cookie{Name: middleware.SessionCookie, Value: token}
}

// multipartUpload builds a multipart body with a single file field.
func multipartUpload(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("Failed to create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("Failed to write file content: %v", err)
	}
	writer.Close()
	return &buf, writer.FormDataContentType()
}

func processResponse() map[string]any {
	return map[string]any{
		"clause_count": 1,
		"word_count":   10,
		"clauses": []map[string]any{
			{"index": 1, "cleaned_text": "The party shall pay.", "simplified": "You must pay."},
		},
		"legal_terms": []map[string]any{},
	}
}

func TestShowUploadRequiresSession(t *testing.T) {
	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {})
	router := newUploadRouter(fb.client(), testSessionConfig())

	req := httptest.NewRequest("GET", "/upload", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("Expected redirect 303, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != middleware.LoginPath {
		t.Errorf("Expected redirect to login, got %s", loc)
	}
}

func TestShowUpload(t *testing.T) {
	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {})
	cfg := testSessionConfig()
	router := newUploadRouter(fb.client(), cfg)
	_, cookie := openSession(t, cfg)

	req := httptest.NewRequest("GET", "/upload", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Welcome, alice!") {
		t.Error("Expected username greeting")
	}
}

func TestShowUploadResetsFailedState(t *testing.T) {
	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {})
	cfg := testSessionConfig()
	router := newUploadRouter(fb.client(), cfg)
	session, cookie := openSession(t, cfg)

	store := service.GetSessionStore()
	store.SetUploadState(session.ID, model.UploadFailed, "old error")

	req := httptest.NewRequest("GET", "/upload", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if strings.Contains(w.Body.String(), "old error") {
		t.Error("Expected stale error not to render")
	}
	if got := store.Get(session.ID).UploadState; got != model.UploadIdle {
		t.Errorf("Expected state reset to idle, got %s", got)
	}
}

func TestProcessSuccess(t *testing.T) {
	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer backend-token" {
			t.Errorf("Expected bearer credential, got %q", got)
		}
		json.NewEncoder(w).Encode(processResponse())
	})
	cfg := testSessionConfig()
	router := newUploadRouter(fb.client(), cfg)
	session, cookie := openSession(t, cfg)

	body, contentType := multipartUpload(t, "lease.pdf", "%PDF-1.4 fake")
	req := httptest.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("Expected redirect 303, got %d: %s", w.Code, w.Body.String())
	}
	if loc := w.Header().Get("Location"); loc != "/results" {
		t.Errorf("Expected redirect to /results, got %s", loc)
	}

	stored := service.GetSessionStore().Get(session.ID)
	if !stored.HasResult() {
		t.Fatal("Expected result cached in session")
	}
	if stored.Filename != "lease.pdf" {
		t.Errorf("Expected filename lease.pdf, got %s", stored.Filename)
	}
	if stored.UploadState != model.UploadSucceeded {
		t.Errorf("Expected state succeeded, got %s", stored.UploadState)
	}
}

func TestProcessNoFile(t *testing.T) {
	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("Backend must not be called without a file")
	})
	cfg := testSessionConfig()
	router := newUploadRouter(fb.client(), cfg)
	_, cookie := openSession(t, cfg)

	req := httptest.NewRequest("POST", "/upload", strings.NewReader(""))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=empty")
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Please select a file first") {
		t.Error("Expected file selection message")
	}
}

func TestProcessBackendFailure(t *testing.T) {
	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"message": "Unsupported file type"})
	})
	cfg := testSessionConfig()
	router := newUploadRouter(fb.client(), cfg)
	session, cookie := openSession(t, cfg)

	body, contentType := multipartUpload(t, "notes.xyz", "junk")
	req := httptest.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("Expected 422, got %d", w.Code)
	}
	page := w.Body.String()
	if !strings.Contains(page, "Unsupported file type") {
		t.Error("Expected backend message on the failed surface")
	}
	if !strings.Contains(page, "Please check the steps below and try again.") {
		t.Error("Expected remediation hints")
	}

	stored := service.GetSessionStore().Get(session.ID)
	if stored.UploadState != model.UploadFailed {
		t.Errorf("Expected state failed, got %s", stored.UploadState)
	}
	if stored.UploadError != "Unsupported file type" {
		t.Errorf("Unexpected stored error: %s", stored.UploadError)
	}
}

func TestProcessEmptyClausesIsFailure(t *testing.T) {
	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"clause_count": 0, "clauses": []any{}})
	})
	cfg := testSessionConfig()
	router := newUploadRouter(fb.client(), cfg)
	session, cookie := openSession(t, cfg)

	body, contentType := multipartUpload(t, "blank.pdf", "data")
	req := httptest.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if !strings.Contains(w.Body.String(), "No clauses extracted from document") {
		t.Error("Expected no-clauses failure message")
	}
	if service.GetSessionStore().Get(session.ID).HasResult() {
		t.Error("Expected no result cached")
	}
}

func TestProcessClearsPriorResult(t *testing.T) {
	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream down"))
	})
	cfg := testSessionConfig()
	router := newUploadRouter(fb.client(), cfg)
	session, cookie := openSession(t, cfg)

	store := service.GetSessionStore()
	store.SetResult(session.ID, sampleDocument(), "old.pdf")

	body, contentType := multipartUpload(t, "new.pdf", "data")
	req := httptest.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// Even on failure the stale result from the previous upload is gone.
	if store.Get(session.ID).HasResult() {
		t.Error("Expected prior result cleared when a new upload starts")
	}
}

func TestUploadStatus(t *testing.T) {
	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {})
	cfg := testSessionConfig()
	router := newUploadRouter(fb.client(), cfg)
	session, cookie := openSession(t, cfg)

	service.GetSessionStore().SetUploadState(session.ID, model.UploadRunning, "")

	req := httptest.NewRequest("GET", "/upload/status", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse status response: %v", err)
	}
	if resp["state"] != model.UploadRunning {
		t.Errorf("Expected state uploading, got %s", resp["state"])
	}
}
