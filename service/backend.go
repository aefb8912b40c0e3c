package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/Pranathi1405/ClauseEase-AI/config"
	"github.com/Pranathi1405/ClauseEase-AI/model"
)

// BackendClient talks to the ClauseEase processing API. It is the only
// network surface of this tier; every call is a single attempt with no
// retry.
type BackendClient struct {
	config     *config.BackendConfig
	httpClient *http.Client
}

func NewBackendClient(cfg *config.BackendConfig) *BackendClient {
	return &BackendClient{
		config: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult holds the credentials returned by a successful login.
type LoginResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Login authenticates against the backend and returns its token/username
// pair. A non-2xx response becomes an AuthError carrying the server message.
func (c *BackendClient) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body, status, err := c.postJSON(ctx, "/login", loginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	if status < 200 || status > 299 {
		return nil, &AuthError{Status: status, Message: extractMessage(status, body, "Login failed")}
	}

	var result LoginResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse login response: %w", err)
	}

	return &result, nil
}

// Register creates a new account. The returned string is the server's
// success message, if it sent one.
func (c *BackendClient) Register(ctx context.Context, username, email, password string) (string, error) {
	body, status, err := c.postJSON(ctx, "/register", registerRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return "", err
	}

	if status < 200 || status > 299 {
		return "", &AuthError{Status: status, Message: extractMessage(status, body, "Registration failed")}
	}

	var resp messageResponse
	_ = json.Unmarshal(body, &resp)
	return resp.Message, nil
}

// Process uploads one document as multipart form data and returns the
// processed result. A successful response with an empty clause list is
// treated as a processing failure.
func (c *BackendClient) Process(ctx context.Context, token, filename string, file io.Reader) (*model.ProcessedDocument, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to copy file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/process", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ProcessError{
			Status:  resp.StatusCode,
			Message: extractMessage(resp.StatusCode, body, "Processing failed"),
		}
	}

	var doc model.ProcessedDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse process response: %w", err)
	}

	if len(doc.Clauses) == 0 {
		return nil, &ProcessError{Status: resp.StatusCode, Message: "No clauses extracted from document"}
	}

	return &doc, nil
}

func (c *BackendClient) postJSON(ctx context.Context, path string, payload any) ([]byte, int, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read response: %w", err)
	}

	return body, resp.StatusCode, nil
}

// extractMessage pulls a user-facing message out of an error response body:
// structured {"message"} JSON first (jsonFallback when the object has no
// message), then raw body text, then a generic status-based message.
func extractMessage(status int, body []byte, jsonFallback string) string {
	text := strings.TrimSpace(string(body))

	var resp messageResponse
	if err := json.Unmarshal(body, &resp); err == nil {
		if resp.Message != "" {
			return resp.Message
		}
		if jsonFallback != "" {
			return jsonFallback
		}
	} else if text != "" {
		return text
	}

	return fmt.Sprintf("Server error (%d)", status)
}
