package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/promptdesk/internal/client/models"
	"github.com/dmitrijs2005/promptdesk/internal/common"
)

type HTTPClient struct {
	baseURL string
	http    *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type tokenResponse struct {
	Token string `json:"token"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (c *HTTPClient) Register(ctx context.Context, username, email, password string) (string, error) {
	var out tokenResponse
	body := map[string]string{"username": username, "email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/register", "", body, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

// Login returns ErrUnauthorized for bad credentials.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	var out tokenResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/login", "", body, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

func (c *HTTPClient) Chat(ctx context.Context, message string) (string, error) {
	var out struct {
		Response string `json:"response"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/chat", "", map[string]string{"message": message}, &out); err != nil {
		return "", err
	}
	return out.Response, nil
}

func (c *HTTPClient) SavePrompt(ctx context.Context, token, content string) (int64, error) {
	var out struct {
		ID int64 `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/prompts", token, map[string]string{"content": content}, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

func (c *HTTPClient) ListSaved(ctx context.Context, token string) ([]*models.Prompt, error) {
	var out []*models.Prompt
	if err := c.do(ctx, http.MethodGet, "/api/prompts/saved", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) ListRecent(ctx context.Context, token string) ([]*models.Prompt, error) {
	var out []*models.Prompt
	if err := c.do(ctx, http.MethodGet, "/api/prompts/recent", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) ToggleSave(ctx context.Context, token string, promptID int64) (bool, error) {
	var out struct {
		Success bool `json:"success"`
		IsSaved bool `json:"is_saved"`
	}
	path := fmt.Sprintf("/api/prompts/%d/toggle-save", promptID)
	if err := c.do(ctx, http.MethodPost, path, token, nil, &out); err != nil {
		return false, err
	}
	if !out.Success {
		return false, fmt.Errorf("%w: toggle not acknowledged", ErrUnavailable)
	}
	return out.IsSaved, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return mapStatus(resp.StatusCode, raw)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	return nil
}

func mapStatus(status int, raw []byte) error {
	var er errorResponse
	if err := json.Unmarshal(raw, &er); err != nil || er.Error == "" {
		return fmt.Errorf("%w: status %d", ErrUnavailable, status)
	}
	if status == http.StatusUnauthorized {
		return fmt.Errorf("%w: %s", ErrUnauthorized, er.Error)
	}
	return &APIError{Status: status, Message: er.Error}
}
