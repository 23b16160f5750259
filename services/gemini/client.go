package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spacebio/articles-api/config"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Client talks to the Gemini REST API for both embedding and generation.
// It performs no retries; a failed call surfaces as a *ProviderError and the
// caller decides recovery policy.
type Client struct {
	config     config.GeminiConfig
	httpClient *http.Client
}

// NewClient creates a new Gemini client
func NewClient(cfg config.GeminiConfig) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &Client{
		config:     cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// EmbedContent converts text into a fixed-dimension embedding vector.
func (c *Client) EmbedContent(ctx context.Context, text string) ([]float64, error) {
	reqBody := embedContentRequest{
		Content: content{Parts: []part{{Text: text}}},
	}

	url := fmt.Sprintf("%s/models/%s:embedContent", c.config.BaseURL, c.config.EmbeddingModel)
	respBody, err := c.post(ctx, url, reqBody)
	if err != nil {
		return nil, err
	}

	var embedResp embedContentResponse
	if err := json.Unmarshal(respBody, &embedResp); err != nil {
		return nil, newProviderError("UNMARSHAL_ERROR", "failed to unmarshal embedding response", 0, err)
	}
	if len(embedResp.Embedding.Values) == 0 {
		return nil, newProviderError("MALFORMED_RESPONSE", "embedding response has no vector values", 0, nil)
	}

	return embedResp.Embedding.Values, nil
}

// GenerateContent sends a prompt to the generation model and returns the text
// of the first candidate.
func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	reqBody := generateContentRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.config.BaseURL, c.config.GenerationModel)
	respBody, err := c.post(ctx, url, reqBody)
	if err != nil {
		return "", err
	}

	var genResp generateContentResponse
	if err := json.Unmarshal(respBody, &genResp); err != nil {
		return "", newProviderError("UNMARSHAL_ERROR", "failed to unmarshal generation response", 0, err)
	}
	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", newProviderError("MALFORMED_RESPONSE", "generation response has no candidates", 0, nil)
	}

	return genResp.Candidates[0].Content.Parts[0].Text, nil
}

// post issues an authenticated JSON request and returns the raw response body.
func (c *Client) post(ctx context.Context, url string, body any) ([]byte, error) {
	reqBytes, err := json.Marshal(body)
	if err != nil {
		return nil, newProviderError("MARSHAL_ERROR", "failed to marshal request", 0, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBytes))
	if err != nil {
		return nil, newProviderError("REQUEST_ERROR", "failed to create request", 0, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.config.APIKey)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, newProviderError("HTTP_ERROR", "request to gemini failed", 0, err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, newProviderError("READ_ERROR", "failed to read response", httpResp.StatusCode, err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, c.handleErrorResponse(httpResp.StatusCode, respBody)
	}

	return respBody, nil
}

// handleErrorResponse converts a non-2xx Gemini response into a ProviderError
func (c *Client) handleErrorResponse(statusCode int, body []byte) error {
	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err != nil || errResp.Error.Message == "" {
		return newProviderError("UNKNOWN_ERROR", string(body), statusCode, nil)
	}
	return newProviderError(errResp.Error.Status, errResp.Error.Message, statusCode, nil)
}

// Gemini request/response types

type embedContentRequest struct {
	Content content `json:"content"`
}

type embedContentResponse struct {
	Embedding embedding `json:"embedding"`
}

type embedding struct {
	Values []float64 `json:"values"`
}

type generateContentRequest struct {
	Contents []content `json:"contents"`
}

type generateContentResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content content `json:"content"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}
