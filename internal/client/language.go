package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/vermi/gnlp-analyze/internal/errors"
	"github.com/vermi/gnlp-analyze/internal/models"
)

// LanguageClient represents a client for the Cloud Natural Language REST API
type LanguageClient struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewLanguageClient creates a new language client
func NewLanguageClient(baseURL, apiKey string) *LanguageClient {
	return &LanguageClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewLanguageClientWithTimeout creates a new language client with custom timeout
func NewLanguageClientWithTimeout(baseURL, apiKey string, timeout time.Duration) *LanguageClient {
	return &LanguageClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

// AnalyzeSyntax sends text to the analyzeSyntax endpoint and returns the
// sentence and token breakdown
func (c *LanguageClient) AnalyzeSyntax(ctx context.Context, text string) (*models.SyntaxResponse, error) {
	if text == "" {
		return nil, errors.NewValidationError("text", "text cannot be empty")
	}

	request := models.AnalyzeRequest{
		Document: models.Document{
			Type:    models.DocumentPlainText,
			Content: text,
		},
		EncodingType: models.EncodingUTF32,
	}

	var response models.SyntaxResponse
	if err := c.post(ctx, "documents:analyzeSyntax", request, &response); err != nil {
		return nil, err
	}

	return &response, nil
}

// AnalyzeSentiment sends text to the analyzeSentiment endpoint and returns
// the document-level attitude scoring
func (c *LanguageClient) AnalyzeSentiment(ctx context.Context, text string) (*models.SentimentResponse, error) {
	if text == "" {
		return nil, errors.NewValidationError("text", "text cannot be empty")
	}

	request := models.AnalyzeRequest{
		Document: models.Document{
			Type:    models.DocumentPlainText,
			Content: text,
		},
		EncodingType: models.EncodingUTF32,
	}

	var response models.SentimentResponse
	if err := c.post(ctx, "documents:analyzeSentiment", request, &response); err != nil {
		return nil, err
	}

	return &response, nil
}

// post marshals a request body, sends it to the named v1 method and decodes
// the response into out
func (c *LanguageClient) post(ctx context.Context, method string, in, out any) error {
	jsonData, err := json.Marshal(in)
	if err != nil {
		return errors.NewNetworkError("marshal request", err)
	}

	endpoint := fmt.Sprintf("%s/v1/%s", c.BaseURL, method)
	if c.APIKey != "" {
		endpoint += "?" + url.Values{"key": {c.APIKey}}.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return errors.NewNetworkError("create request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return errors.NewNetworkError("send request", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.NewNetworkError("read response", err)
	}

	if resp.StatusCode != http.StatusOK {
		return errors.NewAPIError(resp.StatusCode, serviceMessage(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return errors.NewNetworkError("unmarshal response", err)
	}

	return nil
}

// serviceMessage extracts the message from an API error envelope, falling
// back to the raw body when the envelope does not parse
func serviceMessage(body []byte) string {
	var envelope models.ErrorResponse
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		return envelope.Error.Message
	}
	return string(body)
}
