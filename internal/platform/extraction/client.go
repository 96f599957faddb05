// Package extraction wraps the external document-understanding service that
// reads an uploaded lab report and returns raw biomarker readings plus the
// patient details printed on the document. The service is treated as opaque:
// whatever it extracts is passed downstream as-is, and all cleanup happens in
// the analysis core.
package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// RawReading is one biomarker extraction from a single document. Value is kept
// as a string because reports contain placeholders ("N/A") and censored values
// ("<0.1") that must not be coerced to numbers here.
type RawReading struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Unit  string `json:"unit"`
}

// RawPatient is the patient-info quadruple extracted from a single document.
// All fields are nullable; dates are YYYY-MM-DD strings when present.
type RawPatient struct {
	Name           *string `json:"name"`
	DateOfBirth    *string `json:"dateOfBirth"`
	Sex            *string `json:"sex"`
	CollectionDate *string `json:"collectionDate"`
}

// DocumentExtraction is the full extraction result for one source document.
type DocumentExtraction struct {
	Readings []RawReading `json:"readings"`
	Patient  RawPatient   `json:"patient"`
}

// Extractor is the boundary interface the analysis service depends on.
type Extractor interface {
	Extract(ctx context.Context, documentText string) (*DocumentExtraction, error)
}

// Client calls the document-understanding HTTP API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates an extraction client. timeout bounds a single extraction
// call; retry and batching policy belong to the remote service's own gateway.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

type extractRequest struct {
	Document string `json:"document"`
}

// Extract submits one document's text and decodes the raw extraction.
func (c *Client) Extract(ctx context.Context, documentText string) (*DocumentExtraction, error) {
	body, err := json.Marshal(extractRequest{Document: documentText})
	if err != nil {
		return nil, fmt.Errorf("encode extraction request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/extract", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build extraction request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call extraction service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("extraction service returned status %d", resp.StatusCode)
	}

	var result DocumentExtraction
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode extraction response: %w", err)
	}
	return &result, nil
}
