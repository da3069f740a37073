package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"studybuddy/internal/config"
	"studybuddy/internal/models"
)

// RAGClient handles communication with the class-material RAG server
type RAGClient struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

// NewRAGClient creates a new RAG client
func NewRAGClient(cfg *config.Config) *RAGClient {
	return &RAGClient{
		baseURL: cfg.RAGServerURL,
		httpClient: &http.Client{
			Timeout: cfg.RAGServerTimeout,
		},
		timeout: cfg.RAGServerTimeout,
	}
}

// SearchMaterials returns the class material excerpts most relevant to query
func (rc *RAGClient) SearchMaterials(ctx context.Context, classID, query string, limit int) ([]models.RAGMaterialSearchResult, error) {
	baseURL := fmt.Sprintf("%s/api/rag/materials/search", rc.baseURL)

	// Build query parameters with proper URL encoding
	params := url.Values{}
	params.Add("class_id", classID)
	params.Add("query", query)
	params.Add("top_k", strconv.Itoa(limit))
	fullURL := fmt.Sprintf("%s?%s", baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := rc.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to search materials: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search materials failed: status %d, body: %s", resp.StatusCode, string(body))
	}

	var apiResp struct {
		Success bool `json:"success"`
		Data    struct {
			Results []models.RAGMaterialSearchResult `json:"results"`
		} `json:"data"`
		Error *struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}

	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if !apiResp.Success {
		if apiResp.Error != nil {
			return nil, fmt.Errorf("search failed: %s - %s", apiResp.Error.Code, apiResp.Error.Message)
		}
		return nil, fmt.Errorf("search failed: unknown error")
	}

	return apiResp.Data.Results, nil
}

// Health checks if RAG server is healthy
func (rc *RAGClient) Health(ctx context.Context) (bool, error) {
	url := fmt.Sprintf("%s/api/rag/health", rc.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := rc.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to check health: %w", err)
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK, nil
}
