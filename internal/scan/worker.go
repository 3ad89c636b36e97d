package scan

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"google.golang.org/api/idtoken"
)

// WorkerScanner delegates website scanning to a dedicated scraper service.
// Deployments that run the scraper as a private Cloud Run service leave the
// client nil and get an ID-token client targeting the worker audience.
type WorkerScanner struct {
	client  *http.Client
	baseURL string
}

// NewWorkerScanner builds a remote scanner for the given worker base URL.
func NewWorkerScanner(client *http.Client, workerBaseURL string) *WorkerScanner {
	workerBaseURL = strings.TrimRight(workerBaseURL, "/")
	if client == nil {
		idc, err := idtoken.NewClient(context.Background(), workerBaseURL)
		if err != nil {
			client = &http.Client{Timeout: 20 * time.Second}
		} else {
			client = idc
		}
	}
	return &WorkerScanner{client: client, baseURL: workerBaseURL}
}

// ScanSite posts the URL to the worker's /scan endpoint. Like the in-process
// scanner, every failure collapses to an empty result.
func (s *WorkerScanner) ScanSite(ctx context.Context, url string) map[string][]string {
	if url == "" {
		return map[string][]string{}
	}

	body, err := json.Marshal(map[string]string{"url": url})
	if err != nil {
		return map[string][]string{}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/scan", bytes.NewReader(body))
	if err != nil {
		log.Printf("scan: bad worker request for %q: %v", url, err)
		return map[string][]string{}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("scan: worker call for %q failed: %v", url, err)
		return map[string][]string{}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		log.Printf("scan: worker returned %d for %q", resp.StatusCode, url)
		return map[string][]string{}
	}

	var payload struct {
		Data map[string][]string `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Printf("scan: decode worker response for %q: %v", url, err)
		return map[string][]string{}
	}
	if payload.Data == nil {
		return map[string][]string{}
	}
	return payload.Data
}
