package scan

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/octobees/recycling-finder/internal/materials"
)

// SiteScanner inspects a business website for material mentions, grouped by
// category. Implementations never fail the caller: any fetch or parse
// problem yields an empty map, because a missing website scan must not sink
// the business record.
type SiteScanner interface {
	ScanSite(ctx context.Context, url string) map[string][]string
}

const scannerUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// HTMLScanner fetches the page itself and runs the keyword table over the
// visible text.
type HTMLScanner struct {
	httpClient *http.Client
	keywords   map[string][]string
}

// NewHTMLScanner builds an in-process scanner. A nil client falls back to a
// timeout-guarded default.
func NewHTMLScanner(client *http.Client) *HTMLScanner {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTMLScanner{httpClient: client, keywords: materials.ScanKeywords()}
}

// ScanSite downloads the page and returns the matched keywords per category.
func (s *HTMLScanner) ScanSite(ctx context.Context, url string) map[string][]string {
	if url == "" {
		return map[string][]string{}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Printf("scan: bad url %q: %v", url, err)
		return map[string][]string{}
	}
	req.Header.Set("User-Agent", scannerUserAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.Printf("scan: fetch %q failed: %v", url, err)
		return map[string][]string{}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		log.Printf("scan: fetch %q returned %d", url, resp.StatusCode)
		return map[string][]string{}
	}

	text := extractText(resp)
	return MatchKeywords(text, s.keywords)
}

// extractText walks the HTML token stream and collects visible text,
// skipping script and style bodies.
func extractText(resp *http.Response) string {
	var (
		sb       strings.Builder
		skipUnit string
	)

	tokenizer := html.NewTokenizer(resp.Body)
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return sb.String()
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			if tag := string(name); tag == "script" || tag == "style" {
				skipUnit = tag
			}
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			if string(name) == skipUnit {
				skipUnit = ""
			}
		case html.TextToken:
			if skipUnit == "" {
				sb.Write(tokenizer.Text())
				sb.WriteByte(' ')
			}
		}
	}
}

// MatchKeywords runs the category keyword table over a block of text and
// groups the hits the way the reconciler expects website mentions.
func MatchKeywords(text string, keywords map[string][]string) map[string][]string {
	lower := strings.ToLower(text)
	found := make(map[string][]string)
	for category, words := range keywords {
		for _, keyword := range words {
			if strings.Contains(lower, strings.ToLower(keyword)) {
				found[category] = append(found[category], keyword)
			}
		}
	}
	return found
}
