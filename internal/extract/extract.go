package extract

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// ExtractionError wraps a fetch or parse failure. Extraction is an optional
// enrichment step; callers absorb this error instead of failing the run.
type ExtractionError struct {
	URL string
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed for %s: %v", e.URL, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// ContentSummary is what a brand's web page contributes to the analysis.
type ContentSummary struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	MainContent string   `json:"main_content"`
	Keywords    []string `json:"keywords,omitempty"`
	ProductInfo []string `json:"product_info,omitempty"`
}

type Extractor struct {
	httpClient  *http.Client
	log         *zap.Logger
	userAgent   string
	maxRetries  int
	maxBodySize int64
}

func NewExtractor(timeoutMS, maxRetries, maxBodySize int, userAgent string, log *zap.Logger) *Extractor {
	return &Extractor{
		httpClient: &http.Client{
			Timeout: time.Duration(timeoutMS) * time.Millisecond,
		},
		log:         log,
		userAgent:   userAgent,
		maxRetries:  maxRetries,
		maxBodySize: int64(maxBodySize),
	}
}

func (e *Extractor) Fetch(ctx context.Context, url string) (*ContentSummary, error) {
	var doc *goquery.Document
	var lastErr error

	for attempt := 0; attempt <= e.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, &ExtractionError{URL: url, Err: err}
		}
		req.Header.Set("User-Agent", e.userAgent)
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")

		resp, err := e.httpClient.Do(req)
		if err != nil {
			lastErr = err
			select {
			case <-ctx.Done():
				return nil, &ExtractionError{URL: url, Err: ctx.Err()}
			case <-time.After(time.Duration(attempt+1) * 500 * time.Millisecond):
			}
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			lastErr = fmt.Errorf("HTTP %d", resp.StatusCode)
			select {
			case <-ctx.Done():
				return nil, &ExtractionError{URL: url, Err: ctx.Err()}
			case <-time.After(time.Duration(attempt+1) * 500 * time.Millisecond):
			}
			continue
		}

		doc, err = goquery.NewDocumentFromReader(io.LimitReader(resp.Body, e.maxBodySize))
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}
		lastErr = nil
		break
	}

	if lastErr != nil {
		return nil, &ExtractionError{URL: url, Err: lastErr}
	}

	summary := e.summarize(doc)
	e.log.Debug("page extracted",
		zap.String("url", url),
		zap.String("title", summary.Title),
		zap.Int("content_len", len(summary.MainContent)))
	return summary, nil
}

const maxMainContent = 4000

var priceRe = regexp.MustCompile(`(?:[$€£]\s?\d[\d,]*(?:\.\d{1,2})?|\d[\d,]*(?:\.\d{1,2})?\s?(?:USD|EUR|GBP))`)

func (e *Extractor) summarize(doc *goquery.Document) *ContentSummary {
	s := &ContentSummary{}

	if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && strings.TrimSpace(og) != "" {
		s.Title = strings.TrimSpace(og)
	} else {
		s.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		s.Description = strings.TrimSpace(desc)
	}
	if s.Description == "" {
		if og, ok := doc.Find(`meta[property="og:description"]`).Attr("content"); ok {
			s.Description = strings.TrimSpace(og)
		}
	}

	if kw, ok := doc.Find(`meta[name="keywords"]`).Attr("content"); ok {
		for _, part := range strings.Split(kw, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				s.Keywords = append(s.Keywords, part)
			}
		}
	}

	var sb strings.Builder
	doc.Find("h1, h2, p").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		text := strings.Join(strings.Fields(sel.Text()), " ")
		if text == "" {
			return true
		}
		if sb.Len() > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(text)
		return sb.Len() < maxMainContent
	})
	content := sb.String()
	if len(content) > maxMainContent {
		content = content[:maxMainContent]
	}
	s.MainContent = content

	seen := make(map[string]bool)
	for _, m := range priceRe.FindAllString(content, 10) {
		if !seen[m] {
			seen[m] = true
			s.ProductInfo = append(s.ProductInfo, m)
		}
	}

	return s
}
