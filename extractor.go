package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
)

const (
	// minExtractChars is the floor below which an extraction is treated as
	// a failure (paywall, JS-rendered, or login-gated page).
	minExtractChars = 80

	// minParagraphChars filters out captions, bylines and nav crumbs.
	minParagraphChars = 30

	aggregatorTimeout = 20 * time.Second
)

// browserHeaders make the fetch look like a regular browser; many news
// sites refuse or degrade responses to bare clients.
var browserHeaders = map[string]string{
	"User-Agent":                "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
	"Accept-Language":           "en-US,en;q=0.9",
	"Connection":                "keep-alive",
	"Upgrade-Insecure-Requests": "1",
	"Cache-Control":             "max-age=0",
}

// strippedElements are removed from the document before any strategy runs.
const strippedElements = "script, style, nav, header, footer, aside, iframe, noscript, button, form, img, svg, video, audio"

var (
	articleClassPattern = regexp.MustCompile(`(?i)article[-_]?body|article[-_]?content|story[-_]?body|post[-_]?content`)
	articleIDPattern    = regexp.MustCompile(`(?i)article|story|content|post`)
	whitespacePattern   = regexp.MustCompile(`\s+`)
	sentenceSplitter    = regexp.MustCompile(`[.!?]+`)

	mdImagePattern = regexp.MustCompile(`!\[[^\]]*\]\([^\)]*\)`)
	mdLinkPattern  = regexp.MustCompile(`\[([^\]]*)\]\([^\)]*\)`)
	mdMarkPattern  = regexp.MustCompile("[*_`#>|]+")
)

// extractStrategy is one attempt at isolating article text from a parsed
// page. Strategies are tried in order, most specific first; the first one
// that yields anything wins.
type extractStrategy struct {
	name string
	fn   func(doc *goquery.Document) (string, bool)
}

// Extractor pulls article text out of news URLs with a cascade of
// increasingly permissive strategies.
type Extractor struct {
	client          *http.Client
	resolver        *http.Client
	converter       *md.Converter
	strategies      []extractStrategy
	maxChars        int
	aggregatorHosts []string
}

// NewExtractor creates an extractor with the default strategy chain.
func NewExtractor(timeout time.Duration, maxChars int) *Extractor {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if maxChars <= 0 {
		maxChars = 2500
	}

	e := &Extractor{
		client:   &http.Client{Timeout: timeout},
		resolver: &http.Client{Timeout: aggregatorTimeout},
		// Aggregator pages carry no article text of their own; they must
		// be resolved to the landing URL first.
		aggregatorHosts: []string{"news.google.com"},
		converter:       md.NewConverter("", true, nil),
		maxChars:        maxChars,
	}

	e.strategies = []extractStrategy{
		{"article structure", extractArticleStructure},
		{"paragraph container", extractDensestContainer},
		{"all paragraphs", extractAllParagraphs},
		{"full body text", e.extractFullBody},
	}

	return e
}

// Extract fetches a URL and returns the article text with diagnostics.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (*Extraction, error) {
	rawURL = strings.TrimSpace(rawURL)
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return nil, newExtractError(ExtractInvalidURL,
			"invalid URL format: must start with http:// or https://",
			"Enter a full article URL, for example https://example.com/news-story", nil)
	}

	resp, err := e.fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newExtractError(ExtractHTTPStatus,
			fmt.Sprintf("the site answered with HTTP %d; the URL may be invalid or blocked", resp.StatusCode),
			"Try a different URL, or copy the article text and paste it manually",
			&HTTPError{StatusCode: resp.StatusCode, URL: rawURL})
	}

	// Decode with the response's detected encoding; many Indian outlets
	// still serve non-UTF-8 pages.
	reader, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, newExtractError(ExtractEmpty,
			"could not decode the page content",
			"Copy the article text and paste it manually", err)
	}

	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return nil, newExtractError(ExtractEmpty,
			"could not parse the page as HTML",
			"Copy the article text and paste it manually", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	doc.Find(strippedElements).Remove()

	var text, strategy string
	for _, s := range e.strategies {
		if got, ok := s.fn(doc); ok {
			text = got
			strategy = s.name
			break
		}
	}

	text = collapseWhitespace(text)
	if utf8.RuneCountInString(text) <= minExtractChars {
		if text == "" {
			return nil, newExtractError(ExtractEmpty,
				"could not extract meaningful text from this URL",
				"The article may be behind a paywall, rendered with JavaScript, or require a login. Copy the text manually and paste it instead", nil)
		}
		return nil, newExtractError(ExtractTooShort,
			"extracted text is too short; the article might be behind a paywall or require login",
			"Copy the article text manually and use the text input instead", nil)
	}

	text = truncateRunes(text, e.maxChars)

	return &Extraction{
		Text:      text,
		Title:     title,
		Strategy:  strategy,
		CharCount: utf8.RuneCountInString(text),
	}, nil
}

// fetch issues the GET, resolving aggregator redirect pages first.
func (e *Extractor) fetch(ctx context.Context, rawURL string) (*http.Response, error) {
	if e.isAggregator(rawURL) {
		resp, err := e.doGet(ctx, e.resolver, rawURL)
		if err != nil {
			return nil, newExtractError(ExtractAggregator,
				"could not resolve the news aggregator redirect",
				"Open the aggregator link in a browser, then copy the article's own URL and paste that here", err)
		}
		if e.isAggregator(resp.Request.URL.String()) {
			resp.Body.Close()
			return nil, newExtractError(ExtractAggregator,
				"the aggregator link did not redirect to the original article",
				"Open the aggregator link in a browser, then copy the article's own URL and paste that here", nil)
		}
		return resp, nil
	}

	resp, err := e.doGet(ctx, e.client, rawURL)
	if err != nil {
		var uerr *url.Error
		if errors.As(err, &uerr) && uerr.Timeout() {
			return nil, newExtractError(ExtractTimeout,
				"request timeout: the website took too long to respond",
				"Try again, or copy the article text and paste it manually", err)
		}
		return nil, newExtractError(ExtractConnection,
			"connection error: could not reach the website",
			"Check your internet connection and the URL, or paste the text manually", err)
	}
	return resp, nil
}

func (e *Extractor) doGet(ctx context.Context, client *http.Client, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range browserHeaders {
		req.Header.Set(k, v)
	}
	return client.Do(req)
}

func (e *Extractor) isAggregator(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, agg := range e.aggregatorHosts {
		if host == agg || strings.HasSuffix(host, "."+agg) {
			return true
		}
	}
	return false
}

// extractArticleStructure looks for a semantic article container and
// collects its paragraphs and subheadings.
func extractArticleStructure(doc *goquery.Document) (string, bool) {
	containers := []*goquery.Selection{
		doc.Find("article").First(),
		doc.Find("div").FilterFunction(func(_ int, s *goquery.Selection) bool {
			class, _ := s.Attr("class")
			return articleClassPattern.MatchString(class)
		}).First(),
		doc.Find("div").FilterFunction(func(_ int, s *goquery.Selection) bool {
			id, ok := s.Attr("id")
			return ok && articleIDPattern.MatchString(id)
		}).First(),
		doc.Find("main").First(),
	}

	for _, c := range containers {
		if c.Length() == 0 {
			continue
		}
		parts := collectText(c, "p, h2, h3", minParagraphChars)
		if len(parts) > 0 {
			return strings.Join(parts, " "), true
		}
	}
	return "", false
}

// extractDensestContainer picks the div with the most direct paragraph
// children (at least 3) and collects its paragraphs.
func extractDensestContainer(doc *goquery.Document) (string, bool) {
	var best *goquery.Selection
	maxCount := 0
	doc.Find("div").Each(func(_ int, s *goquery.Selection) {
		if n := s.ChildrenFiltered("p").Length(); n > maxCount {
			maxCount = n
			best = s
		}
	})
	if best == nil || maxCount < 3 {
		return "", false
	}
	parts := collectText(best, "p", minParagraphChars)
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, " "), true
}

// extractAllParagraphs takes every meaningful paragraph on the page,
// capped to keep junk-heavy pages bounded.
func extractAllParagraphs(doc *goquery.Document) (string, bool) {
	parts := collectText(doc.Selection, "p", minParagraphChars)
	if len(parts) == 0 {
		return "", false
	}
	if len(parts) > 50 {
		parts = parts[:50]
	}
	return strings.Join(parts, " "), true
}

// extractFullBody is the last resort: render the whole body to readable
// text and keep the sentence-like chunks.
func (e *Extractor) extractFullBody(doc *goquery.Document) (string, bool) {
	body := doc.Find("body").First()
	if body.Length() == 0 {
		return "", false
	}

	text := ""
	if html, err := body.Html(); err == nil {
		if markdown, err := e.converter.ConvertString(html); err == nil {
			text = stripMarkdown(markdown)
		}
	}
	if text == "" {
		text = body.Text()
	}
	text = collapseWhitespace(text)

	var sentences []string
	for _, chunk := range sentenceSplitter.Split(text, -1) {
		chunk = strings.TrimSpace(chunk)
		if utf8.RuneCountInString(chunk) > 50 {
			sentences = append(sentences, chunk)
		}
		if len(sentences) == 30 {
			break
		}
	}
	if len(sentences) == 0 {
		return "", false
	}
	return strings.Join(sentences, ". "), true
}

// collectText gathers trimmed element texts longer than minChars runes.
func collectText(sel *goquery.Selection, selector string, minChars int) []string {
	var parts []string
	sel.Find(selector).Each(func(_ int, s *goquery.Selection) {
		t := strings.TrimSpace(s.Text())
		if utf8.RuneCountInString(t) > minChars {
			parts = append(parts, t)
		}
	})
	return parts
}

func stripMarkdown(s string) string {
	s = mdImagePattern.ReplaceAllString(s, " ")
	s = mdLinkPattern.ReplaceAllString(s, "$1")
	s = mdMarkPattern.ReplaceAllString(s, " ")
	return s
}

func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
