package scraper

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"
	"tcg_monitor/models"
)

const (
	pageLoadTimeout = 60 * time.Second
	renderSettle    = 3 * time.Second
	userAgent       = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"
)

// Selectors tried in order when hunting for the price-history chart.
var chartSelectors = []string{
	`div[data-testid="History_Line"]`,
	`.chart-container`,
	`.martech-charts-chart`,
	`div.chart-container canvas`,
}

// BrowserSession owns one playwright browser context shared across all
// pages in a cycle. It is not safe for concurrent scrapes; the monitor
// polls URLs sequentially.
type BrowserSession struct {
	headless    bool
	pw          *playwright.Playwright
	browser     playwright.Browser
	context     playwright.BrowserContext
	mu          sync.Mutex
	initialized bool
}

func NewBrowserSession(headless bool) *BrowserSession {
	return &BrowserSession{headless: headless}
}

func (s *BrowserSession) ensureBrowser() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}

	var err error
	s.pw, err = playwright.Run()
	if err != nil {
		return fmt.Errorf("failed to start playwright: %w", err)
	}

	s.browser, err = s.pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(s.headless),
		Args: []string{
			"--disable-blink-features=AutomationControlled",
			"--disable-dev-shm-usage",
			"--no-sandbox",
		},
	})
	if err != nil {
		return fmt.Errorf("failed to launch browser: %w", err)
	}

	s.context, err = s.browser.NewContext(playwright.BrowserNewContextOptions{
		UserAgent: playwright.String(userAgent),
	})
	if err != nil {
		return fmt.Errorf("failed to create browser context: %w", err)
	}

	s.initialized = true
	return nil
}

func (s *BrowserSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.context != nil {
		s.context.Close()
		s.context = nil
	}
	if s.browser != nil {
		s.browser.Close()
		s.browser = nil
	}
	if s.pw != nil {
		s.pw.Stop()
		s.pw = nil
	}
	s.initialized = false
}

// ScrapeLastSold navigates to one product page, waits for the client-side
// render, and parses the latest-sales data out of the resulting HTML. Any
// navigation failure surfaces as an error so the caller can skip the URL
// without touching its stored records.
func (s *BrowserSession) ScrapeLastSold(ctx context.Context, pageURL string) ([]models.LastSoldRecord, error) {
	if err := s.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := s.context.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	defer page.Close()

	_, err = page.Goto(pageURL, playwright.PageGotoOptions{
		Timeout:   playwright.Float(float64(pageLoadTimeout.Milliseconds())),
		WaitUntil: playwright.WaitUntilStateNetworkidle,
	})
	if err != nil {
		return nil, fmt.Errorf("navigation failed for %s: %w", pageURL, err)
	}

	page.WaitForTimeout(float64(renderSettle.Milliseconds()))

	html, err := page.Content()
	if err != nil {
		return nil, fmt.Errorf("failed to read page content: %w", err)
	}

	records, err := parseLastSold(html, pageURL)
	if err != nil {
		return nil, err
	}

	log.Printf("Scraped %d records from %s", len(records), pageURL)
	return records, nil
}

// CaptureGraph screenshots the price-history chart element into outputDir
// and returns the file path plus image bytes for upload.
func (s *BrowserSession) CaptureGraph(ctx context.Context, pageURL, outputDir string) (string, []byte, error) {
	if err := s.ensureBrowser(); err != nil {
		return "", nil, err
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", nil, fmt.Errorf("failed to create capture dir: %w", err)
	}

	page, err := s.context.NewPage()
	if err != nil {
		return "", nil, fmt.Errorf("failed to create page: %w", err)
	}
	defer page.Close()

	_, err = page.Goto(pageURL, playwright.PageGotoOptions{
		Timeout:   playwright.Float(float64(pageLoadTimeout.Milliseconds())),
		WaitUntil: playwright.WaitUntilStateNetworkidle,
	})
	if err != nil {
		return "", nil, fmt.Errorf("navigation failed for %s: %w", pageURL, err)
	}

	page.WaitForTimeout(float64(renderSettle.Milliseconds()))

	var chart playwright.Locator
	for _, selector := range chartSelectors {
		loc := page.Locator(selector).First()
		if visible, _ := loc.IsVisible(); visible {
			chart = loc
			log.Printf("Found chart element with selector: %s", selector)
			break
		}
	}
	if chart == nil {
		return "", nil, fmt.Errorf("no chart element found on %s", pageURL)
	}

	filename := fmt.Sprintf("%s_%s.png", slugFromURL(pageURL), time.Now().Format("20060102_150405"))
	path := filepath.Join(outputDir, filename)

	data, err := chart.Screenshot(playwright.LocatorScreenshotOptions{
		Path: playwright.String(path),
	})
	if err != nil {
		return "", nil, fmt.Errorf("failed to screenshot chart: %w", err)
	}

	log.Printf("Graph captured: %s", path)
	return path, data, nil
}

func slugFromURL(pageURL string) string {
	i := strings.Index(pageURL, "product/")
	if i == -1 {
		return "unknown_card"
	}
	parts := strings.Split(pageURL[i+len("product/"):], "/")
	if len(parts) < 2 {
		return "unknown_card"
	}
	slug := parts[1]
	if j := strings.IndexAny(slug, "?#"); j != -1 {
		slug = slug[:j]
	}
	if slug == "" {
		return "unknown_card"
	}
	return strings.ReplaceAll(slug, "-", "_")
}
