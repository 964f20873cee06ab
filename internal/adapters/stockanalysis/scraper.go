package stockanalysis

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Jorgecuenca1/market-stock/internal/adapters/httpclient"
	"github.com/Jorgecuenca1/market-stock/pkg/models"
)

const (
	sourceName = "StockAnalysis"
	ratiosURL  = "https://stockanalysis.com/stocks/%s/financials/ratios/"
)

// Scraper extracts the interest coverage ratio from a StockAnalysis.com
// ratios page
type Scraper struct {
	http *httpclient.Client
}

// NewScraper creates new StockAnalysis scraper
func NewScraper() *Scraper {
	return &Scraper{
		http: httpclient.New(sourceName),
	}
}

// Name returns the source tag recorded on persisted rows
func (s *Scraper) Name() string {
	return sourceName
}

// Fundamentals fetches and parses the ratios page for symbol
func (s *Scraper) Fundamentals(ctx context.Context, symbol string) (*models.Fundamentals, error) {
	body, err := s.http.Get(ctx, fmt.Sprintf(ratiosURL, strings.ToLower(symbol)))
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	f := &models.Fundamentals{}

	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("th, td")
		if cells.Length() < 2 {
			return
		}

		label := strings.TrimSpace(cells.Eq(0).Text())
		if !strings.Contains(label, "Interest Coverage") {
			return
		}

		raw := strings.ReplaceAll(strings.TrimSpace(cells.Eq(1).Text()), ",", "")
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			f.InterestCoverage = &v
		}
	})

	return f, nil
}
