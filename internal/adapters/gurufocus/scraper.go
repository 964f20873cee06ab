package gurufocus

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Jorgecuenca1/market-stock/internal/adapters/httpclient"
	"github.com/Jorgecuenca1/market-stock/pkg/models"
)

const (
	sourceName = "GuruFocus"
	summaryURL = "https://www.gurufocus.com/stock/%s/summary"
)

var (
	gfScoreRe   = regexp.MustCompile(`(\d{1,3})/100`)
	piotroskiRe = regexp.MustCompile(`(\d)/9`)
	numberRe    = regexp.MustCompile(`(-?\d+\.?\d*)`)
)

// Scraper extracts the GF Score, Altman Z-Score, Piotroski F-Score and
// PEG ratio from a GuruFocus summary page. Everything it returns is a
// secondary supplement to the Yahoo record.
type Scraper struct {
	http *httpclient.Client
}

// NewScraper creates new GuruFocus scraper
func NewScraper() *Scraper {
	return &Scraper{
		http: httpclient.New(sourceName),
	}
}

// Name returns the source tag recorded on persisted rows
func (s *Scraper) Name() string {
	return sourceName
}

// Fundamentals fetches and parses the summary page for symbol. Fields
// that cannot be located stay nil.
func (s *Scraper) Fundamentals(ctx context.Context, symbol string) (*models.Fundamentals, error) {
	body, err := s.http.Get(ctx, fmt.Sprintf(summaryURL, symbol))
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	f := &models.Fundamentals{}

	if text := labelText(doc, "GF Score"); text != "" {
		if m := gfScoreRe.FindStringSubmatch(text); m != nil {
			score := m[1] + "/100"
			f.GFScore = &score
		}
	}

	if text := labelText(doc, "Altman Z-Score"); text != "" {
		if m := numberRe.FindStringSubmatch(stripLabel(text, "Altman Z-Score")); m != nil {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				f.AltmanZScore = &v
			}
		}
	}

	if text := labelText(doc, "Piotroski F-Score"); text != "" {
		if m := piotroskiRe.FindStringSubmatch(text); m != nil {
			score := m[1] + "/9"
			f.PiotroskiScore = &score
		}
	}

	if text := labelText(doc, "PEG Ratio"); text != "" {
		if m := numberRe.FindStringSubmatch(stripLabel(text, "PEG Ratio")); m != nil {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				f.PEGRatio = &v
			}
		}
	}

	return f, nil
}

// labelText returns the text of the innermost element containing label,
// widened to its parent so the adjacent value is included
func labelText(doc *goquery.Document, label string) string {
	sel := doc.Find(fmt.Sprintf(`*:contains("%s")`, label)).Last()
	if sel.Length() == 0 {
		return ""
	}

	text := strings.TrimSpace(sel.Parent().Text())
	if text == "" {
		text = strings.TrimSpace(sel.Text())
	}
	return text
}

// stripLabel removes the label itself so numberRe does not match digits
// inside it
func stripLabel(text, label string) string {
	return strings.Replace(text, label, "", 1)
}
