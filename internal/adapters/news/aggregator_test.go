package news

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Jorgecuenca1/market-stock/pkg/models"
)

type fakeProvider struct {
	name     string
	articles []models.Article
	err      error
}

func (p *fakeProvider) News(_ context.Context, _ string, _ int) ([]models.Article, error) {
	return p.articles, p.err
}

func (p *fakeProvider) Name() string { return p.name }

type fakeSentiment struct{}

func (fakeSentiment) Classify(_ string) models.NewsSentiment {
	return models.NewsNeutral
}

func article(headline string, published *time.Time) models.Article {
	return models.Article{
		Headline:    headline,
		Source:      "Test Wire",
		PublishedAt: published,
	}
}

func TestAggregator_ForSymbol(t *testing.T) {
	older := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 8, 2, 10, 0, 0, 0, time.UTC)

	t.Run("deduplicates identical headlines across providers", func(t *testing.T) {
		headline := "Nvidia data center revenue doubles year over year"
		agg := NewAggregator(fakeSentiment{},
			&fakeProvider{name: "a", articles: []models.Article{article(headline, &newer)}},
			&fakeProvider{name: "b", articles: []models.Article{article(headline, &newer)}},
		)

		got, err := agg.ForSymbol(context.Background(), "NVDA", 10)
		if err != nil {
			t.Fatalf("ForSymbol returned error: %v", err)
		}
		if len(got) != 1 {
			t.Errorf("Expected 1 article after dedup, got %d", len(got))
		}
	})

	t.Run("repeated run yields identical set", func(t *testing.T) {
		provider := &fakeProvider{name: "a", articles: []models.Article{
			article("Nvidia data center revenue doubles year over year", &newer),
			article("Broadcom guides above consensus for next quarter", &older),
		}}
		agg := NewAggregator(fakeSentiment{}, provider)

		first, err := agg.ForSymbol(context.Background(), "NVDA", 10)
		if err != nil {
			t.Fatalf("ForSymbol returned error: %v", err)
		}
		second, err := agg.ForSymbol(context.Background(), "NVDA", 10)
		if err != nil {
			t.Fatalf("ForSymbol returned error: %v", err)
		}

		if len(first) != len(second) {
			t.Fatalf("Run sizes differ: %d vs %d", len(first), len(second))
		}
		for i := range first {
			if first[i].Headline != second[i].Headline {
				t.Errorf("Article %d differs: %q vs %q", i, first[i].Headline, second[i].Headline)
			}
		}
	})

	t.Run("filters garbage headlines", func(t *testing.T) {
		agg := NewAggregator(fakeSentiment{}, &fakeProvider{name: "a", articles: []models.Article{
			article("Sign in to view more", &newer),
			article("Too short", &newer),
			article("Intel announces next generation foundry roadmap", &newer),
		}})

		got, err := agg.ForSymbol(context.Background(), "INTC", 10)
		if err != nil {
			t.Fatalf("ForSymbol returned error: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("Expected 1 article, got %d", len(got))
		}
		if got[0].Headline != "Intel announces next generation foundry roadmap" {
			t.Errorf("Unexpected surviving headline: %q", got[0].Headline)
		}
	})

	t.Run("sorts newest first with undated articles last", func(t *testing.T) {
		agg := NewAggregator(fakeSentiment{}, &fakeProvider{name: "a", articles: []models.Article{
			article("Undated wire story about semiconductor supply chains", nil),
			article("Older story about semiconductor capital spending plans", &older),
			article("Newer story about semiconductor export restrictions", &newer),
		}})

		got, err := agg.ForSymbol(context.Background(), "TSM", 10)
		if err != nil {
			t.Fatalf("ForSymbol returned error: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("Expected 3 articles, got %d", len(got))
		}
		if got[0].PublishedAt == nil || !got[0].PublishedAt.Equal(newer) {
			t.Errorf("Expected newest article first")
		}
		if got[2].PublishedAt != nil {
			t.Errorf("Expected undated article last")
		}
	})

	t.Run("failed provider does not block others", func(t *testing.T) {
		agg := NewAggregator(fakeSentiment{},
			&fakeProvider{name: "broken", err: errors.New("connection refused")},
			&fakeProvider{name: "working", articles: []models.Article{
				article("Microsoft raises dividend and expands buyback program", &newer),
			}},
		)

		got, err := agg.ForSymbol(context.Background(), "MSFT", 10)
		if err != nil {
			t.Fatalf("ForSymbol returned error: %v", err)
		}
		if len(got) != 1 {
			t.Errorf("Expected 1 article from working provider, got %d", len(got))
		}
	})

	t.Run("labels sentiment when provider left it empty", func(t *testing.T) {
		agg := NewAggregator(fakeSentiment{}, &fakeProvider{name: "a", articles: []models.Article{
			article("Amazon cloud unit posts steady growth in latest quarter", &newer),
		}})

		got, err := agg.ForSymbol(context.Background(), "AMZN", 10)
		if err != nil {
			t.Fatalf("ForSymbol returned error: %v", err)
		}
		if got[0].Sentiment != models.NewsNeutral {
			t.Errorf("Expected neutral sentiment, got %q", got[0].Sentiment)
		}
	})
}
