package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/Jorgecuenca1/market-stock/pkg/logger"
	"github.com/Jorgecuenca1/market-stock/pkg/models"
)

// News fetches up to limit recent articles for symbol via the Yahoo
// search endpoint. Articles with no headline are dropped; sentiment is
// left unset for the aggregator to fill in.
func (c *Client) News(ctx context.Context, symbol string, limit int) ([]models.Article, error) {
	body, err := c.http.Get(ctx, fmt.Sprintf(searchURL, url.QueryEscape(symbol), limit))
	if err != nil {
		return nil, err
	}

	var result struct {
		News []struct {
			Title               string `json:"title"`
			Publisher           string `json:"publisher"`
			Link                string `json:"link"`
			ProviderPublishTime int64  `json:"providerPublishTime"`
			Summary             string `json:"summary"`
		} `json:"news"`
	}

	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	articles := make([]models.Article, 0, len(result.News))
	for _, item := range result.News {
		if item.Title == "" {
			continue
		}

		article := models.Article{
			Headline: item.Title,
			Summary:  item.Summary,
			URL:      item.Link,
			Source:   item.Publisher,
		}
		if article.Source == "" {
			article.Source = sourceName
		}
		if item.ProviderPublishTime > 0 {
			published := time.Unix(item.ProviderPublishTime, 0).UTC()
			article.PublishedAt = &published
		}

		articles = append(articles, article)
	}

	logger.Debug("fetched news",
		zap.String("symbol", symbol),
		zap.Int("count", len(articles)),
	)

	return articles, nil
}
