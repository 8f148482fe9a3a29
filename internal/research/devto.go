package research

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jonathan/talent-manager/internal/fetch"
	"github.com/jonathan/talent-manager/internal/types"
)

type devtoArticle struct {
	Title                  string   `json:"title"`
	URL                    string   `json:"url"`
	PositiveReactionsCount float64  `json:"positive_reactions_count"`
	PublishedAt            string   `json:"published_at"`
	TagList                []string `json:"tag_list"`
	Description            string   `json:"description"`
}

// fetchDevto pulls the top articles from the last week off the Dev.to API.
func (a *Aggregator) fetchDevto(ctx context.Context, client *http.Client) ([]types.ResearchTopic, error) {
	url := fmt.Sprintf("%s?per_page=%d&top=7", a.devtoArticlesURL, devtoArticleLimit)

	var articles []devtoArticle
	if err := fetch.JSON(ctx, client, url, a.opts, &articles); err != nil {
		return nil, err
	}

	var topics []types.ResearchTopic
	for _, article := range articles {
		if article.Title == "" {
			continue
		}

		published := parseDevtoTime(article.PublishedAt)

		raw, _ := toRawData(article)
		topics = append(topics, types.ResearchTopic{
			Title:         article.Title,
			URL:           article.URL,
			Source:        "dev_to",
			Category:      "tutorial",
			TrendingScore: article.PositiveReactionsCount / 100,
			PublishDate:   published,
			Keywords:      ExtractKeywords(article.Title + " " + strings.Join(article.TagList, " ")),
			RawData:       raw,
		})
	}

	return topics, nil
}

// parseDevtoTime parses the RFC3339 publish time; an unparseable value
// yields the zero time, which the scorer treats as one day old.
func parseDevtoTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}
