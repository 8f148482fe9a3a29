package research

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jonathan/talent-manager/internal/fetch"
	"github.com/jonathan/talent-manager/internal/logging"
	"github.com/jonathan/talent-manager/internal/types"
)

type hackerNewsItem struct {
	ID    int64   `json:"id"`
	Title string  `json:"title"`
	URL   string  `json:"url"`
	Score float64 `json:"score"`
	Time  int64   `json:"time"`
	Type  string  `json:"type"`
	By    string  `json:"by"`
}

// fetchHackerNews reads the top-story ID list and then looks up each story.
// Individual story failures are logged and skipped.
func (a *Aggregator) fetchHackerNews(ctx context.Context, client *http.Client) ([]types.ResearchTopic, error) {
	var storyIDs []int64
	listURL := a.hackerNewsBaseURL + "/topstories.json"
	if err := fetch.JSON(ctx, client, listURL, a.opts, &storyIDs); err != nil {
		return nil, err
	}

	if len(storyIDs) > hackerNewsStoryLimit {
		storyIDs = storyIDs[:hackerNewsStoryLimit]
	}

	var topics []types.ResearchTopic
	for _, id := range storyIDs {
		itemURL := fmt.Sprintf("%s/item/%d.json", a.hackerNewsBaseURL, id)

		var item hackerNewsItem
		if err := fetch.JSON(ctx, client, itemURL, a.opts, &item); err != nil {
			logging.Warn("hackernews item fetch failed", "id", id, "err", err)
			continue
		}
		if item.Title == "" {
			continue
		}

		raw, _ := toRawData(item)
		topics = append(topics, types.ResearchTopic{
			Title:         item.Title,
			URL:           item.URL,
			Source:        "hackernews",
			Category:      "tech_news",
			TrendingScore: item.Score / 500,
			PublishDate:   time.Unix(item.Time, 0).UTC(),
			Keywords:      ExtractKeywords(item.Title),
			RawData:       raw,
		})
	}

	return topics, nil
}
