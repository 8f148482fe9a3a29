package research

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/jonathan/talent-manager/internal/fetch"
	"github.com/jonathan/talent-manager/internal/logging"
	"github.com/jonathan/talent-manager/internal/types"
)

// redditListing mirrors the subset of Reddit's listing JSON we consume.
type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	Title      string  `json:"title"`
	URL        string  `json:"url"`
	Score      float64 `json:"score"`
	CreatedUTC float64 `json:"created_utc"`
	Permalink  string  `json:"permalink"`
	Subreddit  string  `json:"subreddit"`
}

// fetchReddit pulls hot posts from each configured subreddit. A failure for
// one subreddit is logged and skipped so the others still contribute.
func (a *Aggregator) fetchReddit(ctx context.Context, client *http.Client) ([]types.ResearchTopic, error) {
	var topics []types.ResearchTopic

	for name, url := range a.profile.Subreddits {
		var listing redditListing
		if err := fetch.JSON(ctx, client, url, a.opts, &listing); err != nil {
			logging.Warn("reddit fetch failed", "subreddit", name, "err", err)
			continue
		}

		children := listing.Data.Children
		if len(children) > redditPostsPerSubreddit {
			children = children[:redditPostsPerSubreddit]
		}

		for _, child := range children {
			post := child.Data
			if post.Title == "" {
				continue
			}

			raw, _ := toRawData(post)
			topics = append(topics, types.ResearchTopic{
				Title:         post.Title,
				URL:           post.URL,
				Source:        "reddit_" + name,
				Category:      name,
				TrendingScore: post.Score / 1000,
				PublishDate:   time.Unix(int64(post.CreatedUTC), 0).UTC(),
				Keywords:      ExtractKeywords(post.Title),
				RawData:       raw,
			})
		}
	}

	return topics, nil
}

// toRawData round-trips a source payload struct into the generic map kept on
// the topic for audit.
func toRawData(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
