package research

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/jonathan/talent-manager/internal/fetch"
	"github.com/jonathan/talent-manager/internal/logging"
	"github.com/jonathan/talent-manager/internal/types"
)

// blogTrendingScore is the flat popularity signal assigned to blog entries;
// RSS feeds carry no vote counts.
const blogTrendingScore = 1.0

// fetchBlogs polls each configured RSS/Atom feed. A broken feed is logged
// and skipped.
func (a *Aggregator) fetchBlogs(ctx context.Context, client *http.Client) ([]types.ResearchTopic, error) {
	parser := gofeed.NewParser()

	var topics []types.ResearchTopic
	for _, feedURL := range a.profile.BlogFeeds {
		body, err := fetch.Bytes(ctx, client, feedURL, a.opts)
		if err != nil {
			logging.Warn("blog feed fetch failed", "feed", feedURL, "err", err)
			continue
		}

		feed, err := parser.Parse(bytes.NewReader(body))
		if err != nil {
			logging.Warn("blog feed parse failed", "feed", feedURL, "err", err)
			continue
		}

		source := blogSource(feedURL)
		items := feed.Items
		if len(items) > blogEntriesPerFeed {
			items = items[:blogEntriesPerFeed]
		}

		for _, item := range items {
			if item.Title == "" {
				continue
			}

			published := time.Time{}
			if item.PublishedParsed != nil {
				published = item.PublishedParsed.UTC()
			} else if item.UpdatedParsed != nil {
				published = item.UpdatedParsed.UTC()
			}

			summary := fetch.StripHTML(item.Description)
			topics = append(topics, types.ResearchTopic{
				Title:         item.Title,
				URL:           item.Link,
				Source:        source,
				Category:      "blog_post",
				TrendingScore: blogTrendingScore,
				PublishDate:   published,
				Keywords:      ExtractKeywords(item.Title + " " + summary),
				RawData: map[string]any{
					"title":   item.Title,
					"summary": summary,
					"feed":    feedURL,
				},
			})
		}
	}

	return topics, nil
}

// blogSource derives a stable source identifier like "blog_github.blog"
// from a feed URL.
func blogSource(feedURL string) string {
	parsed, err := url.Parse(feedURL)
	if err != nil || parsed.Host == "" {
		return "blog_unknown"
	}
	return "blog_" + parsed.Host
}
