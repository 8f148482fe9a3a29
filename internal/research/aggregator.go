// Package research discovers trending topic candidates from external feeds
// (Reddit, Hacker News, Dev.to, GitHub, Stack Overflow, blog RSS) and scores
// them for a talent's specialization.
package research

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/talent-manager/internal/fetch"
	"github.com/jonathan/talent-manager/internal/logging"
	"github.com/jonathan/talent-manager/internal/scoring"
	"github.com/jonathan/talent-manager/internal/specialization"
	"github.com/jonathan/talent-manager/internal/types"
)

// Per-source caps on items examined, bounding latency and request volume.
const (
	redditPostsPerSubreddit    = 20
	hackerNewsStoryLimit       = 30
	devtoArticleLimit          = 30
	githubRepoLimit            = 30
	stackOverflowQuestionLimit = 30
	blogEntriesPerFeed         = 10
)

const (
	defaultHackerNewsBaseURL = "https://hacker-news.firebaseio.com/v0"
	defaultDevtoArticlesURL  = "https://dev.to/api/articles"
	defaultGitHubSearchURL   = "https://api.github.com/search/repositories"
	defaultStackOverflowURL  = "https://api.stackexchange.com/2.3/questions"
)

// Aggregator fetches topic candidates from all configured sources for one
// specialization. It owns an HTTP client for the duration of each research
// cycle and releases its idle connections when the cycle ends.
type Aggregator struct {
	profile specialization.Profile
	opts    *fetch.Options

	hackerNewsBaseURL string
	devtoArticlesURL  string
	githubSearchURL   string
	stackOverflowURL  string

	// now is injectable for tests; defaults to time.Now.
	now func() time.Time
}

// NewAggregator returns an aggregator bound to a specialization profile.
func NewAggregator(profile specialization.Profile) *Aggregator {
	return &Aggregator{
		profile:           profile,
		opts:              fetch.DefaultOptions(),
		hackerNewsBaseURL: defaultHackerNewsBaseURL,
		devtoArticlesURL:  defaultDevtoArticlesURL,
		githubSearchURL:   defaultGitHubSearchURL,
		stackOverflowURL:  defaultStackOverflowURL,
		now:               time.Now,
	}
}

// ResearchTrendingTopics fetches candidates from every source concurrently,
// scores them, and returns at most limit topics sorted descending by content
// potential. A failing source contributes zero topics; total failure of all
// sources yields an empty slice and a nil error, which callers treat as a
// valid retryable-later outcome.
func (a *Aggregator) ResearchTrendingTopics(ctx context.Context, limit int) ([]types.ResearchTopic, error) {
	logging.Info("research cycle start", "specialization", a.profile.Name)

	client := &http.Client{}
	defer client.CloseIdleConnections()

	var (
		mu     sync.Mutex
		topics []types.ResearchTopic
	)

	g, gCtx := errgroup.WithContext(ctx)
	collect := func(source string, fn func(context.Context, *http.Client) ([]types.ResearchTopic, error)) {
		g.Go(func() error {
			found, err := fn(gCtx, client)
			if err != nil {
				logging.Warn("research source failed", "source", source, "err", err)
				return nil
			}
			mu.Lock()
			topics = append(topics, found...)
			mu.Unlock()
			return nil
		})
	}

	collect("reddit", a.fetchReddit)
	collect("hackernews", a.fetchHackerNews)
	collect("dev_to", a.fetchDevto)
	collect("github_trending", a.fetchGitHub)
	collect("stackoverflow", a.fetchStackOverflow)
	collect("blogs", a.fetchBlogs)
	if err := g.Wait(); err != nil {
		return nil, err
	}

	scored := scoring.ScoreTopics(topics, a.profile, a.now())

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].ContentPotential > scored[j].ContentPotential
	})
	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}

	logging.Info("research cycle complete",
		"specialization", a.profile.Name, "topics", len(scored))

	return scored, nil
}
