package research

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jonathan/talent-manager/internal/fetch"
	"github.com/jonathan/talent-manager/internal/types"
)

type githubSearchResponse struct {
	Items []githubRepo `json:"items"`
}

type githubRepo struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	HTMLURL         string  `json:"html_url"`
	Language        string  `json:"language"`
	StargazersCount float64 `json:"stargazers_count"`
	CreatedAt       string  `json:"created_at"`
}

// fetchGitHub searches for the most-starred repositories created in the
// last week. The primary language becomes the topic category.
func (a *Aggregator) fetchGitHub(ctx context.Context, client *http.Client) ([]types.ResearchTopic, error) {
	since := a.now().AddDate(0, 0, -7).Format("2006-01-02")

	query := url.Values{}
	query.Set("q", "created:>"+since)
	query.Set("sort", "stars")
	query.Set("order", "desc")
	query.Set("per_page", fmt.Sprint(githubRepoLimit))

	var resp githubSearchResponse
	if err := fetch.JSON(ctx, client, a.githubSearchURL+"?"+query.Encode(), a.opts, &resp); err != nil {
		return nil, err
	}

	var topics []types.ResearchTopic
	for _, repo := range resp.Items {
		if repo.Name == "" {
			continue
		}

		description := repo.Description
		if len(description) > 100 {
			description = description[:100]
		}
		title := repo.Name
		if description != "" {
			title = repo.Name + ": " + description
		}

		category := strings.ToLower(repo.Language)
		if category == "" {
			category = "general"
		}

		created := parseGitHubTime(repo.CreatedAt)

		raw, _ := toRawData(repo)
		topics = append(topics, types.ResearchTopic{
			Title:         title,
			URL:           repo.HTMLURL,
			Source:        "github_trending",
			Category:      category,
			TrendingScore: repo.StargazersCount / 1000,
			PublishDate:   created,
			Keywords:      ExtractKeywords(repo.Name + " " + repo.Description),
			RawData:       raw,
		})
	}

	return topics, nil
}

func parseGitHubTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}
