package research

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jonathan/talent-manager/internal/fetch"
	"github.com/jonathan/talent-manager/internal/types"
)

type stackOverflowResponse struct {
	Items []stackOverflowQuestion `json:"items"`
}

type stackOverflowQuestion struct {
	Title        string   `json:"title"`
	Link         string   `json:"link"`
	Score        float64  `json:"score"`
	CreationDate int64    `json:"creation_date"`
	Tags         []string `json:"tags"`
}

// fetchStackOverflow pulls the top-voted questions asked in the last week.
// Question titles arrive HTML-entity encoded and are unescaped here.
func (a *Aggregator) fetchStackOverflow(ctx context.Context, client *http.Client) ([]types.ResearchTopic, error) {
	fromDate := a.now().AddDate(0, 0, -7).Unix()

	query := url.Values{}
	query.Set("order", "desc")
	query.Set("sort", "votes")
	query.Set("site", "stackoverflow")
	query.Set("pagesize", fmt.Sprint(stackOverflowQuestionLimit))
	query.Set("fromdate", fmt.Sprint(fromDate))

	var resp stackOverflowResponse
	if err := fetch.JSON(ctx, client, a.stackOverflowURL+"?"+query.Encode(), a.opts, &resp); err != nil {
		return nil, err
	}

	var topics []types.ResearchTopic
	for _, question := range resp.Items {
		if question.Title == "" {
			continue
		}

		title := html.UnescapeString(question.Title)

		raw, _ := toRawData(question)
		topics = append(topics, types.ResearchTopic{
			Title:         title,
			URL:           question.Link,
			Source:        "stackoverflow",
			Category:      "problem_solving",
			TrendingScore: question.Score / 50,
			PublishDate:   time.Unix(question.CreationDate, 0).UTC(),
			Keywords:      ExtractKeywords(title + " " + strings.Join(question.Tags, " ")),
			RawData:       raw,
		})
	}

	return topics, nil
}
