package source

import (
	"context"
	"net/http"
	"time"

	twitter "github.com/g8rswimmer/go-twitter/v2"

	"trends/internal/config"
	"trends/internal/domain/item"
	"trends/internal/logging"
)

// Recent search only reaches back seven days; older cutoffs are clamped.
const twitterRecentSearchLimit = 7 * 24 * time.Hour

type bearerAuthorizer struct {
	token string
}

func (a bearerAuthorizer) Add(req *http.Request) {
	req.Header.Add("Authorization", "Bearer "+a.token)
}

// TwitterFetcher pulls recent tweets matching a fixed query list via the
// v2 recent-search API. Without a bearer token it degrades to an empty
// result with a warning, preserving the adapter contract.
type TwitterFetcher struct {
	client  *twitter.Client
	queries []string
	log     logging.Logger
}

// NewTwitterFetcher creates a Twitter adapter.
func NewTwitterFetcher(cfg config.TwitterConfig, log logging.Logger) *TwitterFetcher {
	f := &TwitterFetcher{
		queries: cfg.Queries,
		log:     log,
	}

	if cfg.BearerToken != "" {
		f.client = &twitter.Client{
			Authorizer: bearerAuthorizer{token: cfg.BearerToken},
			Client:     &http.Client{Timeout: 10 * time.Second},
			Host:       "https://api.twitter.com",
		}
	}

	return f
}

func (f *TwitterFetcher) Name() item.Source {
	return item.SourceTwitter
}

// FetchItems runs each configured query against recent search. A failed
// query is logged and skipped.
func (f *TwitterFetcher) FetchItems(ctx context.Context, hoursBack int) ([]item.RawItem, error) {
	if f.client == nil {
		f.log.Warn("twitter: no bearer token provided, skipping twitter source")
		return nil, nil
	}

	now := time.Now().UTC()
	start := now.Add(-time.Duration(hoursBack) * time.Hour)
	if oldest := now.Add(-twitterRecentSearchLimit + time.Minute); start.Before(oldest) {
		start = oldest
	}

	var items []item.RawItem

	for _, query := range f.queries {
		res, err := f.client.TweetRecentSearch(ctx, query, twitter.TweetRecentSearchOpts{
			StartTime:  start,
			MaxResults: 50,
			TweetFields: []twitter.TweetField{
				twitter.TweetFieldCreatedAt,
				twitter.TweetFieldPublicMetrics,
				twitter.TweetFieldAuthorID,
			},
		})
		if err != nil {
			f.log.WithError(err).WithField("query", query).Warn("twitter search failed")
			continue
		}
		if res.Raw == nil {
			continue
		}

		for _, tweet := range res.Raw.Tweets {
			created := now
			if parsed, err := time.Parse(time.RFC3339, tweet.CreatedAt); err == nil {
				created = parsed.UTC()
			}

			var retweets, likes int
			if tweet.PublicMetrics != nil {
				retweets = tweet.PublicMetrics.Retweets
				likes = tweet.PublicMetrics.Likes
			}

			items = append(items, item.RawItem{
				Source: item.SourceTwitter,
				Meta: item.TwitterMeta{
					Handle:    tweet.AuthorID,
					Permalink: "https://twitter.com/i/web/status/" + tweet.ID,
					Retweets:  retweets,
					Likes:     likes,
				},
				Text:       tweet.Text,
				CreatedAt:  created,
				CapturedAt: now,
				Lang:       "en",
			})
		}

		f.log.WithFields(logging.Fields{"query": query, "tweets": len(res.Raw.Tweets)}).Info("processed twitter query")
	}

	return items, nil
}
