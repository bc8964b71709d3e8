package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"trends/internal/config"
	"trends/internal/domain/item"
	"trends/internal/logging"
)

const (
	redditBaseURL         = "https://www.reddit.com"
	redditPermalinkPrefix = "https://reddit.com"
	maxCommentsPerPost    = 5
	minCommentLength      = 50
)

// RedditFetcher pulls hot posts and their top comments from a fixed
// subreddit list via the public JSON listing endpoints.
type RedditFetcher struct {
	client       *http.Client
	baseURL      string
	subreddits   []string
	pageLimit    int
	requestDelay time.Duration
	log          logging.Logger
}

// NewRedditFetcher creates a Reddit adapter.
func NewRedditFetcher(cfg config.RedditConfig, log logging.Logger) *RedditFetcher {
	return &RedditFetcher{
		client:       &http.Client{Timeout: 10 * time.Second},
		baseURL:      redditBaseURL,
		subreddits:   cfg.Subreddits,
		pageLimit:    cfg.PageLimit,
		requestDelay: cfg.RequestDelay,
		log:          log,
	}
}

func (f *RedditFetcher) Name() item.Source {
	return item.SourceReddit
}

// redditThing carries the fields used from both post (t3) and comment
// (t1) payloads.
type redditThing struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	SelfText    string  `json:"selftext"`
	Body        string  `json:"body"`
	Permalink   string  `json:"permalink"`
	Ups         int     `json:"ups"`
	NumComments int     `json:"num_comments"`
	CreatedUTC  float64 `json:"created_utc"`
}

type redditListing struct {
	Data struct {
		Children []struct {
			Kind string      `json:"kind"`
			Data redditThing `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// FetchItems walks every configured subreddit, emitting one item per hot
// post within the cutoff plus up to five substantial top-level comments
// per post. Subreddits are fetched sequentially with a fixed delay
// between requests to stay under Reddit's rate limit, and failures in
// one subreddit or one comment fetch never abort the rest.
func (f *RedditFetcher) FetchItems(ctx context.Context, hoursBack int) ([]item.RawItem, error) {
	now := time.Now().UTC()
	cutoff := now.Add(-time.Duration(hoursBack) * time.Hour)

	var items []item.RawItem

	for _, subreddit := range f.subreddits {
		var listing redditListing
		url := fmt.Sprintf("%s/r/%s/hot.json?limit=%d", f.baseURL, subreddit, f.pageLimit)
		if err := f.getJSON(ctx, url, &listing); err != nil {
			f.log.WithError(err).WithField("subreddit", subreddit).Warn("reddit subreddit fetch failed")
			continue
		}

		for _, child := range listing.Data.Children {
			if child.Kind != "t3" {
				continue
			}
			post := child.Data

			created := time.Unix(int64(post.CreatedUTC), 0).UTC()
			if created.Before(cutoff) {
				continue
			}

			permalink := redditPermalinkPrefix + post.Permalink
			text := post.Title
			if post.SelfText != "" {
				text += "\n\n" + post.SelfText
			}

			items = append(items, item.RawItem{
				Source: item.SourceReddit,
				Meta: item.RedditMeta{
					Subreddit: "r/" + subreddit,
					Permalink: permalink,
					Upvotes:   post.Ups,
					Comments:  post.NumComments,
				},
				Text:       text,
				CreatedAt:  created,
				CapturedAt: now,
				Lang:       "en",
			})

			if post.NumComments > 0 {
				items = append(items, f.fetchComments(ctx, subreddit, post, permalink, now)...)
			}
		}

		f.log.WithFields(logging.Fields{"subreddit": subreddit, "posts": len(listing.Data.Children)}).Info("processed subreddit")

		if err := f.sleep(ctx); err != nil {
			return items, err
		}
	}

	return items, nil
}

// fetchComments returns up to maxCommentsPerPost top-level comments for
// a post, skipping deleted markers and short bodies. A failed comment
// fetch only costs that post its comments.
func (f *RedditFetcher) fetchComments(ctx context.Context, subreddit string, post redditThing, permalink string, capturedAt time.Time) []item.RawItem {
	if err := f.sleep(ctx); err != nil {
		return nil
	}

	var thread []redditListing
	url := fmt.Sprintf("%s/r/%s/comments/%s.json?limit=10&sort=top", f.baseURL, subreddit, post.ID)
	if err := f.getJSON(ctx, url, &thread); err != nil {
		f.log.WithError(err).WithField("post", post.ID).Warn("could not fetch comments for post")
		return nil
	}

	// The comments endpoint returns two listings: the post itself, then
	// its top-level comments.
	if len(thread) < 2 {
		return nil
	}

	var items []item.RawItem
	for _, child := range thread[1].Data.Children {
		if len(items) == maxCommentsPerPost {
			break
		}
		if child.Kind != "t1" {
			continue
		}

		comment := child.Data
		if comment.Body == "[deleted]" || comment.Body == "[removed]" || len(comment.Body) <= minCommentLength {
			continue
		}

		items = append(items, item.RawItem{
			Source: item.SourceReddit,
			Meta: item.RedditMeta{
				Subreddit: "r/" + subreddit,
				Permalink: permalink + comment.ID,
				Upvotes:   comment.Ups,
			},
			Text:       comment.Body,
			CreatedAt:  time.Unix(int64(comment.CreatedUTC), 0).UTC(),
			CapturedAt: capturedAt,
			Lang:       "en",
		})
	}

	return items
}

func (f *RedditFetcher) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to Reddit API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Reddit API returned status code %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode Reddit API response: %w", err)
	}

	return nil
}

// sleep pauses for the configured request delay, returning early if the
// context is cancelled.
func (f *RedditFetcher) sleep(ctx context.Context) error {
	if f.requestDelay <= 0 {
		return nil
	}

	timer := time.NewTimer(f.requestDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
