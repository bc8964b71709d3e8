package source

import (
	"context"
	"html"
	"net/http"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"

	"trends/internal/config"
	"trends/internal/domain/item"
	"trends/internal/logging"
)

// Entries whose cleaned text is shorter than this are treated as noise.
const minRSSTextLength = 100

var stripPolicy = bluemonday.StrictPolicy()

// RSSFetcher pulls entries from a fixed list of feeds.
type RSSFetcher struct {
	feeds  []string
	parser *gofeed.Parser
	log    logging.Logger
}

// NewRSSFetcher creates an RSS adapter.
func NewRSSFetcher(cfg config.RSSConfig, log logging.Logger) *RSSFetcher {
	parser := gofeed.NewParser()
	parser.UserAgent = userAgent
	parser.Client = &http.Client{Timeout: cfg.Timeout}

	return &RSSFetcher{
		feeds:  cfg.Feeds,
		parser: parser,
		log:    log,
	}
}

func (f *RSSFetcher) Name() item.Source {
	return item.SourceRSS
}

// FetchItems parses every configured feed and emits one item per entry
// published within the cutoff. A failing feed is logged and skipped; it
// never aborts the remaining feeds.
func (f *RSSFetcher) FetchItems(ctx context.Context, hoursBack int) ([]item.RawItem, error) {
	now := time.Now().UTC()
	cutoff := now.Add(-time.Duration(hoursBack) * time.Hour)

	var items []item.RawItem

	for _, feedURL := range f.feeds {
		feed, err := f.parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			f.log.WithError(err).WithField("feed", feedURL).Warn("rss feed fetch failed")
			continue
		}

		for _, entry := range feed.Items {
			published := now
			if entry.PublishedParsed != nil {
				published = entry.PublishedParsed.UTC()
			} else if entry.UpdatedParsed != nil {
				published = entry.UpdatedParsed.UTC()
			}

			if published.Before(cutoff) {
				continue
			}

			body := entry.Description
			if body == "" {
				body = entry.Content
			}

			text := strings.TrimSpace(entry.Title + "\n\n" + StripHTML(body))
			if len(text) < minRSSTextLength {
				continue
			}

			items = append(items, item.RawItem{
				Source: item.SourceRSS,
				Meta: item.RSSMeta{
					FeedURL:   feedURL,
					Permalink: entry.Link,
				},
				Text:       text,
				CreatedAt:  published,
				CapturedAt: now,
				Lang:       "en",
			})
		}

		f.log.WithFields(logging.Fields{"feed": feedURL, "entries": len(feed.Items)}).Info("processed rss feed")
	}

	return items, nil
}

// StripHTML reduces an HTML fragment to plain text: tags removed,
// entities decoded, whitespace collapsed.
func StripHTML(s string) string {
	stripped := html.UnescapeString(stripPolicy.Sanitize(s))
	return strings.Join(strings.Fields(stripped), " ")
}
