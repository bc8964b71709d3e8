// Package source contains one fetch adapter per origin platform. Every
// adapter emits pre-normalized raw items: the content id and sentiment
// fields are filled in downstream.
package source

import (
	"context"

	"trends/internal/config"
	"trends/internal/domain/item"
	"trends/internal/logging"
)

const userAgent = "trends-worker/1.0 (educational content analysis)"

// Fetcher is the contract every origin adapter implements. Failures
// inside one feed/subreddit/query are handled and logged by the adapter
// itself; a returned error means the whole source was unusable.
type Fetcher interface {
	// Name returns the origin this adapter fetches from.
	Name() item.Source

	// FetchItems returns items published within the last hoursBack hours.
	FetchItems(ctx context.Context, hoursBack int) ([]item.RawItem, error)
}

// BuildFetchers assembles the active adapter set from configuration.
// Sources whose credentials are absent are skipped with a warning so the
// pipeline composes uniformly regardless of which origins are enabled.
// RSS needs no credentials and is always active.
func BuildFetchers(cfg config.SourcesConfig, log logging.Logger) []Fetcher {
	fetchers := []Fetcher{NewRSSFetcher(cfg.RSS, log)}

	if cfg.Reddit.Enabled() {
		fetchers = append(fetchers, NewRedditFetcher(cfg.Reddit, log))
	} else {
		log.Warn("reddit credentials not found, skipping reddit source")
	}

	if cfg.Twitter.Enabled() {
		fetchers = append(fetchers, NewTwitterFetcher(cfg.Twitter, log))
	} else {
		log.Warn("twitter credentials not found, skipping twitter source")
	}

	if cfg.Facebook.Enabled() {
		fetchers = append(fetchers, NewFacebookFetcher(cfg.Facebook, log))
	} else {
		log.Warn("facebook credentials not found, skipping facebook source")
	}

	return fetchers
}
