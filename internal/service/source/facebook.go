package source

import (
	"context"
	"strings"

	"trends/internal/config"
	"trends/internal/domain/item"
	"trends/internal/logging"
)

// FacebookFetcher monitors public education pages through the Graph API.
// The live API integration is pending app review; until then the adapter
// keeps the fetch contract so the pipeline composes uniformly, returning
// no items.
type FacebookFetcher struct {
	appID     string
	appSecret string
	pageIDs   []string
	log       logging.Logger
}

// NewFacebookFetcher creates a Facebook adapter.
func NewFacebookFetcher(cfg config.FacebookConfig, log logging.Logger) *FacebookFetcher {
	return &FacebookFetcher{
		appID:     cfg.AppID,
		appSecret: cfg.AppSecret,
		pageIDs:   cfg.PageIDs,
		log:       log,
	}
}

func (f *FacebookFetcher) Name() item.Source {
	return item.SourceFacebook
}

// FetchItems degrades to an empty result: with a warning when app
// credentials are absent, otherwise noting the pending integration.
func (f *FacebookFetcher) FetchItems(ctx context.Context, hoursBack int) ([]item.RawItem, error) {
	if f.appID == "" || f.appSecret == "" {
		f.log.Warn("facebook: no app credentials provided, skipping facebook source")
		return nil, nil
	}

	f.log.WithField("pages", strings.Join(f.pageIDs, ",")).Info("facebook: graph api integration pending, collected 0 items")
	return nil, nil
}
