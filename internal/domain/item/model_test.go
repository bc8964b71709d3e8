package item

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeID(t *testing.T) {
	id := ComputeID(SourceReddit, "/r/Teachers/comments/abc123/title/")
	require.Equal(t, "af0ca714e6c75aac172352795c8180f050290e04338a25fdacfc8c4792a86cbd", id)

	// Same inputs always hash to the same id.
	require.Equal(t, id, ComputeID(SourceReddit, "/r/Teachers/comments/abc123/title/"))

	// Source participates in identity.
	require.NotEqual(t, id, ComputeID(SourceRSS, "/r/Teachers/comments/abc123/title/"))
}

func TestLabelForScore(t *testing.T) {
	tests := []struct {
		score float64
		want  Label
	}{
		{1, LabelPositive},
		{0.05, LabelPositive},
		{0.0499, LabelNeutral},
		{0, LabelNeutral},
		{-0.0499, LabelNeutral},
		{-0.05, LabelNegative},
		{-1, LabelNegative},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, LabelForScore(tt.score), "score %v", tt.score)
	}
}

func TestMetaEngagement(t *testing.T) {
	require.Equal(t, 15, RedditMeta{Upvotes: 10, Comments: 5}.Engagement())
	require.Equal(t, 0, RSSMeta{Permalink: "https://example.com/post"}.Engagement())
	require.Equal(t, 8, TwitterMeta{Retweets: 3, Likes: 5}.Engagement())
	require.Equal(t, 7, FacebookMeta{Likes: 4, Shares: 3}.Engagement())

	// Missing counts contribute zero.
	require.Equal(t, 0, RedditMeta{}.Engagement())
}

func TestDecodeMeta(t *testing.T) {
	meta, err := DecodeMeta(SourceReddit, []byte(`{"subreddit":"EdTech","permalink":"/r/EdTech/comments/x/","upvotes":42}`))
	require.NoError(t, err)
	require.Equal(t, RedditMeta{Subreddit: "EdTech", Permalink: "/r/EdTech/comments/x/", Upvotes: 42}, meta)
	require.Equal(t, "/r/EdTech/comments/x/", meta.NativeID())

	meta, err = DecodeMeta(SourceTwitter, []byte(`{"handle":"user","permalink":"https://twitter.com/i/web/status/1","retweets":2,"likes":3}`))
	require.NoError(t, err)
	require.Equal(t, 5, meta.Engagement())

	_, err = DecodeMeta(Source("myspace"), []byte(`{}`))
	require.Error(t, err)

	_, err = DecodeMeta(SourceRSS, []byte(`not json`))
	require.Error(t, err)
}

func TestRawItemScoredAndEngagement(t *testing.T) {
	it := RawItem{Source: SourceReddit, Meta: RedditMeta{Upvotes: 7}}
	require.False(t, it.Scored())
	require.Equal(t, 7, it.Engagement())

	score := 0.3
	it.SentimentScore = &score
	require.True(t, it.Scored())

	require.Equal(t, 0, RawItem{}.Engagement())
}
