package item

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Source identifies the origin platform of a captured item.
type Source string

const (
	SourceReddit   Source = "reddit"
	SourceRSS      Source = "rss"
	SourceTwitter  Source = "twitter"
	SourceFacebook Source = "facebook"
)

// Sources lists every known origin in a fixed order.
var Sources = []Source{SourceReddit, SourceRSS, SourceTwitter, SourceFacebook}

// Valid reports whether s is a known source.
func (s Source) Valid() bool {
	switch s {
	case SourceReddit, SourceRSS, SourceTwitter, SourceFacebook:
		return true
	}
	return false
}

// Label is a categorical sentiment bucket.
type Label string

const (
	LabelNegative Label = "negative"
	LabelNeutral  Label = "neutral"
	LabelPositive Label = "positive"
)

// Shared thresholds for deriving a label from a compound score. The same
// rule applies to individual items and to aggregated averages.
const (
	PositiveThreshold = 0.05
	NegativeThreshold = -0.05
)

// LabelForScore maps a compound score in [-1, 1] to a label.
func LabelForScore(score float64) Label {
	switch {
	case score >= PositiveThreshold:
		return LabelPositive
	case score <= NegativeThreshold:
		return LabelNegative
	default:
		return LabelNeutral
	}
}

// Meta holds the origin-specific fields of an item. Each source has its own
// variant; only the permalink (or native id) participates in identity.
type Meta interface {
	// NativeID returns the permalink or native identifier used to derive
	// the item's content hash.
	NativeID() string

	// Engagement returns the variant's engagement counts collapsed to a
	// single scalar. Missing counts contribute zero.
	Engagement() int
}

// RedditMeta describes a Reddit post or comment.
type RedditMeta struct {
	Subreddit string `json:"subreddit"`
	Permalink string `json:"permalink"`
	Upvotes   int    `json:"upvotes,omitempty"`
	Comments  int    `json:"comments,omitempty"`
}

func (m RedditMeta) NativeID() string { return m.Permalink }
func (m RedditMeta) Engagement() int  { return m.Upvotes + m.Comments }

// RSSMeta describes a feed entry. Feeds carry no engagement counts.
type RSSMeta struct {
	FeedURL   string `json:"feedUrl"`
	Permalink string `json:"permalink"`
}

func (m RSSMeta) NativeID() string { return m.Permalink }
func (m RSSMeta) Engagement() int  { return 0 }

// TwitterMeta describes a tweet.
type TwitterMeta struct {
	Handle    string `json:"handle"`
	Permalink string `json:"permalink"`
	Retweets  int    `json:"retweets,omitempty"`
	Likes     int    `json:"likes,omitempty"`
}

func (m TwitterMeta) NativeID() string { return m.Permalink }
func (m TwitterMeta) Engagement() int  { return m.Retweets + m.Likes }

// FacebookMeta describes a public page post.
type FacebookMeta struct {
	PageID    string `json:"pageId"`
	Permalink string `json:"permalink"`
	Likes     int    `json:"likes,omitempty"`
	Shares    int    `json:"shares,omitempty"`
}

func (m FacebookMeta) NativeID() string { return m.Permalink }
func (m FacebookMeta) Engagement() int  { return m.Likes + m.Shares }

// DecodeMeta unmarshals a serialized meta payload into the variant that
// matches the item's source.
func DecodeMeta(source Source, data []byte) (Meta, error) {
	var (
		meta Meta
		err  error
	)
	switch source {
	case SourceReddit:
		var m RedditMeta
		err = json.Unmarshal(data, &m)
		meta = m
	case SourceRSS:
		var m RSSMeta
		err = json.Unmarshal(data, &m)
		meta = m
	case SourceTwitter:
		var m TwitterMeta
		err = json.Unmarshal(data, &m)
		meta = m
	case SourceFacebook:
		var m FacebookMeta
		err = json.Unmarshal(data, &m)
		meta = m
	default:
		return nil, fmt.Errorf("unknown source: %s", source)
	}
	if err != nil {
		return nil, fmt.Errorf("error decoding %s meta: %w", source, err)
	}
	return meta, nil
}

// RawItem is one captured social or RSS post/comment in canonical form.
type RawItem struct {
	ID             string    `json:"id"`
	Source         Source    `json:"source"`
	Meta           Meta      `json:"sourceMeta"`
	Text           string    `json:"text"`
	CreatedAt      time.Time `json:"createdAt"`
	CapturedAt     time.Time `json:"capturedAt"`
	Lang           string    `json:"lang"`
	SentimentScore *float64  `json:"sentimentScore,omitempty"`
	SentimentLabel Label     `json:"sentimentLabel,omitempty"`
}

// Scored reports whether the item has been through sentiment analysis.
func (it RawItem) Scored() bool {
	return it.SentimentScore != nil
}

// Engagement returns the item's engagement scalar, zero when no meta is set.
func (it RawItem) Engagement() int {
	if it.Meta == nil {
		return 0
	}
	return it.Meta.Engagement()
}

// ComputeID derives the content identifier for an item:
// SHA-256 over "source:nativeID", hex encoded. The same source and
// permalink always yield the same id, which is what makes re-ingestion
// idempotent.
func ComputeID(source Source, nativeID string) string {
	sum := sha256.Sum256([]byte(string(source) + ":" + nativeID))
	return hex.EncodeToString(sum[:])
}
