// Package topics groups texts into topical clusters using keyword
// overlap. The grouping key is derived from the text alone, so clustering
// needs no external state and is deterministic for a given input order.
package topics

import (
	"regexp"
	"sort"
	"strings"
)

// Cluster is one topical group over the input texts.
type Cluster struct {
	Topic    string
	Keywords []string
	Indexes  []int // positions in the input slice
}

// stopwords the extractor drops before scoring. Includes filler words
// that show up constantly in education-related discussion without
// carrying topical meaning.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`
		the a an and or but in on at to for of with by from up about into
		through during before after above below between among this that
		these those i me my myself we our ours ourselves you your yours
		yourself yourselves he him his himself she her hers herself it its
		itself they them their theirs themselves what which who whom where
		when why how all any both each few more most other some such no
		nor not only own same so than too very s t can will just don
		should now get go make take come see know think say way could
		would really actually definitely probably maybe perhaps certainly
		always never sometimes often usually generally specifically
		basically literally obviously honestly frankly clearly`) {
		stopwords[w] = struct{}{}
	}
}

var wordRe = regexp.MustCompile(`[a-zA-Z]+`)

const (
	similarityThreshold = 0.3
	maxKeywordsPerText  = 15
	topicNameKeywords   = 3
	fallbackTopic       = "General Discussion"
)

// ExtractKeywords returns up to max keywords from text, ordered by a
// frequency score with a boost for words appearing in the first 100
// characters (titles lead the text in every adapter).
func ExtractKeywords(text string, max int) []string {
	lower := strings.ToLower(text)
	head := lower
	if len(head) > 100 {
		head = head[:100]
	}

	counts := make(map[string]int)
	for _, word := range wordRe.FindAllString(lower, -1) {
		if len(word) <= 2 {
			continue
		}
		if _, stop := stopwords[word]; stop {
			continue
		}
		counts[word]++
	}

	type scored struct {
		word  string
		score float64
	}

	ranked := make([]scored, 0, len(counts))
	for word, count := range counts {
		score := float64(count)
		if strings.Contains(head, word) {
			score *= 1.5
		}
		ranked = append(ranked, scored{word, score})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].word < ranked[j].word
	})

	if len(ranked) > max {
		ranked = ranked[:max]
	}

	keywords := make([]string, len(ranked))
	for i, s := range ranked {
		keywords[i] = s.word
	}
	return keywords
}

// ClusterByTopic greedily groups texts whose keyword sets overlap by more
// than the similarity threshold. Each text lands in at most one cluster;
// clusters smaller than minClusterSize are discarded. Results are ordered
// by volume, largest first.
func ClusterByTopic(texts []string, minClusterSize int) []Cluster {
	keywords := make([][]string, len(texts))
	for i, text := range texts {
		keywords[i] = ExtractKeywords(text, maxKeywordsPerText)
	}

	var clusters []Cluster
	assigned := make([]bool, len(texts))

	for i := range texts {
		if assigned[i] {
			continue
		}

		cluster := Cluster{
			Keywords: append([]string(nil), keywords[i]...),
			Indexes:  []int{i},
		}
		assigned[i] = true

		merged := make(map[string]struct{}, len(keywords[i]))
		for _, k := range keywords[i] {
			merged[k] = struct{}{}
		}

		for j := i + 1; j < len(texts); j++ {
			if assigned[j] {
				continue
			}
			if jaccard(keywords[i], keywords[j]) <= similarityThreshold {
				continue
			}

			cluster.Indexes = append(cluster.Indexes, j)
			assigned[j] = true

			for _, k := range keywords[j] {
				if _, seen := merged[k]; !seen {
					merged[k] = struct{}{}
					cluster.Keywords = append(cluster.Keywords, k)
				}
			}
		}

		if len(cluster.Indexes) < minClusterSize {
			continue
		}

		cluster.Topic = topicName(cluster.Keywords)
		clusters = append(clusters, cluster)
	}

	sort.SliceStable(clusters, func(i, j int) bool {
		return len(clusters[i].Indexes) > len(clusters[j].Indexes)
	})

	return clusters
}

// jaccard computes set similarity between two keyword lists.
func jaccard(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	set := make(map[string]struct{}, len(a))
	for _, k := range a {
		set[k] = struct{}{}
	}

	union := len(set)
	intersection := 0
	seen := make(map[string]struct{}, len(b))
	for _, k := range b {
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		if _, ok := set[k]; ok {
			intersection++
		} else {
			union++
		}
	}

	return float64(intersection) / float64(union)
}

// topicName builds a short human-readable name from the strongest
// keywords, preferring longer, more specific terms.
func topicName(keywords []string) string {
	var picked []string
	for _, k := range keywords {
		if len(picked) == topicNameKeywords {
			break
		}
		if len(k) > 3 {
			picked = append(picked, k)
		}
	}

	if len(picked) == 0 {
		return fallbackTopic
	}
	return strings.Join(picked, " & ")
}
