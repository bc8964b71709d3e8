package topics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractKeywordsDropsStopwordsAndShortWords(t *testing.T) {
	keywords := ExtractKeywords("The teachers and the students at the school", 10)
	require.ElementsMatch(t, []string{"teachers", "students", "school"}, keywords)
}

func TestExtractKeywordsFrequencyOrder(t *testing.T) {
	text := "filler filler filler words to pad this sentence out so the boosted keyword stays ahead of everything else written later curriculum curriculum curriculum"
	keywords := ExtractKeywords(text, 2)

	// "filler" appears three times inside the first 100 characters and gets
	// the head boost; "curriculum" also appears three times but only past
	// the head, so it ranks second.
	require.Equal(t, []string{"filler", "curriculum"}, keywords)
}

func TestExtractKeywordsCaseInsensitive(t *testing.T) {
	keywords := ExtractKeywords("Curriculum CURRICULUM curriculum", 5)
	require.Equal(t, []string{"curriculum"}, keywords)
}

func TestExtractKeywordsEmpty(t *testing.T) {
	require.Empty(t, ExtractKeywords("", 10))
	require.Empty(t, ExtractKeywords("the and or to of", 10))
}

func TestClusterByTopicGroupsSimilarTexts(t *testing.T) {
	texts := []string{
		"Teacher burnout crisis: educators leaving classrooms over burnout",
		"Burnout among educators rising, teacher burnout in classrooms everywhere",
		"New math curriculum standards announced for algebra classes nationwide",
		"Algebra curriculum standards updated: math classes get new nationwide standards",
	}

	clusters := ClusterByTopic(texts, 2)
	require.Len(t, clusters, 2)

	var burnout, math *Cluster
	for i := range clusters {
		for _, idx := range clusters[i].Indexes {
			if idx == 0 {
				burnout = &clusters[i]
			}
			if idx == 2 {
				math = &clusters[i]
			}
		}
	}

	require.NotNil(t, burnout)
	require.NotNil(t, math)
	require.ElementsMatch(t, []int{0, 1}, burnout.Indexes)
	require.ElementsMatch(t, []int{2, 3}, math.Indexes)
	require.NotEmpty(t, burnout.Topic)
	require.NotEmpty(t, math.Topic)
}

func TestClusterByTopicMinSize(t *testing.T) {
	texts := []string{
		"Completely unrelated post about gardening tomatoes outdoors",
		"Standardized testing schedule released for spring assessment season",
	}

	// Neither text has a partner, so nothing reaches the minimum size.
	require.Empty(t, ClusterByTopic(texts, 2))

	// With minimum size one, every text forms its own cluster.
	clusters := ClusterByTopic(texts, 1)
	require.Len(t, clusters, 2)
}

func TestClusterByTopicAssignsEachTextOnce(t *testing.T) {
	texts := []string{
		"school funding budget cuts hit district programs",
		"district budget cuts: school funding reduced for programs",
		"school funding debate continues as budget cuts loom over district",
	}

	clusters := ClusterByTopic(texts, 1)

	seen := make(map[int]bool)
	for _, c := range clusters {
		for _, idx := range c.Indexes {
			require.False(t, seen[idx], "index %d assigned twice", idx)
			seen[idx] = true
		}
	}
	require.Len(t, seen, len(texts))
}

func TestClusterByTopicOrderedByVolume(t *testing.T) {
	texts := []string{
		"remote learning technology tools for virtual classrooms online",
		"virtual classrooms rely on remote learning technology tools online",
		"online remote learning tools transform virtual classrooms technology",
		"lunch menu updated with new cafeteria options this semester",
	}

	clusters := ClusterByTopic(texts, 1)
	require.NotEmpty(t, clusters)
	for i := 1; i < len(clusters); i++ {
		require.GreaterOrEqual(t, len(clusters[i-1].Indexes), len(clusters[i].Indexes))
	}
	require.ElementsMatch(t, []int{0, 1, 2}, clusters[0].Indexes)
}

func TestJaccard(t *testing.T) {
	require.Equal(t, 1.0, jaccard([]string{"a", "b"}, []string{"a", "b"}))
	require.Equal(t, 0.0, jaccard([]string{"a"}, []string{"b"}))
	require.InDelta(t, 1.0/3.0, jaccard([]string{"a", "b"}, []string{"b", "c"}), 1e-9)
	require.Equal(t, 0.0, jaccard(nil, nil))
}

func TestTopicName(t *testing.T) {
	require.Equal(t, "burnout & teachers & classrooms", topicName([]string{"burnout", "teachers", "classrooms", "extra"}))

	// Words of three characters or fewer are skipped.
	require.Equal(t, "mathematics", topicName([]string{"abc", "mathematics"}))

	require.Equal(t, "General Discussion", topicName(nil))
	require.Equal(t, "General Discussion", topicName([]string{"abc", "de"}))
}
