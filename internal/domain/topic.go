package domain

// TrendingTopic is a keyword surfaced by a trending pass. It is rebuilt from
// scratch on every analysis.
type TrendingTopic struct {
	Keyword       string   `json:"keyword"`
	Count         int      `json:"count"`
	TrendingScore float64  `json:"trendingScore"`
	Category      Category `json:"category"`
}

// TrendingLevel buckets a topic score for presentation.
type TrendingLevel string

const (
	LevelHot      TrendingLevel = "hot"
	LevelTrending TrendingLevel = "trending"
	LevelNormal   TrendingLevel = "normal"
)

// DisplayText renders the topic as a hashtag.
func (t TrendingTopic) DisplayText() string {
	return "#" + t.Keyword
}

// Level classifies the topic: above 8 is hot, above 5 is trending.
func (t TrendingTopic) Level() TrendingLevel {
	switch {
	case t.TrendingScore > 8.0:
		return LevelHot
	case t.TrendingScore > 5.0:
		return LevelTrending
	default:
		return LevelNormal
	}
}
