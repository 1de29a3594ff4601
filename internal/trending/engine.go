package trending

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"newsease/internal/domain"
)

const (
	TopicLimit    = 10
	HotLimit      = 10
	BreakingLimit = 5

	// DefaultTopicBaseline is the divisor of the topic frequency score.
	DefaultTopicBaseline = 100

	maxTopicScore     = 10.0
	keywordWeight     = 0.1
	hotThreshold      = 7.0
	trendingThreshold = 5.0
	breakingThreshold = 6.0
	breakingMaxAge    = 2 * time.Hour
)

var (
	techWords     = []string{"technology", "ai", "tech", "digital", "computer", "software"}
	businessWords = []string{"business", "economy", "market", "finance", "stock"}
	sportsWords   = []string{"sports", "football", "basketball", "game", "team"}
)

// Analysis is the full output of one trending pass.
type Analysis struct {
	Keywords KeywordCounts
	Topics   []domain.TrendingTopic
	Articles []domain.Article
	Hot      []domain.Article
	Breaking []domain.Article
	At       time.Time
}

// Engine scores articles by keyword overlap and recency.
type Engine struct {
	topicBaseline float64
	lang          language.Tag
}

// Option customises an Engine.
type Option func(*Engine)

// WithTopicBaseline overrides the divisor used for topic scores. Values
// below one are ignored.
func WithTopicBaseline(baseline float64) Option {
	return func(e *Engine) {
		if baseline >= 1 {
			e.topicBaseline = baseline
		}
	}
}

// NewEngine builds an engine; the default baseline makes a topic score equal
// to its count capped at ten.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		topicBaseline: DefaultTopicBaseline,
		lang:          language.English,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Analyze runs keyword extraction, topic generation and article scoring.
// The input slice is not modified.
func (e *Engine) Analyze(articles []domain.Article, now time.Time) Analysis {
	keywords := ExtractKeywords(articles)
	scored := AssignScores(articles, keywords, now)

	return Analysis{
		Keywords: keywords,
		Topics:   e.GenerateTopics(keywords),
		Articles: scored,
		Hot:      HotArticles(scored),
		Breaking: BreakingNews(scored),
		At:       now,
	}
}

// GenerateTopics ranks keywords by count, ties kept in first-seen order, and
// returns the top ten as topics.
func (e *Engine) GenerateTopics(keywords KeywordCounts) []domain.TrendingTopic {
	ranked := keywords.Keywords()
	sort.SliceStable(ranked, func(i, j int) bool {
		return keywords.Count(ranked[i]) > keywords.Count(ranked[j])
	})
	if len(ranked) > TopicLimit {
		ranked = ranked[:TopicLimit]
	}

	// Casers carry state and are not shared across calls.
	caser := cases.Title(e.lang)
	topics := make([]domain.TrendingTopic, 0, len(ranked))
	for _, keyword := range ranked {
		count := keywords.Count(keyword)
		topics = append(topics, domain.TrendingTopic{
			Keyword:       caser.String(keyword),
			Count:         count,
			TrendingScore: e.topicScore(count),
			Category:      CategoryForKeyword(keyword),
		})
	}
	return topics
}

func (e *Engine) topicScore(count int) float64 {
	return min(float64(count)*100/e.topicBaseline, maxTopicScore)
}

// CategoryForKeyword classifies a keyword using the technology, business and
// sports tables in that order; everything else is general.
func CategoryForKeyword(keyword string) domain.Category {
	k := strings.ToLower(keyword)
	switch {
	case contains(techWords, k):
		return domain.CategoryTechnology
	case contains(businessWords, k):
		return domain.CategoryBusiness
	case contains(sportsWords, k):
		return domain.CategorySports
	default:
		return domain.CategoryGeneral
	}
}

// AssignScores returns copies of articles with trending score and flags set.
func AssignScores(articles []domain.Article, keywords KeywordCounts, now time.Time) []domain.Article {
	out := make([]domain.Article, len(articles))
	for i, article := range articles {
		score := ArticleScore(article, keywords, now)
		age := article.Age(now)

		article.TrendingScore = score
		article.IsHot = score > hotThreshold
		article.IsTrending = score > trendingThreshold
		article.IsBreaking = age < breakingMaxAge && score > breakingThreshold
		out[i] = article
	}
	return out
}

// ArticleScore sums count×0.1 for every keyword found as a substring of the
// article text and adds the recency bonus.
func ArticleScore(article domain.Article, keywords KeywordCounts, now time.Time) float64 {
	text := articleText(article)
	matched := 0
	for _, keyword := range keywords.order {
		if strings.Contains(text, keyword) {
			matched += keywords.counts[keyword]
		}
	}
	return float64(matched)*keywordWeight + RecencyBonus(article.Age(now))
}

// RecencyBonus rewards fresh articles: under an hour +3, under six +2,
// under a day +1.
func RecencyBonus(age time.Duration) float64 {
	switch {
	case age < time.Hour:
		return 3.0
	case age < 6*time.Hour:
		return 2.0
	case age < 24*time.Hour:
		return 1.0
	default:
		return 0
	}
}

// HotArticles keeps hot articles, highest score first, at most ten.
func HotArticles(scored []domain.Article) []domain.Article {
	hot := filter(scored, func(a domain.Article) bool { return a.IsHot })
	sort.SliceStable(hot, func(i, j int) bool {
		return hot[i].TrendingScore > hot[j].TrendingScore
	})
	return truncate(hot, HotLimit)
}

// BreakingNews keeps breaking articles, newest first, at most five.
func BreakingNews(scored []domain.Article) []domain.Article {
	breaking := filter(scored, func(a domain.Article) bool { return a.IsBreaking })
	sort.SliceStable(breaking, func(i, j int) bool {
		return breaking[i].PublishedAt.After(breaking[j].PublishedAt)
	})
	return truncate(breaking, BreakingLimit)
}

func filter(articles []domain.Article, keep func(domain.Article) bool) []domain.Article {
	out := make([]domain.Article, 0)
	for _, a := range articles {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}

func truncate(articles []domain.Article, limit int) []domain.Article {
	if len(articles) > limit {
		return articles[:limit]
	}
	return articles
}

func contains(words []string, word string) bool {
	for _, w := range words {
		if w == word {
			return true
		}
	}
	return false
}
