package trending

import (
	"strings"
	"unicode/utf8"

	"newsease/internal/domain"
)

// minKeywordRunes is the exclusive lower bound on token length.
const minKeywordRunes = 3

var stopWords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"the", "and", "for", "are", "but", "not", "you", "all", "can", "had",
		"her", "was", "one", "our", "out", "day", "get", "has", "him", "his",
		"how", "man", "new", "now", "old", "see", "two", "way", "who", "boy",
		"did", "its", "let", "put", "say", "she", "too", "use",
	} {
		stopWords[w] = struct{}{}
	}
}

// isStopWord reports whether a lowercased token is excluded from analysis.
// Every stop word is three letters long, so longer fillers such as "with"
// still count as keywords.
func isStopWord(token string) bool {
	_, ok := stopWords[token]
	return ok
}

// KeywordCounts maps keywords to their total occurrences across a collection
// and remembers the order in which keywords were first seen.
type KeywordCounts struct {
	counts map[string]int
	order  []string
}

func newKeywordCounts() KeywordCounts {
	return KeywordCounts{counts: map[string]int{}}
}

func (k *KeywordCounts) add(keyword string) {
	if _, ok := k.counts[keyword]; !ok {
		k.order = append(k.order, keyword)
	}
	k.counts[keyword]++
}

// Count returns the occurrences of keyword; unknown keywords count zero.
func (k KeywordCounts) Count(keyword string) int {
	return k.counts[keyword]
}

// Len is the number of distinct keywords.
func (k KeywordCounts) Len() int {
	return len(k.order)
}

// Keywords lists distinct keywords in first-seen order.
func (k KeywordCounts) Keywords() []string {
	out := make([]string, len(k.order))
	copy(out, k.order)
	return out
}

// Map returns a copy of the keyword → count mapping.
func (k KeywordCounts) Map() map[string]int {
	out := make(map[string]int, len(k.counts))
	for w, c := range k.counts {
		out[w] = c
	}
	return out
}

// ExtractKeywords tokenises title and description of every article and
// counts tokens longer than three runes that are not stop words.
func ExtractKeywords(articles []domain.Article) KeywordCounts {
	counts := newKeywordCounts()
	for _, article := range articles {
		for _, token := range strings.Fields(articleText(article)) {
			if utf8.RuneCountInString(token) <= minKeywordRunes {
				continue
			}
			if isStopWord(token) {
				continue
			}
			counts.add(token)
		}
	}
	return counts
}

func articleText(a domain.Article) string {
	return strings.ToLower(a.Title + " " + a.Description)
}
