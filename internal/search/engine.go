package search

import (
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	mapset "github.com/deckarep/golang-set/v2"
)

const (
	DefaultMinRelevance  = 20
	DefaultLimit         = 20
	DefaultSnippetLength = 150

	minTokenLength = 3
)

// Document is derived from a record's stored metadata on every search
// call; nothing here is a persisted index.
type Document struct {
	ID       string
	Title    string
	Content  string
	Keywords mapset.Set[string]
}

// Result is a scored document. RelevanceScore is the integer percentage
// of query tokens found in the document, always in [0, 100].
type Result struct {
	Document        Document
	RelevanceScore  int
	MatchedKeywords []string
	Snippet         string
}

// Options fix an Engine's behavior at construction time. There are no
// mutable package-level knobs; tests override per instance.
type Options struct {
	Stopwords     mapset.Set[string]
	MinRelevance  int
	Limit         int
	SnippetLength int
}

type Engine struct {
	stopwords     mapset.Set[string]
	minRelevance  int
	limit         int
	snippetLength int
}

func New(opts Options) *Engine {
	e := &Engine{
		stopwords:     opts.Stopwords,
		minRelevance:  opts.MinRelevance,
		limit:         opts.Limit,
		snippetLength: opts.SnippetLength,
	}

	if e.stopwords == nil {
		e.stopwords = DefaultStopwords()
	}
	if e.minRelevance <= 0 {
		e.minRelevance = DefaultMinRelevance
	}
	if e.limit <= 0 {
		e.limit = DefaultLimit
	}
	if e.snippetLength <= 0 {
		e.snippetLength = DefaultSnippetLength
	}

	return e
}

// DefaultStopwords is the closed list of English function words dropped
// during tokenization.
func DefaultStopwords() mapset.Set[string] {
	return mapset.NewThreadUnsafeSet(
		"the", "and", "for", "are", "but", "not", "you", "all", "can",
		"was", "one", "our", "out", "his", "her", "has", "had", "have",
		"this", "that", "with", "from", "they", "them", "then", "than",
		"what", "when", "where", "which", "will", "would", "could",
		"there", "their", "these", "those", "about", "into", "some",
		"such", "only", "also", "does", "been", "were", "your", "how",
		"why", "who", "its", "per", "via", "any", "each", "may",
	)
}

// Tokenize lowercases text, replaces every non-alphanumeric rune with a
// space, splits on whitespace, and drops short tokens and stopwords.
// Queries and documents go through the exact same pipeline.
func (e *Engine) Tokenize(text string) []string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}

	var tokens []string
	for _, tok := range strings.Fields(b.String()) {
		// rune count, not byte length, or short CJK tokens slip through
		if utf8.RuneCountInString(tok) < minTokenLength {
			continue
		}
		if e.stopwords.Contains(tok) {
			continue
		}
		tokens = append(tokens, tok)
	}

	return tokens
}

// Search scores every document against the query and returns the ones
// at or above the engine's relevance floor, best first. Ties keep
// corpus order (stable sort).
func (e *Engine) Search(docs []Document, query string) []Result {
	queryTokens := e.Tokenize(query)

	var results []Result
	for _, doc := range docs {
		res := e.score(doc, queryTokens)
		if res.RelevanceScore < e.minRelevance {
			continue
		}
		res.Snippet = Snippet(doc.Content, res.MatchedKeywords, e.snippetLength)
		results = append(results, res)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RelevanceScore > results[j].RelevanceScore
	})

	if len(results) > e.limit {
		results = results[:e.limit]
	}

	return results
}

// score counts the query tokens present in the document. A token
// matches if it is in the document's keyword set or occurs as a
// substring of the lowercased title + content.
func (e *Engine) score(doc Document, queryTokens []string) Result {
	res := Result{Document: doc}
	if len(queryTokens) == 0 {
		return res
	}

	haystack := strings.ToLower(doc.Title + " " + doc.Content)
	for _, tok := range queryTokens {
		if (doc.Keywords != nil && doc.Keywords.Contains(tok)) || strings.Contains(haystack, tok) {
			res.MatchedKeywords = append(res.MatchedKeywords, tok)
		}
	}

	ratio := float64(len(res.MatchedKeywords)) / float64(len(queryTokens))
	res.RelevanceScore = int(math.Round(ratio * 100))

	return res
}
