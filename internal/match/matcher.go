package match

import (
	"strings"
	"unicode"
)

// Tuning values below (coverage thresholds, similarity thresholds,
// window bounds) were fixed against a validation corpus; do not retune
// casually.
const (
	coverageLooseThreshold  = 0.5  // titles with >= 6 significant words
	coverageStrictThreshold = 0.67 // shorter titles
	coverageMinWords        = 2
	coverageLooseWordCount  = 6

	diceLongThreshold  = 0.78 // normalized titles over 40 chars
	diceShortThreshold = 0.88
	diceLongTitleChars = 40

	windowShrink = 6
	windowGrow   = 8
)

// Bilingual stop list: French and English function words that carry no
// signal in a title.
var stopWords = map[string]bool{
	// English
	"the": true, "and": true, "for": true, "with": true, "from": true,
	"this": true, "that": true, "are": true, "was": true, "were": true,
	"has": true, "have": true, "had": true, "not": true, "but": true,
	"its": true, "into": true, "over": true, "under": true, "about": true,
	"their": true, "your": true, "what": true, "when": true, "where": true,
	"how": true, "why": true, "who": true, "all": true, "can": true,
	// French
	"les": true, "des": true, "une": true, "dans": true, "pour": true,
	"par": true, "sur": true, "avec": true, "est": true, "sont": true,
	"son": true, "ses": true, "aux": true, "qui": true, "que": true,
	"ces": true, "cette": true, "leur": true, "leurs": true, "ont": true,
	"pas": true, "vers": true, "chez": true, "entre": true, "comme": true,
	"dont": true, "mais": true, "plus": true, "ainsi": true, "tout": true,
}

// Title is a table-of-contents title prepared for repeated matching.
type Title struct {
	raw        string
	normalized string
	bigrams    map[string]int
	bigramN    int
	words      []string // significant words, normalized
	wordCount  int      // whitespace token count of the raw title
}

// NewTitle precomputes the normalized form, bigram multiset, and
// significant-word list of a title.
func NewTitle(raw string) *Title {
	normalized := Normalize(raw)
	t := &Title{
		raw:        raw,
		normalized: normalized,
		bigrams:    bigrams(normalized),
		bigramN:    max(len(normalized)-1, 0),
		wordCount:  len(strings.Fields(raw)),
	}
	for _, w := range significantWords(raw) {
		t.words = append(t.words, Normalize(w))
	}
	return t
}

// significantWords splits a title into lowercase alphabetic words longer
// than two letters, excluding stop words.
func significantWords(title string) []string {
	fields := strings.FieldsFunc(strings.ToLower(title), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	var words []string
	for _, w := range fields {
		if len([]rune(w)) > 2 && !stopWords[w] {
			words = append(words, w)
		}
	}
	return words
}

// MatchesPage reports whether the title plausibly appears in the page
// text. Three checks run in order of cost: exact normalized substring,
// significant-word coverage, and a sliding-window bigram Dice score over
// the page's token stream.
func (t *Title) MatchesPage(pageText string) bool {
	pageNorm := Normalize(pageText)

	if t.normalized != "" && strings.Contains(pageNorm, t.normalized) {
		return true
	}

	if t.wordCoverageMatch(pageNorm) {
		return true
	}

	return t.windowSimilarityMatch(pageText)
}

// wordCoverageMatch checks what fraction of the title's significant
// words occur in the page. Longer titles tolerate more dropout.
func (t *Title) wordCoverageMatch(pageNorm string) bool {
	if len(t.words) < coverageMinWords {
		return false
	}
	found := 0
	for _, w := range t.words {
		if strings.Contains(pageNorm, w) {
			found++
		}
	}
	coverage := float64(found) / float64(len(t.words))
	required := coverageStrictThreshold
	if len(t.words) >= coverageLooseWordCount {
		required = coverageLooseThreshold
	}
	return coverage >= required
}

// windowSimilarityMatch slides windows of near-title length over the
// page tokens and keeps the best Dice score. This tolerates OCR noise,
// hyphenation, and paraphrase that defeat substring checks.
func (t *Title) windowSimilarityMatch(pageText string) bool {
	if t.bigramN < 1 {
		return false
	}
	tokens := strings.Fields(pageText)
	if len(tokens) == 0 {
		return false
	}

	minWin := max(2, t.wordCount-windowShrink)
	maxWin := t.wordCount + windowGrow

	threshold := diceShortThreshold
	if len(t.normalized) > diceLongTitleChars {
		threshold = diceLongThreshold
	}

	best := 0.0
	for size := minWin; size <= maxWin; size++ {
		if size > len(tokens) {
			break
		}
		for start := 0; start+size <= len(tokens); start++ {
			window := Normalize(strings.Join(tokens[start:start+size], " "))
			score := diceAgainst(t.bigrams, t.bigramN, window)
			if score > best {
				best = score
				if best >= threshold {
					return true
				}
			}
		}
	}
	return best >= threshold
}
