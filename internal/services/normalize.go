package services

import (
	"errors"
	"strings"
	"unicode"
)

// ErrInputDecoding means the supplied text is not valid UTF-8 and cannot be
// tokenized.
var ErrInputDecoding = errors.New("input text is not valid UTF-8")

// stopWords filters common English words that add noise to term matching.
var stopWords = map[string]struct{}{
	"an": {}, "as": {}, "at": {}, "be": {}, "by": {}, "if": {}, "in": {},
	"is": {}, "it": {}, "of": {}, "on": {}, "or": {}, "to": {}, "we": {},
	"and": {}, "the": {}, "for": {}, "with": {}, "you": {}, "are": {},
	"have": {}, "will": {}, "this": {}, "that": {}, "from": {}, "our": {},
	"your": {}, "their": {}, "they": {}, "work": {}, "team": {}, "role": {},
	"job": {}, "join": {}, "about": {}, "which": {}, "what": {}, "who": {},
	"how": {}, "can": {}, "not": {}, "but": {}, "all": {}, "also": {},
	"more": {}, "than": {}, "into": {}, "has": {}, "its": {}, "was": {},
	"were": {}, "been": {}, "each": {}, "new": {}, "use": {}, "using": {},
	"used": {}, "well": {}, "good": {}, "able": {}, "get": {}, "set": {},
	"such": {}, "must": {}, "should": {}, "required": {},
	"requirements": {}, "experience": {}, "experienced": {}, "knowledge": {},
	"skills": {}, "strong": {}, "plus": {}, "years": {}, "year": {},
}

// synonyms collapses spelling variants onto one canonical term so that job
// and resume text stay comparable by exact string equality.
var synonyms = map[string]string{
	"golang":     "go",
	"py":         "python",
	"python2":    "python",
	"python3":    "python",
	"js":         "javascript",
	"nodejs":     "node.js",
	"node":       "node.js",
	"ts":         "typescript",
	"postgres":   "postgresql",
	"k8s":        "kubernetes",
	"reactjs":    "react",
	"vuejs":      "vue",
	"angularjs":  "angular",
	"ms-sql":     "sql",
	"ci-cd":      "ci/cd",
	"restful":    "rest",
	"containers": "docker",
	"dockerized": "docker",
}

// multiword skills that must survive tokenization as a single term. Rewritten
// to a hyphenated form before the text is split.
var phrases = [...][2]string{
	{"machine learning", "machine-learning"},
	{"deep learning", "deep-learning"},
	{"data science", "data-science"},
	{"data engineering", "data-engineering"},
	{"artificial intelligence", "artificial-intelligence"},
	{"computer vision", "computer-vision"},
	{"natural language processing", "natural-language-processing"},
	{"unit testing", "unit-testing"},
	{"version control", "version-control"},
}

// NormalizeTerms turns free text into a deduplicated, ordered list of
// normalized terms: lowercase, known multiword skills joined, synonyms
// collapsed, stop words dropped. Order is order of first appearance so two
// runs over the same text always produce the same sequence.
//
// Tokenization treats + # . / - as word characters to keep terms like c++,
// c#, node.js and ci/cd intact.
func NormalizeTerms(text string) []string {
	lowered := strings.ToLower(text)
	for _, p := range phrases {
		lowered = strings.ReplaceAll(lowered, p[0], p[1])
	}

	var terms []string
	seen := make(map[string]struct{})
	var word strings.Builder

	flush := func() {
		if word.Len() == 0 {
			return
		}
		w := word.String()
		word.Reset()
		w = strings.Trim(w, ".-/")
		if !keepTerm(w) {
			return
		}
		if canonical, ok := synonyms[w]; ok {
			w = canonical
		}
		if _, dup := seen[w]; dup {
			return
		}
		seen[w] = struct{}{}
		terms = append(terms, w)
	}

	for _, r := range lowered {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.' || r == '/' || r == '-' {
			word.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()

	return terms
}

// keepTerm rejects tokens too short or too noisy to be requirement terms.
func keepTerm(w string) bool {
	if len([]rune(w)) < 2 {
		return false
	}
	if _, stop := stopWords[w]; stop {
		return false
	}
	hasLetter := false
	for _, r := range w {
		if unicode.IsLetter(r) {
			hasLetter = true
			break
		}
	}
	return hasLetter
}
