package services

import (
	"math"

	"github.com/virajhegde24/Code4Edtech-Project/internal/models"
)

const (
	DefaultStrongThreshold  = 75
	DefaultPartialThreshold = 40
)

// MatcherConfig carries the verdict thresholds. Zero values fall back to the
// defaults so an empty config is usable.
type MatcherConfig struct {
	StrongThreshold  int
	PartialThreshold int
}

// MatchResult is the structured outcome of comparing one candidate profile
// against one requirement set. Covered and Missing preserve the requirement
// set's original order.
type MatchResult struct {
	Score   int
	Verdict models.Verdict
	Covered []string
	Missing []string
}

type Matcher interface {
	Match(requirements RequirementSet, profile CandidateProfile) MatchResult
}

type matcher struct {
	strongThreshold  int
	partialThreshold int
}

func NewMatcher(cfg MatcherConfig) Matcher {
	if cfg.StrongThreshold <= 0 {
		cfg.StrongThreshold = DefaultStrongThreshold
	}
	if cfg.PartialThreshold <= 0 {
		cfg.PartialThreshold = DefaultPartialThreshold
	}
	return &matcher{
		strongThreshold:  cfg.StrongThreshold,
		partialThreshold: cfg.PartialThreshold,
	}
}

// Match implements Matcher. missing = requirements - profile.skills, covered
// is the complement, score = round(100 * covered / |requirements|). A job
// with no extracted requirements is trivially satisfied and scores 100.
// Pure and deterministic: identical inputs always yield identical output.
func (m *matcher) Match(requirements RequirementSet, profile CandidateProfile) MatchResult {
	covered := make([]string, 0, len(requirements))
	missing := make([]string, 0)

	for _, req := range requirements {
		if profile.HasSkill(req) {
			covered = append(covered, req)
		} else {
			missing = append(missing, req)
		}
	}

	score := 100
	if len(requirements) > 0 {
		score = int(math.Round(100 * float64(len(covered)) / float64(len(requirements))))
	}

	return MatchResult{
		Score:   score,
		Verdict: m.verdict(score),
		Covered: covered,
		Missing: missing,
	}
}

func (m *matcher) verdict(score int) models.Verdict {
	switch {
	case score >= m.strongThreshold:
		return models.VerdictStrongMatch
	case score >= m.partialThreshold:
		return models.VerdictPartialMatch
	default:
		return models.VerdictWeakMatch
	}
}
