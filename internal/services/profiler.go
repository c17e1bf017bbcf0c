package services

import (
	"fmt"
	"regexp"
	"strconv"
	"unicode/utf8"
)

// CandidateProfile is the normalized view of one resume: the candidate's
// skill terms plus a coarse years-of-experience estimate. The estimate feeds
// feedback wording only, never the score.
type CandidateProfile struct {
	Skills          []string
	YearsExperience int // 0 when the resume states nothing usable

	skillSet map[string]struct{}
}

// HasSkill reports whether the profile contains the given normalized term.
func (p CandidateProfile) HasSkill(term string) bool {
	_, ok := p.skillSet[term]
	return ok
}

type CandidateProfiler interface {
	Profile(resumeText string) (CandidateProfile, error)
}

type candidateProfiler struct{}

func NewCandidateProfiler() CandidateProfiler {
	return &candidateProfiler{}
}

var yearsPattern = regexp.MustCompile(`(?i)(\d{1,2})\s*\+?\s*(?:years?|yrs?)`)

// Profile implements CandidateProfiler. It shares NormalizeTerms with the
// skill extractor so resume terms and requirement terms compare by exact
// string equality.
func (c *candidateProfiler) Profile(resumeText string) (CandidateProfile, error) {
	if !utf8.ValidString(resumeText) {
		return CandidateProfile{}, fmt.Errorf("resume: %w", ErrInputDecoding)
	}

	skills := NormalizeTerms(resumeText)
	skillSet := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		skillSet[s] = struct{}{}
	}

	return CandidateProfile{
		Skills:          skills,
		YearsExperience: estimateYears(resumeText),
		skillSet:        skillSet,
	}, nil
}

// estimateYears picks the largest "N years" mention in the text. It is a
// rough signal and deliberately stays out of scoring.
func estimateYears(text string) int {
	best := 0
	for _, m := range yearsPattern.FindAllStringSubmatch(text, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n > best {
			best = n
		}
	}
	return best
}

// NewCandidateProfile builds a profile from already-normalized terms. Used by
// tests and by callers that bypass raw resume text.
func NewCandidateProfile(skills []string, yearsExperience int) CandidateProfile {
	skillSet := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		skillSet[s] = struct{}{}
	}
	return CandidateProfile{
		Skills:          skills,
		YearsExperience: yearsExperience,
		skillSet:        skillSet,
	}
}
