package services

import (
	"fmt"
	"unicode/utf8"
)

// RequirementSet is the ordered, deduplicated set of normalized requirement
// terms extracted from a job description. Order is first appearance in the
// source text.
type RequirementSet []string

type SkillExtractor interface {
	Extract(jdText string) (RequirementSet, error)
}

type skillExtractor struct{}

func NewSkillExtractor() SkillExtractor {
	return &skillExtractor{}
}

// Extract implements SkillExtractor. Empty or whitespace-only text yields an
// empty set, not an error; only undecodable input fails.
func (e *skillExtractor) Extract(jdText string) (RequirementSet, error) {
	if !utf8.ValidString(jdText) {
		return nil, fmt.Errorf("job description: %w", ErrInputDecoding)
	}
	return RequirementSet(NormalizeTerms(jdText)), nil
}
