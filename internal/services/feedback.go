package services

import (
	"fmt"
	"strings"

	"github.com/virajhegde24/Code4Edtech-Project/internal/models"
)

type FeedbackComposer interface {
	Compose(match MatchResult, profile CandidateProfile) string
}

type feedbackComposer struct{}

func NewFeedbackComposer() FeedbackComposer {
	return &feedbackComposer{}
}

// Compose implements FeedbackComposer. Pure function of its inputs: the tone
// follows the verdict tier, covered strengths are acknowledged and missing
// requirements are listed verbatim in requirement order.
func (f *feedbackComposer) Compose(match MatchResult, profile CandidateProfile) string {
	var sb strings.Builder

	switch match.Verdict {
	case models.VerdictStrongMatch:
		sb.WriteString(fmt.Sprintf("Strong fit for this role with a relevance score of %d/100.", match.Score))
	case models.VerdictPartialMatch:
		sb.WriteString(fmt.Sprintf("Partial fit for this role with a relevance score of %d/100.", match.Score))
	default:
		sb.WriteString(fmt.Sprintf("Currently a weak fit for this role with a relevance score of %d/100.", match.Score))
	}

	if len(match.Covered) > 0 {
		sb.WriteString(" Your profile already demonstrates: ")
		sb.WriteString(strings.Join(match.Covered, ", "))
		sb.WriteString(".")
	}

	if len(match.Missing) > 0 {
		switch match.Verdict {
		case models.VerdictStrongMatch:
			sb.WriteString(" To stand out further, consider adding evidence of: ")
		case models.VerdictPartialMatch:
			sb.WriteString(" To improve your fit, focus on: ")
		default:
			sb.WriteString(" The role asks for several things your resume does not show yet: ")
		}
		sb.WriteString(strings.Join(match.Missing, ", "))
		sb.WriteString(".")
	} else {
		sb.WriteString(" Every extracted requirement is covered by your resume.")
	}

	if profile.YearsExperience > 0 {
		sb.WriteString(fmt.Sprintf(" Your stated %d years of experience should be highlighted prominently.", profile.YearsExperience))
	}

	return sb.String()
}
