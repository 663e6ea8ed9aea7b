// Package feedback summarizes scored employee feedback records through
// the model API.
package feedback

import (
	"context"
	"fmt"
	"strings"

	"triagedesk/pkg/llm"
	"triagedesk/pkg/models"
)

// Analyzer produces a short analysis of one feedback record.
type Analyzer struct {
	llm *llm.Client
}

// NewAnalyzer returns an Analyzer backed by c.
func NewAnalyzer(c *llm.Client) *Analyzer {
	return &Analyzer{llm: c}
}

// Analyze summarizes fb. Fails when the model API is not configured or
// the call errors; callers surface the failure as a data-level result.
func (a *Analyzer) Analyze(ctx context.Context, fb models.Feedback) (models.FeedbackAnalysis, error) {
	// comments arrive with "$$" as the client-side separator
	comment := strings.ReplaceAll(fb.Comment, "$$", ", ")
	prompt := fmt.Sprintf(`Analyze the following customer feedback:
Behaviour: %.0f/10
Communication: %.0f/10
Satisfaction: %.0f/10
Overall Rating: %.0f/10
Comments: %s
Provide a concise 3-4 line summary of key insights and improvement areas.`,
		fb.Behaviour, fb.Communication, fb.Satisfaction, fb.OverallRating, comment)

	analysis, err := a.llm.Chat(ctx, "", prompt, 150)
	if err != nil {
		return models.FeedbackAnalysis{}, err
	}
	return models.FeedbackAnalysis{
		FeedbackID: fb.ID,
		EmployeeID: fb.EmployeeID,
		BranchID:   fb.BranchID,
		Analysis:   analysis,
	}, nil
}
