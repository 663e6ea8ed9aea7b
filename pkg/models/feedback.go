package models

// Feedback is a scored customer feedback record about a branch employee.
type Feedback struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	BranchID      string  `json:"branch_id"`
	Behaviour     float64 `json:"behaviour"`
	Communication float64 `json:"communication"`
	Satisfaction  float64 `json:"satisfaction"`
	OverallRating float64 `json:"overall_rating"`
	Comment       string  `json:"comment,omitempty"`
}

// FeedbackAnalysis is the summarized view of a Feedback record.
type FeedbackAnalysis struct {
	FeedbackID string `json:"feedback_id"`
	EmployeeID string `json:"employee_id"`
	BranchID   string `json:"branch_id"`
	Analysis   string `json:"analysis"`
}
