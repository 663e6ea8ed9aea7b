package models

// Query type values accepted by the processor.
const (
	QueryTypeText       = "text"
	QueryTypeVideo      = "video"
	QueryTypePredefined = "predefined_option"
)

// Query level values; central-level queries are always served first.
const (
	QueryLevelBranch  = "branch"
	QueryLevelCentral = "central"
)

// QueryRequest is the inbound payload of POST /process_query. It is
// immutable once submitted to the intake queue.
type QueryRequest struct {
	QueryID          string `json:"query_id,omitempty"`
	QueryType        string `json:"query_type"`
	UserInput        string `json:"user_input,omitempty"`
	VideoURL         string `json:"video_url,omitempty"`
	PredefinedOption string `json:"predefined_option,omitempty"`
	BranchID         string `json:"branch_id,omitempty"`
	// QueryLevel is "branch" or "central"; empty means branch.
	QueryLevel string `json:"query_level,omitempty"`
	// Financial attributes used for priority; zero when absent.
	CibilScore   float64 `json:"cibil_score,omitempty"`
	Holdings     float64 `json:"holdings,omitempty"`
	AnnualIncome float64 `json:"annual_income,omitempty"`
	Loans        float64 `json:"loans,omitempty"`
}

// Classification is the result of classifying a query against the banking
// taxonomy, including language handling.
type Classification struct {
	Department      string `json:"department"`
	ServiceType     string `json:"service_type"`
	RequestCategory string `json:"request_category"`
	// TranslatedQuery is the English translation when the detected
	// language is not English; empty otherwise.
	TranslatedQuery  string `json:"translated_query"`
	DetectedLanguage string `json:"detected_language"`
}

// RoleAssignment names the staff role a query escalates to.
type RoleAssignment struct {
	RoleName   string `json:"role_name"`
	RoleLevel  int    `json:"role_level"`
	Department string `json:"department"`
	// BranchLevel is true when the role is handled inside the branch
	// rather than at a regional or central office.
	BranchLevel bool `json:"branch_level"`
}
