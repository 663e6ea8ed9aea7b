package models

// Ticket is the normalized output record for a processed customer query.
// Constructed once per request and never mutated after return.
type Ticket struct {
	TicketID   string `json:"ticket_id,omitempty"`
	QueryID    string `json:"query_id,omitempty"`
	QueryType  string `json:"query_type,omitempty"`
	BranchID   string `json:"branch_id,omitempty"`
	QueryLevel string `json:"query_level,omitempty"`

	Department      string `json:"department,omitempty"`
	ServiceType     string `json:"service_type,omitempty"`
	RequestCategory string `json:"request_category,omitempty"`

	TranscribedText  string `json:"transcribed_text"`
	TranslatedQuery  string `json:"translated_query"`
	DetectedLanguage string `json:"detected_language"`

	// Priority is the richer annotation label (low/medium/high/critical),
	// independent of the queue service class.
	Priority    string `json:"priority,omitempty"`
	RoleName    string `json:"role_name,omitempty"`
	RoleLevel   int    `json:"role_level,omitempty"`
	BranchLevel bool   `json:"branch_level,omitempty"`

	// ErrorMessage is set when the ticket was produced on the degraded
	// path (e.g. transcription failed but the request still completed).
	ErrorMessage string `json:"error_message,omitempty"`
}

// TicketResult is the synchronous outcome delivered to the submitter:
// either a ticket or a failure message, never both.
type TicketResult struct {
	Success bool    `json:"success"`
	Ticket  *Ticket `json:"ticket,omitempty"`
	Message string  `json:"message,omitempty"`
}

// Failure builds a failed TicketResult with the given message.
func Failure(msg string) TicketResult {
	return TicketResult{Success: false, Message: msg}
}
