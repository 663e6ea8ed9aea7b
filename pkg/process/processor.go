// Package process implements the query processor: it validates an
// inbound request, obtains the raw query text (directly, or by
// transcribing a video), classifies it, and assembles the ticket.
package process

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"triagedesk/pkg/logger"
	"triagedesk/pkg/models"
	"triagedesk/pkg/priority"
	"triagedesk/pkg/roles"
	"triagedesk/pkg/transcribe"
)

// Fixed validation messages surfaced to callers.
const (
	MsgInvalidQueryType = "Invalid query type"
	MsgMissingVideoURL  = "Provide video link too"
)

// QueryClassifier is the classification collaborator surface the
// processor depends on.
type QueryClassifier interface {
	Classify(ctx context.Context, queryText string) models.Classification
}

// Processor turns a validated QueryRequest into a TicketResult. It holds
// no mutable state and is safe for use from the single worker goroutine.
type Processor struct {
	classifier  QueryClassifier
	transcriber transcribe.Transcriber
}

// New builds a Processor over the given collaborators.
func New(classifier QueryClassifier, transcriber transcribe.Transcriber) *Processor {
	return &Processor{classifier: classifier, transcriber: transcriber}
}

var ticketSeq uint64

func genTicketID() string {
	n := time.Now().UTC().UnixNano()
	s := atomic.AddUint64(&ticketSeq, 1)
	return fmt.Sprintf("tkt-%d-%d", n, s)
}

// Process runs the full pipeline for one request. It never returns an
// error: validation failures and internal faults are converted into a
// failed TicketResult, and a transcription failure degrades into a
// successful ticket carrying the error message.
func (p *Processor) Process(ctx context.Context, req *models.QueryRequest) (res models.TicketResult) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("process_panic", "query_id", req.QueryID, "panic", r)
			res = models.Failure(fmt.Sprint(r))
		}
	}()

	var (
		queryText      string
		classification models.Classification
		degraded       bool
		degradedMsg    string
	)

	switch req.QueryType {
	case models.QueryTypeText:
		queryText = req.UserInput
		classification = p.classifier.Classify(ctx, queryText)

	case models.QueryTypeVideo:
		if req.VideoURL == "" {
			return models.Failure(MsgMissingVideoURL)
		}
		text, err := p.transcriber.Transcribe(ctx, req.VideoURL)
		if err != nil {
			// degraded-continue: the ticket is still produced, flagged
			// with the transcription error
			degraded = true
			degradedMsg = err.Error()
			queryText = "Error in transcription: " + degradedMsg
			classification = models.Classification{DetectedLanguage: "en"}
			logger.Warn("transcription_failed", "query_id", req.QueryID, "error", err)
		} else {
			queryText = text
			classification = p.classifier.Classify(ctx, queryText)
		}

	case models.QueryTypePredefined:
		queryText = req.PredefinedOption
		classification = p.classifier.Classify(ctx, queryText)

	default:
		return models.Failure(MsgInvalidQueryType)
	}

	label := priority.Generate(req.CibilScore, req.Holdings, req.AnnualIncome, req.Loans, queryText)
	role := roles.Classify(classification.Department, req.QueryType)

	queryLevel := req.QueryLevel
	if queryLevel == "" {
		queryLevel = models.QueryLevelBranch
	}

	ticket := &models.Ticket{
		TicketID:         genTicketID(),
		QueryID:          req.QueryID,
		QueryType:        req.QueryType,
		BranchID:         req.BranchID,
		QueryLevel:       queryLevel,
		Department:       classification.Department,
		ServiceType:      classification.ServiceType,
		RequestCategory:  classification.RequestCategory,
		TranscribedText:  queryText,
		TranslatedQuery:  classification.TranslatedQuery,
		DetectedLanguage: classification.DetectedLanguage,
		Priority:         label,
		RoleName:         role.RoleName,
		RoleLevel:        role.RoleLevel,
		BranchLevel:      role.BranchLevel,
	}
	if degraded {
		ticket.ErrorMessage = degradedMsg
	}

	return models.TicketResult{Success: true, Ticket: ticket}
}
