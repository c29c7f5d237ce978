// Package interview models the audio-interview capture flow and
// converts finished sessions into regular assessment documents.
//
// The analysis service behind the Analyzer interface is an opaque,
// possibly-absent capability: when it is unconfigured or a call fails,
// only the in-flight question is lost and the session keeps every
// previously recorded response.
package interview

import (
	"time"

	"github.com/google/uuid"

	"github.com/karthika2z/karthika2z-ztmm-scoring-tool/internal/assessment"
	"github.com/karthika2z/karthika2z-ztmm-scoring-tool/internal/maturity"
)

// Status is the session lifecycle state.
type Status string

const (
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusProcessing Status = "processing"
)

// Response is one answered question: the transcript and what the
// analysis service inferred from it.
type Response struct {
	QuestionID            string         `json:"questionId"`
	Transcript            string         `json:"transcript,omitempty"`
	DetectedMaturityLevel maturity.Level `json:"detectedMaturityLevel,omitempty"`
	Confidence            int            `json:"confidence,omitempty"`
	Timestamp             string         `json:"timestamp"`
	Duration              float64        `json:"duration,omitempty"`
}

// Session is one interview sitting.
type Session struct {
	SessionID            string                     `json:"sessionId"`
	CustomerName         string                     `json:"customerName"`
	CloudProviders       []assessment.CloudProvider `json:"cloudProviders"`
	StartedAt            string                     `json:"startedAt"`
	CompletedAt          string                     `json:"completedAt,omitempty"`
	Responses            map[string]Response        `json:"responses"`
	CurrentQuestionIndex int                        `json:"currentQuestionIndex"`
	Status               Status                     `json:"status"`
}

// NewSession starts an in-progress session for the given customer.
func NewSession(customerName string, providers []assessment.CloudProvider, now func() time.Time) *Session {
	return &Session{
		SessionID:      uuid.NewString(),
		CustomerName:   customerName,
		CloudProviders: providers,
		StartedAt:      now().UTC().Format(assessment.TimestampLayout),
		Responses:      map[string]Response{},
		Status:         StatusInProgress,
	}
}

// Record stores one response, replacing any earlier answer to the same
// question.
func (s *Session) Record(resp Response) {
	if s.Responses == nil {
		s.Responses = map[string]Response{}
	}
	s.Responses[resp.QuestionID] = resp
}

// Complete marks the session finished.
func (s *Session) Complete(now func() time.Time) {
	s.CompletedAt = now().UTC().Format(assessment.TimestampLayout)
	s.Status = StatusCompleted
}
