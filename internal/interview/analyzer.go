package interview

import (
	"context"
	"time"

	"github.com/karthika2z/karthika2z-ztmm-scoring-tool/internal/assessment"
	"github.com/karthika2z/karthika2z-ztmm-scoring-tool/internal/maturity"
)

// Analysis is what the external service infers from one transcript.
type Analysis struct {
	MaturityLevel maturity.Level
	Confidence    int // 0..100
	Reasoning     string
	Evidence      []string
}

// Analyzer is the external transcription/analysis service boundary.
// Implementations wrap whatever vendor transport is configured; the
// core only consumes this shape.
type Analyzer interface {
	Analyze(ctx context.Context, transcript string, q Question) (Analysis, error)
}

// Unconfigured is the Analyzer used when no analysis service is set
// up. Every call fails with SERVICE_UNAVAILABLE, which callers treat
// as a degraded mode: the interview continues, the question just stays
// unscored.
type Unconfigured struct{}

// Analyze implements Analyzer.
func (Unconfigured) Analyze(context.Context, string, Question) (Analysis, error) {
	return Analysis{}, assessment.NewError(assessment.ErrCodeServiceUnavailable,
		"The analysis service is not configured. Responses can still be recorded and scored manually.",
		"no analyzer configured")
}

// ProcessResponse runs the analyzer for one question and records the
// result in the session. On failure nothing is recorded: the session's
// previously recorded responses stay intact and the caller decides
// whether to retry, skip, or continue without a detected level.
func ProcessResponse(ctx context.Context, a Analyzer, session *Session, q Question, transcript string, duration float64, now func() time.Time) error {
	analysis, err := a.Analyze(ctx, transcript, q)
	if err != nil {
		if assessment.CodeOf(err) == assessment.ErrCodeServiceUnavailable {
			return err
		}
		return assessment.NewError(assessment.ErrCodeServiceUnavailable,
			"Analyzing the response failed. The answer was not recorded.",
			"analyze %q: %v", q.ID, err)
	}

	session.Record(Response{
		QuestionID:            q.ID,
		Transcript:            transcript,
		DetectedMaturityLevel: analysis.MaturityLevel,
		Confidence:            analysis.Confidence,
		Timestamp:             now().UTC().Format(assessment.TimestampLayout),
		Duration:              duration,
	})
	return nil
}
