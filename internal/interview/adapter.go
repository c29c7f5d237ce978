package interview

import (
	"fmt"
	"time"

	"github.com/karthika2z/karthika2z-ztmm-scoring-tool/internal/assessment"
	"github.com/karthika2z/karthika2z-ztmm-scoring-tool/internal/maturity"
)

// GeneratedNote marks documents produced by the interview adapter.
const GeneratedNote = "Generated from AI-powered interview mode"

// BuildAssessment converts a finished session into a complete
// assessment document ready for the state store's Load command or for
// file export.
//
// Every scored question with a detected level writes one dimension
// assessment; for the networks pillar the single answer fans out
// identically into every selected cloud provider's shard, since the
// interview does not ask per-cloud questions. Pillar and shard
// maturities are then recomputed by modal aggregation, and a summary
// narrative is synthesized.
func BuildAssessment(session *Session, bank *Bank, now func() time.Time) (*assessment.Assessment, error) {
	startedAt, err := time.Parse(assessment.TimestampLayout, session.StartedAt)
	if err != nil {
		return nil, fmt.Errorf("session %q: bad start time: %w", session.SessionID, err)
	}

	doc := assessment.NewWith(func() time.Time { return startedAt }, func() string { return session.SessionID })
	doc.Metadata.CustomerName = session.CustomerName
	doc.Metadata.CloudProviders = session.CloudProviders
	doc.Metadata.AdditionalNotes = GeneratedNote
	doc.Pillars.Networks = assessment.NewNetworkPillar(session.CloudProviders)
	doc.LastModified = now().UTC().Format(assessment.TimestampLayout)

	// Bank order keeps the application of responses deterministic.
	for _, q := range bank.Scored() {
		resp, ok := session.Responses[q.ID]
		if !ok || !resp.DetectedMaturityLevel.Assessed() {
			continue
		}

		dim := &assessment.DimensionAssessment{
			MaturityLevel: resp.DetectedMaturityLevel,
			Notes:         resp.Transcript,
			Timestamp:     resp.Timestamp,
		}

		if q.Pillar == string(assessment.PillarNetworks) {
			for _, provider := range session.CloudProviders {
				shard := doc.Pillars.Networks.CloudSpecific[provider]
				copied := *dim
				shard.Dimensions[q.Dimension] = &copied
			}
		} else {
			doc.Pillars.Standard(assessment.PillarID(q.Pillar)).Dimensions[q.Dimension] = dim
		}
	}

	for _, shard := range doc.Pillars.Networks.CloudSpecific {
		shard.RecomputeMaturity()
	}
	for _, id := range assessment.StandardPillarIDs {
		doc.Pillars.Standard(id).RecomputeMaturity()
	}

	doc.OverallAssessment.Narrative = narrative(session, bank, startedAt)
	return doc, nil
}

// narrative summarizes the interview: how many questions were answered,
// when, and the single most frequent detected level. The dominant level
// uses the same first-seen-at-maximum tie-break as pillar aggregation,
// applied over responses in bank order; it defaults to "initial" when
// no response carried a level.
func narrative(session *Session, bank *Bank, startedAt time.Time) string {
	var levels []maturity.Level
	for _, q := range bank.Questions {
		if resp, ok := session.Responses[q.ID]; ok {
			levels = append(levels, resp.DetectedMaturityLevel)
		}
	}

	dominant := maturity.Modal(levels)
	if !dominant.Assessed() {
		dominant = maturity.Initial
	}

	return fmt.Sprintf(
		"This assessment was generated from an AI-powered interview conducted on %s. "+
			"%d questions were answered across all Zero Trust pillars. "+
			"The analysis shows a predominant maturity level of %q across the organization's Zero Trust implementation.",
		startedAt.Format("January 2, 2006"), len(session.Responses), dominant)
}
