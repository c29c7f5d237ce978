// Package report derives read-only summaries from an assessment
// document: per-pillar completion progress against the framework
// catalog and numeric maturity averages for trend lines. Nothing here
// mutates the document.
package report

import (
	"github.com/karthika2z/karthika2z-ztmm-scoring-tool/internal/assessment"
	"github.com/karthika2z/karthika2z-ztmm-scoring-tool/internal/framework"
	"github.com/karthika2z/karthika2z-ztmm-scoring-tool/internal/maturity"
)

// CompletionStatus describes how far along one pillar's assessment is.
type CompletionStatus string

const (
	StatusNotStarted CompletionStatus = "not-started"
	StatusInProgress CompletionStatus = "in-progress"
	StatusComplete   CompletionStatus = "complete"
)

// PillarProgress counts assessed dimensions against the catalog total
// for one pillar. For the networks pillar the total spans every
// selected cloud provider's shard, so an all-AWS-but-no-Azure document
// reads as in-progress rather than complete.
type PillarProgress struct {
	PillarID  assessment.PillarID `json:"pillarId"`
	Completed int                 `json:"completed"`
	Total     int                 `json:"total"`
	Status    CompletionStatus    `json:"status"`
}

// PillarAverage is the numeric mean of one pillar's assessed dimension
// levels on the 1..4 scale, with the count that backs it. Assessed is
// zero when nothing in the pillar has a level yet; Average is then 0.
type PillarAverage struct {
	PillarID assessment.PillarID `json:"pillarId"`
	Average  float64             `json:"average"`
	Assessed int                 `json:"assessed"`
}

// Summary is the full derived view of one document.
type Summary struct {
	Progress []PillarProgress `json:"progress"`
	Averages []PillarAverage  `json:"averages"`

	// OverallAverage is the headline mean over every assessed dimension
	// in the document, shards included. Zero with OverallAssessed zero
	// when the document is empty.
	OverallAverage  float64 `json:"overallAverage"`
	OverallAssessed int     `json:"overallAssessed"`
}

// Summarize computes progress and averages for every pillar in the
// fixed pillar order.
func Summarize(doc *assessment.Assessment, catalog *framework.Catalog) Summary {
	s := Summary{
		Progress: make([]PillarProgress, 0, len(assessment.PillarIDs)),
		Averages: make([]PillarAverage, 0, len(assessment.PillarIDs)),
	}
	for _, id := range assessment.PillarIDs {
		s.Progress = append(s.Progress, Progress(doc, catalog, id))
		s.Averages = append(s.Averages, AverageFor(doc, id))
	}
	if avg, n, ok := maturity.Average(doc.AssessedLevels()); ok {
		s.OverallAverage, s.OverallAssessed = avg, n
	}
	return s
}

// Progress reports completion for one pillar.
func Progress(doc *assessment.Assessment, catalog *framework.Catalog, id assessment.PillarID) PillarProgress {
	perPillar := catalog.DimensionCount(string(id))

	var completed, total int
	if id == assessment.PillarNetworks {
		shards := doc.Pillars.Networks.CloudSpecific
		total = perPillar * len(shards)
		for _, shard := range shards {
			completed += countAssessed(shard.Dimensions)
		}
		// No providers selected yet still means the pillar has work
		// left, so keep the catalog total as the denominator.
		if len(shards) == 0 {
			total = perPillar
		}
	} else {
		total = perPillar
		completed = countAssessed(doc.Pillars.Standard(id).Dimensions)
	}

	return PillarProgress{
		PillarID:  id,
		Completed: completed,
		Total:     total,
		Status:    statusFor(completed, total),
	}
}

// AverageFor reports the numeric mean for one pillar. Networks pools
// every shard's dimensions into the same mean.
func AverageFor(doc *assessment.Assessment, id assessment.PillarID) PillarAverage {
	var levels []maturity.Level
	if id == assessment.PillarNetworks {
		for _, shard := range doc.Pillars.Networks.CloudSpecific {
			levels = appendLevels(levels, shard.Dimensions)
		}
	} else {
		levels = appendLevels(levels, doc.Pillars.Standard(id).Dimensions)
	}

	out := PillarAverage{PillarID: id}
	if avg, n, ok := maturity.Average(levels); ok {
		out.Average, out.Assessed = avg, n
	}
	return out
}

func countAssessed(dims map[string]*assessment.DimensionAssessment) int {
	n := 0
	for _, d := range dims {
		if d.MaturityLevel.Assessed() {
			n++
		}
	}
	return n
}

func appendLevels(levels []maturity.Level, dims map[string]*assessment.DimensionAssessment) []maturity.Level {
	for _, d := range dims {
		levels = append(levels, d.MaturityLevel)
	}
	return levels
}

func statusFor(completed, total int) CompletionStatus {
	switch {
	case completed == 0:
		return StatusNotStarted
	case completed < total:
		return StatusInProgress
	default:
		return StatusComplete
	}
}
