package assessment

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/karthika2z/karthika2z-ztmm-scoring-tool/internal/maturity"
)

// Timestamp layouts used throughout the document.
const (
	TimestampLayout = time.RFC3339
	DateLayout      = "2006-01-02"
)

// New returns a fresh empty assessment at fileVersion "v1" with a
// generated id, the current date as assessment date, no cloud providers
// selected, and a single "created" change history entry.
func New() *Assessment {
	return NewWith(time.Now, uuid.NewString)
}

// NewWith is New with an injected clock and id generator, for
// deterministic construction in tests and in the interview adapter.
func NewWith(now func() time.Time, newID func() string) *Assessment {
	ts := now().UTC()
	stamp := ts.Format(TimestampLayout)

	return &Assessment{
		AssessmentID:  newID(),
		FileVersion:   "v1",
		SchemaVersion: SchemaVersion,
		Metadata: Metadata{
			AssessmentDate: ts.Format(DateLayout),
			CloudProviders: []CloudProvider{},
		},
		Pillars: Pillars{
			Networks:              NewNetworkPillar(nil),
			ApplicationsWorkloads: NewPillar(),
			Data:                  NewPillar(),
			CrossCutting:          NewPillar(),
		},
		OverallAssessment: OverallAssessment{
			KeyStrengths: []string{},
			KeyGaps:      []string{},
		},
		CreatedAt:    stamp,
		LastModified: stamp,
		ChangeHistory: []ChangeHistoryEntry{
			{Timestamp: stamp, FileVersion: "v1", Action: ActionCreated},
		},
	}
}

// NewPillar returns an empty non-sharded pillar: no dimensions, an
// all-unassessed score, override off.
func NewPillar() Pillar {
	return Pillar{
		Dimensions:     map[string]*DimensionAssessment{},
		PillarMaturity: Score{},
	}
}

// NewShard returns an empty per-provider shard of the networks pillar.
func NewShard() *CloudShard {
	return &CloudShard{
		Dimensions:     map[string]*DimensionAssessment{},
		PillarMaturity: Score{},
	}
}

// NewNetworkPillar returns a networks pillar with one empty shard per
// given provider. The shard map starts empty when no providers are
// selected yet.
func NewNetworkPillar(providers []CloudProvider) NetworkPillar {
	shards := make(map[CloudProvider]*CloudShard, len(providers))
	for _, p := range providers {
		shards[p] = NewShard()
	}
	return NetworkPillar{CloudSpecific: shards}
}

// RecomputeMaturity derives the pillar score from the current dimension
// levels: Calculated is always overwritten with the fresh modal value;
// Final follows Calculated unless the override flag is set, in which
// case the existing Final and the flag are preserved.
func (p *Pillar) RecomputeMaturity() {
	p.PillarMaturity = recompute(p.Dimensions, p.PillarMaturity)
}

// RecomputeMaturity is the shard-level counterpart of
// (*Pillar).RecomputeMaturity.
func (s *CloudShard) RecomputeMaturity() {
	s.PillarMaturity = recompute(s.Dimensions, s.PillarMaturity)
}

func recompute(dims map[string]*DimensionAssessment, prev Score) Score {
	// Dimension ids are sorted so the first-seen tie-break in Modal is
	// stable across runs.
	ids := make([]string, 0, len(dims))
	for id := range dims {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	levels := make([]maturity.Level, 0, len(ids))
	for _, id := range ids {
		levels = append(levels, dims[id].MaturityLevel)
	}
	calculated := maturity.Modal(levels)

	final := calculated
	if prev.Overridden {
		final = prev.Final
	}
	return Score{
		Calculated: calculated,
		Final:      final,
		Overridden: prev.Overridden,
	}
}

// AssessedLevels collects every assessed dimension level across all four
// pillars, including every shard of the networks pillar. Used for the
// headline average.
func (a *Assessment) AssessedLevels() []maturity.Level {
	var levels []maturity.Level
	collect := func(dims map[string]*DimensionAssessment) {
		for _, d := range dims {
			if d.MaturityLevel.Assessed() {
				levels = append(levels, d.MaturityLevel)
			}
		}
	}
	for _, shard := range a.Pillars.Networks.CloudSpecific {
		collect(shard.Dimensions)
	}
	for _, id := range StandardPillarIDs {
		collect(a.Pillars.Standard(id).Dimensions)
	}
	return levels
}
