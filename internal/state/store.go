// Package state holds the single authoritative assessment document and
// the closed command surface the front end drives it through.
//
// Every command is synchronous and atomic: it either fully applies or
// returns an error with the document untouched. The store assumes a
// single-threaded, event-driven caller and does no internal locking.
package state

import (
	"fmt"
	"sort"
	"time"

	"github.com/karthika2z/karthika2z-ztmm-scoring-tool/internal/assessment"
	"github.com/karthika2z/karthika2z-ztmm-scoring-tool/internal/framework"
	"github.com/karthika2z/karthika2z-ztmm-scoring-tool/internal/maturity"
)

// Screen names used in navigation besides the four pillar ids.
const (
	ScreenSetup     = "setup"
	ScreenSummary   = "summary"
	ScreenInterview = "interview"
)

// Position is the front end's current location in the questionnaire.
type Position struct {
	Pillar    string
	Dimension string
	Cloud     assessment.CloudProvider
}

// Store owns one assessment document plus the transient UI-facing
// flags. The document is never shared: collaborators receive copies
// (via serialization) and hand back new values through Load.
type Store struct {
	doc         *assessment.Assessment
	catalog     *framework.Catalog
	dirty       bool
	lastSavedAt string
	pos         Position

	// changed collects the top-level sections touched since the last
	// version bump; IncrementVersion drains it into the change history.
	changed map[string]struct{}

	now func() time.Time
}

// NewStore creates a store owning a fresh empty document.
// The catalog is used to validate dimension ids at the command boundary.
func NewStore(catalog *framework.Catalog) *Store {
	return NewStoreWith(catalog, time.Now)
}

// NewStoreWith is NewStore with an injected clock for tests.
func NewStoreWith(catalog *framework.Catalog, now func() time.Time) *Store {
	return &Store{
		doc:     assessment.NewWith(now, newDocumentID),
		catalog: catalog,
		pos:     Position{Pillar: ScreenSetup},
		changed: map[string]struct{}{},
		now:     now,
	}
}

// Document returns the store-owned document. Callers must treat it as
// read-only; all mutation goes through commands.
func (s *Store) Document() *assessment.Assessment { return s.doc }

// IsDirty reports whether the document has unsaved changes.
func (s *Store) IsDirty() bool { return s.dirty }

// LastSavedAt returns the RFC 3339 time of the last successful persist,
// or "" if the document has never been saved.
func (s *Store) LastSavedAt() string { return s.lastSavedAt }

// Position returns the current navigation position.
func (s *Store) Position() Position { return s.pos }

func (s *Store) stamp() string {
	return s.now().UTC().Format(assessment.TimestampLayout)
}

func (s *Store) touch(section string) {
	s.doc.LastModified = s.stamp()
	s.dirty = true
	s.changed[section] = struct{}{}
}

// Load replaces the entire document, clears the dirty flag, and stamps
// the last-saved time. It does not validate: validation happens in the
// persistence bridge before this command is issued.
func (s *Store) Load(doc *assessment.Assessment) {
	s.doc = doc
	s.dirty = false
	s.lastSavedAt = s.stamp()
	s.changed = map[string]struct{}{}
}

// MetadataPatch is a partial metadata update. Nil fields are left
// unchanged; a non-nil CloudProviders slice replaces the provider set.
type MetadataPatch struct {
	CustomerName    *string
	Industry        *string
	AssessmentDate  *string
	SalesEngineer   *string
	CloudProviders  []assessment.CloudProvider
	AdditionalNotes *string
}

// UpdateMetadata shallow-merges the patch into the metadata. When the
// cloud provider set changes, the networks pillar's shard map is
// resynchronized: new providers get a fresh empty shard, removed
// providers lose their shard and all dimension data in it, and
// providers present in both keep their shard untouched. An unknown
// provider in the patch is rejected before anything is applied.
func (s *Store) UpdateMetadata(patch MetadataPatch) error {
	for _, p := range patch.CloudProviders {
		if !p.Valid() {
			return fmt.Errorf("unknown cloud provider %q", p)
		}
	}

	m := &s.doc.Metadata
	if patch.CustomerName != nil {
		m.CustomerName = *patch.CustomerName
	}
	if patch.Industry != nil {
		m.Industry = *patch.Industry
	}
	if patch.AssessmentDate != nil {
		m.AssessmentDate = *patch.AssessmentDate
	}
	if patch.SalesEngineer != nil {
		m.SalesEngineer = *patch.SalesEngineer
	}
	if patch.AdditionalNotes != nil {
		m.AdditionalNotes = *patch.AdditionalNotes
	}

	if patch.CloudProviders != nil {
		m.CloudProviders = patch.CloudProviders

		existing := s.doc.Pillars.Networks.CloudSpecific
		next := make(map[assessment.CloudProvider]*assessment.CloudShard, len(patch.CloudProviders))
		for _, p := range patch.CloudProviders {
			if shard, ok := existing[p]; ok {
				next[p] = shard
			} else {
				next[p] = assessment.NewShard()
			}
		}
		s.doc.Pillars.Networks.CloudSpecific = next
	}

	s.touch("metadata")
	return nil
}

// DimensionPatch is a partial dimension update. Nil fields are left
// unchanged.
type DimensionPatch struct {
	MaturityLevel *maturity.Level
	Notes         *string
}

// UpdateDimension merges the patch into one dimension assessment,
// stamps its timestamp, and immediately recomputes the owning pillar's
// (or shard's) maturity. For the networks pillar a cloud provider from
// the current selection is required; for the other pillars it must be
// empty. Unknown pillar or dimension ids are rejected before anything
// is applied.
func (s *Store) UpdateDimension(pillarID assessment.PillarID, dimensionID string, cloud assessment.CloudProvider, patch DimensionPatch) error {
	if !pillarID.Valid() {
		return fmt.Errorf("unknown pillar %q", pillarID)
	}
	if !s.catalog.HasDimension(string(pillarID), dimensionID) {
		return fmt.Errorf("pillar %q has no dimension %q", pillarID, dimensionID)
	}
	if patch.MaturityLevel != nil && patch.MaturityLevel.Assessed() && !patch.MaturityLevel.Valid() {
		return fmt.Errorf("unknown maturity level %q", *patch.MaturityLevel)
	}

	if pillarID == assessment.PillarNetworks {
		if cloud == "" {
			return fmt.Errorf("networks pillar edits require a cloud provider")
		}
		shard, ok := s.doc.Pillars.Networks.CloudSpecific[cloud]
		if !ok {
			return fmt.Errorf("cloud provider %q is not selected", cloud)
		}
		applyDimensionPatch(shard.Dimensions, dimensionID, patch, s.stamp())
		shard.RecomputeMaturity()
	} else {
		if cloud != "" {
			return fmt.Errorf("pillar %q is not cloud-specific", pillarID)
		}
		pillar := s.doc.Pillars.Standard(pillarID)
		applyDimensionPatch(pillar.Dimensions, dimensionID, patch, s.stamp())
		pillar.RecomputeMaturity()
	}

	s.touch("pillars." + string(pillarID))
	return nil
}

func applyDimensionPatch(dims map[string]*assessment.DimensionAssessment, id string, patch DimensionPatch, stamp string) {
	d, ok := dims[id]
	if !ok {
		d = &assessment.DimensionAssessment{}
		dims[id] = d
	}
	if patch.MaturityLevel != nil {
		d.MaturityLevel = *patch.MaturityLevel
	}
	if patch.Notes != nil {
		d.Notes = *patch.Notes
	}
	d.Timestamp = stamp
}

// UpdatePillarMaturity writes a pillar (or shard) score verbatim,
// bypassing recomputation. This is the manual-override escape hatch:
// it is the only command that can set the Overridden flag.
func (s *Store) UpdatePillarMaturity(pillarID assessment.PillarID, cloud assessment.CloudProvider, score assessment.Score) error {
	if !pillarID.Valid() {
		return fmt.Errorf("unknown pillar %q", pillarID)
	}

	if pillarID == assessment.PillarNetworks {
		if cloud == "" {
			return fmt.Errorf("networks pillar edits require a cloud provider")
		}
		shard, ok := s.doc.Pillars.Networks.CloudSpecific[cloud]
		if !ok {
			return fmt.Errorf("cloud provider %q is not selected", cloud)
		}
		shard.PillarMaturity = score
	} else {
		if cloud != "" {
			return fmt.Errorf("pillar %q is not cloud-specific", pillarID)
		}
		s.doc.Pillars.Standard(pillarID).PillarMaturity = score
	}

	s.touch("pillars." + string(pillarID))
	return nil
}

// OverallPatch is a partial overall-assessment update. Nil fields are
// left unchanged.
type OverallPatch struct {
	Narrative    *string
	KeyStrengths []string
	KeyGaps      []string
}

// UpdateOverallAssessment shallow-merges the patch into the overall
// assessment section.
func (s *Store) UpdateOverallAssessment(patch OverallPatch) {
	o := &s.doc.OverallAssessment
	if patch.Narrative != nil {
		o.Narrative = *patch.Narrative
	}
	if patch.KeyStrengths != nil {
		o.KeyStrengths = patch.KeyStrengths
	}
	if patch.KeyGaps != nil {
		o.KeyGaps = patch.KeyGaps
	}
	s.touch("overallAssessment")
}

// MarkDirty flags the document as having unsaved changes without
// touching the document itself.
func (s *Store) MarkDirty() { s.dirty = true }

// MarkClean clears the dirty flag and stamps the last-saved time.
// Issued by the outer layer after a successful persist.
func (s *Store) MarkClean() {
	s.dirty = false
	s.lastSavedAt = s.stamp()
}

// Navigate replaces the navigation position wholesale. It does not
// touch the document or the dirty flag.
func (s *Store) Navigate(pos Position) { s.pos = pos }

// Reset discards the document for a fresh empty one and clears the
// dirty flag and navigation.
func (s *Store) Reset() {
	s.doc = assessment.NewWith(s.now, newDocumentID)
	s.dirty = false
	s.lastSavedAt = ""
	s.pos = Position{Pillar: ScreenSetup}
	s.changed = map[string]struct{}{}
}

// IncrementVersion bumps the file version and appends exactly one
// "updated" change history entry carrying the sections touched since
// the previous bump. Earlier history entries are never mutated.
func (s *Store) IncrementVersion() {
	next := assessment.IncrementVersion(s.doc.FileVersion)
	stamp := s.stamp()

	s.doc.FileVersion = next
	s.doc.LastModified = stamp
	s.doc.ChangeHistory = append(s.doc.ChangeHistory, assessment.ChangeHistoryEntry{
		Timestamp:     stamp,
		FileVersion:   next,
		Action:        assessment.ActionUpdated,
		ChangedFields: s.drainChanged(),
	})
}

func (s *Store) drainChanged() []string {
	if len(s.changed) == 0 {
		return nil
	}
	fields := make([]string, 0, len(s.changed))
	for f := range s.changed {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	s.changed = map[string]struct{}{}
	return fields
}
