package assessment

import (
	"github.com/karthika2z/karthika2z-ztmm-scoring-tool/internal/maturity"
)

// SchemaVersion is the document schema version this build reads and
// writes. Imported files must match it exactly; there is no forward or
// backward compatibility.
const SchemaVersion = "1.0"

// PillarID identifies one of the four top-level assessment pillars.
type PillarID string

const (
	PillarNetworks              PillarID = "networks"
	PillarApplicationsWorkloads PillarID = "applicationsWorkloads"
	PillarData                  PillarID = "data"
	PillarCrossCutting          PillarID = "crossCutting"
)

// PillarIDs lists all pillars in canonical order.
var PillarIDs = []PillarID{
	PillarNetworks,
	PillarApplicationsWorkloads,
	PillarData,
	PillarCrossCutting,
}

// StandardPillarIDs lists the three pillars that are not sharded per
// cloud provider.
var StandardPillarIDs = []PillarID{
	PillarApplicationsWorkloads,
	PillarData,
	PillarCrossCutting,
}

// Valid reports whether id is one of the four defined pillars.
func (id PillarID) Valid() bool {
	switch id {
	case PillarNetworks, PillarApplicationsWorkloads, PillarData, PillarCrossCutting:
		return true
	}
	return false
}

// CloudProvider identifies a cloud platform the customer runs on.
type CloudProvider string

const (
	CloudAWS   CloudProvider = "AWS"
	CloudAzure CloudProvider = "Azure"
	CloudGCP   CloudProvider = "GCP"
	CloudOCI   CloudProvider = "OCI"
	CloudOther CloudProvider = "Other"
)

// CloudProviders lists the selectable providers in display order.
var CloudProviders = []CloudProvider{CloudAWS, CloudAzure, CloudGCP, CloudOCI, CloudOther}

// Valid reports whether p is a known provider.
func (p CloudProvider) Valid() bool {
	switch p {
	case CloudAWS, CloudAzure, CloudGCP, CloudOCI, CloudOther:
		return true
	}
	return false
}

// DimensionAssessment records the scored state of one dimension. For the
// networks pillar there is one instance per (dimension, cloud provider)
// pair. Instances are created lazily on first edit and mutated in place.
//
// Timestamps are RFC 3339 strings; the document is a wire format first
// and keeping them as strings makes the JSON round-trip lossless.
type DimensionAssessment struct {
	MaturityLevel maturity.Level `json:"maturityLevel,omitempty"`
	Notes         string         `json:"notes,omitempty"`
	Timestamp     string         `json:"timestamp,omitempty"`
}

// Score is a pillar-level (or shard-level) maturity derivation.
//
// Invariant: while Overridden is false, Final always equals the freshly
// recomputed Calculated value. The override flag is preserved by
// recomputation; only the UpdatePillarMaturity escape hatch writes it.
type Score struct {
	Calculated maturity.Level `json:"calculated,omitempty"`
	Final      maturity.Level `json:"final,omitempty"`
	Overridden bool           `json:"overridden"`
}

// Pillar is one of the three non-sharded pillar assessments.
type Pillar struct {
	Dimensions     map[string]*DimensionAssessment `json:"dimensions"`
	PillarMaturity Score                           `json:"pillarMaturity"`
	Notes          string                          `json:"notes,omitempty"`
}

// CloudShard is the per-provider slice of the networks pillar.
type CloudShard struct {
	Dimensions     map[string]*DimensionAssessment `json:"dimensions"`
	PillarMaturity Score                           `json:"pillarMaturity"`
}

// NetworkPillar is the cloud-provider-sharded networks pillar.
//
// Invariant: the key set of CloudSpecific always equals the currently
// selected cloud provider set in the metadata. Removing a provider
// deletes its shard and all contained dimension data.
type NetworkPillar struct {
	CloudSpecific map[CloudProvider]*CloudShard `json:"cloudSpecific"`
	OverallNotes  string                        `json:"overallNotes,omitempty"`
}

// Pillars holds the four pillar assessments.
type Pillars struct {
	Networks              NetworkPillar `json:"networks"`
	ApplicationsWorkloads Pillar        `json:"applicationsWorkloads"`
	Data                  Pillar        `json:"data"`
	CrossCutting          Pillar        `json:"crossCutting"`
}

// Standard returns the named non-sharded pillar, or nil for the
// networks pillar and unknown ids.
func (p *Pillars) Standard(id PillarID) *Pillar {
	switch id {
	case PillarApplicationsWorkloads:
		return &p.ApplicationsWorkloads
	case PillarData:
		return &p.Data
	case PillarCrossCutting:
		return &p.CrossCutting
	}
	return nil
}

// Metadata describes the engagement the assessment belongs to.
// CloudProviders has set semantics but keeps insertion order; the order
// drives tab order and "next cloud" navigation in the front end.
type Metadata struct {
	CustomerName    string          `json:"customerName"`
	Industry        string          `json:"industry,omitempty"`
	AssessmentDate  string          `json:"assessmentDate"` // "2006-01-02"
	SalesEngineer   string          `json:"salesEngineer,omitempty"`
	CloudProviders  []CloudProvider `json:"cloudProviders"`
	AdditionalNotes string          `json:"additionalNotes,omitempty"`
}

// OverallAssessment is the free-text summary section.
type OverallAssessment struct {
	Narrative    string   `json:"narrative"`
	KeyStrengths []string `json:"keyStrengths"`
	KeyGaps      []string `json:"keyGaps"`
}

// ChangeHistoryEntry is one line of the append-only version log.
type ChangeHistoryEntry struct {
	Timestamp     string   `json:"timestamp"`
	FileVersion   string   `json:"fileVersion"`
	Action        string   `json:"action"` // ActionCreated or ActionUpdated
	ChangedFields []string `json:"changedFields,omitempty"`
}

// Change history actions.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
)

// Assessment is the root document.
//
// Invariant: FileVersion is monotonically increasing ("v1", "v2", ...);
// every bump appends exactly one ChangeHistory entry and earlier entries
// are never mutated.
type Assessment struct {
	AssessmentID      string               `json:"assessmentId"`
	FileVersion       string               `json:"fileVersion"`
	SchemaVersion     string               `json:"schemaVersion"`
	Metadata          Metadata             `json:"metadata"`
	Pillars           Pillars              `json:"pillars"`
	OverallAssessment OverallAssessment    `json:"overallAssessment"`
	CreatedAt         string               `json:"createdAt"`
	LastModified      string               `json:"lastModified"`
	ChangeHistory     []ChangeHistoryEntry `json:"changeHistory"`
}
