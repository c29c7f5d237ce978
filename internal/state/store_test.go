package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karthika2z/karthika2z-ztmm-scoring-tool/internal/assessment"
	"github.com/karthika2z/karthika2z-ztmm-scoring-tool/internal/framework"
	"github.com/karthika2z/karthika2z-ztmm-scoring-tool/internal/maturity"
	"github.com/karthika2z/karthika2z-ztmm-scoring-tool/internal/testutil"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	catalog, err := framework.Load()
	require.NoError(t, err)
	now := testutil.ClockAt(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	return NewStoreWith(catalog, now)
}

func levelPtr(l maturity.Level) *maturity.Level { return &l }
func strPtr(s string) *string                   { return &s }

func TestNewStore_StartsClean(t *testing.T) {
	s := newTestStore(t)
	assert.False(t, s.IsDirty())
	assert.Equal(t, "", s.LastSavedAt())
	assert.Equal(t, ScreenSetup, s.Position().Pillar)
	assert.Equal(t, "v1", s.Document().FileVersion)
}

func TestLoad_ReplacesDocumentAndClearsDirty(t *testing.T) {
	s := newTestStore(t)
	s.MarkDirty()

	doc := assessment.New()
	doc.Metadata.CustomerName = "Globex"
	s.Load(doc)

	assert.Same(t, doc, s.Document())
	assert.False(t, s.IsDirty())
	assert.Equal(t, "2024-03-01T12:00:00Z", s.LastSavedAt())
}

func TestUpdateMetadata_MergeAndDirty(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.UpdateMetadata(MetadataPatch{
		CustomerName: strPtr("Acme"),
		Industry:     strPtr("Retail"),
	}))

	m := s.Document().Metadata
	assert.Equal(t, "Acme", m.CustomerName)
	assert.Equal(t, "Retail", m.Industry)
	assert.True(t, s.IsDirty())
	assert.Equal(t, "2024-03-01T12:00:00Z", s.Document().LastModified)
}

func TestUpdateMetadata_CloudProviderResync(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.UpdateMetadata(MetadataPatch{
		CloudProviders: []assessment.CloudProvider{assessment.CloudAWS, assessment.CloudAzure},
	}))

	// Score a dimension in the Azure shard so survival is observable.
	require.NoError(t, s.UpdateDimension(
		assessment.PillarNetworks, "segmentationStrategy", assessment.CloudAzure,
		DimensionPatch{MaturityLevel: levelPtr(maturity.Advanced)},
	))
	azureShard := s.Document().Pillars.Networks.CloudSpecific[assessment.CloudAzure]

	require.NoError(t, s.UpdateMetadata(MetadataPatch{
		CloudProviders: []assessment.CloudProvider{assessment.CloudAzure, assessment.CloudGCP},
	}))

	shards := s.Document().Pillars.Networks.CloudSpecific
	require.Len(t, shards, 2)
	assert.Same(t, azureShard, shards[assessment.CloudAzure], "surviving shard kept untouched")
	assert.Equal(t, maturity.Advanced, shards[assessment.CloudAzure].Dimensions["segmentationStrategy"].MaturityLevel)
	assert.NotNil(t, shards[assessment.CloudGCP])
	assert.Empty(t, shards[assessment.CloudGCP].Dimensions)
	assert.Nil(t, shards[assessment.CloudAWS], "dropped provider loses its shard")
}

func TestUpdateMetadata_RejectsUnknownProvider(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.UpdateMetadata(MetadataPatch{
		CloudProviders: []assessment.CloudProvider{assessment.CloudAWS},
	}))
	s.MarkClean()

	err := s.UpdateMetadata(MetadataPatch{
		CustomerName:   strPtr("Acme"),
		CloudProviders: []assessment.CloudProvider{assessment.CloudAWS, assessment.CloudProvider("OVH")},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OVH")

	// Nothing was applied, not even the valid parts of the patch.
	m := s.Document().Metadata
	assert.Equal(t, "", m.CustomerName)
	assert.Equal(t, []assessment.CloudProvider{assessment.CloudAWS}, m.CloudProviders)
	shards := s.Document().Pillars.Networks.CloudSpecific
	require.Len(t, shards, 1)
	assert.NotNil(t, shards[assessment.CloudAWS])
	assert.False(t, s.IsDirty())
}

func TestUpdateDimension_RecomputesPillarMaturity(t *testing.T) {
	s := newTestStore(t)

	edits := []struct {
		dim   string
		level maturity.Level
	}{
		{"identityWorkloads", maturity.Initial},
		{"encryptionTransit", maturity.Initial},
		{"authorizationPolicy", maturity.Advanced},
	}
	for _, e := range edits {
		require.NoError(t, s.UpdateDimension(
			assessment.PillarApplicationsWorkloads, e.dim, "",
			DimensionPatch{MaturityLevel: levelPtr(e.level)},
		))
	}

	score := s.Document().Pillars.ApplicationsWorkloads.PillarMaturity
	assert.Equal(t, maturity.Initial, score.Calculated)
	assert.Equal(t, maturity.Initial, score.Final)
	assert.False(t, score.Overridden)
	assert.True(t, s.IsDirty())
}

func TestUpdateDimension_MergesPartialData(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.UpdateDimension(
		assessment.PillarData, "dataClassification", "",
		DimensionPatch{MaturityLevel: levelPtr(maturity.Optimal)},
	))
	require.NoError(t, s.UpdateDimension(
		assessment.PillarData, "dataClassification", "",
		DimensionPatch{Notes: strPtr("automated labeling")},
	))

	d := s.Document().Pillars.Data.Dimensions["dataClassification"]
	assert.Equal(t, maturity.Optimal, d.MaturityLevel, "level survives a notes-only edit")
	assert.Equal(t, "automated labeling", d.Notes)
	assert.Equal(t, "2024-03-01T12:00:00Z", d.Timestamp)
}

func TestUpdateDimension_RejectsIllegalTargets(t *testing.T) {
	s := newTestStore(t)

	assert.Error(t, s.UpdateDimension("identity", "segmentationStrategy", "", DimensionPatch{}))
	assert.Error(t, s.UpdateDimension(assessment.PillarData, "segmentationStrategy", "", DimensionPatch{}),
		"dimension from another pillar")
	assert.Error(t, s.UpdateDimension(assessment.PillarData, "dataClassification", assessment.CloudAWS, DimensionPatch{}),
		"cloud provider on a non-sharded pillar")
	assert.Error(t, s.UpdateDimension(assessment.PillarNetworks, "segmentationStrategy", "", DimensionPatch{}),
		"missing cloud provider on the sharded pillar")
	assert.Error(t, s.UpdateDimension(assessment.PillarNetworks, "segmentationStrategy", assessment.CloudAWS, DimensionPatch{}),
		"provider not selected")

	assert.False(t, s.IsDirty(), "rejected commands leave the document untouched")
}

func TestUpdatePillarMaturity_OverrideEscapeHatch(t *testing.T) {
	s := newTestStore(t)
	override := assessment.Score{
		Calculated: maturity.Initial,
		Final:      maturity.Optimal,
		Overridden: true,
	}
	require.NoError(t, s.UpdatePillarMaturity(assessment.PillarCrossCutting, "", override))
	assert.Equal(t, override, s.Document().Pillars.CrossCutting.PillarMaturity)

	// A later dimension edit refreshes Calculated but keeps the override.
	require.NoError(t, s.UpdateDimension(
		assessment.PillarCrossCutting, "incidentResponse", "",
		DimensionPatch{MaturityLevel: levelPtr(maturity.Traditional)},
	))
	score := s.Document().Pillars.CrossCutting.PillarMaturity
	assert.Equal(t, maturity.Traditional, score.Calculated)
	assert.Equal(t, maturity.Optimal, score.Final)
	assert.True(t, score.Overridden)
}

func TestUpdateOverallAssessment(t *testing.T) {
	s := newTestStore(t)
	s.UpdateOverallAssessment(OverallPatch{
		Narrative:    strPtr("Early journey."),
		KeyStrengths: []string{"network segmentation"},
	})

	o := s.Document().OverallAssessment
	assert.Equal(t, "Early journey.", o.Narrative)
	assert.Equal(t, []string{"network segmentation"}, o.KeyStrengths)
	assert.Empty(t, o.KeyGaps)
	assert.True(t, s.IsDirty())
}

func TestMarkCleanStampsLastSaved(t *testing.T) {
	s := newTestStore(t)
	s.MarkDirty()
	s.MarkClean()
	assert.False(t, s.IsDirty())
	assert.Equal(t, "2024-03-01T12:00:00Z", s.LastSavedAt())
}

func TestNavigate_DoesNotTouchDocument(t *testing.T) {
	s := newTestStore(t)
	before := s.Document().LastModified

	s.Navigate(Position{Pillar: "networks", Dimension: "egressStrategy", Cloud: assessment.CloudAWS})
	assert.Equal(t, "networks", s.Position().Pillar)
	assert.False(t, s.IsDirty())
	assert.Equal(t, before, s.Document().LastModified)
}

func TestReset_FreshDocument(t *testing.T) {
	s := newTestStore(t)
	oldID := s.Document().AssessmentID
	require.NoError(t, s.UpdateMetadata(MetadataPatch{CustomerName: strPtr("Acme")}))
	s.Navigate(Position{Pillar: "data"})

	s.Reset()
	assert.NotEqual(t, oldID, s.Document().AssessmentID)
	assert.Equal(t, "", s.Document().Metadata.CustomerName)
	assert.False(t, s.IsDirty())
	assert.Equal(t, ScreenSetup, s.Position().Pillar)
}

func TestIncrementVersion_MonotonicWithHistory(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.UpdateMetadata(MetadataPatch{CustomerName: strPtr("Acme")}))

	for i, want := range []string{"v2", "v3", "v4"} {
		s.IncrementVersion()
		doc := s.Document()
		assert.Equal(t, want, doc.FileVersion)
		require.Len(t, doc.ChangeHistory, i+2, "exactly one entry per bump")
		entry := doc.ChangeHistory[len(doc.ChangeHistory)-1]
		assert.Equal(t, want, entry.FileVersion)
		assert.Equal(t, assessment.ActionUpdated, entry.Action)
	}

	// First bump carries the touched sections, later ones drained them.
	assert.Equal(t, []string{"metadata"}, s.Document().ChangeHistory[1].ChangedFields)
	assert.Empty(t, s.Document().ChangeHistory[2].ChangedFields)

	// History is append-only: the created entry is still first.
	assert.Equal(t, assessment.ActionCreated, s.Document().ChangeHistory[0].Action)
}

func TestIncrementVersion_MalformedVersionResets(t *testing.T) {
	s := newTestStore(t)
	s.Document().FileVersion = "x"
	s.IncrementVersion()
	assert.Equal(t, "v1", s.Document().FileVersion)
}
