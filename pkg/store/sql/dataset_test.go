package sql

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ncruces/go-sqlite3/gormlite"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tracebase/datamarket/pkg/config"
	"github.com/tracebase/datamarket/pkg/contract"
	"github.com/tracebase/datamarket/pkg/store"
	"github.com/tracebase/datamarket/pkg/store/sql/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "catalog.db")
	db, err := gorm.Open(gormlite.Open("file:"+path), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.Dataset{},
		&model.DatasetMetrics{},
		&model.Tag{},
		&model.DatasetTag{},
		&model.User{},
		&model.Rating{},
		&model.UseCase{},
		&model.DatasetUseCase{},
		&model.DataOwner{},
		&model.DatasetOwner{},
		&model.RelatedDataset{},
		&model.DatasetPreview{},
	))

	testLogger := logrus.New()
	testLogger.SetLevel(logrus.ErrorLevel)

	return NewStoreWithDB(testLogger, config.Config{}, db)
}

var fixtureTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func seedDataset(t *testing.T, s *Store, dataset model.Dataset) {
	t.Helper()
	if dataset.UpdatedAt == nil {
		updated := fixtureTime
		dataset.UpdatedAt = &updated
	}
	require.NoError(t, s.db.Create(&dataset).Error)
}

func TestSearchDatasetsWindow(t *testing.T) {
	s := newTestStore(t)

	for i := 0; i < 15; i++ {
		updated := fixtureTime.Add(-time.Duration(i) * time.Hour)
		seedDataset(t, s, model.Dataset{
			ID:        fmt.Sprintf("ds-%02d", i),
			Name:      fmt.Sprintf("Dataset %02d", i),
			UpdatedAt: &updated,
		})
	}

	summaries, total, err := s.SearchDatasets(context.Background(), store.SearchQuery{
		Limit:  10,
		Offset: 10,
	})
	require.Nil(t, err)
	require.EqualValues(t, 15, total)
	require.Len(t, summaries, 5)

	// Newest-first ordering means the second window starts at ds-10.
	require.Equal(t, "ds-10", summaries[0].ID)
}

func TestSearchDatasetsOrderingTieBreak(t *testing.T) {
	s := newTestStore(t)

	shared := fixtureTime
	for _, id := range []string{"ds-c", "ds-a", "ds-b"} {
		seedDataset(t, s, model.Dataset{ID: id, Name: id, UpdatedAt: &shared})
	}
	newer := fixtureTime.Add(time.Hour)
	seedDataset(t, s, model.Dataset{ID: "ds-z", Name: "ds-z", UpdatedAt: &newer})

	summaries, _, err := s.SearchDatasets(context.Background(), store.SearchQuery{Limit: 10})
	require.Nil(t, err)
	require.Len(t, summaries, 4)

	ids := []string{summaries[0].ID, summaries[1].ID, summaries[2].ID, summaries[3].ID}
	require.Equal(t, []string{"ds-z", "ds-a", "ds-b", "ds-c"}, ids)
}

func TestSearchDatasetsFilters(t *testing.T) {
	s := newTestStore(t)

	seedDataset(t, s, model.Dataset{
		ID:           "ds-retail",
		Name:         "Retail Transactions",
		Description:  "Point of sale records",
		BusinessLine: "Retail",
		DataDomain:   "Sales",
	})
	seedDataset(t, s, model.Dataset{
		ID:           "ds-claims",
		Name:         "Insurance Claims",
		Description:  "Claim settlement history",
		BusinessLine: "Insurance",
		DataDomain:   "Risk",
	})

	t.Run("business line equality", func(t *testing.T) {
		summaries, total, err := s.SearchDatasets(context.Background(), store.SearchQuery{
			BusinessLine: "Retail",
			Limit:        20,
		})
		require.Nil(t, err)
		require.EqualValues(t, 1, total)
		require.Len(t, summaries, 1)
		require.Equal(t, "ds-retail", summaries[0].ID)
	})

	t.Run("no matches", func(t *testing.T) {
		summaries, total, err := s.SearchDatasets(context.Background(), store.SearchQuery{
			BusinessLine: "Aviation",
			Limit:        20,
		})
		require.Nil(t, err)
		require.EqualValues(t, 0, total)
		require.Empty(t, summaries)
	})

	t.Run("search matches name case-insensitively", func(t *testing.T) {
		summaries, total, err := s.SearchDatasets(context.Background(), store.SearchQuery{
			Search: "RETAIL",
			Limit:  20,
		})
		require.Nil(t, err)
		require.EqualValues(t, 1, total)
		require.Equal(t, "ds-retail", summaries[0].ID)
	})

	t.Run("search matches description", func(t *testing.T) {
		summaries, _, err := s.SearchDatasets(context.Background(), store.SearchQuery{
			Search: "settlement",
			Limit:  20,
		})
		require.Nil(t, err)
		require.Len(t, summaries, 1)
		require.Equal(t, "ds-claims", summaries[0].ID)
	})

	t.Run("filters combine with AND", func(t *testing.T) {
		_, total, err := s.SearchDatasets(context.Background(), store.SearchQuery{
			Search:       "claims",
			BusinessLine: "Retail",
			Limit:        20,
		})
		require.Nil(t, err)
		require.EqualValues(t, 0, total)
	})
}

func TestSearchDatasetsSummaryShape(t *testing.T) {
	s := newTestStore(t)

	seedDataset(t, s, model.Dataset{
		ID:         "ds-measured",
		Name:       "Measured",
		DataExpert: "Dana Expert",
	})
	require.NoError(t, s.db.Create(&model.DatasetMetrics{
		DatasetID:     "ds-measured",
		QualityScore:  80,
		Completeness:  70,
		Accuracy:      90,
		Timeliness:    60,
		UsageCount:    12,
		AverageRating: 4.5,
	}).Error)

	seedDataset(t, s, model.Dataset{ID: "ds-unmeasured", Name: "Unmeasured"})

	summaries, _, err := s.SearchDatasets(context.Background(), store.SearchQuery{Limit: 20})
	require.Nil(t, err)
	require.Len(t, summaries, 2)

	byID := map[string]int{summaries[0].ID: 0, summaries[1].ID: 1}

	measured := summaries[byID["ds-measured"]]
	require.Equal(t, 80, measured.Metrics.QualityScore)
	require.Equal(t, 4.5, measured.Metrics.AverageRating)
	require.Equal(t, 12, measured.Metrics.UsageCount)
	// The summary view never reports completeness, accuracy or timeliness.
	require.Equal(t, 0, measured.Metrics.Completeness)
	require.Equal(t, 0, measured.Metrics.Accuracy)
	require.Equal(t, 0, measured.Metrics.Timeliness)
	require.Equal(t, "Dana Expert", measured.DataOwner.Name)
	require.Empty(t, measured.DataOwner.ID)
	require.Empty(t, measured.DataOwner.Email)

	unmeasured := summaries[byID["ds-unmeasured"]]
	require.Equal(t, 0, unmeasured.Metrics.QualityScore)
	require.Equal(t, 0.0, unmeasured.Metrics.AverageRating)
	require.Equal(t, "Unknown", unmeasured.DataOwner.Name)
}

func seedDetailFixture(t *testing.T, s *Store) string {
	t.Helper()

	id := "ds-detail"
	created := fixtureTime.Add(-24 * time.Hour)
	seedDataset(t, s, model.Dataset{
		ID:                 id,
		TechnicalID:        "TECH-1",
		Name:               "Customer 360",
		Description:        "Unified customer profile",
		BusinessLine:       "Retail",
		BusinessEntity:     "EU",
		Maturity:           "Published",
		DataLifecycle:      "Active",
		Location:           "eu-west-1",
		DataDomain:         "Customer",
		DataSubDomain:      "Profile",
		DataExpert:         "Dana Expert",
		DataValidator:      "Val Idator",
		DataClassification: "Confidential",
		CreatedAt:          &created,
		SourceSysID:        "SRC-9",
		SourceSysName:      "CRM",
	})

	require.NoError(t, s.db.Create(&model.DatasetMetrics{
		DatasetID:     id,
		QualityScore:  80,
		Completeness:  75,
		Accuracy:      88,
		Timeliness:    92,
		UsageCount:    12,
		AverageRating: 4.5,
	}).Error)

	for _, name := range []string{"pii", "customer"} {
		tag := model.Tag{ID: uuid.NewString(), Name: name}
		require.NoError(t, s.db.Create(&tag).Error)
		require.NoError(t, s.db.Create(&model.DatasetTag{DatasetID: id, TagID: tag.ID}).Error)
	}

	reviewer := model.User{ID: uuid.NewString(), Name: "Riley Reviewer"}
	require.NoError(t, s.db.Create(&reviewer).Error)
	older := fixtureTime.Add(-2 * time.Hour)
	newer := fixtureTime.Add(-1 * time.Hour)
	require.NoError(t, s.db.Create(&model.Rating{
		ID: "rating-old", DatasetID: id, UserID: reviewer.ID,
		Rating: 3, Comment: "useful", CreatedAt: &older,
	}).Error)
	require.NoError(t, s.db.Create(&model.Rating{
		ID: "rating-new", DatasetID: id, UserID: reviewer.ID,
		Rating: 5, Comment: "excellent", CreatedAt: &newer,
	}).Error)

	useCase := model.UseCase{
		ID: uuid.NewString(), Title: "Churn analysis", Author: "A. Nalyst",
		BusinessLine: "Retail", Summary: "Predicting churn", Content: "Long form text",
	}
	require.NoError(t, s.db.Create(&useCase).Error)
	require.NoError(t, s.db.Create(&model.DatasetUseCase{DatasetID: id, UseCaseID: useCase.ID}).Error)

	owner := model.DataOwner{ID: "own-1", Name: "Olive Owner", Email: "olive@example.com", Department: "Data"}
	steward := model.DataOwner{ID: "own-2", Name: "Sam Steward", Email: "sam@example.com", Department: "Gov"}
	require.NoError(t, s.db.Create(&owner).Error)
	require.NoError(t, s.db.Create(&steward).Error)
	require.NoError(t, s.db.Create(&model.DatasetOwner{DatasetID: id, OwnerID: owner.ID, Role: model.OwnerRoleOwner}).Error)
	require.NoError(t, s.db.Create(&model.DatasetOwner{DatasetID: id, OwnerID: steward.ID, Role: model.OwnerRoleSteward}).Error)

	seedDataset(t, s, model.Dataset{ID: "ds-sibling", Name: "Customer Events", Description: "Event stream"})
	require.NoError(t, s.db.Create(&model.RelatedDataset{
		DatasetID: id, RelatedDatasetID: "ds-sibling",
		RelationshipType: "similar", SimilarityScore: 0.87,
	}).Error)

	require.NoError(t, s.db.Create(&model.DatasetPreview{
		DatasetID:  id,
		Columns:    datatypes.JSON(`[{"name":"customer_id","dataType":"string"}]`),
		SampleData: datatypes.JSON(`[["c-1"],["c-2"]]`),
		RowCount:   120000,
	}).Error)

	return id
}

func TestGetDatasetDetail(t *testing.T) {
	s := newTestStore(t)
	id := seedDetailFixture(t, s)

	detail, err := s.GetDatasetDetail(context.Background(), id)
	require.Nil(t, err)

	require.Equal(t, id, detail.ID)
	require.Equal(t, "TECH-1", detail.TechnicalID)
	require.Equal(t, "Confidential", detail.DataClassification)
	require.NotNil(t, detail.CreatedAt)
	require.NotNil(t, detail.UpdatedAt)

	require.NotNil(t, detail.Metrics)
	require.Equal(t, 80, detail.Metrics.QualityScore)
	require.Equal(t, 75, detail.Metrics.Completeness)
	require.Equal(t, 4.5, detail.Metrics.AverageRating)

	require.Equal(t, []string{"customer", "pii"}, detail.Tags)

	require.Len(t, detail.Ratings, 2)
	require.Equal(t, "rating-new", detail.Ratings[0].ID)
	require.Equal(t, "Riley Reviewer", detail.Ratings[0].UserName)
	require.Equal(t, 5, detail.Ratings[0].Rating)
	require.Equal(t, "rating-old", detail.Ratings[1].ID)

	require.Len(t, detail.Stories, 1)
	require.Equal(t, "Churn analysis", detail.Stories[0].Title)

	require.NotNil(t, detail.DataOwner)
	require.Equal(t, "Olive Owner", detail.DataOwner.Name)
	require.NotNil(t, detail.DataSteward)
	require.Equal(t, "Sam Steward", detail.DataSteward.Name)

	require.Len(t, detail.RelatedDatasets, 1)
	require.Equal(t, "ds-sibling", detail.RelatedDatasets[0].ID)
	require.Equal(t, "Customer Events", detail.RelatedDatasets[0].Name)
	require.Equal(t, "similar", detail.RelatedDatasets[0].RelationshipType)
	require.InDelta(t, 0.87, detail.RelatedDatasets[0].SimilarityScore, 1e-9)

	require.NotNil(t, detail.Preview)
	require.EqualValues(t, 120000, detail.Preview.RowCount)
	require.JSONEq(t, `[{"name":"customer_id","dataType":"string"}]`, string(detail.Preview.Columns))
}

func TestGetDatasetDetailEmptyCollections(t *testing.T) {
	s := newTestStore(t)
	seedDataset(t, s, model.Dataset{ID: "ds-bare", Name: "Bare"})

	detail, err := s.GetDatasetDetail(context.Background(), "ds-bare")
	require.Nil(t, err)

	// Absent children render as empty lists or nulls, never as errors.
	require.NotNil(t, detail.Tags)
	require.Empty(t, detail.Tags)
	require.NotNil(t, detail.Ratings)
	require.Empty(t, detail.Ratings)
	require.NotNil(t, detail.Stories)
	require.Empty(t, detail.Stories)
	require.NotNil(t, detail.RelatedDatasets)
	require.Empty(t, detail.RelatedDatasets)
	require.Nil(t, detail.DataOwner)
	require.Nil(t, detail.DataSteward)
	require.Nil(t, detail.Metrics)
	require.Nil(t, detail.Preview)
}

func TestMetricsAsymmetryBetweenViews(t *testing.T) {
	s := newTestStore(t)
	seedDataset(t, s, model.Dataset{ID: "ds-unmeasured", Name: "Unmeasured"})

	detail, err := s.GetDatasetDetail(context.Background(), "ds-unmeasured")
	require.Nil(t, err)
	require.Nil(t, detail.Metrics)

	summaries, _, err := s.SearchDatasets(context.Background(), store.SearchQuery{Limit: 20})
	require.Nil(t, err)
	require.Len(t, summaries, 1)
	require.Equal(t, 0, summaries[0].Metrics.QualityScore)
}

func TestOwnerRoleFirstMatch(t *testing.T) {
	s := newTestStore(t)
	seedDataset(t, s, model.Dataset{ID: "ds-dup", Name: "Duplicated owners"})

	first := model.DataOwner{ID: "own-1", Name: "First Owner"}
	second := model.DataOwner{ID: "own-2", Name: "Second Owner"}
	require.NoError(t, s.db.Create(&first).Error)
	require.NoError(t, s.db.Create(&second).Error)
	require.NoError(t, s.db.Create(&model.DatasetOwner{DatasetID: "ds-dup", OwnerID: first.ID, Role: model.OwnerRoleOwner}).Error)
	require.NoError(t, s.db.Create(&model.DatasetOwner{DatasetID: "ds-dup", OwnerID: second.ID, Role: model.OwnerRoleOwner}).Error)

	detail, err := s.GetDatasetDetail(context.Background(), "ds-dup")
	require.Nil(t, err)

	require.NotNil(t, detail.DataOwner)
	require.Equal(t, "First Owner", detail.DataOwner.Name)
	require.Nil(t, detail.DataSteward)
}

func TestGetDatasetDetailNotFound(t *testing.T) {
	s := newTestStore(t)

	detail, err := s.GetDatasetDetail(context.Background(), "no-such-id")
	require.Nil(t, detail)
	require.NotNil(t, err)
	require.Equal(t, contract.ErrorCodeResourceDoesNotExist, err.Code)
	require.Equal(t, 404, err.StatusCode())
}

func TestGetDatasetDetailCancelledContext(t *testing.T) {
	s := newTestStore(t)
	seedDataset(t, s, model.Dataset{ID: "ds-cancel", Name: "Cancelled"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	detail, err := s.GetDatasetDetail(ctx, "ds-cancel")
	require.Nil(t, detail)
	require.NotNil(t, err)
}

func TestGetDatasetExistence(t *testing.T) {
	s := newTestStore(t)
	seedDataset(t, s, model.Dataset{ID: "ds-probe", Name: "Probe"})

	existence, err := s.GetDatasetExistence(context.Background(), "ds-probe")
	require.Nil(t, err)
	require.Equal(t, "ds-probe", existence.ID)
	require.Equal(t, "Probe", existence.Name)

	existence, err = s.GetDatasetExistence(context.Background(), "missing")
	require.Nil(t, existence)
	require.Equal(t, contract.ErrorCodeResourceDoesNotExist, err.Code)
}
