package sql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/tracebase/datamarket/pkg/api"
	"github.com/tracebase/datamarket/pkg/contract"
	"github.com/tracebase/datamarket/pkg/store"
	"github.com/tracebase/datamarket/pkg/store/sql/model"
)

// applySearchFilters appends the optional search predicates as bound
// parameters. The row query and the count query both go through here so the
// two always agree on the matched set.
func (s *Store) applySearchFilters(transaction *gorm.DB, query store.SearchQuery) *gorm.DB {
	if query.Search != "" {
		if s.dialectHasILIKE() {
			pattern := "%" + query.Search + "%"
			transaction = transaction.Where(
				"(datasets.name ILIKE ? OR datasets.description ILIKE ?)", pattern, pattern,
			)
		} else {
			pattern := "%" + strings.ToLower(query.Search) + "%"
			transaction = transaction.Where(
				"(LOWER(datasets.name) LIKE ? OR LOWER(datasets.description) LIKE ?)", pattern, pattern,
			)
		}
	}

	if query.BusinessLine != "" {
		transaction = transaction.Where("datasets.business_line = ?", query.BusinessLine)
	}

	if query.DataDomain != "" {
		transaction = transaction.Where("datasets.data_domain = ?", query.DataDomain)
	}

	return transaction
}

type datasetSummaryRow struct {
	ID            string     `gorm:"column:id"`
	Name          string     `gorm:"column:name"`
	Description   string     `gorm:"column:description"`
	BusinessLine  string     `gorm:"column:business_line"`
	DataDomain    string     `gorm:"column:data_domain"`
	Maturity      string     `gorm:"column:maturity"`
	UpdatedAt     *time.Time `gorm:"column:updated_at"`
	DataExpert    string     `gorm:"column:data_expert"`
	SourceSysID   string     `gorm:"column:source_sys_id"`
	SourceSysName string     `gorm:"column:source_sys_name"`
	QualityScore  *int       `gorm:"column:quality_score"`
	AverageRating *float64   `gorm:"column:average_rating"`
	UsageCount    *int       `gorm:"column:usage_count"`
}

// toSummary builds the lightweight listing shape. Metrics columns from the
// left join zero-fill when no metrics row exists; completeness, accuracy and
// timeliness are always 0 in this view. The embedded owner is degenerate:
// it carries only the dataset's free-text data expert, not a resolved
// DataOwner relation.
func (r datasetSummaryRow) toSummary() *api.DatasetSummary {
	summary := api.DatasetSummary{
		ID:                 r.ID,
		Name:               r.Name,
		Description:        r.Description,
		BusinessLine:       r.BusinessLine,
		DataDomain:         r.DataDomain,
		Maturity:           r.Maturity,
		UpdatedAt:          r.UpdatedAt,
		SourceSysID:        r.SourceSysID,
		SourceSysName:      r.SourceSysName,
		DataClassification: "Internal",
		Tags:               []string{},
		DataOwner:          api.DataOwner{Name: "Unknown"},
	}

	if r.DataExpert != "" {
		summary.DataOwner.Name = r.DataExpert
	}
	if r.QualityScore != nil {
		summary.Metrics.QualityScore = *r.QualityScore
	}
	if r.AverageRating != nil {
		summary.Metrics.AverageRating = *r.AverageRating
	}
	if r.UsageCount != nil {
		summary.Metrics.UsageCount = *r.UsageCount
	}

	return &summary
}

func (s *Store) SearchDatasets(
	ctx context.Context, query store.SearchQuery,
) ([]*api.DatasetSummary, int64, *contract.Error) {
	var total int64
	countQuery := s.applySearchFilters(
		s.db.WithContext(ctx).Model(&model.Dataset{}), query,
	)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, contract.NewErrorWith(
			contract.ErrorCodeInternalError, "failed to count datasets", err,
		)
	}

	rowQuery := s.db.WithContext(ctx).Model(&model.Dataset{}).
		Select(
			"datasets.id, datasets.name, datasets.description, datasets.business_line,"+
				" datasets.data_domain, datasets.maturity, datasets.updated_at, datasets.data_expert,"+
				" datasets.source_sys_id, datasets.source_sys_name,"+
				" dataset_metrics.quality_score, dataset_metrics.average_rating, dataset_metrics.usage_count",
		).
		Joins("LEFT JOIN dataset_metrics ON dataset_metrics.dataset_id = datasets.id")
	rowQuery = s.applySearchFilters(rowQuery, query)

	var rows []datasetSummaryRow
	// The secondary order on id keeps pagination stable across rows sharing
	// an update timestamp.
	if err := rowQuery.
		Order("datasets.updated_at DESC").
		Order("datasets.id ASC").
		Limit(query.Limit).
		Offset(query.Offset).
		Scan(&rows).Error; err != nil {
		return nil, 0, contract.NewErrorWith(
			contract.ErrorCodeInternalError, "failed to query datasets", err,
		)
	}

	summaries := make([]*api.DatasetSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, row.toSummary())
	}

	return summaries, total, nil
}

func (s *Store) GetDatasetDetail(ctx context.Context, id string) (*api.DatasetDetail, *contract.Error) {
	var dataset model.Dataset
	if err := s.db.WithContext(ctx).First(&dataset, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, contract.NewError(
				contract.ErrorCodeResourceDoesNotExist,
				fmt.Sprintf("No dataset with id=%q exists", id),
			)
		}

		return nil, contract.NewErrorWith(
			contract.ErrorCodeInternalError, "failed to get dataset "+id, err,
		)
	}

	detail := dataset.ToDetail()

	// The child fetches are independent reads filling disjoint fields of
	// the detail object. A failed fetch or a cancelled request context
	// aborts the remaining ones; the request fails whole, never partially.
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error { return s.loadMetrics(groupCtx, id, detail) })
	group.Go(func() error { return s.loadTags(groupCtx, id, detail) })
	group.Go(func() error { return s.loadRatings(groupCtx, id, detail) })
	group.Go(func() error { return s.loadStories(groupCtx, id, detail) })
	group.Go(func() error { return s.loadOwners(groupCtx, id, detail) })
	group.Go(func() error { return s.loadRelatedDatasets(groupCtx, id, detail) })
	group.Go(func() error { return s.loadPreview(groupCtx, id, detail) })

	if err := group.Wait(); err != nil {
		return nil, contract.NewErrorWith(
			contract.ErrorCodeInternalError, "failed to hydrate dataset "+id, err,
		)
	}

	return detail, nil
}

func (s *Store) GetDatasetExistence(ctx context.Context, id string) (*api.DatasetExistence, *contract.Error) {
	var dataset model.Dataset
	if err := s.db.WithContext(ctx).Select("id", "name").First(&dataset, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, contract.NewError(
				contract.ErrorCodeResourceDoesNotExist,
				fmt.Sprintf("No dataset with id=%q exists", id),
			)
		}

		return nil, contract.NewErrorWith(
			contract.ErrorCodeInternalError, "failed to check dataset "+id, err,
		)
	}

	return &api.DatasetExistence{ID: dataset.ID, Name: dataset.Name}, nil
}

func (s *Store) loadMetrics(ctx context.Context, id string, detail *api.DatasetDetail) error {
	var metrics model.DatasetMetrics
	if err := s.db.WithContext(ctx).First(&metrics, "dataset_id = ?", id).Error; err != nil {
		// No metrics row means "not yet measured": the detail view reports
		// metrics as null, unlike the zero-filled summary view.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to load metrics: %w", err)
	}

	detail.Metrics = metrics.ToMetrics()
	return nil
}

func (s *Store) loadTags(ctx context.Context, id string, detail *api.DatasetDetail) error {
	var names []string
	if err := s.db.WithContext(ctx).Model(&model.Tag{}).
		Joins("JOIN dataset_tags ON dataset_tags.tag_id = tags.id").
		Where("dataset_tags.dataset_id = ?", id).
		Order("tags.name ASC").
		Pluck("tags.name", &names).Error; err != nil {
		return fmt.Errorf("failed to load tags: %w", err)
	}

	if len(names) > 0 {
		detail.Tags = names
	}
	return nil
}

type ratingRow struct {
	ID        string     `gorm:"column:id"`
	UserID    string     `gorm:"column:user_id"`
	UserName  string     `gorm:"column:user_name"`
	Rating    int        `gorm:"column:rating"`
	Comment   string     `gorm:"column:comment"`
	CreatedAt *time.Time `gorm:"column:created_at"`
}

func (s *Store) loadRatings(ctx context.Context, id string, detail *api.DatasetDetail) error {
	var rows []ratingRow
	if err := s.db.WithContext(ctx).Model(&model.Rating{}).
		Select("ratings.id, ratings.user_id, users.name AS user_name,"+
			" ratings.rating, ratings.comment, ratings.created_at").
		Joins("JOIN users ON users.id = ratings.user_id").
		Where("ratings.dataset_id = ?", id).
		Order("ratings.created_at DESC").
		Scan(&rows).Error; err != nil {
		return fmt.Errorf("failed to load ratings: %w", err)
	}

	for _, row := range rows {
		detail.Ratings = append(detail.Ratings, &api.Rating{
			ID:        row.ID,
			UserID:    row.UserID,
			UserName:  row.UserName,
			Rating:    row.Rating,
			Comment:   row.Comment,
			CreatedAt: row.CreatedAt,
		})
	}
	return nil
}

func (s *Store) loadStories(ctx context.Context, id string, detail *api.DatasetDetail) error {
	var useCases []model.UseCase
	if err := s.db.WithContext(ctx).Model(&model.UseCase{}).
		Select("use_cases.*").
		Joins("JOIN dataset_use_cases ON dataset_use_cases.use_case_id = use_cases.id").
		Where("dataset_use_cases.dataset_id = ?", id).
		Order("use_cases.id ASC").
		Find(&useCases).Error; err != nil {
		return fmt.Errorf("failed to load use cases: %w", err)
	}

	for _, useCase := range useCases {
		detail.Stories = append(detail.Stories, useCase.ToStory())
	}
	return nil
}

type ownerRow struct {
	ID         string `gorm:"column:id"`
	Name       string `gorm:"column:name"`
	Email      string `gorm:"column:email"`
	Department string `gorm:"column:department"`
	Role       string `gorm:"column:role"`
}

func (s *Store) loadOwners(ctx context.Context, id string, detail *api.DatasetDetail) error {
	var rows []ownerRow
	// Ordered by the join table key so "first match" below is deterministic.
	if err := s.db.WithContext(ctx).Model(&model.DataOwner{}).
		Select("data_owners.id, data_owners.name, data_owners.email,"+
			" data_owners.department, dataset_owners.role").
		Joins("JOIN dataset_owners ON dataset_owners.owner_id = data_owners.id").
		Where("dataset_owners.dataset_id = ?", id).
		Order("dataset_owners.owner_id ASC").
		Scan(&rows).Error; err != nil {
		return fmt.Errorf("failed to load data owners: %w", err)
	}

	for _, row := range rows {
		owner := &api.DataOwner{
			ID:         row.ID,
			Name:       row.Name,
			Email:      row.Email,
			Department: row.Department,
		}

		// One displayed owner and one displayed steward; extra rows with the
		// same role are skipped but logged so duplicate associations stay
		// visible to operators.
		switch model.OwnerRole(row.Role) {
		case model.OwnerRoleOwner:
			if detail.DataOwner != nil {
				s.logger.Warnf("dataset %s has multiple owner-role rows, skipping %s", id, row.ID)
				continue
			}
			detail.DataOwner = owner
		case model.OwnerRoleSteward:
			if detail.DataSteward != nil {
				s.logger.Warnf("dataset %s has multiple steward-role rows, skipping %s", id, row.ID)
				continue
			}
			detail.DataSteward = owner
		}
	}
	return nil
}

type relatedDatasetRow struct {
	ID               string  `gorm:"column:related_dataset_id"`
	Name             string  `gorm:"column:name"`
	Description      string  `gorm:"column:description"`
	RelationshipType string  `gorm:"column:relationship_type"`
	SimilarityScore  float64 `gorm:"column:similarity_score"`
}

func (s *Store) loadRelatedDatasets(ctx context.Context, id string, detail *api.DatasetDetail) error {
	var rows []relatedDatasetRow
	if err := s.db.WithContext(ctx).Model(&model.RelatedDataset{}).
		Select("related_datasets.related_dataset_id, datasets.name, datasets.description,"+
			" related_datasets.relationship_type, related_datasets.similarity_score").
		Joins("JOIN datasets ON datasets.id = related_datasets.related_dataset_id").
		Where("related_datasets.dataset_id = ?", id).
		Order("related_datasets.related_dataset_id ASC").
		Scan(&rows).Error; err != nil {
		return fmt.Errorf("failed to load related datasets: %w", err)
	}

	for _, row := range rows {
		detail.RelatedDatasets = append(detail.RelatedDatasets, &api.RelatedDataset{
			ID:               row.ID,
			Name:             row.Name,
			Description:      row.Description,
			RelationshipType: row.RelationshipType,
			SimilarityScore:  row.SimilarityScore,
		})
	}
	return nil
}

func (s *Store) loadPreview(ctx context.Context, id string, detail *api.DatasetDetail) error {
	var preview model.DatasetPreview
	if err := s.db.WithContext(ctx).First(&preview, "dataset_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to load preview: %w", err)
	}

	detail.Preview = preview.ToPreview()
	return nil
}
