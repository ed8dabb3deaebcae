package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/tracebase/datamarket/pkg/api"
	"github.com/tracebase/datamarket/pkg/config"
	"github.com/tracebase/datamarket/pkg/contract"
	"github.com/tracebase/datamarket/pkg/store"
	"github.com/tracebase/datamarket/pkg/store/sql"
)

// CatalogService sits between the HTTP layer and the dataset store. It owns
// pagination arithmetic and nothing else; filtering happens in the store,
// validation in the request parser.
type CatalogService struct {
	config config.Config
	Store  store.DatasetStore
}

func NewCatalogService(logger *logrus.Logger, cfg config.Config) (*CatalogService, error) {
	datasetStore, err := sql.NewStore(logger, cfg)
	if err != nil {
		return nil, fmt.Errorf("could not create dataset store: %w", err)
	}

	return &CatalogService{config: cfg, Store: datasetStore}, nil
}

// SearchDatasets implements the dataset listing: validated input in, one
// page of summaries plus pagination metadata out.
func (c CatalogService) SearchDatasets(
	ctx context.Context, input *api.SearchDatasets,
) (*api.SearchDatasetsResponse, *contract.Error) {
	page := input.PageOrDefault()
	limit := input.LimitOrDefault()

	query := store.SearchQuery{
		Search:       input.Search,
		BusinessLine: input.BusinessLine,
		DataDomain:   input.DataDomain,
		Limit:        limit,
		Offset:       (page - 1) * limit,
	}

	summaries, total, err := c.Store.SearchDatasets(ctx, query)
	if err != nil {
		return nil, err
	}

	return &api.SearchDatasetsResponse{
		Datasets: summaries,
		Pagination: api.Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: (total + int64(limit) - 1) / int64(limit),
		},
	}, nil
}

// GetDataset implements the detail view for one dataset.
func (c CatalogService) GetDataset(ctx context.Context, id string) (*api.DatasetDetail, *contract.Error) {
	return c.Store.GetDatasetDetail(ctx, id)
}

// CheckDataset implements the existence probe.
func (c CatalogService) CheckDataset(ctx context.Context, id string) (*api.DatasetExistence, *contract.Error) {
	return c.Store.GetDatasetExistence(ctx, id)
}
