package store

import (
	"context"

	"github.com/tracebase/datamarket/pkg/api"
	"github.com/tracebase/datamarket/pkg/contract"
)

// SearchQuery is the normalized filter/window input of a dataset search.
// Zero-valued string filters mean "not filtered"; Limit and Offset are the
// already-validated pagination window.
type SearchQuery struct {
	Search       string
	BusinessLine string
	DataDomain   string
	Limit        int
	Offset       int
}

type DatasetStore interface {
	// SearchDatasets returns one window of dataset summaries plus the total
	// number of rows matching the filters regardless of the window.
	SearchDatasets(ctx context.Context, query SearchQuery) ([]*api.DatasetSummary, int64, *contract.Error)

	// GetDatasetDetail hydrates one dataset together with all of its child
	// collections. A missing dataset id yields RESOURCE_DOES_NOT_EXIST.
	GetDatasetDetail(ctx context.Context, id string) (*api.DatasetDetail, *contract.Error)

	// GetDatasetExistence checks whether a dataset id resolves, without
	// hydrating any child collections.
	GetDatasetExistence(ctx context.Context, id string) (*api.DatasetExistence, *contract.Error)
}
