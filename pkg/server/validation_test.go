package server

import (
	"testing"

	"github.com/tracebase/datamarket/pkg/api"
	"github.com/tracebase/datamarket/pkg/utils"
)

type validationScenario struct {
	name          string
	input         any
	shouldTrigger bool
}

func runScenarios(t *testing.T, scenarios []validationScenario) {
	t.Helper()

	validate := NewValidator()

	for _, scenario := range scenarios {
		t.Run(scenario.name, func(t *testing.T) {
			errs := validate.Struct(scenario.input)

			if scenario.shouldTrigger && errs == nil {
				t.Errorf("Expected validation error, got nil")
			}

			if !scenario.shouldTrigger && errs != nil {
				t.Errorf("Expected no validation error, got %v", errs)
			}
		})
	}
}

func TestSearchDatasetsValidation(t *testing.T) {
	scenarios := []validationScenario{
		{
			name:          "no parameters",
			input:         api.SearchDatasets{},
			shouldTrigger: false,
		},
		{
			name:          "first page",
			input:         api.SearchDatasets{Page: utils.PtrTo(1)},
			shouldTrigger: false,
		},
		{
			name:          "zero page",
			input:         api.SearchDatasets{Page: utils.PtrTo(0)},
			shouldTrigger: true,
		},
		{
			name:          "negative page",
			input:         api.SearchDatasets{Page: utils.PtrTo(-3)},
			shouldTrigger: true,
		},
		{
			name:          "zero limit",
			input:         api.SearchDatasets{Limit: utils.PtrTo(0)},
			shouldTrigger: true,
		},
		{
			name:          "maximum limit",
			input:         api.SearchDatasets{Limit: utils.PtrTo(100)},
			shouldTrigger: false,
		},
		{
			name:          "limit above maximum",
			input:         api.SearchDatasets{Limit: utils.PtrTo(101)},
			shouldTrigger: true,
		},
		{
			name: "filters without pagination",
			input: api.SearchDatasets{
				Search:       "revenue",
				BusinessLine: "Retail",
				DataDomain:   "Finance",
			},
			shouldTrigger: false,
		},
	}

	runScenarios(t, scenarios)
}
