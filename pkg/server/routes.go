package server

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tracebase/datamarket/pkg/api"
	"github.com/tracebase/datamarket/pkg/contract"
	"github.com/tracebase/datamarket/pkg/service"
)

func registerCatalogRoutes(
	catalogService *service.CatalogService,
	parser contract.HTTPRequestParser,
	app *fiber.App,
) {
	app.Get("/datasets", func(ctx *fiber.Ctx) error {
		input := &api.SearchDatasets{}
		if err := parser.ParseQuery(ctx, input); err != nil {
			return err
		}

		response, err := catalogService.SearchDatasets(ctx.UserContext(), input)
		if err != nil {
			return err
		}
		return ctx.JSON(response)
	})

	app.Get("/datasets/:id", func(ctx *fiber.Ctx) error {
		detail, err := catalogService.GetDataset(ctx.UserContext(), ctx.Params("id"))
		if err != nil {
			return err
		}
		return ctx.JSON(detail)
	})

	app.Get("/datasets/:id/exists", func(ctx *fiber.Ctx) error {
		existence, err := catalogService.CheckDataset(ctx.UserContext(), ctx.Params("id"))
		if err != nil {
			return err
		}
		return ctx.JSON(existence)
	})
}
