package contract

import "github.com/gofiber/fiber/v2"

type HTTPRequestParser interface {
	ParseQuery(ctx *fiber.Ctx, out interface{}) *Error
}
