package httpapi

import (
	"context"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-route-assistant/internal/common"
	"github.com/i474232898/weather-route-assistant/internal/route"
	"github.com/i474232898/weather-route-assistant/internal/weather"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report json names in validation messages.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// WeatherReporter builds the weather report for a city.
type WeatherReporter interface {
	Report(ctx context.Context, city string) (weather.Report, error)
}

// RoutePlanner resolves two locations and returns the driving routes between them.
type RoutePlanner interface {
	Plan(ctx context.Context, start, end string) (route.Plan, error)
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, reports WeatherReporter, routes RoutePlanner) {
	v1 := app.Group("/api/v1")

	weatherHandler := func(c *fiber.Ctx) error {
		var req weatherRequest
		if err := bind(c, &req); err != nil {
			return err
		}

		report, err := reports.Report(c.UserContext(), req.City)
		if err != nil {
			return err
		}
		return c.JSON(report)
	}
	v1.Get("/weather", weatherHandler)
	v1.Post("/weather", weatherHandler)

	routesHandler := func(c *fiber.Ctx) error {
		var req routeRequest
		if err := bind(c, &req); err != nil {
			return err
		}

		plan, err := routes.Plan(c.UserContext(), req.Start, req.End)
		if err != nil {
			return err
		}
		return c.JSON(plan)
	}
	v1.Get("/routes", routesHandler)
	v1.Post("/routes", routesHandler)
}

type weatherRequest struct {
	City string `json:"city" form:"city" query:"city" validate:"required"`
}

func (r *weatherRequest) trim() {
	r.City = strings.TrimSpace(r.City)
}

type routeRequest struct {
	Start string `json:"start" form:"start" query:"start" validate:"required"`
	End   string `json:"end" form:"end" query:"end" validate:"required"`
}

func (r *routeRequest) trim() {
	r.Start = strings.TrimSpace(r.Start)
	r.End = strings.TrimSpace(r.End)
}

type request interface {
	trim()
}

// bind reads GET requests from the query string and everything else from the
// form or JSON body, then validates the result.
func bind(c *fiber.Ctx, req request) error {
	var err error
	if c.Method() == fiber.MethodGet || len(c.Body()) == 0 {
		err = c.QueryParser(req)
	} else {
		err = c.BodyParser(req)
	}
	if err != nil {
		return common.InvalidInput("malformed request: %v", err)
	}

	req.trim()
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return common.InvalidInput("%s is required", verrs[0].Field())
		}
		return common.InvalidInput("invalid request: %v", err)
	}
	return nil
}
