package httpapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/japan-weather/internal/entities"
	"github.com/i474232898/japan-weather/internal/scheduler"
	"github.com/i474232898/japan-weather/internal/store"
	"github.com/i474232898/japan-weather/internal/weather"
)

var validate = validator.New()

// Snapshots exposes the latest published snapshot.
type Snapshots interface {
	Latest() (*weather.Snapshot, error)
}

// Trigger queues an immediate refresh.
type Trigger interface {
	TriggerNow() error
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, snapshots Snapshots, board *entities.Board, trigger Trigger) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather/snapshot", func(c *fiber.Ctx) error {
		snapshot, err := snapshots.Latest()
		if err != nil {
			return readError(err)
		}
		return c.JSON(snapshot)
	})

	v1.Get("/weather", func(c *fiber.Ctx) error {
		view, err := board.WeatherView()
		if err != nil {
			return readError(err)
		}
		return c.JSON(view)
	})

	v1.Get("/weather/detailed", func(c *fiber.Ctx) error {
		view, err := board.DetailedView()
		if err != nil {
			return readError(err)
		}
		return c.JSON(view)
	})

	v1.Get("/weather/alerts", func(c *fiber.Ctx) error {
		view, err := board.AlertsView()
		if err != nil {
			return readError(err)
		}
		return c.JSON(view)
	})

	v1.Get("/weather/forecast/hourly", func(c *fiber.Ctx) error {
		q := hourlyQuery{Hours: weather.HourlyForecastLength}
		if err := bindQuery(c, &q); err != nil {
			return err
		}

		snapshot, err := snapshots.Latest()
		if err != nil {
			return readError(err)
		}
		return c.JSON(fiber.Map{
			"type":       "hourly",
			"lastUpdate": snapshot.LastUpdate,
			"forecast":   weather.HourlyForecast(snapshot.Hourly, q.Hours),
		})
	})

	v1.Get("/weather/forecast/daily", func(c *fiber.Ctx) error {
		q := dailyQuery{Days: weather.DailyForecastLength}
		if err := bindQuery(c, &q); err != nil {
			return err
		}

		snapshot, err := snapshots.Latest()
		if err != nil {
			return readError(err)
		}
		return c.JSON(fiber.Map{
			"type":       "daily",
			"lastUpdate": snapshot.LastUpdate,
			"forecast":   weather.DailyForecast(snapshot.Daily, q.Days),
		})
	})

	v1.Post("/weather/refresh", func(c *fiber.Ctx) error {
		if err := trigger.TriggerNow(); err != nil {
			if errors.Is(err, scheduler.ErrNotStarted) {
				return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to schedule refresh")
		}
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
			"status": "refresh scheduled",
		})
	})

	v1.Get("/sensors", func(c *fiber.Ctx) error {
		readings, err := board.Sensors()
		if err != nil {
			return readError(err)
		}
		return c.JSON(readings)
	})

	v1.Get("/sensors/:key", func(c *fiber.Ctx) error {
		reading, err := board.Sensor(c.Params("key"))
		if err != nil {
			if errors.Is(err, entities.ErrUnknownSensor) {
				return fiber.NewError(fiber.StatusNotFound, err.Error())
			}
			return readError(err)
		}
		return c.JSON(reading)
	})
}

// readError maps snapshot read failures to HTTP errors.
func readError(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fiber.NewError(fiber.StatusServiceUnavailable, "weather data not available yet")
	}
	return fiber.NewError(fiber.StatusInternalServerError, "failed to read weather data")
}

type hourlyQuery struct {
	Hours int `query:"hours" validate:"gte=1,lte=24"`
}

type dailyQuery struct {
	Days int `query:"days" validate:"gte=1,lte=7"`
}

func bindQuery(c *fiber.Ctx, out any) error {
	if err := c.QueryParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid query parameters")
	}
	if err := validate.Struct(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}
