package httpapi

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/botaynabessar/meteo-pro-2.000/internal/export"
	"github.com/botaynabessar/meteo-pro-2.000/internal/session"
	"github.com/botaynabessar/meteo-pro-2.000/internal/weather"
)

var validate = validator.New()

// Handler wires the weather service and the session store into HTTP routes.
type Handler struct {
	service      *weather.Service
	sessions     *session.Store
	defaultUnits weather.Units
}

// NewHandler creates a Handler.
func NewHandler(service *weather.Service, sessions *session.Store, defaultUnits weather.Units) *Handler {
	return &Handler{
		service:      service,
		sessions:     sessions,
		defaultUnits: defaultUnits,
	}
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather/report", h.getReport)
	v1.Get("/weather/compare", h.compareCities)
	v1.Get("/export/:format", h.exportReport)

	v1.Post("/sessions", h.createSession)
	v1.Get("/sessions/:id", h.getSession)
	v1.Put("/sessions/:id", h.updateSession)
}

// reportQuery holds the parameters shared by the report and export routes.
type reportQuery struct {
	City  string        `validate:"required"`
	Days  int           `validate:"min=1,max=16"`
	Units weather.Units `validate:"oneof=metric imperial"`
}

func (h *Handler) parseReportQuery(c *fiber.Ctx) (reportQuery, error) {
	q := reportQuery{
		City:  strings.TrimSpace(c.Query("city")),
		Days:  7,
		Units: h.defaultUnits,
	}

	if daysStr := c.Query("days"); daysStr != "" {
		days, err := strconv.Atoi(daysStr)
		if err != nil {
			return q, errors.New("days must be an integer")
		}
		q.Days = days
	}
	if u := c.Query("units"); u != "" {
		q.Units = weather.Units(u)
	}

	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}

func (h *Handler) getReport(c *fiber.Ctx) error {
	q, err := h.parseReportQuery(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	report, err := h.service.CityReport(c.Context(), q.City, q.Days, q.Units)
	if err != nil {
		return mapServiceError(err)
	}

	// A session id, when supplied, records the report as the session's
	// last result along with the chosen city and units.
	if id := c.Query("session"); id != "" {
		if _, err := h.sessions.Update(id, func(s *session.Session) {
			s.City = q.City
			s.Units = q.Units
			s.LastReport = &report
		}); err != nil {
			return fiber.NewError(fiber.StatusNotFound, "unknown session")
		}
	}

	return c.JSON(report)
}

// compareQuery holds the parameters of the comparison route.
type compareQuery struct {
	Cities []string      `validate:"required,min=1,max=4,dive,required"`
	Units  weather.Units `validate:"oneof=metric imperial"`
}

func (h *Handler) compareCities(c *fiber.Ctx) error {
	q := compareQuery{Units: h.defaultUnits}
	if u := c.Query("units"); u != "" {
		q.Units = weather.Units(u)
	}
	for _, city := range strings.Split(c.Query("cities"), ",") {
		if city = strings.TrimSpace(city); city != "" {
			q.Cities = append(q.Cities, city)
		}
	}

	if err := validate.Struct(q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	results := h.service.CompareCities(c.Context(), q.Cities, q.Units)

	resp := fiber.Map{"results": results}
	if best, ok := weather.BestLocation(results); ok {
		resp["best"] = best
	}
	return c.JSON(resp)
}

func (h *Handler) exportReport(c *fiber.Ctx) error {
	q, err := h.parseReportQuery(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	report, err := h.service.CityReport(c.Context(), q.City, q.Days, q.Units)
	if err != nil {
		return mapServiceError(err)
	}

	var (
		data        []byte
		name        string
		contentType string
	)
	switch c.Params("format") {
	case "csv":
		data, name, err = export.ToCSV(report)
		contentType = "text/csv; charset=utf-8"
	case "json":
		data, name, err = export.ToJSON(report)
		contentType = fiber.MIMEApplicationJSONCharsetUTF8
	case "pdf":
		data, name, err = export.ToPDF(report)
		contentType = "application/pdf"
	default:
		return fiber.NewError(fiber.StatusBadRequest, "unsupported export format; use csv, json or pdf")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate export")
	}

	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Send(data)
}

func (h *Handler) createSession(c *fiber.Ctx) error {
	sess := h.sessions.Create(h.defaultUnits)
	return c.Status(fiber.StatusCreated).JSON(sess)
}

func (h *Handler) getSession(c *fiber.Ctx) error {
	sess, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "unknown session")
	}
	return c.JSON(sess)
}

// sessionUpdate is the mutable subset of a session.
type sessionUpdate struct {
	City             *string        `json:"city"`
	Units            *weather.Units `json:"units"`
	ComparisonCities []string       `json:"comparison_cities"`
}

func (h *Handler) updateSession(c *fiber.Ctx) error {
	var upd sessionUpdate
	if err := c.BodyParser(&upd); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session body")
	}
	if upd.Units != nil && !upd.Units.Valid() {
		return fiber.NewError(fiber.StatusBadRequest, "units must be metric or imperial")
	}
	if len(upd.ComparisonCities) > weather.MaxCompareCities {
		return fiber.NewError(fiber.StatusBadRequest, "too many comparison cities")
	}

	sess, err := h.sessions.Update(c.Params("id"), func(s *session.Session) {
		if upd.City != nil {
			s.City = *upd.City
		}
		if upd.Units != nil {
			s.Units = *upd.Units
		}
		if upd.ComparisonCities != nil {
			s.ComparisonCities = upd.ComparisonCities
		}
	})
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "unknown session")
	}
	return c.JSON(sess)
}

// mapServiceError translates domain errors into HTTP status codes.
func mapServiceError(err error) error {
	var malformed *weather.MalformedPayloadError
	switch {
	case errors.Is(err, weather.ErrLocationNotFound):
		return fiber.NewError(fiber.StatusNotFound, "city not found")
	case errors.Is(err, weather.ErrUpstreamUnavailable):
		return fiber.NewError(fiber.StatusBadGateway, "weather provider unavailable")
	case errors.As(err, &malformed), errors.Is(err, weather.ErrInvalidPayload):
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "failed to build weather report")
	}
}
