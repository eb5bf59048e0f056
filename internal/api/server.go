// Package api exposes the normalization pipeline over HTTP.
package api

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/insightdelivered/statement-normalizer/internal/metrics"
	"github.com/insightdelivered/statement-normalizer/internal/models"
	"github.com/insightdelivered/statement-normalizer/internal/pipeline"
	"github.com/insightdelivered/statement-normalizer/internal/profile"
	"github.com/insightdelivered/statement-normalizer/internal/writer"
)

// Server wires the HTTP routes to the pipeline.
type Server struct {
	app           *fiber.App
	log           zerolog.Logger
	metrics       *metrics.Metrics
	statementYear int
}

// NormalizeRequest is the POST /api/normalize payload. Tables use the
// extraction engine's wire format: grids of nullable string cells. Bank is
// an explicit bank identifier; when empty, StatementText is scored against
// the known bank profiles instead.
type NormalizeRequest struct {
	Bank          string        `json:"bank"`
	StatementText string        `json:"statementText"`
	StatementYear int           `json:"statementYear"`
	Tables        [][][]*string `json:"tables"`
}

// NormalizeResponse carries the run result plus the rendered CSV export.
type NormalizeResponse struct {
	pipeline.Result
	CSV string `json:"csv"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// New builds the HTTP server.
func New(log zerolog.Logger, m *metrics.Metrics, statementYear int) *Server {
	s := &Server{
		log:           log,
		metrics:       m,
		statementYear: statementYear,
	}
	app := fiber.New(fiber.Config{
		AppName:   "statement-normalizer",
		BodyLimit: 32 * 1024 * 1024,
	})
	app.Use(recover.New())

	app.Get("/api/health", s.handleHealth)
	app.Post("/api/normalize", s.handleNormalize)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))

	s.app = app
	return s
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App { return s.app }

// Listen blocks serving HTTP on the port.
func (s *Server) Listen(port int) error {
	return s.app.Listen(fmt.Sprintf(":%d", port))
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) handleNormalize(c *fiber.Ctx) error {
	var req NormalizeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "invalid request body"})
	}
	if len(req.Tables) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "no tables provided"})
	}

	p, err := s.resolveProfile(req)
	if err != nil {
		if errors.Is(err, profile.ErrUnsupportedBank) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(errorResponse{Error: err.Error()})
		}
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: err.Error()})
	}

	tables := make([]models.RawTable, 0, len(req.Tables))
	for _, grid := range req.Tables {
		t := models.RawTable{Rows: make([]models.RawRow, 0, len(grid))}
		for _, row := range grid {
			t.Rows = append(t.Rows, models.RawRow(row))
		}
		tables = append(tables, t)
	}

	year := s.statementYear
	if req.StatementYear != 0 {
		year = req.StatementYear
	}

	res, err := pipeline.New(p, year, s.log).Run(c.Context(), tables)
	if err != nil {
		s.log.Error().Err(err).Msg("pipeline run failed")
		return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{Error: "normalization failed"})
	}
	if s.metrics != nil {
		s.metrics.Observe(res)
	}

	csv, err := writer.String(res.Transactions)
	if err != nil {
		s.log.Error().Err(err).Msg("csv render failed")
		return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{Error: "csv render failed"})
	}
	return c.JSON(NormalizeResponse{Result: *res, CSV: csv})
}

func (s *Server) resolveProfile(req NormalizeRequest) (*profile.Profile, error) {
	if req.Bank != "" {
		return profile.ByID(models.BankID(req.Bank))
	}
	if req.StatementText != "" {
		return profile.Detect(req.StatementText)
	}
	return nil, errors.New("either bank or statementText is required")
}
