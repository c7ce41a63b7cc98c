// Package api serves airfoil generation over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/samcharles93/naca456/internal/designation"
	"github.com/samcharles93/naca456/internal/engine"
	"github.com/samcharles93/naca456/internal/logger"
	"github.com/samcharles93/naca456/internal/namelist"
	"github.com/samcharles93/naca456/internal/ordinates"
)

const defaultListLimit = 20

// Generator is satisfied by *engine.Engine.
type Generator interface {
	Generate(ctx context.Context, p namelist.Params) (*engine.Result, error)
}

type Options struct {
	// RateLimit caps generate requests per second; zero disables the limit.
	RateLimit float64
	// Registry receives the server metrics and backs /metrics. A fresh
	// registry is used when nil.
	Registry *prometheus.Registry
	Logger   logger.Logger
}

type Server struct {
	gen      Generator
	store    *AirfoilStore
	limiter  *rate.Limiter
	registry *prometheus.Registry
	metrics  *metrics
	log      logger.Logger
	clock    func() time.Time
}

func NewServer(gen Generator, store *AirfoilStore, opts Options) *Server {
	if store == nil {
		store = NewAirfoilStore()
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}
	s := &Server{
		gen:      gen,
		store:    store,
		registry: opts.Registry,
		metrics:  newMetrics(opts.Registry, store),
		log:      logger.Component(opts.Logger, "api"),
		clock:    time.Now,
	}
	if opts.RateLimit > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), max(1, int(opts.RateLimit)))
	}
	return s
}

func (s *Server) Register(e *echo.Echo) {
	e.POST("/v1/airfoils", s.handleCreateAirfoil)
	e.GET("/v1/airfoils", s.handleListAirfoils)
	e.GET("/v1/airfoils/:id", s.handleGetAirfoil)
	e.GET("/v1/airfoils/:id/ordinates", s.handleOrdinates)
	e.GET("/v1/airfoils/:id/xfoil", s.handleXFOIL)
	e.DELETE("/v1/airfoils/:id", s.handleDeleteAirfoil)

	e.POST("/v1/namelists/validate", s.handleValidate)
	e.GET("/v1/fields", s.handleFields)

	e.GET("/healthz", s.handleHealth)
	e.GET("/metrics", s.handleMetrics)
}

func (s *Server) handleCreateAirfoil(c *echo.Context) error {
	if s.gen == nil {
		return writeError(c, http.StatusInternalServerError, "server_error", "engine not configured", "", "")
	}
	if s.limiter != nil && !s.limiter.Allow() {
		s.metrics.observe(resultRejected, 0)
		c.Response().Header().Set("Retry-After", "1")
		return writeError(c, http.StatusTooManyRequests, "rate_limit_error", "too many generate requests", "", "")
	}
	p, err := decodeNamelistBody(c)
	if err != nil {
		s.metrics.observe(resultInvalid, 0)
		return writeBadRequest(c, err)
	}

	start := s.clock()
	res, err := s.gen.Generate(c.Request().Context(), p)
	elapsed := s.clock().Sub(start)
	if err != nil {
		return s.writeGenerateError(c, err, elapsed)
	}
	s.metrics.observe(resultOK, elapsed)

	rec := s.store.Save(res, s.clock())
	s.log.Info("airfoil created", "id", rec.ID, "name", res.Name, "points", res.Airfoil.Len())
	return c.JSON(http.StatusCreated, airfoilResponse(rec))
}

func (s *Server) writeGenerateError(c *echo.Context, err error, elapsed time.Duration) error {
	var verr *namelist.ValidationError
	switch {
	case errors.As(err, &verr):
		s.metrics.observe(resultInvalid, elapsed)
		return writeValidationError(c, verr)
	case errors.Is(err, designation.ErrNoDesignation):
		s.metrics.observe(resultInvalid, elapsed)
		return writeError(c, http.StatusBadRequest, "invalid_request_error", err.Error(), "name", "")
	case errors.Is(err, engine.ErrTimeout):
		s.metrics.observe(resultTimeout, elapsed)
		return writeError(c, http.StatusGatewayTimeout, "timeout_error", err.Error(), "", "")
	case errors.Is(err, engine.ErrEngine):
		s.metrics.observe(resultEngineError, elapsed)
		return writeError(c, http.StatusBadGateway, "engine_error", err.Error(), "", "")
	default:
		s.metrics.observe(resultError, elapsed)
		s.log.Error("generate failed", "err", err)
		return writeError(c, http.StatusInternalServerError, "server_error", err.Error(), "", "")
	}
}

func (s *Server) handleListAirfoils(c *echo.Context) error {
	limit, err := queryInt(c, "limit", defaultListLimit)
	if err != nil {
		return writeBadRequest(c, err)
	}
	after := c.QueryParam("after")
	if after != "" {
		if _, ok := s.store.Get(after); !ok {
			return writeBadRequest(c, newInvalidRequest("after", "unknown airfoil id"))
		}
	}
	recs, more := s.store.List(after, limit)
	list := AirfoilList{Object: "list", Data: make([]AirfoilResponse, 0, len(recs)), HasMore: more}
	for _, rec := range recs {
		list.Data = append(list.Data, airfoilResponse(rec))
	}
	if len(recs) > 0 {
		list.FirstID = recs[0].ID
		list.LastID = recs[len(recs)-1].ID
	}
	return c.JSON(http.StatusOK, list)
}

func (s *Server) handleGetAirfoil(c *echo.Context) error {
	rec, ok := s.store.Get(c.Param("id"))
	if !ok {
		return writeNotFound(c, "airfoil not found")
	}
	return c.JSON(http.StatusOK, airfoilResponse(rec))
}

// handleOrdinates returns the unit-chord table, optionally rescaled with the
// chord, xorigin and yorigin query parameters.
func (s *Server) handleOrdinates(c *echo.Context) error {
	rec, ok := s.store.Get(c.Param("id"))
	if !ok {
		return writeNotFound(c, "airfoil not found")
	}
	chord, err := queryFloat(c, "chord", 1)
	if err != nil {
		return writeBadRequest(c, err)
	}
	if chord <= 0 {
		return writeBadRequest(c, newInvalidRequest("chord", "chord must be positive"))
	}
	x0, err := queryFloat(c, "xorigin", 0)
	if err != nil {
		return writeBadRequest(c, err)
	}
	y0, err := queryFloat(c, "yorigin", 0)
	if err != nil {
		return writeBadRequest(c, err)
	}

	a := rec.Result.Airfoil.Scale(chord, x0, y0)
	return c.JSON(http.StatusOK, OrdinatesResponse{
		ID:       rec.ID,
		Object:   "airfoil.ordinates",
		Name:     a.Name,
		Cambered: a.Cambered,
		X:        a.X,
		YUpper:   a.YUpper,
		YLower:   a.YLower,
	})
}

func (s *Server) handleXFOIL(c *echo.Context) error {
	rec, ok := s.store.Get(c.Param("id"))
	if !ok {
		return writeNotFound(c, "airfoil not found")
	}
	var sb strings.Builder
	if err := ordinates.WriteXFOIL(&sb, rec.Result.Airfoil); err != nil {
		return writeError(c, http.StatusInternalServerError, "server_error", err.Error(), "", "")
	}
	c.Response().Header().Set("Content-Disposition", `attachment; filename="`+rec.Result.Stem+`.dat"`)
	return writeText(c, http.StatusOK, "text/plain; charset=utf-8", sb.String())
}

func (s *Server) handleDeleteAirfoil(c *echo.Context) error {
	id := c.Param("id")
	if !s.store.Delete(id) {
		return writeNotFound(c, "airfoil not found")
	}
	return c.JSON(http.StatusOK, DeleteAirfoilResponse{ID: id, Object: "airfoil.deleted", Deleted: true})
}

// handleValidate checks a record without running the engine. Rejected
// fields are reported in the body with status 200.
func (s *Server) handleValidate(c *echo.Context) error {
	p, err := decodeNamelistBody(c)
	if err != nil {
		return writeBadRequest(c, err)
	}
	resp := ValidateResponse{
		Errors:  []namelist.FieldError{},
		Ignored: p.Normalize().Ignored(),
	}
	if resp.Ignored == nil {
		resp.Ignored = []string{}
	}

	prepared, err := engine.Prepare(p)
	var verr *namelist.ValidationError
	switch {
	case err == nil:
		resp.Valid = true
		resp.Name = prepared.Name
		resp.Namelist = namelist.Marshal(prepared)
	case errors.As(err, &verr):
		resp.Errors = verr.Fields
	default:
		resp.Errors = []namelist.FieldError{{Field: "name", Msg: err.Error()}}
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleFields(c *echo.Context) error {
	return c.JSON(http.StatusOK, FieldList{Object: "list", Data: namelist.Fields()})
}

func (s *Server) handleHealth(c *echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMetrics(c *echo.Context) error {
	promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}).ServeHTTP(c.Response(), c.Request())
	return nil
}

func airfoilResponse(rec *airfoilRecord) AirfoilResponse {
	res := rec.Result
	t, tx := res.Airfoil.MaxThickness()
	return AirfoilResponse{
		ID:            rec.ID,
		Object:        "airfoil",
		CreatedAt:     rec.CreatedAt.Unix(),
		Name:          res.Name,
		Stem:          res.Stem,
		Cambered:      res.Airfoil.Cambered,
		Points:        res.Airfoil.Len(),
		MaxThickness:  t,
		MaxThicknessX: tx,
		ElapsedMS:     res.Elapsed.Milliseconds(),
		Ignored:       res.Ignored,
		Params:        res.Params,
		Files:         res.Files,
	}
}
