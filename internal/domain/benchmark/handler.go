package benchmark

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/labsense/labsense/internal/platform/auth"
	"github.com/labsense/labsense/internal/platform/db"
	"github.com/labsense/labsense/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	read := api.Group("", auth.RequireRole("admin", "practitioner", "viewer"))
	read.GET("/benchmarks", h.ListBenchmarks)
	read.GET("/benchmarks/:name", h.GetBenchmark)

	write := api.Group("", auth.RequireRole("admin", "practitioner"))
	write.POST("/benchmarks", h.SaveOverride)
	write.PUT("/benchmarks/:name", h.SaveOverride)
	write.DELETE("/benchmarks/:name", h.DeactivateBenchmark)
}

// ListBenchmarks returns the tenant's stored definitions. With ?merged=true it
// instead returns the effective taxonomy the matcher would see: the default
// catalog with the tenant's overrides applied.
func (h *Handler) ListBenchmarks(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID := db.TenantFromContext(ctx)

	if c.QueryParam("merged") == "true" {
		snap, err := h.svc.SnapshotFor(ctx, tenantID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		defs := snap.Definitions()
		return c.JSON(http.StatusOK, pagination.NewResponse(defs, len(defs), len(defs), 0))
	}

	pg := pagination.FromContext(c)
	defs, total, err := h.svc.List(ctx, tenantID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(defs, total, pg.Limit, pg.Offset))
}

func (h *Handler) GetBenchmark(c echo.Context) error {
	ctx := c.Request().Context()
	def, err := h.svc.Get(ctx, db.TenantFromContext(ctx), c.Param("name"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "benchmark not found")
	}
	return c.JSON(http.StatusOK, def)
}

func (h *Handler) SaveOverride(c echo.Context) error {
	var def Definition
	if err := c.Bind(&def); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if name := c.Param("name"); name != "" {
		def.CanonicalName = name
	}

	ctx := c.Request().Context()
	if err := h.svc.SaveOverride(ctx, db.TenantFromContext(ctx), &def); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, def)
}

func (h *Handler) DeactivateBenchmark(c echo.Context) error {
	ctx := c.Request().Context()
	if err := h.svc.Deactivate(ctx, db.TenantFromContext(ctx), c.Param("name")); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
