package client

import (
	"net/http"

	"github.com/google/uuid"
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
	read.GET("/clients", h.ListClients)
	read.GET("/clients/:id", h.GetClient)

	write := api.Group("", auth.RequireRole("admin", "practitioner"))
	write.POST("/clients", h.CreateClient)
	write.PUT("/clients/:id", h.UpdateClient)
	write.DELETE("/clients/:id", h.ArchiveClient)
	write.POST("/clients/:id/archive", h.ArchiveClient)
	write.POST("/clients/resolve", h.ResolveIdentity)
}

func (h *Handler) CreateClient(c echo.Context) error {
	var rec Record
	if err := c.Bind(&rec); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	ctx := c.Request().Context()
	if err := h.svc.Create(ctx, db.TenantFromContext(ctx), &rec); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, rec)
}

func (h *Handler) GetClient(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	ctx := c.Request().Context()
	rec, err := h.svc.Get(ctx, db.TenantFromContext(ctx), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "client not found")
	}
	return c.JSON(http.StatusOK, rec)
}

// ListClients lists records, or searches by name when ?name= is present. The
// search path is the same one that bounds the resolver's candidate pool.
func (h *Handler) ListClients(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID := db.TenantFromContext(ctx)

	if name := c.QueryParam("name"); name != "" {
		pg := pagination.FromContext(c)
		recs, err := h.svc.SearchByName(ctx, tenantID, name, pg.Limit)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, pagination.NewResponse(recs, len(recs), pg.Limit, 0))
	}

	pg := pagination.FromContext(c)
	recs, total, err := h.svc.List(ctx, tenantID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(recs, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateClient(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var rec Record
	if err := c.Bind(&rec); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	rec.ID = id

	ctx := c.Request().Context()
	if err := h.svc.Update(ctx, db.TenantFromContext(ctx), &rec); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) ArchiveClient(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	ctx := c.Request().Context()
	if err := h.svc.Archive(ctx, db.TenantFromContext(ctx), id); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// ResolveIdentity scores an identity against the tenant's records without
// running a full analysis. Useful for previewing a match before an upload.
func (h *Handler) ResolveIdentity(c echo.Context) error {
	var identity Identity
	if err := c.Bind(&identity); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	ctx := c.Request().Context()
	decision, err := h.svc.ResolveIdentity(ctx, db.TenantFromContext(ctx), identity)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, decision)
}
