package api

import (
	"errors"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"

	"dashboard/internal/engine"
	"dashboard/internal/models"
)

type Handler struct {
	mu    sync.RWMutex
	store *engine.RecordStore
}

// NewHandler builds a handler; pass nil to start serving before the dataset
// has loaded (endpoints answer 503 until SetStore is called).
func NewHandler(store *engine.RecordStore) *Handler {
	return &Handler{store: store}
}

// SetStore swaps in the loaded dataset, flipping the API from 503 to live.
func (h *Handler) SetStore(store *engine.RecordStore) {
	h.mu.Lock()
	h.store = store
	h.mu.Unlock()
}

func (h *Handler) getStore() *engine.RecordStore {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.store
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)
	api := e.Group("/api")
	api.GET("/meta", h.GetMeta)
	api.POST("/views/:id", h.GetView)
}

// --- HANDLERS ---

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"loaded": h.getStore() != nil,
	})
}

// GetMeta feeds the dashboard controls: year slider bounds, vehicle type
// options, and the available views and time series metrics.
func (h *Handler) GetMeta(c echo.Context) error {
	store := h.getStore()
	if store == nil {
		return loadingResponse(c)
	}
	minYear, maxYear := store.YearSpan()
	return c.JSON(http.StatusOK, models.Meta{
		MinYear:      minYear,
		MaxYear:      maxYear,
		VehicleTypes: store.VehicleTypes(),
		Views:        engine.ViewIDs(),
		Metrics:      engine.Metrics(),
	})
}

type viewRequestBody struct {
	models.FilterSelection
	Metric string `json:"metric"`
}

// GetView runs one dashboard interaction: filter, aggregate for the view in
// the path, return the derived table (or the empty-result signal).
func (h *Handler) GetView(c echo.Context) error {
	store := h.getStore()
	if store == nil {
		return loadingResponse(c)
	}

	var body viewRequestBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	result, err := engine.Dispatch(store, engine.ViewRequest{
		View:      c.Param("id"),
		Selection: body.FilterSelection,
		Metric:    body.Metric,
	})
	switch {
	case errors.Is(err, engine.ErrUnknownView):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, engine.ErrMissingColumn):
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	case err != nil:
		// Bad metric or broken filter expression: the request was wrong.
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, result)
}

func loadingResponse(c echo.Context) error {
	return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "dataset is still loading"})
}
