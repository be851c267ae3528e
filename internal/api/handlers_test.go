package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashboard/internal/engine"
	"dashboard/internal/models"
)

func newTestServer(t *testing.T, store *engine.RecordStore) (*echo.Echo, *Handler) {
	t.Helper()
	e := echo.New()
	h := NewHandler(store)
	h.RegisterRoutes(e)
	return e, h
}

func testStore(t *testing.T) *engine.RecordStore {
	t.Helper()
	csvContent := "Year,Month,Vehicle_Type,Recession,Automobile_Sales,Advertising_Expenditure,Unemployment_Rate\n" +
		"2019,3,Car,0,100,500,3.5\n" +
		"2019,3,Truck,0,50,250,3.5\n" +
		"2020,4,Car,1,20,80,8.0\n"
	records, cols, err := engine.ParseRecords([]byte(csvContent))
	require.NoError(t, err)
	return engine.NewRecordStore(records, cols)
}

func postView(e *echo.Echo, view, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/views/"+view, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

const fullSelection = `{
	"recession_values": [0, 1],
	"vehicle_types": ["Car", "Truck"],
	"year_range": [2019, 2020]
}`

func TestEndpointsReturn503WhileLoading(t *testing.T) {
	e, _ := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/meta", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = postView(e, engine.ViewTimeSeries, fullSelection)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestSetStoreFlipsAPILive(t *testing.T) {
	e, h := newTestServer(t, nil)
	h.SetStore(testStore(t))

	req := httptest.NewRequest(http.MethodGet, "/api/meta", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var meta models.Meta
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &meta))
	assert.Equal(t, 2019, meta.MinYear)
	assert.Equal(t, 2020, meta.MaxYear)
	assert.Equal(t, []string{"Car", "Truck"}, meta.VehicleTypes)
	assert.Len(t, meta.Views, 5)
}

func TestGetViewTimeSeries(t *testing.T) {
	e, _ := newTestServer(t, testStore(t))

	rec := postView(e, engine.ViewTimeSeries, fullSelection)
	require.Equal(t, http.StatusOK, rec.Code)

	var result struct {
		View string `json:"view"`
		Rows []models.TimeSeriesRow
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, engine.ViewTimeSeries, result.View)
	require.Len(t, result.Rows, 3)
	assert.Equal(t, 2019, result.Rows[0].Year)
	assert.Equal(t, "Car", result.Rows[0].VehicleType)
}

func TestGetViewEmptyResult(t *testing.T) {
	e, _ := newTestServer(t, testStore(t))

	body := `{"recession_values": [0, 1], "vehicle_types": ["Car"], "year_range": [1990, 1995]}`
	rec := postView(e, engine.ViewAdvertisingPie, body)
	require.Equal(t, http.StatusOK, rec.Code)

	var result models.ViewResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.Empty)
	assert.Equal(t, "no data for recession period with current filters", result.Reason)
}

func TestGetViewUnknown(t *testing.T) {
	e, _ := newTestServer(t, testStore(t))

	rec := postView(e, "tab-does-not-exist", fullSelection)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetViewMissingColumn(t *testing.T) {
	records, cols, err := engine.ParseRecords([]byte("Year,Vehicle_Type,Recession\n2019,Car,0\n"))
	require.NoError(t, err)
	e, _ := newTestServer(t, engine.NewRecordStore(records, cols))

	body := `{"recession_values": [0, 1], "vehicle_types": ["Car"], "year_range": [2019, 2019]}`
	rec := postView(e, engine.ViewSeasonality, body)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestGetViewBadExpression(t *testing.T) {
	e, _ := newTestServer(t, testStore(t))

	body := `{"recession_values": [0, 1], "vehicle_types": ["Car"], "year_range": [2019, 2020], "expression": "((("}`
	rec := postView(e, engine.ViewTimeSeries, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthz(t *testing.T) {
	e, _ := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var status map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, false, status["loaded"])
}
