package server

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"foodshare-backend/internal/config"
	"foodshare-backend/internal/forecast"
	"foodshare-backend/internal/kitchen"
	"foodshare-backend/internal/models"
	"foodshare-backend/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const testReloadToken = "operator-reload-key"

type harness struct {
	t        *testing.T
	app      *fiber.App
	csvPath  string
	modelDir string
}

func fixedClock(t *testing.T, at time.Time) {
	prevNow, prevLoc := models.Now, models.Location
	models.Now = func() time.Time { return at }
	models.Location = time.UTC
	t.Cleanup(func() {
		models.Now, models.Location = prevNow, prevLoc
	})
}

func newHarness(t *testing.T, intercept float64) *harness {
	t.Helper()
	testutil.NewDB(t)
	fixedClock(t, time.Date(2025, 3, 5, 20, 30, 0, 0, time.UTC))

	set := forecast.ModelSet{}
	for _, d := range models.Dishes {
		set[d] = &forecast.Model{Dish: d, Features: forecast.FeatureNames, Intercept: intercept, Coefficients: make([]float64, 4), RunID: "test-run"}
	}
	dir := t.TempDir()
	_, err := forecast.SaveModels(dir, set)
	require.NoError(t, err)
	predictor, err := forecast.NewPredictor(dir)
	require.NoError(t, err)

	cfg := &config.Config{
		JWTSecret:        strings.Repeat("k", 32),
		CORSOrigins:      "http://localhost:5173",
		ModelReloadToken: testReloadToken,
	}
	csvPath := filepath.Join(t.TempDir(), "ml_data.csv")

	return &harness{
		t:        t,
		csvPath:  csvPath,
		modelDir: dir,
		app: New(cfg, Options{
			Predictor:   predictor,
			TrainingCSV: kitchen.NewTrainingCSV(csvPath),
		}),
	}
}

func (h *harness) do(method, path, token string, body any) (*http.Response, map[string]any) {
	h.t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(h.t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := h.app.Test(req, -1)
	require.NoError(h.t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(h.t, err)
	out := map[string]any{}
	_ = json.Unmarshal(raw, &out)
	return resp, out
}

func (h *harness) reload(token, key string) *http.Response {
	h.t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/predict/reload", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set(forecast.ReloadTokenHeader, key)
	resp, err := h.app.Test(req, -1)
	require.NoError(h.t, err)
	return resp
}

func (h *harness) register(username string) string {
	h.t.Helper()
	resp, body := h.do(http.MethodPost, "/register", "", map[string]string{
		"username": username, "password1": "tandoor-99", "password2": "tandoor-99",
	})
	require.Equal(h.t, fiber.StatusCreated, resp.StatusCode, body)
	return body["token"].(string)
}

func TestEndToEndDayFlow(t *testing.T) {
	h := newHarness(t, 3)
	token := h.register("dhaba")

	resp, body := h.do(http.MethodPost, "/add-food", token, map[string]string{"dal_qty": "10 plates"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)

	// Gün kapanmadan ana sayfada görünmez
	_, body = h.do(http.MethodGet, "/", "", nil)
	assert.Empty(t, body["donations"])

	resp, body = h.do(http.MethodPost, "/close_day", token, map[string]string{"sold_dal": "6 plates"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)
	closed := body["closed"].(map[string]any)
	assert.EqualValues(t, 4, closed["dal_waste"])

	_, body = h.do(http.MethodGet, "/", "", nil)
	donations := body["donations"].([]any)
	require.Len(t, donations, 1)
	listing := donations[0].(map[string]any)
	assert.Equal(t, "dhaba", listing["restaurant"])
	assert.EqualValues(t, 4, listing["dal"])

	// model çıktısı 3, floor(6*1.1)=6 kazanır; diğer yemeklerde 3
	resp, body = h.do(http.MethodPost, "/predict", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)
	assert.EqualValues(t, 6, body["dal_pred"])
	assert.EqualValues(t, 3, body["chawal_pred"])
	assert.EqualValues(t, 3, body["sabji_pred"])

	f, err := os.Open(h.csvPath)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"2", "10", "0", "0", "6", "0", "0", "4", "0", "0"}, records[1])

	_, body = h.do(http.MethodGet, "/dashboard", token, nil)
	assert.Equal(t, "2025-03-05", body["date"])
	assert.NotNil(t, body["planned"])
	assert.NotNil(t, body["closed"])

	resp, err = h.app.Test(func() *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/audit-logs", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		return req
	}(), -1)
	require.NoError(t, err)
	var logs []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&logs))
	assert.Len(t, logs, 2)
}

func TestPredictWithoutTodayEntriesIsEmpty(t *testing.T) {
	h := newHarness(t, 3)
	token := h.register("dhaba")

	resp, body := h.do(http.MethodPost, "/predict", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Nil(t, body["dal_pred"])
	assert.Nil(t, body["chawal_pred"])
	assert.Nil(t, body["sabji_pred"])
}

func TestProtectedRoutesRequireLogin(t *testing.T) {
	h := newHarness(t, 3)

	for _, path := range []string{"/dashboard", "/add-food", "/close_day", "/predict"} {
		resp, _ := h.do(http.MethodGet, path, "", nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, path)
	}
	resp, _ := h.do(http.MethodPost, "/delete-all-requests", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequestWorkflowOverHTTP(t *testing.T) {
	h := newHarness(t, 3)
	owner := h.register("dhaba")
	other := h.register("other")

	resp, body := h.do(http.MethodPost, "/request-food/dhaba", "", map[string]string{"name": "Asha", "phone": "9876543210"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, body)
	req := body["request"].(map[string]any)
	assert.Equal(t, "pending", req["status"])
	id := int(req["id"].(float64))

	resp, _ = h.do(http.MethodPost, "/request-food/nobody", "", map[string]string{"name": "Asha", "phone": "1"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = h.do(http.MethodPost, fmt.Sprintf("/request/reject/%d", id), other, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	_, body = h.do(http.MethodGet, fmt.Sprintf("/request-status/%d", id), "", nil)
	assert.Equal(t, "pending", body["status"])
	assert.Nil(t, body["requester_phone"])

	resp, body = h.do(http.MethodPost, fmt.Sprintf("/request/accept/%d", id), owner, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)
	assert.Equal(t, "accepted", body["status"])

	resp, _ = h.do(http.MethodPost, fmt.Sprintf("/request/reject/%d", id), owner, nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	_, body = h.do(http.MethodGet, fmt.Sprintf("/request-status/%d", id), "", nil)
	assert.Equal(t, "accepted", body["status"])

	resp, _ = h.do(http.MethodPost, fmt.Sprintf("/delete-request/%d", id), other, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = h.do(http.MethodPost, fmt.Sprintf("/delete-request/%d", id), owner, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = h.do(http.MethodGet, fmt.Sprintf("/request-status/%d", id), "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, body = h.do(http.MethodPost, "/delete-all-requests", owner, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 0, body["deleted"])
}

func TestReloadModels(t *testing.T) {
	h := newHarness(t, 3)
	token := h.register("dhaba")

	set := forecast.ModelSet{}
	for _, d := range models.Dishes {
		set[d] = &forecast.Model{Dish: d, Features: forecast.FeatureNames, Intercept: 20, Coefficients: make([]float64, 4), RunID: "second-run"}
	}
	_, err := forecast.SaveModels(h.modelDir, set)
	require.NoError(t, err)

	// Restoran sahibi oturumu tek başına yetmez
	resp, body := h.do(http.MethodPost, "/predict/reload", token, nil)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode, body)

	resp = h.reload(token, "wrong-key")
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = h.reload(token, testReloadToken)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "second-run", body["run_id"])

	h.do(http.MethodPost, "/add-food", token, map[string]string{"dal_qty": "10"})
	h.do(http.MethodPost, "/close_day", token, map[string]string{"sold_dal": "6"})
	_, body = h.do(http.MethodPost, "/predict", token, nil)
	assert.EqualValues(t, 20, body["dal_pred"])
}

func TestReloadDisabledWithoutOperatorKey(t *testing.T) {
	h := newHarness(t, 3)
	token := h.register("dhaba")

	cfg := &config.Config{JWTSecret: strings.Repeat("k", 32), CORSOrigins: "http://localhost:5173"}
	predictor, err := forecast.NewPredictor(h.modelDir)
	require.NoError(t, err)
	h.app = New(cfg, Options{Predictor: predictor})

	resp := h.reload(token, "")
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestWasteReportDownload(t *testing.T) {
	h := newHarness(t, 3)
	token := h.register("dhaba")

	h.do(http.MethodPost, "/add-food", token, map[string]string{"dal_qty": "10", "chawal_qty": "4"})
	h.do(http.MethodPost, "/close_day", token, map[string]string{"sold_dal": "6", "sold_chawal": "1"})

	req := httptest.NewRequest(http.MethodGet, "/dashboard/waste-report.xlsx?date_from=2025-03-01&date_to=2025-03-05", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	f, err := excelize.OpenReader(resp.Body)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "7", rows[2][11]) // 4 dal + 3 chawal

	resp, _ = h.do(http.MethodGet, "/dashboard/waste-report.xlsx?date_from=2025-03-05&date_to=2025-03-01", token, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestWasteChartOverHTTP(t *testing.T) {
	h := newHarness(t, 3)
	token := h.register("dhaba")

	h.do(http.MethodPost, "/add-food", token, map[string]string{"dal_qty": "10"})
	h.do(http.MethodPost, "/close_day", token, map[string]string{"sold_dal": "6"})

	resp, body := h.do(http.MethodGet, "/dashboard/waste-chart?period=daily&count=3", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)
	points := body["points"].([]any)
	require.Len(t, points, 3)
	assert.EqualValues(t, 4, points[2].(map[string]any)["dal"])

	resp, _ = h.do(http.MethodGet, "/dashboard/waste-chart?count=-1", token, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
