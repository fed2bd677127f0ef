package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"ci-computer-dashboard/models"
	"ci-computer-dashboard/service"
)

func TestMain(m *testing.M) {
	// google.golang.org/api starts the opencensus view worker at init
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))
}

type fakeAssetRepository struct {
	table *models.AssetTable
	err   error
}

func (f *fakeAssetRepository) LoadAssets(ctx context.Context) (*models.AssetTable, error) {
	return f.table, f.err
}

type fakeSnapshotService struct {
	variant string
	query   url.Values
}

func (f *fakeSnapshotService) CaptureDashboard(ctx context.Context, variant string, query url.Values) ([]byte, error) {
	f.variant, f.query = variant, query
	return []byte("\x89PNG fake"), nil
}

type fakeStatusModel struct {
	report *models.TrainingReport
	err    error
}

func (f *fakeStatusModel) Train(ctx context.Context) (*models.TrainingReport, error) {
	return f.report, f.err
}

func sampleAssets() *models.AssetTable {
	rec := models.NewAssetRecord
	return &models.AssetTable{
		Columns: []string{"name", "asset_tag", "department", "location", "u_build_machine_use", "u_build_use"},
		Records: []models.AssetRecord{
			rec(map[string]string{"name": "com8cc-0042", "asset_tag": "21H001", "department": "IT", "location": "Mayenne", "u_build_machine_use": "Office", "u_build_use": "Win11 22H2"}),
			rec(map[string]string{"name": "LTP-9981", "asset_tag": "22H002", "department": "HR", "location": "Laval", "u_build_machine_use": "Office", "u_build_use": "Win11 23H2"}),
			rec(map[string]string{"name": "terwd-7", "asset_tag": "21H003", "department": "IT", "location": "Mayenne", "u_build_machine_use": "Lab", "u_build_use": "Win10 21H2"}),
			rec(map[string]string{"name": "8cc-1", "asset_tag": "xx999", "department": "OPS", "location": "Laval"}),
		},
	}
}

func newTestDashboardController(repo *fakeAssetRepository) (*DashboardController, *fakeSnapshotService) {
	dashboard := service.NewDashboardService(repo)
	snapshots := &fakeSnapshotService{}
	return NewDashboardController(dashboard, service.NewChartService(dashboard), snapshots), snapshots
}

func TestParseMulti(t *testing.T) {
	q, err := url.ParseQuery("columns=&machine_use=Lab,Office&machine_use=Lab")
	require.NoError(t, err)

	assert.Nil(t, parseMulti(q, "missing"))
	assert.NotNil(t, parseMulti(q, "columns"))
	assert.Empty(t, parseMulti(q, "columns"))
	assert.Equal(t, []string{"Lab", "Office"}, parseMulti(q, "machine_use"))
}

func TestParseSelection(t *testing.T) {
	q, err := url.ParseQuery("columns=name&columns=asset_tag&page=3")
	require.NoError(t, err)

	sel := parseSelection(q)
	assert.Equal(t, []string{"name", "asset_tag"}, sel.Columns)
	assert.Nil(t, sel.MachineUses)
	assert.Equal(t, 3, sel.Page)

	assert.Equal(t, 1, parseSelection(url.Values{"page": {"x"}}).Page)
}

func TestDashboardPage(t *testing.T) {
	c, _ := newTestDashboardController(&fakeAssetRepository{table: sampleAssets()})

	tests := []struct {
		name       string
		variant    string
		target     string
		wantStatus int
		wantBody   []string
	}{
		{
			name:       "summary table",
			variant:    models.VariantTable,
			target:     "/tbl/",
			wantStatus: http.StatusOK,
			wantBody:   []string{"Asset Tag Count Summary", "21H", "com8cc-0042"},
		},
		{
			name:       "v4 defaults",
			variant:    models.VariantV4,
			target:     "/v4/",
			wantStatus: http.StatusOK,
			wantBody:   []string{"Desktop vs Laptop Count by Version", "/charts/version-bar?machine_use=Office"},
		},
		{
			name:       "explicit empty columns",
			variant:    models.VariantV2,
			target:     "/v2/?columns=",
			wantStatus: http.StatusOK,
			wantBody:   []string{"Data (4 rows)"},
		},
		{
			name:       "unknown column",
			variant:    models.VariantV2,
			target:     "/v2/?columns=serial",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown sub path",
			variant:    models.VariantV1,
			target:     "/v1/extra",
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c.Page(tt.variant)(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			for _, want := range tt.wantBody {
				assert.Contains(t, rec.Body.String(), want)
			}
		})
	}
}

func TestDashboardPageLoadFailure(t *testing.T) {
	c, _ := newTestDashboardController(&fakeAssetRepository{err: errors.New("file not found")})

	rec := httptest.NewRecorder()
	c.Page(models.VariantV1)(rec, httptest.NewRequest(http.MethodGet, "/v1/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestDashboardPageMethodNotAllowed(t *testing.T) {
	c, _ := newTestDashboardController(&fakeAssetRepository{table: sampleAssets()})

	rec := httptest.NewRecorder()
	c.Page(models.VariantV1)(rec, httptest.NewRequest(http.MethodPost, "/v1/", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestIndexRedirects(t *testing.T) {
	c, _ := newTestDashboardController(&fakeAssetRepository{table: sampleAssets()})

	rec := httptest.NewRecorder()
	c.Index(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/v4/", rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	c.Index(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestChart(t *testing.T) {
	c, _ := newTestDashboardController(&fakeAssetRepository{table: sampleAssets()})

	rec := httptest.NewRecorder()
	c.Chart(rec, httptest.NewRequest(http.MethodGet, "/charts/version-bar?machine_use=", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please select machine use types")

	rec = httptest.NewRecorder()
	c.Chart(rec, httptest.NewRequest(http.MethodGet, "/charts/radar", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSnapshot(t *testing.T) {
	c, snapshots := newTestDashboardController(&fakeAssetRepository{table: sampleAssets()})

	rec := httptest.NewRecorder()
	c.Snapshot(rec, httptest.NewRequest(http.MethodGet, "/snapshot/v3?machine_use=Lab", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "v3", snapshots.variant)
	assert.Equal(t, []string{"Lab"}, snapshots.query["machine_use"])

	rec = httptest.NewRecorder()
	c.Snapshot(rec, httptest.NewRequest(http.MethodGet, "/snapshot/v9", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSnapshotRejectsUnknownSize(t *testing.T) {
	c, snapshots := newTestDashboardController(&fakeAssetRepository{table: sampleAssets()})

	rec := httptest.NewRecorder()
	c.Snapshot(rec, httptest.NewRequest(http.MethodGet, "/snapshot/v1?size=poster", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, snapshots.variant)
}

func TestSummaryAPI(t *testing.T) {
	c, _ := newTestDashboardController(&fakeAssetRepository{table: sampleAssets()})

	rec := httptest.NewRecorder()
	c.Summary(rec, httptest.NewRequest(http.MethodGet, "/api/summary", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var sum models.AssetSummary
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&sum))
	assert.Equal(t, 4, sum.TotalRecords)
	assert.Equal(t, models.PrefixCount{Prefix: "21H", Count: 2}, sum.PrefixCounts[0])

	rec = httptest.NewRecorder()
	c.Summary(rec, httptest.NewRequest(http.MethodPost, "/api/summary", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestTableAPI(t *testing.T) {
	c, _ := newTestDashboardController(&fakeAssetRepository{table: sampleAssets()})

	rec := httptest.NewRecorder()
	c.Table(rec, httptest.NewRequest(http.MethodGet, "/api/table?columns=", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var table models.Table
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&table))
	assert.Empty(t, table.Columns)
	assert.Len(t, table.Rows, 4)

	rec = httptest.NewRecorder()
	c.Table(rec, httptest.NewRequest(http.MethodGet, "/api/table?columns=serial", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDevicesAndVersionsAPI(t *testing.T) {
	c, _ := newTestDashboardController(&fakeAssetRepository{table: sampleAssets()})

	rec := httptest.NewRecorder()
	c.Devices(rec, httptest.NewRequest(http.MethodGet, "/api/devices?machine_use=Lab", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var groups []models.DeviceCategoryCount
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&groups))
	assert.Equal(t, []models.DeviceCategoryCount{{DeviceType: models.DeviceDesktop, Category: "Lab", Count: 1}}, groups)

	rec = httptest.NewRecorder()
	c.Versions(rec, httptest.NewRequest(http.MethodGet, "/api/versions?machine_use=Office", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var versions []models.VersionDeviceCount
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&versions))
	assert.Len(t, versions, 2)

	rec = httptest.NewRecorder()
	c.AssetTags(rec, httptest.NewRequest(http.MethodGet, "/api/asset-tags", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var counts []models.ValueCount
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&counts))
	assert.Len(t, counts, 4)
}

func TestQRController(t *testing.T) {
	c := NewQRController(service.NewQRService())

	rec := httptest.NewRecorder()
	c.Page(rec, httptest.NewRequest(http.MethodGet, "/qrGen/?text=hello", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "data:image/png;base64,")
	assert.Contains(t, rec.Body.String(), "/qrGen/image?text=hello")

	rec = httptest.NewRecorder()
	c.Page(rec, httptest.NewRequest(http.MethodGet, "/qrGen/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "data:image/png")

	form := strings.NewReader(url.Values{"text": {"line one\nline two"}}.Encode())
	req := httptest.NewRequest(http.MethodPost, "/qrGen/", form)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = httptest.NewRecorder()
	c.Page(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "data:image/png;base64,")

	rec = httptest.NewRecorder()
	c.Image(rec, httptest.NewRequest(http.MethodGet, "/qrGen/image?text=hello", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))

	rec = httptest.NewRecorder()
	c.Image(rec, httptest.NewRequest(http.MethodGet, "/qrGen/image", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatusModelController(t *testing.T) {
	report := &models.TrainingReport{
		Features: []string{"location", "u_build_machine_use"},
		Target:   "install_status",
		Classes:  []string{"In Stock", "Installed"},
		Rows:     10, TrainRows: 8, TestRows: 2, Epochs: 20,
		TrainAccuracy: 0.875, TestAccuracy: 1,
	}
	c := NewStatusModelController(&fakeStatusModel{report: report})

	rec := httptest.NewRecorder()
	c.Page(rec, httptest.NewRequest(http.MethodGet, "/tflow/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "0.875")
	assert.Contains(t, rec.Body.String(), "In Stock, Installed")

	rec = httptest.NewRecorder()
	c.Report(rec, httptest.NewRequest(http.MethodGet, "/api/model", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	c = NewStatusModelController(&fakeStatusModel{err: service.ErrNotEnoughData})
	rec = httptest.NewRecorder()
	c.Page(rec, httptest.NewRequest(http.MethodGet, "/tflow/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "not enough labelled rows")

	rec = httptest.NewRecorder()
	c.Report(rec, httptest.NewRequest(http.MethodGet, "/api/model", nil))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
