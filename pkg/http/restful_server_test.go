package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"liyu1981.xyz/trailer-fleet-service/pkg/fleet/mocks"
	_ "liyu1981.xyz/trailer-fleet-service/pkg/testing"

	"liyu1981.xyz/trailer-fleet-service/pkg/clients"
	"liyu1981.xyz/trailer-fleet-service/pkg/common"
	"liyu1981.xyz/trailer-fleet-service/pkg/db"
	"liyu1981.xyz/trailer-fleet-service/pkg/fleet"
	"liyu1981.xyz/trailer-fleet-service/pkg/models"
)

func setupTestServerWithLimiter(t *testing.T, limiter *fleet.RateLimiterStore) *RestfulServer {
	dbInstance, err := db.Open(db.UseIsolatedMemorySqliteDialector())
	require.NoError(t, err)

	fleetCore := fleet.New(fleet.Options{
		Store:    dbInstance,
		Location: time.UTC,
	})

	rs := &RestfulServer{
		Server:           gin.Default(),
		Fleet:            fleetCore,
		RateLimiterStore: limiter,
	}

	rs.Setup()

	return rs
}

func setupTestServer(t *testing.T) *RestfulServer {
	// default we use no limiter
	return setupTestServerWithLimiter(t, nil)
}

// pollUnit runs one solar cycle that reports a single unit.
func pollUnit(t *testing.T, rs *RestfulServer, unitID int64, name string) {
	ctrl := gomock.NewController(t)
	solar := mocks.NewMockSolarFetcher(ctrl)
	solar.EXPECT().ListSites(gomock.Any()).Return([]clients.Site{{ID: unitID, Name: name}}, nil)
	solar.EXPECT().Diagnostics(gomock.Any(), unitID).Return([]clients.DiagnosticRecord{
		{Code: "bs", RawValue: 64.0, Device: "Battery Monitor"},
		{Code: "YT", RawValue: 1.5},
	}, nil)

	rs.Fleet.Solar = solar
	_, err := rs.Fleet.PollSolar(context.Background())
	require.NoError(t, err)
}

func doJSON(rs *RestfulServer, method, target string, body any) *httptest.ResponseRecorder {
	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, target, nil)
	} else {
		data, _ := json.Marshal(body)
		req = httptest.NewRequest(method, target, bytes.NewReader(data))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	rs.Server.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	rs := setupTestServer(t)

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()

	rs.Server.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestUnitsSnapshotAndLedger(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer(t)
	pollUnit(t, rs, 501, "Trailer 501")

	w := doJSON(rs, http.MethodGet, "/units", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var units []fleet.UnitView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &units))
	require.Len(t, units, 1)
	assert.Equal(t, "Trailer 501", units[0].Name)
	require.NotNil(t, units[0].Snapshot)

	w = doJSON(rs, http.MethodGet, "/units/501/snapshot", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var snap models.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	require.NotNil(t, snap.BatterySoc)
	assert.Equal(t, 64.0, *snap.BatterySoc)

	w = doJSON(rs, http.MethodGet, "/units/501/ledger", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var days []models.LedgerDay
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &days))
	require.Len(t, days, 1)
	require.NotNil(t, days[0].YieldWh)
	assert.Equal(t, 1500.0, *days[0].YieldWh)
}

func TestUnitEndpoints_EdgeCases(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer(t)

	{
		// unit ids are integers
		w := doJSON(rs, http.MethodGet, "/units/abc/snapshot", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}

	{
		w := doJSON(rs, http.MethodGet, "/units/501/snapshot", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	}

	{
		w := doJSON(rs, http.MethodGet, "/units/501/ledger", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	}

	{
		w := doJSON(rs, http.MethodGet, "/units/501/score", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	}
}

func TestGetScore(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer(t)
	pollUnit(t, rs, 501, "Trailer 501")

	w := doJSON(rs, http.MethodGet, "/units/501/score", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var report models.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, int64(501), report.UnitID)
	assert.Equal(t, models.SunSourceDefault, report.PeakSunSource)
	require.NotNil(t, report.TodayYieldWh)
	assert.Equal(t, 1500.0, *report.TodayYieldWh)

	w = doJSON(rs, http.MethodGet, "/intelligence", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var reports []models.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reports))
	assert.Len(t, reports, 1)
}

func TestGetAlerts(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer(t)

	{
		w := doJSON(rs, http.MethodGet, "/alerts", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	}

	{
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		mockIAlert := mocks.NewMockIAlert(ctrl)
		rs.Fleet.Alert = mockIAlert
		mockIAlert.EXPECT().
			ComputeAlerts().
			Return([]models.DeficitAlert{{UnitID: 501, StreakDays: 3, Severity: models.SeverityWarning}}).
			Times(1)

		w := doJSON(rs, http.MethodGet, "/alerts", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var alerts []models.DeficitAlert
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &alerts))
		require.Len(t, alerts, 1)
		assert.Equal(t, models.SeverityWarning, alerts[0].Severity)
	}
}

func TestPinAndUnpinLocation(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer(t)

	yard := models.Location{Name: "Yard"}
	require.NoError(t, rs.Fleet.Store.CreateLocation(context.Background(), &yard))

	w := doJSON(rs, http.MethodPut, "/units/501/location", PinRequest{LocationID: int(yard.ID)})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(rs, http.MethodGet, "/locations", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var locations []models.LocationMembers
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &locations))
	require.Len(t, locations, 1)
	assert.Equal(t, []int64{501}, locations[0].UnitIDs)
	assert.Equal(t, []int64{501}, locations[0].PinnedUnitIDs)

	w = doJSON(rs, http.MethodDelete, "/units/501/location", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(rs, http.MethodGet, "/locations", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &locations))
	assert.Empty(t, locations[0].PinnedUnitIDs)
}

func TestPinLocation_EdgeCases(t *testing.T) {
	common.SetTestLoggerNop()

	{
		rs := setupTestServer(t)
		// empty payload should be rejected
		req := httptest.NewRequest(http.MethodPut, "/units/501/location", bytes.NewReader([]byte("{}")))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		rs.Server.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}

	{
		rs := setupTestServer(t)
		w := doJSON(rs, http.MethodPut, "/units/501/location", PinRequest{LocationID: 42})
		assert.Equal(t, http.StatusNotFound, w.Code)
	}

	{
		rs := setupTestServer(t)
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		mockICluster := mocks.NewMockICluster(ctrl)
		rs.Fleet.Cluster = mockICluster
		mockICluster.EXPECT().
			Pin(gomock.Any(), gomock.Eq(int64(501)), gomock.Eq(uint(7))).
			Return(errors.New("just causing error")).
			Times(1)

		w := doJSON(rs, http.MethodPut, "/units/501/location", PinRequest{LocationID: 7})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	}
}

func TestPostClusters(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockICluster := mocks.NewMockICluster(ctrl)
	rs.Fleet.Cluster = mockICluster

	result := models.ClusterResult{Locations: []models.LocationCluster{}, Created: 1, TotalAssigned: 2}
	mockICluster.EXPECT().Cluster(gomock.Any(), 250.0).Return(result, nil).Times(1)
	mockICluster.EXPECT().Cluster(gomock.Any(), 0.0).Return(result, nil).Times(1)

	{
		w := doJSON(rs, http.MethodPost, "/clusters", ClusterRequest{Threshold: 250})
		require.Equal(t, http.StatusOK, w.Code)
		var got models.ClusterResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, result, got)
	}

	{
		// no body falls back to the configured threshold
		w := doJSON(rs, http.MethodPost, "/clusters", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	{
		w := doJSON(rs, http.MethodPost, "/clusters", ClusterRequest{Threshold: 5})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}

	{
		w := doJSON(rs, http.MethodPost, "/clusters", ClusterRequest{Threshold: 6000})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
}

func TestPostClusters_StoreError(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockICluster := mocks.NewMockICluster(ctrl)
	rs.Fleet.Cluster = mockICluster
	mockICluster.EXPECT().
		Cluster(gomock.Any(), gomock.Any()).
		Return(models.ClusterResult{}, errors.New("just causing error")).
		Times(1)

	w := doJSON(rs, http.MethodPost, "/clusters", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRouterLinks(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer(t)
	pollUnit(t, rs, 501, "Trailer 501")

	w := doJSON(rs, http.MethodPost, "/routers/11/link", LinkRequest{UnitID: 501, Name: "Router A"})
	require.Equal(t, http.StatusOK, w.Code)
	var resolution models.Resolution
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resolution))
	assert.Equal(t, models.Resolution{UnitID: 501, DisplayName: "Trailer 501"}, resolution)

	w = doJSON(rs, http.MethodGet, "/routers/bindings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var bindings []models.RouterBinding
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bindings))
	require.Len(t, bindings, 1)
	assert.Equal(t, int64(11), bindings[0].RouterID)
	assert.Equal(t, "Router A", bindings[0].RouterName)

	w = doJSON(rs, http.MethodDelete, "/routers/11/link", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(rs, http.MethodDelete, "/routers/11/link", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouterLinks_EdgeCases(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer(t)

	{
		w := doJSON(rs, http.MethodPost, "/routers/x/link", LinkRequest{UnitID: 501})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}

	{
		// empty payload should be rejected
		req := httptest.NewRequest(http.MethodPost, "/routers/11/link", bytes.NewReader([]byte("{}")))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		rs.Server.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}

	assert.Empty(t, rs.Fleet.Identity.Bindings())
}

func TestSnapshotWithLimiter(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServerWithLimiter(t, fleet.NewRateLimiterStore(2, 2)) // 2 req/sec, burst 2
	pollUnit(t, rs, 501, "Trailer 501")

	// Simulate 3 requests in quick succession, only 2 should be allowed
	for i := range 3 {
		w := doJSON(rs, http.MethodGet, "/units/501/snapshot", nil)
		if i < 2 {
			require.Equal(t, http.StatusOK, w.Code, "request %d should be allowed", i+1)
		} else {
			require.Equal(t, http.StatusTooManyRequests, w.Code, "request %d should be rate limited", i+1)
		}
	}

	// another unit has its own limiter
	w := doJSON(rs, http.MethodGet, "/units/502/snapshot", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(rs, http.MethodPost, "/units/501/limiter", LimiterRequest{Rate: 2, Burst: 2})
	require.Equal(t, http.StatusOK, w.Code, "limiter request should be allowed")

	w = doJSON(rs, http.MethodGet, "/units/501/snapshot", nil)
	require.Equal(t, http.StatusOK, w.Code, "request after limiter reset should be allowed")
}

func TestPostLimiter_EdgeCases(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServerWithLimiter(t, fleet.NewRateLimiterStore(2, 2))

	// empty payload should be rejected
	req := httptest.NewRequest(http.MethodPost, "/units/501/limiter", bytes.NewReader([]byte("{}")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	rs.Server.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// negative values are rejected
	w = doJSON(rs, http.MethodPost, "/units/501/limiter", LimiterRequest{Rate: -1, Burst: 2})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = doJSON(rs, http.MethodPost, "/units/501/limiter", LimiterRequest{Rate: 1, Burst: -2})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// the applied setting is echoed back
	w = doJSON(rs, http.MethodPost, "/units/501/limiter", LimiterRequest{Rate: 5, Burst: 3})
	require.Equal(t, http.StatusOK, w.Code)
	var setting fleet.LimiterSetting
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &setting))
	assert.Equal(t, fleet.LimiterSetting{Rate: 5, Burst: 3}, setting)
	assert.Equal(t, setting, rs.RateLimiterStore.Setting(fleet.UnitLimiterKey(501)))
}

func TestLimiter(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServerWithLimiter(t, fleet.NewRateLimiterStore(0, 0)) // nothing passes

	for _, target := range []string{"/units/501/snapshot", "/units/501/ledger", "/units/501/score"} {
		w := doJSON(rs, http.MethodGet, target, nil)
		assert.Equal(t, http.StatusTooManyRequests, w.Code, target)
	}

	w := doJSON(rs, http.MethodPut, "/units/501/location", PinRequest{LocationID: 1})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// fleet wide views are not per-unit limited
	w = doJSON(rs, http.MethodGet, "/alerts", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSetLimiter_EdgeCases(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer(t) // default without limiter store

	{
		// without limiter store setup limiter should be allowed and just return ok (but no effect)
		w := doJSON(rs, http.MethodPost, "/units/501/limiter", LimiterRequest{Rate: 2, Burst: 2})
		require.Equal(t, http.StatusOK, w.Code, "limiter request should be allowed")
	}

	{
		// and the unit endpoints answer normally instead of too many requests
		w := doJSON(rs, http.MethodGet, "/units/501/snapshot", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	}
}
