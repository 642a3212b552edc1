package clients

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liyu1981.xyz/trailer-fleet-service/pkg/config"
)

type fakeRouterAPI struct {
	tokenCalls  atomic.Int32
	deviceCalls atomic.Int32
	rejectFirst atomic.Int32
	alwaysDeny  bool
	expiresIn   int
}

func (f *fakeRouterAPI) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.Form.Get("grant_type"))
		assert.Equal(t, "id", r.Form.Get("client_id"))

		n := f.tokenCalls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"access_token":"token-%d","expires_in":%d}`, n, f.expiresIn)
	})
	mux.HandleFunc("/rest/o/org/g/grp/d", func(w http.ResponseWriter, r *http.Request) {
		f.deviceCalls.Add(1)
		if f.alwaysDeny || f.rejectFirst.Add(-1) >= 0 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"data":[
			{"id":101,"name":"Trailer 7","status":"online","signal_strength":-71,"latitude":39.7,"longitude":-104.9},
			{"id":102,"name":"Spare modem","status":"offline"}
		]}`))
	})
	mux.HandleFunc("/rest/o/org/g/grp/d/102/loc", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		w.Write([]byte(`{"data":{"latitude":40.1,"longitude":-105.2}}`))
	})
	return mux
}

func newTestRouterClient(url string) *RouterClient {
	return NewRouterClient(config.RouterAPIConfig{
		BaseURL:      url,
		ClientID:     "id",
		ClientSecret: "secret",
		OrgID:        "org",
		GroupID:      "grp",
	}, time.Second)
}

func TestRouterClientCachesToken(t *testing.T) {
	api := &fakeRouterAPI{expiresIn: 3600}
	server := httptest.NewServer(api.handler(t))
	defer server.Close()

	client := newTestRouterClient(server.URL)

	devices, err := client.ListDevices(context.Background())
	require.NoError(t, err)
	require.Len(t, devices, 2)
	assert.True(t, devices[0].Online())
	assert.False(t, devices[1].Online())
	require.NotNil(t, devices[0].SignalDbm)
	assert.Equal(t, -71.0, *devices[0].SignalDbm)
	require.NotNil(t, devices[0].Location())
	assert.Nil(t, devices[1].Location())

	loc, err := client.DeviceLocation(context.Background(), 102)
	require.NoError(t, err)
	require.NotNil(t, loc)
	assert.Equal(t, 40.1, loc.Lat)

	assert.Equal(t, int32(1), api.tokenCalls.Load())
}

func TestRouterClientRefreshesWithinSafetyMargin(t *testing.T) {
	api := &fakeRouterAPI{expiresIn: 3600}
	server := httptest.NewServer(api.handler(t))
	defer server.Close()

	client := newTestRouterClient(server.URL)
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	client.now = func() time.Time { return now }

	_, err := client.ListDevices(context.Background())
	require.NoError(t, err)

	now = now.Add(3600*time.Second - 30*time.Second)
	_, err = client.ListDevices(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(2), api.tokenCalls.Load())
}

func TestRouterClientRetriesOnceOnUnauthorized(t *testing.T) {
	api := &fakeRouterAPI{expiresIn: 3600}
	api.rejectFirst.Store(1)
	server := httptest.NewServer(api.handler(t))
	defer server.Close()

	client := newTestRouterClient(server.URL)

	devices, err := client.ListDevices(context.Background())
	require.NoError(t, err)
	assert.Len(t, devices, 2)
	assert.Equal(t, int32(2), api.tokenCalls.Load())
	assert.Equal(t, int32(2), api.deviceCalls.Load())
}

func TestRouterClientGivesUpAfterOneRetry(t *testing.T) {
	api := &fakeRouterAPI{expiresIn: 3600, alwaysDeny: true}
	server := httptest.NewServer(api.handler(t))
	defer server.Close()

	client := newTestRouterClient(server.URL)

	_, err := client.ListDevices(context.Background())
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, int32(2), api.deviceCalls.Load())
	assert.Equal(t, int32(2), api.tokenCalls.Load())
}
