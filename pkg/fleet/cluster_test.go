package fleet

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"liyu1981.xyz/trailer-fleet-service/pkg/clients"
	"liyu1981.xyz/trailer-fleet-service/pkg/common"
	"liyu1981.xyz/trailer-fleet-service/pkg/config"
	"liyu1981.xyz/trailer-fleet-service/pkg/db"
	"liyu1981.xyz/trailer-fleet-service/pkg/fleet/mocks"
	"liyu1981.xyz/trailer-fleet-service/pkg/geo"
	"liyu1981.xyz/trailer-fleet-service/pkg/models"
)

func putFix(fleet *Fleet, unitID int64, lat, lon float64) {
	fleet.gps.Put(unitID, gpsFix{Point: geo.Point{Lat: lat, Lon: lon}, Source: models.GPSSourceRouter})
}

func assignmentsByUnit(t *testing.T, fleet *Fleet) map[int64]models.UnitLocation {
	t.Helper()
	rows, err := fleet.Store.ListUnitLocations(context.Background())
	require.NoError(t, err)
	byUnit := make(map[int64]models.UnitLocation, len(rows))
	for _, row := range rows {
		byUnit[row.UnitID] = row
	}
	return byUnit
}

func TestLinkClustersIsTransitive(t *testing.T) {
	points := []unitPoint{
		{UnitID: 1, Point: geo.Point{Lat: 0, Lon: 0}},
		{UnitID: 2, Point: geo.Point{Lat: 0, Lon: 0.004}},
		{UnitID: 3, Point: geo.Point{Lat: 0, Lon: 0.002}},
		{UnitID: 4, Point: geo.Point{Lat: 1, Lon: 1}},
	}

	clusters := linkClusters(points, 300)
	require.Len(t, clusters, 2)

	ids := func(members []unitPoint) []int64 {
		return common.Mapper(members, func(m unitPoint) int64 { return m.UnitID })
	}
	assert.ElementsMatch(t, []int64{1, 2, 3}, ids(clusters[0]))
	assert.Equal(t, []int64{4}, ids(clusters[1]))
}

func TestBestLocation(t *testing.T) {
	memberOf := map[int64]uint{1: 7, 2: 7, 3: 4, 4: 4, 5: 9}

	id, overlap := bestLocation([]int64{1, 2, 3, 4, 5}, memberOf, map[uint]bool{})
	assert.Equal(t, uint(4), id, "ties go to the lowest location id")
	assert.Equal(t, 2, overlap)

	id, overlap = bestLocation([]int64{1, 2, 3, 4, 5}, memberOf, map[uint]bool{4: true})
	assert.Equal(t, uint(7), id)
	assert.Equal(t, 2, overlap)

	_, overlap = bestLocation([]int64{10, 11}, memberOf, map[uint]bool{})
	assert.Zero(t, overlap)
}

func TestUniqueName(t *testing.T) {
	taken := map[string]bool{"Depot": true, "Depot 2": true}
	assert.Equal(t, "Depot 3", uniqueName("Depot", taken))
	assert.Equal(t, "Yard", uniqueName("Yard", taken))
}

func TestClusterCreatesLocations(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, fleet, m, _ := GetMockFleetWithMemorySqliteDialector(t, false)
	defer ctrl.Finish()

	putFix(fleet, 1, 0, 0)
	putFix(fleet, 2, 0, 0.002)
	putFix(fleet, 3, 0, 0.004)
	putFix(fleet, 4, 1, 1)

	m.Geocoder.EXPECT().Reverse(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p geo.Point) (clients.Place, error) {
			if p.Lat == 0 {
				return clients.Place{Name: "Depot Road, Springfield", Address: "1 Depot Road"}, nil
			}
			return clients.Place{}, errors.New("geocoder unavailable")
		},
	).Times(2)

	result, err := fleet.Cluster.Cluster(context.Background(), 300)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 0, result.Updated)
	assert.Equal(t, 4, result.TotalAssigned)
	require.Len(t, result.Locations, 2)

	depot := result.Locations[0]
	assert.Equal(t, "Depot Road, Springfield", depot.Name)
	assert.Equal(t, []int64{1, 2, 3}, depot.UnitIDs)
	assert.InDelta(t, 0.002, depot.Centroid.Lon, 1e-9)
	assert.True(t, depot.Created)

	assert.Equal(t, "Location 1.0000,1.0000", result.Locations[1].Name)

	assignments := assignmentsByUnit(t, fleet)
	require.Len(t, assignments, 4)
	for _, id := range []int64{1, 2, 3} {
		assert.Equal(t, depot.LocationID, assignments[id].LocationID)
		assert.False(t, assignments[id].ManualOverride)
	}

	stored, err := fleet.Store.GetLocation(context.Background(), depot.LocationID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "1 Depot Road", stored.Address)
}

func TestClusterSkipsPinnedUnits(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, fleet, m, _ := GetMockFleetWithMemorySqliteDialector(t, false)
	defer ctrl.Finish()

	ctx := context.Background()
	yard := models.Location{Name: "Yard", Latitude: 5, Longitude: 5}
	require.NoError(t, fleet.Store.CreateLocation(ctx, &yard))
	require.NoError(t, fleet.Cluster.Pin(ctx, 2, yard.ID))

	// without unit 2 bridging them, 1 and 3 are too far apart
	putFix(fleet, 1, 0, 0)
	putFix(fleet, 2, 0, 0.002)
	putFix(fleet, 3, 0, 0.004)

	m.Geocoder.EXPECT().Reverse(gomock.Any(), gomock.Any()).
		Return(clients.Place{}, errors.New("geocoder unavailable")).Times(2)

	result, err := fleet.Cluster.Cluster(ctx, 300)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 2, result.TotalAssigned)
	assert.Equal(t, "Location 0.0000,0.0000", result.Locations[0].Name)
	assert.Equal(t, "Location 0.0000,0.0040", result.Locations[1].Name)

	pinned := assignmentsByUnit(t, fleet)[2]
	assert.Equal(t, yard.ID, pinned.LocationID)
	assert.True(t, pinned.ManualOverride)
}

func TestClusterUpdatesExistingLocation(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, fleet, m, _ := GetMockFleetWithMemorySqliteDialector(t, false)
	defer ctrl.Finish()

	ctx := context.Background()
	putFix(fleet, 1, 0, 0)
	putFix(fleet, 2, 0, 0.002)

	m.Geocoder.EXPECT().Reverse(gomock.Any(), gomock.Any()).
		Return(clients.Place{Name: "North Yard"}, nil).Times(1)

	first, err := fleet.Cluster.Cluster(ctx, 300)
	require.NoError(t, err)
	require.Len(t, first.Locations, 1)

	putFix(fleet, 2, 0, 0.001)
	putFix(fleet, 3, 0, 0.0005)

	second, err := fleet.Cluster.Cluster(ctx, 300)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 1, second.Updated)
	assert.Equal(t, 3, second.TotalAssigned)
	require.Len(t, second.Locations, 1)
	assert.Equal(t, first.Locations[0].LocationID, second.Locations[0].LocationID)
	assert.Equal(t, "North Yard", second.Locations[0].Name)

	stored, err := fleet.Store.GetLocation(ctx, second.Locations[0].LocationID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.InDelta(t, 0.0005, stored.Longitude, 1e-9)

	locations, err := fleet.Store.ListLocations(ctx)
	require.NoError(t, err)
	assert.Len(t, locations, 1)
}

func TestClusterAvoidsNameCollision(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, fleet, m, _ := GetMockFleetWithMemorySqliteDialector(t, false)
	defer ctrl.Finish()

	ctx := context.Background()
	existing := models.Location{Name: "Depot Road", Latitude: 10, Longitude: 10}
	require.NoError(t, fleet.Store.CreateLocation(ctx, &existing))

	putFix(fleet, 1, 0, 0)
	m.Geocoder.EXPECT().Reverse(gomock.Any(), geo.Point{Lat: 0, Lon: 0}).
		Return(clients.Place{Name: "Depot Road"}, nil)

	result, err := fleet.Cluster.Cluster(ctx, 300)
	require.NoError(t, err)
	require.Len(t, result.Locations, 1)
	assert.Equal(t, "Depot Road 2", result.Locations[0].Name)
	assert.NotEqual(t, existing.ID, result.Locations[0].LocationID)
}

func TestConcurrentClusterPassesAreSerialized(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, fleet, m, _ := GetMockFleetWithMemorySqliteDialector(t, false)
	defer ctrl.Finish()

	putFix(fleet, 1, 0, 0.001)
	putFix(fleet, 2, 0, 0.002)

	// the second pass finds the location created by the first and only updates it
	m.Geocoder.EXPECT().Reverse(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ geo.Point) (clients.Place, error) {
			time.Sleep(50 * time.Millisecond)
			return clients.Place{Name: "Depot"}, nil
		},
	).Times(1)

	results := make([]models.ClusterResult, 2)
	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = fleet.Cluster.Cluster(context.Background(), 300)
		}()
	}
	wg.Wait()

	created, updated := 0, 0
	for i := range 2 {
		require.NoError(t, errs[i])
		assert.Equal(t, 2, results[i].TotalAssigned)
		assert.Zero(t, results[i].Failed)
		created += results[i].Created
		updated += results[i].Updated
	}
	assert.Equal(t, 1, created)
	assert.Equal(t, 1, updated)

	locations, err := fleet.Store.ListLocations(context.Background())
	require.NoError(t, err)
	require.Len(t, locations, 1)
	assert.Equal(t, "Depot", locations[0].Name)

	byUnit := assignmentsByUnit(t, fleet)
	assert.Equal(t, locations[0].ID, byUnit[1].LocationID)
	assert.Equal(t, locations[0].ID, byUnit[2].LocationID)
}

func TestClusterRetriesRejectedLocationName(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, fleet, m, _ := GetMockFleetWithMemorySqliteDialector(t, true)
	defer ctrl.Finish()

	putFix(fleet, 1, 0, 0)
	m.Store.EXPECT().ListUnitLocations(gomock.Any()).Return(nil, nil)
	m.Store.EXPECT().ListLocations(gomock.Any()).Return(nil, nil)
	m.Geocoder.EXPECT().Reverse(gomock.Any(), gomock.Any()).Return(clients.Place{Name: "Depot"}, nil)

	var tried []string
	m.Store.EXPECT().CreateLocation(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, l *models.Location) error {
			tried = append(tried, l.Name)
			if l.Name == "Depot" {
				return errors.New("UNIQUE constraint failed: locations.name")
			}
			l.ID = 7
			return nil
		},
	).Times(2)
	m.Store.EXPECT().AssignUnitLocation(gomock.Any(), models.UnitLocation{UnitID: 1, LocationID: 7}).Return(nil)

	result, err := fleet.Cluster.Cluster(context.Background(), 300)
	require.NoError(t, err)
	assert.Equal(t, []string{"Depot", "Depot 2"}, tried)
	require.Len(t, result.Locations, 1)
	assert.Equal(t, "Depot 2", result.Locations[0].Name)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.TotalAssigned)
	assert.Zero(t, result.Failed)
}

func TestClusterCountsLocationsItCannotCreate(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, fleet, m, _ := GetMockFleetWithMemorySqliteDialector(t, true)
	defer ctrl.Finish()

	putFix(fleet, 1, 0, 0)
	putFix(fleet, 2, 0, 0.001)
	m.Store.EXPECT().ListUnitLocations(gomock.Any()).Return(nil, nil)
	m.Store.EXPECT().ListLocations(gomock.Any()).Return(nil, nil)
	m.Geocoder.EXPECT().Reverse(gomock.Any(), gomock.Any()).Return(clients.Place{Name: "Depot"}, nil)
	m.Store.EXPECT().CreateLocation(gomock.Any(), gomock.Any()).
		Return(errors.New("db read-only")).
		Times(maxCreateAttempts)

	result, err := fleet.Cluster.Cluster(context.Background(), 300)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Failed)
	assert.Zero(t, result.Created)
	assert.Zero(t, result.TotalAssigned)
	assert.Empty(t, result.Locations)
}

func TestClusterPacesGeocoderCalls(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store, err := db.Open(db.UseIsolatedMemorySqliteDialector())
	require.NoError(t, err)
	geocoder := mocks.NewMockGeocoder(ctrl)

	interval := 150 * time.Millisecond
	fleet := New(Options{
		Store:            store,
		Hardware:         config.NewHardware(testHardware),
		Geocoder:         geocoder,
		Location:         time.UTC,
		GeocoderInterval: interval,
	})

	putFix(fleet, 1, 10, 10)
	putFix(fleet, 2, 20, 20)

	var calls []time.Time
	geocoder.EXPECT().Reverse(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p geo.Point) (clients.Place, error) {
			calls = append(calls, time.Now())
			if p.Lat < 15 {
				return clients.Place{Name: "North Yard"}, nil
			}
			return clients.Place{Name: "South Yard"}, nil
		},
	).Times(2)

	result, err := fleet.Cluster.Cluster(context.Background(), 300)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)

	require.Len(t, calls, 2)
	assert.GreaterOrEqual(t, calls[1].Sub(calls[0]), interval-10*time.Millisecond)
}

func TestClusterWithoutGPSIsNoop(t *testing.T) {
	common.SetTestLoggerNop()

	// the mock store has no expectations, so any store call fails the test
	ctrl, fleet, _, _ := GetMockFleetWithMemorySqliteDialector(t, true)
	defer ctrl.Finish()

	result, err := fleet.Cluster.Cluster(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, models.ClusterResult{Locations: []models.LocationCluster{}}, result)
}

func TestClusterPropagatesStoreFailure(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, fleet, m, _ := GetMockFleetWithMemorySqliteDialector(t, true)
	defer ctrl.Finish()

	putFix(fleet, 1, 0, 0)
	m.Store.EXPECT().ListUnitLocations(gomock.Any()).Return(nil, errors.New("db down"))

	_, err := fleet.Cluster.Cluster(context.Background(), 300)
	assert.ErrorContains(t, err, "db down")
}

func TestPinUnknownLocation(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, fleet, _, _ := GetMockFleetWithMemorySqliteDialector(t, false)
	defer ctrl.Finish()

	err := fleet.Cluster.Pin(context.Background(), 1, 42)
	assert.ErrorIs(t, err, ErrUnknownLocation)
	assert.Empty(t, assignmentsByUnit(t, fleet))
}

func TestLocationsView(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, fleet, _, _ := GetMockFleetWithMemorySqliteDialector(t, false)
	defer ctrl.Finish()

	ctx := context.Background()
	yard := models.Location{Name: "Yard"}
	depot := models.Location{Name: "Depot"}
	require.NoError(t, fleet.Store.CreateLocation(ctx, &yard))
	require.NoError(t, fleet.Store.CreateLocation(ctx, &depot))

	require.NoError(t, fleet.Store.AssignUnitLocation(ctx, models.UnitLocation{UnitID: 1, LocationID: yard.ID}))
	require.NoError(t, fleet.Cluster.Pin(ctx, 2, yard.ID))
	require.NoError(t, fleet.Cluster.Pin(ctx, 3, yard.ID))
	require.NoError(t, fleet.Cluster.Unpin(ctx, 3))

	views, err := fleet.Cluster.Locations(ctx)
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, "Yard", views[0].Name)
	assert.Equal(t, []int64{1, 2, 3}, views[0].UnitIDs)
	assert.Equal(t, []int64{2}, views[0].PinnedUnitIDs)

	assert.Equal(t, "Depot", views[1].Name)
	assert.Empty(t, views[1].UnitIDs)
	assert.Empty(t, views[1].PinnedUnitIDs)
}
