package fleet

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"liyu1981.xyz/trailer-fleet-service/pkg/common"
	"liyu1981.xyz/trailer-fleet-service/pkg/geo"
	"liyu1981.xyz/trailer-fleet-service/pkg/models"
)

// maxCreateAttempts bounds the names tried for one new location.
const maxCreateAttempts = 3

type unitPoint struct {
	UnitID int64
	Point  geo.Point
}

// linkClusters groups points by single linkage: a point joins a cluster when
// it lies within thresholdMeters of any member. points must be sorted by unit
// id so that the output is deterministic.
func linkClusters(points []unitPoint, thresholdMeters float64) [][]unitPoint {
	assigned := make([]bool, len(points))
	var clusters [][]unitPoint

	for seed := range points {
		if assigned[seed] {
			continue
		}
		assigned[seed] = true
		members := []unitPoint{points[seed]}

		for grew := true; grew; {
			grew = false
			for candidate := range points {
				if assigned[candidate] {
					continue
				}
				for _, member := range members {
					if geo.DistanceMeters(member.Point, points[candidate].Point) <= thresholdMeters {
						assigned[candidate] = true
						members = append(members, points[candidate])
						grew = true
						break
					}
				}
			}
		}
		clusters = append(clusters, members)
	}
	return clusters
}

// bestLocation picks the existing location sharing the most members with
// unitIDs. Ties go to the lowest location id. Locations already claimed by an
// earlier cluster in the same pass are skipped.
func bestLocation(unitIDs []int64, memberOf map[int64]uint, claimed map[uint]bool) (uint, int) {
	overlap := make(map[uint]int)
	for _, id := range unitIDs {
		if locationID, ok := memberOf[id]; ok && !claimed[locationID] {
			overlap[locationID]++
		}
	}

	var best uint
	bestCount := 0
	for locationID, count := range overlap {
		if count > bestCount || (count == bestCount && locationID < best) {
			best, bestCount = locationID, count
		}
	}
	return best, bestCount
}

func uniqueName(base string, taken map[string]bool) string {
	if !taken[base] {
		return base
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s %d", base, n)
		if !taken[candidate] {
			return candidate
		}
	}
}

// createLocation stores a new location named after base, moving to the next
// free suffix when the store rejects a name.
func (f *Fleet) createLocation(ctx context.Context, base string, taken map[string]bool, location *models.Location) error {
	logger := common.GetCategoryLogger(common.LoggerNameFleetCore, common.LoggerCategoryCluster)

	var err error
	for range maxCreateAttempts {
		location.Name = uniqueName(base, taken)
		if err = f.Store.CreateLocation(ctx, location); err == nil {
			taken[location.Name] = true
			return nil
		}
		logger.Warn("Failed to create location", zap.String("name", location.Name), zap.Error(err))
		taken[location.Name] = true
	}
	return err
}

// nameFor reverse geocodes centroid, paced by the geocoder limiter. A failed
// lookup falls back to a coordinate based name.
func (f *Fleet) nameFor(ctx context.Context, centroid geo.Point) (string, string) {
	fallback := fmt.Sprintf("Location %.4f,%.4f", centroid.Lat, centroid.Lon)
	if f.Geocoder == nil {
		return fallback, ""
	}

	logger := common.GetCategoryLogger(common.LoggerNameFleetCore, common.LoggerCategoryCluster)

	if err := f.Limiters.Wait(ctx, geocoderLimiterKey); err != nil {
		logger.Warn("Geocoder pacing interrupted", zap.Error(err))
		return fallback, ""
	}

	place, err := f.Geocoder.Reverse(ctx, centroid)
	if err != nil || place.Name == "" {
		logger.Warn("Reverse geocoding failed, using coordinates", zap.String("centroid", centroid.String()), zap.Error(err))
		return fallback, ""
	}
	return place.Name, place.Address
}

func (f *Fleet) cluster(ctx context.Context, thresholdMeters float64) (models.ClusterResult, error) {
	f.clusterMu.Lock()
	defer f.clusterMu.Unlock()

	logger := common.GetCategoryLogger(common.LoggerNameFleetCore, common.LoggerCategoryCluster)
	result := models.ClusterResult{Locations: []models.LocationCluster{}}

	if thresholdMeters <= 0 {
		thresholdMeters = f.clusterThreshold
	}

	fixes := f.gps.All()
	if len(fixes) == 0 {
		logger.Info("No gps fixes, skipping clustering")
		return result, nil
	}

	assignments, err := f.Store.ListUnitLocations(ctx)
	if err != nil {
		return result, fmt.Errorf("listing unit locations: %w", err)
	}

	memberOf := make(map[int64]uint, len(assignments))
	manual := make(map[int64]bool)
	for _, a := range assignments {
		memberOf[a.UnitID] = a.LocationID
		if a.ManualOverride {
			manual[a.UnitID] = true
		}
	}

	points := make([]unitPoint, 0, len(fixes))
	for unitID, fix := range fixes {
		if manual[unitID] {
			continue
		}
		points = append(points, unitPoint{UnitID: unitID, Point: fix.Point})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].UnitID < points[j].UnitID })
	if len(points) == 0 {
		logger.Info("Every unit with gps is pinned, skipping clustering")
		return result, nil
	}

	locations, err := f.Store.ListLocations(ctx)
	if err != nil {
		return result, fmt.Errorf("listing locations: %w", err)
	}
	byID := make(map[uint]models.Location, len(locations))
	taken := make(map[string]bool, len(locations))
	for _, l := range locations {
		byID[l.ID] = l
		taken[l.Name] = true
	}

	claimed := make(map[uint]bool)
	for _, members := range linkClusters(points, thresholdMeters) {
		unitIDs := make([]int64, len(members))
		coords := make([]geo.Point, len(members))
		for i, m := range members {
			unitIDs[i] = m.UnitID
			coords[i] = m.Point
		}
		centroid := geo.Centroid(coords)

		cluster := models.LocationCluster{Centroid: centroid, UnitIDs: unitIDs}

		if locationID, overlap := bestLocation(unitIDs, memberOf, claimed); overlap > 0 {
			location := byID[locationID]
			location.Latitude = centroid.Lat
			location.Longitude = centroid.Lon
			if err := f.Store.UpdateLocation(ctx, &location); err != nil {
				logger.Warn("Failed to update location centroid", zap.Uint("location_id", locationID), zap.Error(err))
			}
			claimed[locationID] = true
			cluster.LocationID = location.ID
			cluster.Name = location.Name
			result.Updated++
		} else {
			name, address := f.nameFor(ctx, centroid)

			location := models.Location{
				Latitude:  centroid.Lat,
				Longitude: centroid.Lon,
				Address:   address,
			}
			if err := f.createLocation(ctx, name, taken, &location); err != nil {
				logger.Error("Giving up on location, cluster left unassigned",
					zap.String("name", name), zap.Int64s("unit_ids", unitIDs), zap.Error(err))
				result.Failed++
				continue
			}
			claimed[location.ID] = true
			cluster.LocationID = location.ID
			cluster.Name = location.Name
			cluster.Created = true
			result.Created++
		}

		for _, unitID := range unitIDs {
			err := f.Store.AssignUnitLocation(ctx, models.UnitLocation{
				UnitID:     unitID,
				LocationID: cluster.LocationID,
			})
			if err != nil {
				logger.Warn("Failed to assign unit to location",
					zap.Int64("unit_id", unitID), zap.Uint("location_id", cluster.LocationID), zap.Error(err))
				continue
			}
			result.TotalAssigned++
		}

		result.Locations = append(result.Locations, cluster)
	}

	logger.Info("Clustering completed",
		zap.Float64("threshold_meters", thresholdMeters),
		zap.Int("clusters", len(result.Locations)),
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("total_assigned", result.TotalAssigned),
		zap.Int("failed", result.Failed),
		zap.Int("pinned", len(manual)),
	)
	return result, nil
}

func (f *Fleet) pin(ctx context.Context, unitID int64, locationID uint) error {
	f.clusterMu.Lock()
	defer f.clusterMu.Unlock()

	location, err := f.Store.GetLocation(ctx, locationID)
	if err != nil {
		return fmt.Errorf("loading location %d: %w", locationID, err)
	}
	if location == nil {
		return ErrUnknownLocation
	}

	if err := f.Store.AssignUnitLocation(ctx, models.UnitLocation{
		UnitID:         unitID,
		LocationID:     locationID,
		ManualOverride: true,
	}); err != nil {
		return fmt.Errorf("pinning unit %d: %w", unitID, err)
	}

	common.GetCategoryLogger(common.LoggerNameFleetCore, common.LoggerCategoryCluster).
		Info("Pinned unit to location", zap.Int64("unit_id", unitID), zap.Uint("location_id", locationID))
	return nil
}

func (f *Fleet) unpin(ctx context.Context, unitID int64) error {
	f.clusterMu.Lock()
	defer f.clusterMu.Unlock()

	if err := f.Store.ClearManualOverride(ctx, unitID); err != nil {
		return fmt.Errorf("unpinning unit %d: %w", unitID, err)
	}
	common.GetCategoryLogger(common.LoggerNameFleetCore, common.LoggerCategoryCluster).
		Info("Unpinned unit", zap.Int64("unit_id", unitID))
	return nil
}

func (f *Fleet) locations(ctx context.Context) ([]models.LocationMembers, error) {
	locations, err := f.Store.ListLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing locations: %w", err)
	}
	assignments, err := f.Store.ListUnitLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing unit locations: %w", err)
	}

	views := make([]models.LocationMembers, len(locations))
	index := make(map[uint]int, len(locations))
	for i, l := range locations {
		views[i] = models.LocationMembers{Location: l, UnitIDs: []int64{}, PinnedUnitIDs: []int64{}}
		index[l.ID] = i
	}
	for _, a := range assignments {
		i, ok := index[a.LocationID]
		if !ok {
			continue
		}
		views[i].UnitIDs = append(views[i].UnitIDs, a.UnitID)
		if a.ManualOverride {
			views[i].PinnedUnitIDs = append(views[i].PinnedUnitIDs, a.UnitID)
		}
	}
	return views, nil
}

type IClusterImpl struct {
	fleet *Fleet
}

func (ic *IClusterImpl) Cluster(ctx context.Context, thresholdMeters float64) (models.ClusterResult, error) {
	return ic.fleet.cluster(ctx, thresholdMeters)
}

func (ic *IClusterImpl) Pin(ctx context.Context, unitID int64, locationID uint) error {
	return ic.fleet.pin(ctx, unitID, locationID)
}

func (ic *IClusterImpl) Unpin(ctx context.Context, unitID int64) error {
	return ic.fleet.unpin(ctx, unitID)
}

func (ic *IClusterImpl) Locations(ctx context.Context) ([]models.LocationMembers, error) {
	return ic.fleet.locations(ctx)
}

func (f *Fleet) GetICluster() ICluster {
	return &IClusterImpl{fleet: f}
}
