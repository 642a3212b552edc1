package models

import "liyu1981.xyz/trailer-fleet-service/pkg/geo"

type LocationCluster struct {
	LocationID uint      `json:"locationId"`
	Name       string    `json:"name"`
	Centroid   geo.Point `json:"centroid"`
	UnitIDs    []int64   `json:"unitIds"`
	Created    bool      `json:"created"`
}

type ClusterResult struct {
	Locations     []LocationCluster `json:"locations"`
	Created       int               `json:"created"`
	Updated       int               `json:"updated"`
	TotalAssigned int               `json:"totalAssigned"`
	// Failed counts clusters left unassigned because no location could be
	// created for them.
	Failed int `json:"failed"`
}

// LocationMembers is a persisted location together with the units currently
// assigned to it.
type LocationMembers struct {
	Location
	UnitIDs       []int64 `json:"unitIds"`
	PinnedUnitIDs []int64 `json:"pinnedUnitIds"`
}
