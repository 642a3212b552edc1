package http

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"liyu1981.xyz/trailer-fleet-service/pkg/fleet"
)

type RestfulServer struct {
	Server           *gin.Engine
	Fleet            *fleet.Fleet
	RateLimiterStore *fleet.RateLimiterStore
}

func (rs *RestfulServer) CheckUnitLimiter(unitID int64) bool {
	if rs.RateLimiterStore == nil {
		return true
	}
	return rs.RateLimiterStore.Allow(fleet.UnitLimiterKey(unitID))
}

// SetLimiter resets the unit's limiter and returns the setting now in effect,
// or nil when no limiter store is configured.
func (rs *RestfulServer) SetLimiter(unitID int64, unitRate float64, unitBurst int) *fleet.LimiterSetting {
	if rs.RateLimiterStore == nil {
		return nil
	}
	key := fleet.UnitLimiterKey(unitID)
	rs.RateLimiterStore.SetLimiter(key, rate.Limit(unitRate), unitBurst)
	setting := rs.RateLimiterStore.Setting(key)
	return &setting
}

func (rs *RestfulServer) Setup() {
	rs.Server.GET("/healthz", rs.HealthCheck)

	rs.Server.GET("/units", rs.ListUnits)
	units := rs.Server.Group("/units/:unit_id")
	{
		units.GET("/snapshot", rs.GetSnapshot)
		units.GET("/ledger", rs.GetLedger)
		units.GET("/score", rs.GetScore)
		units.PUT("/location", rs.PinLocation)
		units.DELETE("/location", rs.UnpinLocation)
		units.POST("/limiter", rs.PostLimiter)
	}

	rs.Server.GET("/alerts", rs.GetAlerts)
	rs.Server.GET("/intelligence", rs.GetIntelligence)

	rs.Server.GET("/locations", rs.GetLocations)
	rs.Server.POST("/clusters", rs.PostClusters)

	routers := rs.Server.Group("/routers")
	{
		routers.GET("/bindings", rs.GetBindings)
		routers.POST("/:router_id/link", rs.PostLink)
		routers.DELETE("/:router_id/link", rs.DeleteLink)
	}
}
