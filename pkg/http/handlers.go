package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"liyu1981.xyz/trailer-fleet-service/pkg/common"
	"liyu1981.xyz/trailer-fleet-service/pkg/fleet"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"
)

func parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + param})
		return 0, false
	}
	return id, true
}

// unitParam parses the unit id and applies the unit's limiter. It writes the
// response itself when the request must stop.
func (rs *RestfulServer) unitParam(c *gin.Context) (int64, bool) {
	unitID, ok := parseID(c, "unit_id")
	if !ok {
		return 0, false
	}
	if !rs.CheckUnitLimiter(unitID) {
		c.Status(http.StatusTooManyRequests)
		return 0, false
	}
	return unitID, true
}

func (rs *RestfulServer) ListUnits(c *gin.Context) {
	c.JSON(http.StatusOK, rs.Fleet.ListUnits())
}

func (rs *RestfulServer) GetSnapshot(c *gin.Context) {
	unitID, ok := rs.unitParam(c)
	if !ok {
		return
	}

	snap, found := rs.Fleet.GetSnapshot(unitID)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "no snapshot for unit"})
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (rs *RestfulServer) GetLedger(c *gin.Context) {
	unitID, ok := rs.unitParam(c)
	if !ok {
		return
	}

	days := rs.Fleet.GetLedger(unitID)
	if _, known := rs.Fleet.GetUnit(unitID); !known && len(days) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown unit"})
		return
	}
	c.JSON(http.StatusOK, days)
}

func (rs *RestfulServer) GetScore(c *gin.Context) {
	unitID, ok := rs.unitParam(c)
	if !ok {
		return
	}

	report := rs.Fleet.Scorer.Score(c.Request.Context(), unitID)
	if report == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no snapshot for unit"})
		return
	}
	c.JSON(http.StatusOK, report)
}

type PinRequest struct {
	LocationID int `json:"locationId" zog:"locationId"`
}

var pinRequestSchema = z.Struct(z.Shape{
	"LocationID": z.Int().Required().GT(0),
})

func (rs *RestfulServer) PinLocation(c *gin.Context) {
	unitID, ok := rs.unitParam(c)
	if !ok {
		return
	}

	var req PinRequest
	if err := pinRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	err := rs.Fleet.Cluster.Pin(c.Request.Context(), unitID, uint(req.LocationID))
	switch {
	case errors.Is(err, fleet.ErrUnknownLocation):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case err != nil:
		common.GetLoggerWith(common.LoggerNameRestfulServer).
			Error("Failed to pin unit", zap.Int64("unit_id", unitID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusOK)
}

func (rs *RestfulServer) UnpinLocation(c *gin.Context) {
	unitID, ok := rs.unitParam(c)
	if !ok {
		return
	}

	if err := rs.Fleet.Cluster.Unpin(c.Request.Context(), unitID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusOK)
}

type LimiterRequest struct {
	Rate  float64 `json:"rate"`
	Burst int     `json:"burst"`
}

var limiterRequestSchema = z.Struct(z.Shape{
	"rate":  z.Float64().Required().GTE(0),
	"burst": z.Int().Required().GTE(0),
})

func (rs *RestfulServer) PostLimiter(c *gin.Context) {
	unitID, ok := parseID(c, "unit_id")
	if !ok {
		return
	}

	var req LimiterRequest
	if err := limiterRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	setting := rs.SetLimiter(unitID, req.Rate, req.Burst)
	if setting == nil {
		c.Status(http.StatusOK)
		return
	}
	c.JSON(http.StatusOK, setting)
}

func (rs *RestfulServer) GetAlerts(c *gin.Context) {
	c.JSON(http.StatusOK, rs.Fleet.Alert.ComputeAlerts())
}

func (rs *RestfulServer) GetIntelligence(c *gin.Context) {
	c.JSON(http.StatusOK, rs.Fleet.Scorer.ScoreAll(c.Request.Context()))
}

func (rs *RestfulServer) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
