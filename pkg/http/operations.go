package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"liyu1981.xyz/trailer-fleet-service/pkg/common"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"
)

const (
	minClusterThresholdMeters = 10.0
	maxClusterThresholdMeters = 5000.0
)

func (rs *RestfulServer) GetLocations(c *gin.Context) {
	locations, err := rs.Fleet.Cluster.Locations(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, locations)
}

type ClusterRequest struct {
	Threshold float64 `json:"threshold"`
}

var clusterRequestSchema = z.Struct(z.Shape{
	"Threshold": z.Float64().GTE(minClusterThresholdMeters).LTE(maxClusterThresholdMeters),
})

// PostClusters forces a clustering pass. An empty body uses the configured
// threshold.
func (rs *RestfulServer) PostClusters(c *gin.Context) {
	var req ClusterRequest
	if c.Request.ContentLength != 0 {
		if err := clusterRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err})
			return
		}
	}

	result, err := rs.Fleet.Cluster.Cluster(c.Request.Context(), req.Threshold)
	if err != nil {
		common.GetLoggerWith(common.LoggerNameRestfulServer).
			Error("Forced clustering failed", zap.Float64("threshold", req.Threshold), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (rs *RestfulServer) GetBindings(c *gin.Context) {
	c.JSON(http.StatusOK, rs.Fleet.Identity.Bindings())
}

type LinkRequest struct {
	UnitID int    `json:"unitId" zog:"unitId"`
	Name   string `json:"name"`
}

var linkRequestSchema = z.Struct(z.Shape{
	"UnitID": z.Int().Required(),
	"Name":   z.String(),
})

func (rs *RestfulServer) PostLink(c *gin.Context) {
	routerID, ok := parseID(c, "router_id")
	if !ok {
		return
	}

	var req LinkRequest
	if err := linkRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}
	if req.UnitID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unitId must not be zero"})
		return
	}

	resolution := rs.Fleet.Identity.Link(c.Request.Context(), routerID, int64(req.UnitID), req.Name)
	c.JSON(http.StatusOK, resolution)
}

func (rs *RestfulServer) DeleteLink(c *gin.Context) {
	routerID, ok := parseID(c, "router_id")
	if !ok {
		return
	}

	if !rs.Fleet.Identity.Unlink(c.Request.Context(), routerID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no binding for router"})
		return
	}
	c.Status(http.StatusOK)
}
