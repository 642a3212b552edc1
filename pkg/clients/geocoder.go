package clients

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"liyu1981.xyz/trailer-fleet-service/pkg/geo"
)

type Place struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

type GeocoderClient struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

func NewGeocoderClient(baseURL, userAgent string, timeout time.Duration) *GeocoderClient {
	return &GeocoderClient{baseURL: baseURL, userAgent: userAgent, http: newHTTPClient(timeout)}
}

type nominatimAddress struct {
	Road    string `json:"road"`
	Hamlet  string `json:"hamlet"`
	Village string `json:"village"`
	Town    string `json:"town"`
	City    string `json:"city"`
	County  string `json:"county"`
}

func (a nominatimAddress) locality() string {
	for _, s := range []string{a.City, a.Town, a.Village, a.Hamlet, a.County} {
		if s != "" {
			return s
		}
	}
	return ""
}

// Reverse resolves p into a short place name and a full address.
func (c *GeocoderClient) Reverse(ctx context.Context, p geo.Point) (Place, error) {
	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("lat", strconv.FormatFloat(p.Lat, 'f', 6, 64))
	q.Set("lon", strconv.FormatFloat(p.Lon, 'f', 6, 64))
	q.Set("zoom", "17")

	var resp struct {
		DisplayName string           `json:"display_name"`
		Address     nominatimAddress `json:"address"`
		Error       string           `json:"error"`
	}
	err := doJSON(ctx, c.http, http.MethodGet, c.baseURL+"/reverse?"+q.Encode(), nil,
		func(req *http.Request) {
			req.Header.Set("User-Agent", c.userAgent)
		},
		&resp,
	)
	if err != nil {
		return Place{}, fmt.Errorf("reverse geocoding %s: %w", p, err)
	}
	if resp.Error != "" {
		return Place{}, fmt.Errorf("reverse geocoding %s: %s", p, resp.Error)
	}

	parts := make([]string, 0, 2)
	if resp.Address.Road != "" {
		parts = append(parts, resp.Address.Road)
	}
	if locality := resp.Address.locality(); locality != "" {
		parts = append(parts, locality)
	}
	name := strings.Join(parts, ", ")
	if name == "" {
		name = strings.TrimSpace(strings.Split(resp.DisplayName, ",")[0])
	}
	if name == "" {
		return Place{}, fmt.Errorf("reverse geocoding %s: no place name", p)
	}
	return Place{Name: name, Address: resp.DisplayName}, nil
}
