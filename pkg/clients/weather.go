package clients

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"liyu1981.xyz/trailer-fleet-service/pkg/geo"
)

// WeatherSample is today's solar weather at a point. Any field may be nil.
type WeatherSample struct {
	RadiationMJ   *float64 `json:"radiationMJ"`
	SunshineHours *float64 `json:"sunshineHours"`
	CloudCoverPct *float64 `json:"cloudCoverPct"`
}

// PeakSunHours converts the daily shortwave radiation sum (MJ/m2) into
// equivalent hours of 1 kW/m2 sunlight.
func (w WeatherSample) PeakSunHours() *float64 {
	if w.RadiationMJ == nil || *w.RadiationMJ < 0 {
		return nil
	}
	psh := *w.RadiationMJ / geo.MJPerKWh
	return &psh
}

type WeatherClient struct {
	baseURL string
	http    *http.Client
}

func NewWeatherClient(baseURL string, timeout time.Duration) *WeatherClient {
	return &WeatherClient{baseURL: baseURL, http: newHTTPClient(timeout)}
}

func (c *WeatherClient) Forecast(ctx context.Context, p geo.Point) (WeatherSample, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(p.Lat, 'f', 4, 64))
	q.Set("longitude", strconv.FormatFloat(p.Lon, 'f', 4, 64))
	q.Set("daily", "shortwave_radiation_sum,sunshine_duration")
	q.Set("current", "cloud_cover")
	q.Set("forecast_days", "1")
	q.Set("timezone", "auto")

	var resp struct {
		Daily struct {
			Time                  []string   `json:"time"`
			ShortwaveRadiationSum []*float64 `json:"shortwave_radiation_sum"`
			SunshineDuration      []*float64 `json:"sunshine_duration"`
		} `json:"daily"`
		Current struct {
			CloudCover *float64 `json:"cloud_cover"`
		} `json:"current"`
	}

	if err := doJSON(ctx, c.http, http.MethodGet, c.baseURL+"/v1/forecast?"+q.Encode(), nil, nil, &resp); err != nil {
		return WeatherSample{}, fmt.Errorf("fetching weather at %s: %w", p, err)
	}

	sample := WeatherSample{CloudCoverPct: resp.Current.CloudCover}
	if len(resp.Daily.ShortwaveRadiationSum) > 0 {
		sample.RadiationMJ = resp.Daily.ShortwaveRadiationSum[0]
	}
	if len(resp.Daily.SunshineDuration) > 0 && resp.Daily.SunshineDuration[0] != nil {
		// seconds
		hours := *resp.Daily.SunshineDuration[0] / 3600
		sample.SunshineHours = &hours
	}
	if sample.RadiationMJ == nil {
		return sample, fmt.Errorf("fetching weather at %s: no radiation in response", p)
	}
	return sample, nil
}
