package clients

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"liyu1981.xyz/trailer-fleet-service/pkg/config"
)

type Site struct {
	ID   int64  `json:"idSite"`
	Name string `json:"name"`
}

// DiagnosticRecord is one raw attribute of a site. RawValue is whatever the
// portal sent: a number, a numeric string, an empty string or null.
type DiagnosticRecord struct {
	Code           string `json:"code"`
	RawValue       any    `json:"rawValue"`
	FormattedValue string `json:"formattedValue"`
	Device         string `json:"Device"`
}

type SolarClient struct {
	baseURL string
	token   string
	userID  string
	http    *http.Client
}

func NewSolarClient(cfg config.SolarAPIConfig, timeout time.Duration) *SolarClient {
	return &SolarClient{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		userID:  cfg.UserID,
		http:    newHTTPClient(timeout),
	}
}

func (c *SolarClient) authorize(req *http.Request) {
	req.Header.Set("X-Authorization", "Token "+c.token)
}

// ListSites returns every installation visible to the configured user.
func (c *SolarClient) ListSites(ctx context.Context) ([]Site, error) {
	var resp struct {
		Records []Site `json:"records"`
	}
	url := fmt.Sprintf("%s/users/%s/installations", c.baseURL, c.userID)
	if err := doJSON(ctx, c.http, http.MethodGet, url, nil, c.authorize, &resp); err != nil {
		return nil, fmt.Errorf("listing sites: %w", err)
	}
	return resp.Records, nil
}

func (c *SolarClient) Diagnostics(ctx context.Context, siteID int64) ([]DiagnosticRecord, error) {
	var resp struct {
		Records []DiagnosticRecord `json:"records"`
	}
	url := fmt.Sprintf("%s/installations/%d/diagnostics?count=1000", c.baseURL, siteID)
	if err := doJSON(ctx, c.http, http.MethodGet, url, nil, c.authorize, &resp); err != nil {
		return nil, fmt.Errorf("fetching diagnostics for site %d: %w", siteID, err)
	}
	return resp.Records, nil
}
