package clients

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"liyu1981.xyz/trailer-fleet-service/pkg/config"
	"liyu1981.xyz/trailer-fleet-service/pkg/geo"
)

const (
	tokenSafetyMargin  = 60 * time.Second
	defaultTokenExpiry = time.Hour
	maxAuthRetries     = 1
)

type RouterDevice struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Status    string   `json:"status"`
	SignalDbm *float64 `json:"signal_strength"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (d RouterDevice) Online() bool {
	return strings.EqualFold(d.Status, "online")
}

// Location returns the fix carried by the listing, if any.
func (d RouterDevice) Location() *geo.Point {
	if d.Latitude == nil || d.Longitude == nil {
		return nil
	}
	p := geo.Point{Lat: *d.Latitude, Lon: *d.Longitude}
	if !p.Valid() {
		return nil
	}
	return &p
}

type RouterClient struct {
	cfg  config.RouterAPIConfig
	http *http.Client
	now  func() time.Time

	mu          sync.Mutex
	accessToken string
	expiresAt   time.Time
}

func NewRouterClient(cfg config.RouterAPIConfig, timeout time.Duration) *RouterClient {
	return &RouterClient{
		cfg:  cfg,
		http: newHTTPClient(timeout),
		now:  time.Now,
	}
}

// token returns the cached access token, fetching a new one when none is held
// or the held one expires within the safety margin.
func (c *RouterClient) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && c.now().Add(tokenSafetyMargin).Before(c.expiresAt) {
		return c.accessToken, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)

	var resp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	err := doJSON(ctx, c.http, http.MethodPost, c.cfg.BaseURL+"/api/oauth2/token",
		strings.NewReader(form.Encode()),
		func(req *http.Request) {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		},
		&resp,
	)
	if err != nil {
		return "", fmt.Errorf("fetching router token: %w", err)
	}
	if resp.AccessToken == "" {
		return "", fmt.Errorf("fetching router token: empty access token")
	}

	expiry := time.Duration(resp.ExpiresIn) * time.Second
	if expiry <= 0 {
		expiry = defaultTokenExpiry
	}
	c.accessToken = resp.AccessToken
	c.expiresAt = c.now().Add(expiry)
	return c.accessToken, nil
}

func (c *RouterClient) discardToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.accessToken == token {
		c.accessToken = ""
		c.expiresAt = time.Time{}
	}
}

// get performs an authorized GET. A 401 discards the token and retries once.
func (c *RouterClient) get(ctx context.Context, path string, out any) error {
	for attempt := 0; ; attempt++ {
		token, err := c.token(ctx)
		if err != nil {
			return err
		}

		err = doJSON(ctx, c.http, http.MethodGet, c.cfg.BaseURL+path, nil,
			func(req *http.Request) {
				req.Header.Set("Authorization", "Bearer "+token)
			},
			out,
		)
		if err == nil || !IsUnauthorized(err) || attempt >= maxAuthRetries {
			return err
		}
		c.discardToken(token)
	}
}

func (c *RouterClient) groupPath() string {
	return fmt.Sprintf("/rest/o/%s/g/%s", url.PathEscape(c.cfg.OrgID), url.PathEscape(c.cfg.GroupID))
}

func (c *RouterClient) ListDevices(ctx context.Context) ([]RouterDevice, error) {
	var resp struct {
		Data []RouterDevice `json:"data"`
	}
	if err := c.get(ctx, c.groupPath()+"/d", &resp); err != nil {
		return nil, fmt.Errorf("listing routers: %w", err)
	}
	return resp.Data, nil
}

// DeviceLocation returns the last fix of a router, or nil when it has none.
func (c *RouterClient) DeviceLocation(ctx context.Context, routerID int64) (*geo.Point, error) {
	var resp struct {
		Data struct {
			Latitude  *float64 `json:"latitude"`
			Longitude *float64 `json:"longitude"`
		} `json:"data"`
	}
	if err := c.get(ctx, fmt.Sprintf("%s/d/%d/loc", c.groupPath(), routerID), &resp); err != nil {
		return nil, fmt.Errorf("fetching location of router %d: %w", routerID, err)
	}
	return RouterDevice{Latitude: resp.Data.Latitude, Longitude: resp.Data.Longitude}.Location(), nil
}
