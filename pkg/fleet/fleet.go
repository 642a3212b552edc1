// Package fleet is the core of the service. It resolves router identities,
// keeps the daily energy ledger, detects deficit streaks, clusters units into
// locations and scores unit health, all over state written by the pollers.
package fleet

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
	"liyu1981.xyz/trailer-fleet-service/pkg/clients"
	"liyu1981.xyz/trailer-fleet-service/pkg/config"
	"liyu1981.xyz/trailer-fleet-service/pkg/geo"
	"liyu1981.xyz/trailer-fleet-service/pkg/models"
)

var (
	ErrCycleInProgress = errors.New("poll cycle already in progress")
	ErrUnknownLocation = errors.New("unknown location")
	ErrUnknownUnit     = errors.New("unknown unit")
)

//go:generate mockgen -destination=mocks/store.go -package=mocks . Store
//go:generate mockgen -destination=mocks/fetchers.go -package=mocks . SolarFetcher,RouterFetcher,WeatherFetcher,Geocoder,AlertPublisher
//go:generate mockgen -destination=mocks/services.go -package=mocks . IIdentity,IAlert,ICluster,IScorer

// Store is the persistence collaborator. *db.DB implements it.
type Store interface {
	LoadRouterBindings(ctx context.Context) ([]models.RouterBinding, error)
	UpsertRouterBinding(ctx context.Context, binding models.RouterBinding) error
	DeleteRouterBinding(ctx context.Context, routerID int64) error

	LoadDailyEnergy(ctx context.Context, since string) ([]models.DailyEnergy, error)
	UpsertDailyEnergy(ctx context.Context, day models.DailyEnergy) error

	LoadUnitGPS(ctx context.Context) ([]models.UnitGPS, error)
	UpsertUnitGPS(ctx context.Context, fix models.UnitGPS) error

	ListLocations(ctx context.Context) ([]models.Location, error)
	GetLocation(ctx context.Context, id uint) (*models.Location, error)
	CreateLocation(ctx context.Context, location *models.Location) error
	UpdateLocation(ctx context.Context, location *models.Location) error
	ListUnitLocations(ctx context.Context) ([]models.UnitLocation, error)
	AssignUnitLocation(ctx context.Context, assignment models.UnitLocation) error
	ClearManualOverride(ctx context.Context, unitID int64) error
}

type SolarFetcher interface {
	ListSites(ctx context.Context) ([]clients.Site, error)
	Diagnostics(ctx context.Context, siteID int64) ([]clients.DiagnosticRecord, error)
}

type RouterFetcher interface {
	ListDevices(ctx context.Context) ([]clients.RouterDevice, error)
	DeviceLocation(ctx context.Context, routerID int64) (*geo.Point, error)
}

type WeatherFetcher interface {
	Forecast(ctx context.Context, p geo.Point) (clients.WeatherSample, error)
}

type Geocoder interface {
	Reverse(ctx context.Context, p geo.Point) (clients.Place, error)
}

type AlertPublisher interface {
	Publish(ctx context.Context, alerts []models.DeficitAlert) error
}

type IIdentity interface {
	Resolve(ctx context.Context, device clients.RouterDevice, known []models.Unit) models.Resolution
	Link(ctx context.Context, routerID, unitID int64, routerName string) models.Resolution
	Unlink(ctx context.Context, routerID int64) bool
	Bindings() []models.RouterBinding
	Load(ctx context.Context) error
}

type ILedger interface {
	Record(unitID int64, displayName string, yieldTodayKwh, consumedAh, voltage, batterySoc *float64) models.LedgerDay
	Entries(unitID int64) []models.LedgerDay
	Units() []int64
	Seed(ctx context.Context) (int, error)
}

type IAlert interface {
	ComputeAlerts() []models.DeficitAlert
}

type ICluster interface {
	Cluster(ctx context.Context, thresholdMeters float64) (models.ClusterResult, error)
	Pin(ctx context.Context, unitID int64, locationID uint) error
	Unpin(ctx context.Context, unitID int64) error
	Locations(ctx context.Context) ([]models.LocationMembers, error)
}

type IScorer interface {
	Score(ctx context.Context, unitID int64) *models.Report
	ScoreAll(ctx context.Context) []models.Report
}

type Options struct {
	Store     Store
	Hardware  *config.Hardware
	Solar     SolarFetcher
	Routers   RouterFetcher
	Weather   WeatherFetcher
	Geocoder  Geocoder
	Publisher AlertPublisher
	Queue     *WriteQueue
	Limiters  *RateLimiterStore

	Location               *time.Location
	Poll                   config.PollConfig
	ClusterThresholdMeters float64
	WeatherCacheTTL        time.Duration
	GeocoderInterval       time.Duration

	// AcceptZeroFix keeps 0,0 GPS fixes. They are dropped by default since
	// trackers without a lock report them.
	AcceptZeroFix bool

	// Now overrides the clock, tests only.
	Now func() time.Time
}

type Fleet struct {
	Store     Store
	Hardware  *config.Hardware
	Solar     SolarFetcher
	Routers   RouterFetcher
	Weather   WeatherFetcher
	Geocoder  Geocoder
	Publisher AlertPublisher
	Queue     *WriteQueue
	Limiters  *RateLimiterStore

	Identity IIdentity
	Ledger   ILedger
	Alert    IAlert
	Cluster  ICluster
	Scorer   IScorer

	loc              *time.Location
	now              func() time.Time
	poll             config.PollConfig
	clusterThreshold float64
	acceptZeroFix    bool

	// clusterMu serializes clustering passes and pin changes.
	clusterMu sync.Mutex

	// ingestMu keeps a unit's snapshot and its ledger day in step.
	ingestMu  sync.RWMutex
	units     *unitDirectory
	snapshots *snapshotCache
	gps       *gpsCache
	routers   *routerStatusCache
	weather   *weatherCache
	identity  *identityState
	ledger    *ledgerState

	solarRunning  atomic.Bool
	routerRunning atomic.Bool
	clusteredOnce atomic.Bool
}

type ServiceOpts struct {
	Identity IIdentity
	Ledger   ILedger
	Alert    IAlert
	Cluster  ICluster
	Scorer   IScorer
}

const (
	defaultClusterThresholdMeters = 300.0
	defaultWeatherCacheTTL        = time.Hour
	defaultGeocoderInterval       = 1100 * time.Millisecond
	geocoderLimiterKey            = "geocoder"
)

func New(opts Options) *Fleet {
	f := &Fleet{
		Store:     opts.Store,
		Hardware:  opts.Hardware,
		Solar:     opts.Solar,
		Routers:   opts.Routers,
		Weather:   opts.Weather,
		Geocoder:  opts.Geocoder,
		Publisher: opts.Publisher,
		Queue:     opts.Queue,
		Limiters:  opts.Limiters,

		loc:              opts.Location,
		now:              opts.Now,
		poll:             opts.Poll,
		clusterThreshold: opts.ClusterThresholdMeters,
		acceptZeroFix:    opts.AcceptZeroFix,

		units:     newUnitDirectory(),
		snapshots: newSnapshotCache(),
		gps:       newGPSCache(),
		routers:   newRouterStatusCache(),
		identity:  newIdentityState(),
		ledger:    newLedgerState(),
	}

	if f.loc == nil {
		f.loc = time.Local
	}
	if f.now == nil {
		f.now = time.Now
	}
	if f.Hardware == nil {
		f.Hardware = config.NewHardware(config.DefaultHardwareSpec)
	}
	if f.clusterThreshold <= 0 {
		f.clusterThreshold = defaultClusterThresholdMeters
	}
	if f.Limiters == nil {
		f.Limiters = NewRateLimiterStore(rate.Inf, 1)
	}

	interval := opts.GeocoderInterval
	if interval <= 0 {
		interval = defaultGeocoderInterval
	}
	f.Limiters.SetLimiter(geocoderLimiterKey, rate.Every(interval), 1)

	ttl := opts.WeatherCacheTTL
	if ttl <= 0 {
		ttl = defaultWeatherCacheTTL
	}
	f.weather = newWeatherCache(ttl)

	return f.WithServices(ServiceOpts{
		Identity: f.GetIIdentity(),
		Ledger:   f.GetILedger(),
		Alert:    f.GetIAlert(),
		Cluster:  f.GetICluster(),
		Scorer:   f.GetIScorer(),
	})
}

func (f *Fleet) WithServices(opts ServiceOpts) *Fleet {
	if opts.Identity != nil {
		f.Identity = opts.Identity
	}
	if opts.Ledger != nil {
		f.Ledger = opts.Ledger
	}
	if opts.Alert != nil {
		f.Alert = opts.Alert
	}
	if opts.Cluster != nil {
		f.Cluster = opts.Cluster
	}
	if opts.Scorer != nil {
		f.Scorer = opts.Scorer
	}
	return f
}

// GetSnapshot returns the latest snapshot of a unit.
func (f *Fleet) GetSnapshot(unitID int64) (models.Snapshot, bool) {
	f.ingestMu.RLock()
	defer f.ingestMu.RUnlock()
	return f.snapshots.Get(unitID)
}

func (f *Fleet) GetLedger(unitID int64) []models.LedgerDay {
	f.ingestMu.RLock()
	defer f.ingestMu.RUnlock()
	return f.Ledger.Entries(unitID)
}

func (f *Fleet) GetUnit(unitID int64) (models.Unit, bool) {
	return f.units.Get(unitID)
}

// UnitView is a directory entry as served to readers.
type UnitView struct {
	models.Unit
	Snapshot     *models.Snapshot     `json:"snapshot"`
	GPS          *geo.Point           `json:"gps"`
	GPSSource    models.GPSSource     `json:"gpsSource,omitempty"`
	Connectivity *models.RouterStatus `json:"connectivity"`
}

func (f *Fleet) ListUnits() []UnitView {
	units := f.units.List()
	views := make([]UnitView, 0, len(units))

	f.ingestMu.RLock()
	defer f.ingestMu.RUnlock()

	for _, u := range units {
		view := UnitView{Unit: u}
		if snap, ok := f.snapshots.Get(u.ID); ok {
			view.Snapshot = &snap
		}
		if fix, ok := f.gps.Get(u.ID); ok {
			view.GPS = &fix.Point
			view.GPSSource = fix.Source
		}
		if status, ok := f.routers.Get(u.ID); ok {
			view.Connectivity = &status
		}
		views = append(views, view)
	}
	return views
}

// LoadState restores identity bindings, GPS fixes and ledger history from
// the store. Failures are returned but leave the in-memory state usable.
func (f *Fleet) LoadState(ctx context.Context) error {
	var errs []error

	if err := f.Identity.Load(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := f.loadGPS(ctx); err != nil {
		errs = append(errs, err)
	}
	if _, err := f.Ledger.Seed(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (f *Fleet) today() string {
	return f.now().In(f.loc).Format(DateLayout)
}
