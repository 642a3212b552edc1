package fleet

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"
	"liyu1981.xyz/trailer-fleet-service/pkg/clients"
	"liyu1981.xyz/trailer-fleet-service/pkg/common"
	"liyu1981.xyz/trailer-fleet-service/pkg/models"
)

type identityState struct {
	mu       sync.RWMutex
	bindings map[int64]models.RouterBinding
	byUnit   map[int64]int64
}

func newIdentityState() *identityState {
	return &identityState{
		bindings: make(map[int64]models.RouterBinding),
		byUnit:   make(map[int64]int64),
	}
}

// bind records routerID -> unitID and reports whether anything changed. A
// router that pointed at unitID before is unbound, last writer wins.
func (s *identityState) bind(routerID, unitID int64, routerName string) (models.RouterBinding, bool) {
	current, exists := s.bindings[routerID]
	if exists && current.UnitID == unitID && current.RouterName == routerName {
		return current, false
	}

	if exists && current.UnitID != unitID {
		delete(s.byUnit, current.UnitID)
	}
	if previous, taken := s.byUnit[unitID]; taken && previous != routerID {
		delete(s.bindings, previous)
	}

	binding := models.RouterBinding{RouterID: routerID, UnitID: unitID, RouterName: routerName}
	s.bindings[routerID] = binding
	s.byUnit[unitID] = routerID
	return binding, true
}

// free reports whether unitID can be bound to routerID without taking it
// from another router.
func (s *identityState) free(unitID, routerID int64) bool {
	owner, taken := s.byUnit[unitID]
	return !taken || owner == routerID
}

func (f *Fleet) resolve(ctx context.Context, device clients.RouterDevice, known []models.Unit) models.Resolution {
	logger := common.GetCategoryLogger(common.LoggerNameFleetCore, common.LoggerCategoryIdentity)

	names := make(map[int64]string, len(known))
	for _, u := range known {
		names[u.ID] = u.Name
	}

	var (
		resolution models.Resolution
		binding    models.RouterBinding
		changed    bool
		how        string
	)

	f.identity.mu.Lock()
	if existing, ok := f.identity.bindings[device.ID]; ok {
		how = "binding"
		resolution = models.Resolution{UnitID: existing.UnitID, DisplayName: device.Name}
		if name := names[existing.UnitID]; name != "" {
			resolution.DisplayName = name
		}
		binding, changed = f.identity.bind(device.ID, existing.UnitID, device.Name)
	} else if unit, ok := matchByName(device.Name, known); ok && f.identity.free(unit.ID, device.ID) {
		// only a manual link moves a unit away from the router bound to it
		how = "name"
		resolution = models.Resolution{UnitID: unit.ID, DisplayName: unit.Name}
		binding, changed = f.identity.bind(device.ID, unit.ID, device.Name)
	} else {
		how = "synthetic"
		resolution = models.Resolution{UnitID: -device.ID, DisplayName: device.Name}
		binding, changed = f.identity.bind(device.ID, -device.ID, device.Name)
	}
	f.identity.mu.Unlock()

	if changed {
		logger.Info("Resolved router",
			zap.Int64("router_id", device.ID),
			zap.String("router_name", device.Name),
			zap.String("resolved_by", how),
			zap.Reflect("resolution", resolution),
		)
		f.persistBinding(ctx, binding)
	}
	return resolution
}

func matchByName(name string, known []models.Unit) (models.Unit, bool) {
	if name == "" {
		return models.Unit{}, false
	}
	for _, u := range known {
		if u.Name == name {
			return u, true
		}
	}
	return models.Unit{}, false
}

// persistBinding is best effort. The in-memory binding stays authoritative.
func (f *Fleet) persistBinding(ctx context.Context, binding models.RouterBinding) {
	if f.Store == nil {
		return
	}
	if err := f.Store.UpsertRouterBinding(ctx, binding); err != nil {
		common.GetCategoryLogger(common.LoggerNameFleetCore, common.LoggerCategoryIdentity).
			Warn("Failed to persist router binding", zap.Reflect("binding", binding), zap.Error(err))
	}
}

func (f *Fleet) link(ctx context.Context, routerID, unitID int64, routerName string) models.Resolution {
	f.identity.mu.Lock()
	if routerName == "" {
		routerName = f.identity.bindings[routerID].RouterName
	}
	binding, changed := f.identity.bind(routerID, unitID, routerName)
	f.identity.mu.Unlock()

	resolution := models.Resolution{UnitID: unitID, DisplayName: routerName}
	if unit, ok := f.units.Get(unitID); ok && unit.Name != "" {
		resolution.DisplayName = unit.Name
	}

	if changed {
		common.GetCategoryLogger(common.LoggerNameFleetCore, common.LoggerCategoryIdentity).
			Info("Linked router manually", zap.Reflect("binding", binding))
		f.persistBinding(ctx, binding)
	}
	return resolution
}

func (f *Fleet) unlink(ctx context.Context, routerID int64) bool {
	f.identity.mu.Lock()
	binding, ok := f.identity.bindings[routerID]
	if ok {
		delete(f.identity.bindings, routerID)
		delete(f.identity.byUnit, binding.UnitID)
	}
	f.identity.mu.Unlock()

	if !ok {
		return false
	}
	if f.Store != nil {
		if err := f.Store.DeleteRouterBinding(ctx, routerID); err != nil {
			common.GetCategoryLogger(common.LoggerNameFleetCore, common.LoggerCategoryIdentity).
				Warn("Failed to delete router binding", zap.Int64("router_id", routerID), zap.Error(err))
		}
	}
	return true
}

func (f *Fleet) bindings() []models.RouterBinding {
	f.identity.mu.RLock()
	defer f.identity.mu.RUnlock()

	bindings := make([]models.RouterBinding, 0, len(f.identity.bindings))
	for _, b := range f.identity.bindings {
		bindings = append(bindings, b)
	}
	sort.Slice(bindings, func(i, j int) bool { return bindings[i].RouterID < bindings[j].RouterID })
	return bindings
}

func (f *Fleet) loadBindings(ctx context.Context) error {
	if f.Store == nil {
		return nil
	}
	logger := common.GetCategoryLogger(common.LoggerNameFleetCore, common.LoggerCategoryIdentity)

	rows, err := f.Store.LoadRouterBindings(ctx)
	if err != nil {
		logger.Error("Failed to load router bindings", zap.Error(err))
		return err
	}

	f.identity.mu.Lock()
	for _, row := range rows {
		f.identity.bind(row.RouterID, row.UnitID, row.RouterName)
	}
	f.identity.mu.Unlock()

	logger.Info("Loaded router bindings", zap.Int("count", len(rows)))
	return nil
}

type IIdentityImpl struct {
	fleet *Fleet
}

func (ii *IIdentityImpl) Resolve(ctx context.Context, device clients.RouterDevice, known []models.Unit) models.Resolution {
	return ii.fleet.resolve(ctx, device, known)
}

func (ii *IIdentityImpl) Link(ctx context.Context, routerID, unitID int64, routerName string) models.Resolution {
	return ii.fleet.link(ctx, routerID, unitID, routerName)
}

func (ii *IIdentityImpl) Unlink(ctx context.Context, routerID int64) bool {
	return ii.fleet.unlink(ctx, routerID)
}

func (ii *IIdentityImpl) Bindings() []models.RouterBinding {
	return ii.fleet.bindings()
}

func (ii *IIdentityImpl) Load(ctx context.Context) error {
	return ii.fleet.loadBindings(ctx)
}

func (f *Fleet) GetIIdentity() IIdentity {
	return &IIdentityImpl{fleet: f}
}
