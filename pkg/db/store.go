package db

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"liyu1981.xyz/trailer-fleet-service/pkg/common"
	"liyu1981.xyz/trailer-fleet-service/pkg/models"
)

// The methods below make *DB the persistence collaborator of the fleet core.

func (d *DB) LoadRouterBindings(ctx context.Context) ([]models.RouterBinding, error) {
	var bindings []models.RouterBinding
	err := d.Conn.WithContext(ctx).Order("router_id").Find(&bindings).Error
	return bindings, err
}

// UpsertRouterBinding stores the binding and drops any other router that
// pointed at the same unit, last writer wins.
func (d *DB) UpsertRouterBinding(ctx context.Context, binding models.RouterBinding) error {
	logger := common.GetCategoryLogger(common.LoggerNameStore, common.LoggerCategoryIdentity)

	err := d.Conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("unit_id = ? AND router_id <> ?", binding.UnitID, binding.RouterID).
			Delete(&models.RouterBinding{}).Error; err != nil {
			return err
		}

		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "router_id"}},
			UpdateAll: true,
		}).Create(&binding).Error
	})

	if err == nil {
		logger.Info("Upserted router binding", zap.Reflect("binding", binding))
	}
	return err
}

func (d *DB) DeleteRouterBinding(ctx context.Context, routerID int64) error {
	return d.Conn.WithContext(ctx).Delete(&models.RouterBinding{}, "router_id = ?", routerID).Error
}

// LoadDailyEnergy returns every stored day on or after since (2006-01-02).
func (d *DB) LoadDailyEnergy(ctx context.Context, since string) ([]models.DailyEnergy, error) {
	var days []models.DailyEnergy
	err := d.Conn.WithContext(ctx).
		Where("date >= ?", since).
		Order("unit_id, date").
		Find(&days).Error
	return days, err
}

func (d *DB) UpsertDailyEnergy(ctx context.Context, day models.DailyEnergy) error {
	return d.Conn.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "unit_id"}, {Name: "date"}},
		UpdateAll: true,
	}).Create(&day).Error
}

func (d *DB) LoadUnitGPS(ctx context.Context) ([]models.UnitGPS, error) {
	var fixes []models.UnitGPS
	err := d.Conn.WithContext(ctx).Order("unit_id").Find(&fixes).Error
	return fixes, err
}

func (d *DB) UpsertUnitGPS(ctx context.Context, fix models.UnitGPS) error {
	return d.Conn.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "unit_id"}},
		UpdateAll: true,
	}).Create(&fix).Error
}

func (d *DB) ListLocations(ctx context.Context) ([]models.Location, error) {
	var locations []models.Location
	err := d.Conn.WithContext(ctx).Order("id").Find(&locations).Error
	return locations, err
}

// GetLocation returns nil without error when the location does not exist.
func (d *DB) GetLocation(ctx context.Context, id uint) (*models.Location, error) {
	var location models.Location
	err := d.Conn.WithContext(ctx).First(&location, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &location, nil
}

func (d *DB) CreateLocation(ctx context.Context, location *models.Location) error {
	return d.Conn.WithContext(ctx).Create(location).Error
}

func (d *DB) UpdateLocation(ctx context.Context, location *models.Location) error {
	return d.Conn.WithContext(ctx).Save(location).Error
}

func (d *DB) ListUnitLocations(ctx context.Context) ([]models.UnitLocation, error) {
	var assignments []models.UnitLocation
	err := d.Conn.WithContext(ctx).Order("unit_id").Find(&assignments).Error
	return assignments, err
}

func (d *DB) AssignUnitLocation(ctx context.Context, assignment models.UnitLocation) error {
	assignment.Location = nil
	return d.Conn.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "unit_id"}},
		UpdateAll: true,
	}).Create(&assignment).Error
}

func (d *DB) ClearManualOverride(ctx context.Context, unitID int64) error {
	return d.Conn.WithContext(ctx).
		Model(&models.UnitLocation{}).
		Where("unit_id = ?", unitID).
		Update("manual_override", false).Error
}
