package fleet

import (
	"sort"
	"time"

	"go.uber.org/zap"
	"liyu1981.xyz/trailer-fleet-service/pkg/common"
	"liyu1981.xyz/trailer-fleet-service/pkg/models"
)

const minAlertStreak = 2

// deficitStreak walks days (oldest first) backwards from the entry before
// today. The streak ends at the first date that is not exactly one day
// before the previous one, or whose values are unknown or not in deficit.
func deficitStreak(days []models.LedgerDay, today string) []models.DeficitDay {
	var streak []models.DeficitDay
	var expect time.Time

	for i := len(days) - 1; i >= 0; i-- {
		day := days[i]
		if day.Date >= today {
			continue
		}

		date, err := time.Parse(DateLayout, day.Date)
		if err != nil {
			break
		}
		if len(streak) > 0 && !date.Equal(expect) {
			break
		}
		if day.YieldWh == nil || day.ConsumedWh == nil || *day.YieldWh >= *day.ConsumedWh {
			break
		}

		streak = append(streak, models.DeficitDay{
			Date:       day.Date,
			YieldWh:    common.Round(*day.YieldWh, 0),
			ConsumedWh: common.Round(*day.ConsumedWh, 0),
			DeficitWh:  common.Round(*day.ConsumedWh-*day.YieldWh, 0),
		})
		expect = date.AddDate(0, 0, -1)
	}
	return streak
}

func (f *Fleet) computeAlerts() []models.DeficitAlert {
	today := f.today()

	alerts := []models.DeficitAlert{}
	for _, unitID := range f.Ledger.Units() {
		days := f.Ledger.Entries(unitID)
		streak := deficitStreak(days, today)
		if len(streak) < minAlertStreak {
			continue
		}

		name := ""
		if unit, ok := f.units.Get(unitID); ok {
			name = unit.Name
		}
		if name == "" && len(days) > 0 {
			name = days[len(days)-1].DisplayName
		}

		alerts = append(alerts, models.DeficitAlert{
			UnitID:      unitID,
			DisplayName: name,
			StreakDays:  len(streak),
			Severity:    models.SeverityForStreak(len(streak)),
			DeficitDays: streak,
		})
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		if alerts[i].StreakDays != alerts[j].StreakDays {
			return alerts[i].StreakDays > alerts[j].StreakDays
		}
		return alerts[i].UnitID < alerts[j].UnitID
	})

	if len(alerts) > 0 {
		common.GetCategoryLogger(common.LoggerNameFleetCore, common.LoggerCategoryAlert).
			Debug("Computed deficit alerts", zap.Int("count", len(alerts)))
	}
	return alerts
}

type IAlertImpl struct {
	fleet *Fleet
}

func (ia *IAlertImpl) ComputeAlerts() []models.DeficitAlert {
	return ia.fleet.computeAlerts()
}

func (f *Fleet) GetIAlert() IAlert {
	return &IAlertImpl{fleet: f}
}
