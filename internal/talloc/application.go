// Package talloc models instructor applications: a per-instructor grid
// of availabilities for every (day, hour) cell of the week, fetched
// from the talloc service or a local cache.
package talloc

import (
	"encoding/json"
	"fmt"
	"strconv"

	"tlb-scheduler/internal/domain"
)

const zidField = "zid"

// Application is one instructor's hour grid. Each cell key is
// "<short-day><two-digit-hour>" ("mon09", "fri14") and holds a decimal
// string whose low two bits encode the face-to-face availability and
// next two bits the online availability.
type Application struct {
	cells     map[string]string
	isDefault bool
}

// defaultApplication is the all-Impossible grid substituted for
// instructors with no application when missing ones are tolerated.
var defaultApplication = Application{isDefault: true}

// IsDefault reports whether this is the substituted all-Impossible grid.
func (a Application) IsDefault() bool {
	return a.isDefault
}

func cellKey(day domain.Day, hour domain.TimeOfDay) string {
	return fmt.Sprintf("%s%02d", day.ShortName(), uint8(hour))
}

// Get looks up the availability of one (day, hour) cell under the
// given mode. The second result is false when the grid has no such
// cell, which the availability build treats as a malformed application.
func (a Application) Get(day domain.Day, hour domain.TimeOfDay, mode domain.Mode) (domain.Availability, bool) {
	if a.isDefault {
		return domain.Impossible, true
	}

	raw, ok := a.cells[cellKey(day, hour)]
	if !ok {
		return 0, false
	}

	packed, err := strconv.ParseUint(raw, 10, 8)
	if err != nil {
		return 0, false
	}

	if mode == domain.Online {
		return domain.Availability(packed >> 2 & 0b11), true
	}
	return domain.Availability(packed & 0b11), true
}

// Apps bundles every application keyed by zid.
type Apps struct {
	byZid           map[string]Application
	tolerateMissing bool
}

// Application returns the grid for a zid. When missing applications
// are tolerated an all-Impossible default is substituted; otherwise
// the lookup fails.
func (apps *Apps) Application(zid string) (Application, bool) {
	application, ok := apps.byZid[zid]
	if !ok && apps.tolerateMissing {
		return defaultApplication, true
	}
	return application, ok
}

// ParseApps decodes the JSON array of application objects.
func ParseApps(raw []byte, tolerateMissing bool) (*Apps, error) {
	var decoded []map[string]string
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("could not decode talloc response as json: %w", err)
	}

	byZid := make(map[string]Application, len(decoded))
	for i, fields := range decoded {
		zid, ok := fields[zidField]
		if !ok {
			return nil, fmt.Errorf("talloc application %d has no %s", i, zidField)
		}
		delete(fields, zidField)
		byZid[zid] = Application{cells: fields}
	}

	return &Apps{byZid: byZid, tolerateMissing: tolerateMissing}, nil
}
