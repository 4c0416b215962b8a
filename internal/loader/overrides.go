package loader

import (
	"fmt"

	"tlb-scheduler/internal/availability"
	"tlb-scheduler/internal/domain"
)

// LoadOverrides reads overrides.tsv into override rows; matching and
// application live with the availability matrix.
func LoadOverrides(path string) ([]availability.Override, error) {
	tsv, err := ReadTsv(path)
	if err != nil {
		return nil, err
	}

	var overrides []availability.Override
	for _, row := range tsv.Rows() {
		name, err := row.Get("name")
		if err != nil {
			return nil, err
		}
		zid, err := row.Get("zid")
		if err != nil {
			return nil, err
		}
		class, err := row.Get("class")
		if err != nil {
			return nil, err
		}
		classType, err := row.Get("type")
		if err != nil {
			return nil, err
		}
		rawValue, err := row.Get("override")
		if err != nil {
			return nil, err
		}

		value, err := domain.ParseAvailability(rawValue)
		if err != nil {
			return nil, fmt.Errorf("bad availability for override %s: %w", name, err)
		}

		overrides = append(overrides, availability.Override{
			Name:  name,
			Zid:   zid,
			Class: class,
			Type:  classType,
			Value: value,
		})
	}

	return overrides, nil
}
