package loader

import (
	"fmt"
	"strconv"

	"go.uber.org/multierr"

	"tlb-scheduler/internal/domain"
)

func parseRequirementField(row Row, zid, field string) (uint8, error) {
	raw, err := row.Get(field)
	if err != nil {
		return 0, err
	}
	value, err := strconv.ParseUint(raw, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("bad class requirement for %s's %s: %w", zid, field, err)
	}
	return uint8(value), nil
}

func parseRequirement(row Row, zid string, tsv *Tsv) (domain.ClassTypeRequirement, error) {
	var req domain.ClassTypeRequirement
	var err error

	if req.MinTutes, err = parseRequirementField(row, zid, "minT"); err != nil {
		return req, err
	}
	if req.MaxTutes, err = parseRequirementField(row, zid, "maxT"); err != nil {
		return req, err
	}
	if req.MinLabAssists, err = parseRequirementField(row, zid, "minA"); err != nil {
		return req, err
	}
	if req.MaxLabAssists, err = parseRequirementField(row, zid, "maxA"); err != nil {
		return req, err
	}

	// minC/maxC default to the component sums when the sheet doesn't
	// carry the columns.
	if tsv.HasColumn("minC") {
		if req.MinTotal, err = parseRequirementField(row, zid, "minC"); err != nil {
			return req, err
		}
	} else {
		req.MinTotal = req.MinTutes + req.MinLabAssists
	}
	if tsv.HasColumn("maxC") {
		if req.MaxTotal, err = parseRequirementField(row, zid, "maxC"); err != nil {
			return req, err
		}
	} else {
		req.MaxTotal = req.MaxTutes + req.MaxLabAssists
	}

	return req, nil
}

func parseSeniority(row Row, tsv *Tsv) (*domain.TutorSeniority, error) {
	hasSenior := tsv.HasColumn("senior tutor")
	hasNew := tsv.HasColumn("new tutor")

	if !hasSenior && !hasNew {
		return nil, nil
	}
	if hasSenior != hasNew {
		return nil, fmt.Errorf("instructors sheet has only one of the \"senior tutor\"/\"new tutor\" columns")
	}

	seniorRaw, err := row.Get("senior tutor")
	if err != nil {
		return nil, err
	}
	newRaw, err := row.Get("new tutor")
	if err != nil {
		return nil, err
	}

	isSenior, err := domain.ParseBool(seniorRaw)
	if err != nil {
		return nil, err
	}
	isNew, err := domain.ParseBool(newRaw)
	if err != nil {
		return nil, err
	}

	return &domain.TutorSeniority{IsSeniorTutor: isSenior, IsNewTutor: isNew}, nil
}

// optionalFlag reads a boolean column that may be absent; an empty
// cell reads as false.
func optionalFlag(row Row, tsv *Tsv, column string) (bool, error) {
	if !tsv.HasColumn(column) {
		return false, nil
	}
	raw, err := row.Get(column)
	if err != nil {
		return false, err
	}
	if raw == "" {
		return false, nil
	}
	return domain.ParseBool(raw)
}

// LoadInstructors reads instructors.tsv. Rows flagged in an "ignore"
// column are dropped; the survivors get dense contiguous ids. Errors
// from independent rows are accumulated so one pass reports them all.
func LoadInstructors(path string) ([]domain.Instructor, error) {
	tsv, err := ReadTsv(path)
	if err != nil {
		return nil, err
	}

	var instructors []domain.Instructor
	var errs error

	for _, row := range tsv.Rows() {
		name, err := row.Get("name")
		if err != nil {
			return nil, err
		}
		zid, err := row.Get("zid")
		if err != nil {
			return nil, err
		}

		ignored, err := optionalFlag(row, tsv, "ignore")
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("bad ignore flag for %s: %w", zid, err))
			continue
		}
		if ignored {
			continue
		}

		requirement, err := parseRequirement(row, zid, tsv)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}

		seniority, err := parseSeniority(row, tsv)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}

		instructors = append(instructors, domain.Instructor{
			ID:          domain.InstructorID(len(instructors)),
			Name:        name,
			Zid:         zid,
			Requirement: requirement,
			Seniority:   seniority,
		})
	}

	if errs != nil {
		return nil, errs
	}
	return instructors, nil
}
