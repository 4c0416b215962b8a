package loader

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"tlb-scheduler/internal/domain"
)

type meeting struct {
	day   domain.Day
	start domain.TimeOfDay
	end   domain.TimeOfDay
	mode  domain.Mode
}

// extractMeeting parses one "Day HH[-HH] (weeks, location)" clause.
// A bare hour means a one hour meeting; an "Online" location selects
// online mode, anything else is face to face.
func extractMeeting(raw string) (meeting, error) {
	var m meeting

	beforeParen, afterParen, ok := strings.Cut(raw, " (")
	if !ok {
		return m, fmt.Errorf("bad meeting %q", raw)
	}
	dayRaw, timeRaw, ok := strings.Cut(beforeParen, " ")
	if !ok {
		return m, fmt.Errorf("bad meeting %q", raw)
	}
	inParens, ok := strings.CutSuffix(afterParen, ")")
	if !ok {
		return m, fmt.Errorf("bad meeting %q", raw)
	}
	_, location, ok := strings.Cut(inParens, ", ")
	if !ok {
		return m, fmt.Errorf("bad meeting %q", raw)
	}

	day, err := domain.ParseDay(dayRaw)
	if err != nil {
		return m, fmt.Errorf("bad meeting %q: %w", raw, err)
	}

	var start, end domain.TimeOfDay
	if startRaw, endRaw, ranged := strings.Cut(timeRaw, "-"); ranged {
		if start, err = domain.ParseTimeOfDay(startRaw); err != nil {
			return m, fmt.Errorf("bad meeting %q: %w", raw, err)
		}
		if end, err = domain.ParseTimeOfDay(endRaw); err != nil {
			return m, fmt.Errorf("bad meeting %q: %w", raw, err)
		}
	} else {
		if start, err = domain.ParseTimeOfDay(timeRaw); err != nil {
			return m, fmt.Errorf("bad meeting %q: %w", raw, err)
		}
		if uint8(start)+1 >= domain.HoursPerDay {
			return m, fmt.Errorf("bad meeting %q: meeting leaves the day", raw)
		}
		end = start.AddHr(1)
	}

	mode := domain.F2F
	if strings.EqualFold(location, "online") {
		mode = domain.Online
	}

	return meeting{day: day, start: start, end: end, mode: mode}, nil
}

// extractAndCheckMeetings parses the two-meeting times cell and checks
// the tut+lab shape: same day, tut exactly one hour, lab immediately
// after for two hours, same mode.
func extractAndCheckMeetings(times, className string) (domain.Day, domain.TimeOfDay, domain.Mode, error) {
	fail := func(msg string) (domain.Day, domain.TimeOfDay, domain.Mode, error) {
		return 0, 0, 0, fmt.Errorf("problem with class %s: %s", className, msg)
	}

	meetings := strings.Split(times, "; ")
	if len(meetings) != 2 {
		return fail(fmt.Sprintf("class time %q doesn't have two meetings", times))
	}

	tut, err := extractMeeting(meetings[0])
	if err != nil {
		return fail(fmt.Sprintf("bad tutorial meeting: %v", err))
	}
	lab, err := extractMeeting(meetings[1])
	if err != nil {
		return fail(fmt.Sprintf("bad lab meeting: %v", err))
	}

	switch {
	case tut.day != lab.day:
		return fail("mismatch between tut and lab days")
	case int(tut.start)+int(domain.TutDurationHours) != int(tut.end):
		return fail("tut is the wrong length")
	case tut.end != lab.start:
		return fail("lab is not immediately after tut")
	case int(lab.start)+int(domain.LabDurationHours) != int(lab.end):
		return fail("lab is the wrong length")
	case lab.mode != tut.mode:
		return fail("tut and lab mode disagree")
	}

	return tut.day, tut.start, tut.mode, nil
}

func classFromRow(row Row, tsv *Tsv) (domain.Class, error) {
	var class domain.Class

	section, err := row.Get("section")
	if err != nil {
		return class, err
	}
	name := strings.TrimSpace(section)

	classType, err := row.Get("type")
	if err != nil {
		return class, err
	}
	if strings.TrimSpace(classType) != "TLB" {
		return class, fmt.Errorf("problem with class %s: bad class type %q, expected \"TLB\"", name, classType)
	}

	status, err := row.Get("status")
	if err != nil {
		return class, err
	}
	if trimmed := strings.TrimSpace(status); trimmed != "Open" && trimmed != "Full" {
		return class, fmt.Errorf("problem with class %s: bad class status %q, either manually change to \"Open\" or remove it", name, status)
	}

	times, err := row.Get("times")
	if err != nil {
		return class, err
	}
	day, start, mode, err := extractAndCheckMeetings(strings.TrimSpace(times), name)
	if err != nil {
		return class, err
	}

	ignoreTut, err := optionalFlag(row, tsv, "ignore tut")
	if err != nil {
		return class, fmt.Errorf("problem with class %s: %w", name, err)
	}
	ignoreLab, err := optionalFlag(row, tsv, "ignore lab")
	if err != nil {
		return class, fmt.Errorf("problem with class %s: %w", name, err)
	}

	return domain.Class{
		Name:      name,
		Day:       day,
		Start:     start,
		Mode:      mode,
		IgnoreTut: ignoreTut,
		IgnoreLab: ignoreLab,
	}, nil
}

// LoadClasses reads classes.tsv, accumulating independent row errors.
func LoadClasses(path string) ([]domain.Class, error) {
	tsv, err := ReadTsv(path)
	if err != nil {
		return nil, err
	}

	var classes []domain.Class
	var errs error

	for _, row := range tsv.Rows() {
		class, err := classFromRow(row, tsv)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		classes = append(classes, class)
	}

	if errs != nil {
		return nil, errs
	}
	return classes, nil
}
