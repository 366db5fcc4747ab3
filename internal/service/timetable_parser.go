package service

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/KaushikNaik2/Schedulix/internal/dto"
	"github.com/KaushikNaik2/Schedulix/internal/model"
)

// ── timetable workbook format errors ──

var (
	ErrTimetableUnreadable    = errors.New("timetable workbook cannot be read")
	ErrTimetableMissingHeader = errors.New("timetable workbook has no header row")
	ErrTimetableNoDayColumns  = errors.New("timetable header must name at least one day column (MONDAY, TUESDAY, ...)")
)

// ErrTimeRangeFormat the first column of a data row is not "H:mm-H:mm"
var ErrTimeRangeFormat = errors.New("invalid time range")

// ── time slot parsing ──

// ParseTimeRange parses "9:30-10:30" (spaces around "-" allowed) into
// normalised "HH:MM" bounds. Exactly one "-" is accepted and start must be before end.
func ParseTimeRange(raw string) (start, end string, err error) {
	parts := strings.Split(strings.TrimSpace(raw), "-")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("%w %q: expected exactly one '-'", ErrTimeRangeFormat, raw)
	}

	from, err := parseClock(parts[0])
	if err != nil {
		return "", "", fmt.Errorf("%w %q: %v", ErrTimeRangeFormat, raw, err)
	}
	to, err := parseClock(parts[1])
	if err != nil {
		return "", "", fmt.Errorf("%w %q: %v", ErrTimeRangeFormat, raw, err)
	}
	if from >= to {
		return "", "", fmt.Errorf("%w %q: start must be before end", ErrTimeRangeFormat, raw)
	}

	return model.FormatClock(from), model.FormatClock(to), nil
}

// parseClock 24h H:mm into minutes since midnight
func parseClock(s string) (int, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("%q is not H:mm", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ParseSubjectCell splits "ADSA (Room 201)" into subject and location.
// The last "(" and the last ")" delimit the location when ")" follows "(";
// the subject is whatever remains outside that span. Blank cells yield ok=false.
func ParseSubjectCell(raw string) (subject string, location *string, ok bool) {
	cell := strings.TrimSpace(raw)
	if cell == "" {
		return "", nil, false
	}

	open := strings.LastIndex(cell, "(")
	closing := strings.LastIndex(cell, ")")
	if open < 0 || closing < open {
		return cell, nil, true
	}

	subject = strings.TrimSpace(cell[:open] + cell[closing+1:])
	if loc := strings.TrimSpace(cell[open+1 : closing]); loc != "" {
		location = &loc
	}
	return subject, location, true
}

// ── workbook ingestion ──

// ParsedTimetable entries extracted from a workbook plus the rows that were dropped
type ParsedTimetable struct {
	Entries []model.TimetableEntry
	Skipped []dto.SkippedRow
}

// subjectCellParser splits each day cell of a data row
var subjectCellParser = ParseSubjectCell

// dayColumn one header cell naming a day
type dayColumn struct {
	index int
	day   model.DayOfWeek
}

// ParseTimetableWorkbook reads the first sheet of an .xlsx timetable.
// Row 1 maps columns to days; every later row starts with a time range and
// carries one subject cell per day column. Workbook-level problems are
// returned as errors; row-level problems become Skipped diagnostics.
func ParseTimetableWorkbook(r io.Reader, facultyID string) (*ParsedTimetable, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTimetableUnreadable, err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTimetableUnreadable, err)
	}
	if len(rows) == 0 {
		return nil, ErrTimetableMissingHeader
	}

	columns := parseDayColumns(rows[0])
	if len(columns) == 0 {
		return nil, ErrTimetableNoDayColumns
	}

	parsed := &ParsedTimetable{
		Entries: []model.TimetableEntry{},
		Skipped: []dto.SkippedRow{},
	}
	for i := 1; i < len(rows); i++ {
		if isBlankRow(rows[i]) {
			continue
		}
		rowNum := i + 1
		entries, err := parseTimetableRow(rows[i], columns, facultyID, len(parsed.Entries))
		if err != nil {
			parsed.Skipped = append(parsed.Skipped, dto.SkippedRow{Row: rowNum, Reason: err.Error()})
			continue
		}
		parsed.Entries = append(parsed.Entries, entries...)
	}

	return parsed, nil
}

// parseDayColumns maps header cells that name a day, in column order
func parseDayColumns(header []string) []dayColumn {
	var columns []dayColumn
	for idx, text := range header {
		if day, ok := model.ParseDayOfWeek(text); ok {
			columns = append(columns, dayColumn{index: idx, day: day})
		}
	}
	return columns
}

// parseTimetableRow turns one data row into entries. A panic while reading the
// row is converted into an error so the row is skipped on its own.
func parseTimetableRow(row []string, columns []dayColumn, facultyID string, position int) (entries []model.TimetableEntry, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			entries = nil
			err = fmt.Errorf("unexpected error: %v", rec)
		}
	}()

	if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
		return nil, fmt.Errorf("%w: missing time slot in first column", ErrTimeRangeFormat)
	}
	start, end, err := ParseTimeRange(row[0])
	if err != nil {
		return nil, err
	}

	for _, col := range columns {
		if col.index >= len(row) {
			continue
		}
		subject, location, ok := subjectCellParser(row[col.index])
		if !ok {
			continue
		}
		entries = append(entries, model.TimetableEntry{
			FacultyID: facultyID,
			Day:       col.day,
			StartTime: start,
			EndTime:   end,
			Subject:   subject,
			Location:  location,
			Position:  position + len(entries),
		})
	}
	return entries, nil
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
