package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/KaushikNaik2/Schedulix/internal/dto"
	"github.com/KaushikNaik2/Schedulix/internal/model"
	"github.com/KaushikNaik2/Schedulix/internal/repository"
)

// ── timetable errors ──

var (
	ErrTimetableNotFaculty   = errors.New("only faculty members own a timetable")
	ErrTimetableExportFailed = errors.New("failed to generate timetable file")
)

// ── TimetableService ──────────────────────────────────────
//
//   - ImportTimetable parses and validates the whole workbook before the
//     repository deletes anything; delete and insert share one transaction.
//   - Rows that cannot be parsed are reported in the response, not fatal.
//   - Exports write the upload format so a downloaded file can be re-uploaded.
// ─────────────────────────────────────────────────────────────

// TimetableService timetable upload, read and export
type TimetableService interface {
	// ImportTimetable replaces the faculty's timetable with the workbook contents
	ImportTimetable(ctx context.Context, facultyID string, r io.Reader) (*dto.ImportTimetableResponse, error)
	// GetTimetable lists the faculty's week ordered by day then start time
	GetTimetable(ctx context.Context, facultyID string) (*dto.TimetableResponse, error)
	// ExportXLSX renders the timetable in the upload format
	ExportXLSX(ctx context.Context, facultyID string) (*bytes.Buffer, string, error)
	// ExportICS renders the timetable as weekly recurring events
	ExportICS(ctx context.Context, facultyID string) ([]byte, string, error)
	// Template returns an empty upload workbook
	Template() (*bytes.Buffer, string, error)
}

type timetableService struct {
	repo   *repository.Repository
	days   *DayTimetables
	hours  *BusinessHours
	clock  Clock
	logger *zap.Logger
}

// NewTimetableService creates a TimetableService
func NewTimetableService(repo *repository.Repository, days *DayTimetables, hours *BusinessHours, clock Clock, logger *zap.Logger) TimetableService {
	return &timetableService{repo: repo, days: days, hours: hours, clock: clock, logger: logger}
}

// ════════════════════════════════════════════════════════════
// ImportTimetable
// ════════════════════════════════════════════════════════════
//
//   1. the owner must exist and be faculty
//   2. parse the workbook; format errors stop here with nothing changed
//   3. transactional replace in the repository
//   4. move cached days to a new generation so availability sees the new timetable

func (s *timetableService) ImportTimetable(ctx context.Context, facultyID string, r io.Reader) (*dto.ImportTimetableResponse, error) {
	if _, err := s.loadFaculty(ctx, facultyID); err != nil {
		return nil, err
	}

	parsed, err := ParseTimetableWorkbook(r, facultyID)
	if err != nil {
		s.logger.Warn("timetable workbook rejected", zap.String("faculty_id", facultyID), zap.Error(err))
		return nil, err
	}

	for _, sk := range parsed.Skipped {
		s.logger.Info("timetable row skipped",
			zap.String("faculty_id", facultyID),
			zap.Int("row", sk.Row),
			zap.String("reason", sk.Reason),
		)
	}

	if err := s.repo.Timetable.ReplaceByFaculty(ctx, facultyID, parsed.Entries); err != nil {
		s.logger.Error("timetable replace failed", zap.String("faculty_id", facultyID), zap.Error(err))
		return nil, fmt.Errorf("replace timetable: %w", err)
	}

	s.days.Invalidate(ctx, facultyID)

	s.logger.Info("timetable imported",
		zap.String("faculty_id", facultyID),
		zap.Int("entries", len(parsed.Entries)),
		zap.Int("skipped", len(parsed.Skipped)),
	)

	return &dto.ImportTimetableResponse{
		ImportedCount: len(parsed.Entries),
		Entries:       toEntryResponses(parsed.Entries),
		Skipped:       parsed.Skipped,
	}, nil
}

// ════════════════════════════════════════════════════════════
// GetTimetable
// ════════════════════════════════════════════════════════════

func (s *timetableService) GetTimetable(ctx context.Context, facultyID string) (*dto.TimetableResponse, error) {
	entries, err := s.listFacultyEntries(ctx, facultyID)
	if err != nil {
		return nil, err
	}
	return &dto.TimetableResponse{
		FacultyID: facultyID,
		Entries:   toEntryResponses(entries),
	}, nil
}

// ════════════════════════════════════════════════════════════
// ExportXLSX / Template
// ════════════════════════════════════════════════════════════

const timetableSheet = "Timetable"

func (s *timetableService) ExportXLSX(ctx context.Context, facultyID string) (*bytes.Buffer, string, error) {
	user, err := s.loadFaculty(ctx, facultyID)
	if err != nil {
		return nil, "", err
	}
	entries, err := s.repo.Timetable.ListByFaculty(ctx, facultyID)
	if err != nil {
		s.logger.Error("list timetable failed", zap.String("faculty_id", facultyID), zap.Error(err))
		return nil, "", err
	}

	buf, err := s.writeWorkbook(timetableGrid(entries))
	if err != nil {
		return nil, "", err
	}
	return buf, fmt.Sprintf("timetable_%s.xlsx", user.Username), nil
}

func (s *timetableService) Template() (*bytes.Buffer, string, error) {
	buf, err := s.writeWorkbook(&grid{days: model.Days[:5]})
	if err != nil {
		return nil, "", err
	}
	return buf, "timetable_template.xlsx", nil
}

// grid sheet layout: one column per day, one row per time range occurrence
type grid struct {
	days []model.DayOfWeek
	rows []gridRow
}

type gridRow struct {
	timeRange string
	cells     map[model.DayOfWeek]string
}

// timetableGrid lays entries out as the upload format expects. Overlapping
// entries sharing a time range and day spill into extra rows with the same range.
func timetableGrid(entries []model.TimetableEntry) *grid {
	days := append([]model.DayOfWeek{}, model.Days[:5]...)
	weekend := map[model.DayOfWeek]bool{}
	for _, e := range entries {
		if e.Day == model.Saturday || e.Day == model.Sunday {
			weekend[e.Day] = true
		}
	}
	for _, d := range []model.DayOfWeek{model.Saturday, model.Sunday} {
		if weekend[d] {
			days = append(days, d)
		}
	}

	type slotKey struct{ start, end string }
	bySlot := map[slotKey]map[model.DayOfWeek][]string{}
	var slots []slotKey
	for _, e := range entries {
		k := slotKey{model.NormalizeClock(e.StartTime), model.NormalizeClock(e.EndTime)}
		if _, ok := bySlot[k]; !ok {
			bySlot[k] = map[model.DayOfWeek][]string{}
			slots = append(slots, k)
		}
		bySlot[k][e.Day] = append(bySlot[k][e.Day], formatSubjectCell(e.Subject, e.Location))
	}
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].start != slots[j].start {
			return slots[i].start < slots[j].start
		}
		return slots[i].end < slots[j].end
	})

	g := &grid{days: days}
	for _, k := range slots {
		depth := 0
		for _, cells := range bySlot[k] {
			if len(cells) > depth {
				depth = len(cells)
			}
		}
		for i := 0; i < depth; i++ {
			row := gridRow{timeRange: k.start + "-" + k.end, cells: map[model.DayOfWeek]string{}}
			for day, cells := range bySlot[k] {
				if i < len(cells) {
					row.cells[day] = cells[i]
				}
			}
			g.rows = append(g.rows, row)
		}
	}
	return g
}

// formatSubjectCell is the inverse of ParseSubjectCell
func formatSubjectCell(subject string, location *string) string {
	switch {
	case location != nil && *location != "":
		return strings.TrimSpace(subject + " (" + *location + ")")
	case strings.Contains(subject, ")"):
		// an empty group keeps a trailing "(...)" inside the subject
		return subject + " ()"
	default:
		return subject
	}
}

func (s *timetableService) writeWorkbook(g *grid) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(timetableSheet)
	if err != nil {
		s.logger.Error("create sheet failed", zap.Error(err))
		return nil, ErrTimetableExportFailed
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(timetableSheet, "A", "A", 14)
	lastCol, _ := excelize.ColumnNumberToName(len(g.days) + 1)
	f.SetColWidth(timetableSheet, "B", lastCol, 24)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	f.SetCellValue(timetableSheet, "A1", "Time Slot")
	for i, day := range g.days {
		f.SetCellValue(timetableSheet, cellName(i+2, 1), day.Label())
	}
	f.SetCellStyle(timetableSheet, "A1", cellName(len(g.days)+1, 1), headerStyle)

	for r, row := range g.rows {
		sheetRow := r + 2
		f.SetCellValue(timetableSheet, cellName(1, sheetRow), row.timeRange)
		for i, day := range g.days {
			if text, ok := row.cells[day]; ok {
				f.SetCellValue(timetableSheet, cellName(i+2, sheetRow), text)
			}
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write workbook failed", zap.Error(err))
		return nil, ErrTimetableExportFailed
	}
	return buf, nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

// ════════════════════════════════════════════════════════════
// ExportICS
// ════════════════════════════════════════════════════════════
//
// Each entry becomes a weekly recurring event whose first occurrence is the
// next matching weekday (today included) in the campus timezone.

func (s *timetableService) ExportICS(ctx context.Context, facultyID string) ([]byte, string, error) {
	user, err := s.loadFaculty(ctx, facultyID)
	if err != nil {
		return nil, "", err
	}
	entries, err := s.repo.Timetable.ListByFaculty(ctx, facultyID)
	if err != nil {
		s.logger.Error("list timetable failed", zap.String("faculty_id", facultyID), zap.Error(err))
		return nil, "", err
	}

	loc := s.hours.Location()
	now := s.clock.Now().In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Schedulix//Timetable//EN")
	cal.SetXWRCalName(fmt.Sprintf("%s timetable", user.Username))
	cal.SetXWRTimezone(loc.String())

	for _, e := range entries {
		start, okStart := model.ClockMinutes(e.StartTime)
		end, okEnd := model.ClockMinutes(e.EndTime)
		if !okStart || !okEnd || !e.Day.Valid() {
			s.logger.Warn("ics export: entry skipped", zap.String("entry_id", e.EntryID))
			continue
		}

		offset := (int(e.Day.Weekday()) - int(today.Weekday()) + 7) % 7
		date := today.AddDate(0, 0, offset)

		event := cal.AddEvent(e.EntryID + "@schedulix")
		event.SetDtStampTime(now)
		event.SetSummary(e.Subject)
		if e.Location != nil {
			event.SetLocation(*e.Location)
		}
		event.SetStartAt(date.Add(time.Duration(start) * time.Minute))
		event.SetEndAt(date.Add(time.Duration(end) * time.Minute))
		event.SetProperty(ics.ComponentPropertyRrule, "FREQ=WEEKLY")
	}

	return []byte(cal.Serialize()), fmt.Sprintf("timetable_%s.ics", user.Username), nil
}

// ── helpers ──

func (s *timetableService) loadFaculty(ctx context.Context, facultyID string) (*model.User, error) {
	user, err := s.repo.User.GetByID(ctx, facultyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("load faculty failed", zap.String("faculty_id", facultyID), zap.Error(err))
		return nil, err
	}
	if !user.IsFaculty() {
		return nil, ErrTimetableNotFaculty
	}
	return user, nil
}

func (s *timetableService) listFacultyEntries(ctx context.Context, facultyID string) ([]model.TimetableEntry, error) {
	if _, err := s.loadFaculty(ctx, facultyID); err != nil {
		return nil, err
	}
	entries, err := s.repo.Timetable.ListByFaculty(ctx, facultyID)
	if err != nil {
		s.logger.Error("list timetable failed", zap.String("faculty_id", facultyID), zap.Error(err))
		return nil, err
	}
	return entries, nil
}

func toEntryResponses(entries []model.TimetableEntry) []dto.TimetableEntryResponse {
	out := make([]dto.TimetableEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.TimetableEntryResponse{
			ID:        e.EntryID,
			Day:       string(e.Day),
			StartTime: model.NormalizeClock(e.StartTime),
			EndTime:   model.NormalizeClock(e.EndTime),
			Subject:   e.Subject,
			Location:  e.Location,
		})
	}
	return out
}
