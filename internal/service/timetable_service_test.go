package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	ics "github.com/arran4/golang-ical"

	"github.com/KaushikNaik2/Schedulix/internal/model"
)

func (e *testEnv) timetableService() TimetableService {
	return NewTimetableService(e.repo, e.days, e.hours, e.clock, e.logger)
}

func TestImportTimetable_FullReplace(t *testing.T) {
	env := newTestEnv()
	prof := seedFaculty(env)
	svc := env.timetableService()
	ctx := context.Background()

	buf := buildWorkbook(t, [][]string{
		{"Time Slot", "TUESDAY", "WEDNESDAY"},
		{"14:00-15:00", "OS (Lab 2)", "DBMS"},
		{"bad", "x"},
	})
	resp, err := svc.ImportTimetable(ctx, prof.UserID, buf)
	if err != nil {
		t.Fatalf("ImportTimetable: %v", err)
	}
	if resp.ImportedCount != 2 || len(resp.Entries) != 2 {
		t.Fatalf("imported = %d, want 2", resp.ImportedCount)
	}
	if len(resp.Skipped) != 1 || resp.Skipped[0].Row != 3 {
		t.Errorf("skipped = %+v, want row 3", resp.Skipped)
	}
	for _, e := range resp.Entries {
		if e.ID == "" {
			t.Error("imported entries should carry their new IDs")
		}
	}

	// the Monday class from before the upload is gone
	stored := env.timetables.entries[prof.UserID]
	if len(stored) != 2 {
		t.Fatalf("stored = %d entries, want 2", len(stored))
	}
	for _, e := range stored {
		if e.Day == model.Monday {
			t.Error("previous Monday entry survived the replace")
		}
	}

	got, _ := env.availability().Check(ctx, prof.UserID, model.Monday, "09:30")
	if got.Status != StatusAvailable {
		t.Errorf("Monday 09:30 after replace = %q, want Available", got.Status)
	}
}

func TestImportTimetable_FormatErrorLeavesPreviousTimetable(t *testing.T) {
	env := newTestEnv()
	prof := seedFaculty(env)
	svc := env.timetableService()

	_, err := svc.ImportTimetable(context.Background(), prof.UserID, strings.NewReader("not a workbook"))
	if !errors.Is(err, ErrTimetableUnreadable) {
		t.Fatalf("expected ErrTimetableUnreadable, got %v", err)
	}
	if env.timetables.replaceCalls != 0 {
		t.Error("repository must not be touched when the workbook is rejected")
	}
	if len(env.timetables.entries[prof.UserID]) != 1 {
		t.Error("previous timetable should be intact")
	}
}

func TestImportTimetable_ReplaceFailure(t *testing.T) {
	env := newTestEnv()
	prof := seedFaculty(env)
	env.timetables.replaceErr = errors.New("tx aborted")

	buf := buildWorkbook(t, [][]string{{"Time", "MONDAY"}, {"9:00-10:00", "X"}})
	if _, err := env.timetableService().ImportTimetable(context.Background(), prof.UserID, buf); err == nil {
		t.Fatal("expected error")
	}
	if env.timetables.entries[prof.UserID][0].Subject != "ADSA" {
		t.Error("previous timetable should be intact")
	}
}

func TestImportTimetable_EmptyWorkbookClearsTimetable(t *testing.T) {
	env := newTestEnv()
	prof := seedFaculty(env)

	buf := buildWorkbook(t, [][]string{{"Time", "MONDAY"}})
	resp, err := env.timetableService().ImportTimetable(context.Background(), prof.UserID, buf)
	if err != nil {
		t.Fatalf("ImportTimetable: %v", err)
	}
	if resp.ImportedCount != 0 || len(env.timetables.entries[prof.UserID]) != 0 {
		t.Errorf("expected an empty timetable, got %d stored", len(env.timetables.entries[prof.UserID]))
	}
}

func TestImportTimetable_OwnerChecks(t *testing.T) {
	env := newTestEnv()
	student := env.addUser("alice", model.RoleStudent)
	svc := env.timetableService()
	ctx := context.Background()

	buf := buildWorkbook(t, [][]string{{"Time", "MONDAY"}, {"9:00-10:00", "X"}})
	if _, err := svc.ImportTimetable(ctx, student.UserID, buf); !errors.Is(err, ErrTimetableNotFaculty) {
		t.Errorf("student: expected ErrTimetableNotFaculty, got %v", err)
	}
	if _, err := svc.ImportTimetable(ctx, "ghost", buf); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("unknown: expected ErrUserNotFound, got %v", err)
	}
}

func TestGetTimetable_CalendarOrder(t *testing.T) {
	env := newTestEnv()
	prof := env.addUser("prof", model.RoleFaculty)
	env.timetables.entries[prof.UserID] = []model.TimetableEntry{
		{Day: model.Friday, StartTime: "09:00:00", EndTime: "10:00:00", Subject: "F"},
		{Day: model.Monday, StartTime: "11:00:00", EndTime: "12:00:00", Subject: "M2"},
		{Day: model.Monday, StartTime: "09:00:00", EndTime: "10:00:00", Subject: "M1"},
	}

	resp, err := env.timetableService().GetTimetable(context.Background(), prof.UserID)
	if err != nil {
		t.Fatalf("GetTimetable: %v", err)
	}
	var subjects []string
	for _, e := range resp.Entries {
		subjects = append(subjects, e.Subject)
	}
	if strings.Join(subjects, ",") != "M1,M2,F" {
		t.Errorf("order = %v", subjects)
	}
	if resp.Entries[0].StartTime != "09:00" {
		t.Errorf("start time = %q, want HH:MM", resp.Entries[0].StartTime)
	}
}

func TestExportXLSX_RoundTrip(t *testing.T) {
	env := newTestEnv()
	prof := env.addUser("prof", model.RoleFaculty)
	env.timetables.entries[prof.UserID] = []model.TimetableEntry{
		{Day: model.Monday, StartTime: "09:00:00", EndTime: "10:00:00", Subject: "ADSA", Location: strPtr("Room 5"), Position: 0},
		{Day: model.Monday, StartTime: "09:00:00", EndTime: "10:00:00", Subject: "Overlap", Position: 1},
		{Day: model.Saturday, StartTime: "10:00:00", EndTime: "11:00:00", Subject: "Lab (A)", Position: 2},
	}
	svc := env.timetableService()

	buf, filename, err := svc.ExportXLSX(context.Background(), prof.UserID)
	if err != nil {
		t.Fatalf("ExportXLSX: %v", err)
	}
	if filename != "timetable_prof.xlsx" {
		t.Errorf("filename = %q", filename)
	}

	parsed, err := ParseTimetableWorkbook(bytes.NewReader(buf.Bytes()), prof.UserID)
	if err != nil {
		t.Fatalf("exported workbook does not parse: %v", err)
	}
	if len(parsed.Skipped) != 0 {
		t.Errorf("unexpected skipped rows: %+v", parsed.Skipped)
	}
	if len(parsed.Entries) != 3 {
		t.Fatalf("round trip entries = %d, want 3", len(parsed.Entries))
	}

	seen := map[string]model.TimetableEntry{}
	for _, e := range parsed.Entries {
		seen[e.Subject] = e
	}
	if e, ok := seen["ADSA"]; !ok || e.Location == nil || *e.Location != "Room 5" || e.StartTime != "09:00" {
		t.Errorf("ADSA entry lost: %+v", e)
	}
	if e, ok := seen["Lab (A)"]; !ok || e.Day != model.Saturday || e.Location != nil {
		t.Errorf("Lab (A) entry lost: %+v", e)
	}
	if _, ok := seen["Overlap"]; !ok {
		t.Error("overlapping entry lost")
	}
}

func TestTemplate_ParsesAsEmptyTimetable(t *testing.T) {
	env := newTestEnv()
	buf, filename, err := env.timetableService().Template()
	if err != nil {
		t.Fatalf("Template: %v", err)
	}
	if filename != "timetable_template.xlsx" {
		t.Errorf("filename = %q", filename)
	}
	parsed, err := ParseTimetableWorkbook(buf, "x")
	if err != nil {
		t.Fatalf("template does not parse: %v", err)
	}
	if len(parsed.Entries) != 0 {
		t.Errorf("template should be empty, got %d entries", len(parsed.Entries))
	}
}

func TestExportICS(t *testing.T) {
	env := newTestEnv()
	prof := env.addUser("prof", model.RoleFaculty)
	env.timetables.entries[prof.UserID] = []model.TimetableEntry{
		{EntryID: "e1", Day: model.Monday, StartTime: "09:00:00", EndTime: "10:00:00", Subject: "ADSA", Location: strPtr("Room 5")},
		{EntryID: "e2", Day: model.Wednesday, StartTime: "14:00:00", EndTime: "15:30:00", Subject: "OS"},
	}

	body, filename, err := env.timetableService().ExportICS(context.Background(), prof.UserID)
	if err != nil {
		t.Fatalf("ExportICS: %v", err)
	}
	if filename != "timetable_prof.ics" {
		t.Errorf("filename = %q", filename)
	}

	cal, err := ics.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("ParseCalendar: %v", err)
	}
	events := cal.Events()
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}

	first := events[0]
	if p := first.GetProperty(ics.ComponentPropertySummary); p == nil || p.Value != "ADSA" {
		t.Errorf("summary = %v", p)
	}
	if p := first.GetProperty(ics.ComponentPropertyRrule); p == nil || p.Value != "FREQ=WEEKLY" {
		t.Errorf("rrule = %v", p)
	}
	start, err := first.GetStartAt()
	if err != nil {
		t.Fatalf("GetStartAt: %v", err)
	}
	local := start.In(env.hours.Location())
	// clock is Monday 09:30, so the first Monday occurrence is today
	if local.Weekday().String() != "Monday" || local.Hour() != 9 || local.Day() != 2 {
		t.Errorf("first occurrence = %v", local)
	}

	second, err := events[1].GetStartAt()
	if err != nil {
		t.Fatalf("GetStartAt: %v", err)
	}
	if got := second.In(env.hours.Location()); got.Weekday().String() != "Wednesday" || got.Day() != 4 {
		t.Errorf("wednesday occurrence = %v", got)
	}
}
