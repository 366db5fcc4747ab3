package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/KaushikNaik2/Schedulix/internal/model"
	"github.com/KaushikNaik2/Schedulix/internal/repository"
	"github.com/KaushikNaik2/Schedulix/pkg/redis"
)

// DayTimetables reads one faculty day at a time, through Redis when available.
// Every profile render resolves availability, so the per-day list is cached
// until the next upload invalidates it.
//
// Cache keys carry the faculty's generation counter. Invalidate bumps the
// counter, so a fill that read the database before an upload committed lands
// under a stale generation and is never read back.
type DayTimetables struct {
	repo   repository.TimetableRepository
	rdb    *redis.Client // nil: no cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewDayTimetables creates the day loader; rdb may be nil
func NewDayTimetables(repo repository.TimetableRepository, rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *DayTimetables {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &DayTimetables{repo: repo, rdb: rdb, ttl: ttl, logger: logger}
}

func generationKey(facultyID string) string {
	return "timetable:gen:" + facultyID
}

func dayCacheKey(facultyID string, gen int64, day model.DayOfWeek) string {
	return fmt.Sprintf("timetable:%s:g%d:%s", facultyID, gen, day)
}

// Load returns the faculty's entries for day in upload order
func (d *DayTimetables) Load(ctx context.Context, facultyID string, day model.DayOfWeek) ([]model.TimetableEntry, error) {
	if d.rdb == nil {
		return d.repo.ListByFacultyAndDay(ctx, facultyID, day)
	}

	// the generation must be read before the database
	gen, err := d.rdb.Generation(ctx, generationKey(facultyID))
	if err != nil {
		d.logger.Warn("timetable generation read failed", zap.String("faculty_id", facultyID), zap.Error(err))
		return d.repo.ListByFacultyAndDay(ctx, facultyID, day)
	}

	key := dayCacheKey(facultyID, gen, day)
	var cached []model.TimetableEntry
	err = d.rdb.GetJSON(ctx, key, &cached)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, redis.ErrCacheMiss) {
		d.logger.Warn("timetable cache read failed", zap.String("key", key), zap.Error(err))
	}

	entries, err := d.repo.ListByFacultyAndDay(ctx, facultyID, day)
	if err != nil {
		return nil, err
	}

	if err := d.rdb.SetJSON(ctx, key, entries, d.ttl); err != nil {
		d.logger.Warn("timetable cache write failed", zap.String("key", key), zap.Error(err))
	}
	return entries, nil
}

// Invalidate retires every cached day of the faculty by moving to a new generation.
// Old generation keys expire on their own.
func (d *DayTimetables) Invalidate(ctx context.Context, facultyID string) {
	if d.rdb == nil {
		return
	}
	if _, err := d.rdb.BumpGeneration(ctx, generationKey(facultyID)); err != nil {
		d.logger.Error("timetable cache invalidation failed", zap.String("faculty_id", facultyID), zap.Error(err))
	}
}
