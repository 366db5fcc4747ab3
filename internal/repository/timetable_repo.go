package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/KaushikNaik2/Schedulix/internal/model"
)

// TimetableRepository faculty timetable data access
type TimetableRepository interface {
	ListByFaculty(ctx context.Context, facultyID string) ([]model.TimetableEntry, error)
	// ListByFacultyAndDay returns the day's entries in upload order
	ListByFacultyAndDay(ctx context.Context, facultyID string, day model.DayOfWeek) ([]model.TimetableEntry, error)
	// ReplaceByFaculty deletes the faculty's entries and inserts the new set in one transaction
	ReplaceByFaculty(ctx context.Context, facultyID string, entries []model.TimetableEntry) error
}

type timetableRepo struct {
	db *gorm.DB
}

// NewTimetableRepo creates a TimetableRepository
func NewTimetableRepo(db *gorm.DB) TimetableRepository {
	return &timetableRepo{db: db}
}

// dayOrder sorts MONDAY..SUNDAY in calendar order rather than alphabetically
const dayOrder = "array_position(ARRAY['MONDAY','TUESDAY','WEDNESDAY','THURSDAY','FRIDAY','SATURDAY','SUNDAY']::varchar[], day)"

func (r *timetableRepo) ListByFaculty(ctx context.Context, facultyID string) ([]model.TimetableEntry, error) {
	var entries []model.TimetableEntry
	err := r.db.WithContext(ctx).
		Where("faculty_id = ?", facultyID).
		Order(dayOrder + " ASC, start_time ASC, position ASC").
		Find(&entries).Error
	return entries, err
}

func (r *timetableRepo) ListByFacultyAndDay(ctx context.Context, facultyID string, day model.DayOfWeek) ([]model.TimetableEntry, error) {
	var entries []model.TimetableEntry
	err := r.db.WithContext(ctx).
		Where("faculty_id = ? AND day = ?", facultyID, day).
		Order("position ASC").
		Find(&entries).Error
	return entries, err
}

func (r *timetableRepo) ReplaceByFaculty(ctx context.Context, facultyID string, entries []model.TimetableEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("faculty_id = ?", facultyID).
			Delete(&model.TimetableEntry{}).Error; err != nil {
			return err
		}
		if len(entries) > 0 {
			if err := tx.CreateInBatches(&entries, 200).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
