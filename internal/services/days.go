package services

import (
	"errors"
	"fmt"

	"github.com/lehmann314159/wordtrainer/internal/models"
)

// DefaultPageSize is the number of words per day
const DefaultPageSize = 20

// ErrInvalidDay is returned for a day with no words
var ErrInvalidDay = errors.New("invalid day")

// Membership reports whether a word index is in a set
type Membership interface {
	Contains(index int) bool
}

// TotalDays returns ceil(catalogSize / pageSize)
func TotalDays(catalogSize, pageSize int) int {
	if catalogSize <= 0 || pageSize <= 0 {
		return 0
	}
	return (catalogSize + pageSize - 1) / pageSize
}

// RangeForDay returns the index range of a 1-based day. The last day's end
// is clamped to catalogSize.
func RangeForDay(day, catalogSize, pageSize int) (models.WordIndexRange, error) {
	if day < 1 || day > TotalDays(catalogSize, pageSize) {
		return models.WordIndexRange{}, fmt.Errorf("%w: %d", ErrInvalidDay, day)
	}

	start := (day - 1) * pageSize
	end := start + pageSize
	if end > catalogSize {
		end = catalogSize
	}
	return models.WordIndexRange{Start: start, End: end}, nil
}

// IsDayCompleted reports whether every index of the day is in learned.
// A day without words is never completed.
func IsDayCompleted(day int, learned Membership, catalogSize, pageSize int) bool {
	r, err := RangeForDay(day, catalogSize, pageSize)
	if err != nil {
		return false
	}
	for i := r.Start; i < r.End; i++ {
		if !learned.Contains(i) {
			return false
		}
	}
	return true
}

// DayPartitioner splits a catalog of fixed size into days
type DayPartitioner struct {
	catalogSize int
	pageSize    int
}

// NewDayPartitioner creates a partitioner; a pageSize below 1 uses DefaultPageSize
func NewDayPartitioner(catalogSize, pageSize int) *DayPartitioner {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &DayPartitioner{catalogSize: catalogSize, pageSize: pageSize}
}

// PageSize returns the number of words per day
func (d *DayPartitioner) PageSize() int {
	return d.pageSize
}

// TotalDays returns the number of days
func (d *DayPartitioner) TotalDays() int {
	return TotalDays(d.catalogSize, d.pageSize)
}

// Range returns the index range of day
func (d *DayPartitioner) Range(day int) (models.WordIndexRange, error) {
	return RangeForDay(day, d.catalogSize, d.pageSize)
}

// Words returns the ordered word indices of day
func (d *DayPartitioner) Words(day int) ([]int, error) {
	r, err := d.Range(day)
	if err != nil {
		return nil, err
	}
	return r.Indices(), nil
}

// IsCompleted reports whether day is fully learned
func (d *DayPartitioner) IsCompleted(day int, learned Membership) bool {
	return IsDayCompleted(day, learned, d.catalogSize, d.pageSize)
}

// Statuses returns the dashboard tile of every day
func (d *DayPartitioner) Statuses(learned Membership) []models.DayStatus {
	total := d.TotalDays()
	statuses := make([]models.DayStatus, 0, total)

	for day := 1; day <= total; day++ {
		r, _ := d.Range(day)
		count := 0
		for i := r.Start; i < r.End; i++ {
			if learned.Contains(i) {
				count++
			}
		}
		statuses = append(statuses, models.DayStatus{
			Day:       day,
			Range:     r,
			Learned:   count,
			Completed: d.IsCompleted(day, learned),
		})
	}

	return statuses
}
