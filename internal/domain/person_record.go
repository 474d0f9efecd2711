package domain

import (
	"time"

	"gorm.io/datatypes"
)

// DateLayout is the wire and config format for calendar dates.
const DateLayout = "2006-01-02"

// PersonRecord is the employment-style record used by age and salary calculations.
type PersonRecord struct {
	ID            int64          `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name          string         `gorm:"not null;size:100;index;column:name" json:"name"`
	BirthDate     datatypes.Date `gorm:"not null;column:birth_date" json:"birth_date"`
	AdmissionDate datatypes.Date `gorm:"not null;column:admission_date" json:"admission_date"`
}

func (PersonRecord) TableName() string { return "person_record" }

func (r *PersonRecord) Clone() *PersonRecord {
	if r == nil {
		return nil
	}
	cp := *r
	return &cp
}

func (r *PersonRecord) Birth() time.Time     { return time.Time(r.BirthDate) }
func (r *PersonRecord) Admission() time.Time { return time.Time(r.AdmissionDate) }

// NewDate truncates t to a calendar date in UTC.
func NewDate(t time.Time) datatypes.Date {
	y, m, d := t.Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

// ParseDate reads a YYYY-MM-DD string.
func ParseDate(s string) (datatypes.Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return datatypes.Date{}, err
	}
	return NewDate(t), nil
}

func FormatDate(d datatypes.Date) string {
	t := time.Time(d)
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}
