// Package calc holds the pure age and salary calculations over calendar dates.
package calc

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/yungbote/person-backend/internal/domain"
)

type AgeUnit string

const (
	Days   AgeUnit = "days"
	Months AgeUnit = "months"
	Years  AgeUnit = "years"
)

var ageUnits = []string{string(Days), string(Months), string(Years)}

type SalaryFormat string

const (
	Full    SalaryFormat = "full"
	Minimum SalaryFormat = "min"
)

var salaryFormats = []string{string(Full), string(Minimum)}

const (
	StartingSalary = 1558.00
	RaiseRate      = 0.18
	RaiseBonus     = 500.00
	MinimumWage    = 1302.00
)

func ParseAgeUnit(s string) (AgeUnit, error) {
	switch u := AgeUnit(strings.ToLower(strings.TrimSpace(s))); u {
	case Days, Months, Years:
		return u, nil
	default:
		return "", domain.InvalidArgument("age", fmt.Sprintf("invalid format %q", s), ageUnits...)
	}
}

func ParseSalaryFormat(s string) (SalaryFormat, error) {
	switch f := SalaryFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case Full, Minimum:
		return f, nil
	default:
		return "", domain.InvalidArgument("salary", fmt.Sprintf("invalid format %q", s), salaryFormats...)
	}
}

// Age returns whole units elapsed between birth and today. Months and years only
// complete once today's day-of-month reaches birth's. Results are negative when
// birth is after today.
func Age(birth, today time.Time, unit AgeUnit) (int64, error) {
	switch unit {
	case Days:
		return daysBetween(birth, today), nil
	case Months:
		return monthsBetween(birth, today), nil
	case Years:
		return monthsBetween(birth, today) / 12, nil
	default:
		return 0, domain.InvalidArgument("age", fmt.Sprintf("invalid format %q", unit), ageUnits...)
	}
}

// Salary projects StartingSalary over the completed years since admission, each
// year adding RaiseRate on the running amount plus RaiseBonus.
func Salary(admission, today time.Time, format SalaryFormat) (float64, error) {
	if format != Full && format != Minimum {
		return 0, domain.InvalidArgument("salary", fmt.Sprintf("invalid format %q", format), salaryFormats...)
	}
	years, _ := Age(admission, today, Years)
	if years < 0 {
		years = 0
	}
	salary := StartingSalary
	for i := int64(0); i < years; i++ {
		salary = salary + salary*RaiseRate + RaiseBonus
	}
	if format == Minimum {
		return math.Ceil(salary/MinimumWage*100) / 100, nil
	}
	return math.Floor(salary*100+0.5) / 100, nil
}

func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween counts calendar days from Unix seconds; time.Duration would
// saturate for spans longer than about 292 years.
func daysBetween(from, to time.Time) int64 {
	return (civil(to).Unix() - civil(from).Unix()) / 86400
}

// monthsBetween packs (month index, day) so the day-of-month threshold falls out
// of a single truncating division, in either direction.
func monthsBetween(from, to time.Time) int64 {
	pack := func(t time.Time) int64 {
		y, m, d := t.Date()
		return (int64(y)*12+int64(m)-1)*32 + int64(d)
	}
	return (pack(to) - pack(from)) / 32
}
