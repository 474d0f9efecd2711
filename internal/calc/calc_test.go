package calc

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/person-backend/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// referenceDay is the day on which José da Silva (born 2000-04-06, admitted
// 2020-05-10) is 25 years, 306 months and 9315 days old.
var referenceDay = date(2025, time.October, 7)

func TestAgeReferenceValues(t *testing.T) {
	birth := date(2000, time.April, 6)

	years, err := Age(birth, referenceDay, Years)
	require.NoError(t, err)
	assert.Equal(t, int64(25), years)

	months, err := Age(birth, referenceDay, Months)
	require.NoError(t, err)
	assert.Equal(t, int64(306), months)

	days, err := Age(birth, referenceDay, Days)
	require.NoError(t, err)
	assert.Equal(t, int64(9315), days)
}

func TestAgeDaysSpansCenturies(t *testing.T) {
	days, err := Age(date(1700, time.January, 1), referenceDay, Days)
	require.NoError(t, err)
	assert.Equal(t, int64(118983), days)

	years, err := Age(date(1700, time.January, 1), referenceDay, Years)
	require.NoError(t, err)
	assert.Equal(t, int64(325), years)
}

func TestAgeOnAnniversary(t *testing.T) {
	birth := date(2000, time.April, 6)
	today := date(2025, time.April, 6)

	years, _ := Age(birth, today, Years)
	months, _ := Age(birth, today, Months)
	days, _ := Age(birth, today, Days)
	assert.Equal(t, int64(25), years)
	assert.Equal(t, int64(300), months)
	assert.Equal(t, int64(9131), days)

	dayBefore := date(2025, time.April, 5)
	years, _ = Age(birth, dayBefore, Years)
	months, _ = Age(birth, dayBefore, Months)
	assert.Equal(t, int64(24), years)
	assert.Equal(t, int64(299), months)
}

func TestAgeMonthThresholdAtMonthEnd(t *testing.T) {
	// Jan 31 -> Feb 28 has not reached day 31, so no month has completed.
	months, _ := Age(date(2023, time.January, 31), date(2023, time.February, 28), Months)
	assert.Equal(t, int64(0), months)
	months, _ = Age(date(2023, time.January, 31), date(2023, time.March, 31), Months)
	assert.Equal(t, int64(2), months)
}

func TestAgeIgnoresTimeOfDay(t *testing.T) {
	birth := time.Date(2000, time.April, 6, 23, 0, 0, 0, time.UTC)
	today := time.Date(2000, time.April, 7, 1, 0, 0, 0, time.UTC)
	days, _ := Age(birth, today, Days)
	assert.Equal(t, int64(1), days)
}

func TestParseAgeUnit(t *testing.T) {
	u, err := ParseAgeUnit("YEARS")
	require.NoError(t, err)
	assert.Equal(t, Years, u)

	_, err = ParseAgeUnit("invalid")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
	assert.Equal(t, []string{"days", "months", "years"}, domain.AllowedValues(err))

	_, err = Age(date(2000, 1, 1), referenceDay, AgeUnit("invalid"))
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
}

func TestSalaryReferenceValues(t *testing.T) {
	admission := date(2020, time.May, 10)

	full, err := Salary(admission, referenceDay, Full)
	require.NoError(t, err)
	assert.InDelta(t, 7141.43, full, 0.01)

	minimum, err := Salary(admission, referenceDay, Minimum)
	require.NoError(t, err)
	assert.InDelta(t, 5.49, minimum, 0.01)
}

func TestSalaryExactlyFiveYears(t *testing.T) {
	today := date(2025, time.May, 10)
	full, err := Salary(date(2020, time.May, 10), today, Full)
	require.NoError(t, err)
	assert.Equal(t, 7141.43, full)

	minimum, err := Salary(date(2020, time.May, 10), today, Minimum)
	require.NoError(t, err)
	assert.Equal(t, 5.49, minimum)
}

func TestSalaryZeroYears(t *testing.T) {
	today := date(2025, time.May, 9)
	full, err := Salary(date(2024, time.May, 10), today, Full)
	require.NoError(t, err)
	assert.Equal(t, StartingSalary, full)

	minimum, err := Salary(date(2024, time.May, 10), today, Minimum)
	require.NoError(t, err)
	// 1558 / 1302 = 1.1966..., rounded up at the cent.
	assert.Equal(t, 1.2, minimum)
}

func TestSalaryFutureAdmissionDoesNotFail(t *testing.T) {
	full, err := Salary(date(2030, time.January, 1), referenceDay, Full)
	require.NoError(t, err)
	assert.Equal(t, StartingSalary, full)
}

func TestSalaryInvalidFormat(t *testing.T) {
	_, err := ParseSalaryFormat("invalid")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
	assert.Equal(t, []string{"full", "min"}, domain.AllowedValues(err))

	_, err = Salary(date(2020, 1, 1), referenceDay, SalaryFormat("gross"))
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))

	f, err := ParseSalaryFormat(" Min ")
	require.NoError(t, err)
	assert.Equal(t, Minimum, f)
}
