package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-09-10")
	require.NoError(t, err)
	assert.Equal(t, 2025, d.Year())
	assert.Equal(t, time.September, d.Month())
	assert.Equal(t, 10, d.Day())

	_, err = ParseDate("10.09.2025")
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = ParseDate("2025-02-30")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestDateOf_DropsTimeOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	// 01:30 по местному времени - еще 22:30 предыдущего дня по UTC
	local := time.Date(2025, 9, 10, 1, 30, 0, 0, loc)

	assert.Equal(t, MustParseDate("2025-09-10"), DateOf(local))
	assert.Equal(t, MustParseDate("2025-09-09"), DateOf(local.UTC()))
}

func TestDate_Arithmetic(t *testing.T) {
	d := MustParseDate("2024-02-28")

	assert.Equal(t, MustParseDate("2024-02-29"), d.AddDays(1))
	assert.Equal(t, MustParseDate("2024-03-01"), d.AddDays(2))
	assert.Equal(t, MustParseDate("2024-02-27"), d.AddDays(-1))
	assert.Equal(t, 2, d.DaysUntil(MustParseDate("2024-03-01")))
	assert.Equal(t, -28, d.DaysUntil(MustParseDate("2024-01-31")))
}

func TestDate_Compare(t *testing.T) {
	a := MustParseDate("2025-09-10")
	b := MustParseDate("2025-09-11")

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, a.Before(a))
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 0, a.Compare(a))
	assert.Equal(t, a, MinDate(a, b))
	assert.Equal(t, b, MaxDate(a, b))
}

func TestDate_JSON(t *testing.T) {
	type payload struct {
		CheckIn  Date  `json:"checkIn"`
		CheckOut *Date `json:"checkOut"`
	}

	data, err := json.Marshal(payload{CheckIn: MustParseDate("2025-09-10")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"checkIn":"2025-09-10","checkOut":null}`, string(data))

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"checkIn":"2025-09-12","checkOut":"2025-09-14"}`), &p))
	assert.Equal(t, MustParseDate("2025-09-12"), p.CheckIn)
	require.NotNil(t, p.CheckOut)
	assert.Equal(t, MustParseDate("2025-09-14"), *p.CheckOut)

	assert.Error(t, json.Unmarshal([]byte(`{"checkIn":"2025-09-12T10:00:00Z"}`), &p))
}

func TestDate_ScanValue(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, MustParseDate("2025-09-10"), d)

	require.NoError(t, d.Scan([]byte("2025-09-11")))
	assert.Equal(t, MustParseDate("2025-09-11"), d)

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.ErrorIs(t, d.Scan(42), ErrUnsupportedScanType)

	v, err := MustParseDate("2025-09-10").Value()
	require.NoError(t, err)
	assert.Equal(t, "2025-09-10", v)

	v, err = Date{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
