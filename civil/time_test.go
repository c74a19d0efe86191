package civil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewTime(t *testing.T) {
	tm, err := NewTime(13, 45, 30, 123456789)
	require.NoError(t, err)
	require.Equal(t, 13, tm.Hour())
	require.Equal(t, 45, tm.Minute())
	require.Equal(t, 30, tm.Second())
	require.Equal(t, 123456789, tm.Nanosecond())

	_, err = NewTime(24, 0, 0, 0)
	requireFieldError(t, err, FieldTime, ReasonOutOfRange)

	_, err = NewTime(0, 60, 0, 0)
	requireFieldError(t, err, FieldTime, ReasonOutOfRange)

	_, err = NewTime(0, 0, 0, 1_000_000_000)
	requireFieldError(t, err, FieldFraction, ReasonOutOfRange)
}

func TestTime_Bounds(t *testing.T) {
	require.Equal(t, MustNewTime(0, 0, 0, 0), TimeMin)
	require.Equal(t, MustNewTime(23, 59, 59, 999999999), TimeMax)
	require.Equal(t, -1, TimeMin.Compare(TimeMax))
	require.Equal(t, 0, TimeMin.Compare(TimeMin))
}

func TestTime_String(t *testing.T) {
	require.Equal(t, "00:00:00", TimeMin.String())
	require.Equal(t, "23:59:59.999999999", TimeMax.String())
	require.Equal(t, "13:45:30.5", MustNewTime(13, 45, 30, 500_000_000).String())
	require.Equal(t, "01:02:03", MustNewTime(1, 2, 3, 0).String())
}
