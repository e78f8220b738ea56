package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "valid morning", input: "09:30", want: "09:30"},
		{name: "valid midnight", input: "00:00", want: "00:00"},
		{name: "valid end of day", input: "23:59", want: "23:59"},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "minute out of range", input: "10:60", wantErr: true},
		{name: "no leading zero", input: "9:30", wantErr: true},
		{name: "missing colon", input: "0930", wantErr: true},
		{name: "garbage", input: "ab:cd", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "trailing junk", input: "09:30x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidTimeFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Minutes(t *testing.T) {
	assert.Equal(t, 0, TimeString("00:00").Minutes())
	assert.Equal(t, 570, TimeString("09:30").Minutes())
	assert.Equal(t, 1439, TimeString("23:59").Minutes())
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("09:30").AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:15"), got)

	got, err = TimeString("00:00").AddMinutes(0)
	require.NoError(t, err)
	assert.Equal(t, TimeString("00:00"), got)

	// Переход через полночь - явная ошибка, а не тихое переполнение
	_, err = TimeString("23:45").AddMinutes(30)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)

	_, err = TimeString("bad").AddMinutes(10)
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}

func TestTimeString_Comparisons(t *testing.T) {
	a := TimeString("10:00")
	b := TimeString("10:30")

	assert.True(t, a.IsBefore(b))
	assert.False(t, b.IsBefore(a))
	assert.True(t, b.IsAfter(a))
	assert.False(t, a.IsAfter(a))
	assert.True(t, a.Equal(TimeString("10:00")))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("14:30:00"))
	assert.Equal(t, TimeString("14:30"), ts)

	require.NoError(t, ts.Scan([]byte("08:05:00")))
	assert.Equal(t, TimeString("08:05"), ts)

	require.NoError(t, ts.Scan(time.Date(2025, 10, 15, 16, 45, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("16:45"), ts)

	assert.Error(t, ts.Scan(12345))
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("09:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "09:00:00", v)

	_, err = TimeString("9:00").Value()
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}
