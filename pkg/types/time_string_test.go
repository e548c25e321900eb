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
		{name: "valid morning time", input: "09:30", want: "09:30"},
		{name: "midnight", input: "00:00", want: "00:00"},
		{name: "end of day", input: "23:59", want: "23:59"},
		{name: "missing leading zero", input: "9:30", wantErr: true},
		{name: "out of range hour", input: "24:00", wantErr: true},
		{name: "out of range minute", input: "12:60", wantErr: true},
		{name: "garbage", input: "abc", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Minutes(t *testing.T) {
	tests := []struct {
		input TimeString
		want  int
	}{
		{input: "00:00", want: 0},
		{input: "00:01", want: 1},
		{input: "09:30", want: 570},
		{input: "23:59", want: 1439},
	}

	for _, tt := range tests {
		got, err := tt.input.Minutes()
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := TimeString("bad").Minutes()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("09:30").AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:15"), got)

	got, err = TimeString("23:00").AddMinutes(59)
	require.NoError(t, err)
	assert.Equal(t, TimeString("23:59"), got)

	// Выход за пределы суток
	_, err = TimeString("23:30").AddMinutes(60)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Ordering(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("09:01"))
	assert.True(t, TimeString("09:59").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("18:00").IsAfter("09:00"))
	assert.False(t, TimeString("09:00").IsAfter("09:00"))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	// Postgres TIME приходит с секундами
	require.NoError(t, ts.Scan("09:30:00"))
	assert.Equal(t, TimeString("09:30"), ts)

	require.NoError(t, ts.Scan([]byte("18:45")))
	assert.Equal(t, TimeString("18:45"), ts)

	require.NoError(t, ts.Scan(time.Date(2026, 3, 2, 7, 15, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("07:15"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("09:30").Value()
	require.NoError(t, err)
	assert.Equal(t, "09:30", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = TimeString("bad").Value()
	assert.Error(t, err)
}
