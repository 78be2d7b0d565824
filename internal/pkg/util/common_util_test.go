package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBrandID(t *testing.T) {
	tests := []struct {
		in      string
		want    uint64
		wantErr bool
	}{
		{"", 0, false},
		{"all", 0, false},
		{" ALL ", 0, false},
		{"0", 0, false},
		{"42", 42, false},
		{"-1", 0, true},
		{"brand", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBrandID(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, "all", FormatBrandID(0))
	assert.Equal(t, "42", FormatBrandID(42))
}

func TestStrSliceToUInt64Slice(t *testing.T) {
	got, err := StrSliceToUInt64Slice([]string{"1", " 2 ", ""})
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2}, got)

	_, err = StrSliceToUInt64Slice([]string{"x"})
	assert.Error(t, err)
}

func TestValidateDTO(t *testing.T) {
	type query struct {
		Granularity string `validate:"omitempty,oneof=day week month year"`
	}
	assert.NoError(t, ValidateDTO(query{Granularity: "week"}))
	err := ValidateDTO(query{Granularity: "hour"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Granularity")
}
