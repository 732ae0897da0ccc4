package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		wantAttr  int
		wantValue float64
		wantErr   bool
	}{
		{"integer value", "attr_3_val_7", 3, 7, false},
		{"float value", "attr_0_val_1.5", 0, 1.5, false},
		{"negative value", "attr_12_val_-0.25", 12, -0.25, false},
		{"exponent value", "attr_1_val_1e-3", 1, 0.001, false},
		{"no prefix", "3_val_7", 0, 0, true},
		{"attribute not an integer", "attr_x_val_1", 0, 0, true},
		{"value not a number", "attr_1_val_abc", 0, 0, true},
		{"empty", "", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attr, val, err := Decode(tt.id)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrMalformedNodeID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAttr, attr)
			assert.InDelta(t, tt.wantValue, val, 1e-12)
		})
	}
}

func TestEncode(t *testing.T) {
	assert.Equal(t, "attr_2_val_5", Encode(2, 5))
	assert.Equal(t, "attr_0_val_0.75", Encode(0, 0.75))

	attr, val, err := Decode(Encode(4, 3.125))
	require.NoError(t, err)
	assert.Equal(t, 4, attr)
	assert.Equal(t, 3.125, val)
}
