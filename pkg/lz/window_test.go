package lz

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWindowValidate(t *testing.T) {
	tests := []struct {
		name string
		win  Window
		ok   bool
	}{
		{"typical", Window{MinLength: 3, MaxLength: 0x111, MaxDisplacement: 0x1000}, true},
		{"unit aligned", Window{MinLength: 4, MaxLength: 16, MaxDisplacement: 64, UnitSize: 2}, true},
		{"min too small", Window{MinLength: 1, MaxLength: 16, MaxDisplacement: 64}, false},
		{"max below min", Window{MinLength: 4, MaxLength: 3, MaxDisplacement: 64}, false},
		{"zero window", Window{MinLength: 3, MaxLength: 16, MaxDisplacement: 0}, false},
		{"negative unit", Window{MinLength: 3, MaxLength: 16, MaxDisplacement: 64, UnitSize: -1}, false},
		{"unit misaligned", Window{MinLength: 3, MaxLength: 16, MaxDisplacement: 64, UnitSize: 2}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.win.Validate()
			if tt.ok {
				require.NoError(t, err)
			} else {
				require.True(t, errors.Is(err, ErrInvalidConfig))
			}
		})
	}
}
