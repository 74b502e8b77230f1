package version

import (
	"testing"

	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCompatibility(t *testing.T) {
	tests := []struct {
		name          string
		supported     string
		declared      string
		expectError   bool
		errorContains string
		code          errors.ErrorCode
	}{
		{
			name:      "exact match",
			supported: "1.0.0",
			declared:  "1.0.0",
		},
		{
			name:      "declared patch higher",
			supported: "1.0.0",
			declared:  "1.0.4",
		},
		{
			name:      "supported patch higher",
			supported: "1.2.7",
			declared:  "1.2.0",
		},
		{
			name:      "v prefix",
			supported: "v1.2.0",
			declared:  "1.2.3",
		},
		{
			name:          "minor differs",
			supported:     "1.1.0",
			declared:      "1.2.0",
			expectError:   true,
			errorContains: "minor version mismatch",
			code:          errors.ErrCodeVersionMismatch,
		},
		{
			name:          "major differs",
			supported:     "2.0.0",
			declared:      "1.0.0",
			expectError:   true,
			errorContains: "major version mismatch",
			code:          errors.ErrCodeVersionMismatch,
		},
		{
			name:      "supported is main",
			supported: "main",
			declared:  "3.1.0",
		},
		{
			name:      "declared is main",
			supported: "1.0.0",
			declared:  "main",
		},
		{
			name:          "invalid declared version",
			supported:     "1.0.0",
			declared:      "latest",
			expectError:   true,
			errorContains: "invalid declared version",
			code:          errors.ErrCodeInvalidVersion,
		},
		{
			name:          "empty supported version",
			supported:     "",
			declared:      "1.0.0",
			expectError:   true,
			errorContains: "invalid supported version",
			code:          errors.ErrCodeInvalidVersion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckCompatibility(tt.supported, tt.declared)

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
				assert.Equal(t, tt.code, errors.GetCode(err))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestCheckConfigVersion(t *testing.T) {
	require.NoError(t, CheckConfigVersion(ConfigVersion))
	require.Error(t, CheckConfigVersion("0.9.0"))
}

func TestGetVersion(t *testing.T) {
	assert.Equal(t, Version, GetVersion())
}
