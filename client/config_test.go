package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAuthScheme(t *testing.T) {
	tests := []struct {
		in      string
		want    AuthScheme
		wantErr bool
	}{
		{"", AuthBasic, false},
		{"basic", AuthBasic, false},
		{"Basic", AuthBasic, false},
		{"ntlm", AuthNTLM, false},
		{"NTLM", AuthNTLM, false},
		{"kerberos", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAuthScheme(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAuthScheme_String(t *testing.T) {
	assert.Equal(t, "basic", AuthBasic.String())
	assert.Equal(t, "ntlm", AuthNTLM.String())
	assert.Equal(t, "AuthScheme(5)", AuthScheme(5).String())
}

func TestConfigError(t *testing.T) {
	err := configErrorf("persistance factor", "must be at least 1, got %d", 0)

	assert.EqualError(t, err, "client: invalid persistance factor: must be at least 1, got 0")
	assert.ErrorIs(t, err, ErrConfig)
}
