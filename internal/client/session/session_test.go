package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgiraud/autotrader/internal/client/api"
)

func TestCredentialsValidate(t *testing.T) {
	tests := []struct {
		name    string
		creds   Credentials
		wantErr string
	}{
		{"valid", Credentials{Username: "bob", Password: "secret123"}, ""},
		{"empty username", Credentials{Username: "", Password: "x"}, "username required"},
		{"blank username", Credentials{Username: "   ", Password: "x"}, "username required"},
		{"empty password", Credentials{Username: "bob", Password: ""}, "password required"},
		{"blank password", Credentials{Username: "bob", Password: "  "}, "password required"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			err := tt.creds.validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
			var ve ValidationError
			assert.ErrorAs(t, err, &ve)
		})
	}
}

func TestRegistrationValidate(t *testing.T) {
	tests := []struct {
		name    string
		reg     Registration
		wantErr string
	}{
		{
			"valid",
			Registration{Username: "alice", Email: "a@x.com", Password: "secret123", ConfirmPassword: "secret123"},
			"",
		},
		{
			"mismatch wins over length",
			Registration{Password: "abc", ConfirmPassword: "xyz"},
			"passwords do not match",
		},
		{
			"too short",
			Registration{Password: "abc", ConfirmPassword: "abc"},
			"password must be at least 8 characters",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			err := tt.reg.validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestRegistrationToRequestDropsConfirmation(t *testing.T) {
	reg := Registration{
		Username:        "alice",
		Email:           "a@x.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	}

	req := reg.toRequest()
	assert.Equal(t, "alice", req.Username)
	assert.Equal(t, "secret123", req.Password)
}

func TestSnapshotHelpers(t *testing.T) {
	empty := Snapshot{}
	assert.False(t, empty.IsAdmin())
	assert.False(t, empty.CanTrade())
	assert.False(t, empty.HasPostingKey())

	full := Snapshot{User: &api.User{IsAdmin: true, TradingEnabled: true, HasPostingKey: true}}
	assert.True(t, full.IsAdmin())
	assert.True(t, full.CanTrade())
	assert.True(t, full.HasPostingKey())
}
