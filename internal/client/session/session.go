package session

import (
	"strings"

	"github.com/mgiraud/autotrader/internal/client/api"
)

// ValidationError reports a local precondition failure. Operations failing
// validation return before any network call is made.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

// Credentials is the login input.
type Credentials struct {
	Username string
	Password string
}

// validate checks that both fields are non-empty after trimming.
func (c Credentials) validate() error {
	if strings.TrimSpace(c.Username) == "" {
		return ValidationError("username required")
	}
	if strings.TrimSpace(c.Password) == "" {
		return ValidationError("password required")
	}
	return nil
}

// Registration is the register input. ConfirmPassword is checked locally and
// never sent to the server.
type Registration struct {
	Username                string
	Email                   string
	Password                string
	ConfirmPassword         string
	SplinterlandsUsername   string
	SplinterlandsPostingKey string
}

func (r Registration) validate() error {
	if r.Password != r.ConfirmPassword {
		return ValidationError("passwords do not match")
	}
	if len(r.Password) < 8 {
		return ValidationError("password must be at least 8 characters")
	}
	return nil
}

func (r Registration) toRequest() *api.Registration {
	return &api.Registration{
		Username:                r.Username,
		Email:                   r.Email,
		Password:                r.Password,
		SplinterlandsUsername:   r.SplinterlandsUsername,
		SplinterlandsPostingKey: r.SplinterlandsPostingKey,
	}
}

// Result is the outcome of a session action, for the caller to act on
// (e.g. navigate on success, show Error inline otherwise).
type Result struct {
	Success bool
	Error   string
}

// Snapshot is a read-only copy of the session state.
type Snapshot struct {
	User            *api.User
	Token           string
	IsAuthenticated bool
	IsLoading       bool
	LastError       string
}

// IsAdmin reports whether the current user has admin rights.
func (s Snapshot) IsAdmin() bool { return s.User != nil && s.User.IsAdmin }

// CanTrade reports whether trading is enabled for the current user.
func (s Snapshot) CanTrade() bool { return s.User != nil && s.User.TradingEnabled }

// HasPostingKey reports whether a Splinterlands posting key is linked.
func (s Snapshot) HasPostingKey() bool { return s.User != nil && s.User.HasPostingKey }
