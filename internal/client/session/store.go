package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/mgiraud/autotrader/internal/client/api"
	"github.com/mgiraud/autotrader/internal/client/bus"
	"github.com/mgiraud/autotrader/internal/client/storage"
	"github.com/mgiraud/autotrader/internal/logging"
)

// logoutNotifyTimeout bounds the best-effort server notification on logout.
const logoutNotifyTimeout = 5 * time.Second

// Store is the single source of truth for session state. All methods are
// safe for concurrent use; the session record is guarded by one mutex.
type Store struct {
	api       api.Client
	persist   *persistence
	log       logging.Logger
	cancelBus func()

	mu            sync.Mutex
	user          *api.User
	token         string
	authenticated bool
	loading       bool
	lastError     string
	hydrated      bool

	subMu   sync.Mutex
	subs    map[int]func(Snapshot)
	nextSub int
}

// NewStore builds a Store over the given API client, key-value store, and
// event bus. The store subscribes to the bus once, here; tear down with
// Close.
func NewStore(apiClient api.Client, kv storage.KV, b *bus.Bus, log logging.Logger) *Store {
	s := &Store{
		api:     apiClient,
		persist: &persistence{kv: kv, log: log},
		log:     log,
		subs:    make(map[int]func(Snapshot)),
	}
	s.cancelBus = b.Subscribe(func(ev bus.Invalidation) {
		s.invalidate(context.Background(), ev.Reason)
	})
	return s
}

// Close detaches the store from the event bus.
func (s *Store) Close() {
	if s.cancelBus != nil {
		s.cancelBus()
	}
}

// Snapshot returns a read-only copy of the current session state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{
		Token:           s.token,
		IsAuthenticated: s.authenticated,
		IsLoading:       s.loading,
		LastError:       s.lastError,
	}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	return snap
}

// Subscribe registers fn to be called after every observable state change.
// The returned cancel function removes the subscription.
func (s *Store) Subscribe(fn func(Snapshot)) (cancel func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

// notify delivers the current snapshot to all subscribers, outside both
// locks so handlers may call back into the store.
func (s *Store) notify() {
	snap := s.Snapshot()

	s.subMu.Lock()
	fns := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

// Initialize hydrates the session from the persisted store. It runs at most
// once per process lifetime; later calls return immediately. No network call
// is made: a stored session is adopted as-is, except that a JWT already past
// its expiry is discarded, since the server would reject it on first use
// anyway.
func (s *Store) Initialize(ctx context.Context) {
	s.mu.Lock()
	if s.hydrated {
		s.mu.Unlock()
		return
	}
	s.hydrated = true
	s.mu.Unlock()

	ps := s.persist.load(ctx)
	if ps == nil {
		return
	}
	if tokenExpired(ps.Token, time.Now()) {
		s.log.Info(ctx, "persisted session has expired token, discarding")
		s.persist.clear(ctx)
		return
	}

	s.api.SetToken(ps.Token)
	s.mu.Lock()
	s.user = ps.User
	s.token = ps.Token
	s.authenticated = true
	s.mu.Unlock()
	s.notify()
	s.log.Info(ctx, "session hydrated from storage", "username", ps.User.Username)
}

// Login validates creds locally, then exchanges them for a token and user
// record. On failure the existing session, if any, is left untouched; only
// LastError changes. The outcome is also returned for the caller.
func (s *Store) Login(ctx context.Context, creds Credentials) Result {
	if err := creds.validate(); err != nil {
		return s.fail(err.Error())
	}

	s.begin()

	res, err := s.api.Login(ctx, strings.TrimSpace(creds.Username), creds.Password)
	if err != nil {
		s.log.Warn(ctx, "login failed", "error", err)
		return s.fail(failureMessage(err, "invalid username or password"))
	}
	if res == nil || res.Token == "" || res.User == nil {
		// Adopting one without the other would break the user/token pairing.
		s.log.Warn(ctx, "login response missing token or user")
		return s.fail(failureMessage(api.ErrInvalidResponse, ""))
	}

	s.api.SetToken(res.Token)
	s.mu.Lock()
	s.user = res.User
	s.token = res.Token
	s.authenticated = true
	s.loading = false
	s.lastError = ""
	ps := &persistedSession{User: res.User, Token: res.Token, IsAuthenticated: true}
	s.mu.Unlock()

	s.persist.save(ctx, ps)
	s.notify()
	s.log.Info(ctx, "login successful", "username", res.User.Username)
	return Result{Success: true}
}

// Register validates data locally, then creates the account. Registration
// does not log the user in; session state is untouched apart from the
// loading flag and LastError.
func (s *Store) Register(ctx context.Context, reg Registration) Result {
	if err := reg.validate(); err != nil {
		return s.fail(err.Error())
	}

	s.begin()

	if _, err := s.api.Register(ctx, reg.toRequest()); err != nil {
		s.log.Warn(ctx, "registration failed", "error", err)
		return s.fail(failureMessage(err, "registration rejected"))
	}

	s.mu.Lock()
	s.loading = false
	s.lastError = ""
	s.mu.Unlock()
	s.notify()
	s.log.Info(ctx, "registration successful", "username", reg.Username)
	return Result{Success: true}
}

// Logout resets the session and clears persisted state immediately; it
// always succeeds locally. The server is notified best-effort in the
// background, without retries, and a failure there never reverts local
// state. Logging out an already-empty session is a no-op.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	had := s.user != nil || s.token != "" || s.authenticated
	if !had {
		s.mu.Unlock()
		return
	}
	hadToken := s.token != ""
	s.user = nil
	s.token = ""
	s.authenticated = false
	s.lastError = ""
	s.mu.Unlock()

	s.api.SetToken("")
	s.persist.clear(ctx)
	s.notify()
	s.log.Info(ctx, "logged out")

	if hadToken {
		go func() {
			nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), logoutNotifyTimeout)
			defer cancel()
			if err := s.api.Logout(nctx); err != nil {
				s.log.Warn(nctx, "server logout notification failed", "error", err)
			}
		}()
	}
}

// RefreshUser re-fetches the user record for the current token. Without a
// token it is a no-op. A rejected token means the session is dead
// server-side and triggers the forced-invalidation path; transient failures
// (server unreachable, 5xx) keep the session as-is.
func (s *Store) RefreshUser(ctx context.Context) {
	s.mu.Lock()
	token := s.token
	s.mu.Unlock()
	if token == "" {
		return
	}

	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
	s.notify()

	u, err := s.api.CurrentUser(ctx)
	if err != nil {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
		if errors.Is(err, api.ErrUnauthorized) {
			s.invalidate(ctx, "token rejected")
			return
		}
		s.log.Warn(ctx, "failed to refresh user", "error", err)
		s.notify()
		return
	}

	s.mu.Lock()
	if s.token == "" {
		// Logged out while the refresh was in flight; adopting the user now
		// would break the user/token pairing.
		s.loading = false
		s.mu.Unlock()
		s.notify()
		return
	}
	s.user = u
	s.authenticated = true
	s.loading = false
	ps := &persistedSession{User: u, Token: s.token, IsAuthenticated: true}
	s.mu.Unlock()

	s.persist.save(ctx, ps)
	s.notify()
}

// ClearError discards LastError.
func (s *Store) ClearError() {
	s.mu.Lock()
	s.lastError = ""
	s.mu.Unlock()
	s.notify()
}

// invalidate is the forced-logout path shared by the bus subscription and a
// rejected refresh. Unlike Logout it skips the server notification: the
// server already rejected the token. Repeated invalidations are no-ops.
func (s *Store) invalidate(ctx context.Context, reason string) {
	s.mu.Lock()
	if s.user == nil && s.token == "" && !s.authenticated {
		s.mu.Unlock()
		return
	}
	s.user = nil
	s.token = ""
	s.authenticated = false
	s.mu.Unlock()

	s.api.SetToken("")
	s.persist.clear(ctx)
	s.notify()
	s.log.Info(ctx, "session invalidated", "reason", reason)
}

// begin marks an operation in flight and clears the previous error.
func (s *Store) begin() {
	s.mu.Lock()
	s.loading = true
	s.lastError = ""
	s.mu.Unlock()
	s.notify()
}

// fail settles the current operation with a user-facing message.
func (s *Store) fail(msg string) Result {
	s.mu.Lock()
	s.loading = false
	s.lastError = msg
	s.mu.Unlock()
	s.notify()
	return Result{Error: msg}
}

// failureMessage maps a request error to the message shown inline on the
// form. Each failure class gets its own message; details stay in the log.
func failureMessage(err error, unauthorizedMsg string) string {
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		return unauthorizedMsg
	case errors.Is(err, api.ErrUnavailable):
		return "server unavailable, check your connection"
	case errors.Is(err, api.ErrInvalidResponse):
		return "unexpected server response"
	default:
		return "server error, try again later"
	}
}
