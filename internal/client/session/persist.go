package session

import (
	"context"
	"encoding/json"

	"github.com/mgiraud/autotrader/internal/client/api"
	"github.com/mgiraud/autotrader/internal/client/storage"
	"github.com/mgiraud/autotrader/internal/logging"
)

// StorageKey is the single well-known key the durable session subset lives
// under.
const StorageKey = "auth-storage"

// persistedSession is the durable subset of the session. Unknown fields in a
// stored payload are ignored on read, so older clients survive schema growth.
type persistedSession struct {
	User            *api.User `json:"user,omitempty"`
	Token           string    `json:"token,omitempty"`
	IsAuthenticated bool      `json:"is_authenticated"`
}

// consistent reports the user/token pairing invariant: both present or both
// absent.
func (p *persistedSession) consistent() bool {
	return (p.User != nil) == (p.Token != "")
}

// persistence mirrors the durable session subset into the key-value store.
// Every write is best-effort: a failing store degrades to "log in again next
// start", so errors are logged and swallowed.
type persistence struct {
	kv  storage.KV
	log logging.Logger
}

// load reads the persisted session. It returns nil — no prior session — for
// a missing key, an undecodable payload, or a payload violating the
// user/token invariant; the latter two are discarded from storage as corrupt.
func (p *persistence) load(ctx context.Context) *persistedSession {
	raw, err := p.kv.Get(ctx, StorageKey)
	if err != nil {
		p.log.Warn(ctx, "failed to read persisted session", "error", err)
		return nil
	}
	if raw == nil {
		return nil
	}

	var ps persistedSession
	if err := json.Unmarshal(raw, &ps); err != nil {
		p.log.Warn(ctx, "discarding corrupt persisted session", "error", err)
		p.clear(ctx)
		return nil
	}
	if !ps.consistent() {
		p.log.Warn(ctx, "discarding inconsistent persisted session")
		p.clear(ctx)
		return nil
	}
	if ps.User == nil {
		// A stored empty session carries no information.
		return nil
	}
	return &ps
}

func (p *persistence) save(ctx context.Context, ps *persistedSession) {
	raw, err := json.Marshal(ps)
	if err != nil {
		p.log.Error(ctx, "failed to encode session for persistence", "error", err)
		return
	}
	if err := p.kv.Set(ctx, StorageKey, raw); err != nil {
		p.log.Warn(ctx, "failed to persist session", "error", err)
	}
}

func (p *persistence) clear(ctx context.Context) {
	if err := p.kv.Delete(ctx, StorageKey); err != nil {
		p.log.Warn(ctx, "failed to clear persisted session", "error", err)
	}
}
