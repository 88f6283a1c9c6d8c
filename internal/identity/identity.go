// Package identity resolves the client's session identity: a per-installation
// session token and the table number carried by the QR-code deep link.
package identity

import (
	"encoding/base64"
	"encoding/json"
	"net/url"
	"regexp"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/state"
)

// tokenPattern matches the decoded obfuscated table token ("mesa:7").
var tokenPattern = regexp.MustCompile(`mesa:(\d+)`)

// Identity is the resolved per-client identity used on every order.
type Identity struct {
	// SessionID is a random token generated once and reused until an
	// explicit session reset.
	SessionID string

	// TableNumber is the physical table, 0 when browsing without one
	// (staff and admin contexts).
	TableNumber int

	// CleanURL is the entry URL with any table token or parameter
	// stripped, suitable for re-display.
	CleanURL string
}

// Resolver derives and persists session identity through the state container.
type Resolver struct {
	store state.Store
}

// NewResolver returns a Resolver backed by store.
func NewResolver(store state.Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve produces the session identity for this start. rawURL is the entry
// link (typically the scanned QR deep link); it may be empty.
//
// The table number is resolved in precedence order: obfuscated `t` token,
// plain `mesa` parameter, previously persisted value, then 0. A winning URL
// source is persisted so later starts without a link keep the table.
// Malformed tokens fall through silently to the next source.
func (r *Resolver) Resolve(rawURL string) (Identity, error) {
	id := Identity{CleanURL: rawURL}

	sid, err := r.sessionID()
	if err != nil {
		return Identity{}, err
	}
	id.SessionID = sid

	u, err := url.Parse(rawURL)
	if rawURL != "" && err == nil {
		q := u.Query()

		if table, ok := decodeToken(q.Get("t")); ok {
			if err := r.persistTable(table); err != nil {
				return Identity{}, err
			}
			id.TableNumber = table
			id.CleanURL = stripParams(u, "t", "mesa")
			return id, nil
		}

		if table, err := strconv.Atoi(q.Get("mesa")); err == nil && table > 0 {
			if err := r.persistTable(table); err != nil {
				return Identity{}, err
			}
			id.TableNumber = table
			id.CleanURL = stripParams(u, "t", "mesa")
			return id, nil
		}
	}

	id.TableNumber = r.storedTable()
	return id, nil
}

// Reset discards the session token and the tracked active order. The cart and
// member credentials are intentionally left alone.
func (r *Resolver) Reset() error {
	if err := r.store.Delete(state.KeySessionID); err != nil {
		return errors.Wrap(err, "clear session")
	}
	if err := r.store.Delete(state.KeyActiveOrder); err != nil {
		return errors.Wrap(err, "clear active order")
	}
	return nil
}

// EncodeToken builds the obfuscated URL token for a table number. It is the
// inverse of the `t` parameter decoding done by Resolve.
func EncodeToken(table int) string {
	return base64.StdEncoding.EncodeToString([]byte("mesa:" + strconv.Itoa(table)))
}

func (r *Resolver) sessionID() (string, error) {
	if raw, ok := r.store.Get(state.KeySessionID); ok {
		var sid string
		if err := json.Unmarshal(raw, &sid); err == nil && sid != "" {
			return sid, nil
		}
	}

	sid := uuid.New().String()
	raw, _ := json.Marshal(sid)
	if err := r.store.Set(state.KeySessionID, raw); err != nil {
		return "", errors.Wrap(err, "persist session id")
	}
	return sid, nil
}

func (r *Resolver) persistTable(table int) error {
	raw, _ := json.Marshal(table)
	if err := r.store.Set(state.KeyTableNumber, raw); err != nil {
		return errors.Wrap(err, "persist table number")
	}
	return nil
}

func (r *Resolver) storedTable() int {
	raw, ok := r.store.Get(state.KeyTableNumber)
	if !ok {
		return 0
	}
	var table int
	if err := json.Unmarshal(raw, &table); err != nil || table < 0 {
		return 0
	}
	return table
}

// decodeToken decodes the base64 `t` parameter and extracts the table number.
// Any malformed input reports ok=false.
func decodeToken(token string) (table int, ok bool) {
	if token == "" {
		return 0, false
	}
	decoded, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return 0, false
	}
	m := tokenPattern.FindSubmatch(decoded)
	if m == nil {
		return 0, false
	}
	table, err = strconv.Atoi(string(m[1]))
	if err != nil || table <= 0 {
		return 0, false
	}
	return table, true
}

// stripParams removes the table-identity parameters from u and returns the
// resulting URL string.
func stripParams(u *url.URL, params ...string) string {
	q := u.Query()
	for _, p := range params {
		q.Del(p)
	}
	u.RawQuery = q.Encode()
	return u.String()
}
