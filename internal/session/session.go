// SPDX-License-Identifier: MIT

// Package session models the MAPI session lifecycle: a process-wide
// initialize/uninitialize refcount, profile logon, the message store
// table, and store handles that resolve named properties through the
// registry.
package session

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/olmapi/olmapi/internal/mapi"
	"github.com/olmapi/olmapi/internal/metrics"
	"github.com/olmapi/olmapi/internal/namedprop"
	"github.com/olmapi/olmapi/internal/propval"
	"github.com/olmapi/olmapi/internal/table"
)

// Runtime gates session creation behind balanced Initialize/Uninitialize
// calls, the way MAPIInitialize gates MAPILogonEx.
type Runtime struct {
	mu       sync.Mutex
	refs     int
	registry *namedprop.Registry
	logger   zerolog.Logger
}

// NewRuntime builds a runtime whose sessions resolve named properties
// through registry.
func NewRuntime(registry *namedprop.Registry, logger zerolog.Logger) *Runtime {
	return &Runtime{registry: registry, logger: logger}
}

// Initialize increments the runtime refcount. Every call must be balanced
// with Uninitialize; sessions can only be created while the count is
// positive.
func (r *Runtime) Initialize(flags InitFlags) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refs++
	r.logger.Debug().
		Uint32("flags", flags.Bits()).
		Int("refs", r.refs).
		Msg("runtime initialized")
}

// Uninitialize decrements the runtime refcount. Extra calls are logged and
// ignored.
func (r *Runtime) Uninitialize() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.refs == 0 {
		r.logger.Warn().Msg("unbalanced uninitialize call")
		return
	}
	r.refs--
	r.logger.Debug().Int("refs", r.refs).Msg("runtime uninitialized")
}

// Logon opens a session against a profile. It fails with
// MAPI_E_NOT_INITIALIZED when the runtime refcount is zero.
func (r *Runtime) Logon(profile *Profile, flags LogonFlags) (*Session, error) {
	if profile == nil {
		return nil, fmt.Errorf("nil profile: %w", mapi.MAPI_E_INVALID_PARAMETER)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.refs == 0 {
		return nil, fmt.Errorf("logon %q: %w", profile.Name, mapi.MAPI_E_NOT_INITIALIZED)
	}

	s := &Session{
		profile:  profile,
		registry: r.registry,
		unicode:  flags.Unicode,
		logger:   r.logger.With().Str("profile", profile.Name).Logger(),
	}
	metrics.IncActiveSessions()
	s.logger.Info().Uint32("flags", flags.Bits()).Msg("session logon")
	return s, nil
}

// Profile is a configured set of message stores a session can log on to.
type Profile struct {
	Name   string
	Stores []StoreInfo
}

// StoreInfo describes one message store in a profile.
type StoreInfo struct {
	DisplayName string
	Default     bool
	SupportMask uint32
	EntryID     []byte
}

// NewProfile builds a profile, assigning each store without an entry ID a
// deterministic 20-byte one (4 flag bytes + provider UID derived from the
// profile and store names).
func NewProfile(name string, stores ...StoreInfo) *Profile {
	p := &Profile{Name: name, Stores: stores}
	for i := range p.Stores {
		if len(p.Stores[i].EntryID) == 0 {
			uid := uuid.NewSHA1(uuid.NameSpaceOID, []byte(name+"/"+p.Stores[i].DisplayName))
			eid := make([]byte, 4, 20)
			p.Stores[i].EntryID = append(eid, uid[:]...)
		}
	}
	return p
}

// Session is a logged-on profile view. A session created with the Unicode
// flag exposes PT_UNICODE display names; otherwise PT_STRING8.
type Session struct {
	mu       sync.Mutex
	profile  *Profile
	registry *namedprop.Registry
	unicode  bool
	closed   bool
	logger   zerolog.Logger
}

// Logoff closes the session. Further calls on the session fail with
// MAPI_E_INVALID_OBJECT.
func (s *Session) Logoff() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	metrics.DecActiveSessions()
	s.logger.Info().Msg("session logoff")
}

func (s *Session) alive() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("session closed: %w", mapi.MAPI_E_INVALID_OBJECT)
	}
	return nil
}

// Stores returns the message store table: one row per store, sorted
// ascending by display name. Columns are PR_ENTRYID, the width-matching
// display name, PR_DEFAULT_STORE, PR_OBJECT_TYPE and
// PR_STORE_SUPPORT_MASK.
func (s *Session) Stores() (*table.Table, error) {
	if err := s.alive(); err != nil {
		return nil, err
	}

	nameTag := mapi.PR_DISPLAY_NAME_A
	if s.unicode {
		nameTag = mapi.PR_DISPLAY_NAME_W
	}

	t := table.New(mapi.PR_ENTRYID, nameTag, mapi.PR_DEFAULT_STORE, mapi.PR_OBJECT_TYPE, mapi.PR_STORE_SUPPORT_MASK)
	for _, info := range s.profile.Stores {
		var name propval.Value
		if s.unicode {
			name = propval.Unicode(nameTag, info.DisplayName)
		} else {
			name = propval.String8(nameTag, info.DisplayName)
		}
		t.AddRow(table.NewRow(
			propval.Binary(mapi.PR_ENTRYID, info.EntryID),
			name,
			propval.Bool(mapi.PR_DEFAULT_STORE, info.Default),
			propval.Int32(mapi.PR_OBJECT_TYPE, int32(mapi.MAPI_STORE)),
			propval.Int32(mapi.PR_STORE_SUPPORT_MASK, int32(info.SupportMask)),
		))
	}

	err := t.SortTable(table.SortOrderSet{
		Orders: []table.SortOrder{{Tag: nameTag, Direction: mapi.TABLE_SORT_ASCEND}},
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// openStoreKnownFlags is the set OpenStore accepts; anything else fails
// with MAPI_E_UNKNOWN_FLAGS. MAPI_MODIFY is absent: it shares bit 0x1 with
// MDB_NO_DIALOG and belongs to the OpenEntry flag space.
const openStoreKnownFlags = mapi.MAPI_BEST_ACCESS | mapi.MAPI_DEFERRED_ERRORS |
	mapi.MDB_NO_DIALOG | mapi.MDB_WRITE | mapi.MDB_TEMPORARY | mapi.MDB_NO_MAIL | mapi.MDB_ONLINE

// OpenStore opens the store with the given entry ID. The handle is
// writable when MDB_WRITE or MAPI_BEST_ACCESS is set.
func (s *Session) OpenStore(entryID []byte, flags uint32) (*Store, error) {
	if err := s.alive(); err != nil {
		return nil, err
	}
	if flags&^openStoreKnownFlags != 0 {
		metrics.RecordStoreOpen("bad_flags")
		return nil, fmt.Errorf("open store flags 0x%08X: %w", flags, mapi.MAPI_E_UNKNOWN_FLAGS)
	}

	for _, info := range s.profile.Stores {
		if !bytes.Equal(info.EntryID, entryID) {
			continue
		}
		metrics.RecordStoreOpen("success")
		writable := flags&(mapi.MDB_WRITE|mapi.MAPI_BEST_ACCESS) != 0
		return &Store{
			info:     info,
			writable: writable,
			session:  s,
			registry: s.registry,
		}, nil
	}

	metrics.RecordStoreOpen("not_found")
	return nil, fmt.Errorf("no store with entry ID %x: %w", entryID, mapi.MAPI_E_NOT_FOUND)
}

// DefaultStore opens the profile's default store.
func (s *Session) DefaultStore(flags uint32) (*Store, error) {
	if err := s.alive(); err != nil {
		return nil, err
	}
	for _, info := range s.profile.Stores {
		if info.Default {
			return s.OpenStore(info.EntryID, flags)
		}
	}
	return nil, fmt.Errorf("profile %q has no default store: %w", s.profile.Name, mapi.MAPI_E_NOT_FOUND)
}

// Store is an open message store handle.
type Store struct {
	info     StoreInfo
	writable bool
	session  *Session
	registry *namedprop.Registry
}

// Info returns the store's profile entry.
func (st *Store) Info() StoreInfo { return st.info }

// Writable reports whether the handle permits mapping creation.
func (st *Store) Writable() bool { return st.writable }

// GetIDsFromNames resolves names to property tags through the registry.
// MAPI_CREATE on a read-only handle fails with MAPI_E_NO_ACCESS.
func (st *Store) GetIDsFromNames(ctx context.Context, names []namedprop.Name, flags uint32) ([]mapi.PropTag, mapi.HResult, error) {
	if err := st.session.alive(); err != nil {
		return nil, 0, err
	}
	if flags&mapi.MAPI_CREATE != 0 && !st.writable {
		return nil, 0, fmt.Errorf("store %q is read-only: %w", st.info.DisplayName, mapi.MAPI_E_NO_ACCESS)
	}
	return st.registry.GetIDs(ctx, names, flags)
}

// GetNamesFromIDs resolves property IDs back to names through the
// registry.
func (st *Store) GetNamesFromIDs(ctx context.Context, ids []uint16) ([]*namedprop.Name, mapi.HResult, error) {
	if err := st.session.alive(); err != nil {
		return nil, 0, err
	}
	return st.registry.GetNames(ctx, ids)
}
