package access

// SessionState tracks the lifecycle of a session snapshot. A snapshot moves
// uninitialized -> loading -> resolved, unless the backing user store holds
// zero superuser rows, in which case it resolves to system_locked and every
// consumer must check that state before anything else.
type SessionState string

const (
	StateUninitialized SessionState = "uninitialized"
	StateLoading       SessionState = "loading"
	StateResolved      SessionState = "resolved"
	StateSystemLocked  SessionState = "system_locked"
)

// Status mirrors the user lifecycle states the resolver cares about.
type Status string

const (
	StatusActive   Status = "active"
	StatusPending  Status = "pending"
	StatusInactive Status = "inactive"
)

// GroupGrant is a group membership together with the permission keys the
// group carries.
type GroupGrant struct {
	ID             int64
	Name           string
	PermissionKeys []string
}

// ChannelGrant is a per-user, per-channel write capability, independent of
// the general permission graph.
type ChannelGrant struct {
	ChannelID string
	CanWrite  bool
}

// Snapshot is an immutable view of everything authorization needs for one
// session. It is built once per fetch and replaced wholesale on refresh;
// resolver methods never mutate it.
type Snapshot struct {
	State         SessionState
	Authenticated bool
	UserID        int64
	Status        Status
	IsSuperuser   bool
	Groups        []GroupGrant
	DirectKeys    []string
	Channels      []ChannelGrant

	effective   map[string]struct{}
	channelCaps map[string]bool
}

// Uninitialized is the zero snapshot: nothing loaded, everything denied.
func Uninitialized() *Snapshot {
	return &Snapshot{State: StateUninitialized}
}

// Loading marks a snapshot fetch in flight; resolves like no session.
func Loading() *Snapshot {
	return &Snapshot{State: StateLoading}
}

// SystemLocked is the bootstrap state reached when no superuser record
// exists. It pre-empts authenticated and unauthenticated resolution.
func SystemLocked() *Snapshot {
	return &Snapshot{State: StateSystemLocked}
}

// Unauthenticated is a resolved snapshot without a session.
func Unauthenticated() *Snapshot {
	return &Snapshot{State: StateResolved}
}

// Resolve builds a resolved, authenticated snapshot and precomputes the
// effective permission set: direct keys unioned with every group's keys.
// The superuser short-circuit lives in the resolver, not in the set.
func Resolve(userID int64, status Status, superuser bool, groups []GroupGrant, directKeys []string, channels []ChannelGrant) *Snapshot {
	s := &Snapshot{
		State:         StateResolved,
		Authenticated: true,
		UserID:        userID,
		Status:        status,
		IsSuperuser:   superuser,
		Groups:        groups,
		DirectKeys:    directKeys,
		Channels:      channels,
		effective:     make(map[string]struct{}),
		channelCaps:   make(map[string]bool),
	}
	for _, key := range directKeys {
		s.effective[key] = struct{}{}
	}
	for _, g := range groups {
		for _, key := range g.PermissionKeys {
			s.effective[key] = struct{}{}
		}
	}
	for _, c := range channels {
		s.channelCaps[c.ChannelID] = c.CanWrite
	}
	return s
}

// EffectiveKeys returns the literal granted keys, sorted nowhere in
// particular. Superusers additionally behave as holding the wildcard.
func (s *Snapshot) EffectiveKeys() []string {
	if s == nil || s.effective == nil {
		return nil
	}
	keys := make([]string, 0, len(s.effective))
	for k := range s.effective {
		keys = append(keys, k)
	}
	return keys
}

func (s *Snapshot) inEffectiveSet(key string) bool {
	if s.effective == nil {
		return false
	}
	if _, ok := s.effective[Wildcard]; ok {
		return true
	}
	_, ok := s.effective[key]
	return ok
}
