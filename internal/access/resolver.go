package access

// Resolver methods answer authorization questions against the in-memory
// snapshot. They are pure and total: no I/O, no errors, and absence of data
// resolves to the most restrictive answer, except page reads which default
// permissive when no rule is declared.

// HasPermission reports whether the session holds the given permission key.
// Superusers always pass. Missing or inactive sessions always fail. Pending
// users fail every write-class key no matter what was granted.
func (s *Snapshot) HasPermission(key string) bool {
	if s == nil || s.State != StateResolved || !s.Authenticated {
		return false
	}
	if s.Status == StatusInactive {
		return false
	}
	if s.IsSuperuser {
		return true
	}
	if s.Status == StatusPending && IsWriteClassKey(key) {
		return false
	}
	return s.inEffectiveSet(key)
}

// HasAnyPermission is true when at least one key resolves.
func (s *Snapshot) HasAnyPermission(keys ...string) bool {
	if s != nil && s.State == StateResolved && s.Authenticated && s.IsSuperuser && s.Status != StatusInactive {
		return true
	}
	for _, key := range keys {
		if s.HasPermission(key) {
			return true
		}
	}
	return false
}

// HasAllPermissions is true when every key resolves.
func (s *Snapshot) HasAllPermissions(keys ...string) bool {
	if s == nil || s.State != StateResolved || !s.Authenticated {
		return false
	}
	if s.IsSuperuser && s.Status != StatusInactive {
		return true
	}
	for _, key := range keys {
		if !s.HasPermission(key) {
			return false
		}
	}
	return true
}

// CanReadPage gates page visibility. The lockout state denies everything.
// System pages need admin, the dashboard config page needs its dedicated
// manage permission, declared pages consult the read table. Undeclared pages
// default to visible even without a resolved session, so a page nobody wrote
// a rule for never silently vanishes.
func (s *Snapshot) CanReadPage(page string) bool {
	if s == nil || s.State == StateSystemLocked {
		return false
	}
	if s.State == StateResolved && s.Authenticated && s.IsSuperuser && s.Status != StatusInactive {
		return true
	}
	if _, ok := systemPages[page]; ok {
		return s.HasPermission(adminKey)
	}
	if page == PageDashboardConfig {
		return s.HasPermission(manageConfigKey)
	}
	required, ok := pageReadPerms[page]
	if !ok {
		return s.Status != StatusInactive
	}
	return s.HasPermission(required)
}

// CanWritePage gates page mutations. Superusers always write; pending and
// inactive users never do. Pages without a declared write permission allow
// any active session.
func (s *Snapshot) CanWritePage(page string) bool {
	if s == nil || s.State != StateResolved || !s.Authenticated {
		return false
	}
	if s.Status == StatusInactive {
		return false
	}
	if s.IsSuperuser {
		return true
	}
	if s.Status == StatusPending {
		return false
	}
	if _, ok := systemPages[page]; ok {
		return s.HasPermission(adminKey)
	}
	if page == PageDashboardConfig {
		return s.HasPermission(manageConfigKey)
	}
	required, ok := pageWritePerms[page]
	if !ok {
		return true
	}
	return s.HasPermission(required)
}

// CanWriteChannel consults the per-user channel access list by exact id.
// Superusers bypass it, pending users never write, and an absent entry
// denies.
func (s *Snapshot) CanWriteChannel(channelID string) bool {
	if s == nil || s.State != StateResolved || !s.Authenticated {
		return false
	}
	if s.Status == StatusInactive {
		return false
	}
	if s.IsSuperuser {
		return true
	}
	if s.Status == StatusPending {
		return false
	}
	return s.channelCaps[channelID]
}
