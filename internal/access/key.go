package access

import (
	"fmt"
	"strings"
)

// Wildcard grants every permission when present in an effective set.
const Wildcard = "*"

const (
	ActionRead         = "read"
	ActionWrite        = "write"
	ActionAdmin        = "admin"
	ActionManageConfig = "manage_config"
)

// AppNova is the application scope all built-in permission keys live under.
const AppNova = "nova"

// Key is the single source of truth for the app.resource.action permission
// key format. Everything that builds or inspects a key goes through this
// type so the triple-to-string mapping cannot drift.
type Key struct {
	App      string
	Resource string
	Action   string
}

func NewKey(app, resource, action string) Key {
	return Key{App: app, Resource: resource, Action: action}
}

func (k Key) String() string {
	return k.App + "." + k.Resource + "." + k.Action
}

// ParseKey splits a dot-joined permission key back into its triple.
func ParseKey(s string) (Key, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return Key{}, fmt.Errorf("invalid permission key %q: want app.resource.action", s)
	}
	return Key{App: parts[0], Resource: parts[1], Action: parts[2]}, nil
}

// IsWriteClass reports whether the action mutates state. Pending users have
// these suppressed regardless of grants.
func (k Key) IsWriteClass() bool {
	switch k.Action {
	case ActionWrite, ActionAdmin, ActionManageConfig:
		return true
	}
	return false
}

// IsWriteClassKey checks the structured action when the key parses, and
// falls back to a suffix match for keys that do not follow the triple
// convention.
func IsWriteClassKey(s string) bool {
	if k, err := ParseKey(s); err == nil {
		return k.IsWriteClass()
	}
	for _, suffix := range []string{"." + ActionWrite, "." + ActionAdmin, "." + ActionManageConfig} {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}
