package override

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Override carries both the provider-sourced value and the user-edited one,
// plus audit metadata for who changed it and why.
type Override[T any] struct {
	OriginalValue   T          `json:"originalValue"`
	OverriddenValue T          `json:"overriddenValue"`
	IsOverridden    bool       `json:"isOverridden"`
	OverriddenAt    *time.Time `json:"overriddenAt,omitempty"`
	OverriddenBy    int64      `json:"overriddenBy,omitempty"`
	Reason          string     `json:"reason,omitempty"`
}

// Field is a tagged union: either a plain scalar straight from the provider
// or an Override wrapper. The distinction is carried by the type, not by
// probing object shapes at runtime. The canonical form of a non-overridden
// field is the plain scalar; a wrapper with isOverridden=false collapses to
// plain on ingestion, so a reverted field never lingers as a wrapper.
type Field[T any] struct {
	plain T
	ov    *Override[T]
}

// Plain wraps a provider-sourced scalar with no override history.
func Plain[T any](v T) Field[T] {
	return Field[T]{plain: v}
}

// NewOverride builds an overridden field, stamping the current time.
func NewOverride[T any](original, overridden T, by int64, reason string) Field[T] {
	now := time.Now().UTC()
	return Field[T]{ov: &Override[T]{
		OriginalValue:   original,
		OverriddenValue: overridden,
		IsOverridden:    true,
		OverriddenAt:    &now,
		OverriddenBy:    by,
		Reason:          reason,
	}}
}

// Value returns the effective value: the overridden one iff the field is
// overridden, else the original.
func (f Field[T]) Value() T {
	if f.ov != nil && f.ov.IsOverridden {
		return f.ov.OverriddenValue
	}
	if f.ov != nil {
		return f.ov.OriginalValue
	}
	return f.plain
}

// Original always returns the provider-sourced value, bypassing overrides.
func (f Field[T]) Original() T {
	if f.ov != nil {
		return f.ov.OriginalValue
	}
	return f.plain
}

func (f Field[T]) IsOverridden() bool {
	return f.ov != nil && f.ov.IsOverridden
}

// Audit returns the override metadata when the field is overridden.
func (f Field[T]) Audit() (Override[T], bool) {
	if f.ov == nil {
		return Override[T]{}, false
	}
	return *f.ov, true
}

// Revert collapses the field back to a plain scalar holding the original
// value. Persistence of the cleared override is the caller's concern.
func (f Field[T]) Revert() Field[T] {
	return Plain(f.Original())
}

// Rebase replaces the original value with a fresh provider reading while
// keeping any override in place.
func (f Field[T]) Rebase(fresh T) Field[T] {
	if f.ov != nil && f.ov.IsOverridden {
		ov := *f.ov
		ov.OriginalValue = fresh
		return Field[T]{ov: &ov}
	}
	return Plain(fresh)
}

// MarshalJSON emits the canonical wire form: bare scalar when plain,
// wrapper object when overridden.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if f.ov != nil && f.ov.IsOverridden {
		return json.Marshal(f.ov)
	}
	return json.Marshal(f.Value())
}

// overrideProbe detects the wrapper form by the presence of the
// isOverridden tag, matching what dashboards receive on the wire.
type overrideProbe struct {
	IsOverridden *bool `json:"isOverridden"`
}

// UnmarshalJSON accepts both wire forms. A wrapper whose isOverridden flag
// is false collapses to the plain original; anything that is neither a
// valid scalar nor a valid wrapper is an error.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var probe overrideProbe
		if err := json.Unmarshal(trimmed, &probe); err != nil {
			return fmt.Errorf("malformed field value: %w", err)
		}
		if probe.IsOverridden != nil {
			var ov Override[T]
			if err := json.Unmarshal(trimmed, &ov); err != nil {
				return fmt.Errorf("malformed field override: %w", err)
			}
			if !ov.IsOverridden {
				*f = Plain(ov.OriginalValue)
				return nil
			}
			*f = Field[T]{ov: &ov}
			return nil
		}
	}
	var v T
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return fmt.Errorf("malformed field value: %w", err)
	}
	*f = Plain(v)
	return nil
}
