package dtos

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Optional is a tri-state patch field: absent (Set false) leaves the
// stored value alone, JSON null clears it, any other value replaces it.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func Some[T any](v T) Optional[T] { return Optional[T]{Set: true, Value: v} }

func Null[T any]() Optional[T] { return Optional[T]{Set: true, Null: true} }

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		o.Null = true
		return nil
	}
	return json.Unmarshal(b, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// ApplyTo writes the field into dst when it was supplied.
func (o Optional[T]) ApplyTo(dst *T) {
	if !o.Set {
		return
	}
	if o.Null {
		var zero T
		*dst = zero
		return
	}
	*dst = o.Value
}

// SkillList accepts either a JSON array or a comma-separated string.
// Either way entries are trimmed and empty ones dropped.
type SkillList []string

func (s *SkillList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*s = nil
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var raw string
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		*s = SplitSkills(raw)
		return nil
	}
	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return err
	}
	*s = cleanSkills(list)
	return nil
}

// SplitSkills turns "a, b,,c " into ["a" "b" "c"].
func SplitSkills(raw string) SkillList {
	return cleanSkills(strings.Split(raw, ","))
}

func cleanSkills(parts []string) SkillList {
	out := SkillList{}
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Strings returns a non-nil slice so it serializes as [].
func (s SkillList) Strings() []string {
	if s == nil {
		return []string{}
	}
	return []string(s)
}
