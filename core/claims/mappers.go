package claims

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// IdentityString maps a JSON string claim straight through.
func IdentityString(raw json.RawMessage) (Value, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return Value{}, fmt.Errorf("claims: identity-string: %w", err)
	}
	return Value{Kind: KindString, String: s}, nil
}

// JSONCollection maps a JSON array of primitives, or a single JSON
// string (wrapped as a one-element list), to a StringList.
func JSONCollection(raw json.RawMessage) (Value, error) {
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return Value{Kind: KindStringList, StringList: []string{single}}, nil
	}

	var items []interface{}
	if err := json.Unmarshal(raw, &items); err != nil {
		return Value{}, fmt.Errorf("claims: json-collection: %w", err)
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, fmt.Sprint(item))
	}
	return Value{Kind: KindStringList, StringList: out}, nil
}

// StringSplitter returns a Mapper that splits a JSON string claim on sep,
// trimming whitespace and dropping empty fields — the shape `scope` and
// `scp` claims take in the wild (space-delimited).
func StringSplitter(sep string) Mapper {
	return func(raw json.RawMessage) (Value, error) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return Value{}, fmt.Errorf("claims: string-splitter: %w", err)
		}
		var out []string
		for _, part := range strings.Split(s, sep) {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
		return Value{Kind: KindStringList, StringList: out}, nil
	}
}

// Instant maps a JSON number (seconds since the Unix epoch) to a Value
// carrying the corresponding time.Time.
func Instant(raw json.RawMessage) (Value, error) {
	var secs int64
	if err := json.Unmarshal(raw, &secs); err != nil {
		return Value{}, fmt.Errorf("claims: instant: %w", err)
	}
	return Value{Kind: KindInstant, Instant: time.Unix(secs, 0).UTC()}, nil
}

// KeycloakRoles maps the value of a "realm_access" claim, itself
// {"roles":[...]}, to a StringList. Registered against the
// "realm_access" claim name, so the raw JSON it receives is already
// unwrapped to that claim's value.
func KeycloakRoles(raw json.RawMessage) (Value, error) {
	var doc struct {
		Roles []string `json:"roles"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Value{}, fmt.Errorf("claims: keycloak-roles: %w", err)
	}
	return Value{Kind: KindStringList, StringList: doc.Roles}, nil
}

// KeycloakGroups maps a plain JSON array claim to a StringList.
func KeycloakGroups(raw json.RawMessage) (Value, error) {
	var groups []string
	if err := json.Unmarshal(raw, &groups); err != nil {
		return Value{}, fmt.Errorf("claims: keycloak-groups: %w", err)
	}
	return Value{Kind: KindStringList, StringList: groups}, nil
}
