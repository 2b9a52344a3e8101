package claims

import (
	"encoding/json"
	"time"
)

// Kind tags which field of a Value is meaningful.
type Kind int

const (
	KindString Kind = iota
	KindStringList
	KindInstant
	KindRaw
)

// Value is a tagged union over the shapes a mapped claim can take.
type Value struct {
	Kind       Kind
	String     string
	StringList []string
	Instant    time.Time
	Raw        json.RawMessage
}

// Mapper converts a claim's raw JSON representation into a Value.
type Mapper func(raw json.RawMessage) (Value, error)
