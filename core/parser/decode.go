package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrLimitExceeded is the sentinel wrapped by every limit breach this
// package reports, so callers can classify with errors.Is without
// inspecting message text.
var ErrLimitExceeded = errors.New("parser: size or depth limit exceeded")

// DecodeObject validates segment against MaxPayloadSize and every in-parse
// limit (string, array, depth) and, if it passes, decodes it as a JSON
// object into a map of raw per-field messages. The pipeline calls it once
// per decoded JWT segment (header, payload), so this is where each
// segment's MaxPayloadSize limit is enforced.
func (c Config) DecodeObject(segment []byte) (map[string]json.RawMessage, error) {
	c = c.withDefaults()

	if len(segment) > c.MaxPayloadSize {
		return nil, fmt.Errorf("%w: segment exceeds max_payload_size", ErrLimitExceeded)
	}

	dec := json.NewDecoder(bytes.NewReader(segment))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parser: read root token: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("parser: top-level value is not a JSON object")
	}
	if err := c.walkObjectBody(dec, 1); err != nil {
		return nil, err
	}

	var out map[string]json.RawMessage
	if err := json.Unmarshal(segment, &out); err != nil {
		return nil, fmt.Errorf("parser: decode object: %w", err)
	}
	return out, nil
}

func (c Config) walkValue(dec *json.Decoder, depth int) error {
	if depth > c.MaxDepth {
		return fmt.Errorf("%w: nesting depth exceeds %d", ErrLimitExceeded, c.MaxDepth)
	}

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("parser: read token: %w", err)
	}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return c.walkObjectBody(dec, depth)
		case '[':
			return c.walkArrayBody(dec, depth)
		}
	case string:
		if len(v) > c.MaxStringSize {
			return fmt.Errorf("%w: string value exceeds %d bytes", ErrLimitExceeded, c.MaxStringSize)
		}
	}
	return nil
}

func (c Config) walkObjectBody(dec *json.Decoder, depth int) error {
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("parser: read object key: %w", err)
		}
		if key, ok := keyTok.(string); ok && len(key) > c.MaxStringSize {
			return fmt.Errorf("%w: object key exceeds %d bytes", ErrLimitExceeded, c.MaxStringSize)
		}
		if err := c.walkValue(dec, depth+1); err != nil {
			return err
		}
	}
	_, err := dec.Token() // consume closing '}'
	return err
}

func (c Config) walkArrayBody(dec *json.Decoder, depth int) error {
	count := 0
	for dec.More() {
		count++
		if count > c.MaxArraySize {
			return fmt.Errorf("%w: array exceeds %d elements", ErrLimitExceeded, c.MaxArraySize)
		}
		if err := c.walkValue(dec, depth+1); err != nil {
			return err
		}
	}
	_, err := dec.Token() // consume closing ']'
	return err
}
