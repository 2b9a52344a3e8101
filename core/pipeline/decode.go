package pipeline

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/openjwt/jwtvalidator/core/events"
	"github.com/openjwt/jwtvalidator/core/parser"
)

// DecodedJWT is the parsed wire form of a JWS compact token: immutable
// once built. Invariant: exactly two "." separators in the raw token;
// each segment decodes without base64 padding errors; header and
// payload are JSON objects.
type DecodedJWT struct {
	Header         map[string]json.RawMessage
	Payload        map[string]json.RawMessage
	SignatureBytes []byte
	SigningInput   []byte
}

// decode runs stages 1 through 4: raw size check, segment split, base64url
// decode, and limited JSON parse.
func decode(raw string, cfg parser.Config) (DecodedJWT, *Failure) {
	cfg = cfg.withDefaults()

	if raw == "" {
		return DecodedJWT{}, fail(events.TokenEmpty, "token is empty")
	}
	if len(raw) > cfg.MaxTokenSize {
		return DecodedJWT{}, fail(events.TokenTooLarge, "raw token exceeds max_token_size")
	}

	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return DecodedJWT{}, fail(events.Malformed, "token does not have exactly three segments")
	}

	headerBytes, err := base64url(parts[0])
	if err != nil {
		return DecodedJWT{}, fail(events.Malformed, "header segment is not valid base64url")
	}
	payloadBytes, err := base64url(parts[1])
	if err != nil {
		return DecodedJWT{}, fail(events.Malformed, "payload segment is not valid base64url")
	}
	sigBytes, err := base64url(parts[2])
	if err != nil {
		return DecodedJWT{}, fail(events.Malformed, "signature segment is not valid base64url")
	}

	header, err := cfg.DecodeObject(headerBytes)
	if err != nil {
		return DecodedJWT{}, fail(events.MalformedJSON, "header: "+err.Error())
	}
	payload, err := cfg.DecodeObject(payloadBytes)
	if err != nil {
		return DecodedJWT{}, fail(events.MalformedJSON, "payload: "+err.Error())
	}

	return DecodedJWT{
		Header:         header,
		Payload:        payload,
		SignatureBytes: sigBytes,
		SigningInput:   []byte(parts[0] + "." + parts[1]),
	}, nil
}

func base64url(segment string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(segment)
}

// looksLikeJWT reports whether raw has the three-segment shape of a JWS
// compact token, used to distinguish opaque refresh tokens (which skip
// the pipeline entirely) from JWT-structured ones.
func looksLikeJWT(raw string) bool {
	return strings.Count(raw, ".") == 2
}
