package pipeline

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/openjwt/jwtvalidator/core/events"
)

func extractHeaderString(header map[string]json.RawMessage, name string) (string, *Failure) {
	return extractString(header, name, events.Malformed)
}

func extractPayloadString(payload map[string]json.RawMessage, name string) (string, *Failure) {
	raw, ok := payload[name]
	if !ok {
		return "", fail(events.MissingClaim, "missing required claim: "+name)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fail(events.MalformedJSON, name+" is not a JSON string")
	}
	return s, nil
}

func extractString(obj map[string]json.RawMessage, name string, onMalformed events.Type) (string, *Failure) {
	raw, ok := obj[name]
	if !ok {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fail(onMalformed, name+" is not a JSON string")
	}
	return s, nil
}

func checkTyp(header map[string]json.RawMessage, tt TokenType) *Failure {
	allowed := typRequirement(tt)
	if allowed == nil {
		return nil
	}
	typ, f := extractHeaderString(header, "typ")
	if f != nil {
		return f
	}
	if typ == "" {
		return nil // absent typ is always acceptable
	}
	for _, a := range allowed {
		if typ == a {
			return nil
		}
	}
	return fail(events.WrongTyp, "unexpected typ: "+typ)
}

func checkTemporal(payload map[string]json.RawMessage) *Failure {
	now := time.Now()

	expRaw, ok := payload["exp"]
	if !ok {
		return fail(events.MissingClaim, "missing required claim: exp")
	}
	exp, err := numericDate(expRaw)
	if err != nil {
		return fail(events.MalformedJSON, "exp is not a numeric date")
	}
	if !exp.After(now) {
		return fail(events.TokenExpired, "token has expired")
	}

	if nbfRaw, ok := payload["nbf"]; ok {
		nbf, err := numericDate(nbfRaw)
		if err != nil {
			return fail(events.MalformedJSON, "nbf is not a numeric date")
		}
		if nbf.After(now.Add(leeway)) {
			return fail(events.NotYetValid, "token is not yet valid")
		}
	}

	if iatRaw, ok := payload["iat"]; ok {
		iat, err := numericDate(iatRaw)
		if err != nil {
			return fail(events.MalformedJSON, "iat is not a numeric date")
		}
		if iat.After(now.Add(leeway)) {
			return fail(events.IssuedInFuture, "token was issued in the future")
		}
	}

	return nil
}

func numericDate(raw json.RawMessage) (time.Time, error) {
	var secs float64
	if err := json.Unmarshal(raw, &secs); err != nil {
		return time.Time{}, err
	}
	return time.Unix(int64(secs), 0).UTC(), nil
}

func checkAudience(issuer *Issuer, payload map[string]json.RawMessage) *Failure {
	if len(issuer.ExpectedAudience) == 0 {
		return nil
	}
	aud := audienceList(payload)
	if !issuer.checkAudience(aud) {
		return fail(events.AudienceMismatch, "aud does not match any expected audience")
	}
	return nil
}

func audienceList(payload map[string]json.RawMessage) []string {
	raw, ok := payload["aud"]
	if !ok {
		return nil
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return []string{single}
	}
	var list []string
	_ = json.Unmarshal(raw, &list)
	return list
}

func checkClientID(issuer *Issuer, payload map[string]json.RawMessage) *Failure {
	if issuer.ExpectedClientID == "" {
		return nil
	}
	azp, _ := extractString(payload, "azp", events.MalformedJSON)
	clientID, _ := extractString(payload, "client_id", events.MalformedJSON)
	if !issuer.checkClientID(azp, clientID) {
		return fail(events.ClientIDMismatch, "azp/client_id does not match expected client id")
	}
	return nil
}

func checkMandatoryClaims(payload map[string]json.RawMessage, tt TokenType) *Failure {
	required := []string{"iss", "sub", "exp"}
	switch tt {
	case AccessToken:
		if _, hasScope := payload["scope"]; !hasScope {
			if _, hasScp := payload["scp"]; !hasScp {
				return fail(events.MissingClaim, "missing required claim: scope or scp")
			}
		}
		if _, hasAud := payload["aud"]; !hasAud {
			if _, hasAzp := payload["azp"]; !hasAzp {
				return fail(events.MissingClaim, "missing required claim: aud or azp")
			}
		}
	case IDToken:
		required = append(required, "aud")
	}
	for _, name := range required {
		if _, ok := payload[name]; !ok {
			return fail(events.MissingClaim, fmt.Sprintf("missing required claim: %s", name))
		}
	}
	return nil
}
