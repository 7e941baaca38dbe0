package subscription

import "encoding/json"

// DecodeEmail parses a raw JSON request body and returns the email value
// untouched (not yet trimmed or validated).
func DecodeEmail(body []byte) (string, error) {
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", ErrMalformedBody
	}
	return ExtractEmail(payload)
}

// ExtractEmail pulls the email field out of an already-decoded JSON value.
func ExtractEmail(payload any) (string, error) {
	obj, ok := payload.(map[string]any)
	if !ok {
		return "", ErrNotObject
	}
	raw, ok := obj["email"]
	if !ok {
		return "", ErrMissingEmail
	}
	email, ok := raw.(string)
	if !ok {
		return "", ErrEmailNotString
	}
	return email, nil
}
