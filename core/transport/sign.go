package transport

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
)

// canonicalBody re-encodes a JSON body with object keys sorted at every
// nesting level, so both sides derive the same string regardless of the
// original field order. Non-JSON bodies are signed as-is.
func canonicalBody(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return string(body)
	}
	canonical, err := json.Marshal(decoded)
	if err != nil {
		return string(body)
	}
	return string(canonical)
}

// signature computes the request signature over method, URL, timestamp and
// the canonical body, joined by newlines, using HMAC-SHA256 with the shared
// secret. The result is base64 encoded.
func signature(secret, method, url, timestamp string, body []byte) string {
	payload := method + "\n" + url + "\n" + timestamp + "\n" + canonicalBody(body)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
