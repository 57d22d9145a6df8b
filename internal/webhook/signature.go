// Package webhook implements the inbound message contract: HMAC signature
// verification over the raw request body and structural payload validation.
package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// VerifySignature checks that signature is the hex-encoded HMAC-SHA256 of
// body under secret.
//
// It must be given the exact raw bytes as received on the wire; re-serialized
// JSON is not equivalent. An empty secret means the service is not configured
// for ingestion and verification fails closed. The comparison is constant
// time so response timing does not leak signature bytes.
func VerifySignature(body []byte, signature, secret string) bool {
	if secret == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
