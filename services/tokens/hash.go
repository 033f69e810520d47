package tokens

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// HashToken derives the store key for a raw token string. The HMAC is keyed
// with the process-wide signing secret, so a leaked dump of hashes cannot be
// correlated to raw tokens without the secret. The digest is never reversed.
func HashToken(secret, token string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(token))
	return hex.EncodeToString(mac.Sum(nil))
}
