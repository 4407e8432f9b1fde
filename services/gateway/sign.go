package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Sign computes the signature the provider attaches to a completed
// payment: an HMAC-SHA256 over "<gatewayOrderUID>|<paymentUID>".
func Sign(secret string, gatewayOrderUID string, paymentUID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%s|%s", gatewayOrderUID, paymentUID)
	return hex.EncodeToString(mac.Sum(nil))
}

func VerifySignature(secret string, gatewayOrderUID string, paymentUID string, signature string) bool {
	expected := Sign(secret, gatewayOrderUID, paymentUID)
	return hmac.Equal([]byte(expected), []byte(signature))
}
