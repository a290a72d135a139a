package realtime

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// SignChannelGrant produces the authorization signature a client presents
// when attaching its connection to a private channel. The server issues it
// only after the caller passes the same access check as the command handlers.
func SignChannelGrant(secret, socketID, channel string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(socketID + ":" + channel))
	return hex.EncodeToString(h.Sum(nil))
}

// VerifyChannelGrant checks a grant signature in constant time.
func VerifyChannelGrant(secret, socketID, channel, grant string) bool {
	expected := SignChannelGrant(secret, socketID, channel)
	return hmac.Equal([]byte(expected), []byte(grant))
}
