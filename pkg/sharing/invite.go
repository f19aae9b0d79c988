package sharing

import (
	"crypto/rand"
	"strings"
)

// inviteAlphabet has 32 symbols; visually ambiguous characters (I, O, 0, 1)
// are excluded so codes survive being read aloud or copied by hand.
const inviteAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// InviteCodeLength is the fixed length of invite codes.
const InviteCodeLength = 6

// NewInviteCode generates a random invite code.
func NewInviteCode() string {
	buf := make([]byte, InviteCodeLength)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	code := make([]byte, InviteCodeLength)
	for i, b := range buf {
		code[i] = inviteAlphabet[int(b)%len(inviteAlphabet)]
	}
	return string(code)
}

// NormalizeInviteCode upper-cases and trims a user-entered code; redemption
// is case-insensitive.
func NormalizeInviteCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
