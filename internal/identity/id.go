package identity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewID returns a random identifier for a newly created nested entity.
// The server accepts pre-assigned ids, so calls and functions are minted
// client-side. The result is a canonical random UUID: 36 characters, dashes
// at positions 9/14/19/24, version nibble 4, variant nibble in {8,9,a,b}.
func NewID() string {
	return uuid.New().String()
}

// ValidFormat reports whether id has the shape NewID produces.
func ValidFormat(id string) bool {
	if len(id) != 36 {
		return false
	}
	for i := 0; i < 36; i++ {
		c := id[i]
		switch i {
		case 8, 13, 18, 23:
			if c != '-' {
				return false
			}
		case 14:
			if c != '4' {
				return false
			}
		case 19:
			if c != '8' && c != '9' && c != 'a' && c != 'b' {
				return false
			}
		default:
			if !isHex(c) {
				return false
			}
		}
	}
	return true
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')
}

// NewVariableSetID returns the id assigned to a manually entered evaluation
// variable set: a 1-based ordinal plus a millisecond timestamp.
func NewVariableSetID(ordinal int) string {
	return fmt.Sprintf("manual_set_%d_%d", ordinal, time.Now().UnixMilli())
}
