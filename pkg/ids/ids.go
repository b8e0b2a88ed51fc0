// Package ids generates the short opaque identifiers used for every stored record.
package ids

import (
	"encoding/binary"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Length of generated identifiers.
const Length = 9

// New returns a random base36 token of Length characters.
func New() string {
	u := uuid.New()
	v := binary.BigEndian.Uint64(u[:8])
	s := strconv.FormatUint(v, 36)
	if len(s) < Length {
		s = strings.Repeat("0", Length-len(s)) + s
	}
	return s[len(s)-Length:]
}
