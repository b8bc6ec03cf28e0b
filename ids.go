package fund

import (
	"fmt"

	"github.com/google/uuid"
)

// IDGenerator creates record identifiers.
type IDGenerator interface {
	NewID() string
}

// IDFunc adapts a function to the IDGenerator interface.
type IDFunc func() string

func (f IDFunc) NewID() string { return f() }

// RandomIDs generates random UUIDs.
func RandomIDs() IDGenerator {
	return IDFunc(uuid.NewString)
}

// SequentialIDs generates "<prefix>1", "<prefix>2", ... It is meant for tests
// and fixtures where identifiers must be predictable.
func SequentialIDs(prefix string) IDGenerator {
	var n int
	return IDFunc(func() string {
		n++
		return fmt.Sprintf("%s%d", prefix, n)
	})
}
