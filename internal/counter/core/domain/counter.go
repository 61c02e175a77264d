package domain

import "strings"

// DefaultResetAtCount is applied to an identifier the first time it is counted.
const DefaultResetAtCount uint64 = 5

// KeyNamespace prefixes every persisted key. Changing it orphans existing state.
const KeyNamespace = "tyc.clickr"

const (
	FieldCounted      = "counted"
	FieldResetAtCount = "resetAtCount"

	keySeparator = "."
)

// ResetTask runs when a counter is reset. A nil task means none was registered.
type ResetTask func()

type Counter struct {
	Identifier   string
	Counted      uint64
	ResetAtCount uint64 // 0 disables auto reset
}

// Key builds "<namespace>.<identifier>.<field>".
func Key(identifier, field string) string {
	return strings.Join([]string{KeyNamespace, identifier, field}, keySeparator)
}

func CountedKey(identifier string) string {
	return Key(identifier, FieldCounted)
}

func ResetAtCountKey(identifier string) string {
	return Key(identifier, FieldResetAtCount)
}
