package catalogue

import (
	"github.com/google/uuid"
)

// Id prefixes for generated identifiers.
const (
	RootPrefix   = "sat"
	ModulePrefix = "mod"
)

// IDSource produces candidate identifiers. The registry rejects candidates
// already in use, so a source only has to make collisions unlikely.
type IDSource func(prefix string) string

// UUIDSource returns prefix-<uuidv7>. Version 7 uuids start with a
// millisecond timestamp and fill the rest with monotonic and random bits.
func UUIDSource(prefix string) string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return prefix + "-" + id.String()
}
