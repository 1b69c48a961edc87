package records

import (
	"fmt"
	"strings"

	"github.com/leanh1541989-hash/taphoa39/internal/shared/apperror"
)

// KeySeparator joins the parts of a composite document identifier. The
// stored ids have always used this separator, so it cannot change
// without migrating every payroll and attendance document.
const KeySeparator = "_"

// CompositeKey derives a deterministic document identifier from ordered
// natural-key parts, e.g. {workerId, date} -> "NV001_2024-01-01".
type CompositeKey struct {
	parts []string
}

func NewCompositeKey(parts ...string) CompositeKey {
	return CompositeKey{parts: parts}
}

// Validate rejects empty parts and parts that contain the separator.
// A worker id carrying "_" would otherwise collide with the date
// boundary and two different natural keys could map to one document.
func (k CompositeKey) Validate() error {
	for _, p := range k.parts {
		if strings.TrimSpace(p) == "" {
			return apperror.Validation("identifier part must not be empty")
		}
		if strings.Contains(p, KeySeparator) {
			return apperror.Validation(
				fmt.Sprintf("identifier part %q must not contain %q", p, KeySeparator))
		}
	}
	return nil
}

func (k CompositeKey) String() string {
	return strings.Join(k.parts, KeySeparator)
}
