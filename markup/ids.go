package markup

import (
	"strings"

	"github.com/google/uuid"
)

// RequireID returns the element's id attribute, assigning a unique one with
// the given prefix when it has none.
func RequireID(e *Element, prefix string) string {
	if id, ok := e.Attr("id"); ok && id != "" {
		return id
	}
	id := prefix + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	e.SetAttr("id", id)
	return id
}
