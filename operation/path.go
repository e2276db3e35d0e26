package operation

import (
	"fmt"
	"strings"
)

var braceReplacer = strings.NewReplacer("{", ":", "}", "")

// RoutePattern converts an OpenAPI path template into the colon syntax
// handed to hosts: every "{" becomes ":" and every "}" is dropped. Braces
// must come in non-nested pairs around names made of letters, digits and
// underscores, and literal colons are rejected, so the colon form can be
// read back without ambiguity.
func RoutePattern(template string) (string, error) {
	open := -1
	for i, r := range template {
		switch {
		case r == '{':
			if open >= 0 {
				return "", fmt.Errorf("%w: nested '{' at offset %d in %q", ErrMalformedPath, i, template)
			}
			open = i
		case r == '}':
			if open < 0 {
				return "", fmt.Errorf("%w: unmatched '}' at offset %d in %q", ErrMalformedPath, i, template)
			}
			if i == open+1 {
				return "", fmt.Errorf("%w: empty parameter at offset %d in %q", ErrMalformedPath, open, template)
			}
			open = -1
		case r == ':' && open < 0:
			return "", fmt.Errorf("%w: literal ':' at offset %d in %q", ErrMalformedPath, i, template)
		case open >= 0 && (r > 0x7f || !isIdentByte(byte(r))):
			return "", fmt.Errorf("%w: invalid character %q in parameter name at offset %d in %q", ErrMalformedPath, r, i, template)
		}
	}
	if open >= 0 {
		return "", fmt.Errorf("%w: unterminated '{' in %q", ErrMalformedPath, template)
	}
	return braceReplacer.Replace(template), nil
}
