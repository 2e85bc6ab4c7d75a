package view

import (
	"cmp"
	"strings"

	"github.com/jackc/pgx/v5"
)

// DefaultSchema is the schema whose objects are reported without a
// qualifier.
const DefaultSchema = "public"

// maxIdentifierLen is PostgreSQL NAMEDATALEN - 1.
const maxIdentifierLen = 63

// Name is a possibly schema-qualified identifier of a view or a
// materialized view. An empty Schema means the object is resolved through
// the search path.
type Name struct {
	Schema string
	Object string
}

// ParseName converts user input into a Name. Unquoted parts are folded to
// lower case the same way PostgreSQL folds them, double-quoted parts are
// taken literally ("" stands for a quote character).
func ParseName(s string) (Name, error) {
	s = strings.TrimSpace(s)
	parts, ok := splitIdentifier(s)
	if !ok {
		return Name{}, InvalidNameError(s)
	}

	var res Name
	switch len(parts) {
	case 1:
		res.Object = parts[0]
	case 2:
		res.Schema, res.Object = parts[0], parts[1]
	default:
		return Name{}, InvalidNameError(s)
	}

	if res.Object == "" || len(res.Object) > maxIdentifierLen ||
		len(res.Schema) > maxIdentifierLen {
		return Name{}, InvalidNameError(s)
	}
	return res, nil
}

// MustParseName is ParseName that panics on invalid input. It is meant for
// constants and tests.
func MustParseName(s string) Name {
	res, err := ParseName(s)
	if err != nil {
		panic(err)
	}
	return res
}

// splitIdentifier splits a dotted identifier, honoring double quotes.
func splitIdentifier(s string) ([]string, bool) {
	var parts []string
	var sb strings.Builder
	var quoted, inQuotes bool

	flush := func() bool {
		part := sb.String()
		if !quoted {
			if part == "" || strings.ContainsAny(part, " \t\n\"") {
				return false
			}
			part = strings.ToLower(part)
		}
		parts = append(parts, part)
		sb.Reset()
		quoted = false
		return true
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case inQuotes && c == '"':
			if i+1 < len(s) && s[i+1] == '"' {
				sb.WriteByte('"')
				i++
				continue
			}
			inQuotes = false
		case inQuotes:
			sb.WriteByte(c)
		case c == '"':
			if sb.Len() > 0 || quoted {
				return nil, false
			}
			inQuotes, quoted = true, true
		case c == '.':
			if !flush() {
				return nil, false
			}
		default:
			if quoted {
				return nil, false
			}
			sb.WriteByte(c)
		}
	}
	if inQuotes || !flush() {
		return nil, false
	}
	return parts, true
}

// String returns the name the way catalog listings report it: objects in
// the default schema are unqualified, others are shown as schema.name.
func (n Name) String() string {
	if n.Schema == "" || n.Schema == DefaultSchema {
		return n.Object
	}
	return n.Schema + "." + n.Object
}

// MarshalText makes Name render as its String form in JSON output.
func (n Name) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// Sanitize returns the name quoted for use in SQL statements.
func (n Name) Sanitize() string {
	if n.Schema == "" {
		return pgx.Identifier{n.Object}.Sanitize()
	}
	return pgx.Identifier{n.Schema, n.Object}.Sanitize()
}

// StripDefault drops an explicit default-schema qualifier, so the object is
// looked up through the search path.
func (n Name) StripDefault() Name {
	if n.Schema == DefaultSchema {
		n.Schema = ""
	}
	return n
}

// InSchema returns a Name for another object living next to n.
func (n Name) InSchema(object string) Name {
	return Name{Schema: n.Schema, Object: object}
}

// Compare orders names by schema, then by object.
func (n Name) Compare(other Name) int {
	if c := cmp.Compare(n.Schema, other.Schema); c != 0 {
		return c
	}
	return cmp.Compare(n.Object, other.Object)
}
