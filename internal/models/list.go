package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// StringList is an ordered sequence of strings persisted as a single
// comma-joined text column. An empty or NULL column decodes to an empty
// list, and the JSON form is always an array, never null.
//
// Known limitation: an element that itself contains a comma corrupts the
// sequence on decode. Downstream consumers rely on the comma format, so
// the encoding is kept as-is. See DESIGN.md.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "", nil
	}
	return strings.Join(l, ","), nil
}

func (l *StringList) Scan(value interface{}) error {
	var s string
	switch v := value.(type) {
	case nil:
		*l = StringList{}
		return nil
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}
	if s == "" {
		*l = StringList{}
		return nil
	}
	*l = StringList(strings.Split(s, ","))
	return nil
}

func (l StringList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}
