// pkg/userdir/record.go

package userdir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

const (
	idKey    = "id"
	mongoKey = "_id"
	nameKey  = "name"
)

// UserRecord is one user as the service returns it. The id is assigned by
// the service and never generated here.
type UserRecord struct {
	ID   string
	Name string

	// Extra holds any other members the service returned, kept for display.
	Extra map[string]any

	// wireIDKey is the member the id arrived in ("_id" or "id").
	wireIDKey string

	// wireOrder lists the members in the order the service sent them.
	wireOrder []string
}

// UnmarshalJSON accepts the id under either "_id" or "id".
func (r *UserRecord) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return fmt.Errorf("user record is null")
	}

	*r = UserRecord{}
	for _, key := range []string{mongoKey, idKey} {
		if v, ok := raw[key]; ok && v != nil {
			r.ID = scalarString(v)
			r.wireIDKey = key
			delete(raw, key)
			break
		}
	}

	if v, ok := raw[nameKey]; ok {
		s, isString := v.(string)
		if !isString && v != nil {
			return fmt.Errorf("user name must be a string, got %T", v)
		}
		r.Name = s
		delete(raw, nameKey)
	}

	if len(raw) > 0 {
		r.Extra = raw
	}

	order, err := memberOrder(data)
	if err != nil {
		return err
	}
	r.wireOrder = order
	return nil
}

// memberOrder returns the top-level member names of the JSON object in data,
// first occurrence only.
func memberOrder(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	var keys []string
	seen := make(map[string]bool)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// MarshalJSON writes the record back with the id under the member it arrived
// in. Members keep the order the service sent them; a record built locally
// writes "_id", then name, then extra members by name.
func (r UserRecord) MarshalJSON() ([]byte, error) {
	members := make(map[string]any, len(r.Extra)+2)
	for k, v := range r.Extra {
		members[k] = v
	}
	if r.ID != "" {
		key := r.wireIDKey
		if key == "" {
			key = mongoKey
		}
		members[key] = r.ID
	}
	members[nameKey] = r.Name

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range r.order(members) {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(members[key])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// order lists every key of members: wire order first, then the id and name
// if they were not on the wire, then the remaining extras sorted.
func (r UserRecord) order(members map[string]any) []string {
	keys := make([]string, 0, len(members))
	placed := make(map[string]bool, len(members))
	add := func(k string) {
		if _, ok := members[k]; ok && !placed[k] {
			placed[k] = true
			keys = append(keys, k)
		}
	}

	for _, k := range r.wireOrder {
		add(k)
	}
	add(r.wireIDKey)
	add(mongoKey)
	add(nameKey)

	var rest []string
	for k := range members {
		if !placed[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}
