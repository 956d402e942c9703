package cursor

import (
	"encoding/base64"
	"encoding/json"
	"errors"
)

// Cursor pins a pagination position: the sort value and id of the last
// row served on the previous page. It is a position, not a row
// reference, and carries no server-side state.
type Cursor struct {
	Sort string `json:"s"`
	ID   string `json:"id"`
}

var ErrInvalid = errors.New("invalid cursor token")

// Encode serializes a (sortValue, id) pair into an opaque token.
// Callers must never parse the result themselves.
func Encode(sort, id string) string {
	data, _ := json.Marshal(Cursor{Sort: sort, ID: id})
	return base64.RawURLEncoding.EncodeToString(data)
}

// Decode reverses Encode. Any malformed or tampered token yields
// ErrInvalid; what to do with that is the caller's policy.
func Decode(token string) (Cursor, error) {
	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, ErrInvalid
	}

	var c Cursor
	if err := json.Unmarshal(data, &c); err != nil {
		return Cursor{}, ErrInvalid
	}

	if c.ID == "" {
		return Cursor{}, ErrInvalid
	}

	return c, nil
}
