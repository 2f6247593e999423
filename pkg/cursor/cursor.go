// Package cursor encodes keyset pagination positions as opaque strings.
package cursor

import (
	"Inkwell/config"
	"Inkwell/pkg/apperror"
	"time"

	"github.com/speps/go-hashids/v2"
)

// Position is the last row of a page: sort key plus tie-breaking id.
type Position struct {
	PublishedAt time.Time
	PostID      uint64
}

type Codec struct {
	h *hashids.HashID
}

func NewCodec(conf *config.Cursor) (*Codec, error) {
	hd := hashids.NewData()
	hd.Salt = conf.Salt
	hd.MinLength = conf.MinLength
	h, err := hashids.NewWithData(hd)
	if err != nil {
		return nil, err
	}
	return &Codec{h: h}, nil
}

func (c *Codec) Encode(p Position) (string, error) {
	return c.h.EncodeInt64([]int64{p.PublishedAt.UnixMilli(), int64(p.PostID)})
}

// Decode parses a cursor produced by Encode. An empty string means "from the
// top" and returns a nil position.
func (c *Codec) Decode(s string) (*Position, error) {
	if s == "" {
		return nil, nil
	}
	parts, err := c.h.DecodeInt64WithError(s)
	if err != nil || len(parts) != 2 || parts[0] < 0 || parts[1] <= 0 {
		return nil, apperror.InvalidArgument("cursor", "malformed cursor")
	}
	return &Position{
		PublishedAt: time.UnixMilli(parts[0]).UTC(),
		PostID:      uint64(parts[1]),
	}, nil
}
