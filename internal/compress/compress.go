package compress

// Compress encodes material content at rest. The encoder name is stored
// next to the content so reads can pick the matching decoder.
type Compress interface {
	Name() string
	Encode(data []byte) ([]byte, error)
	Decode(data []byte) ([]byte, error)
}

// FromName returns the encoder recorded on a stored row. Unknown or
// empty names decode as a no-op.
func FromName(name string) Compress {
	switch name {
	case "gzip":
		return NewGZip()
	case "brotli":
		return NewBrotli()
	case "lz4":
		return NewLZ4()
	default:
		return NewNop()
	}
}
