package config

// Cursor configures the hashids encoding of feed cursors.
type Cursor struct {
	Salt      string `json:"salt" yaml:"salt"`
	MinLength int    `json:"min_length" yaml:"min_length"`
}
