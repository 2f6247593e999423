package config

type Jwt struct {
	// Secret shared with the external auth provider (HS256).
	Secret string `json:"secret" yaml:"secret"`
	Issuer string `json:"issuer" yaml:"issuer"`
}
