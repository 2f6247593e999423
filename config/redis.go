package config

// Redis Redis配置信息. An empty address disables the cache.
type Redis struct {
	Address  string `json:"address" yaml:"address"`
	Port     int    `json:"port" yaml:"port"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
	Database int    `json:"database" yaml:"database"`
	// FollowingTTLSeconds bounds how long a cached following-id set lives.
	FollowingTTLSeconds int `json:"following_ttl_seconds" yaml:"following_ttl_seconds"`
}

func (r *Redis) Enabled() bool {
	return r != nil && r.Address != ""
}
