package configs

// ServiceConfig holds the HTTP surface settings.
type ServiceConfig struct {
	HttpPort     string   `mapstructure:"http_port"`
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// PostgresConfig holds the persistent store connection settings.
type PostgresConfig struct {
	Address  string `mapstructure:"address"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
}

// RedisConfig holds the broadcast transport connection settings.
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
	Tls      bool   `mapstructure:"tls"`
}

// GeminiConfig holds the AI completion service settings.
type GeminiConfig struct {
	ApiKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// LogsConfig holds logger settings.
type LogsConfig struct {
	LogLevel   string `mapstructure:"log_level"`
	LogFormat  string `mapstructure:"log_format"`
	LogPath    string `mapstructure:"log_path"`
	StdoutOnly bool   `mapstructure:"stdout_only"`
}

// Secrets holds signing material.
type Secrets struct {
	// JwtPublicKey is the PEM-encoded ECDSA public key of the identity
	// provider, used to verify bearer tokens.
	JwtPublicKey string `mapstructure:"jwt_public_key"`
	// CursorSecret signs pagination cursors.
	CursorSecret string `mapstructure:"cursor_secret"`
	// ChannelSecret signs realtime channel grants.
	ChannelSecret string `mapstructure:"channel_secret"`
}
