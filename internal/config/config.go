package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm"      validate:"required"`
	Export   ExportConfig   `mapstructure:"export"   validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret                   string `mapstructure:"jwt_secret"                     validate:"required,min=32"`
	TokenLifetimeMinutes        int    `mapstructure:"token_lifetime_minutes"         validate:"required,gt=0"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0"`
}

// LLMConfig contains all text-generation integration settings.
//
// The decoding parameters are design constants supplied identically on
// every model call; they are configuration so deployments can pin them,
// not so users can vary them per request.
type LLMConfig struct {
	GeminiAPIKey    string  `mapstructure:"gemini_api_key"    validate:"required"`
	ModelName       string  `mapstructure:"model_name"        validate:"required"`
	MaxOutputTokens int32   `mapstructure:"max_output_tokens" validate:"required,gt=0"`
	Temperature     float32 `mapstructure:"temperature"       validate:"gte=0,lte=2"`
	TopP            float32 `mapstructure:"top_p"             validate:"gte=0,lte=1"`
	TopK            float32 `mapstructure:"top_k"             validate:"gte=0"`
}

// ExportConfig contains all document export settings.
type ExportConfig struct {
	Dir         string  `mapstructure:"dir"           validate:"required"`
	PageWidthPx int     `mapstructure:"page_width_px" validate:"required,gt=0"`
	FontSize    float64 `mapstructure:"font_size"     validate:"required,gt=0"`
}
