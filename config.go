package folio

import "time"

// Config is the application configuration. DefaultConfig returns values that
// work without a configuration file.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Models      ModelConfig       `yaml:"models"`
	Persona     PersonaConfig     `yaml:"persona"`
	Credentials CredentialsConfig `yaml:"credentials"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	SessionTTL   time.Duration `yaml:"session_ttl"`    // idle time before a session is evicted
	MaxBodyBytes int64         `yaml:"max_body_bytes"` // uploaded images are sent inline
	AllowOrigin  string        `yaml:"allow_origin"`
}

// ModelConfig selects the provider model per operation.
type ModelConfig struct {
	Chat           string `yaml:"chat"`
	Suggest        string `yaml:"suggest"`
	Search         string `yaml:"search"`
	Image          string `yaml:"image"`     // 1K generation
	ImagePro       string `yaml:"image_pro"` // 2K and 4K generation
	Edit           string `yaml:"edit"`
	Speech         string `yaml:"speech"`
	Voice          string `yaml:"voice"`
	ThinkingBudget int32  `yaml:"thinking_budget"`
}

// PersonaConfig describes the represented person.
type PersonaConfig struct {
	Name        string `yaml:"name"`
	Profile     string `yaml:"profile"`
	ProfilePath string `yaml:"profile_path"` // overrides Profile when set
}

// CredentialsConfig locates the provider API key.
type CredentialsConfig struct {
	EnvVar     string `yaml:"env_var"`
	DotEnvPath string `yaml:"dotenv_path"`
}

// DefaultModels returns the default model selection.
func DefaultModels() ModelConfig {
	return ModelConfig{
		Chat:           "gemini-3-pro-preview",
		Suggest:        "gemini-3-flash-preview",
		Search:         "gemini-3-flash-preview",
		Image:          "gemini-2.5-flash-image",
		ImagePro:       "gemini-3-pro-image-preview",
		Edit:           "gemini-2.5-flash-image",
		Speech:         "gemini-2.5-flash-preview-tts",
		Voice:          "Kore",
		ThinkingBudget: 16000,
	}
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr:         ":8080",
			SessionTTL:   30 * time.Minute,
			MaxBodyBytes: 16 << 20,
			AllowOrigin:  "*",
		},
		Models: DefaultModels(),
		Persona: PersonaConfig{
			Name:    "the site owner",
			Profile: "No profile has been configured.",
		},
		Credentials: CredentialsConfig{
			EnvVar:     "GEMINI_API_KEY",
			DotEnvPath: ".env",
		},
	}
}

// Persona returns the configured Persona. Profile file loading is done by
// the yaml package; this only maps fields.
func (c PersonaConfig) Persona() Persona {
	return Persona{Name: c.Name, Profile: c.Profile}
}
