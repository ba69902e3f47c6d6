package cfg

type Cfg struct {
	// Database configuration
	DatabaseURL string

	// Application configuration
	Port      string
	StaticDir string

	// Application metadata
	Timezone string
	Debug    bool
	Version  string
}
