package config

// ClaudeConfig configures how the Claude CLI is launched.
type ClaudeConfig struct {
	// Binary is the executable name or path.
	Binary string `yaml:"binary"`
}

// LogConfig configures the raw transcript.
type LogConfig struct {
	// FileName is created next to the prompt file.
	FileName string `yaml:"file_name"`
}

// Config represents the optional claude-loop settings file.
type Config struct {
	Claude ClaudeConfig `yaml:"claude"`
	Log    LogConfig    `yaml:"log"`
}

// Inputs are the positional arguments of a run.
type Inputs struct {
	Iterations   int
	PRDPath      string
	PromptPath   string
	ProgressPath string
}
