package llm

import (
	"os"
	"strconv"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	TaskDecompose TaskType = "decompose"
	TaskEvaluate  TaskType = "evaluate"
)

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// Config holds all configuration for the LLM subsystem.
type Config struct {
	Enabled    bool
	LogCalls   bool
	Endpoint   string
	APIKey     string
	Model      string
	TimeoutMs  int
	MaxRetries int
	Tasks      map[TaskType]TaskConfig
}

// DefaultConfig returns a Config targeting the Groq OpenAI-compatible API.
// The subsystem stays disabled until an API key is supplied.
func DefaultConfig() Config {
	return Config{
		Enabled:    false,
		LogCalls:   false,
		Endpoint:   "https://api.groq.com",
		Model:      "llama-3.1-8b-instant",
		TimeoutMs:  30000,
		MaxRetries: 1,
		Tasks: map[TaskType]TaskConfig{
			TaskDecompose: {Temperature: 0.3, MaxTokens: 2000, TimeoutMs: 30000},
			TaskEvaluate:  {Temperature: 0.3, MaxTokens: 2000, TimeoutMs: 30000},
		},
	}
}

// LoadConfig reads LLM configuration from environment variables,
// falling back to defaults for any unset values. Setting an API key
// enables the subsystem unless SPRINTSENSE_LLM_ENABLED overrides it.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("SPRINTSENSE_GROQ_API_KEY"); v != "" {
		cfg.APIKey = v
		cfg.Enabled = true
	}
	if v := os.Getenv("SPRINTSENSE_LLM_ENABLED"); v != "" {
		cfg.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("SPRINTSENSE_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("SPRINTSENSE_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("SPRINTSENSE_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("SPRINTSENSE_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("SPRINTSENSE_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}

	applyTaskTimeoutEnv(&cfg, TaskDecompose, "SPRINTSENSE_LLM_DECOMPOSE_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskEvaluate, "SPRINTSENSE_LLM_EVALUATE_TIMEOUT_MS")

	return cfg
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c Config) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func applyTaskTimeoutEnv(cfg *Config, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
