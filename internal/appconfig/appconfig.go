// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// legacyConfigPath is the path to the configuration file used in previous versions.
	legacyConfigPath = "config.json"
	// defaultRequestTimeout is the default timeout for model HTTP requests.
	defaultRequestTimeout = 600 * time.Second
	// defaultFormulasPath is where the formula cache lives unless configured.
	defaultFormulasPath = "formulas.json"
	// defaultDocumentsDir is the directory scanned for PDF documents.
	defaultDocumentsDir = "documents"
	// defaultModelsDir is the directory holding local model assets.
	defaultModelsDir = "models"
	// defaultMaxPDFPages bounds how many pages of a PDF are extracted.
	defaultMaxPDFPages = 10
	// defaultMaxPromptChars bounds how much document text is sent to the model.
	defaultMaxPromptChars = 10000
)

// Config represents the top-level application configuration.
type Config struct {
	Host           Host   `json:"host"`
	Model          string `json:"model"`
	ModelsDir      string `json:"modelsDir,omitempty"`
	FormulasPath   string `json:"formulasPath,omitempty"`
	DocumentsDir   string `json:"documentsDir,omitempty"`
	MaxPDFPages    int    `json:"maxPdfPages,omitempty"`
	MaxPromptChars int    `json:"maxPromptChars,omitempty"`
	TimeoutSeconds int    `json:"timeout,omitempty"`
	LogFile        string `json:"logFile,omitempty"`
	Debug          bool   `json:"debug"`
	ConfigPath     string `json:"-"`
}

// Host identifies the llama.cpp-compatible endpoint serving the model.
type Host struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// RequestTimeout returns the timeout duration for model HTTP requests, falling back to the default if not specified.
func (c Config) RequestTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultRequestTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return "studybot.log"
}

// FormulaStorePath returns the path of the formula cache document.
func (c Config) FormulaStorePath() string {
	if strings.TrimSpace(c.FormulasPath) != "" {
		return c.FormulasPath
	}
	return defaultFormulasPath
}

// DocumentsDirPath returns the directory scanned for PDF documents.
func (c Config) DocumentsDirPath() string {
	if strings.TrimSpace(c.DocumentsDir) != "" {
		return c.DocumentsDir
	}
	return defaultDocumentsDir
}

// ModelAssetPath returns the on-disk location of the configured model file.
func (c Config) ModelAssetPath() string {
	dir := c.ModelsDir
	if strings.TrimSpace(dir) == "" {
		dir = defaultModelsDir
	}
	return filepath.Join(dir, c.Model)
}

// PageLimit returns how many leading PDF pages are extracted per query.
func (c Config) PageLimit() int {
	if c.MaxPDFPages <= 0 {
		return defaultMaxPDFPages
	}
	return c.MaxPDFPages
}

// PromptCharLimit returns how many characters of document text may be
// embedded into a model prompt.
func (c Config) PromptCharLimit() int {
	if c.MaxPromptChars <= 0 {
		return defaultMaxPromptChars
	}
	return c.MaxPromptChars
}

// ValidateForModel reports whether the configuration is complete enough to
// talk to the model host. Commands that never touch the model skip this.
func (c Config) ValidateForModel() error {
	if strings.TrimSpace(c.Model) == "" {
		return errors.New("config must name a model asset")
	}
	if strings.TrimSpace(c.Host.URL) == "" {
		return errors.New("config must provide a host URL for the model")
	}
	return nil
}

// Load reads the application configuration from the specified path, with fallback to a legacy path.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err == nil {
		config.ConfigPath = path
		return config, nil
	}

	if errors.Is(err, os.ErrNotExist) {
		if path == DefaultConfigPath {
			config, legacyErr := loadFromPath(legacyConfigPath)
			if legacyErr == nil {
				config.ConfigPath = legacyConfigPath
				return config, nil
			}
			if errors.Is(legacyErr, os.ErrNotExist) {
				return Config{}, fmt.Errorf("no configuration file found (searched %q and %q): %w", DefaultConfigPath, legacyConfigPath, os.ErrNotExist)
			}
			return Config{}, fmt.Errorf("could not read config file %q: %w", legacyConfigPath, legacyErr)
		}
		return Config{}, fmt.Errorf("no configuration file found at %q: %w", path, os.ErrNotExist)
	}

	return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
}

// loadFromPath is a helper function that loads the configuration from a specific file path.
func loadFromPath(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	if err := json.NewDecoder(file).Decode(&config); err != nil {
		return Config{}, err
	}
	if config.TimeoutSeconds <= 0 {
		config.TimeoutSeconds = int(defaultRequestTimeout.Seconds())
	}

	return config, nil
}
