package main

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type Config struct {
	Database        string
	ExportDirectory string
	ImportDirectory string
	Descriptions    string
	Language        string
	LogFile         string
	LogLevel        string
	Listen          string
	User            string
	Confirmations   bool
}

func defaultConfig(homeDir string) *Config {
	stateDir := os.Getenv("XDG_STATE_HOME")
	logFile := filepath.Join(homeDir, ".skeyedit.log")
	if stateDir != "" {
		logFile = filepath.Join(stateDir, "skeyedit", "skeyedit.log")
	}
	return &Config{
		Database:      filepath.Join(homeDir, ".skeyedit", "skeys.db"),
		Language:      "en",
		LogFile:       logFile,
		LogLevel:      "info",
		Listen:        ":3080",
		User:          os.Getenv("USER"),
		Confirmations: true,
	}
}

// loadConfig reads ~/.skeyeditrc over the defaults, then applies the
// SKEYEDIT_* environment overrides.
func loadConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	config := defaultConfig(homeDir)

	if file, err := os.Open(filepath.Join(homeDir, ".skeyeditrc")); err == nil {
		config.parse(file, homeDir)
		file.Close()
	}
	config.applyEnv(homeDir)
	return config
}

func (c *Config) parse(r io.Reader, homeDir string) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch strings.ToLower(key) {
		case "database", "db", "database_path":
			c.Database = expandPath(value, homeDir)
		case "exportdirectory", "export_directory", "exportdir":
			c.ExportDirectory = expandPath(value, homeDir)
		case "importdirectory", "import_directory", "importdir":
			c.ImportDirectory = expandPath(value, homeDir)
		case "descriptions", "descriptions_file":
			c.Descriptions = expandPath(value, homeDir)
		case "language", "lang":
			c.Language = value
		case "logfile", "log_file":
			c.LogFile = expandPath(value, homeDir)
		case "loglevel", "log_level":
			c.LogLevel = value
		case "listen", "addr", "listen_address":
			c.Listen = value
		case "user", "author":
			c.User = value
		case "confirmations", "confirm":
			c.Confirmations = strings.ToLower(value) == "true"
		}
	}
}

func (c *Config) applyEnv(homeDir string) {
	c.Database = expandPath(getEnv("SKEYEDIT_DB", c.Database), homeDir)
	c.Listen = getEnv("SKEYEDIT_ADDR", c.Listen)
	c.Language = getEnv("SKEYEDIT_LANG", c.Language)
	c.LogFile = expandPath(getEnv("SKEYEDIT_LOG", c.LogFile), homeDir)
	c.LogLevel = getEnv("SKEYEDIT_LOG_LEVEL", c.LogLevel)
	c.User = getEnv("SKEYEDIT_USER", c.User)
	c.ImportDirectory = expandPath(getEnv("SKEYEDIT_IMPORT_DIR", c.ImportDirectory), homeDir)
	c.Descriptions = expandPath(getEnv("SKEYEDIT_DESCRIPTIONS", c.Descriptions), homeDir)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func expandPath(value, homeDir string) string {
	if value == "" {
		return value
	}
	if strings.HasPrefix(value, "~") {
		value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
	}
	if !filepath.IsAbs(value) {
		if absPath, err := filepath.Abs(value); err == nil {
			value = absPath
		}
	}
	return value
}

// GetExportPath places an export file in the export directory, creating it
// on demand.
func (c *Config) GetExportPath(filename string) string {
	if c.ExportDirectory == "" {
		return filename
	}
	os.MkdirAll(c.ExportDirectory, 0755)
	return filepath.Join(c.ExportDirectory, filename)
}
