package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/skelly-dev/ctxgrab/internal/config"
)

const (
	configFileName = config.FileName
	ignoreFileName = ".ctxgrabignore"
)

func resolveWorkingDirectory() (string, error) {
	rootPath, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to resolve working directory: %w", err)
	}
	return rootPath, nil
}

func LoadIgnoreRules(rootPath string) ([]string, error) {
	ignorePath := filepath.Join(rootPath, ignoreFileName)
	f, err := os.Open(ignorePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", ignoreFileName, err)
	}
	defer f.Close()

	rules := make([]string, 0)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rules = append(rules, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ignoreFileName, err)
	}

	return rules, nil
}

// loadConfig reads an explicit config file when given, otherwise the
// optional one in rootPath, then applies command-line overrides.
func loadConfig(rootPath string, flags grabFlags) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if flags.configPath != "" {
		cfg, err = config.LoadConfigFile(flags.configPath)
	} else {
		cfg, err = config.LoadConfigFromDir(rootPath)
	}
	if err != nil {
		return nil, err
	}

	cfg.MergeWithFlags(flags.depth, flags.tags, flags.stdout, flags.concurrency, flags.noColor)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
