package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/skelly-dev/ctxgrab/internal/fileutil"
	"github.com/spf13/cobra"
)

var (
	errNoInputs      = errors.New("no inputs given: pass at least one path, directory, glob pattern or file name")
	errTagsWithDepth = errors.New("--tags and --depth cannot be combined: tags list definitions and take no depth")
)

func OptionalStringFlag(cmd *cobra.Command, name string) (string, error) {
	if cmd == nil || cmd.Flags().Lookup(name) == nil {
		return "", nil
	}
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		return "", fmt.Errorf("failed to read --%s flag: %w", name, err)
	}
	return strings.TrimSpace(value), nil
}

// OptionalIntFlag returns nil unless the flag was set on the command line
func OptionalIntFlag(cmd *cobra.Command, name string) (*int, error) {
	if cmd == nil || cmd.Flags().Lookup(name) == nil || !cmd.Flags().Changed(name) {
		return nil, nil
	}
	value, err := cmd.Flags().GetInt(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read --%s flag: %w", name, err)
	}
	return &value, nil
}

// OptionalBoolFlag returns nil unless the flag was set on the command line
func OptionalBoolFlag(cmd *cobra.Command, name string) (*bool, error) {
	if cmd == nil || cmd.Flags().Lookup(name) == nil || !cmd.Flags().Changed(name) {
		return nil, nil
	}
	value, err := cmd.Flags().GetBool(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read --%s flag: %w", name, err)
	}
	return &value, nil
}

func BoolFlag(cmd *cobra.Command, name string) (bool, error) {
	value, err := OptionalBoolFlag(cmd, name)
	if err != nil || value == nil {
		return false, err
	}
	return *value, nil
}

type grabFlags struct {
	depth         *int
	tags          *bool
	stdout        *bool
	noColor       *bool
	concurrency   *int
	configPath    string
	asJSON        bool
	listLanguages bool
}

func readGrabFlags(cmd *cobra.Command) (grabFlags, error) {
	var f grabFlags
	var err error

	if f.depth, err = OptionalIntFlag(cmd, "depth"); err != nil {
		return f, err
	}
	if f.depth != nil && *f.depth < 0 {
		return f, fmt.Errorf("--depth must be >= 0, got %d", *f.depth)
	}
	if f.concurrency, err = OptionalIntFlag(cmd, "concurrency"); err != nil {
		return f, err
	}
	if f.tags, err = OptionalBoolFlag(cmd, "tags"); err != nil {
		return f, err
	}
	if f.depth != nil && f.tags != nil && *f.tags {
		return f, errTagsWithDepth
	}
	if f.stdout, err = OptionalBoolFlag(cmd, "stdout"); err != nil {
		return f, err
	}
	if f.noColor, err = OptionalBoolFlag(cmd, "no-color"); err != nil {
		return f, err
	}
	if f.configPath, err = OptionalStringFlag(cmd, "config"); err != nil {
		return f, err
	}
	if f.asJSON, err = BoolFlag(cmd, "json"); err != nil {
		return f, err
	}
	if f.listLanguages, err = BoolFlag(cmd, "list-languages"); err != nil {
		return f, err
	}
	return f, nil
}

// validateInputs requires at least one non-blank input unless the command
// only lists languages.
func validateInputs(cmd *cobra.Command, args []string) error {
	if list, _ := BoolFlag(cmd, "list-languages"); list {
		return nil
	}
	if len(fileutil.NonEmpty(args)) == 0 {
		return errNoInputs
	}
	return nil
}
