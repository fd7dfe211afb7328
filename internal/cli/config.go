package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tagcloud/pkg/config"
	"github.com/matzehuels/tagcloud/pkg/errors"
)

const defaultConfigFile = appName + ".toml"

// configCommand creates the config command for managing TOML settings.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Write or check a TOML settings file",
	}

	cmd.AddCommand(c.configInitCommand())
	cmd.AddCommand(c.configCheckCommand())

	return cmd
}

// configInitCommand creates the "config init" subcommand.
func (c *CLI) configInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default settings to a TOML file",
		Long: `Write the default settings to a TOML file (default: tagcloud.toml).

Edit the file and pass it to render, layout or preview with --config. Use -
to print the settings instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultConfigFile
			if len(args) == 1 {
				path = args[0]
			}
			return writeDefaultConfig(path, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func writeDefaultConfig(path string, force bool) error {
	def := config.Default()
	if path == stdoutPath {
		return def.Encode(stdout)
	}
	if err := errors.ValidatePath(path); err != nil {
		return err
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if os.IsExist(err) {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "%s already exists (use --force to overwrite)", path)
	}
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := def.Encode(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printSuccess("Wrote default settings")
	printFile(path)
	return nil
}

// configCheckCommand creates the "config check" subcommand.
func (c *CLI) configCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check [path]",
		Short: "Validate a TOML settings file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := config.Load(args[0])
			if err != nil {
				return err
			}
			printSuccess("%s is valid", args[0])
			printKeyValue("width", fmt.Sprintf("%g", f.Container.Width))
			printKeyValue("font sizes", fmt.Sprintf("%g..%g", f.Tag.MinFontSize, f.Tag.MaxFontSize))
			printKeyValue("measurer", f.Layout.Measurer)
			printKeyValue("palette", plural(len(f.Palette), "color"))
			return nil
		},
	}
}
