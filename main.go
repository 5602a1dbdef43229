// Package main provides the granola CLI entry point.
// granola reads the Granola desktop app's local cache to list, show, search
// and export meeting notes without going through Granola's servers.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/The-Focus-AI/granola-skill/cmd"
	"github.com/The-Focus-AI/granola-skill/config"
	"github.com/The-Focus-AI/granola-skill/pkg/buildinfo"
	gerrors "github.com/The-Focus-AI/granola-skill/pkg/errors"
	"github.com/The-Focus-AI/granola-skill/pkg/granola"
	"github.com/The-Focus-AI/granola-skill/pkg/logging"
)

// rootOptions holds the global flags and the dependencies they configure.
type rootOptions struct {
	argv         []string
	cachePath    string
	outputFormat string
	debug        bool

	deps *cmd.CommandDeps
}

func newRootCmd(argv []string) *cobra.Command {
	opts := &rootOptions{argv: argv, deps: cmd.DefaultDeps()}

	rootCmd := &cobra.Command{
		Use:   "granola",
		Short: "Read Granola meeting notes from the local cache",
		Long: `granola reads the cache file the Granola desktop app keeps on disk and
makes its meetings available on the command line. It never writes to the
cache and needs no network access.

COMMON WORKFLOWS:
  Recent meetings:  granola list --days 14
  Read a meeting:   granola show 1a2b3c4d --transcript
  Find a meeting:   granola search roadmap review
  Save to markdown: granola export 1a2b3c4d --output ~/notes

Meeting IDs may be shortened to any unique prefix. Use --format json or
--format yaml for machine-readable output.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: opts.preRun,
	}

	rootCmd.PersistentFlags().StringVar(&opts.cachePath, "cache", "", "Granola cache file (default is the platform cache location)")
	rootCmd.PersistentFlags().StringVar(&opts.outputFormat, "format", "", "output format: text, json, yaml")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	rootCmd.AddGroup(
		&cobra.Group{ID: "meetings", Title: "Meetings:"},
		&cobra.Group{ID: "setup", Title: "Setup:"},
	)

	for _, c := range []*cobra.Command{
		cmd.NewListCommand(opts.deps),
		cmd.NewShowCommand(opts.deps),
		cmd.NewSearchCommand(opts.deps),
		cmd.NewExportCommand(opts.deps),
		cmd.NewTranscriptCommand(opts.deps),
		cmd.NewMCPCommand(opts.deps),
	} {
		c.GroupID = "meetings"
		rootCmd.AddCommand(c)
	}

	for _, c := range []*cobra.Command{
		newVersionCmd(),
		newConfigCmd(),
		newCompletionCmd(rootCmd),
	} {
		c.GroupID = "setup"
		rootCmd.AddCommand(c)
	}
	rootCmd.SetHelpCommandGroupID("setup")

	return rootCmd
}

// preRun loads configuration and applies the global flags before any
// meeting command runs.
func (o *rootOptions) preRun(c *cobra.Command, args []string) error {
	// Skip initialization for commands that don't need it.
	if c.Name() == "version" || c.Name() == "help" || c.Name() == "completion" {
		return nil
	}
	if c.HasParent() && c.Parent().Name() == "config" {
		return nil
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	// Override with command-line flags.
	if o.cachePath != "" {
		cfg.CachePath = o.cachePath
	}
	if o.outputFormat != "" {
		format := config.OutputFormat(o.outputFormat)
		if !format.IsValid() {
			return fmt.Errorf("invalid --format %q (must be text, json, or yaml)", o.outputFormat)
		}
		cfg.OutputFormat = format
	}
	if o.debug {
		cfg.Debug = true
	}

	logCfg := logging.DefaultConfig()
	logCfg.Output = c.ErrOrStderr()
	if cfg.Debug {
		logCfg.Level = logging.LevelDebug
	}
	logger := logging.NewLogger(logCfg)

	o.deps.Config = cfg
	o.deps.Logger = logger

	inv := cmd.ParseArgs(o.argv)
	logger.Debug("invocation",
		logging.F("command", inv.Command),
		logging.F("positionals", inv.Positionals),
		logging.F("flags", inv.Flags),
		logging.F("version", buildinfo.Get("granola").Version),
	)
	return nil
}

func newVersionCmd() *cobra.Command {
	var asJSON bool

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: `Print the version, commit hash, and build time of the granola CLI.

Examples:
  granola version
  granola version --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := buildinfo.Get("granola")
			out := cmd.OutOrStdout()

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}

			fmt.Fprintf(out, "granola version %s\n", info.Version)
			fmt.Fprintf(out, "  commit:     %s\n", info.Commit)
			fmt.Fprintf(out, "  built:      %s\n", info.BuildTime)
			fmt.Fprintf(out, "  go:         %s\n", info.GoVersion)
			return nil
		},
	}

	versionCmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")

	return versionCmd
}

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  `View and modify the granola CLI configuration settings.`,
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  `Display the configuration after applying the config file and GRANOLA_* environment variables.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}
			configPath, _ := config.ConfigPath()

			cachePath := cfg.CachePath
			if cachePath == "" {
				if p, err := granola.DefaultCachePath(); err == nil {
					cachePath = p + " (default)"
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Current configuration:")
			fmt.Fprintf(out, "  Config file:    %s\n", configPath)
			fmt.Fprintf(out, "  Cache path:     %s\n", cachePath)
			fmt.Fprintf(out, "  Export dir:     %s\n", cfg.ExportDir)
			fmt.Fprintf(out, "  Output format:  %s\n", cfg.OutputFormat)
			fmt.Fprintf(out, "  Recent days:    %d\n", cfg.RecentDays)
			fmt.Fprintf(out, "  Search limit:   %d\n", cfg.SearchLimit)
			fmt.Fprintf(out, "  Debug:          %t\n", cfg.Debug)
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file",
		Long:  `Create a new configuration file with default values if one doesn't exist.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := config.ConfigPath()
			if err != nil {
				return fmt.Errorf("getting config path: %w", err)
			}
			out := cmd.OutOrStdout()

			if _, err := os.Stat(configPath); err == nil {
				fmt.Fprintf(out, "Configuration file already exists: %s\n", configPath)
				fmt.Fprintln(out, "Use 'granola config show' to view current settings.")
				return nil
			}

			defaultCfg := config.DefaultConfig()
			if err := config.SaveConfig(defaultCfg); err != nil {
				return fmt.Errorf("saving configuration: %w", err)
			}

			fmt.Fprintf(out, "Created configuration file: %s\n", configPath)
			fmt.Fprintln(out, "\nDefault settings:")
			fmt.Fprintf(out, "  Export dir:     %s\n", defaultCfg.ExportDir)
			fmt.Fprintf(out, "  Output format:  %s\n", defaultCfg.OutputFormat)
			fmt.Fprintf(out, "  Recent days:    %d\n", defaultCfg.RecentDays)
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Set a configuration value in the config file.

Available keys:
  cache_path     - Granola cache file (supports ~)
  export_dir     - Default directory for 'granola export'
  output_format  - Default output format (text, json, yaml)
  recent_days    - Default window for 'granola list'
  search_limit   - Maximum results shown by 'granola search'
  debug          - Enable debug logging (true/false)

Examples:
  granola config set export_dir ~/notes/meetings
  granola config set recent_days 14
  granola config set output_format json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			currentCfg, err := config.LoadConfig()
			if err != nil {
				// If config doesn't load, start with defaults.
				currentCfg = config.DefaultConfig()
			}

			if err := currentCfg.Set(key, value); err != nil {
				return err
			}

			if err := config.SaveConfig(currentCfg); err != nil {
				return fmt.Errorf("saving configuration: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
			return nil
		},
	})

	return configCmd
}

func newCompletionCmd(rootCmd *cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for granola.

To load completions:

Bash:
  $ source <(granola completion bash)

Zsh:
  $ granola completion zsh > "${fpath[1]}/_granola"

Fish:
  $ granola completion fish | source

PowerShell:
  PS> granola completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return rootCmd.GenBashCompletion(out)
			case "zsh":
				return rootCmd.GenZshCompletion(out)
			case "fish":
				return rootCmd.GenFishCompletion(out, true)
			case "powershell":
				return rootCmd.GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

// run executes the CLI and returns the process exit code.
func run(argv []string, stdout, stderr io.Writer) int {
	if argv == nil {
		argv = []string{}
	}
	rootCmd := newRootCmd(argv)
	rootCmd.SetArgs(cmd.NormalizeArgs(argv))
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if hint := gerrors.GetSuggestedAction(gerrors.Classify(err)); hint != "" {
			fmt.Fprintf(stderr, "Hint: %s\n", hint)
		}
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
