package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/project-labs/project/internal/branding"
	"github.com/project-labs/project/internal/config"
	"github.com/spf13/cobra"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	configFile   string
	root         string
	templatePath string
	verbose      bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   branding.CLIName(),
		Short: branding.Description(),
		Long: branding.DisplayName() + ` scaffolds new projects from template directories.

Every file of the chosen template is copied into the destination root.
When a file already exists you decide whether to skip it, overwrite it or,
for JSON files, merge it into the existing one.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default is $"+branding.EnvVar("CONFIG")+" or ~/"+branding.ConfigDir()+"/"+branding.ConfigFile()+")")
	cmd.PersistentFlags().StringVar(&opts.root, "root", "", "destination directory (default is the current directory)")
	cmd.PersistentFlags().StringVar(&opts.templatePath, config.KeyTemplatePath, "", "directory holding the templates")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(newInitCmd(opts))
	cmd.AddCommand(newListCmd(opts))
	cmd.AddCommand(newConfigCmd(opts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	return fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(versionString()),
		fang.WithNotifySignal(os.Interrupt),
	)
}

func versionString() string {
	if buildVersion == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", buildVersion, buildCommit, buildDate)
}

// loadConfig opens the config file selected by --config or the default
// location, and binds the persistent flags over it.
func (o *rootOptions) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path := o.configFile
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return nil, err
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if f := cmd.Flags().Lookup(config.KeyTemplatePath); f != nil {
		if err := cfg.Viper().BindPFlag(config.KeyTemplatePath, f); err != nil {
			return nil, fmt.Errorf("binding --%s: %w", config.KeyTemplatePath, err)
		}
	}
	return cfg, nil
}

// destination returns the absolute destination root.
func (o *rootOptions) destination() (string, error) {
	if o.root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting current directory: %w", err)
		}
		return wd, nil
	}
	return config.ExpandPath(o.root)
}

func (o *rootOptions) logger(w io.Writer) *log.Logger {
	level := log.InfoLevel
	if o.verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: branding.CLIName(),
		Level:  level,
	})
}
