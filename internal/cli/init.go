package cli

import (
	"fmt"
	"strings"

	"github.com/project-labs/project/internal/branding"
	"github.com/project-labs/project/internal/config"
	"github.com/project-labs/project/internal/conflict"
	"github.com/project-labs/project/internal/document"
	"github.com/project-labs/project/internal/errdefs"
	"github.com/project-labs/project/internal/scaffold"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

type initOptions struct {
	*rootOptions
	template   string
	strategy   string
	onConflict string
}

func newInitCmd(root *rootOptions) *cobra.Command {
	opts := &initOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:   "init [template]",
		Short: "Create a project from a template",
		Long: `Copy every file of a template into the destination root.

The template is a directory under templatePath. When a file already exists
in the destination you are asked to skip it, merge it (JSON only) or
overwrite it, either for that file or for all remaining conflicts.
Use --on-conflict to answer every conflict up front.`,
		Example: fmt.Sprintf(`  %[1]s init node-service
  %[1]s init --template node-service --root ./svc
  %[1]s init node-service --on-conflict merge --strategy source-wins`, branding.CLIName()),
		Args: cobra.MaximumNArgs(1),
		RunE: opts.run,
	}

	strategies := make([]string, 0, 2)
	for _, s := range document.Strategies() {
		strategies = append(strategies, string(s))
	}
	verbs := make([]string, 0, 3)
	for _, v := range conflict.Verbs() {
		verbs = append(verbs, string(v))
	}

	cmd.Flags().StringVar(&opts.template, "template", "", "template name (alternative to the positional argument)")
	cmd.Flags().StringVar(&opts.strategy, config.KeyStrategy, "", "JSON merge strategy ("+strings.Join(strategies, ", ")+")")
	cmd.Flags().StringVar(&opts.onConflict, "on-conflict", "", "answer every conflict with this action ("+strings.Join(verbs, ", ")+")")

	return cmd
}

func (o *initOptions) run(cmd *cobra.Command, args []string) error {
	name, err := o.templateName(args)
	if err != nil {
		return err
	}

	cfg, err := o.loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Viper().BindPFlag(config.KeyStrategy, cmd.Flags().Lookup(config.KeyStrategy)); err != nil {
		return fmt.Errorf("binding --%s: %w", config.KeyStrategy, err)
	}

	result, err := cfg.Validate()
	if err != nil {
		return err
	}
	if !result.Valid {
		issues := make([]string, 0, len(result.Issues))
		for _, issue := range result.Issues {
			issues = append(issues, issue.String())
		}
		return errdefs.InvalidInput("config file %s is invalid: %s", cfg.Path(), strings.Join(issues, "; "))
	}

	templatePath, err := cfg.TemplatePath()
	if err != nil {
		return err
	}
	strategy, err := cfg.Strategy()
	if err != nil {
		return err
	}
	dest, err := o.destination()
	if err != nil {
		return err
	}

	chooser, err := o.chooser(cmd)
	if err != nil {
		return err
	}

	logger := o.logger(cmd.ErrOrStderr())
	s, err := scaffold.New(afero.NewOsFs(), scaffold.Options{
		Root:         dest,
		TemplatePath: templatePath,
		Strategy:     strategy,
		Chooser:      chooser,
		Logger:       logger,
	})
	if err != nil {
		if templatePath == "" {
			return fmt.Errorf("%w (set it with '%s config set %s <dir>')", err, branding.CLIName(), config.KeyTemplatePath)
		}
		return err
	}

	res, err := s.Init(cmd.Context(), name)
	if err != nil {
		return fmt.Errorf("initializing from template %q: %w", name, err)
	}

	logger.Info("project initialized",
		"template", name,
		"root", res.Root,
		"created", len(res.Created),
		"overwritten", len(res.Overwritten),
		"merged", len(res.Merged),
		"skipped", len(res.Skipped),
	)

	st := newStyles(cmd.OutOrStdout())
	fmt.Fprintf(cmd.OutOrStdout(), "%s %d files from %s into %s\n",
		st.success.Render("Done:"), res.Total(), st.path.Render(name), st.path.Render(res.Root))
	return nil
}

// templateName picks the template from the positional argument or --template.
func (o *initOptions) templateName(args []string) (string, error) {
	name := o.template
	if len(args) == 1 {
		if name != "" && name != args[0] {
			return "", errdefs.InvalidInput("template given twice: %q and --template %q", args[0], name)
		}
		name = args[0]
	}
	if name == "" {
		return "", errdefs.InvalidInput("template name is required")
	}
	return name, nil
}

func (o *initOptions) chooser(cmd *cobra.Command) (conflict.Chooser, error) {
	if o.onConflict == "" {
		return conflict.NewMenuChooser(cmd.InOrStdin(), cmd.ErrOrStderr()), nil
	}
	verb, err := conflict.ParseVerb(o.onConflict)
	if err != nil {
		return nil, fmt.Errorf("--on-conflict: %w", err)
	}
	return conflict.FixedChooser{Verb: verb}, nil
}
