package cli

import (
	"encoding/json"
	"fmt"

	"github.com/project-labs/project/internal/branding"
	"github.com/project-labs/project/internal/config"
	"github.com/project-labs/project/internal/scaffold"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

type listOptions struct {
	*rootOptions
	json bool
}

// listOutput is the --json form of the list command.
type listOutput struct {
	TemplatePath string   `json:"templatePath"`
	Templates    []string `json:"templates"`
}

func newListCmd(root *rootOptions) *cobra.Command {
	opts := &listOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available templates",
		Long:  `List the template directories found under templatePath.`,
		Args:  cobra.NoArgs,
		RunE:  opts.run,
	}
	cmd.Flags().BoolVar(&opts.json, "json", false, "Output in JSON format")
	return cmd
}

func (o *listOptions) run(cmd *cobra.Command, args []string) error {
	cfg, err := o.loadConfig(cmd)
	if err != nil {
		return err
	}
	templatePath, err := cfg.TemplatePath()
	if err != nil {
		return err
	}
	if templatePath == "" {
		return fmt.Errorf(`"templatePath" is not configured (set it with '%s config set %s <dir>')`, branding.CLIName(), config.KeyTemplatePath)
	}

	names, err := scaffold.ListTemplates(afero.NewOsFs(), templatePath)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if o.json {
		if names == nil {
			names = []string{}
		}
		data, err := json.MarshalIndent(listOutput{TemplatePath: templatePath, Templates: names}, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	if len(names) == 0 {
		fmt.Fprintf(out, "No templates found in %s\n", templatePath)
		return nil
	}
	for _, name := range names {
		fmt.Fprintln(out, name)
	}
	return nil
}
