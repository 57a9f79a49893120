package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/qcforge/qcmend/internal/output"
)

// newSchemaCmd creates the schema command. root is walked to collect the
// command tree, so orchestrators can discover flags without parsing help text.
func newSchemaCmd(root *cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Show command and flag schemas for orchestrator integration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var schemas []commandSchema
			collectCommandSchemas(root, &schemas)

			type resp struct {
				Commands []commandSchema `json:"commands"`
			}
			return output.PrintSuccess(resp{Commands: schemas})
		},
	}
}

type flagSchema struct {
	Type        string `json:"type"`
	Default     string `json:"default,omitempty"`
	Description string `json:"description"`
}

type commandSchema struct {
	Command     string                `json:"command"`
	Description string                `json:"description"`
	Flags       map[string]flagSchema `json:"flags,omitempty"`
}

func collectCommandSchemas(cmd *cobra.Command, out *[]commandSchema) {
	if cmd.Name() != "" && cmd.Name() != "qcmend" && cmd.Name() != "schema" && !cmd.Hidden {
		*out = append(*out, buildCommandSchema(cmd))
	}
	for _, child := range cmd.Commands() {
		collectCommandSchemas(child, out)
	}
}

func buildCommandSchema(cmd *cobra.Command) commandSchema {
	flags := map[string]flagSchema{}
	addFlag := func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		flags[f.Name] = flagSchema{
			Type:        f.Value.Type(),
			Default:     f.DefValue,
			Description: f.Usage,
		}
	}
	cmd.InheritedFlags().VisitAll(addFlag)
	cmd.NonInheritedFlags().VisitAll(addFlag)

	s := commandSchema{
		Command:     cmd.CommandPath(),
		Description: cmd.Short,
	}
	if len(flags) > 0 {
		s.Flags = flags
	}
	return s
}
