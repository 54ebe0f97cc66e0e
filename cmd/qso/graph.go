package main

import (
	"fmt"

	graphview "github.com/aretw0/qso/internal/presentation/graph"
	"github.com/aretw0/qso/pkg/domain"
	"github.com/aretw0/qso/pkg/ft8"
	"github.com/aretw0/qso/pkg/protocol"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the phase graph",
	Long: `Outputs the protocol's phase graph as a Mermaid diagram, a Graphviz DOT file or
the YAML protocol definition. With --demo the phases a fixture visits are highlighted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		eng, err := newEngine(cfg, newLogger(cfg))
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		demo, _ := cmd.Flags().GetString("demo")

		var overlay *graphview.Overlay
		if demo != "" {
			lines, ok := ft8.Fixtures[demo]
			if !ok {
				return fmt.Errorf("unknown demo %q", demo)
			}
			overlay = &graphview.Overlay{Visited: []domain.Phase{eng.CurrentPhase()}}
			for _, msg := range ft8.Messages(lines) {
				res, err := eng.Step(cmd.Context(), msg)
				if err != nil {
					return err
				}
				if res.Advanced {
					overlay.Visited = append(overlay.Visited, res.Phase)
				}
			}
			overlay.Current = eng.CurrentPhase()
		}

		view := graphview.NewView(eng.Graph(), eng.Table())
		out := cmd.OutOrStdout()

		switch format {
		case "mermaid":
			fmt.Fprint(out, graphview.GenerateMermaid(view, overlay))
		case "dot":
			fmt.Fprint(out, graphview.GenerateDOT(eng.Protocol().Name, view, overlay))
		case "yaml":
			data, err := protocol.Export(eng.Protocol()).YAML()
			if err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		default:
			return fmt.Errorf("unknown format %q (mermaid, dot, yaml)", format)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringP("format", "f", "mermaid", "Output format: mermaid, dot or yaml")
	graphCmd.Flags().String("demo", "", "Highlight the phases visited by a built-in fixture")
}
