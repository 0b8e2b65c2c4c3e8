package cli

import (
	"github.com/spf13/cobra"

	"github.com/askiada/go-dws/internal/definition"
	"github.com/askiada/go-dws/pkg/pipeline"
	"github.com/askiada/go-dws/pkg/pipeline/drawer"
	"github.com/askiada/go-dws/pkg/pipeline/measure"
	"github.com/askiada/go-dws/pkg/pipeline/model"
)

func (a *app) newBuildCommand() *cobra.Command {
	var outputPath, definitionPath, planPath string

	cmd := &cobra.Command{
		Use:   "build INPUT...",
		Short: "Run a multi-step pipeline read from a definition file.",
		Long: `Run a multi-step pipeline read from a YAML or JSON definition file:

  steps:
    - tool: convert-to-pdf
    - tool: ocr-pdf
      options:
        language: german
    - tool: watermark-pdf
      options:
        text: DRAFT
  output:
    metadata:
      title: Report

Run "dws tools" to list the accepted tools. With --plan, the pipeline is drawn in
DOT format once it succeeded.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := definition.Load(a.fs, definitionPath)
			if err != nil {
				return err
			}

			var hooks []model.PipelineOption

			if planPath != "" {
				var msr measure.Measure
				if a.measure != nil {
					msr = a.measure
				}

				hooks = append(hooks, drawer.PipelineDrawer(drawer.NewDOTDrawer(a.fs, planPath), msr))
			}

			pipe := def.Apply(a.client.BuildWith(a.inputs(args), pipeline.WithHooks(hooks...)))

			if outputPath != "" {
				return pipe.ExecuteTo(cmd.Context(), outputPath)
			}

			data, err := pipe.Execute(cmd.Context())
			if err != nil {
				return err
			}

			return a.write(data)
		},
	}

	cmd.Flags().StringVarP(&definitionPath, "pipeline", "p", "", "pipeline definition file")
	cmd.Flags().StringVar(&planPath, "plan", "", "write the pipeline plan to this DOT file")
	_ = cmd.MarkFlagRequired("pipeline")
	output(cmd, &outputPath)

	return cmd
}
