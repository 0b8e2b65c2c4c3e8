package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/askiada/go-dws/pkg/dws"
	"github.com/askiada/go-dws/pkg/fileinput"
	"github.com/askiada/go-dws/pkg/pipeline"
)

type singleFileCall func(ctx context.Context, input fileinput.Input, opts ...dws.CallOption) ([]byte, error)

// newSingleFileCommand builds a command running one action over one input.
// call is resolved at run time since the client only exists once the command started.
func (a *app) newSingleFileCommand(use, short string, call func(c *dws.Client) singleFileCall) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   use + " INPUT",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := call(a.client)(cmd.Context(), a.input(args[0]), callOptions(outputPath)...)
			if err != nil {
				return err
			}

			return a.write(data)
		},
	}

	output(cmd, &outputPath)

	return cmd
}

func (a *app) newConvertCommand() *cobra.Command {
	return a.newSingleFileCommand("convert", "Convert a document to PDF.", func(c *dws.Client) singleFileCall {
		return c.ConvertToPDF
	})
}

func (a *app) newFlattenCommand() *cobra.Command {
	return a.newSingleFileCommand("flatten", "Flatten the annotations of a PDF.", func(c *dws.Client) singleFileCall {
		return c.FlattenAnnotations
	})
}

func (a *app) newRedactCommand() *cobra.Command {
	return a.newSingleFileCommand("redact", "Apply the redaction annotations of a PDF.", func(c *dws.Client) singleFileCall {
		return c.ApplyRedactions
	})
}

func (a *app) newRotateCommand() *cobra.Command {
	var (
		degrees     int
		pageIndexes []int
	)

	cmd := a.newSingleFileCommand("rotate", "Rotate pages of a PDF.", func(c *dws.Client) singleFileCall {
		return func(ctx context.Context, input fileinput.Input, opts ...dws.CallOption) ([]byte, error) {
			return c.RotatePages(ctx, input, degrees, pageIndexes, opts...)
		}
	})

	cmd.Flags().IntVarP(&degrees, "degrees", "d", 90, "rotation in degrees: 90, 180 or 270")
	cmd.Flags().IntSliceVar(&pageIndexes, "pages", nil, "zero-based indexes of the pages to rotate, all pages when empty")

	return cmd
}

func (a *app) newOCRCommand() *cobra.Command {
	var language string

	cmd := a.newSingleFileCommand("ocr", "Make a scanned document searchable.", func(c *dws.Client) singleFileCall {
		return func(ctx context.Context, input fileinput.Input, opts ...dws.CallOption) ([]byte, error) {
			return c.OCR(ctx, input, language, opts...)
		}
	})

	cmd.Flags().StringVarP(&language, "language", "l", pipeline.DefaultOCRLanguage, "document language")

	return cmd
}

func (a *app) newWatermarkCommand() *cobra.Command {
	var (
		watermark pipeline.WatermarkOptions
		opacity   float64
	)

	var cmd *cobra.Command

	cmd = a.newSingleFileCommand("watermark", "Add a text or image watermark to a PDF.", func(c *dws.Client) singleFileCall {
		return func(ctx context.Context, input fileinput.Input, opts ...dws.CallOption) ([]byte, error) {
			if cmd.Flags().Changed("opacity") {
				watermark.Opacity = &opacity
			}

			return c.Watermark(ctx, input, watermark, opts...)
		}
	})

	flags := cmd.Flags()
	flags.StringVar(&watermark.Text, "text", "", "watermark text")
	flags.StringVar(&watermark.ImageURL, "image-url", "", "watermark image URL")
	flags.IntVar(&watermark.Width, "width", pipeline.DefaultWatermarkWidth, "watermark width")
	flags.IntVar(&watermark.Height, "height", pipeline.DefaultWatermarkHeight, "watermark height")
	flags.Float64Var(&opacity, "opacity", pipeline.DefaultWatermarkOpacity, "watermark opacity, from 0 to 1")
	flags.StringVar(&watermark.Position, "position", pipeline.DefaultWatermarkPosition, "watermark position")
	cmd.MarkFlagsMutuallyExclusive("text", "image-url")
	cmd.MarkFlagsOneRequired("text", "image-url")

	return cmd
}

func (a *app) newToolsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the tools accepted in pipeline definitions.",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			for _, tool := range pipeline.Tools() {
				_, err := fmt.Fprintln(a.stdout, tool)
				if err != nil {
					return err
				}
			}

			return nil
		},
	}
}
