package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/askiada/go-dws/pkg/dws"
	"github.com/askiada/go-dws/pkg/fileinput"
	"github.com/askiada/go-dws/pkg/pipeline/model"
)

func (a *app) newMergeCommand() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "merge INPUT INPUT...",
		Short: "Merge documents in order.",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.client.Merge(cmd.Context(), a.inputs(args), callOptions(outputPath)...)
			if err != nil {
				return err
			}

			return a.write(data)
		},
	}

	output(cmd, &outputPath)

	return cmd
}

// SplitOutputPaths names the documents of a split when no output path is given:
// "report.pdf" split in two gives "report-1.pdf" and "report-2.pdf".
func SplitOutputPaths(input string, count int) []string {
	base := filepath.Base(input)
	if input == StdinArg {
		base = "split.pdf"
	}

	ext := filepath.Ext(base)
	if ext == "" {
		ext = ".pdf"
	}

	stem := strings.TrimSuffix(base, filepath.Ext(base))
	dir := filepath.Dir(input)

	res := make([]string, 0, count)
	for i := range count {
		res = append(res, filepath.Join(dir, fmt.Sprintf("%s-%d%s", stem, i+1, ext)))
	}

	return res
}

func (a *app) newSplitCommand() *cobra.Command {
	var (
		rawRanges   []string
		outputPaths []string
	)

	cmd := &cobra.Command{
		Use:   "split INPUT",
		Short: "Extract page ranges into separate documents.",
		Long: `Extract page ranges into separate documents.

Ranges are "start:end", zero-based with an exclusive end. The end can be omitted to
run to the last page. Without --range, the first page is extracted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ranges, err := ParseRanges(rawRanges)
			if err != nil {
				return err
			}

			count := max(len(ranges), 1)

			paths := outputPaths
			if len(paths) == 0 {
				paths = SplitOutputPaths(args[0], count)
			}

			_, err = a.client.Split(cmd.Context(), a.input(args[0]), ranges, paths)
			if err != nil {
				return err
			}

			for _, path := range paths {
				a.logger.Info("written", "path", path)
			}

			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&rawRanges, "range", "r", nil, "page range start:end, repeatable")
	cmd.Flags().StringArrayVarP(&outputPaths, "output", "o", nil, "output file, one per range, repeatable")

	return cmd
}

func (a *app) newPageIndexesCommand(use, short string, call func(ctx context.Context, input fileinput.Input, pageIndexes []int, opts ...dws.CallOption) ([]byte, error)) *cobra.Command {
	var (
		outputPath  string
		pageIndexes []int
	)

	cmd := &cobra.Command{
		Use:   use + " INPUT",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := call(cmd.Context(), a.input(args[0]), pageIndexes, callOptions(outputPath)...)
			if err != nil {
				return err
			}

			return a.write(data)
		},
	}

	cmd.Flags().IntSliceVarP(&pageIndexes, "pages", "p", nil, "zero-based page indexes, comma separated")
	_ = cmd.MarkFlagRequired("pages")
	output(cmd, &outputPath)

	return cmd
}

func (a *app) newDeletePagesCommand() *cobra.Command {
	return a.newPageIndexesCommand("delete-pages", "Remove pages from a PDF.",
		func(ctx context.Context, input fileinput.Input, pageIndexes []int, opts ...dws.CallOption) ([]byte, error) {
			return a.client.DeletePages(ctx, input, pageIndexes, opts...)
		})
}

func (a *app) newDuplicatePagesCommand() *cobra.Command {
	return a.newPageIndexesCommand("duplicate-pages", "Build a PDF from pages in the given order, -1 is the last page.",
		func(ctx context.Context, input fileinput.Input, pageIndexes []int, opts ...dws.CallOption) ([]byte, error) {
			return a.client.DuplicatePages(ctx, input, pageIndexes, opts...)
		})
}

func (a *app) newAddPageCommand() *cobra.Command {
	var (
		outputPath  string
		insertIndex int
		pageCount   int
		layout      model.PageLayout
	)

	cmd := &cobra.Command{
		Use:   "add-page INPUT",
		Short: "Insert blank pages into a PDF.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.client.AddPage(cmd.Context(), a.input(args[0]), insertIndex, pageCount, layout, callOptions(outputPath)...)
			if err != nil {
				return err
			}

			return a.write(data)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&insertIndex, "at", dws.AppendIndex, "index of the page the blank pages are inserted before, -1 appends")
	flags.IntVarP(&pageCount, "count", "n", 1, "number of blank pages")
	flags.StringVar(&layout.Size, "size", dws.DefaultPageSize, "page size")
	flags.StringVar(&layout.Orientation, "orientation", dws.DefaultOrientation, "page orientation: portrait or landscape")
	output(cmd, &outputPath)

	return cmd
}

func (a *app) newLabelCommand() *cobra.Command {
	var outputPath, labelsPath string

	cmd := &cobra.Command{
		Use:   "label INPUT",
		Short: "Set page labels from a YAML or JSON file.",
		Long: `Set page labels from a YAML or JSON file listing page ranges and labels:

  - pages: {start: 0, end: 3}
    label: Introduction
  - pages: {start: 3}
    label: Content`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := afero.ReadFile(a.fs, labelsPath)
			if err != nil {
				return errors.Wrapf(err, "unable to read %s", labelsPath)
			}

			labels, err := dws.ParsePageLabels(raw)
			if err != nil {
				return errors.Wrap(err, labelsPath)
			}

			data, err := a.client.SetPageLabels(cmd.Context(), a.input(args[0]), labels, callOptions(outputPath)...)
			if err != nil {
				return err
			}

			return a.write(data)
		},
	}

	cmd.Flags().StringVarP(&labelsPath, "labels", "l", "", "labels file")
	_ = cmd.MarkFlagRequired("labels")
	output(cmd, &outputPath)

	return cmd
}
