// Package cli implements the dws command line.
package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/askiada/go-dws/internal/config"
	"github.com/askiada/go-dws/internal/logging"
	"github.com/askiada/go-dws/pkg/dws"
	"github.com/askiada/go-dws/pkg/pipeline/measure"
)

type app struct {
	fs     afero.Fs
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	apiKey  string
	baseURL string
	timeout time.Duration
	debug   bool
	stats   bool

	clientOpts []dws.Option
	logger     *log.Logger
	client     *dws.Client
	measure    *measure.DefaultMeasure
}

// NewRootCommand returns the dws command with every subcommand attached.
// clientOpts are appended to the options of the client built for each run.
func NewRootCommand(fs afero.Fs, stdin io.Reader, stdout, stderr io.Writer, clientOpts ...dws.Option) *cobra.Command {
	a := &app{
		fs:         fs,
		stdin:      stdin,
		stdout:     stdout,
		stderr:     stderr,
		clientOpts: clientOpts,
	}

	rootCmd := &cobra.Command{
		Use:   "dws",
		Short: "Process documents with the Nutrient Document Web Services API.",
		Long: `dws sends documents to the Nutrient Document Web Services API and writes the result.

Inputs are file paths, or "-" to read standard input. Results are written to the
file given with --output, or to standard output.

The API key is read from --api-key, NUTRIENT_API_KEY, a .env file in the working
directory or the user configuration file.`,
		SilenceUsage:       true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
	}

	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.apiKey, "api-key", "", "API key, overrides NUTRIENT_API_KEY")
	flags.StringVar(&a.baseURL, "base-url", "", "API base URL, overrides NUTRIENT_BASE_URL")
	flags.DurationVar(&a.timeout, "timeout", 0, "request timeout, overrides NUTRIENT_TIMEOUT")
	flags.BoolVar(&a.debug, "debug", false, "log requests to standard error")
	flags.BoolVar(&a.stats, "stats", false, "print request statistics to standard error")

	rootCmd.AddCommand(
		a.newBuildCommand(),
		a.newToolsCommand(),
		a.newConvertCommand(),
		a.newFlattenCommand(),
		a.newRedactCommand(),
		a.newRotateCommand(),
		a.newOCRCommand(),
		a.newWatermarkCommand(),
		a.newMergeCommand(),
		a.newSplitCommand(),
		a.newDeletePagesCommand(),
		a.newDuplicatePagesCommand(),
		a.newAddPageCommand(),
		a.newLabelCommand(),
	)

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	pwd, err := os.Getwd()
	if err != nil {
		return errors.Wrap(err, "unable to get working directory")
	}

	cfg, err := config.Load(a.fs, pwd)
	if err != nil {
		return err
	}

	transportCfg := cfg.Transport()

	flags := cmd.Flags()
	if flags.Changed("api-key") {
		transportCfg.APIKey = a.apiKey
	}

	if flags.Changed("base-url") {
		transportCfg.BaseURL = a.baseURL
	}

	if flags.Changed("timeout") {
		transportCfg.Timeout = a.timeout
	}

	a.logger = logging.New(a.stderr, a.debug || cfg.IsDebug())

	opts := []dws.Option{dws.WithFs(a.fs), dws.WithLogger(a.logger)}

	if a.stats {
		a.measure = measure.NewDefaultMeasure()
		opts = append(opts, dws.WithHooks(measure.PipelineMeasure(a.measure)))
	}

	a.client = dws.New(transportCfg, append(opts, a.clientOpts...)...)

	return nil
}

func (a *app) teardown(_ *cobra.Command, _ []string) error {
	if a.client != nil {
		a.client.Close()
	}

	if a.measure != nil {
		_, err := fmt.Fprint(a.stderr, measure.Summary(a.measure))
		if err != nil {
			return errors.Wrap(err, "unable to print statistics")
		}
	}

	return nil
}

// output registers the --output flag of a command.
func output(cmd *cobra.Command, path *string) {
	cmd.Flags().StringVarP(path, "output", "o", "", "write the result to this file instead of standard output")
}

// write prints a result. Results saved with --output are nil and skipped.
func (a *app) write(data []byte) error {
	if data == nil {
		return nil
	}

	_, err := a.stdout.Write(data)
	if err != nil {
		return errors.Wrap(err, "unable to write result")
	}

	return nil
}

func callOptions(outputPath string) []dws.CallOption {
	if outputPath == "" {
		return nil
	}

	return []dws.CallOption{dws.SaveTo(outputPath)}
}
