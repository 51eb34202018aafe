package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nomoriel/phase2vec/internal/cluster"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Command names accepted on the command line.
const (
	CmdWriteGridsearchJobs       = "write-gridsearch-jobs"
	CmdGenerateGridsearchConfig  = "generate-gridsearch-config"
	CmdAggregateGridsearchResult = "aggregate-gridsearch-results"
	CmdGenerateTrainConfig       = "generate-train-config"
	CmdGenerateDataConfig        = "generate-data-config"
	CmdGenerateNetConfig         = "generate-net-config"
	CmdListRuns                  = "list-runs"
)

// Command is the parsed, validated result of command-line processing.
type Command struct {
	Name string

	LogLevel  string
	LogFormat string

	// generate-*-config
	OutputFile string

	// write-gridsearch-jobs
	ScanFile       string
	SaveDir        string
	ClusterType    string
	SlurmPartition string
	SlurmNCPUs     int
	SlurmMemory    string
	SlurmWallTime  string
	TrainerCmd     string

	// write-gridsearch-jobs, list-runs
	RegistryDB string

	// aggregate-gridsearch-results
	ResultsDir string
}

func usage(output io.Writer, globals *flag.FlagSet) {
	fmt.Fprint(output, `
phase2vec - learn latent representations of vector-field dynamical systems.

Usage:
  phase2vec [options] <command> [command options] [arguments]

Commands:
  generate-gridsearch-config    Generate an editable hyperparameter scan file.
  write-gridsearch-jobs         Expand a scan file into per-job configs and dispatch commands.
  aggregate-gridsearch-results  Consolidate per-job results into one TSV report.
  generate-train-config         Generate a default training configuration.
  generate-data-config          Generate a default dataset configuration.
  generate-net-config           Generate a default network configuration.
  list-runs                     List previously dispatched gridsearch runs.

Options (defaults shown):
`)
	globals.PrintDefaults()
}

// Parse processes command-line arguments. It returns a populated Command, a
// boolean indicating the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*Command, bool, error) {
	globals := flag.NewFlagSet("phase2vec", flag.ContinueOnError)
	globals.SetOutput(output)
	logLevelFlag := globals.String("log-level", "info", "Logging level: 'debug', 'info', 'warn' or 'error'.")
	logFormatFlag := globals.String("log-format", "text", "Log output format: 'text' or 'json'.")
	globals.Usage = func() { usage(output, globals) }

	if err := globals.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}
	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	rest := globals.Args()
	if len(rest) == 0 {
		globals.Usage()
		return nil, true, nil
	}

	cmd := &Command{Name: rest[0], LogLevel: logLevel, LogFormat: logFormat}
	sub := rest[1:]

	switch cmd.Name {
	case CmdWriteGridsearchJobs:
		return parseWriteJobs(cmd, sub, output)
	case CmdAggregateGridsearchResult:
		return parseAggregate(cmd, sub, output)
	case CmdGenerateGridsearchConfig:
		return parseGenerateConfig(cmd, sub, output, "gridsearch-config.hcl")
	case CmdGenerateTrainConfig:
		return parseGenerateConfig(cmd, sub, output, "train-config.hcl")
	case CmdGenerateDataConfig:
		return parseGenerateConfig(cmd, sub, output, "data-config.hcl")
	case CmdGenerateNetConfig:
		return parseGenerateConfig(cmd, sub, output, "net-config.hcl")
	case CmdListRuns:
		return parseListRuns(cmd, sub, output)
	default:
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unknown command %q", cmd.Name)}
	}
}

func newFlagSet(name string, output io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	return fs
}

func parseWriteJobs(cmd *Command, args []string, output io.Writer) (*Command, bool, error) {
	fs := newFlagSet(CmdWriteGridsearchJobs, output)
	defaultSaveDir := filepath.Join(mustGetwd(), "worker-conf")
	fs.StringVar(&cmd.SaveDir, "save-dir", defaultSaveDir, "Directory to save worker configurations.")
	fs.StringVar(&cmd.ClusterType, "cluster-type", "local", "Execution backend: 'local' or 'slurm'.")
	fs.StringVar(&cmd.SlurmPartition, "slurm-partition", cluster.DefaultSlurmPartition, "Partition on which to run jobs. Only for SLURM.")
	fs.IntVar(&cmd.SlurmNCPUs, "slurm-ncpus", cluster.DefaultSlurmNCPUs, "Number of CPUs per job. Only for SLURM.")
	fs.StringVar(&cmd.SlurmMemory, "slurm-memory", cluster.DefaultSlurmMemory, "Amount of memory per job. Only for SLURM.")
	fs.StringVar(&cmd.SlurmWallTime, "slurm-wall-time", cluster.DefaultSlurmWallTime, "Max wall time per job. Only for SLURM.")
	fs.StringVar(&cmd.TrainerCmd, "trainer-cmd", cluster.DefaultTrainerCmd, "Training entrypoint invoked by generated commands.")
	fs.StringVar(&cmd.RegistryDB, "registry-db", "", "Path to the dispatch registry database. Empty uses the per-user default.")
	fs.Usage = func() {
		fmt.Fprintf(output, "\nUsage:\n  phase2vec %s [options] <scan_file>\n\nOptions (defaults shown):\n", CmdWriteGridsearchJobs)
		fs.PrintDefaults()
	}

	if shouldExit, err := parseSub(fs, args); shouldExit || err != nil {
		return nil, shouldExit, err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return nil, false, &ExitError{Code: 2, Message: "write-gridsearch-jobs requires exactly one scan file argument"}
	}
	cmd.ScanFile = fs.Arg(0)
	return cmd, false, nil
}

func parseAggregate(cmd *Command, args []string, output io.Writer) (*Command, bool, error) {
	fs := newFlagSet(CmdAggregateGridsearchResult, output)
	fs.Usage = func() {
		fmt.Fprintf(output, "\nUsage:\n  phase2vec %s <results_directory>\n", CmdAggregateGridsearchResult)
	}

	if shouldExit, err := parseSub(fs, args); shouldExit || err != nil {
		return nil, shouldExit, err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return nil, false, &ExitError{Code: 2, Message: "aggregate-gridsearch-results requires exactly one results directory argument"}
	}
	cmd.ResultsDir = fs.Arg(0)
	return cmd, false, nil
}

func parseGenerateConfig(cmd *Command, args []string, output io.Writer, defaultOutput string) (*Command, bool, error) {
	fs := newFlagSet(cmd.Name, output)
	fs.StringVar(&cmd.OutputFile, "o", defaultOutput, "Output file path.")
	fs.StringVar(&cmd.OutputFile, "output-file", defaultOutput, "Output file path.")
	fs.Usage = func() {
		fmt.Fprintf(output, "\nUsage:\n  phase2vec %s [options]\n\nOptions (defaults shown):\n", cmd.Name)
		fs.PrintDefaults()
	}

	if shouldExit, err := parseSub(fs, args); shouldExit || err != nil {
		return nil, shouldExit, err
	}
	return cmd, false, nil
}

func parseListRuns(cmd *Command, args []string, output io.Writer) (*Command, bool, error) {
	fs := newFlagSet(CmdListRuns, output)
	fs.StringVar(&cmd.RegistryDB, "registry-db", "", "Path to the dispatch registry database. Empty uses the per-user default.")
	fs.Usage = func() {
		fmt.Fprintf(output, "\nUsage:\n  phase2vec %s [options]\n\nOptions (defaults shown):\n", CmdListRuns)
		fs.PrintDefaults()
	}

	if shouldExit, err := parseSub(fs, args); shouldExit || err != nil {
		return nil, shouldExit, err
	}
	return cmd, false, nil
}

func parseSub(fs *flag.FlagSet, args []string) (bool, error) {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return true, nil
		}
		return false, &ExitError{Code: 2, Message: err.Error()}
	}
	return false, nil
}

func mustGetwd() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}
