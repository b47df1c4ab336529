package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"

	"github.com/benoitkugler/pixscene/internal/config"
)

// Exit codes of the pixscene command.
const (
	ExitFailure = 1 // unexpected errors
	ExitUsage   = 2 // bad command line or configuration
	ExitInput   = 3 // source file can't be read
	ExitInvalid = 4 // source is not a valid scene
	ExitDrawing = 5 // scene can't be drawn or saved
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func (e *ExitError) Unwrap() error { return e.Err }

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: ExitUsage, Message: fmt.Sprintf(format, args...)}
}

// Command names.
const (
	CommandRender = "render"
	CommandCheck  = "check"
	CommandView   = "view"
)

// Invocation is a validated command line.
type Invocation struct {
	Command string
	Source  string
	Target  string // only set for CommandRender
	Config  config.Config
}

// positional returns the number of arguments expected after the options.
func positional(command string) (int, bool) {
	switch command {
	case CommandRender:
		return 2, true
	case CommandCheck, CommandView:
		return 1, true
	default:
		return 0, false
	}
}

const usageText = `
pixscene - render scene files to images.

Usage:
  pixscene render [options] SOURCE TARGET
  pixscene check  [options] SOURCE
  pixscene view   [options] SOURCE

Arguments:
  SOURCE
    Path to a scene file.
  TARGET
    Path of the image to write. The format is chosen by the extension:
    .png (default), .bmp, .tif, .tiff or .pdf.

Options:
`

// Parse processes command-line arguments. It returns a populated Invocation,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*Invocation, bool, error) {
	flagSet := flag.NewFlagSet("pixscene", flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprint(output, usageText)
		flagSet.PrintDefaults()
	}

	defaults := config.Default()
	configFlag := flagSet.String("config", "", "Path to an HCL configuration file. Defaults to "+config.DefaultPath+" if it exists.")
	scaleFlag := flagSet.Int("scale", defaults.Scale, "Size, in pixels or points, of a scene pixel in the output.")
	gridFlag := flagSet.Bool("grid", defaults.Grid, "Stroke the pixel grid on raster outputs.")
	logLevelFlag := flagSet.String("log-level", defaults.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	logFormatFlag := flagSet.String("log-format", defaults.LogFormat, "Log output format. Options: 'text' or 'json'.")

	if len(args) == 0 {
		flagSet.Usage()
		return nil, true, nil
	}
	command := args[0]
	if command == "-h" || command == "-help" || command == "--help" || command == "help" {
		flagSet.Usage()
		return nil, true, nil
	}
	expected, ok := positional(command)
	if !ok {
		return nil, false, usageError("unknown command %q: must be 'render', 'check' or 'view'", command)
	}

	if err := flagSet.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error(), Err: err}
	}
	if flagSet.NArg() != expected {
		return nil, false, usageError("%s expects %d argument(s), got %d", command, expected, flagSet.NArg())
	}

	file, err := loadConfig(*configFlag)
	if err != nil {
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error(), Err: err}
	}
	cfg := defaults.Apply(file)

	// flags given on the command line win over the file
	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scale":
			cfg.Scale = *scaleFlag
		case "grid":
			cfg.Grid = *gridFlag
		case "log-level":
			cfg.LogLevel = *logLevelFlag
		case "log-format":
			cfg.LogFormat = *logFormatFlag
		}
	})
	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error(), Err: err}
	}

	inv := &Invocation{Command: command, Source: flagSet.Arg(0), Config: cfg}
	if command == CommandRender {
		inv.Target = flagSet.Arg(1)
		if _, err := driverFor(inv.Target, cfg); err != nil {
			return nil, false, &ExitError{Code: ExitUsage, Message: err.Error(), Err: err}
		}
	}
	return inv, false, nil
}

// loadConfig reads the file at `path`, or the default file when `path` is empty.
// Only an explicitly requested file must exist.
func loadConfig(path string) (*config.File, error) {
	if path != "" {
		return config.Load(path)
	}
	file, err := config.Load(config.DefaultPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return file, err
}
