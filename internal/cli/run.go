package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/benoitkugler/pixscene/internal/config"
	"github.com/benoitkugler/pixscene/scene"
	"github.com/benoitkugler/pixscene/scenepdf"
	"github.com/benoitkugler/pixscene/sceneraster"
	"github.com/benoitkugler/pixscene/sceneterm"
)

// viewDocument shows a document on the terminal.
// Tests replace it, since they have no terminal.
var viewDocument = sceneterm.View

// driverFor returns the driver writing the format of `target`.
func driverFor(target string, cfg config.Config) (scene.Driver, error) {
	if strings.EqualFold(filepath.Ext(target), ".pdf") {
		return scenepdf.Driver{Options: scenepdf.Options{CellSize: float64(cfg.Scale)}}, nil
	}
	if _, err := sceneraster.FormatOf(target); err != nil {
		return nil, err
	}
	return sceneraster.Driver{Options: sceneraster.Options{Scale: cfg.Scale, Grid: cfg.Grid}}, nil
}

// exitError wraps `err` with the exit code matching its kind.
func exitError(err error) *ExitError {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	code := ExitFailure
	if kind, ok := scene.KindOf(err); ok {
		switch kind {
		case scene.KindInput:
			code = ExitInput
		case scene.KindSyntax, scene.KindNumber, scene.KindColor:
			code = ExitInvalid
		case scene.KindDrawing:
			code = ExitDrawing
		}
	}
	return &ExitError{Code: code, Message: err.Error(), Err: err}
}

// Run executes the invocation. Results go to `stdout`, logs to `stderr`.
// The returned error, if any, is an *ExitError.
func Run(inv *Invocation, stdout, stderr io.Writer) error {
	logger := newLogger(inv.Config, stderr)
	scene.SetLogger(logger)
	defer scene.SetLogger(nil)

	logger.Debug("Configuration resolved.", "command", inv.Command, "config", fmt.Sprintf("%+v", inv.Config))

	doc, err := scene.ReadDocument(inv.Source)
	if err != nil {
		return exitError(err)
	}

	switch inv.Command {
	case CommandCheck:
		fmt.Fprintf(stdout, "%dx%d, %d commands\n", doc.Width, doc.Height, len(doc.Commands))
	case CommandRender:
		driver, err := driverFor(inv.Target, inv.Config)
		if err != nil {
			return &ExitError{Code: ExitUsage, Message: err.Error(), Err: err}
		}
		if _, isPDF := driver.(scenepdf.Driver); isPDF && inv.Config.Grid {
			logger.Warn("The grid option only applies to raster images, ignoring it.", "target", inv.Target)
		}
		if err = doc.Save(driver, inv.Target); err != nil {
			return exitError(err)
		}
		logger.Info("Scene rendered.", "source", inv.Source, "target", inv.Target,
			"width", doc.Width, "height", doc.Height, "commands", len(doc.Commands))
	case CommandView:
		if err = viewDocument(doc, filepath.Base(inv.Source)); err != nil {
			return exitError(err)
		}
	default:
		return usageError("unknown command %q", inv.Command)
	}
	return nil
}
