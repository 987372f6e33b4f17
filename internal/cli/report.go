package cli

// This file implements the "render", "contexts" and "codes" commands, which
// show what humane makes of an error chain described in YAML.

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/term"

	"humane-errors/internal/chain"
	"humane-errors/pkg/errx"
	"humane-errors/pkg/humane"
)

// ReportManager loads chain descriptions and prints reports for them.
type ReportManager struct {
	cfg    CLIConfig
	logger *zap.Logger
}

// NewReportManager creates a ReportManager with the given dependencies.
func NewReportManager(cfg CLIConfig, logger *zap.Logger) *ReportManager {
	return &ReportManager{cfg: cfg, logger: logger}
}

// DefaultReportManager returns a ReportManager configured from the environment.
func DefaultReportManager(logger *zap.Logger) *ReportManager {
	return NewReportManager(LoadCLIConfig(), logger)
}

// isTerminal is a test seam for TTY detection.
var isTerminal = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// NewRenderCmd builds the render command.
func NewRenderCmd(logger *zap.Logger) *cobra.Command {
	return DefaultReportManager(logger).NewRenderCmd()
}

// NewContextsCmd builds the contexts command.
func NewContextsCmd(logger *zap.Logger) *cobra.Command {
	return DefaultReportManager(logger).NewContextsCmd()
}

// NewCodesCmd builds the codes command.
func NewCodesCmd(logger *zap.Logger) *cobra.Command {
	return DefaultReportManager(logger).NewCodesCmd()
}

// NewRenderCmd returns the render command using this manager.
func (m *ReportManager) NewRenderCmd() *cobra.Command {
	var file string
	var color string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the humane report for an error chain",
		Long:  "Build the error chain described in a YAML file and print its layered report",
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := m.cfg.Color
			if cmd.Flags().Changed("color") {
				parsed, err := ParseColorMode(color)
				if err != nil {
					Error("Invalid --color value")
					logStructuredError(m.logger, err, "Invalid --color value")
					return err
				}
				mode = parsed
			}
			return m.RenderReport(cmd.OutOrStdout(), file, mode)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Chain description file (YAML)")
	cmd.Flags().StringVar(&color, "color", string(ColorAuto), "Colour section headings: auto, on or off")

	return cmd
}

// NewContextsCmd returns the contexts command using this manager.
func (m *ReportManager) NewContextsCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "contexts",
		Short: "List the annotations found in an error chain",
		Long:  "Build the error chain described in a YAML file and list every annotated error in collection order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return m.ShowContexts(cmd.OutOrStdout(), file)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Chain description file (YAML)")

	return cmd
}

// NewCodesCmd returns the codes command using this manager.
func (m *ReportManager) NewCodesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "codes",
		Short: "List the registered error codes",
		RunE: func(cmd *cobra.Command, args []string) error {
			m.ShowCodes(cmd.OutOrStdout())
			return nil
		},
	}
}

// RenderReport writes the report for the chain in path to w.
func (m *ReportManager) RenderReport(w io.Writer, path string, mode ColorMode) error {
	built, err := m.loadChain(path)
	if err != nil {
		return err
	}

	report, err := humane.Render(built)
	if err != nil {
		wrappedErr := wrapWithSentinelAndContext(ErrRenderFailed, err, "failed to render report", map[string]any{"path": path})
		Error("Failed to render report")
		logStructuredError(m.logger, wrappedErr, "Failed to render report")
		return wrappedErr
	}

	if m.useColor(w, mode) {
		report = colorHeadings(report)
	}
	if _, err := io.WriteString(w, report); err != nil {
		wrappedErr := wrapWithSentinel(ErrWriteOutputFailed, err, "failed to write report")
		logStructuredError(m.logger, wrappedErr, "Failed to write report")
		return wrappedErr
	}
	return nil
}

// ShowContexts writes a table of the annotated errors in the chain at path.
func (m *ReportManager) ShowContexts(w io.Writer, path string) error {
	built, err := m.loadChain(path)
	if err != nil {
		return err
	}

	p := &Printer{Writer: w}
	contexts := humane.Collect(built)
	if len(contexts) == 0 {
		p.Info("No annotations found")
		return nil
	}

	p.Section("Annotated errors")

	rows := [][]string{{"#", "Failure mode", "Type", "Location", "Suggestions"}}
	for i, c := range contexts {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			c.FailureMode(),
			typeName(c.Err),
			c.File() + ":" + strconv.Itoa(c.Line()),
			strings.Join(c.Suggestions(), "; "),
		})
	}
	p.Table(rows)
	p.Printf("%d of %d errors in the chain are annotated\n", len(contexts), chainLength(built))
	return nil
}

// chainLength counts every error reachable from err, annotated or not.
func chainLength(err error) int {
	n := 0
	queue := []error{err}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current == nil {
			continue
		}
		n++
		switch u := current.(type) {
		case interface{ Unwrap() []error }:
			queue = append(queue, u.Unwrap()...)
		case interface{ Unwrap() error }:
			queue = append(queue, u.Unwrap())
		}
	}
	return n
}

// ShowCodes writes the errx code registry as a table.
func (m *ReportManager) ShowCodes(w io.Writer) {
	rows := [][]string{{"Code", "Description"}}
	for _, entry := range errx.ErrorRegistry() {
		rows = append(rows, []string{entry.Code, entry.Description})
	}
	p := &Printer{Writer: w}
	p.Section("Error codes")
	p.TableBoxed(rows)
}

func (m *ReportManager) loadChain(path string) (error, error) {
	if path == "" {
		err := newWithSentinel(ErrChainFileRequired, "chain file is required (--file)")
		Error("Chain file required")
		logStructuredError(m.logger, err, "Chain file required")
		return nil, err
	}

	doc, err := chain.LoadFile(path)
	if err != nil {
		wrappedErr := wrapWithSentinelAndContext(ErrLoadChainFailed, err, "failed to load chain description: "+errx.UserString(err), map[string]any{"path": path})
		Error("Failed to load chain description")
		logStructuredError(m.logger, wrappedErr, "Failed to load chain description")
		return nil, wrappedErr
	}

	built, err := chain.Build(doc.Root, chain.WithMaxDepth(m.cfg.MaxDepth))
	if err != nil {
		problems := multierr.Errors(err)
		wrappedErr := wrapWithSentinelAndContext(ErrInvalidChain, err, "chain description is invalid: "+problemList(problems), map[string]any{
			"path":     path,
			"problems": len(problems),
		})
		Error("Invalid chain description")
		logStructuredError(m.logger, wrappedErr, "Invalid chain description")
		return nil, wrappedErr
	}
	return built, nil
}

func (m *ReportManager) useColor(w io.Writer, mode ColorMode) bool {
	switch mode {
	case ColorOn:
		return true
	case ColorOff:
		return false
	default:
		return isTerminal(w)
	}
}

var headingStyle = pterm.NewStyle(pterm.FgLightRed, pterm.Bold)

// colorHeadings styles the report's section headings. Lines of the native
// representation after "Original Exception:" are left alone.
func colorHeadings(report string) string {
	lines := strings.SplitAfter(report, "\n")
	for i, line := range lines {
		heading := strings.TrimSuffix(line, "\n")
		switch heading {
		case "This was caused by:", "Suggestions:":
			lines[i] = headingStyle.Sprint(heading) + "\n"
		case "Original Exception:":
			lines[i] = headingStyle.Sprint(heading) + "\n"
			return strings.Join(lines, "")
		}
	}
	return strings.Join(lines, "")
}

func problemList(problems []error) string {
	msgs := make([]string, 0, len(problems))
	for _, p := range problems {
		msgs = append(msgs, errx.UserString(p))
	}
	return strings.Join(msgs, "; ")
}

func typeName(err error) string {
	return fmt.Sprintf("%T", err)
}
