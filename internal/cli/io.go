package cli

import (
	"fmt"
	"io"
)

// IO handles command output and collects non-fatal warnings.
//
// Batch commands swallow per-item failures by contract; Warn is how they
// still flag those items to the user. Any warning turns the exit code to 1
// without suppressing normal output, so partial results stay usable.
type IO struct {
	in       io.Reader
	out      io.Writer
	errOut   io.Writer
	warnings []string
}

// NewIO creates a new IO instance.
func NewIO(in io.Reader, out, errOut io.Writer) *IO {
	return &IO{in: in, out: out, errOut: errOut}
}

// In returns the command's input stream.
func (o *IO) In() io.Reader {
	return o.in
}

// Out returns the raw output stream, for commands that write a protocol
// rather than lines.
func (o *IO) Out() io.Writer {
	return o.out
}

// Warn records a non-fatal issue. Warnings print to stderr at the end of
// the command and force exit code 1.
func (o *IO) Warn(format string, a ...any) {
	o.warnings = append(o.warnings, fmt.Sprintf(format, a...))
}

// Println writes to stdout.
func (o *IO) Println(a ...any) {
	_, _ = fmt.Fprintln(o.out, a...)
}

// Printf writes formatted output to stdout.
func (o *IO) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(o.out, format, a...)
}

// ErrPrintln writes to stderr.
func (o *IO) ErrPrintln(a ...any) {
	_, _ = fmt.Fprintln(o.errOut, a...)
}

// Finish prints collected warnings to stderr and returns the exit code:
// 1 if any warnings, 0 otherwise.
func (o *IO) Finish() int {
	for _, w := range o.warnings {
		_, _ = fmt.Fprintln(o.errOut, "warning:", w)
	}

	if len(o.warnings) > 0 {
		return 1
	}

	return 0
}
