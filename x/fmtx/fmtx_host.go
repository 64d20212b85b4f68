//go:build !rp2040

package fmtx

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// DefaultOutput is used by Print/Printf. Host builds default to stdout;
// MCU builds start with a discard writer until the bootstrap installs a
// UART.
var DefaultOutput io.Writer = os.Stdout

func Sprintf(format string, a ...any) string                    { return fmt.Sprintf(format, a...) }
func Fprintf(w io.Writer, format string, a ...any) (int, error) { return fmt.Fprintf(w, format, a...) }
func Errorf(format string, a ...any) error                      { return fmt.Errorf(format, a...) }

func Printf(format string, a ...any) (int, error) {
	return fmt.Fprintf(DefaultOutput, format, a...)
}

// Sprint joins all operands with single spaces, unlike fmt.Sprint which
// only separates non-string neighbours. Both build variants agree on this.
func Sprint(a ...any) string {
	parts := make([]string, len(a))
	for i, v := range a {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, " ")
}

func Fprint(w io.Writer, a ...any) (int, error) {
	return io.WriteString(w, Sprint(a...))
}

func Print(a ...any) (int, error) { return Fprint(DefaultOutput, a...) }
