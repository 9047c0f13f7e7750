package cli

import (
	"fmt"
	"io"
)

// printf prints a line to w.
func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, format+"\n", a...)
}

// infof prints an informational line to w.
func infof(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, "Info: "+format+"\n", a...)
}
