package diagfmt

import (
	"fmt"
	"io"

	"pinecheck/internal/diag"
	"pinecheck/internal/source"
)

// Short prints one line per diagnostic:
//
//	path:line:col: severity: message [CODE]
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, mode PathMode) {
	for _, d := range bag.Items() {
		start, _ := fs.Resolve(d.Primary)
		fmt.Fprintf(w, "%s:%d:%d: %s: %s [%s]\n",
			formatPath(fs.Get(d.Primary.File), fs, mode),
			start.Line, start.Col, d.Severity.Label(), d.Message, d.Code.ID())
	}
}
