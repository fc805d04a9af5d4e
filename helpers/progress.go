package helpers

import (
	"fmt"
	"io"

	"github.com/cheggaaa/pb/v3"
)

// NewFileBar starts a byte progress bar for a single download. total may be
// unknown (<= 0), in which case only the transferred size and speed are shown.
func NewFileBar(out io.Writer, name string, total int64, style string) *pb.ProgressBar {
	if style == "" {
		style = "█"
	}
	tmpl := fmt.Sprintf(`{{string . "name"}} {{bar . "|" %q %q " " "|"}} {{counters . }} {{speed . }}`, style, style)
	if total <= 0 {
		total = 0
		tmpl = `{{string . "name"}} {{counters . }} {{speed . }}`
	}

	bar := pb.New64(total)
	bar.SetTemplateString(tmpl)
	bar.SetWriter(out)
	bar.Set(pb.Bytes, true)
	bar.Set("name", name)
	return bar.Start()
}
