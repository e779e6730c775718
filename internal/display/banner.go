package display

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/backmassage/scanseries/internal/term"
)

const banner = `                                       _
 ___  ___ __ _ _ __  ___  ___ _ __ (_) ___  ___
/ __|/ __/ _` + "`" + ` | '_ \/ __|/ _ \ '__|| |/ _ \/ __|
\__ \ (_| (_| | | | \__ \  __/ |   | |  __/\__ \
|___/\___\__,_|_| |_|___/\___|_|   |_|\___||___/`

var bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))

// PrintBanner writes the ASCII art banner to w, styled when colors are on.
func PrintBanner(w io.Writer) {
	out := banner
	if term.Enabled() {
		out = bannerStyle.Render(banner)
	}
	fmt.Fprintln(w, out)
	fmt.Fprintln(w)
}
