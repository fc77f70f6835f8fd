package tui

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Iron-Ham/clap/internal/animation/termfx"
	"github.com/Iron-Ham/clap/internal/clap"
	"github.com/Iron-Ham/clap/internal/target"
	"github.com/Iron-Ham/clap/internal/tui/styles"
	"github.com/charmbracelet/lipgloss"
)

// Layout constants
const (
	// rowHeight converts timeline offsets into terminal rows.
	rowHeight = 10.0
	// counterRows is the height reserved above the button for the rising
	// count bubble.
	counterRows = 9
	// burstWidth is the width of the particle row, in cells.
	burstWidth = 21
	// burstScale converts particle X offsets into cells.
	burstScale = 10.0
)

// Icon glyphs.
const (
	iconIdle    = "✧ clap"
	iconClicked = "✦ clap"
)

// Icon renders the button sub-element. The glyph switches to its checked
// variant once the widget has been clicked, and the border widens while the
// button is scaled up.
func (w *Widget) Icon() string {
	s := w.machine.State()
	base := w.styles.Button
	glyph := iconIdle
	if s.IsClicked {
		base = w.styles.ButtonClicked
		glyph = iconClicked
	}
	style := w.overrides.Apply(target.RoleButton, base)

	if grow := int(math.Round((w.elements[target.RoleButton].Scale() - 1) * 10)); grow > 0 {
		style = style.PaddingLeft(1 + grow).PaddingRight(1 + grow)
	}
	return style.Render(glyph)
}

// Count renders the counter sub-element: a "+N" bubble that fades in,
// rises and fades out while the timeline plays. It always occupies the
// same number of rows so the layout does not jump.
func (w *Widget) Count() string {
	rows := make([]string, counterRows)
	v := w.elements[target.RoleCounter].Visual()
	if v.Visible() {
		count, _ := w.CounterProps(nil).Int(clap.PropCount)
		style := w.fade(target.RoleCounter, w.styles.Counter, v)
		lift := min(max(v.Lift(rowHeight), 0), counterRows-1)
		rows[counterRows-1-lift] = style.Render(fmt.Sprintf("+%d", count))
	}
	return lipgloss.JoinVertical(lipgloss.Center, rows...)
}

// Total renders the total sub-element. It fades back in once the count
// bubble has risen.
func (w *Widget) Total() string {
	v := w.elements[target.RoleTotal].Visual()
	if !v.Visible() {
		return " "
	}
	style := w.fade(target.RoleTotal, w.styles.Total, v)
	return style.Render(fmt.Sprintf("%d", w.machine.State().CountTotal))
}

// Burst renders the particles of a running timeline as a single row
// centered on the button.
func (w *Widget) Burst() string {
	cells := make([]string, burstWidth)
	for i := range cells {
		cells[i] = " "
	}

	src, ok := w.coord.Timeline().(interface{ Particles() []termfx.Particle })
	if ok {
		particles := src.Particles()
		sort.SliceStable(particles, func(i, j int) bool { return particles[i].Size < particles[j].Size })
		center := burstWidth / 2
		for _, p := range particles {
			col := center + int(math.Round(p.X/burstScale))
			if col < 0 || col >= burstWidth {
				continue
			}
			cells[col] = lipgloss.NewStyle().Foreground(lipgloss.Color(p.Color)).Render(string(p.Glyph))
		}
	}
	return strings.Join(cells, "")
}

// View composes the sub-elements inside the widget's root.
func (w *Widget) View() string {
	return lipgloss.JoinVertical(lipgloss.Center,
		w.Count(),
		w.Burst(),
		w.Icon(),
		w.Total(),
	)
}

// fade applies role overrides to base and blends its foreground toward the
// surface color by the element's opacity.
func (w *Widget) fade(role target.Role, base lipgloss.Style, v termfx.Visual) lipgloss.Style {
	style := w.overrides.Apply(role, base)
	fg := styles.Hex(style, w.styles.Palette.Text)
	return style.Foreground(lipgloss.Color(v.Color(fg, string(w.styles.Palette.Surface))))
}
