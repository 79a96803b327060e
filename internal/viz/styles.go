package viz

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("#444466"))

	sceneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 1)

	axesStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	photonTint = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffaa00")).Faint(true)

	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888899"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ccff")).Bold(true)
	keyHint    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688")).Italic(true)
)

// trajectoryPalette colours markers and trails, cycling for more
// trajectories than colours.
var trajectoryPalette = []lipgloss.Color{
	"#00ff88", "#00ccff", "#ff00ff", "#ffcc00", "#ff4444", "#aa88ff",
}

func trajectoryStyles(n int) []lipgloss.Style {
	styles := make([]lipgloss.Style, n)
	for i := range styles {
		styles[i] = lipgloss.NewStyle().Bold(true).Foreground(trajectoryPalette[i%len(trajectoryPalette)])
	}
	return styles
}
