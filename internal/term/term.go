// Package term is the terminal frontend, built on bubbletea and lipgloss.
package term

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kyleparisi/ai-playground/tower/internal/game"
	"github.com/kyleparisi/ai-playground/tower/internal/grid"
	"github.com/kyleparisi/ai-playground/tower/internal/tetromino"
)

// frameInterval is the render cadence, 25 frames per second.
const frameInterval = 40 * time.Millisecond

const (
	filledCell = "[]"
	emptyCell  = " ."
)

var (
	cellStyles = map[tetromino.Color]lipgloss.Style{
		tetromino.ColorOrange: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8C00")),
		tetromino.ColorBlue:   lipgloss.NewStyle().Foreground(lipgloss.Color("#0050DC")),
		tetromino.ColorRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("#DC0000")),
		tetromino.ColorGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("#00C800")),
		tetromino.ColorYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFF00")),
		tetromino.ColorCyan:   lipgloss.NewStyle().Foreground(lipgloss.Color("#00FFFF")),
	}
	emptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#3C3C50"))
	boardStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#50506E"))
	panelStyle = lipgloss.NewStyle().PaddingLeft(2)
	titleStyle = lipgloss.NewStyle().Bold(true)
	overStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF5555"))
)

type frameMsg time.Time

func nextFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// Model is the bubbletea model. It never touches game state directly: keys
// become loop commands and every frame pulls a fresh snapshot.
type Model struct {
	loop *game.Loop
	snap game.Snapshot
}

func New(loop *game.Loop) Model {
	return Model{loop: loop, snap: loop.Snapshot()}
}

func (m Model) Init() tea.Cmd {
	return nextFrame()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if isQuit(msg) {
			return m, tea.Quit
		}
		if cmd := commandFor(msg); cmd != game.CommandNone {
			m.loop.Submit(cmd)
		}
	case frameMsg:
		m.snap = m.loop.Frame()
		return m, nextFrame()
	}
	return m, nil
}

func (m Model) View() string {
	return Render(m.snap)
}

func isQuit(k tea.KeyMsg) bool {
	switch k.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return true
	case tea.KeyRunes:
		return string(k.Runes) == "q"
	}
	return false
}

func commandFor(k tea.KeyMsg) game.Command {
	switch k.Type {
	case tea.KeyLeft:
		return game.CommandLeft
	case tea.KeyRight:
		return game.CommandRight
	case tea.KeyUp:
		return game.CommandRotate
	case tea.KeyDown:
		return game.CommandSoftDrop
	case tea.KeySpace:
		return game.CommandHardDrop
	case tea.KeyRunes:
		switch string(k.Runes) {
		case "h", "a":
			return game.CommandLeft
		case "l", "d":
			return game.CommandRight
		case "k", "w", "x":
			return game.CommandRotate
		case "j", "s":
			return game.CommandSoftDrop
		case " ":
			return game.CommandHardDrop
		}
	}
	return game.CommandNone
}

// Render draws a snapshot as text: the board on the left, next piece and
// counters on the right.
func Render(snap game.Snapshot) string {
	var b strings.Builder
	for y := 0; y < grid.Rows; y++ {
		for x := 0; x < grid.Cols; x++ {
			b.WriteString(renderCell(snap.CellAt(x, y)))
		}
		if y < grid.Rows-1 {
			b.WriteByte('\n')
		}
	}
	board := boardStyle.Render(b.String())

	panel := panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Next"),
		renderNext(snap),
		"",
		fmt.Sprintf("Score: %d", snap.Score),
		fmt.Sprintf("Lines: %d", snap.Lines),
		fmt.Sprintf("Level: %d", snap.Level),
		fmt.Sprintf("Speed: %dms", snap.FallPeriod.Milliseconds()),
		"",
		"←/→ h/l  move",
		"↑ k      rotate",
		"↓ j      soft drop",
		"space    hard drop",
		"q        quit",
	))

	view := lipgloss.JoinHorizontal(lipgloss.Top, board, panel)
	if snap.GameOver {
		view = lipgloss.JoinVertical(lipgloss.Left, view,
			overStyle.Render("GAME OVER"),
			fmt.Sprintf("Total Score: %d", snap.Score))
	}
	return view
}

func renderCell(c game.Cell) string {
	if !c.Filled {
		return emptyStyle.Render(emptyCell)
	}
	return cellStyles[c.Color].Render(filledCell)
}

func renderNext(snap game.Snapshot) string {
	var preview [4][4]bool
	for _, o := range snap.Next {
		if o.X >= 0 && o.X < 4 && o.Y >= 0 && o.Y < 4 {
			preview[o.Y][o.X] = true
		}
	}
	style := cellStyles[snap.NextColor]
	var b strings.Builder
	for y, row := range preview {
		for _, on := range row {
			if on {
				b.WriteString(style.Render(filledCell))
			} else {
				b.WriteString("  ")
			}
		}
		if y < len(preview)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Run takes over the terminal until the player quits.
func Run(loop *game.Loop) error {
	_, err := tea.NewProgram(New(loop), tea.WithAltScreen()).Run()
	return err
}
