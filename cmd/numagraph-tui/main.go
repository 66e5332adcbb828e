// Command numagraph-tui is a bubbletea live viewer over a running
// algorithm, adapted from the teacher's cmd/tui dashboard: the same
// tabbed keyMap/model/tickMsg structure, rereading this project's own
// lipgloss styles rather than the original's neon palette, and
// observing a background benchmark loop instead of a query executor.
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/dd0wney/numagraph/examples/bc"
	"github.com/dd0wney/numagraph/examples/bellmanford"
	"github.com/dd0wney/numagraph/examples/bfs"
	"github.com/dd0wney/numagraph/examples/components"
	"github.com/dd0wney/numagraph/examples/pagerank"
	"github.com/dd0wney/numagraph/internal/graph"
	"github.com/dd0wney/numagraph/internal/graphio"
	"github.com/dd0wney/numagraph/internal/metrics"
	"github.com/dd0wney/numagraph/internal/numa"
	"github.com/dd0wney/numagraph/internal/partition"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00AFFF")).
			MarginLeft(2).
			MarginTop(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FFFF")).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#0057B8")).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Padding(0, 2)

	contentStyle = lipgloss.NewStyle().
			MarginLeft(2).
			MarginTop(1)

	statsBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(1, 2).
			MarginRight(2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)
)

type view int

const (
	dashboardView view = iota
	modesView
	partitionsView
)

var viewNames = []string{"Dashboard", "Modes", "Partitions"}

type keyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next view")),
	ShiftTab: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev view")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k keyMap) ShortHelp() []key.Binding { return []key.Binding{k.Tab, k.Quit} }

// runState is the mutex-guarded view of the background benchmark loop's
// progress; the dashboard render takes one snapshot of it rather than
// locking across the whole View() render.
type runState struct {
	mu       sync.Mutex
	rounds   int
	lastStep time.Duration
	lastErr  error
}

func (s *runState) snapshot() (rounds int, lastStep time.Duration, lastErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rounds, s.lastStep, s.lastErr
}

func (s *runState) recordRound(d time.Duration, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rounds++
	s.lastStep = d
	s.lastErr = err
}

type model struct {
	algo        string
	pg          *partition.PartitionedGraph
	reg         *metrics.Registry
	state       *runState
	currentView view
	help        help.Model
	keys        keyMap
	width       int
	startTime   time.Time
}

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Init() tea.Cmd { return tickCmd() }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
	case tickMsg:
		return m, tickCmd()
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.currentView = (m.currentView + 1) % view(len(viewNames))
		case key.Matches(msg, m.keys.ShiftTab):
			m.currentView = (m.currentView - 1 + view(len(viewNames))) % view(len(viewNames))
		}
	}
	return m, nil
}

func (m model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}
	var s strings.Builder
	s.WriteString(titleStyle.Render("numagraph live run: " + m.algo))
	s.WriteString("\n\n")
	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	switch m.currentView {
	case dashboardView:
		s.WriteString(m.renderDashboard())
	case modesView:
		s.WriteString(m.renderModes())
	case partitionsView:
		s.WriteString(m.renderPartitions())
	}

	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())))
	return s.String()
}

func (m model) renderTabs() string {
	var tabs []string
	for i, name := range viewNames {
		if view(i) == m.currentView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m model) renderDashboard() string {
	rounds, lastStep, lastErr := m.state.snapshot()
	uptime := time.Since(m.startTime).Round(time.Second)

	status := "running"
	if lastErr != nil {
		status = "error: " + lastErr.Error()
	}

	content := fmt.Sprintf(
		"Algorithm:    %s\nVertices:     %d\nEdges:        %d\nPartitions:   %d\nNUMA nodes:   %d\n\nRounds run:   %d\nLast round:   %s\nUptime:       %s\nStatus:       %s",
		m.algo, int(m.pg.Whole.N), m.pg.Whole.M, m.pg.Partitions.NumPartitions, numaNodeCount(m.pg),
		rounds, lastStep, uptime, status,
	)
	return contentStyle.Render(statsBoxStyle.Render(content))
}

func numaNodeCount(pg *partition.PartitionedGraph) int {
	max := 0
	for _, n := range pg.Partitions.NumaOf {
		if int(n) > max {
			max = int(n)
		}
	}
	return max + 1
}

// renderModes reads edge_map's mode counters straight off the
// registry's Prometheus collectors via testutil.ToFloat64 rather than
// mirroring the counts into a second, TUI-owned variable: the registry
// is already the single point every examples/* algorithm writes to
// through engine.EdgeMap (DESIGN.md's "internal/metrics ↔
// internal/engine wiring").
func (m model) renderModes() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("edge_map mode selection"))
	s.WriteString("\n\n")

	for _, mode := range []string{"sparse_push", "dense_coo", "dense_csc"} {
		count := testutil.ToFloat64(m.reg.EdgeMapModeTotal.WithLabelValues(mode))
		bar := strings.Repeat("#", int(count))
		s.WriteString(fmt.Sprintf("%-12s %6.0f %s\n", mode, count, bar))
	}
	s.WriteString("\n")
	s.WriteString(fmt.Sprintf("frontier size (last round): %.0f\n", testutil.ToFloat64(m.reg.FrontierSize)))
	return contentStyle.Render(s.String())
}

func (m model) renderPartitions() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("per-partition load"))
	s.WriteString("\n\n")

	n := m.pg.Partitions.NumPartitions
	shown := n
	if shown > 16 {
		shown = 16
	}
	for p := 0; p < shown; p++ {
		label := strconv.Itoa(p)
		verts := testutil.ToFloat64(m.reg.PartitionVertices.WithLabelValues(label))
		edges := testutil.ToFloat64(m.reg.PartitionEdges.WithLabelValues(label))
		s.WriteString(fmt.Sprintf("p%-4s verts=%-8.0f edges=%-8.0f %s\n", label, verts, edges, strings.Repeat("=", int(edges/50))))
	}
	if n > shown {
		s.WriteString(fmt.Sprintf("\n... and %d more partitions\n", n-shown))
	}
	return contentStyle.Render(s.String())
}

// runLoop repeatedly executes the selected algorithm until stopped,
// recording each round's wall time into state — the same benchmark
// shape cmd/numagraph-run uses for its -rounds repetitions, just
// unbounded and observed live instead of averaged at exit.
func runLoop(algo string, pg *partition.PartitionedGraph, start graph.VId, reg *metrics.Registry, state *runState, stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		default:
		}
		t0 := time.Now()
		err := runOnce(algo, pg, start, reg)
		state.recordRound(time.Since(t0), err)
		if err != nil {
			return
		}
	}
}

func runOnce(algo string, pg *partition.PartitionedGraph, start graph.VId, reg *metrics.Registry) error {
	switch algo {
	case "bfs":
		bfs.Run(pg, start, reg)
	case "pagerank":
		pagerank.Run(pg, reg)
	case "bellmanford":
		bellmanford.Run(pg, start, reg)
	case "components":
		components.Run(pg, reg)
	case "bc":
		_, err := bc.Run(pg, reg)
		return err
	default:
		return fmt.Errorf("unknown algorithm %q", algo)
	}
	return nil
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <graph-file> [algo]\n", os.Args[0])
		os.Exit(2)
	}
	path := os.Args[1]
	algo := "bfs"
	if len(os.Args) > 2 {
		algo = os.Args[2]
	}

	g, err := graphio.ReadAdjacencyText(path)
	if err != nil {
		log.Fatalf("failed to read graph: %v", err)
	}
	if g.InEdges == nil {
		graphio.BuildInEdges(g)
	}

	numParts := 384
	numNodes := 1
	alloc := numa.NewDefaultAllocator(numNodes)
	pg, err := partition.Build(g, numParts, numNodes, partition.ByDestination, partition.EdgeSortCSR, alloc)
	if err != nil {
		log.Fatalf("failed to partition graph: %v", err)
	}

	reg := metrics.NewRegistry()
	verts := make([]int, numParts)
	edges := make([]int, numParts)
	for p := 0; p < numParts; p++ {
		lo, hi := pg.Partitions.Range(p)
		verts[p] = int(hi - lo)
		edges[p] = pg.Csc[p].NumEdges()
	}
	reg.SetPartitionLoad(verts, edges)

	state := &runState{}
	stop := make(chan struct{})
	go runLoop(algo, pg, 0, reg, state, stop)
	defer close(stop)

	m := model{
		algo:      algo,
		pg:        pg,
		reg:       reg,
		state:     state,
		help:      help.New(),
		keys:      keys,
		startTime: time.Now(),
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("tui exited with error: %v", err)
	}
}
