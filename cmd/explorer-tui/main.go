// explorer-tui is a terminal explorer for tenant graph payloads. It
// drives the full interactive core: facet toggles, free-text name
// filtering, selection mode with 1-hop neighborhood toggles, and
// export of the selected subgraph as JSON on stdout.
//
// Usage:
//
//	explorer-tui tenant.json
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/tenantgraph/pkg/graph"
	"github.com/dd0wney/tenantgraph/pkg/logging"
	"github.com/dd0wney/tenantgraph/pkg/session"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#2B88D8")).
			MarginLeft(2).
			MarginTop(1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#2B88D8")).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Padding(0, 2)

	contentStyle = lipgloss.NewStyle().
			MarginLeft(2).
			MarginTop(1)

	detailBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#77C4A8")).
			Padding(1, 2)

	selectingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#D0605E")).
			Bold(true).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)
)

type view int

const (
	graphView view = iota
	filtersView
	searchView
	viewCount
)

type keyMap struct {
	Tab        key.Binding
	Enter      key.Binding
	SelectMode key.Binding
	Export     key.Binding
	Clear      key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next view"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "click node / toggle"),
	),
	SelectMode: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "selection mode"),
	),
	Export: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "export selection"),
	),
	Clear: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "clear selection"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Enter, k.SelectMode, k.Export, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Enter},
		{k.SelectMode, k.Export, k.Clear},
		{k.Quit},
	}
}

type model struct {
	sess        *session.Session
	currentView view
	nodeTable   table.Model
	filterTable table.Model
	searchInput textinput.Model
	help        help.Model
	keys        keyMap
	width       int
	height      int
	message     string
	messageErr  bool
	detail      *session.NodeDetail
	export      *session.ExportEvent
}

// payloadFetcher resolves node details locally from the loaded payload,
// standing in for the query API's detail endpoint.
type payloadFetcher struct {
	payload *graph.Payload
}

func (f *payloadFetcher) FetchNodeDetail(_ context.Context, id string) (*session.NodeDetail, error) {
	var found *graph.Node
	for i := range f.payload.Nodes {
		if f.payload.Nodes[i].ID == id {
			found = &f.payload.Nodes[i]
			break
		}
	}
	if found == nil {
		return nil, graph.NewError("FetchNodeDetail").Node(id).Cause(graph.ErrNodeNotFound)
	}

	byID := make(map[string]graph.Node, len(f.payload.Nodes))
	for _, n := range f.payload.Nodes {
		byID[n.ID] = n
	}

	detail := &session.NodeDetail{Node: *found}
	for _, e := range f.payload.Edges {
		switch id {
		case e.Source:
			if n, ok := byID[e.Target]; ok {
				detail.Neighbors = append(detail.Neighbors, session.NeighborRef{
					Node: n, EdgeType: e.Type, Direction: "out",
				})
			}
		case e.Target:
			if n, ok := byID[e.Source]; ok {
				detail.Neighbors = append(detail.Neighbors, session.NeighborRef{
					Node: n, EdgeType: e.Type, Direction: "in",
				})
			}
		}
	}
	return detail, nil
}

func initialModel(sess *session.Session) model {
	ti := textinput.New()
	ti.Placeholder = "name filter (substring, case-insensitive)"
	ti.CharLimit = 100
	ti.Width = 50

	nodeColumns := []table.Column{
		{Title: "ID", Width: 20},
		{Title: "Label", Width: 28},
		{Title: "Type", Width: 22},
		{Title: "Sel", Width: 4},
	}
	nt := table.New(
		table.WithColumns(nodeColumns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	filterColumns := []table.Column{
		{Title: "Kind", Width: 6},
		{Title: "Type", Width: 28},
		{Title: "Count", Width: 7},
		{Title: "Visible", Width: 8},
	}
	ft := table.New(
		table.WithColumns(filterColumns),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#2B88D8")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#2B88D8")).
		Bold(false)
	nt.SetStyles(s)
	ft.SetStyles(s)

	m := model{
		sess:        sess,
		currentView: graphView,
		nodeTable:   nt,
		filterTable: ft,
		searchInput: ti,
		help:        help.New(),
		keys:        keys,
	}
	m.refreshTables()
	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		// The search input swallows plain keystrokes while focused
		if m.currentView == searchView && m.searchInput.Focused() {
			switch msg.String() {
			case "enter":
				m.sess.SetNameFilter(m.searchInput.Value())
				m.message = fmt.Sprintf("name filter: %q", m.searchInput.Value())
				m.messageErr = false
				m.refreshTables()
				return m, nil
			case "tab":
				m.nextView()
				return m, nil
			case "ctrl+c":
				return m, tea.Quit
			}
			m.searchInput, cmd = m.searchInput.Update(msg)
			return m, cmd
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Tab):
			m.nextView()

		case key.Matches(msg, m.keys.SelectMode):
			if m.sess.Mode() == session.ModeSelecting {
				m.sess.SetMode(session.ModeNormal)
				m.message = "normal mode"
			} else {
				m.sess.SetMode(session.ModeSelecting)
				m.message = "selection mode: enter toggles a node's neighborhood"
			}
			m.messageErr = false
			m.refreshTables()

		case key.Matches(msg, m.keys.Export):
			m.doExport()

		case key.Matches(msg, m.keys.Clear):
			m.sess.ClearSelection()
			m.message = "selection cleared"
			m.messageErr = false
			m.refreshTables()

		case key.Matches(msg, m.keys.Enter):
			switch m.currentView {
			case graphView:
				m.clickSelectedNode()
			case filtersView:
				m.toggleSelectedFilter()
			}
		}
	}

	switch m.currentView {
	case graphView:
		m.nodeTable, cmd = m.nodeTable.Update(msg)
		cmds = append(cmds, cmd)
	case filtersView:
		m.filterTable, cmd = m.filterTable.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *model) nextView() {
	m.currentView = (m.currentView + 1) % viewCount
	if m.currentView == searchView {
		m.searchInput.Focus()
	} else {
		m.searchInput.Blur()
	}
}

func (m *model) clickSelectedNode() {
	row := m.nodeTable.SelectedRow()
	if row == nil {
		return
	}
	nodeID := row[0]

	res, err := m.sess.HandleNodeClick(context.Background(), nodeID)
	if err != nil {
		m.message = fmt.Sprintf("click failed: %v", err)
		m.messageErr = true
		return
	}

	if res.Detail != nil {
		m.detail = res.Detail
		m.message = fmt.Sprintf("detail: %s", nodeID)
	} else {
		m.message = fmt.Sprintf("selection: %d nodes", res.Size)
	}
	m.messageErr = false
	m.refreshTables()
}

func (m *model) toggleSelectedFilter() {
	row := m.filterTable.SelectedRow()
	if row == nil {
		return
	}
	kind, typeName := row[0], row[1]
	if kind == "node" {
		m.sess.ToggleNodeType(typeName)
	} else {
		m.sess.ToggleEdgeType(typeName)
	}
	m.message = fmt.Sprintf("toggled %s type %q", kind, typeName)
	m.messageErr = false
	m.refreshTables()
}

func (m *model) doExport() {
	event, err := m.sess.Export()
	if err != nil {
		m.message = fmt.Sprintf("export failed: %v", err)
		m.messageErr = true
		return
	}
	m.export = event
	m.message = fmt.Sprintf("exported %d nodes (event %s)", len(event.NodeIDs), event.EventID)
	m.messageErr = false
	m.refreshTables()
}

func (m *model) refreshTables() {
	vm := m.sess.ViewModel()
	sel := m.sess.Selection()

	nodeRows := make([]table.Row, 0, len(vm.Nodes))
	for _, n := range vm.Nodes {
		mark := ""
		if sel.Has(n.ID) {
			mark = "✓"
		}
		nodeRows = append(nodeRows, table.Row{n.ID, n.Label, n.Type, mark})
	}
	m.nodeTable.SetRows(nodeRows)

	filters := m.sess.Filters()
	filterRows := make([]table.Row, 0, len(filters.VisibleNodeTypes)+len(filters.VisibleEdgeTypes))
	for _, t := range sortedKeys(filters.VisibleNodeTypes) {
		filterRows = append(filterRows, table.Row{
			"node", t, "", visibleMark(filters.VisibleNodeTypes[t]),
		})
	}
	for _, t := range sortedKeys(filters.VisibleEdgeTypes) {
		filterRows = append(filterRows, table.Row{
			"edge", t, "", visibleMark(filters.VisibleEdgeTypes[t]),
		})
	}
	m.filterTable.SetRows(filterRows)
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func visibleMark(visible bool) string {
	if visible {
		return "yes"
	}
	return "no"
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Tenant Graph Explorer"))
	b.WriteString("\n")

	tabs := []string{"Graph", "Filters", "Search"}
	var rendered []string
	for i, tab := range tabs {
		if view(i) == m.currentView {
			rendered = append(rendered, activeTabStyle.Render(tab))
		} else {
			rendered = append(rendered, inactiveTabStyle.Render(tab))
		}
	}
	b.WriteString(contentStyle.Render(strings.Join(rendered, " ")))
	if m.sess.Mode() == session.ModeSelecting {
		b.WriteString("  " + selectingStyle.Render("SELECTING"))
	}
	b.WriteString("\n")

	switch m.currentView {
	case graphView:
		vm := m.sess.ViewModel()
		summary := fmt.Sprintf("%d nodes, %d edges visible · %d selected",
			len(vm.Nodes), len(vm.Edges), m.sess.Selection().Len())
		b.WriteString(contentStyle.Render(summary))
		b.WriteString("\n")
		b.WriteString(contentStyle.Render(m.nodeTable.View()))
		if m.detail != nil {
			b.WriteString("\n")
			b.WriteString(contentStyle.Render(detailBoxStyle.Render(renderDetail(m.detail))))
		}
	case filtersView:
		b.WriteString(contentStyle.Render("enter toggles visibility for the highlighted type"))
		b.WriteString("\n")
		b.WriteString(contentStyle.Render(m.filterTable.View()))
	case searchView:
		b.WriteString(contentStyle.Render(m.searchInput.View()))
	}

	if m.message != "" {
		b.WriteString("\n")
		if m.messageErr {
			b.WriteString(contentStyle.Render(errorStyle.Render(m.message)))
		} else {
			b.WriteString(contentStyle.Render(successStyle.Render(m.message)))
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func renderDetail(d *session.NodeDetail) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n", d.Node.Label, d.Node.Type)
	for _, k := range sortedPropKeys(d.Node.Properties) {
		fmt.Fprintf(&b, "  %s: %v\n", k, d.Node.Properties[k])
	}
	if len(d.Neighbors) > 0 {
		b.WriteString("neighbors:\n")
		for _, n := range d.Neighbors {
			arrow := "→"
			if n.Direction == "in" {
				arrow = "←"
			}
			fmt.Fprintf(&b, "  %s %s [%s] %s\n", arrow, n.Node.Label, n.EdgeType, n.Node.Type)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func sortedPropKeys(props map[string]any) []string {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: explorer-tui <payload.json>")
		os.Exit(1)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatalf("Failed to read payload: %v", err)
	}

	payload, err := graph.DecodePayload(data)
	if err != nil {
		log.Fatalf("Failed to decode payload: %v", err)
	}

	sess := session.New(
		session.WithDetailFetcher(&payloadFetcher{payload: payload}),
		session.WithLogger(logging.NewNopLogger()),
	)
	if err := sess.LoadPayload(payload); err != nil {
		log.Fatalf("Failed to load payload: %v", err)
	}

	m := initialModel(sess)
	finalModel, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		log.Fatalf("Explorer failed: %v", err)
	}

	// An export performed during the session lands on stdout once the
	// terminal is restored, ready to pipe into downstream tooling.
	if fm, ok := finalModel.(model); ok && fm.export != nil {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(fm.export); err != nil {
			log.Fatalf("Failed to encode export: %v", err)
		}
	}
}
