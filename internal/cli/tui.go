package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/sbhuiyan/kintree/pkg/layout"
	"github.com/sbhuiyan/kintree/pkg/pipeline"
	"github.com/sbhuiyan/kintree/pkg/tree"
	"github.com/sbhuiyan/kintree/pkg/view"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listFadedStyle    = lipgloss.NewStyle().Foreground(colorDim)
	listLineageStyle  = lipgloss.NewStyle().Foreground(colorGreen)
)

// viewCommand creates the interactive tree browser.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		device  string
		lineage bool
	)

	cmd := &cobra.Command{
		Use:   "view [file]",
		Short: "Browse a family tree interactively",
		Long: `Browse a family tree in the terminal.

Navigate with the arrow keys, type / to search by name or ID, and press
enter to select a member. Selection drives the same visibility resolver
the renderer uses, so faded and hidden members mirror the exported view.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runView(cmd.Context(), args[0], device, lineage)
		},
	}

	cmd.Flags().StringVarP(&device, "device", "d", "", "device profile: desktop (default), tablet, mobile")
	cmd.Flags().BoolVar(&lineage, "lineage", false, "fade members outside the selected lineage")

	return cmd
}

func (c *CLI) runView(ctx context.Context, input, device string, lineage bool) error {
	opts := pipeline.Options{
		Input:   input,
		Device:  device,
		Formats: []string{pipeline.FormatJSON},
		Logger:  c.Logger,
		View: view.Options{
			ShowAllGenerations:   true,
			FocusLineage:         lineage,
			ShowGenerationLabels: true,
		},
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, false)
	if err != nil {
		return err
	}
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}

	model := newBrowserModel(result.Data, result.Relations, result.Layout, opts.View)
	program := tea.NewProgram(model, tea.WithContext(ctx))
	_, err = program.Run()
	return err
}

// browserModel is the bubbletea model for the interactive tree browser.
type browserModel struct {
	data      *tree.Data
	relations *tree.Relations
	layout    *layout.Result
	viewOpts  view.Options

	ids      []string // rows currently listed, placement order
	cursor   int
	offset   int
	height   int
	selected string

	searching bool
	query     string
}

func newBrowserModel(data *tree.Data, rel *tree.Relations, l *layout.Result, opts view.Options) browserModel {
	return browserModel{
		data:      data,
		relations: rel,
		layout:    l,
		viewOpts:  opts,
		ids:       l.Order,
		height:    15,
	}
}

func (m browserModel) Init() tea.Cmd {
	return nil
}

func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "/":
			m.searching = true
			m.query = ""
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.ids)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter":
			if len(m.ids) > 0 {
				m.selected = m.ids[m.cursor]
				view.Resolve(m.layout, m.relations, m.selected, m.viewOpts)
			}
		case "backspace":
			m.selected = ""
			view.Resolve(m.layout, m.relations, "", m.viewOpts)
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 10
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

// updateSearch handles keys while the search prompt is active.
func (m browserModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.searching = false
		m.query = ""
		m.ids = m.layout.Order
		m.cursor, m.offset = 0, 0
	case "enter":
		m.searching = false
	case "backspace":
		if len(m.query) > 0 {
			m.query = m.query[:len(m.query)-1]
			m.applyFilter()
		}
	default:
		if len(msg.String()) == 1 {
			m.query += msg.String()
			m.applyFilter()
		}
	}
	return m, nil
}

// applyFilter narrows the listed rows to the search matches, keeping
// unplaced members out.
func (m *browserModel) applyFilter() {
	if m.query == "" {
		m.ids = m.layout.Order
	} else {
		m.ids = nil
		for _, id := range m.data.Search(m.query) {
			if _, ok := m.layout.Nodes[id]; ok {
				m.ids = append(m.ids, id)
			}
		}
	}
	m.cursor, m.offset = 0, 0
}

func (m browserModel) View() string {
	var b strings.Builder

	title := m.data.Meta.FamilyName
	if title == "" {
		title = "Family Tree"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listFadedStyle.Render("↑/↓ navigate  ⏎ select  / search  ⌫ clear  q quit"))
	b.WriteString("\n")

	if m.searching || m.query != "" {
		b.WriteString(StyleDim.Render("search: ") + StyleValue.Render(m.query))
		if m.searching {
			b.WriteString(StyleDim.Render("▌"))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	end := m.offset + m.height
	if end > len(m.ids) {
		end = len(m.ids)
	}

	for i := m.offset; i < end; i++ {
		node := m.layout.Nodes[m.ids[i]]
		b.WriteString(m.renderRow(node, i == m.cursor))
		b.WriteString("\n")
	}
	if len(m.ids) == 0 {
		b.WriteString(listFadedStyle.Render("  no matches"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderDetail())
	b.WriteString("\n")
	b.WriteString(listFadedStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.ids))))

	return b.String()
}

// renderRow formats one member line with its visibility state.
func (m browserModel) renderRow(node *layout.PositionedNode, current bool) string {
	cursor := "  "
	if current {
		cursor = "▸ "
	}

	marker := " "
	if node.ID == m.selected {
		marker = iconSuccess
	}

	line := fmt.Sprintf("%s%s %-28s gen %d  %s",
		cursor, marker, truncate(node.Name, 28), node.Generation+1, node.Lifespan())

	switch {
	case current:
		return listSelectedStyle.Render(line)
	case !node.Visible:
		return listFadedStyle.Render(line + "  (hidden)")
	case node.DirectLineage && m.selected != "":
		return listLineageStyle.Render(line)
	case node.Opacity < 1:
		return listFadedStyle.Render(line)
	default:
		return listNormalStyle.Render(line)
	}
}

// renderDetail shows the cursored member's immediate relations.
func (m browserModel) renderDetail() string {
	if len(m.ids) == 0 {
		return ""
	}
	node := m.layout.Nodes[m.ids[m.cursor]]

	var b strings.Builder
	b.WriteString("  " + StyleValue.Render(node.Name))
	if span := node.Lifespan(); span != "" {
		b.WriteString("  " + StyleDim.Render(span))
	}
	b.WriteString("\n")

	b.WriteString(m.relationLine("Parents", m.relations.Parents[node.ID]))
	b.WriteString(m.relationLine("Spouses", m.relations.Spouses[node.ID]))
	b.WriteString(m.relationLine("Children", m.relations.Children[node.ID]))
	return b.String()
}

func (m browserModel) relationLine(label string, ids []string) string {
	if len(ids) == 0 {
		return ""
	}
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if n := m.data.Node(id); n != nil {
			names = append(names, n.Name)
		}
	}
	return "  " + StyleDim.Render(label+": ") + strings.Join(names, ", ") + "\n"
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
