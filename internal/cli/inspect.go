package cli

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/archmap-dev/archmap/pkg/component"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// inspectCommand creates the inspect command for browsing clusters.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [components.json]",
		Short: "Browse feature clusters and tiers interactively",
		Long: `Browse feature clusters and tiers interactively.

The inspect command opens a terminal browser over a components file: the
top level lists feature clusters with their component counts, and selecting
a cluster shows its components grouped by tier, with connection strength
and header markers.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			comps, err := component.ReadFile(args[0])
			if err != nil {
				return err
			}
			clusters := component.GroupByFeature(comps)
			if len(clusters) == 0 {
				printInfo("No components in %s", args[0])
				return nil
			}

			model := newInspectModel(clusters)
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}
}

// =============================================================================
// inspectModel - Interactive cluster browser
// =============================================================================

// inspectModel is the bubbletea model for the cluster browser. It has two
// levels: the cluster list, and the tiered component view of one cluster.
type inspectModel struct {
	clusters []*component.Cluster
	cursor   int
	open     int // index of the opened cluster, -1 at the top level
	height   int
	offset   int
}

func newInspectModel(clusters []*component.Cluster) inspectModel {
	return inspectModel{
		clusters: clusters,
		open:     -1,
		height:   15,
	}
}

func (m inspectModel) Init() tea.Cmd {
	return nil
}

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.open >= 0 {
				m.open = -1
				return m, nil
			}
			return m, tea.Quit
		case "up", "k":
			if m.open < 0 && m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.open < 0 && m.cursor < len(m.clusters)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter":
			if m.open < 0 {
				m.open = m.cursor
			}
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 6
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m inspectModel) View() string {
	if m.open >= 0 {
		return m.clusterView(m.clusters[m.open])
	}
	return m.listView()
}

// listView renders the top-level cluster list.
func (m inspectModel) listView() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("Feature clusters") + "\n\n")

	end := min(m.offset+m.height, len(m.clusters))
	for i := m.offset; i < end; i++ {
		cl := m.clusters[i]
		line := fmt.Sprintf("%s  %s", cl.Feature,
			listDimStyle.Render(fmt.Sprintf("(%d components)", len(cl.Components))))
		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString(listNormalStyle.Render("  "+line) + "\n")
		}
	}

	b.WriteString("\n" + listDimStyle.Render("enter: open · j/k: move · q: quit"))
	return b.String()
}

// clusterView renders one cluster's components grouped by tier.
func (m inspectModel) clusterView(cl *component.Cluster) string {
	header := cl.Header()

	byTier := make(map[int][]*component.Component)
	var tiers []int
	for _, c := range cl.Components {
		isHeader := header != nil && c.ID == header.ID
		tier := component.TierFor(c, isHeader) + component.TierOffset
		if _, seen := byTier[tier]; !seen {
			tiers = append(tiers, tier)
		}
		byTier[tier] = append(byTier[tier], c)
	}
	slices.Sort(tiers)

	var b strings.Builder
	b.WriteString(StyleTitle.Render(cl.Feature) + "\n\n")
	for _, tier := range tiers {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("tier %d", tier)) + "\n")
		for _, c := range byTier[tier] {
			marker := " "
			if header != nil && c.ID == header.ID {
				marker = "*"
			}
			b.WriteString(fmt.Sprintf("  %s %s %s\n",
				marker,
				listNormalStyle.Render(c.DisplayLabel()),
				listDimStyle.Render(fmt.Sprintf("[%s, strength %d]", c.Category, c.ConnectionStrength()))))
		}
	}

	b.WriteString("\n" + listDimStyle.Render("esc: back · q: quit"))
	return b.String()
}
