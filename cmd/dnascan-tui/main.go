package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dnascan/internal/analysis"
	"dnascan/internal/composition"
	"dnascan/internal/report"
)

// Colors for modern design
var (
	primaryColor   = lipgloss.Color("#7C3AED") // Purple
	secondaryColor = lipgloss.Color("#10B981") // Green
	accentColor    = lipgloss.Color("#F59E0B") // Amber
	surfaceColor   = lipgloss.Color("#1F2937") // Dark gray
	textColor      = lipgloss.Color("#F3F4F6") // Light gray
	mutedColor     = lipgloss.Color("#9CA3AF") // Muted gray
	borderColor    = lipgloss.Color("#374151") // Border gray
)

// Styles
var (
	containerStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor)

	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			Align(lipgloss.Center)

	headerRowStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Background(surfaceColor).
			Padding(0, 1)

	emptyStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	contentStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Background(lipgloss.Color("#111827")).
			Padding(1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor)

	// Row accent styles
	gcStyle         = lipgloss.NewStyle().Foreground(secondaryColor).Bold(true)
	findingStyle    = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	degenerateStyle = lipgloss.NewStyle().Foreground(mutedColor)
)

type listItem struct {
	info        analysis.SequenceInfo
	palindromes int
	invalid     int
}

func (i listItem) FilterValue() string { return i.Title() }

func (i listItem) Title() string {
	if i.info.Header != "" {
		return i.info.Header
	}
	return "sequence " + strconv.Itoa(i.info.Index)
}

func (i listItem) Description() string {
	// Metadata line shown below the title in the selector list
	if i.info.Degenerate {
		return degenerateStyle.Render("degenerate") + fmt.Sprintf("    len: %d", i.info.Length)
	}
	pal := strconv.Itoa(i.palindromes)
	if i.palindromes > 0 {
		pal = findingStyle.Render(pal)
	}
	inv := strconv.Itoa(i.invalid)
	if i.invalid > 0 {
		inv = findingStyle.Render(inv)
	}
	return fmt.Sprintf("len: %d    GC: %s    pal: %s    inv: %s",
		i.info.Length, gcStyle.Render(fmt.Sprintf("%.3f", i.info.GC.Distribution)), pal, inv)
}

type mode int

const (
	modeOverview mode = iota
	modeDinucleotides
	modeKmers
	modePalindromes
)

func (m mode) String() string {
	switch m {
	case modeOverview:
		return "📊 Overview"
	case modeDinucleotides:
		return "🧬 Dinucleotides"
	case modeKmers:
		return "🔢 K-mers"
	case modePalindromes:
		return "🧩 Palindromes"
	default:
		return "Unknown"
	}
}

type model struct {
	list           list.Model
	result         *analysis.Result
	currentMode    mode
	showHelp       bool
	width          int
	height         int
	totalSequences int
	selectedIndex  int
}

// newModel builds the browser from an already loaded result record.
func newModel(res *analysis.Result) model {
	items := make([]list.Item, len(res.Sequences))
	for i, info := range res.Sequences {
		items[i] = listItem{
			info:        info,
			palindromes: len(res.Palindromes[info.Index]),
			invalid:     len(res.Invalid[info.Index]),
		}
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Sequences"
	l.SetShowStatusBar(false)
	l.SetShowPagination(true)
	l.SetFilteringEnabled(true)

	return model{
		list:           l,
		result:         res,
		currentMode:    modeOverview,
		totalSequences: len(res.Sequences),
	}
}

func initialModel(path string) model {
	res, err := report.Load(path)
	if err != nil {
		log.Fatal(err)
	}
	return newModel(res)
}

func (m model) Init() tea.Cmd {
	return nil
}

// cycleMode advances to the next view mode, wrapping around.
func (m model) cycleMode() model {
	m.currentMode = (m.currentMode + 1) % (modePalindromes + 1)
	return m
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Calculate list dimensions (left panel takes 1/3 of width)
		listWidth := msg.Width / 3
		listHeight := msg.Height - 4 // Account for borders and status

		m.list.SetWidth(listWidth)
		m.list.SetHeight(listHeight)

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "h":
			m.showHelp = !m.showHelp
			return m, nil

		case "tab":
			return m.cycleMode(), nil

		case "1":
			m.currentMode = modeOverview
			return m, nil

		case "2":
			m.currentMode = modeDinucleotides
			return m, nil

		case "3":
			m.currentMode = modeKmers
			return m, nil

		case "4":
			m.currentMode = modePalindromes
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	m.selectedIndex = m.list.Index()
	return m, cmd
}

func (m model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	// Help modal overlay
	if m.showHelp {
		return m.renderHelpModal()
	}

	// Main layout
	leftPanel := m.renderLeftPanel()
	rightPanel := m.renderRightPanel()
	statusBar := m.renderStatusBar()

	main := lipgloss.JoinHorizontal(
		lipgloss.Top,
		leftPanel,
		rightPanel,
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		main,
		statusBar,
	)
}

func (m model) renderLeftPanel() string {
	listWidth := m.width / 3

	return containerStyle.
		Width(listWidth - 2). // Account for padding
		Height(m.height - 4). // Account for status bar
		Render(m.list.View())
}

func (m model) renderRightPanel() string {
	rightWidth := (m.width * 2) / 3

	if m.totalSequences == 0 {
		return containerStyle.
			Width(rightWidth - 2).
			Height(m.height - 4).
			Render("No sequences in results")
	}

	selectedItem := m.list.SelectedItem()
	if selectedItem == nil {
		return containerStyle.
			Width(rightWidth - 2).
			Height(m.height - 4).
			Render("No sequence selected")
	}

	item := selectedItem.(listItem)
	info := item.info

	header := titleStyle.Render(fmt.Sprintf("%s - %d bases", item.Title(), info.Length))

	var lines []string
	switch m.currentMode {
	case modeOverview:
		lines = m.overviewLines(info)
	case modeDinucleotides:
		lines = m.matrixLines(info.Index)
	case modeKmers:
		lines = m.kmerLines(info.Index)
	case modePalindromes:
		lines = m.palindromeLines(info.Index)
	}

	content := contentStyle.
		Width(rightWidth - 6). // Account for padding and borders
		Render(strings.Join(lines, "\n"))

	panelContent := lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		"",
		content,
	)

	return containerStyle.
		Width(rightWidth - 2).
		Height(m.height - 4).
		Render(panelContent)
}

// overviewLines describes the selected sequence next to the dataset fold.
func (m model) overviewLines(info analysis.SequenceInfo) []string {
	lines := []string{}
	if info.Degenerate {
		lines = append(lines, degenerateStyle.Render("degenerate sequence: excluded from dataset reductions"))
	} else {
		lines = append(lines,
			fmt.Sprintf("GC distribution:  %s", gcStyle.Render(fmt.Sprintf("%.4f", info.GC.Distribution))),
			fmt.Sprintf("GC skew:          %s", gcStyle.Render(fmt.Sprintf("%+.4f", info.GC.Skew))),
		)
	}
	gc := m.result.GC
	lines = append(lines,
		"",
		headerRowStyle.Render("Dataset"),
		fmt.Sprintf("mean distribution:  %.4f", gc.Mean.Distribution),
		fmt.Sprintf("mean skew:          %+.4f", gc.Mean.Skew),
		fmt.Sprintf("max distribution:   %.4f  (%s)", gc.MaxDistribution.Stats.Distribution, extremeLabel(gc.MaxDistribution)),
		fmt.Sprintf("min distribution:   %.4f  (%s)", gc.MinDistribution.Stats.Distribution, extremeLabel(gc.MinDistribution)),
		fmt.Sprintf("max skew:           %+.4f  (%s)", gc.MaxSkew.Stats.Skew, extremeLabel(gc.MaxSkew)),
		fmt.Sprintf("min skew:           %+.4f  (%s)", gc.MinSkew.Stats.Skew, extremeLabel(gc.MinSkew)),
		fmt.Sprintf("degenerate:         %d of %d", len(m.result.Degenerate), m.totalSequences),
	)
	return lines
}

func extremeLabel(e analysis.Extreme) string {
	if e.Index < 0 {
		return "none"
	}
	return "sequence " + strconv.Itoa(e.Index)
}

// matrixBases recovers the base order of a matrix from its cell keys.
func matrixBases(mx composition.Matrix) []string {
	seen := map[string]bool{}
	for pair := range mx {
		if len(pair) == 2 {
			seen[pair[:1]] = true
		}
	}
	bases := make([]string, 0, len(seen))
	for b := range seen {
		bases = append(bases, b)
	}
	sort.Strings(bases)
	return bases
}

// matrixLines renders the selected sequence's dinucleotide matrix as a grid.
func (m model) matrixLines(idx int) []string {
	per := m.result.Dinucleotides.PerSequence
	if idx < 0 || idx >= len(per) {
		return []string{emptyStyle.Render("no matrix for this sequence")}
	}
	mx := per[idx]
	bases := matrixBases(mx)
	if len(bases) == 0 {
		return []string{emptyStyle.Render("empty matrix")}
	}

	header := "     "
	for _, b := range bases {
		header += fmt.Sprintf("%8s", b)
	}
	lines := []string{headerRowStyle.Render(header)}
	for _, row := range bases {
		line := fmt.Sprintf("%-5s", row)
		for _, col := range bases {
			line += fmt.Sprintf("%8.4f", mx[row+col])
		}
		lines = append(lines, line)
	}
	lines = append(lines, "", emptyStyle.Render("rows: first base, columns: second base, cells: pair fraction"))
	return lines
}

// kmerLines renders every configured k layer. Per-sequence rankings follow
// the selected sequence; the merged dataset ranking is shown otherwise.
func (m model) kmerLines(idx int) []string {
	if len(m.result.Kmers) == 0 {
		return []string{emptyStyle.Render("no k values configured")}
	}
	perSequence := false
	for _, layer := range m.result.Kmers {
		if len(layer.Rankings) == m.totalSequences && m.totalSequences > 0 {
			perSequence = true
		}
	}
	var lines []string
	for _, layer := range m.result.Kmers {
		scope := "dataset"
		ranking := layer.Rankings
		which := 0
		if perSequence {
			scope = "this sequence"
			which = idx
		}
		lines = append(lines, headerRowStyle.Render(fmt.Sprintf("k=%d (%s)", layer.K, scope)))
		if which >= len(ranking) || len(ranking[which]) == 0 {
			lines = append(lines, emptyStyle.Render("  no k-mers counted"), "")
			continue
		}
		for rank, e := range ranking[which] {
			lines = append(lines, fmt.Sprintf("  %2d. %-12s %d", rank+1, e.Kmer, e.Count))
		}
		lines = append(lines, "")
	}
	return lines
}

// palindromeLines lists the findings and invalid characters of the
// selected sequence, both in position order.
func (m model) palindromeLines(idx int) []string {
	lines := []string{headerRowStyle.Render("Palindromes")}
	pals := m.result.Palindromes[idx]
	if len(pals) == 0 {
		lines = append(lines, emptyStyle.Render("  none"))
	} else {
		starts := make([]int, 0, len(pals))
		for s := range pals {
			starts = append(starts, s)
		}
		sort.Ints(starts)
		for _, s := range starts {
			lines = append(lines, fmt.Sprintf("  @%-6d %s", s, findingStyle.Render(pals[s])))
		}
	}

	lines = append(lines, "", headerRowStyle.Render("Invalid bases"))
	bad := m.result.Invalid[idx]
	if len(bad) == 0 {
		lines = append(lines, emptyStyle.Render("  none"))
	} else {
		positions := make([]int, 0, len(bad))
		for p := range bad {
			positions = append(positions, p)
		}
		sort.Ints(positions)
		for _, p := range positions {
			lines = append(lines, fmt.Sprintf("  @%-6d %q", p, bad[p]))
		}
	}
	return lines
}

func (m model) renderStatusBar() string {
	// Left side - navigation info
	leftInfo := fmt.Sprintf("🧬 %d/%d sequences", m.selectedIndex+1, m.totalSequences)

	// Center - current mode
	centerInfo := fmt.Sprintf("Mode: %s", m.currentMode.String())

	// Right side - help hint
	rightInfo := "Press 'h' for help • 'q' to quit"

	// Calculate spacing
	totalUsed := len(leftInfo) + len(centerInfo) + len(rightInfo)
	spacing := m.width - totalUsed - 6 // Account for padding

	var statusContent string
	if spacing > 0 {
		leftSpacing := spacing / 2
		rightSpacing := spacing - leftSpacing

		statusContent = fmt.Sprintf("%s%s%s%s%s",
			leftInfo,
			strings.Repeat(" ", leftSpacing),
			centerInfo,
			strings.Repeat(" ", rightSpacing),
			rightInfo,
		)
	} else {
		// Fallback for narrow terminals
		statusContent = fmt.Sprintf("%s | %s", leftInfo, centerInfo)
	}

	return statusBarStyle.
		Width(m.width).
		Render(statusContent)
}

func (m model) renderHelpModal() string {
	helpContent := `🧬 dnascan Results Browser - Help

Navigation:
  ↑/↓, j/k     Navigate list
  /            Filter sequences
  Tab          Cycle view modes

View Modes:
  1            Overview and GC stats
  2            Dinucleotide matrix
  3            Top k-mers
  4            Palindromes and invalid bases

General:
  h            Toggle this help
  q, Ctrl+C    Quit application

Current Mode: ` + m.currentMode.String() + `
Total Sequences: ` + fmt.Sprintf("%d", m.totalSequences) + `
`

	modalStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(primaryColor).
		Padding(1, 2).
		Background(surfaceColor).
		Foreground(textColor).
		Width(60).
		Align(lipgloss.Center)

	modal := modalStyle.Render(helpContent)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal,
	)
}

func main() {
	resultsFlag := flag.String("results", "./results/results.json", "path to results.json written by dnascan")
	flag.Parse()

	p := tea.NewProgram(initialModel(*resultsFlag), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v", err)
		os.Exit(1)
	}
}
