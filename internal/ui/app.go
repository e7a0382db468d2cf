package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/prabalesh/proctop/internal/collector"
	"github.com/prabalesh/proctop/internal/format"
	"github.com/prabalesh/proctop/internal/models"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	tabOverview = iota
	tabCPU
	tabMemory
	tabProcesses
)

// Source supplies snapshots to the display. *collector.StatsCollector satisfies it.
type Source interface {
	GetSystemStats() models.SystemStats
	GetProcessList() models.ProcessList
}

type tickMsg time.Time

type statsMsg struct {
	stats     models.SystemStats
	processes models.ProcessList
}

type App struct {
	source       Source
	interval     time.Duration
	maxProcesses int

	stats       models.SystemStats
	processes   models.ProcessList
	activeTab   int
	tabs        []string
	width       int
	height      int
	selectedRow int
	// Tab scrolling state
	tabScrollOffset int
	// Vertical scrolling state
	verticalScrollOffset int
	contentHeight        int
	cpuProgress          progress.Model
	memoryProgress       progress.Model
}

// NewApp builds the display. interval paces sampling; maxProcesses caps the
// process table, 0 meaning no cap.
func NewApp(source Source, interval time.Duration, maxProcesses int) *App {
	if interval <= 0 {
		interval = time.Second
	}
	return &App{
		source:         source,
		interval:       interval,
		maxProcesses:   maxProcesses,
		tabs:           []string{"Overview", "CPU", "Memory", "Processes"},
		cpuProgress:    progress.New(progress.WithDefaultGradient()),
		memoryProgress: progress.New(progress.WithDefaultGradient()),
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.updateStats(),
		a.tick(),
	)
}

func (a *App) tick() tea.Cmd {
	return tea.Tick(a.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a *App) updateStats() tea.Cmd {
	return func() tea.Msg {
		stats := a.source.GetSystemStats()
		processes := a.source.GetProcessList().Top(a.maxProcesses)
		return statsMsg{stats, processes}
	}
}

// visibleTabs returns the tabs that fit the width starting at the scroll offset.
func (a *App) visibleTabs() ([]string, []int, bool, bool) {
	if a.width <= 0 {
		indices := make([]int, len(a.tabs))
		for i := range indices {
			indices[i] = i
		}
		return a.tabs, indices, false, false
	}

	var names []string
	var indices []int
	used := 0
	available := a.width - 10

	for i := a.tabScrollOffset; i < len(a.tabs); i++ {
		w := len(a.tabs[i]) + 6
		if used+w > available && len(names) > 0 {
			break
		}
		names = append(names, a.tabs[i])
		indices = append(indices, i)
		used += w
	}

	canScrollLeft := a.tabScrollOffset > 0
	canScrollRight := a.tabScrollOffset+len(names) < len(a.tabs)
	return names, indices, canScrollLeft, canScrollRight
}

func (a *App) ensureActiveTabVisible() {
	if a.activeTab < a.tabScrollOffset {
		a.tabScrollOffset = a.activeTab
		return
	}
	_, indices, _, _ := a.visibleTabs()
	if len(indices) > 0 && a.activeTab > indices[len(indices)-1] {
		a.tabScrollOffset = max(0, a.activeTab-2)
	}
}

// Title, tabs, help and their margins take eight lines.
func (a *App) contentAreaHeight() int {
	return max(1, a.height-8)
}

func (a *App) maxScrollOffset() int {
	available := a.contentAreaHeight()
	if a.contentHeight <= available {
		return 0
	}
	return a.contentHeight - available
}

func (a *App) clampVerticalScroll() {
	a.verticalScrollOffset = max(0, min(a.verticalScrollOffset, a.maxScrollOffset()))
}

func (a *App) applyVerticalScroll(content string) string {
	lines := strings.Split(content, "\n")
	a.contentHeight = len(lines)
	a.clampVerticalScroll()

	available := a.contentAreaHeight()
	if len(lines) <= available {
		return content
	}

	start := a.verticalScrollOffset
	end := min(start+available, len(lines))
	result := strings.Join(lines[start:end], "\n")

	if a.verticalScrollOffset > 0 {
		result = ScrollHintStyle.Render("▲ More content above") + "\n" + result
	}
	if a.verticalScrollOffset < a.maxScrollOffset() {
		result = result + "\n" + ScrollHintStyle.Render("▼ More content below")
	}
	return result
}

func (a *App) switchTab(tab int) {
	if tab < 0 || tab >= len(a.tabs) {
		return
	}
	a.activeTab = tab
	a.verticalScrollOffset = 0
	a.ensureActiveTabVisible()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

		progressWidth := max(10, min(50, a.width-20))
		a.cpuProgress.Width = progressWidth
		a.memoryProgress.Width = progressWidth
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return a, tea.Quit
		case "left", "h":
			a.switchTab(a.activeTab - 1)
		case "right", "l", "tab":
			a.switchTab(a.activeTab + 1)
		case "1", "2", "3", "4":
			a.switchTab(int(msg.String()[0] - '1'))
		case "shift+left", "H":
			if a.tabScrollOffset > 0 {
				a.tabScrollOffset--
			}
		case "shift+right", "L":
			if _, _, _, canScrollRight := a.visibleTabs(); canScrollRight {
				a.tabScrollOffset++
			}
		case "up", "k":
			if a.activeTab == tabProcesses {
				if a.selectedRow > 0 {
					a.selectedRow--
				}
			} else if a.verticalScrollOffset > 0 {
				a.verticalScrollOffset--
			}
		case "down", "j":
			if a.activeTab == tabProcesses {
				if a.selectedRow < len(a.processes.Processes)-1 {
					a.selectedRow++
				}
			} else {
				a.verticalScrollOffset++
				a.clampVerticalScroll()
			}
		case "pgup", "ctrl+u":
			a.verticalScrollOffset = max(0, a.verticalScrollOffset-max(1, a.contentAreaHeight()/2))
		case "pgdown", "ctrl+d":
			a.verticalScrollOffset += max(1, a.contentAreaHeight()/2)
			a.clampVerticalScroll()
		case "home":
			a.verticalScrollOffset = 0
			a.selectedRow = 0
		case "end":
			a.verticalScrollOffset = a.maxScrollOffset()
			a.selectedRow = max(0, len(a.processes.Processes)-1)
		}

	case tickMsg:
		return a, tea.Batch(a.updateStats(), a.tick())

	case statsMsg:
		a.stats = msg.stats
		a.processes = msg.processes
		if a.selectedRow >= len(a.processes.Processes) {
			a.selectedRow = max(0, len(a.processes.Processes)-1)
		}
	}

	return a, nil
}

func (a *App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	title := TitleStyle.Width(a.width).Render("proctop")
	tabs := a.renderTabs()

	var content string
	switch a.activeTab {
	case tabOverview:
		content = a.renderOverview()
	case tabCPU:
		content = a.renderCPU()
	case tabMemory:
		content = a.renderMemory()
	case tabProcesses:
		content = a.renderProcesses()
	}

	help := HelpStyle.Render("←/→ h/l 1-4: tabs • ↑/↓ k/j: scroll/select • PgUp/PgDn: page • Home/End: top/bottom • q: quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		tabs,
		"",
		a.applyVerticalScroll(content),
		"",
		help,
	)
}

func (a *App) renderTabs() string {
	names, indices, canScrollLeft, canScrollRight := a.visibleTabs()

	var elements []string
	if canScrollLeft {
		elements = append(elements, ScrollHintStyle.Render("‹"))
	}
	for i, name := range names {
		if indices[i] == a.activeTab {
			elements = append(elements, ActiveTabStyle.Render(name))
		} else {
			elements = append(elements, InactiveTabStyle.Render(name))
		}
	}
	if canScrollRight {
		elements = append(elements, ScrollHintStyle.Render("›"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Left, elements...)
}

func field(label, value string) string {
	return fmt.Sprintf("%s %s", LabelStyle.Render(label), ValueStyle.Render(value))
}

func (a *App) renderOverview() string {
	s := a.stats
	return BaseStyle.Width(a.width - 4).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			HeaderStyle.Render("System Overview"),
			"",
			field("OS:", s.OS),
			field("Kernel:", s.Kernel),
			field("Uptime:", s.UptimeText),
			"",
			field("CPU:", format.Percent(s.CPU.Utilization)),
			a.cpuProgress.ViewAs(s.CPU.Utilization),
			"",
			field("Memory:", format.Percent(s.Memory.Utilization)),
			a.memoryProgress.ViewAs(s.Memory.Utilization),
			"",
			field("Total Processes:", fmt.Sprint(s.TotalProcesses)),
			field("Running Processes:", fmt.Sprint(s.RunningProcesses)),
		),
	)
}

func (a *App) renderCPU() string {
	cpu := a.stats.CPU
	content := []string{
		HeaderStyle.Render("CPU"),
		"",
		field("Utilization:", format.Percent(cpu.Utilization)),
		a.cpuProgress.ViewAs(cpu.Utilization),
		"",
		field("Active jiffies:", fmt.Sprint(cpu.Active)),
		field("Idle jiffies:", fmt.Sprint(cpu.Idle)),
		field("Total jiffies:", fmt.Sprint(cpu.Total)),
		"",
		HeaderStyle.Render("Time by mode since boot"),
	}

	barWidth := max(10, min(30, a.width-40))
	for i, ticks := range cpu.Ticks {
		if i >= len(collector.CPUModes) {
			break
		}
		share := 0.0
		if cpu.Total > 0 {
			share = float64(ticks) / float64(cpu.Total)
		}
		content = append(content, fmt.Sprintf("%-11s %s %6s",
			collector.CPUModes[i], RenderProgressBar(share, barWidth), format.Percent(share)))
	}

	return BaseStyle.Width(a.width - 4).Render(
		lipgloss.JoinVertical(lipgloss.Left, content...),
	)
}

func (a *App) renderMemory() string {
	mem := a.stats.Memory
	used := uint64(0)
	if mem.TotalKB > mem.AvailableKB {
		used = mem.TotalKB - mem.AvailableKB
	}

	return BaseStyle.Width(a.width - 4).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			HeaderStyle.Render("Memory"),
			"",
			field("Total:", fmt.Sprintf("%.1f GB", kbToGB(mem.TotalKB))),
			field("Available:", fmt.Sprintf("%.1f GB", kbToGB(mem.AvailableKB))),
			field("Used:", fmt.Sprintf("%.1f GB", kbToGB(used))),
			"",
			fmt.Sprintf("%s %s", LabelStyle.Render("Usage:"), UsageStyle(mem.Utilization).Render(format.Percent(mem.Utilization))),
			a.memoryProgress.ViewAs(mem.Utilization),
		),
	)
}

func kbToGB(kb uint64) float64 {
	return float64(kb) / (1024 * 1024)
}

const (
	colPID  = 8
	colUser = 10
	colCPU  = 7
	colRAM  = 8
	colTime = 10
)

func (a *App) renderProcesses() string {
	visibleRows := max(1, a.height-14)

	startIdx := 0
	if a.selectedRow >= visibleRows {
		startIdx = a.selectedRow - visibleRows + 1
	}
	endIdx := min(startIdx+visibleRows, len(a.processes.Processes))

	var content strings.Builder

	content.WriteString(HeaderStyle.Render("Process List"))
	content.WriteString("\n\n")
	content.WriteString(fmt.Sprintf("Total: %d | Running: %d | Sleeping: %d | Zombie: %d",
		a.processes.Total, a.processes.Running, a.processes.Sleeping, a.processes.Zombie))
	content.WriteString("\n\n")

	header := fmt.Sprintf("%-*s %-*s %*s %*s %*s %s",
		colPID, "PID", colUser, "USER", colCPU, "CPU%", colRAM, "RAM[MB]", colTime, "TIME+", "COMMAND")
	content.WriteString(TableHeaderStyle.Render(header))
	content.WriteString("\n")

	used := colPID + colUser + colCPU + colRAM + colTime + 5
	commandWidth := max(10, a.width-used-8)

	for i := startIdx; i < endIdx; i++ {
		proc := a.processes.Processes[i]
		row := fmt.Sprintf("%-*d %-*s %*s %*s %*s %s",
			colPID, proc.PID,
			colUser, format.Truncate(proc.User, colUser),
			colCPU, format.Percent(proc.CPUUtilization),
			colRAM, proc.Ram,
			colTime, proc.UpTimeText,
			format.Truncate(proc.Command, commandWidth))

		var style lipgloss.Style
		switch {
		case i == a.selectedRow:
			style = SelectedRowStyle
		case (i-startIdx)%2 == 0:
			style = EvenRowStyle
		default:
			style = OddRowStyle
		}
		content.WriteString(style.Render(row))
		content.WriteString("\n")
	}

	if len(a.processes.Processes) > visibleRows {
		content.WriteString("\n")
		content.WriteString(ScrollInfoStyle.Render(fmt.Sprintf(
			"Showing %d-%d of %d processes • Use ↑↓ arrows or j/k to navigate",
			startIdx+1, endIdx, len(a.processes.Processes))))
	}

	return BaseStyle.Render(content.String())
}
