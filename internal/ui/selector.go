package ui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ashwch/powermenu/internal/config"
	"github.com/ashwch/powermenu/internal/session"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

var (
	plainInput  io.Reader = os.Stdin
	plainOutput io.Writer = os.Stdout
)

// RunMenu drives menu with the first backend that starts. Once a backend has shown
// the menu its error is final and no other backend is tried.
func RunMenu(backend string, menu Menu) error {
	var firstErr error
	for _, candidate := range backendCandidates(backend) {
		var (
			used bool
			err  error
		)
		switch candidate {
		case config.BackendBubbleTea:
			used, err = runWithBubbleTea(menu)
		case config.BackendHuh:
			used, err = runWithHuh(menu)
		case config.BackendTView:
			used, err = runWithTView(menu)
		case config.BackendPlain:
			return RunPlain(menu, plainInput, plainOutput)
		default:
			continue
		}
		if used {
			return err
		}
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return firstErr
	}
	return errors.New("no ui backend available")
}

type menuItem struct {
	candidate session.Candidate
}

func (i menuItem) Title() string       { return i.candidate.Title }
func (i menuItem) Description() string { return i.candidate.Description }
func (i menuItem) FilterValue() string { return i.candidate.Title }

type menuModel struct {
	menu   Menu
	input  textinput.Model
	list   list.Model
	err    error
	closed bool
}

func newMenuModel(menu Menu) menuModel {
	input := textinput.New()
	input.Placeholder = "type to filter"
	input.Prompt = "> "
	input.CharLimit = 64
	input.Focus()

	delegate := list.NewDefaultDelegate()
	delegate.SetSpacing(0)

	width, height := bubblePickerSize(80, 24, 6)
	picker := list.New(nil, delegate, width, height)
	picker.Title = session.Info().Name
	picker.Styles.Title = menuTitleStyle
	picker.SetShowHelp(false)
	picker.SetShowStatusBar(false)
	picker.SetFilteringEnabled(false)

	m := menuModel{menu: menu, input: input, list: picker}
	m.refresh()
	return m
}

func (m *menuModel) refresh() tea.Cmd {
	candidates := m.menu.List(m.input.Value())
	items := make([]list.Item, 0, len(candidates))
	for _, candidate := range candidates {
		items = append(items, menuItem{candidate: candidate})
	}
	cmd := m.list.SetItems(items)
	m.list.Select(0)
	return cmd
}

func (m menuModel) Init() tea.Cmd { return textinput.Blink }

func (m menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch k := msg.(type) {
	case tea.WindowSizeMsg:
		width, height := bubblePickerSize(k.Width, k.Height-2, len(m.list.Items()))
		m.list.SetSize(width, height)
		return m, nil
	case tea.KeyMsg:
		switch k.String() {
		case "esc", "ctrl+c":
			return m, tea.Quit
		case "up", "ctrl+p":
			m.list.CursorUp()
			return m, nil
		case "down", "ctrl+n", "tab":
			m.list.CursorDown()
			return m, nil
		case "enter":
			return m.choose()
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		refreshCmd := m.refresh()
		return m, tea.Batch(cmd, refreshCmd)
	}
	return m, cmd
}

func (m menuModel) choose() (tea.Model, tea.Cmd) {
	item, ok := m.list.SelectedItem().(menuItem)
	if !ok {
		return m, nil
	}
	outcome, err := m.menu.Select(item.candidate.ID)
	if err != nil {
		m.err = err
		return m, tea.Quit
	}
	if outcome.Kind == session.OutcomeClose {
		m.closed = true
		return m, tea.Quit
	}
	if outcome.SelectAll {
		m.input.SetValue("")
	}
	cmd := m.refresh()
	return m, cmd
}

func (m menuModel) View() string {
	if len(m.list.Items()) == 0 {
		return menuCardStyle.Render(m.input.View() + "\n\n" + menuHintStyle.Render("no matching actions"))
	}
	return menuCardStyle.Render(m.input.View() + "\n\n" + m.list.View())
}

func runWithBubbleTea(menu Menu) (bool, error) {
	final, err := tea.NewProgram(newMenuModel(menu), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	out, ok := final.(menuModel)
	if !ok {
		return true, nil
	}
	return true, out.err
}

// runWithHuh pairs a query input with a select whose options are re-ranked by the
// menu whenever the query changes.
func runWithHuh(menu Menu) (bool, error) {
	used := false
	for {
		query := ""
		var choice session.ID
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title(session.Info().Name).
				Placeholder("type to filter").
				Value(&query),
			huh.NewSelect[session.ID]().
				OptionsFunc(func() []huh.Option[session.ID] {
					return huhOptions(menu.List(query))
				}, &query).
				Height(huhSelectHeight(len(menu.List("")))).
				Value(&choice),
		)).WithTheme(huh.ThemeCharm())

		err := form.Run()
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return true, nil
			}
			return used, err
		}
		used = true

		// an empty option list leaves choice at its zero value
		if !hasCandidate(menu.List(query), choice) {
			continue
		}
		outcome, err := menu.Select(choice)
		if err != nil {
			return true, err
		}
		if outcome.Kind == session.OutcomeClose {
			return true, nil
		}
	}
}

func huhOptions(candidates []session.Candidate) []huh.Option[session.ID] {
	options := make([]huh.Option[session.ID], 0, len(candidates))
	for _, candidate := range candidates {
		options = append(options, huh.NewOption(candidateLabel(candidate), candidate.ID))
	}
	return options
}

func hasCandidate(candidates []session.Candidate, id session.ID) bool {
	for _, candidate := range candidates {
		if candidate.ID == id {
			return true
		}
	}
	return false
}

func runWithTView(menu Menu) (bool, error) {
	app := tview.NewApplication()
	input := tview.NewInputField().SetLabel("> ")
	listView := tview.NewList()
	listView.ShowSecondaryText(true)

	var (
		runErr  error
		refresh func()
	)
	refresh = func() {
		listView.Clear()
		for _, candidate := range menu.List(input.GetText()) {
			current := candidate
			listView.AddItem(current.Title, current.Description, 0, func() {
				outcome, err := menu.Select(current.ID)
				if err != nil {
					runErr = err
					app.Stop()
					return
				}
				if outcome.Kind == session.OutcomeClose {
					app.Stop()
					return
				}
				if outcome.SelectAll {
					input.SetText("")
				}
				refresh()
				if outcome.SelectAll {
					app.SetFocus(listView)
				}
			})
		}
	}
	refresh()

	input.SetChangedFunc(func(string) { refresh() })
	input.SetDoneFunc(func(key tcell.Key) {
		switch key {
		case tcell.KeyEscape:
			app.Stop()
		default:
			app.SetFocus(listView)
		}
	})
	listView.SetDoneFunc(func() {
		app.SetFocus(input)
	})

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(input, 1, 0, true).
		AddItem(listView, 0, 1, false)
	layout.SetBorder(true).SetTitle(session.Info().Name)

	if err := app.SetRoot(layout, true).SetFocus(input).Run(); err != nil {
		return false, err
	}
	return true, runErr
}

func candidateLabel(candidate session.Candidate) string {
	if strings.TrimSpace(candidate.Description) == "" {
		return candidate.Title
	}
	return fmt.Sprintf("%s  (%s)", candidate.Title, candidate.Description)
}

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

func bubblePickerSize(termWidth, termHeight, optionCount int) (int, int) {
	if termWidth <= 0 {
		termWidth = 80
	}
	if termHeight <= 0 {
		termHeight = 24
	}
	if optionCount < 1 {
		optionCount = 1
	}

	maxWidth := termWidth
	minWidth := 32
	if maxWidth < minWidth {
		minWidth = maxWidth
	}
	width := clampInt(termWidth-4, minWidth, maxWidth)

	// two lines per item: title and description
	desiredHeight := clampInt(optionCount, 2, 8)*2 + 2

	maxHeight := termHeight - 2
	if maxHeight <= 0 {
		maxHeight = termHeight
	}
	minHeight := 6
	if maxHeight < minHeight {
		minHeight = maxHeight
	}
	height := clampInt(desiredHeight, minHeight, maxHeight)
	return width, height
}

func huhSelectHeight(optionCount int) int {
	if optionCount < 1 {
		optionCount = 1
	}
	return clampInt(optionCount+1, 4, 10)
}

var (
	menuCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1)

	menuTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("87"))

	menuHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("109"))
)
