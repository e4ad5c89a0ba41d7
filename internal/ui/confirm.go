package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ashwch/powermenu/internal/config"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/rivo/tview"
)

// ConfirmOverwrite asks before `config init` replaces an existing file. used is
// false when no interactive backend could be started.
func ConfirmOverwrite(backend string, path string) (bool, bool, error) {
	var firstErr error
	for _, candidate := range backendCandidates(backend) {
		var (
			approved bool
			err      error
		)
		switch candidate {
		case config.BackendBubbleTea:
			approved, err = confirmWithBubbleTea(path)
		case config.BackendHuh:
			approved, err = confirmWithHuh(path)
		case config.BackendTView:
			approved, err = confirmWithTView(path)
		default:
			continue
		}
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		return approved, true, nil
	}
	if firstErr != nil {
		return false, false, firstErr
	}
	return false, false, nil
}

type bubbleConfirmModel struct {
	path     string
	approved bool
	done     bool
}

func (m bubbleConfirmModel) Init() tea.Cmd { return nil }

func (m bubbleConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch k := msg.(type) {
	case tea.KeyMsg:
		switch strings.ToLower(k.String()) {
		case "y":
			m.approved = true
			m.done = true
			return m, tea.Quit
		case "n", "esc", "ctrl+c", "enter":
			m.approved = false
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m bubbleConfirmModel) View() string {
	return menuCardStyle.Render(fmt.Sprintf(
		"%s\n\n%s\n\n%s",
		menuTitleStyle.Render("Overwrite config with defaults?"),
		m.path,
		menuHintStyle.Render("[y] overwrite  [n] keep"),
	))
}

func confirmWithBubbleTea(path string) (bool, error) {
	model := bubbleConfirmModel{path: strings.TrimSpace(path)}
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return false, err
	}
	out, ok := final.(bubbleConfirmModel)
	if !ok || !out.done {
		return false, nil
	}
	return out.approved, nil
}

func confirmWithHuh(path string) (bool, error) {
	approved := false
	prompt := huh.NewConfirm().
		Title("Overwrite config with defaults?").
		Description(strings.TrimSpace(path)).
		Affirmative("Overwrite").
		Negative("Keep").
		Value(&approved).
		WithTheme(huh.ThemeCharm())
	err := prompt.Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return approved, nil
}

func confirmWithTView(path string) (bool, error) {
	app := tview.NewApplication()
	approved := false

	modal := tview.NewModal().
		SetText(fmt.Sprintf("Overwrite config with defaults?\n\n%s", strings.TrimSpace(path))).
		AddButtons([]string{"Overwrite", "Keep"}).
		SetDoneFunc(func(_ int, label string) {
			approved = label == "Overwrite"
			app.Stop()
		})

	if err := app.SetRoot(modal, true).Run(); err != nil {
		return false, err
	}
	return approved, nil
}
