package installer

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// LocaleStep selects the language the reserved command words resolve to
type LocaleStep struct {
	choices []string
	labels  map[string]string
	cursor  int
}

func NewLocaleStep() Step {
	return &LocaleStep{
		choices: []string{"en", "es"},
		labels: map[string]string{
			"en": "English (cancel / help / reset)",
			"es": "Español (cancelar / ayuda / reiniciar)",
		},
		cursor: 0,
	}
}

func (s *LocaleStep) Init() tea.Cmd {
	return nil
}

func (s *LocaleStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.choices)-1 {
				s.cursor++
			}
		case "enter":
			state.EnvVars["LOCBOT_LOCALE"] = s.choices[s.cursor]
			return nil, nil
		}
	}
	return s, nil
}

func (s *LocaleStep) View(state *InstallState) string {
	var b strings.Builder
	b.WriteString("Select the bot language:\n\n")
	for i, choice := range s.choices {
		cursor := " "
		if s.cursor == i {
			cursor = "❯"
			b.WriteString(selStyle.Render(fmt.Sprintf("%s %s", cursor, s.labels[choice])) + "\n")
		} else {
			b.WriteString(itemStyle.Render(fmt.Sprintf("%s %s", cursor, s.labels[choice])) + "\n")
		}
	}
	b.WriteString("\n(press ctrl+c to quit)\n")
	return b.String()
}
