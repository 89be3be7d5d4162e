package installer

import (
	tea "github.com/charmbracelet/bubbletea"
)

// FinalizationStep computes derived values and final env var formatting
type FinalizationStep struct{}

func NewFinalizationStep() Step {
	return &FinalizationStep{}
}

func (s *FinalizationStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *FinalizationStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	// Set derived values
	if state.telegramSelected() {
		state.EnvVars["LOCBOT_ENABLE_TELEGRAM"] = "true"
		state.EnvVars["LOCBOT_ENABLE_CLI"] = "false"
	} else {
		state.EnvVars["LOCBOT_ENABLE_TELEGRAM"] = "false"
		state.EnvVars["LOCBOT_ENABLE_CLI"] = "true"
	}

	// Set defaults
	if state.EnvVars["LOCBOT_DEBUG"] == "" {
		state.EnvVars["LOCBOT_DEBUG"] = "0"
	}

	// Only used as intermediate state
	delete(state.EnvVars, keyChannel)

	// Signal completion
	return nil, nil
}

func (s *FinalizationStep) View(state *InstallState) string {
	return "Finalizing configuration...\n"
}
