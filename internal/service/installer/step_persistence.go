package installer

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandevgo/locbot/internal/config"
	"github.com/sandevgo/locbot/pkg/env"
)

// envFile mirrors the variables the wizard may write; empty fields are
// omitted from the generated .env.
type envFile struct {
	Locale          string `env:"LOCBOT_LOCALE"`
	EnableTelegram  string `env:"LOCBOT_ENABLE_TELEGRAM"`
	EnableCLI       string `env:"LOCBOT_ENABLE_CLI"`
	TelegramToken   string `env:"LOCBOT_TELEGRAM_TOKEN"`
	TelegramOwnerID string `env:"LOCBOT_TELEGRAM_OWNER_ID"`
	Debug           string `env:"LOCBOT_DEBUG"`
}

// SaveEnvStep writes the collected configuration to .env file
type SaveEnvStep struct {
	err   error
	saved bool
}

func NewSaveEnvStep() Step {
	return &SaveEnvStep{}
}

func (s *SaveEnvStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *SaveEnvStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.saved {
		return nil, nil
	}

	// Perform save synchronously (fast operation)
	path := config.GetRuntimePath()

	if err := os.MkdirAll(path, 0755); err != nil {
		s.err = fmt.Errorf("failed to create runtime directory: %w", err)
		return s, nil
	}

	envPath := filepath.Join(path, ".env")

	// Check if .env already exists
	if _, err := os.Stat(envPath); err == nil {
		s.err = fmt.Errorf(".env file already exists at %s", envPath)
		return s, nil
	}

	file := &envFile{
		Locale:          state.EnvVars["LOCBOT_LOCALE"],
		EnableTelegram:  state.EnvVars["LOCBOT_ENABLE_TELEGRAM"],
		EnableCLI:       state.EnvVars["LOCBOT_ENABLE_CLI"],
		TelegramToken:   state.EnvVars["LOCBOT_TELEGRAM_TOKEN"],
		TelegramOwnerID: state.EnvVars["LOCBOT_TELEGRAM_OWNER_ID"],
		Debug:           state.EnvVars["LOCBOT_DEBUG"],
	}

	content, err := env.MarshalEnv(file)
	if err != nil {
		s.err = fmt.Errorf("failed to marshal env file: %w", err)
		return s, nil
	}

	if err := os.WriteFile(envPath, []byte(content), 0600); err != nil {
		s.err = err
		return s, nil
	}

	s.saved = true
	return nil, nil // Signal completion
}

func (s *SaveEnvStep) View(state *InstallState) string {
	if s.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", s.err)) + "\n\n(press ctrl+c to quit)\n"
	}
	if s.saved {
		return "Configuration saved successfully!\n"
	}
	return "Saving configuration...\n"
}
