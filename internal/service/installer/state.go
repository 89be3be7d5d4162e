package installer

// Keys used while the wizard is running. keyChannel is intermediate state
// only; FinalizationStep folds it into the transport flags.
const (
	keyChannel = "LOCBOT_CHANNEL"
)

type InstallState struct {
	EnvVars map[string]string
}

func NewInstallState() *InstallState {
	return &InstallState{
		EnvVars: make(map[string]string),
	}
}

func (s *InstallState) telegramSelected() bool {
	return s.EnvVars[keyChannel] == "Telegram"
}
