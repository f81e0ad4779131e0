package constants

const (
	AppName = "habitos"
	Version = "v0.3.0"

	DefaultConfigDir  = "~/.config/habitos"
	DefaultConfigFile = "config.yaml"

	// Storage backends
	BackendMemory = "memory"
	BackendSQLite = "sqlite"

	// Display sentinels shown by the statistics engine
	NoBestHabit      = "Ninguno aún"
	NoGoalsCompleted = "Aún no has completado ninguna meta."
	RankSummarySep   = " - "

	// PendingReward is the reward placeholder stored on newly created goals
	PendingReward = "Recompensa pendiente"

	// MaxProgress is the upper bound of any progress percentage
	MaxProgress = 100
)
