package ui

// StartupStage enumerates the high-level phases of loading the catalog.
type StartupStage int

const (
	StartupStageInit StartupStage = iota
	StartupStageDetectingCapability
	StartupStageScanning
	StartupStageReadingAccents
	StartupStageReady
)

// StartupReporter receives progress notifications while the catalog loads.
// Implementations should be safe for concurrent use.
type StartupReporter interface {
	Stage(stage StartupStage, detail string)
}

// StartupReporterFunc adapts a function to the StartupReporter interface.
type StartupReporterFunc func(stage StartupStage, detail string)

// Stage implements StartupReporter.
func (f StartupReporterFunc) Stage(stage StartupStage, detail string) {
	if f == nil {
		return
	}
	f(stage, detail)
}
