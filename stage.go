package mosaic

// Stage partitions one tick into the ordered phases systems run in
// (spec.md §4.5). The engine flushes the registry after each stage's
// scheduler runs, before the next stage begins, so a spawn queued in
// StageEarly is visible to StageMain.
type Stage int

const (
	StageCore Stage = iota
	StageEarly
	StageMain
	StageLate
	StageRender

	stageCount
)

func (s Stage) String() string {
	switch s {
	case StageCore:
		return "Core"
	case StageEarly:
		return "Early"
	case StageMain:
		return "Main"
	case StageLate:
		return "Late"
	case StageRender:
		return "Render"
	default:
		return "Unknown"
	}
}
