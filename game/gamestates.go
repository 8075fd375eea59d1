package game

// Stage is what the table is waiting for
type Stage int

const (
	StageAwaitingAction Stage = iota
	StageResolvingPendingDraw
	StageAwaitingWish
	StageGameOver
)

var stageNames = map[Stage]string{
	StageAwaitingAction:       "AwaitingAction",
	StageResolvingPendingDraw: "ResolvingPendingDraw",
	StageAwaitingWish:         "AwaitingWish",
	StageGameOver:             "GameOver",
}

func (s Stage) String() string {
	return stageNames[s]
}
