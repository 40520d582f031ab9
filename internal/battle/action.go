package battle

type ActionKind int

const (
	NoAction ActionKind = iota
	KindMove
	KindSwitch
)

// Action is what a side does on its ply: use a move, or switch the active
// battler for a bench member.
type Action struct {
	Kind   ActionKind
	Move   Move
	Switch string
}

func UseMove(m Move) Action     { return Action{Kind: KindMove, Move: m} }
func SwitchTo(id string) Action { return Action{Kind: KindSwitch, Switch: id} }

func (a Action) IsMove() bool   { return a.Kind == KindMove }
func (a Action) IsSwitch() bool { return a.Kind == KindSwitch }
func (a Action) IsZero() bool   { return a.Kind == NoAction }

func (a Action) String() string {
	switch a.Kind {
	case KindMove:
		return "move " + a.Move.ID
	case KindSwitch:
		return "switch " + a.Switch
	}
	return "none"
}

// Decision is the single answer handed back to the order layer.
type Decision struct {
	MoveID   string  `json:"move,omitempty"`
	SwitchID string  `json:"switch,omitempty"`
	Dynamax  bool    `json:"dynamax,omitempty"`
	Fallback bool    `json:"fallback,omitempty"`
	Score    float64 `json:"score"`
}

func DecisionFor(a Action) Decision {
	switch a.Kind {
	case KindMove:
		return Decision{MoveID: a.Move.ID}
	case KindSwitch:
		return Decision{SwitchID: a.Switch}
	}
	return Decision{}
}

func (d Decision) Action() string {
	if d.SwitchID != "" {
		return "switch " + d.SwitchID
	}
	if d.MoveID != "" {
		return "move " + d.MoveID
	}
	return "none"
}
