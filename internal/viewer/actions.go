package viewer

// Action is one of the eight door commands.
type Action int

const (
	OpenLeftFront Action = iota
	CloseLeftFront
	OpenRightFront
	CloseRightFront
	OpenLeftRear
	CloseLeftRear
	OpenRightRear
	CloseRightRear

	actionCount
)

// Actions lists every action in key order: key '1' is Actions[0].
var Actions = [actionCount]Action{
	OpenLeftFront, CloseLeftFront,
	OpenRightFront, CloseRightFront,
	OpenLeftRear, CloseLeftRear,
	OpenRightRear, CloseRightRear,
}

// Slot returns the door the action targets.
func (a Action) Slot() Slot {
	return Slots[int(a)/2]
}

// Opens reports whether the action opens its door.
func (a Action) Opens() bool {
	return int(a)%2 == 0
}

func (a Action) verb() string {
	if a.Opens() {
		return "open"
	}
	return "close"
}

// String returns e.g. "openLeftFront".
func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return "unknown"
	}
	return a.verb() + a.Slot().String()
}

// ButtonID returns the control identifier, e.g. "openLeftFrontDoorButton".
func (a Action) ButtonID() string {
	return a.String() + "DoorButton"
}

// Key returns the digit key bound to the action.
func (a Action) Key() rune {
	return rune('1' + int(a))
}

// Label returns a short caption for on-screen buttons.
func (a Action) Label() string {
	names := [...]string{"Front left", "Front right", "Rear left", "Rear right"}
	verb := "Open"
	if !a.Opens() {
		verb = "Close"
	}
	return verb + " " + names[a.Slot()]
}

// ActionForKey maps digit keys '1'..'8' to actions.
func ActionForKey(r rune) (Action, bool) {
	if r < '1' || r > '8' {
		return 0, false
	}
	return Action(r - '1'), true
}

// ActionForButton maps a button identifier to its action.
func ActionForButton(id string) (Action, bool) {
	for _, a := range Actions {
		if a.ButtonID() == id {
			return a, true
		}
	}
	return 0, false
}
