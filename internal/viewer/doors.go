// Package viewer is the car viewer controller: it classifies door parts of
// the loaded model, animates them on command and manages the environment.
package viewer

import (
	"strings"
	"unicode"

	"github.com/chewxy/math32"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/Faultbox/showroom/internal/model"
)

// Slot is a semantic door position.
type Slot int

const (
	LeftFront Slot = iota
	RightFront
	LeftRear
	RightRear

	slotCount
)

// Slots lists every slot in display order.
var Slots = [slotCount]Slot{LeftFront, RightFront, LeftRear, RightRear}

func (s Slot) String() string {
	switch s {
	case LeftFront:
		return "LeftFront"
	case RightFront:
		return "RightFront"
	case LeftRear:
		return "LeftRear"
	case RightRear:
		return "RightRear"
	default:
		return "Slot(?)"
	}
}

// Side is the door side a rule requires.
type Side int

const (
	Left Side = iota
	Right
)

// Vocabulary lists the label substrings that classify a part.
type Vocabulary struct {
	Door  []string
	Left  []string
	Right []string
	Rear  []string
}

// DefaultVocabulary covers the Spanish and English part names seen in car
// models. "erecha" catches labels whose "derecha" lost its leading d.
var DefaultVocabulary = Vocabulary{
	Door:  []string{"puerta", "door"},
	Left:  []string{"izquierda", "izq", "left"},
	Right: []string{"der", "erecha", "right"},
	Rear:  []string{"tras", "rear", "back"},
}

// DoorRule binds labels matching Side/Rear to Slot and carries the
// slot's animation parameters.
type DoorRule struct {
	Slot       Slot
	Side       Side
	Rear       bool
	Axis       model.Axis
	OpenAngle  float32
	CloseAngle float32
}

// DoorTable is evaluated in order; rear rules come first so a rear label
// is never taken for a front door.
type DoorTable struct {
	Vocabulary Vocabulary
	Rules      []DoorRule
}

// DefaultDoorTable returns the standard classification table.
func DefaultDoorTable() DoorTable {
	return DoorTable{
		Vocabulary: DefaultVocabulary,
		Rules: []DoorRule{
			{Slot: LeftRear, Side: Left, Rear: true, Axis: model.AxisZ, OpenAngle: math32.Pi / 4},
			{Slot: RightRear, Side: Right, Rear: true, Axis: model.AxisZ, OpenAngle: -math32.Pi / 4},
			{Slot: LeftFront, Side: Left, Axis: model.AxisY, OpenAngle: math32.Pi / 3},
			{Slot: RightFront, Side: Right, Axis: model.AxisY, OpenAngle: -math32.Pi / 3},
		},
	}
}

// Rule returns the rule for slot.
func (t DoorTable) Rule(slot Slot) (DoorRule, bool) {
	for _, r := range t.Rules {
		if r.Slot == slot {
			return r, true
		}
	}
	return DoorRule{}, false
}

// Match returns the first rule label satisfies.
func (t DoorTable) Match(label string) (DoorRule, bool) {
	l := foldLabel(label)
	v := t.Vocabulary
	if !containsAny(l, v.Door) {
		return DoorRule{}, false
	}

	left := containsAny(l, v.Left)
	right := containsAny(l, v.Right)
	rear := containsAny(l, v.Rear)

	for _, r := range t.Rules {
		if r.Rear != rear {
			continue
		}
		if (r.Side == Left && left) || (r.Side == Right && right) {
			return r, true
		}
	}
	return DoorRule{}, false
}

// foldLabel lower-cases and strips accents so "Puerta-Izquierda" and
// "puerta_izquierda" compare equal to "puerta izquierda".
func foldLabel(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC, cases.Lower(language.Und))
	out, _, err := transform.String(t, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// Doors holds at most one node per slot. A nil entry is unbound.
type Doors [slotCount]*model.Node

// Get returns the node bound to slot, or nil.
func (d Doors) Get(s Slot) *model.Node {
	if s < 0 || s >= slotCount {
		return nil
	}
	return d[s]
}

// Bound returns how many slots are bound.
func (d Doors) Bound() int {
	n := 0
	for _, node := range d {
		if node != nil {
			n++
		}
	}
	return n
}

// Classify walks the model and binds door parts to slots. The first part
// matching a slot wins; later candidates are logged and ignored.
func Classify(root *model.Node, table DoorTable, log *zap.Logger) Doors {
	var doors Doors
	if root == nil {
		return doors
	}

	root.Walk(func(n *model.Node) {
		if n.Name == "" {
			return
		}
		rule, ok := table.Match(n.Name)
		if !ok {
			return
		}
		if cur := doors[rule.Slot]; cur != nil {
			log.Debug("door slot already bound",
				zap.String("slot", rule.Slot.String()),
				zap.String("bound", cur.Name),
				zap.String("ignored", n.Name))
			return
		}
		doors[rule.Slot] = n
		log.Info("door bound", zap.String("slot", rule.Slot.String()), zap.String("node", n.Name))
	})

	for _, s := range Slots {
		if doors[s] == nil {
			log.Warn("door slot unbound", zap.String("slot", s.String()))
		}
	}
	return doors
}
