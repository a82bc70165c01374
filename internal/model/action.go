package model

// Decision names one of the four exit strategies.
// Keep these values stable; they are intended for TSV output.
type Decision string

const (
	DecisionSell6MStay  Decision = "SELL_6M_STAY"
	DecisionSell6MMove  Decision = "SELL_6M_MOVE"
	DecisionHold12MStay Decision = "HOLD_12M_STAY"
	DecisionHold12MMove Decision = "HOLD_12M_MOVE"
)

// Decisions lists every strategy in tie-break priority order: when two totals
// are equal the one listed first wins.
var Decisions = []Decision{
	DecisionSell6MStay,
	DecisionSell6MMove,
	DecisionHold12MStay,
	DecisionHold12MMove,
}

func (d Decision) Moves() bool {
	return d == DecisionSell6MMove || d == DecisionHold12MMove
}

func (d Decision) HoldsLongTerm() bool {
	return d == DecisionHold12MStay || d == DecisionHold12MMove
}

// Priority is the position of d in Decisions, or -1 if d is unknown.
func (d Decision) Priority() int {
	for i, x := range Decisions {
		if x == d {
			return i
		}
	}
	return -1
}
