package value

// Flow tells the executor how to proceed after a statement
type Flow int

const (
	// Continue runs the next statement
	Continue Flow = iota
	// Return unwinds to the program root carrying a value
	Return
	// Stop unwinds to the program root without a value
	Stop
)

func (f Flow) String() string {
	switch f {
	case Continue:
		return "continue"
	case Return:
		return "return"
	case Stop:
		return "stop"
	default:
		return "unknown"
	}
}

// Control is the result of executing a statement
type Control struct {
	Flow  Flow
	Value Value
}

// Next is the control result of a statement that completed normally
var Next = Control{Flow: Continue}

// Returning builds a Return result
func Returning(v Value) Control { return Control{Flow: Return, Value: v} }

// Halted is the Stop result
var Halted = Control{Flow: Stop}

// Done reports whether execution must unwind
func (c Control) Done() bool { return c.Flow != Continue }
