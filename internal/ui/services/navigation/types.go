package navigation

// Direction represents movement directions
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// Target says where UI focus should land after a navigation step
type Target int

const (
	TargetNone   Target = iota // nothing changed
	TargetInput                // focus returns to the search input
	TargetResult               // a result row takes focus
)

// Outcome is the result of one navigation key
type Outcome struct {
	Target Target
	Index  int    // focused result for TargetResult, -1 otherwise
	URL    string // set when Select picked a result
}

// Handle ties a rendered result row to its position in the result list
type Handle struct {
	Index int // result position
	Row   int // screen row the result starts on
	Rows  int // rendered height
}
