package invoice

//go:generate go tool stringer -type=State -trimprefix=State -output=state_string.go

// State tells where the XML of a Document comes from.
type State int

const (
	_ State = iota // zero value is invalid

	StateFresh
	StateBound
)
