package define

// Direction is the relationship between the two endpoints of a copy.
type Direction int

const (
	// NoDirection means neither endpoint names a container.
	NoDirection Direction = iota
	// FromContainer copies out of a container onto the host.
	FromContainer
	// ToContainer copies from the host into a container.
	ToContainer
	// AcrossContainers means both endpoints name a container.
	AcrossContainers
)

// DirectionOf derives the direction from whether the source and the
// destination name a container.
func DirectionOf(fromContainer, toContainer bool) Direction {
	switch {
	case fromContainer && toContainer:
		return AcrossContainers
	case fromContainer:
		return FromContainer
	case toContainer:
		return ToContainer
	default:
		return NoDirection
	}
}

func (d Direction) String() string {
	switch d {
	case FromContainer:
		return "from"
	case ToContainer:
		return "to"
	case AcrossContainers:
		return "across"
	default:
		return "none"
	}
}

// Err returns the error for directions that cannot be copied, nil for
// FromContainer and ToContainer.
func (d Direction) Err() error {
	switch d {
	case AcrossContainers:
		return ErrUnsupported
	case NoDirection:
		return ErrNoContainer
	default:
		return nil
	}
}
