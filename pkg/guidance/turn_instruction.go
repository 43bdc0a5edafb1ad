package guidance

type TurnType uint8

const (
	TurnTypeInvalid TurnType = iota
	TurnTypeNewName           // no turn, but street name changes
	TurnTypeContinue          // remain on the same street
	TurnTypeTurn
	TurnTypeMerge
	TurnTypeOnRamp
	TurnTypeOffRamp
	TurnTypeFork
	TurnTypeEndOfRoad
	TurnTypeEnterRoundabout
	TurnTypeEnterAndExitRoundabout
	TurnTypeEnterRotary
	TurnTypeEnterAndExitRotary
	TurnTypeEnterRoundaboutIntersection
	TurnTypeEnterAndExitRoundaboutIntersection
	TurnTypeEnterRoundaboutAtExit
	TurnTypeExitRoundabout
	TurnTypeEnterRotaryAtExit
	TurnTypeExitRotary
	TurnTypeEnterRoundaboutIntersectionAtExit
	TurnTypeExitRoundaboutIntersection
	TurnTypeStayOnRoundabout
	TurnTypeSuppressed // turn exists but needs no narration
	TurnTypeNoTurn
)

func (t TurnType) String() string {
	return [...]string{"invalid", "new name", "continue", "turn", "merge", "on ramp", "off ramp",
		"fork", "end of road", "enter roundabout", "enter and exit roundabout", "enter rotary",
		"enter and exit rotary", "enter roundabout intersection",
		"enter and exit roundabout intersection", "enter roundabout at exit", "exit roundabout",
		"enter rotary at exit", "exit rotary", "enter roundabout intersection at exit",
		"exit roundabout intersection", "stay on roundabout", "suppressed", "no turn"}[t]
}

type DirectionModifier uint8

const (
	DirectionModifierUTurn DirectionModifier = iota
	DirectionModifierSharpRight
	DirectionModifierRight
	DirectionModifierSlightRight
	DirectionModifierStraight
	DirectionModifierSlightLeft
	DirectionModifierLeft
	DirectionModifierSharpLeft
	MaxDirectionModifier
)

func (d DirectionModifier) String() string {
	return [...]string{"uturn", "sharp right", "right", "slight right", "straight",
		"slight left", "left", "sharp left", "invalid"}[d]
}

type RoundaboutType uint8

const (
	RoundaboutTypeNone RoundaboutType = iota
	RoundaboutTypeRoundabout
	RoundaboutTypeRotary
	RoundaboutTypeRoundaboutIntersection
)

// TurnInstruction is the classified outcome for one candidate road: a coarse
// turn kind plus a directional modifier derived from the turn angle.
type TurnInstruction struct {
	Type              TurnType
	DirectionModifier DirectionModifier
}

func NoTurn() TurnInstruction {
	return TurnInstruction{TurnTypeNoTurn, DirectionModifierUTurn}
}

func InvalidTurn() TurnInstruction {
	return TurnInstruction{TurnTypeInvalid, DirectionModifierUTurn}
}

func SuppressedTurn(dir DirectionModifier) TurnInstruction {
	return TurnInstruction{TurnTypeSuppressed, dir}
}

func EnterRoundabout(rt RoundaboutType, dir DirectionModifier) TurnInstruction {
	switch rt {
	case RoundaboutTypeRotary:
		return TurnInstruction{TurnTypeEnterRotary, dir}
	case RoundaboutTypeRoundaboutIntersection:
		return TurnInstruction{TurnTypeEnterRoundaboutIntersection, dir}
	default:
		return TurnInstruction{TurnTypeEnterRoundabout, dir}
	}
}

func EnterRoundaboutAtExit(rt RoundaboutType, dir DirectionModifier) TurnInstruction {
	switch rt {
	case RoundaboutTypeRotary:
		return TurnInstruction{TurnTypeEnterRotaryAtExit, dir}
	case RoundaboutTypeRoundaboutIntersection:
		return TurnInstruction{TurnTypeEnterRoundaboutIntersectionAtExit, dir}
	default:
		return TurnInstruction{TurnTypeEnterRoundaboutAtExit, dir}
	}
}

func EnterAndExitRoundabout(rt RoundaboutType, dir DirectionModifier) TurnInstruction {
	switch rt {
	case RoundaboutTypeRotary:
		return TurnInstruction{TurnTypeEnterAndExitRotary, dir}
	case RoundaboutTypeRoundaboutIntersection:
		return TurnInstruction{TurnTypeEnterAndExitRoundaboutIntersection, dir}
	default:
		return TurnInstruction{TurnTypeEnterAndExitRoundabout, dir}
	}
}

func ExitRoundabout(rt RoundaboutType, dir DirectionModifier) TurnInstruction {
	switch rt {
	case RoundaboutTypeRotary:
		return TurnInstruction{TurnTypeExitRotary, dir}
	case RoundaboutTypeRoundaboutIntersection:
		return TurnInstruction{TurnTypeExitRoundaboutIntersection, dir}
	default:
		return TurnInstruction{TurnTypeExitRoundabout, dir}
	}
}

func RemainOnRoundabout(rt RoundaboutType, dir DirectionModifier) TurnInstruction {
	return TurnInstruction{TurnTypeStayOnRoundabout, dir}
}

// EntersRoundabout reports whether the instruction puts the driver onto a
// roundabout or rotary.
func EntersRoundabout(instruction TurnInstruction) bool {
	switch instruction.Type {
	case TurnTypeEnterRoundabout, TurnTypeEnterRotary, TurnTypeEnterRoundaboutIntersection,
		TurnTypeEnterRoundaboutAtExit, TurnTypeEnterRotaryAtExit,
		TurnTypeEnterRoundaboutIntersectionAtExit, TurnTypeEnterAndExitRoundabout,
		TurnTypeEnterAndExitRotary, TurnTypeEnterAndExitRoundaboutIntersection:
		return true
	}
	return false
}

// LeavesRoundabout reports whether the instruction takes the driver off a
// roundabout or rotary.
func LeavesRoundabout(instruction TurnInstruction) bool {
	switch instruction.Type {
	case TurnTypeExitRoundabout, TurnTypeExitRotary, TurnTypeExitRoundaboutIntersection,
		TurnTypeEnterAndExitRoundabout, TurnTypeEnterAndExitRotary,
		TurnTypeEnterAndExitRoundaboutIntersection:
		return true
	}
	return false
}

// IsSilent reports whether the instruction should not be narrated as a turn.
func (ti TurnInstruction) IsSilent() bool {
	return ti.Type == TurnTypeNoTurn || ti.Type == TurnTypeSuppressed ||
		ti.Type == TurnTypeStayOnRoundabout || ti.Type == TurnTypeInvalid
}
