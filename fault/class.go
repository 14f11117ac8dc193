package fault

// Class is the kind of exception taken by the core.
type Class uint32

const (
	HardFault Class = iota
	MemManageFault
	BusFault
	UsageFault

	classLast
)

var classNames = [classLast]string{
	HardFault:      "Hard Fault",
	MemManageFault: "Memory Fault",
	BusFault:       "Bus Fault",
	UsageFault:     "Usage Fault",
}

func (c Class) String() string {
	if c >= classLast {
		return "Invalid Fault"
	}
	return classNames[c]
}

// Reason is the decoded cause of a fault.
type Reason uint32

const (
	Unresolved Reason = iota

	// UsageFault
	DivideByZero
	MisalignedAccess
	UndefinedInstruction

	// BusFault
	InstructionBusError
	DataBusError

	// BusFault and MemManage
	StackingError
	FloatingPointLazyStateError

	// MemManage
	InstructionAddressViolation
	DataAddressViolation

	reasonLast
)

var reasonNames = [reasonLast]string{
	Unresolved:                  "Unknown",
	DivideByZero:                "Division by zero",
	MisalignedAccess:            "Misaligned data access",
	UndefinedInstruction:        "Undefined instruction",
	InstructionBusError:         "Invalid code address",
	DataBusError:                "Invalid data address",
	StackingError:               "Exception stack fault",
	FloatingPointLazyStateError: "Floating point fault",
	InstructionAddressViolation: "Invalid code address",
	DataAddressViolation:        "Invalid data address",
}

func (r Reason) String() string {
	if r >= reasonLast {
		return reasonNames[Unresolved]
	}
	return reasonNames[r]
}
