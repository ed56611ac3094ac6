package machines

// Interrupt is yielded by Run when the program stops without finishing.
type Interrupt struct {
	Break bool
	// PC is the position of the instruction that caused the interrupt
	PC int
}
