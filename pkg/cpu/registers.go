package cpu

// Registers is the GSX register file. PC is the 32-bit program
// counter, AS and JS are the 8-bit argument- and jump-stack pointers,
// and T, R, Y are the single-precision general registers.
//
// The fields may be read directly; writes go through the Set methods,
// which enforce each register's width: integer registers saturate,
// float registers round to single precision.
type Registers struct {
	PC uint32
	AS uint8
	JS uint8
	T  float32
	R  float32
	Y  float32
}

func (r *Registers) SetPC(v float64) { r.PC = SaturateUint32(v) }
func (r *Registers) SetAS(v float64) { r.AS = SaturateUint8(v) }
func (r *Registers) SetJS(v float64) { r.JS = SaturateUint8(v) }
func (r *Registers) SetT(v float64)  { r.T = RoundFloat32(v) }
func (r *Registers) SetR(v float64)  { r.R = RoundFloat32(v) }
func (r *Registers) SetY(v float64)  { r.Y = RoundFloat32(v) }

// Reset zeroes all six registers.
func (r *Registers) Reset() {
	*r = Registers{}
}
