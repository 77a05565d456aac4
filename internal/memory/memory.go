// Package memory holds the calculator's memory register (M+ M- MR MC).
// A Register belongs to one session; nothing here is global.
package memory

import (
	"math"

	"github.com/akashbangaru2005/pro-math-calculator/internal/calc"
)

type Register struct {
	value float64
}

// operand reads the display the way the keypad does: the leading number,
// or 0 when there is none.
func operand(display string) float64 {
	v := calc.ParseLeading(display)
	if math.IsNaN(v) {
		return 0
	}
	return v
}

func (r *Register) Add(display string) { r.value += operand(display) }
func (r *Register) Sub(display string) { r.value -= operand(display) }
func (r *Register) Clear()             { r.value = 0 }
func (r *Register) Value() float64     { return r.value }

// Recall returns the register formatted for the display.
func (r *Register) Recall() string { return calc.FormatResult(r.value) }

// Active reports whether the register holds something worth showing.
func (r *Register) Active() bool { return r.value != 0 }
