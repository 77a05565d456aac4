package memory_test

import (
	"testing"

	"github.com/akashbangaru2005/pro-math-calculator/internal/memory"
)

func TestRegister_AddSubRecall(t *testing.T) {
	var m memory.Register
	if m.Active() {
		t.Fatalf("new register should be empty")
	}
	m.Add("12")
	m.Add("3.5")
	m.Sub("0.5")
	if m.Value() != 15 {
		t.Errorf("want 15, got %v", m.Value())
	}
	if got := m.Recall(); got != "15" {
		t.Errorf("want 15, got %s", got)
	}
	if !m.Active() {
		t.Errorf("register should be active")
	}
	m.Clear()
	if m.Value() != 0 || m.Active() {
		t.Errorf("want cleared register, got %v", m.Value())
	}
}

func TestRegister_NonNumericDisplayCountsAsZero(t *testing.T) {
	var m memory.Register
	m.Add("7")
	for _, d := range []string{"Error", "", "sin(30)", "NaN"} {
		m.Add(d)
		m.Sub(d)
	}
	if m.Value() != 7 {
		t.Errorf("want 7, got %v", m.Value())
	}
}

func TestRegister_LeadingNumberOnly(t *testing.T) {
	var m memory.Register
	m.Add("42+8")
	if m.Value() != 42 {
		t.Errorf("want 42, got %v", m.Value())
	}
}

func TestRegister_SessionsAreIndependent(t *testing.T) {
	var a, b memory.Register
	a.Add("5")
	if b.Value() != 0 {
		t.Errorf("registers must not share state, got %v", b.Value())
	}
}
