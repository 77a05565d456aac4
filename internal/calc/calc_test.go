package calc_test

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/akashbangaru2005/pro-math-calculator/internal/calc"
)

func pipeline(raw string) (float64, error) {
	return calc.Evaluate(calc.Rewrite(calc.Normalize(raw)))
}

func near(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return a == b
	}
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Abs(b))
}

var evalCases = []struct {
	in   string
	want float64
}{
	{"2+3*4", 14},
	{"sqrt(16)", 4},
	{"log(100)", 2},
	{"(2+3", 5},
	{"1/0", math.Inf(1)},
	{"-1/0", math.Inf(-1)},
	{"0/0", math.NaN()},
	{"2^3^2", 512},
	{"-2^2", -4},
	{"05+010", 15},
	{"007.5", 7.5},
	{"2^-1", 0.5},
	{"(-2)^2", 4},
	{"5!", 120},
	{"0!", 1},
	{"3!^2", 36},
	{"-3!", -6},
	{"(2+1)!", 6},
	{"10%4", 2},
	{"-7%3", -1},
	{"π", math.Pi},
	{"2×3÷4", 1.5},
	{"1.5e3+.5", 1500.5},
	{" 7 - 2 - 1 ", 4},
	{"8/2/2", 2},
	{"sin(30)", 0.5},
	{"cos(60)", 0.5},
	{"tan(45)", 1},
	{"asin(1)", 90},
	{"acos(0)", 90},
	{"atan(1)", 45},
	{"sin(cos(0)*90)", 1},
	{"sqrt(sqrt(16))", 2},
	{"log(sqrt(100)", 1},
	{"sqrt(-1)", math.NaN()},
	{"(0-3)!", math.NaN()},
}

func TestPipeline(t *testing.T) {
	for _, c := range evalCases {
		got, err := pipeline(c.in)
		if err != nil {
			t.Errorf("%q: unexpected error %v", c.in, err)
			continue
		}
		if !near(got, c.want) {
			t.Errorf("%q: want %v, got %v", c.in, c.want, got)
		}
	}
}

func TestCalculate_MatchesStagedPipeline(t *testing.T) {
	for _, c := range evalCases {
		staged, err1 := pipeline(c.in)
		direct, err2 := calc.Calculate(c.in)
		if (err1 == nil) != (err2 == nil) {
			t.Errorf("%q: staged err %v, direct err %v", c.in, err1, err2)
			continue
		}
		if !near(staged, direct) {
			t.Errorf("%q: staged %v, direct %v", c.in, staged, direct)
		}
	}
}

func TestPipeline_Failures(t *testing.T) {
	for _, in := range []string{
		"foo(1)",
		"",
		"   ",
		"2+",
		"*2",
		")",
		"2+3)",
		")(",
		"2π",
		"2(3)",
		"1.2.3",
		".",
		"sin 30",
		"sin()",
		"pi(2)",
		"2$3",
		"1e",
		"√4",
	} {
		if v, err := pipeline(in); err == nil {
			t.Errorf("%q: want failure, got %v", in, v)
		} else if !errors.Is(err, calc.ErrFailure) {
			t.Errorf("%q: error %v does not match ErrFailure", in, err)
		}
		if _, err := calc.Calculate(in); !errors.Is(err, calc.ErrFailure) {
			t.Errorf("Calculate(%q): want ErrFailure, got %v", in, err)
		}
	}
}

func TestCalculate_RejectsPrimitiveNames(t *testing.T) {
	for _, in := range []string{"rsin(1)", "fact(3)", "log10(100)", "ratan(1)"} {
		if _, err := calc.Calculate(in); err == nil {
			t.Errorf("%q: primitives must not be callable from keypad input", in)
		}
	}
}

func TestEvaluate_PrimitiveGrammarOnly(t *testing.T) {
	if v, err := calc.Evaluate("fact(5)+log10(1000)"); err != nil || v != 123 {
		t.Errorf("want 123, got %v (%v)", v, err)
	}
	for _, in := range []string{"sin(30)", "5!", "log(10)", "2^2"} {
		if _, err := calc.Evaluate(in); err == nil {
			t.Errorf("Evaluate(%q): want failure", in)
		}
	}
}

func TestRewrite_Forms(t *testing.T) {
	cases := []struct{ in, want string }{
		{"sin(30)", "rsin(30*pi/180)"},
		{"cos(1+2)", "rcos((1+2)*pi/180)"},
		{"asin(0.5)", "rasin(0.5)*180/pi"},
		{"2*atan(1)", "2*(ratan(1)*180/pi)"},
		{"5!", "fact(5)"},
		{"(1+2)!", "fact(1+2)"},
		{"log(100)+sqrt(16)", "log10(100)+sqrt(16)"},
		{"sin(30)+sin(60)", "rsin(30*pi/180)+rsin(60*pi/180)"},
		{"sin(cos(0))", "rsin(rcos(0*pi/180)*pi/180)"},
		{"-2**2", "-(2**2)"},
		{"(-2)**2", "(-2)**2"},
		{"2**3**2", "2**3**2"},
		{"(2**3)**2", "(2**3)**2"},
		{"1-(2-3)", "1-(2-3)"},
		{"1-2-3", "1-2-3"},
		{"foo(1)", "foo(1)"},
		{"2+", "2+"},
	}
	for _, c := range cases {
		if got := calc.Rewrite(c.in); got != c.want {
			t.Errorf("Rewrite(%q): want %q, got %q", c.in, c.want, got)
		}
	}
}

func TestFact(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0, 1},
		{1, 1},
		{5, 120},
		{4.7, 24},
		{10, 3628800},
		{171, math.Inf(1)},
		{1e18, math.Inf(1)},
		{-3, math.NaN()},
		{-0.5, math.NaN()},
	}
	for _, c := range cases {
		if got := calc.Fact(c.in); !near(got, c.want) {
			t.Errorf("Fact(%v): want %v, got %v", c.in, c.want, got)
		}
	}
	if v := calc.Fact(170); math.IsInf(v, 0) {
		t.Errorf("Fact(170) should be finite")
	}
}

func TestDegreeRoundTrip(t *testing.T) {
	for _, x := range []float64{0, 30, 45, 90, -60} {
		got, err := calc.Calculate(fmt.Sprintf("asin(sin(%v))", x))
		if err != nil {
			t.Fatalf("asin(sin(%v)): %v", x, err)
		}
		if !near(got, x) {
			t.Errorf("asin(sin(%v)): want %v, got %v", x, x, got)
		}
	}
	// outside [-90, 90] the inverse lands back in range
	got, _ := calc.Calculate("asin(sin(180))")
	if math.Abs(got) > 1e-9 {
		t.Errorf("asin(sin(180)): want ~0, got %v", got)
	}
}

func TestEngine_Limits(t *testing.T) {
	short := calc.New(calc.Limits{MaxLength: 10})
	if _, err := short.Calculate("1+1+1+1+1+1"); !errors.Is(err, calc.ErrFailure) {
		t.Errorf("want length failure, got %v", err)
	}
	if v, err := short.Calculate("1+1"); err != nil || v != 2 {
		t.Errorf("want 2, got %v (%v)", v, err)
	}

	shallow := calc.New(calc.Limits{MaxDepth: 3})
	_, err := shallow.Calculate("((((1))))")
	var ce *calc.Error
	if !errors.As(err, &ce) || ce.Stage != "limits" {
		t.Errorf("want limits error, got %v", err)
	}
	if v, err := shallow.Calculate("1+2+3+4+5+6+7+8"); err != nil || v != 36 {
		t.Errorf("flat sums should not count as nesting: got %v (%v)", v, err)
	}

	def := calc.New(calc.Limits{})
	if def.Limits() != calc.DefaultLimits {
		t.Errorf("want default limits, got %+v", def.Limits())
	}
}

func TestEngine_StagedPipelineAtLimits(t *testing.T) {
	e := calc.New(calc.Limits{MaxLength: 64, MaxDepth: 8})
	staged := func(raw string) (float64, error) {
		return e.Evaluate(e.Rewrite(calc.Normalize(raw)))
	}

	atLimit := []string{
		strings.Repeat("sin(1)+", 9) + "1",
		"2" + strings.Repeat("!", 63),
		strings.Repeat("2*asin(1)/", 5) + "3+4-5*6-7+8-99",
		strings.Repeat("sin(", 7) + "1" + strings.Repeat(")", 7) + "+" + strings.Repeat("1+", 13) + "1",
	}
	for _, in := range atLimit {
		if len(in) != 64 {
			t.Fatalf("%q is %d long, want 64", in, len(in))
		}
		want, err := e.Calculate(in)
		if err != nil {
			t.Errorf("Calculate(%q): %v", in, err)
			continue
		}
		got, err := staged(in)
		if err != nil || got != want {
			t.Errorf("staged(%q): want %v, got %v (%v)", in, want, got, err)
		}

		over := in + "0"
		if _, err := e.Calculate(over); !errors.Is(err, calc.ErrFailure) {
			t.Errorf("Calculate(%q): want failure past the limit", over)
		}
		if _, err := staged(over); !errors.Is(err, calc.ErrFailure) {
			t.Errorf("staged(%q): want failure past the limit", over)
		}
	}
}

func TestEngine_LongFlatSumSurvivesRewrite(t *testing.T) {
	in := "1"
	for i := 0; i < 500; i++ {
		in += "+1"
	}
	v, err := pipeline(in)
	if err != nil || v != 501 {
		t.Errorf("want 501, got %v (%v)", v, err)
	}
}

func TestCalculate_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				for _, c := range evalCases[:10] {
					got, err := calc.Calculate(c.in)
					if err != nil || !near(got, c.want) {
						select {
						case errs <- fmt.Sprintf("%q: got %v (%v)", c.in, got, err):
						default:
						}
					}
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Error(e)
	}
}
