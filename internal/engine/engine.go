// procalc — a scientific calculator for the terminal and the web
// Copyright (c) 2025 Khwahish Sharma (aka 0xRootAnon)
//
// Licensed under the GNU General Public License v3.0 or later (GPLv3+).
// You may obtain a copy of the License at
// https://www.gnu.org/licenses/gpl-3.0.html
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.

package engine

import (
	"log"
	"strings"

	"github.com/akashbangaru2005/pro-math-calculator/internal/calc"
	"github.com/akashbangaru2005/pro-math-calculator/internal/commands"
	"github.com/akashbangaru2005/pro-math-calculator/internal/store"
)

// Reply is what the front end shows after one Enter.
type Reply struct {
	Echo    string // the evaluated input followed by " ="
	Display string // replaces the input line when non-empty
	Output  string // printed below the display
	Failed  bool

	expr string // set when the reply should be recorded
}

type Engine struct {
	calc    *calc.Engine
	history store.Recorder
	limit   int
	dataDir string
	MsgChan chan string
}

func NewEngine(c *calc.Engine, h store.Recorder, limit int, dataDir string, ch chan string) *Engine {
	if limit <= 0 {
		limit = 20
	}
	return &Engine{calc: c, history: h, limit: limit, dataDir: dataDir, MsgChan: ch}
}

// Execute evaluates the input line, or runs it as a command when it starts
// with ':'. Evaluation does not touch history; pass the reply to Save.
func (e *Engine) Execute(raw string) Reply {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Reply{}
	}
	if strings.HasPrefix(raw, ":") {
		return Reply{Output: e.command(raw[1:])}
	}

	v, err := e.calc.Calculate(raw)
	if err != nil {
		return Reply{Display: "Error", Failed: true}
	}
	out := calc.FormatResult(v)
	return Reply{Echo: raw + " =", Display: out, expr: raw}
}

// Save records a successful evaluation. With a remote recorder it blocks on
// the network, so front ends call it off their event loop.
func (e *Engine) Save(r Reply) error {
	if e.history == nil || r.expr == "" {
		return nil
	}
	if err := e.history.SaveHistory(r.expr, r.Display); err != nil {
		log.Printf("history save: %v", err)
		return err
	}
	return nil
}

// Recent returns the history window, newest first.
func (e *Engine) Recent() ([]store.HistoryEntry, error) {
	if e.history == nil {
		return nil, nil
	}
	return e.history.ListHistory(e.limit)
}

func (e *Engine) command(line string) string {
	parts := splitArgs(line)
	if len(parts) == 0 {
		return "Unknown command. Try ':help'."
	}
	verb := strings.ToLower(parts[0])
	args := parts[1:]

	switch verb {
	case "calc", "eval":
		return commands.CmdCalc(e.calc, args)
	case "solve", "linear":
		return commands.CmdSolve(args)
	case "quad", "quadratic":
		return commands.CmdQuad(args)
	case "matrix", "mat":
		return commands.CmdMatrix(args)
	case "interest":
		return commands.CmdInterest(args)
	case "history":
		h, err := e.Recent()
		if err != nil {
			return "history: " + err.Error()
		}
		return commands.FormatHistory(h)
	case "export":
		h, err := e.Recent()
		if err != nil {
			return "export: " + err.Error()
		}
		if e.MsgChan != nil {
			qargs := append([]string(nil), args...)
			go func(a []string) {
				e.MsgChan <- commands.CmdExport(h, a, e.dataDir)
			}(qargs)
			return "Exporting history..."
		}
		return commands.CmdExport(h, args, e.dataDir)
	case "clear":
		c, ok := e.history.(interface{ ClearHistory() error })
		if !ok {
			return "clear: history is not stored locally"
		}
		if err := c.ClearHistory(); err != nil {
			return "clear: " + err.Error()
		}
		return "History cleared."
	case "help":
		return helpText()
	default:
		return "Unknown command. Try ':help'."
	}
}

func helpText() string {
	return `procalc help
Keys:
  Enter                    Evaluate the display
  Esc                      Clear
  Ctrl+P                   Insert π
  Alt+P / Alt+M            M+ / M- (add or subtract the display)
  Alt+R / Alt+C            MR / MC (recall or clear memory)
  Ctrl+C                   Quit
Functions: sin cos tan asin acos atan (degrees), log, sqrt, n!, pi, ** or ^, %
Commands:
  :calc <expr>             Evaluate without touching the display
  :solve <equation>        Linear equation in x, e.g. :solve 2x+3=7
  :quad <a> <b> <c>        Roots of ax²+bx+c
  :matrix add|mul a11 a12 a21 a22 b11 b12 b21 b22
  :interest simple|compound <principal> <rate%> <years> [times/year]
  :history                 Recent results
  :export [file]           Write history as CSV and open it
  :clear                   Forget history
  :help
`
}

func splitArgs(s string) []string {
	var out []string
	var cur strings.Builder
	inQuote := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' {
			inQuote = !inQuote
			continue
		}
		if c == ' ' && !inQuote {
			if cur.Len() > 0 {
				out = append(out, cur.String())
				cur.Reset()
			}
			continue
		}
		cur.WriteByte(c)
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out
}
