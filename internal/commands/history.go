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

package commands

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/akashbangaru2005/pro-math-calculator/internal/store"
)

const exportName = "history.csv"

// FormatHistory renders entries one per line, oldest at the bottom as they
// arrive from the store.
func FormatHistory(entries []store.HistoryEntry) string {
	if len(entries) == 0 {
		return "history: empty"
	}
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s = %s", sanitizeOutput(e.Expression), sanitizeOutput(e.Result))
	}
	return b.String()
}

func writeCSV(path string, entries []store.HistoryEntry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	_ = w.Write([]string{"date", "expression", "result"})
	for _, e := range entries {
		_ = w.Write([]string{e.Date.Format(time.RFC3339), e.Expression, e.Result})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// CmdExport writes entries as CSV and opens the file. The target is
// args[0] when given, otherwise history.csv under dir. A trailing
// --no-open skips opening.
func CmdExport(entries []store.HistoryEntry, args []string, dir string) string {
	target := filepath.Join(dir, exportName)
	noOpen := false
	for _, a := range args {
		if a == "--no-open" {
			noOpen = true
			continue
		}
		target = expandPath(a)
	}
	if err := writeCSV(target, entries); err != nil {
		return "export error: " + err.Error()
	}
	msg := fmt.Sprintf("Exported %d entries to %s", len(entries), target)
	if noOpen {
		return msg
	}
	if err := openFile(target); err != nil {
		return msg + " (open failed: " + err.Error() + ")"
	}
	return msg
}
