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
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/skratchdot/open-golang/open"
)

func expandPath(p string) string {
	if p == "" {
		return p
	}
	if p == "~" {
		if h, err := os.UserHomeDir(); err == nil {
			return h
		}
		return p
	}
	if strings.HasPrefix(p, "~/") || strings.HasPrefix(p, `~\`) {
		if h, err := os.UserHomeDir(); err == nil {
			return filepath.Join(h, p[2:])
		}
	}
	return p
}

// RunOpen hands target to the desktop's default handler.
func RunOpen(target string) error {
	if err := open.Run(target); err == nil {
		return nil
	}

	if runtime.GOOS == "windows" {
		cmd := exec.Command("cmd", "/C", "start", "", target)
		return cmd.Start()
	}
	if runtime.GOOS == "darwin" {
		cmd := exec.Command("open", target)
		return cmd.Start()
	}
	cmd := exec.Command("xdg-open", target)
	return cmd.Start()
}

// replaced in tests
var openFile = RunOpen
