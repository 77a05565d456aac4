//go:build !windows
// +build !windows

package sound

import "github.com/akashbangaru2005/pro-math-calculator/internal/audio"

// Without a tone generator only errors are signalled, with the terminal bell.

type SoundManager struct {
	disabled bool
	bell     *audio.Bell
}

func New(sampleRate int) (*SoundManager, error) {
	return &SoundManager{bell: audio.NewBell(nil), disabled: systemMuted()}, nil
}

func (sm *SoundManager) SetDisabled(d bool) { sm.disabled = d }

func (sm *SoundManager) PlayEvent(evt string) {
	if sm == nil || sm.disabled {
		return
	}
	if evt == Error {
		sm.bell.Ring()
	}
}
