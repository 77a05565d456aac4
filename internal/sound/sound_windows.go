//go:build windows
// +build windows

package sound

import (
	"sync"
	"syscall"
	"time"
)

// kernel32.Beep is synchronous, so tones are played from goroutines.

type SoundManager struct {
	mu       sync.Mutex
	proc     *syscall.LazyProc
	disabled bool
}

func New(sampleRate int) (*SoundManager, error) {
	kernel := syscall.NewLazyDLL("kernel32.dll")
	proc := kernel.NewProc("Beep")
	return &SoundManager{proc: proc, disabled: systemMuted()}, nil
}

func (sm *SoundManager) SetDisabled(d bool) {
	sm.mu.Lock()
	sm.disabled = d
	sm.mu.Unlock()
}

// PlayEvent plays short tones for events. Non-blocking.
func (sm *SoundManager) PlayEvent(evt string) {
	if sm == nil {
		return
	}
	sm.mu.Lock()
	disabled := sm.disabled
	proc := sm.proc
	sm.mu.Unlock()
	if disabled || proc == nil {
		return
	}

	// run in a goroutine so UI ticks are never blocked
	go func() {
		switch evt {
		case Key:
			callBeep(proc, 1200, 12)
		case Result:
			callBeep(proc, 880, 60)
			time.Sleep(12 * time.Millisecond)
			callBeep(proc, 990, 40)
		case Startup:
			callBeep(proc, 220, 160)
			time.Sleep(28 * time.Millisecond)
			callBeep(proc, 330, 110)
		case Error:
			callBeep(proc, 440, 100)
			time.Sleep(10 * time.Millisecond)
			callBeep(proc, 370, 140)
		}
	}()
}

func callBeep(proc *syscall.LazyProc, freq int, durMs int) {
	// freq range enforced by Windows Beep: 37..32767
	if freq < 37 {
		freq = 37
	}
	if freq > 32767 {
		freq = 32767
	}
	if durMs < 5 {
		durMs = 5
	}
	// ignore return values
	proc.Call(uintptr(freq), uintptr(durMs))
}
