package sound

import "github.com/itchyny/volume-go"

// systemMuted reports whether the output device is muted. Unknown counts as
// not muted.
func systemMuted() bool {
	muted, err := volume.GetMuted()
	return err == nil && muted
}
