package archive

import "time"

// SetNow pins the archive's clock. Test-only.
func (a *Archive) SetNow(f func() time.Time) {
	a.now = f
}
