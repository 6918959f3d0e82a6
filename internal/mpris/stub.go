//go:build !linux

package mpris

// Adapter is a no-op on non-Linux platforms.
type Adapter struct{}

// New returns a no-op adapter on non-Linux platforms.
func New(_ Status, _ Options) (*Adapter, error) {
	return &Adapter{}, nil
}

// Commands returns nil; no requests ever arrive.
func (a *Adapter) Commands() <-chan Command {
	return nil
}

// SetTrack is a no-op on non-Linux platforms.
func (a *Adapter) SetTrack(_ *Track) {}

// Close is a no-op on non-Linux platforms.
func (a *Adapter) Close() error {
	return nil
}
