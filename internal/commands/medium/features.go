package mediumcmd

// FeatureGates exposes runtime toggles consulted by the handlers.
type FeatureGates struct {
	ImportEnabled func() bool
}

func (g FeatureGates) importEnabled() bool {
	if g.ImportEnabled == nil {
		return true
	}
	return g.ImportEnabled()
}
