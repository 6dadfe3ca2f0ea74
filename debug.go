package picmix

import "time"

// renderStats holds per-render timing. Only collected in debug mode.
type renderStats struct {
	elapsed  time.Duration
	pictures int
	selected int
	mode     Mode
}

// SetDebugMode enables per-render timing stats on the logger.
func (m *Mixer) SetDebugMode(enabled bool) {
	m.debug = enabled
}

// debugLog reports render stats at info level so they show without
// turning on debug logging.
func (m *Mixer) debugLog(s renderStats) {
	if !m.debug {
		return
	}
	m.log.Info("render",
		"elapsed", s.elapsed,
		"pictures", s.pictures,
		"selected", s.selected,
		"mode", s.mode,
		"pixels", m.layers[LayerContent].Image().Bounds().Size(),
	)
}
