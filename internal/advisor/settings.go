package advisor

import "sync"

// Settings is the process-wide holder behind the admin surface. Callers take a
// Snapshot per request and pass it to Enhance; a call in flight keeps the
// snapshot it read even if Configure or Disable runs meanwhile.
type Settings struct {
	mu  sync.RWMutex
	cfg Config
}

// NewSettings seeds the holder. Pass Disabled() for an unconfigured adapter.
func NewSettings(initial Config) *Settings {
	return &Settings{cfg: initial}
}

// Configure replaces the whole configuration and enables the adapter. The prior
// configuration is kept when validation fails.
func (s *Settings) Configure(kind string, opts Options) error {
	cfg, err := NewConfig(kind, opts)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
	return nil
}

// Disable turns enhancement off and drops the provider and credential. Model and
// generation parameters are left as they were.
func (s *Settings) Disable() {
	s.mu.Lock()
	s.cfg.Enabled = false
	s.cfg.Provider = ""
	s.cfg.Credential = ""
	s.mu.Unlock()
}

// Snapshot returns a copy of the current configuration.
func (s *Settings) Snapshot() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Configuration returns the redacted view.
func (s *Settings) Configuration() Redacted {
	return s.Snapshot().Redact()
}
