package health

import "exitplan-backend/internal/advisor"

// Service encapsulates health-related checks.
type Service struct {
	Settings *advisor.Settings
}

// NewService constructs a new health service.
func NewService(settings *advisor.Settings) *Service {
	return &Service{Settings: settings}
}

// Status is the health payload.
type Status struct {
	OK             bool `json:"ok"`
	AdvisorEnabled bool `json:"advisorEnabled"`
}

// Status reports liveness and whether enhancement is currently on.
func (s *Service) Status() Status {
	enabled := false
	if s != nil && s.Settings != nil {
		enabled = s.Settings.Snapshot().Enabled
	}
	return Status{OK: true, AdvisorEnabled: enabled}
}
