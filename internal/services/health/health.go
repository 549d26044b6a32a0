package health

// Service encapsulates health-related checks.
type Service struct {
	name string
}

// NewService constructs a new health service.
func NewService(name string) *Service {
	return &Service{name: name}
}

// Status returns a simple liveness payload.
func (s *Service) Status() map[string]string {
	return map[string]string{"status": "healthy", "service": s.name}
}
