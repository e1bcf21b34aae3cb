package infrastructure

// NoEmail is used when no SMTP server is configured. Mail is silently dropped.
type NoEmail struct {
}

func (s *NoEmail) Send(address, subject, body string) error {
	return nil
}

func (s *NoEmail) From() string {
	return ""
}
