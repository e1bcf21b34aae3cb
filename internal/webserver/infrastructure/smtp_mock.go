package infrastructure

import "sync"

// SMTPMock records sent mail. Callers must add to Wg for every mail they
// expect before triggering it.
type SMTPMock struct {
	calledSend bool
	address    string
	subject    string
	body       string
	mu         sync.Mutex
	Wg         sync.WaitGroup
}

func (s *SMTPMock) Send(address, subject, body string) error {
	defer s.Wg.Done()

	s.mu.Lock()
	s.calledSend = true
	s.address = address
	s.subject = subject
	s.body = body
	s.mu.Unlock()
	return nil
}

func (s *SMTPMock) From() string {
	return ""
}

func (s *SMTPMock) CalledSend() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calledSend
}

// Last returns the address, subject and body of the last mail sent
func (s *SMTPMock) Last() (string, string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.address, s.subject, s.body
}
