package moderationhandler

import "sync"

type sentMail struct {
	to      string
	subject string
}

type mailerMock struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *mailerMock) SendEMail(to, subject, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{to: to, subject: subject})
	return nil
}

func (m *mailerMock) recipients() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]string, 0, len(m.sent))
	for _, item := range m.sent {
		result = append(result, item.to)
	}
	return result
}
