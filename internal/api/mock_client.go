package api

import (
	"sync"

	"github.com/diogo/biotutor/internal/models"
)

// MockGateway is a mock implementation of GatewayInterface for testing
type MockGateway struct {
	mu sync.Mutex

	// Mock return values
	Base       string
	AnswerVal  *models.Answer
	QueryErr   error
	ReceiptVal *models.UploadReceipt
	UploadErr  error

	// QueryFunc, when set, takes precedence over AnswerVal/QueryErr
	QueryFunc func(text string) (*models.Answer, error)

	// Call recorders
	Queries     []string
	Uploads     []string
	CloseCalled bool
}

// Ensure MockGateway implements GatewayInterface
var _ GatewayInterface = (*MockGateway)(nil)

func (m *MockGateway) SubmitQuery(text string) (*models.Answer, error) {
	m.mu.Lock()
	m.Queries = append(m.Queries, text)
	fn := m.QueryFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(text)
	}
	return m.AnswerVal, m.QueryErr
}

func (m *MockGateway) SubmitFile(path string) (*models.UploadReceipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Uploads = append(m.Uploads, path)
	return m.ReceiptVal, m.UploadErr
}

func (m *MockGateway) BaseURL() string {
	if m.Base == "" {
		return "http://localhost:8000"
	}
	return m.Base
}

func (m *MockGateway) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CloseCalled = true
}

// QueryCount returns how many queries were submitted
func (m *MockGateway) QueryCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Queries)
}
