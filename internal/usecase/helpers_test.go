package usecase

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"

	"github.com/naka-gawa/github-profile-report/internal/gateway"
)

// mockGetter is a mock implementation of the gateway.Getter interface.
// It allows us to simulate the GitHub transport without making real API calls.
type mockGetter struct {
	mock.Mock
}

func (m *mockGetter) Get(ctx context.Context, url string, headers http.Header) (*gateway.Page, error) {
	args := m.Called(ctx, url, headers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.Page), args.Error(1)
}

// onGet registers an expected request for url.
func (m *mockGetter) onGet(url string, page *gateway.Page, err error) *mock.Call {
	return m.On("Get", mock.Anything, url, mock.Anything).Return(page, err).Once()
}

func okPage(body, next string) *gateway.Page {
	return &gateway.Page{Status: http.StatusOK, Body: json.RawMessage(body), Next: next}
}

func statusPage(status int) *gateway.Page {
	return &gateway.Page{Status: status}
}

func discardLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
