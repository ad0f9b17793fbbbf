package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

// RequestIDTestSuite defines the test suite for request ID middleware
type RequestIDTestSuite struct {
	suite.Suite
	echo *echo.Echo
}

func (s *RequestIDTestSuite) SetupTest() {
	s.echo = echo.New()
}

func TestRequestIDTestSuite(t *testing.T) {
	suite.Run(t, new(RequestIDTestSuite))
}

func (s *RequestIDTestSuite) run(header string) (string, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(TraceIDHeader, header)
	}
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	var seen string
	handler := RequestID()(func(c echo.Context) error {
		seen = GetTraceID(c)
		return c.NoContent(http.StatusOK)
	})

	s.Require().NoError(handler(c))
	return seen, rec
}

func (s *RequestIDTestSuite) TestRequestID_GeneratesUUID() {
	traceID, rec := s.run("")

	s.NotEmpty(traceID)
	s.Equal(traceID, rec.Header().Get(TraceIDHeader))
	_, err := uuid.Parse(traceID)
	s.NoError(err)
}

func (s *RequestIDTestSuite) TestRequestID_UsesExistingTraceID() {
	traceID, rec := s.run("existing-trace-id-12345")

	s.Equal("existing-trace-id-12345", traceID)
	s.Equal("existing-trace-id-12345", rec.Header().Get(TraceIDHeader))
}

func (s *RequestIDTestSuite) TestRequestID_ReplacesOversizedTraceID() {
	oversized := strings.Repeat("a", maxTraceIDLength+1)

	traceID, _ := s.run(oversized)

	s.NotEqual(oversized, traceID)
	_, err := uuid.Parse(traceID)
	s.NoError(err)
}

func (s *RequestIDTestSuite) TestRequestID_UniquePerRequest() {
	first, _ := s.run("")
	second, _ := s.run("")

	s.NotEqual(first, second)
}

func (s *RequestIDTestSuite) TestGetTraceID_ReturnsEmptyWhenNotSet() {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := s.echo.NewContext(req, httptest.NewRecorder())

	s.Empty(GetTraceID(c))

	c.Set(TraceIDContextKey, 42)
	s.Empty(GetTraceID(c))
}
