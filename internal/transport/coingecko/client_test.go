package coingecko

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ClientTestSuite struct {
	suite.Suite
	server *httptest.Server
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (s *ClientTestSuite) TearDownTest() {
	if s.server != nil {
		s.server.Close()
		s.server = nil
	}
}

// serve поднимает тестовый сервер, отвечающий status и body, и проверяет параметры запроса.
func (s *ClientTestSuite) serve(status int, body string) *HTTPClient {
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Equal(RouteSimplePrice, r.URL.Path)
		s.Equal("tether", r.URL.Query().Get("ids"))
		s.Equal("irr", r.URL.Query().Get("vs_currencies"))
		s.Equal("application/json", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, wErr := w.Write([]byte(body))
		s.NoError(wErr)
	}))
	return New(s.server.URL, time.Second)
}

func (s *ClientTestSuite) TestSimplePrice() {
	cases := []struct {
		name      string
		status    int
		body      string
		wantRate  string
		wantErr   error
		wantCode  int
		wantError bool
	}{
		{
			name:     "integer rate",
			status:   http.StatusOK,
			body:     `{"tether":{"irr":1200000}}`,
			wantRate: "1200000",
		},
		{
			name:     "fractional rate keeps precision",
			status:   http.StatusOK,
			body:     `{"tether":{"irr":1199999.123456789}}`,
			wantRate: "1199999.123456789",
		},
		{
			name:    "missing currency",
			status:  http.StatusOK,
			body:    `{"tether":{"usd":1.0}}`,
			wantErr: ErrRateNotFound,
		},
		{
			name:    "missing asset",
			status:  http.StatusOK,
			body:    `{}`,
			wantErr: ErrRateNotFound,
		},
		{
			name:      "malformed body",
			status:    http.StatusOK,
			body:      `{"tether":`,
			wantError: true,
		},
		{
			name:      "null rate",
			status:    http.StatusOK,
			body:      `{"tether":{"irr":null}}`,
			wantError: true,
		},
		{
			name:     "rate limited",
			status:   http.StatusTooManyRequests,
			body:     `{"status":{"error_code":429}}`,
			wantCode: http.StatusTooManyRequests,
		},
		{
			name:     "server error",
			status:   http.StatusInternalServerError,
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			defer s.TearDownTest()
			c := s.serve(t.status, t.body)

			rate, err := c.SimplePrice(s.T().Context(), "tether", "IRR")

			switch {
			case t.wantCode != 0:
				var codeErr *StatusCodeError
				s.Require().ErrorAs(err, &codeErr)
				s.Equal(t.wantCode, codeErr.Code)
			case t.wantErr != nil:
				s.Require().ErrorIs(err, t.wantErr)
			case t.wantError:
				s.Require().Error(err)
			default:
				s.Require().NoError(err)
				s.True(decimal.RequireFromString(t.wantRate).Equal(rate), "got %s", rate)
			}
		})
	}
}

func (s *ClientTestSuite) TestSimplePrice_Timeout() {
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	c := New(s.server.URL, 50*time.Millisecond)

	_, err := c.SimplePrice(s.T().Context(), "tether", "irr")
	s.Require().Error(err)
}

func (s *ClientTestSuite) TestSimplePrice_ContextCancelled() {
	c := s.serve(http.StatusOK, `{"tether":{"irr":1}}`)
	ctx, cancel := context.WithCancel(s.T().Context())
	cancel()

	_, err := c.SimplePrice(ctx, "tether", "irr")
	s.Require().ErrorIs(err, context.Canceled)
}

func (s *ClientTestSuite) TestNew_Defaults() {
	c := New("", 0)
	s.Equal(DefaultBaseURL, c.baseURL)
	s.Equal(DefaultTimeout, c.httpClient.Timeout)

	c = New("http://example.com/api/", time.Second)
	s.Equal("http://example.com/api", c.baseURL)
}
