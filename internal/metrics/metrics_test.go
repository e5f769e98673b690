package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fsdevblog/usdt-exchange/internal/domain"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
)

type MetricsTestSuite struct {
	suite.Suite
	m *Metrics
}

func TestMetricsSuite(t *testing.T) {
	suite.Run(t, new(MetricsTestSuite))
}

func (s *MetricsTestSuite) SetupTest() {
	s.m = New()
}

func (s *MetricsTestSuite) TestObserveFetch() {
	s.m.ObserveFetch(domain.PairUSDTIRR, "ok")
	s.m.ObserveFetch(domain.PairUSDTIRR, "ok")
	s.m.ObserveFetch(domain.PairUSDTIRR, "unavailable")

	s.InDelta(2, testutil.ToFloat64(s.m.priceFetches.WithLabelValues("USDT/IRR", "ok")), 0)
	s.InDelta(1, testutil.ToFloat64(s.m.priceFetches.WithLabelValues("USDT/IRR", "unavailable")), 0)
}

func (s *MetricsTestSuite) TestHandler() {
	s.m.ObserveRequest(http.MethodGet, "/api/price", http.StatusOK, 15*time.Millisecond)

	rec := httptest.NewRecorder()
	s.m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	s.Equal(http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	s.Require().NoError(err)
	s.Contains(string(body), `exchange_http_requests_total{method="GET",route="/api/price",status="200"} 1`)
	s.Contains(string(body), "exchange_http_request_duration_seconds_bucket")
}
