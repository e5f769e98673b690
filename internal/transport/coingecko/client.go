// Package coingecko HTTP клиент публичного API CoinGecko для получения курсов.
package coingecko

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	RouteSimplePrice = "/simple/price"

	DefaultBaseURL = "https://api.coingecko.com/api/v3"
	DefaultTimeout = 10 * time.Second
)

// HTTPClient запрашивает курс актива через /simple/price.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// New создает клиент. Пустой baseURL заменяется на DefaultBaseURL, timeout <= 0 на DefaultTimeout.
func New(baseURL string, timeout time.Duration) *HTTPClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SimplePrice возвращает стоимость 1 единицы asset (идентификатор CoinGecko, например "tether") в валюте
// vsCurrency. Ответ вида {"tether":{"irr":1200000}} разбирается без перевода в float.
//
// При ответе со статусом отличным от 2xx возвращает StatusCodeError, при отсутствии курса в ответе ErrRateNotFound.
//
//nolint:nonamedreturns
func (c *HTTPClient) SimplePrice(
	ctx context.Context,
	asset string,
	vsCurrency string,
) (rate decimal.Decimal, err error) {
	vs := strings.ToLower(vsCurrency)

	q := url.Values{}
	q.Set("ids", asset)
	q.Set("vs_currencies", vs)
	reqURL := c.baseURL + RouteSimplePrice + "?" + q.Encode()

	req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if reqErr != nil {
		return decimal.Zero, fmt.Errorf("create request: %s", reqErr.Error())
	}
	req.Header.Set("Accept", "application/json")

	resp, doErr := c.httpClient.Do(req)
	if doErr != nil {
		return decimal.Zero, fmt.Errorf("do request: %w", doErr)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decimal.Zero, NewStatusCodeError(resp.StatusCode)
	}

	body, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return decimal.Zero, fmt.Errorf("read response: %s", readErr.Error())
	}

	var parsed map[string]map[string]json.Number
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if jsonErr := dec.Decode(&parsed); jsonErr != nil {
		return decimal.Zero, fmt.Errorf("parse response: %s", jsonErr.Error())
	}

	raw, ok := parsed[asset][vs]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s/%s", ErrRateNotFound, asset, vs)
	}

	rate, parseErr := decimal.NewFromString(raw.String())
	if parseErr != nil {
		return decimal.Zero, fmt.Errorf("parse rate %q: %s", raw.String(), parseErr.Error())
	}
	return rate, nil
}
