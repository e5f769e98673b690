package testutils

import (
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/fsdevblog/usdt-exchange/internal/transport/api/middlewares"
)

type RequestOptions struct {
	headers map[string]string
}

type RequestArgs struct {
	Router http.Handler
	Method string
	URL    string
	Body   io.Reader
}

// MakeRequest прогоняет запрос через Router и возвращает записанный ответ.
func MakeRequest(args RequestArgs, opts ...func(*RequestOptions)) *http.Response {
	options := RequestOptions{
		headers: make(map[string]string),
	}
	for _, opt := range opts {
		opt(&options)
	}

	request := httptest.NewRequest(args.Method, args.URL, args.Body)
	for k, v := range options.headers {
		request.Header.Set(k, v)
	}

	recorder := httptest.NewRecorder()
	args.Router.ServeHTTP(recorder, request)

	return recorder.Result()
}

func WithHeader(name, value string) func(*RequestOptions) {
	return func(fn *RequestOptions) {
		fn.headers[name] = value
	}
}

func WithJSON() func(*RequestOptions) {
	return WithHeader("Content-Type", "application/json")
}

// WithExternalUser представляет запрос от пользователя чат-платформы externalID.
func WithExternalUser(externalID string) func(*RequestOptions) {
	return WithHeader(middlewares.ExternalUserIDHeader, externalID)
}

func WithRequestID(requestID string) func(*RequestOptions) {
	return WithHeader(middlewares.RequestIDHeader, requestID)
}
