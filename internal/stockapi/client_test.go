package stockapi_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"stockdash/internal/stockapi"
)

// jsonResponse builds a response whose body is v encoded as JSON.
func jsonResponse(t *testing.T, status int, v any) *http.Response {
	t.Helper()
	buffer := &bytes.Buffer{}
	require.NoError(t, json.NewEncoder(buffer).Encode(v))
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(buffer),
	}
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	// Assert: a client with no options should be usable.
	client := stockapi.New()
	require.NotNil(t, client)
}

func TestWithBaseURL(t *testing.T) {
	t.Parallel()

	// Arrange: create a mock controller
	ctrl := gomock.NewController(t)

	// Arrange: create a mock http client
	httpClient := NewMockHTTPClient(ctrl)

	// Arrange: define a base url with a trailing slash
	baseURL := "http://localhost:8080"

	// Assert: the request should go to the base url without a doubled slash
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equal(t, baseURL+"/api/stocks/AAPL", req.URL.String())
			return jsonResponse(t, http.StatusOK, map[string]any{"price": 1}), nil
		}).
		Times(1)

	client := stockapi.New(stockapi.WithHTTPClient(httpClient), stockapi.WithBaseURL(baseURL+"/"))

	// Act
	_, err := client.Price(t.Context(), "AAPL")
	require.NoError(t, err)
}

func TestWithHeader(t *testing.T) {
	t.Parallel()

	// Arrange: create a mock controller
	ctrl := gomock.NewController(t)

	// Arrange: create a mock http client
	httpClient := NewMockHTTPClient(ctrl)

	// Assert: the custom header should be forwarded
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equal(t, "bar", req.Header.Get("foo"))
			require.Equal(t, "application/json", req.Header.Get("Accept"))
			return jsonResponse(t, http.StatusOK, map[string]any{"price": 1}), nil
		}).
		Times(1)

	client := stockapi.New(stockapi.WithHTTPClient(httpClient), stockapi.WithHeader(http.Header{
		"foo": []string{"bar"},
	}))

	// Act
	_, err := client.Price(t.Context(), "AAPL")
	require.NoError(t, err)
}

func TestAPIError_UsesBackendMessage(t *testing.T) {
	t.Parallel()

	// Arrange: create a mock controller
	ctrl := gomock.NewController(t)

	// Arrange: the backend answers 404 with its usual error payload
	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().
		Do(gomock.Any()).
		Return(jsonResponse(t, http.StatusNotFound, map[string]any{"error": "Stock not found"}), nil).
		Times(1)

	client := stockapi.New(stockapi.WithHTTPClient(httpClient))

	// Act
	_, err := client.Average(t.Context(), "ZZZZ", "30")

	// Assert: the error should carry status and message
	var apiErr *stockapi.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	require.Equal(t, "Stock not found", apiErr.Message)
	require.Equal(t, http.MethodGet, apiErr.Method)
	require.True(t, strings.HasPrefix(apiErr.Path, "/api/average/ZZZZ"))
}

func TestAPIError_RawBody(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().
		Do(gomock.Any()).
		Return(&http.Response{
			StatusCode: http.StatusBadGateway,
			Body:       io.NopCloser(strings.NewReader("upstream down\n")),
		}, nil).
		Times(1)

	client := stockapi.New(stockapi.WithHTTPClient(httpClient))

	_, err := client.Price(t.Context(), "AAPL")

	var apiErr *stockapi.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "upstream down", apiErr.Message)
}
