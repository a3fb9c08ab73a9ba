package transport

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHTTPTransport_GetSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	tr, err := NewHTTPTransport(WithTimeout(2 * time.Second))
	require.NoError(t, err)

	body, err := tr.Get(t.Context(), srv.URL, nil)
	require.NoError(t, err)
	require.JSONEq(t, `{"ok":true}`, string(body))
}

func TestHTTPTransport_RetriesOn5xx(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	tr, err := NewHTTPTransport(WithMaxRetries(3))
	require.NoError(t, err)

	body, err := tr.Get(t.Context(), srv.URL, nil)
	require.NoError(t, err)
	require.Equal(t, "ok", string(body))
	require.GreaterOrEqual(t, calls, 2)
}

func TestHTTPTransport_ClientErrorIsPermanent(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	tr, err := NewHTTPTransport(WithMaxRetries(5))
	require.NoError(t, err)

	_, err = tr.Get(t.Context(), srv.URL, nil)
	require.Error(t, err)
	require.Equal(t, 1, calls)
}

func TestHTTPTransport_GetBinaryUsesBrowserUA(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("%PDF-1.4 ..."))
	}))
	defer srv.Close()

	tr, err := NewHTTPTransport()
	require.NoError(t, err)

	body, err := tr.GetBinary(t.Context(), srv.URL)
	require.NoError(t, err)
	require.Contains(t, string(body), "%PDF")
	require.Equal(t, browserUserAgent, gotUA)
}
