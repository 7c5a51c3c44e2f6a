package server

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestServe(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	grp, ctx := errgroup.WithContext(ctx)

	listener, err := Listen(ctx, "127.0.0.1:0")
	require.NoError(t, err)

	srv := &http.Server{ //nolint:gosec // Serve() sets timeouts
		Handler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}),
	}
	Serve(ctx, grp, srv, listener)

	resp, err := http.Get("http://" + listener.Addr().String())
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, readTimeout, srv.ReadTimeout)

	// Canceling the context shuts the server down cleanly.
	cancel()
	require.NoError(t, grp.Wait())
}
