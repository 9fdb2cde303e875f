package main

import (
	"fmt"
	"net"
	"net/http"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeResult_CleanStops(t *testing.T) {
	assert.NoError(t, serveResult(nil))
	assert.NoError(t, serveResult(http.ErrServerClosed))
	assert.NoError(t, serveResult(fmt.Errorf("%w: %s", errInterrupted, syscall.SIGTERM)))
}

func TestServeResult_ListenFailure(t *testing.T) {
	taken, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer taken.Close()

	srv := &http.Server{Addr: taken.Addr().String()}
	listenErr := srv.ListenAndServe()
	require.Error(t, listenErr)

	err = serveResult(listenErr)
	require.Error(t, err)
	assert.ErrorIs(t, err, listenErr)
	assert.Contains(t, err.Error(), "server stopped")
}
