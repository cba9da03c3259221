package httpserver

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewDefaults(t *testing.T) {
	srv := New(":9090", http.NewServeMux())

	assert.Equal(t, ":9090", srv.Addr)
	assert.NotNil(t, srv.Handler)
	assert.Equal(t, 5*time.Second, srv.ReadHeaderTimeout)
	assert.Greater(t, srv.WriteTimeout, srv.ReadTimeout,
		"password hashing happens between read and write")
}

func TestShutdownIdleServer(t *testing.T) {
	srv := New(":0", http.NewServeMux())
	assert.NoError(t, Shutdown(srv))
}
