package adapter_test

import (
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/niksmo/catalog/internal/adapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeClientTLSConfig(t *testing.T) {
	t.Run("TrustsGivenCA", func(t *testing.T) {
		s := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("ok"))
		}))
		defer s.Close()

		caFile := filepath.Join(t.TempDir(), "ca.pem")
		certPEM := pem.EncodeToMemory(&pem.Block{
			Type:  "CERTIFICATE",
			Bytes: s.Certificate().Raw,
		})
		require.NoError(t, os.WriteFile(caFile, certPEM, 0o600))

		cfg, err := adapter.MakeClientTLSConfig(caFile)
		require.NoError(t, err)

		client := &http.Client{Transport: &http.Transport{TLSClientConfig: cfg}}
		resp, err := client.Get(s.URL)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := adapter.MakeClientTLSConfig(filepath.Join(t.TempDir(), "absent.pem"))
		assert.Error(t, err)
	})

	t.Run("NotPEM", func(t *testing.T) {
		caFile := filepath.Join(t.TempDir(), "ca.pem")
		require.NoError(t, os.WriteFile(caFile, []byte("not a certificate"), 0o600))

		_, err := adapter.MakeClientTLSConfig(caFile)
		assert.ErrorContains(t, err, "failed to parse CA certificate")
	})
}
