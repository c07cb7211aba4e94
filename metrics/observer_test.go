package metrics

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alerm-sml/strongswan/loader"
)

func TestObserveUpdatesGauges(t *testing.T) {
	m := NewPluginLoaderMetrics("pluginloader")
	m.Observe("abc-123", loader.Stats{Failed: 2, Depends: 1, Critical: 1}, 5)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	m.Handler().ServeHTTP(rec, req)

	body := rec.Body.String()
	for _, want := range []string{
		`pluginloader_plugin_loader_plugins_loaded{loader_id="abc-123"} 5`,
		`pluginloader_plugin_loader_features_failed{loader_id="abc-123"} 2`,
		`pluginloader_plugin_loader_features_failed_depends{loader_id="abc-123"} 1`,
		`pluginloader_plugin_loader_critical_features_failed{loader_id="abc-123"} 1`,
	} {
		assert.Contains(t, body, want)
	}
}
