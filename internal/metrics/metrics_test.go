package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/reports"
)

func TestRecorder(t *testing.T) {
	var r Recorder
	before := testutil.ToFloat64(filingsTotal.WithLabelValues("Post", "filed"))
	r.ObserveFiling(reports.KindPost, "filed", 3*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(filingsTotal.WithLabelValues("Post", "filed")))

	before = testutil.ToFloat64(listingsTotal.WithLabelValues("unauthorized"))
	r.ObserveListing("unauthorized")
	assert.Equal(t, before+1, testutil.ToFloat64(listingsTotal.WithLabelValues("unauthorized")))
}

func TestHandler(t *testing.T) {
	Recorder{}.ObserveListing("ok")

	app := fiber.New()
	app.Get("/metrics", Handler())

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "reports_listings_total")
}
