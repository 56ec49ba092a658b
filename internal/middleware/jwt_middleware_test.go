package middleware

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"go-pipelinereport/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "middleware-test-secret"

func newProtectedApp() *fiber.App {
	app := fiber.New()
	app.Use(RequestLoggers(zap.NewNop()))
	app.Get("/private", Protected(testSecret), func(c *fiber.Ctx) error {
		subject, _ := c.Locals(SubjectKey).(string)
		return c.SendString(subject)
	})
	return app
}

func TestProtected(t *testing.T) {
	valid, err := utils.GenerateToken("report-reader", testSecret, time.Hour, time.Now())
	require.NoError(t, err)
	forged, err := utils.GenerateToken("report-reader", "other-secret", time.Hour, time.Now())
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "missing header", header: "", wantStatus: fiber.StatusUnauthorized},
		{name: "basic scheme", header: "Basic dXNlcjpwYXNz", wantStatus: fiber.StatusUnauthorized},
		{name: "empty bearer", header: "Bearer ", wantStatus: fiber.StatusUnauthorized},
		{name: "wrong secret", header: "Bearer " + forged, wantStatus: fiber.StatusUnauthorized},
		{name: "valid", header: "Bearer " + valid, wantStatus: fiber.StatusOK},
	}

	app := newProtectedApp()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/private", nil)
			if tt.header != "" {
				req.Header.Set(AuthorizationHeader, tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantStatus == fiber.StatusOK {
				body, _ := io.ReadAll(resp.Body)
				assert.Equal(t, "report-reader", string(body))
			}
		})
	}
}

func TestRequestLoggers_RequestID(t *testing.T) {
	app := newProtectedApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/private", nil))
	require.NoError(t, err)
	generated := resp.Header.Get(RequestIDHeader)
	_, err = uuid.Parse(generated)
	assert.NoError(t, err)

	incoming := uuid.NewString()
	req := httptest.NewRequest("GET", "/private", nil)
	req.Header.Set(RequestIDHeader, incoming)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, incoming, resp.Header.Get(RequestIDHeader))

	req = httptest.NewRequest("GET", "/private", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.NotEqual(t, "not-a-uuid", resp.Header.Get(RequestIDHeader))
}
