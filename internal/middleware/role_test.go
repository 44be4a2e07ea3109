package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func serveWithRole(role string, mw echo.MiddlewareFunc) *httptest.ResponseRecorder {
	e := echo.New()
	inject := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if role != "" {
				c.Set(CtxRole, role)
			}
			return next(c)
		}
	}
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, inject, mw)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	return rec
}

func TestRequireRole(t *testing.T) {
	mw := RequireRole("donor")

	assert.Equal(t, http.StatusOK, serveWithRole("donor", mw).Code)
	assert.Equal(t, http.StatusForbidden, serveWithRole("requester", mw).Code)
	assert.Equal(t, http.StatusForbidden, serveWithRole("", mw).Code)
}

func TestRequireRoleSeveralAllowed(t *testing.T) {
	mw := RequireRole("donor", "requester")

	assert.Equal(t, http.StatusOK, serveWithRole("donor", mw).Code)
	assert.Equal(t, http.StatusOK, serveWithRole("requester", mw).Code)
	assert.Equal(t, http.StatusForbidden, serveWithRole("admin", mw).Code)
}
