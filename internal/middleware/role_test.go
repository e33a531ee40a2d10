package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"taxinator/internal/models"
)

func roleRouter(allowed ...models.UserRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/guarded", RequireRole(allowed...), func(c *gin.Context) {
		role, _ := ResolvedRole(c)
		c.JSON(http.StatusOK, gin.H{"role": role})
	})
	return router
}

func doGuarded(t *testing.T, router *gin.Engine, roleHeaderValue string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	if roleHeaderValue != "" {
		req.Header.Set("X-User-Role", roleHeaderValue)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body %q: %v", rec.Body.String(), err)
	}
	return rec.Code, body
}

func errorCode(t *testing.T, body map[string]any) string {
	t.Helper()
	envelope, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("missing error envelope in %v", body)
	}
	code, _ := envelope["code"].(string)
	return code
}

func TestRequireRole(t *testing.T) {
	router := roleRouter(models.RoleBrokerAdmin, models.RoleInternalOps)

	t.Run("missing_header_is_unauthenticated", func(t *testing.T) {
		status, body := doGuarded(t, router, "")
		if status != http.StatusUnauthorized {
			t.Errorf("status = %d", status)
		}
		if code := errorCode(t, body); code != "ROLE_MISSING" {
			t.Errorf("code = %s", code)
		}
	})

	t.Run("unknown_label_is_bad_request", func(t *testing.T) {
		status, body := doGuarded(t, router, "superuser")
		if status != http.StatusBadRequest {
			t.Errorf("status = %d", status)
		}
		if code := errorCode(t, body); code != "ROLE_UNKNOWN" {
			t.Errorf("code = %s", code)
		}
	})

	t.Run("known_but_disallowed_is_forbidden", func(t *testing.T) {
		status, body := doGuarded(t, router, "provider")
		if status != http.StatusForbidden {
			t.Errorf("status = %d", status)
		}
		if code := errorCode(t, body); code != "FORBIDDEN" {
			t.Errorf("code = %s", code)
		}
	})

	t.Run("allowed_role_passes_and_is_resolved", func(t *testing.T) {
		status, body := doGuarded(t, router, "internal_ops")
		if status != http.StatusOK {
			t.Errorf("status = %d, body = %v", status, body)
		}
		if body["role"] != "internal_ops" {
			t.Errorf("resolved role = %v", body["role"])
		}
	})
}

func TestResolvedRoleOutsideGuard(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if _, ok := ResolvedRole(c); ok {
		t.Error("expected no resolved role on a bare context")
	}
}
