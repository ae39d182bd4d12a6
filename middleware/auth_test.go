package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"villa-backend/utils"

	"github.com/gin-gonic/gin"
)

func protectedRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/private", RequireAdmin(secret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.GetUint(ContextAdminID), "email": c.GetString(ContextAdminEmail)})
	})
	return r
}

func TestRequireAdmin(t *testing.T) {
	r := protectedRouter("s3cret")
	valid, _, err := utils.CreateAdminToken("s3cret", 3, "admin@villa.test", time.Hour, time.Now())
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	expired, _, _ := utils.CreateAdminToken("s3cret", 3, "admin@villa.test", time.Minute, time.Now().Add(-time.Hour))
	foreign, _, _ := utils.CreateAdminToken("other", 3, "admin@villa.test", time.Hour, time.Now())

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + valid, http.StatusUnauthorized},
		{"garbage", "Bearer abc.def.ghi", http.StatusUnauthorized},
		{"expired", "Bearer " + expired, http.StatusUnauthorized},
		{"wrong secret", "Bearer " + foreign, http.StatusUnauthorized},
		{"valid", "Bearer " + valid, http.StatusOK},
		{"lowercase scheme", "bearer " + valid, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.want {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tc.want, w.Body.String())
			}
		})
	}
}

func TestRequireAdminSetsContext(t *testing.T) {
	r := protectedRouter("s3cret")
	tok, _, _ := utils.CreateAdminToken("s3cret", 9, "ops@villa.test", time.Hour, time.Now())
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	want := `{"email":"ops@villa.test","id":9}`
	if w.Code != http.StatusOK || w.Body.String() != want {
		t.Fatalf("got %d %s, want %s", w.Code, w.Body.String(), want)
	}
}
