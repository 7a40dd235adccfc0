package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() { gin.SetMode(gin.TestMode) }

func TestRewriteAssetPath(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"/1234/my-shop/images/products/a.jpg", "/images/products/a.jpg", true},
		{"/1/x/images/a.png", "/images/a.png", true},
		{"/1234/my-shop/api/products", "", false}, // only /images/ rewrites
		{"/shop/name/images/a.jpg", "", false},    // first segment must be digits
		{"/1234/images/a.jpg", "", false},         // needs both tenant segments
		{"/images/a.jpg", "", false},
		{"/", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := rewriteAssetPath(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("rewriteAssetPath(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestTenantAssetRewrite_Middleware(t *testing.T) {
	r := gin.New()
	r.Use(TenantAssetRewrite())

	var seen string
	r.GET("/images/*path", func(c *gin.Context) {
		seen = c.Request.URL.Path
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/2170/extndd/images/a.jpg", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if seen != "/images/a.jpg" {
		t.Fatalf("handler saw %q", seen)
	}
}
