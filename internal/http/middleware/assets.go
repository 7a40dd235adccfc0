package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// TenantAssetRewrite strips a leading "/<tenantID>/<slugName>" prefix from
// asset paths so per-tenant URLs like
//
//	/1234/my-shop/images/products/a.jpg
//
// resolve against the shared asset tree at /images/products/a.jpg. The
// first segment must be all digits and the path must continue with
// /images/ after the two tenant segments; anything else passes through
// untouched.
func TenantAssetRewrite() gin.HandlerFunc {
	return func(c *gin.Context) {
		if p, ok := rewriteAssetPath(c.Request.URL.Path); ok {
			c.Request.URL.Path = p
		}
		c.Next()
	}
}

func rewriteAssetPath(path string) (string, bool) {
	if !strings.HasPrefix(path, "/") {
		return "", false
	}
	rest := path[1:]

	i := strings.IndexByte(rest, '/')
	if i <= 0 || !allDigits(rest[:i]) {
		return "", false
	}
	rest = rest[i+1:]

	j := strings.IndexByte(rest, '/')
	if j <= 0 {
		return "", false
	}
	tail := rest[j:]

	if !strings.HasPrefix(tail, "/images/") {
		return "", false
	}
	return tail, true
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
