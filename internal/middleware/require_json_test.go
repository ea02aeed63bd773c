// SPDX-License-Identifier: MIT
package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRequireJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		method      string
		contentType string
		want415     bool
	}{
		{method: "GET", want415: false},
		{method: "POST", contentType: "application/json", want415: false},
		{method: "POST", contentType: "application/json; charset=utf-8", want415: false},
		{method: "POST", contentType: "application/x-www-form-urlencoded", want415: true},
		{method: "POST", contentType: "text/plain", want415: true},
		{method: "POST", want415: true},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.contentType, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(tt.method, "/api/advance", nil)
			if tt.contentType != "" {
				c.Request.Header.Set("Content-Type", tt.contentType)
			}

			RequireJSONMiddleware()(c)

			if got := w.Code == 415; got != tt.want415 {
				t.Errorf("415 = %v, want %v", got, tt.want415)
			}
		})
	}
}
