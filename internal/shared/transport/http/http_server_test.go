package http

import (
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"BaseWars/modules/kit/logx"
)

func TestNewHttpServer_Healthz(t *testing.T) {
	gin.SetMode(gin.TestMode)

	s := NewHttpServer(":0", gin.New(), logx.Nop())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(nethttp.MethodGet, "/healthz", nil)
	s.Handler().ServeHTTP(w, req)

	if w.Code != nethttp.StatusOK {
		t.Fatalf("unexpected status code: got=%d want=%d", w.Code, nethttp.StatusOK)
	}
}

func TestNewHttpServer_分组路由可挂载(t *testing.T) {
	gin.SetMode(gin.TestMode)

	s := NewHttpServer(":0", nil, nil)
	s.Group().GET("/ping", func(c *gin.Context) {
		c.JSON(nethttp.StatusOK, gin.H{"code": 0, "msg": "pong"})
	})

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(nethttp.MethodGet, "/ping", nil))
	if w.Code != nethttp.StatusOK {
		t.Fatalf("期望 200，got=%d", w.Code)
	}
}
