package http

import "github.com/gin-gonic/gin"

// Registrar 由各模块实现，把自己的 HTTP 路由挂到 Server.Group() 上。
type Registrar interface {
	HttpRegister(g *gin.RouterGroup)
}
