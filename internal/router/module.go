package router

import "github.com/gin-gonic/gin"

// Module groups related routes so each feature registers itself against
// the shared base group.
type Module interface {
	Register(rg *gin.RouterGroup)
}
