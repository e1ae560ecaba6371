package modules

import (
	"expvar"

	"github.com/gin-gonic/gin"
)

// DebugModule exposes process counters at /debug/vars. Enabled only when the
// config flag says so, so production deployments can keep it off.
type DebugModule struct{}

func NewDebugModule() *DebugModule {
	return &DebugModule{}
}

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rg.GET("/debug/vars", gin.WrapH(expvar.Handler()))
}
