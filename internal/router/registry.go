package router

import "github.com/gin-gonic/gin"

const basePath = "/api/v1"

// Registry collects feature modules and mounts them under the API base path.
type Registry struct {
	engine  *gin.Engine
	modules []Module
}

func NewRegistry(engine *gin.Engine) *Registry {
	return &Registry{engine: engine}
}

func (r *Registry) Add(m Module) {
	r.modules = append(r.modules, m)
}

func (r *Registry) RegisterAll() {
	base := r.engine.Group(basePath)
	for _, m := range r.modules {
		m.Register(base)
	}
}
