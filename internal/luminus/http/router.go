// Package http exposes the dashboard REST surface.
package http

import "github.com/gin-gonic/gin"

// Register attaches the dashboard routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	clients := rg.Group("/clients")
	clients.GET("", h.listClients)
	clients.POST("", h.createClient)
	clients.GET("/:id", h.getClient)
	clients.PATCH("/:id", h.updateClient)

	leads := rg.Group("/leads")
	leads.GET("", h.listLeads)
	leads.POST("", h.createLead)
	leads.PATCH("/:id/status", h.transitionLead)

	projects := rg.Group("/projects")
	projects.GET("", h.listProjects)
	projects.POST("", h.createProject)
	projects.GET("/:id", h.getProject)
	projects.PATCH("/:id/tasks/:task_id/toggle", h.toggleTask)

	finance := rg.Group("/finance")
	finance.GET("", h.listTransactions)
	finance.POST("", h.recordTransaction)
	finance.PATCH("/:id", h.updateTransaction)
	finance.DELETE("/:id", h.deleteTransaction)

	summary := rg.Group("/summary")
	summary.GET("/pipeline", h.pipelineSummary)
	summary.GET("/finance", h.financeSummary)

	rg.POST("/reconcile", h.runReconcile)
}
