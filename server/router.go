// Package server exposes the pricing core over HTTP for the listing form and
// the assistant UI.
package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/campuspay/pricing-engine/assistant"
	"github.com/campuspay/pricing-engine/pricing"
	"github.com/gin-gonic/gin"
)

// TableLoader re-fetches the raw sales table text for reloads.
type TableLoader func(ctx context.Context) string

// Router wires HTTP handlers.
type Router struct {
	store     *pricing.Store
	loadTable TableLoader
	bridge    *assistant.Bridge
}

func NewRouter(store *pricing.Store, loadTable TableLoader, bridge *assistant.Bridge) *gin.Engine {
	r := &Router{
		store:     store,
		loadTable: loadTable,
		bridge:    bridge,
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.GET("/healthz", r.health)

	api := router.Group("/api")
	{
		api.POST("/estimate", r.estimate)
		api.GET("/averages/category", r.averagesByCategory)
		api.GET("/averages/platform", r.averagesByPlatform)
		api.GET("/search", r.search)
		api.POST("/chat", r.chat)
		api.POST("/reload", r.reload)
		api.GET("/records/export", r.exportRecords)
	}

	return router
}

func (r *Router) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok": true,
		"ai": r.bridge.Configured(),
	})
}

type estimateReq struct {
	Category    string `json:"category"`
	Condition   string `json:"condition"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (r *Router) estimate(c *gin.Context) {
	var req estimateReq
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	records := r.store.Snapshot().Records()
	est := pricing.Estimate(records, req.Category, req.Condition, req.Title, req.Description)
	byPlatform := pricing.AverageByPlatform(records, req.Category)
	byCategory := pricing.AverageByCategory(records)

	c.JSON(http.StatusOK, gin.H{
		"estimate":   est,
		"report":     buildEstimateReport(est, byPlatform, byCategory),
		"byPlatform": byPlatform,
		"byCategory": byCategory,
	})
}

// buildEstimateReport renders the plain-text block the listing form shows
// next to the estimate.
func buildEstimateReport(estimate float64, byPlatform, byCategory []pricing.GroupAverage) string {
	lines := []string{fmt.Sprintf("Estimated price: $%.2f", estimate)}

	if len(byPlatform) > 0 {
		lines = append(lines, "", "By platform averages:")
		for _, g := range byPlatform {
			lines = append(lines, fmt.Sprintf("- %s: $%.2f", g.Key, g.Mean))
		}
	}
	if len(byCategory) > 0 {
		lines = append(lines, "", "Category averages:")
		for _, g := range byCategory {
			lines = append(lines, fmt.Sprintf("- %s: $%.2f", g.Key, g.Mean))
		}
	}

	return strings.Join(lines, "\n")
}

func (r *Router) averagesByCategory(c *gin.Context) {
	records := r.store.Snapshot().Records()
	c.JSON(http.StatusOK, gin.H{"items": pricing.AverageByCategory(records)})
}

func (r *Router) averagesByPlatform(c *gin.Context) {
	records := r.store.Snapshot().Records()
	c.JSON(http.StatusOK, gin.H{"items": pricing.AverageByPlatform(records, c.Query("category"))})
}

func (r *Router) search(c *gin.Context) {
	records := r.store.Snapshot().Records()
	c.JSON(http.StatusOK, gin.H{"text": pricing.Search(records, c.Query("q"))})
}

type chatReq struct {
	Messages []assistant.Message `json:"messages"`
	Model    string              `json:"model"`
}

func (r *Router) chat(c *gin.Context) {
	var req chatReq
	// A bad body degrades to an empty conversation instead of erroring, so
	// the assistant always answers something.
	_ = c.ShouldBindJSON(&req)

	reply := r.bridge.Answer(c.Request.Context(), req.Messages, req.Model)
	c.JSON(http.StatusOK, reply)
}

func (r *Router) reload(c *gin.Context) {
	text := r.loadTable(c.Request.Context())
	snap := pricing.NewSnapshot(pricing.ParseRecords(text))
	r.store.Replace(snap)
	c.JSON(http.StatusOK, gin.H{"records": snap.Len()})
}

func (r *Router) exportRecords(c *gin.Context) {
	c.Header("Content-Disposition", "attachment; filename=comparable_sales.csv")
	c.Data(http.StatusOK, "text/csv", []byte(pricing.FormatRecords(r.store.Snapshot().Records())))
}
