// Package http exposes the conversion registry over a small introspection
// API: registered pairs, simple type checks, target resolution and cache
// statistics.
package http

import (
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"

	"github.com/kestrelsoft/docstore/conversions"
	"github.com/kestrelsoft/docstore/internal/shared/typeindex"
)

// Handlers serves registry introspection endpoints.
type Handlers struct {
	conv *conversions.Conversions
}

// NewHandlers creates introspection handlers for the given registry.
func NewHandlers(conv *conversions.Conversions) *Handlers {
	return &Handlers{conv: conv}
}

// Register attaches all routes to the given router group.
func (h *Handlers) Register(r gin.IRoutes) {
	r.GET("/health", h.Health)
	r.GET("/pairs", h.Pairs)
	r.GET("/types", h.Types)
	r.GET("/simple/:type", h.Simple)
	r.GET("/resolve/write", h.ResolveWrite)
	r.GET("/stats", h.CacheStats)
}

// Health reports daemon liveness.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Pairs lists the registered reading and writing pairs in precedence order.
func (h *Handlers) Pairs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"reading": pairStrings(h.conv.ReadingPairs()),
		"writing": pairStrings(h.conv.WritingPairs()),
	})
}

// Types lists the type names addressable through this API.
func (h *Handlers) Types(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"types": typeindex.Names()})
}

// Simple answers whether the named type is store-simple.
func (h *Handlers) Simple(c *gin.Context) {
	name := c.Param("type")
	t, ok := typeindex.Lookup(name)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown type: " + name})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"type":   name,
		"simple": h.conv.IsSimpleType(t),
	})
}

// ResolveWrite resolves the write target for a named source type, optionally
// constrained to a requested target.
func (h *Handlers) ResolveWrite(c *gin.Context) {
	sourceName := c.Query("source")
	source, ok := typeindex.Lookup(sourceName)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown source type: " + sourceName})
		return
	}

	var (
		target   reflect.Type
		resolved bool
	)
	if targetName := c.Query("target"); targetName != "" {
		requested, ok := typeindex.Lookup(targetName)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown target type: " + targetName})
			return
		}
		target, resolved = h.conv.WriteTargetTo(source, requested)
	} else {
		target, resolved = h.conv.WriteTarget(source)
	}

	if !resolved {
		c.JSON(http.StatusOK, gin.H{"source": sourceName, "resolved": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"source":   sourceName,
		"resolved": true,
		"target":   target.String(),
	})
}

func pairStrings(pairs []conversions.TypePair) []string {
	out := make([]string, len(pairs))
	for i, p := range pairs {
		out[i] = p.String()
	}
	return out
}

// CacheStats reports resolution cache activity.
func (h *Handlers) CacheStats(c *gin.Context) {
	stats := h.conv.Stats()
	c.JSON(http.StatusOK, gin.H{
		"read": gin.H{
			"hits":   stats.ReadHits,
			"misses": stats.ReadMisses,
			"scans":  stats.ReadScans,
		},
		"write": gin.H{
			"hits":   stats.WriteHits,
			"misses": stats.WriteMisses,
			"scans":  stats.WriteScans,
		},
	})
}
