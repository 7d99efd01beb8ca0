package cli

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aiscm/aictl/pkg/data"
	"github.com/aiscm/aictl/pkg/report"
	"github.com/aiscm/aictl/pkg/risk"
)

const batchSizeLimit = 50

func healthHandler(cfg *appConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := gin.H{
			"status":  "ok",
			"version": version,
			"time":    time.Now().UTC().Format(time.RFC3339),
		}
		if err := cfg.DB.Ping(); err != nil {
			status["status"] = "degraded"
			status["database"] = err.Error()
			c.JSON(http.StatusServiceUnavailable, status)
			return
		}
		c.JSON(http.StatusOK, status)
	}
}

func assessHandler(cfg *appConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		var d risk.SystemDescriptor
		if err := c.ShouldBindJSON(&d); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		r, err := assessAndSave(c, cfg, &d)
		if err != nil {
			writeEngineError(c, err)
			return
		}
		c.JSON(http.StatusOK, r)
	}
}

func batchAssessHandler(cfg *appConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		var descriptors []*risk.SystemDescriptor
		if err := c.ShouldBindJSON(&descriptors); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if len(descriptors) == 0 || len(descriptors) > batchSizeLimit {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "batch must contain between 1 and 50 descriptors",
			})
			return
		}

		results := make([]*risk.Result, 0, len(descriptors))
		for _, d := range descriptors {
			r, err := assessAndSave(c, cfg, d)
			if err != nil {
				writeEngineError(c, err)
				return
			}
			results = append(results, r)
		}
		c.JSON(http.StatusOK, results)
	}
}

type reportRequest struct {
	Organization string                 `json:"organization" binding:"required"`
	Descriptor   *risk.SystemDescriptor `json:"descriptor" binding:"required"`
}

func reportHandler(cfg *appConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req reportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		r, err := assessAndSave(c, cfg, req.Descriptor)
		if err != nil {
			writeEngineError(c, err)
			return
		}

		rep, err := report.Build(req.Organization, r)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, rep)
	}
}

func mappingHandler(cfg *appConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		riskType := c.Param("type")

		categories, err := risk.Lookup(cfg.Taxonomy, riskType)
		if err != nil {
			writeEngineError(c, err)
			return
		}

		desc, err := risk.RiskTypeDescription(cfg.Taxonomy, riskType)
		if err != nil {
			writeEngineError(c, err)
			return
		}

		c.JSON(http.StatusOK, lookupResult{
			RiskType:    riskType,
			Description: desc,
			Categories:  categories,
		})
	}
}

func assessmentsHandler(cfg *appConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q data.AssessmentQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
			return
		}

		list, err := data.GetAssessments(cfg.DB, &q)
		if err != nil {
			slog.Error("failed to query assessments", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error querying assessments"})
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

func summaryHandler(cfg *appConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := data.GetSummary(cfg.DB)
		if err != nil {
			slog.Error("failed to summarize assessments", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error summarizing assessments"})
			return
		}
		c.JSON(http.StatusOK, s)
	}
}

func assessAndSave(c *gin.Context, cfg *appConfig, d *risk.SystemDescriptor) (*risk.Result, error) {
	// normalize case and whitespace like the CLI flags do; unknown values
	// still fail validation
	d.ModelType = risk.ModelType(strings.TrimSpace(string(d.ModelType)))
	d.DeploymentEnv = risk.DeploymentEnv(strings.ToLower(strings.TrimSpace(string(d.DeploymentEnv))))

	r, err := risk.Assess(c.Request.Context(), cfg.Taxonomy, d, cfg.Provider, cfg.providerTimeout())
	if err != nil {
		return nil, err
	}

	if _, err := data.SaveAssessment(cfg.DB, r); err != nil {
		// history is best effort for the API surface
		slog.Error("failed to save assessment", "system", d.SystemName, "error", err)
	}
	return r, nil
}

func writeEngineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, risk.ErrInvalidDescriptor):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, risk.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		slog.Error("assessment failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
