package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"healthkeeper/internal/services"
	"healthkeeper/pkg/middleware"
	"healthkeeper/pkg/utils"
)

type InsightController struct {
	insightService services.InsightServiceInterface
}

func NewInsightController(insightService services.InsightServiceInterface) *InsightController {
	return &InsightController{insightService: insightService}
}

// GenerateInsights godoc
// @Summary Generate AI health insights for a patient
// @Tags AI
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 503 {object} utils.APIResponse
// @Security BearerAuth
// @Router /ai/insights/{patientId} [post]
func (i *InsightController) GenerateInsights(c *gin.Context) {
	insights, err := i.insightService.GenerateInsights(c.Request.Context(),
		c.GetString(middleware.CtxUserID), c.Param("patientId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, gin.H{"insights": insights}, "")
}

// SearchRecords godoc
// @Summary Semantic search over the caller's medical records
// @Tags AI
// @Produce json
// @Param q query string true "Search query"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /records/search [get]
func (i *InsightController) SearchRecords(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		utils.RespondError(c, http.StatusBadRequest, "Query parameter q is required")
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	hits, err := i.insightService.SearchRecords(c.Request.Context(),
		c.GetString(middleware.CtxUserID), query, limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, hits, "")
}
