package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"healthkeeper/internal/models/request_models"
	"healthkeeper/internal/services"
	"healthkeeper/pkg/middleware"
	"healthkeeper/pkg/utils"
)

type BackupController struct {
	backupService services.BackupServiceInterface
}

func NewBackupController(backupService services.BackupServiceInterface) *BackupController {
	return &BackupController{backupService: backupService}
}

// Export godoc
// @Summary Download a backup of the caller's collections
// @Tags Backups
// @Accept json
// @Produce application/json
// @Param request body request_models.ExportBackupRequest true "Export options"
// @Success 200 {file} file
// @Security BearerAuth
// @Router /backups/export [post]
func (b *BackupController) Export(c *gin.Context) {
	var req request_models.ExportBackupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	data, err := b.backupService.Export(c.Request.Context(), c.GetString(middleware.CtxUserID), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("health-backup-%s.json", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/json", data)
}

// Restore godoc
// @Summary Restore collections from a backup envelope
// @Tags Backups
// @Accept json
// @Produce json
// @Param request body request_models.RestoreBackupRequest true "Restore payload"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /backups/restore [post]
func (b *BackupController) Restore(c *gin.Context) {
	var req request_models.RestoreBackupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	result, err := b.backupService.Restore(c.Request.Context(), c.GetString(middleware.CtxUserID), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	if !result.Success {
		c.JSON(http.StatusBadRequest, utils.APIResponse{
			Status:  "error",
			Code:    http.StatusBadRequest,
			Message: result.Message,
			Data:    result,
		})
		return
	}
	utils.RespondSuccess(c, result, "Restore complete")
}

func (b *BackupController) Snapshots(c *gin.Context) {
	snapshots := b.backupService.Snapshots(c.GetString(middleware.CtxUserID))
	utils.RespondSuccess(c, snapshots, "")
}

func (b *BackupController) GetSchedule(c *gin.Context) {
	schedule, err := b.backupService.GetSchedule(c.GetString(middleware.CtxUserID))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, schedule, "")
}

func (b *BackupController) SetSchedule(c *gin.Context) {
	var req request_models.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	schedule, err := b.backupService.SetSchedule(c.GetString(middleware.CtxUserID), req)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}
	utils.RespondSuccess(c, schedule, "Schedule saved")
}

// Check godoc
// @Summary Explicitly poll for due scheduled backups
// @Tags Backups
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /backups/check [post]
func (b *BackupController) Check(c *gin.Context) {
	fired := b.backupService.CheckDue(c.Request.Context(), time.Now())
	utils.RespondSuccess(c, gin.H{"fired": fired}, "")
}
