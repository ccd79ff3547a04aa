package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"healthkeeper/internal/models/request_models"
	"healthkeeper/internal/services"
	"healthkeeper/pkg/utils"
)

type DoctorController struct {
	doctorService services.DoctorServiceInterface
}

func NewDoctorController(doctorService services.DoctorServiceInterface) *DoctorController {
	return &DoctorController{doctorService: doctorService}
}

// List godoc
// @Summary List the shared doctor directory
// @Tags Doctors
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /doctors [get]
func (d *DoctorController) List(c *gin.Context) {
	doctors, err := d.doctorService.List(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, doctors, "")
}

func (d *DoctorController) Get(c *gin.Context) {
	doctor, err := d.doctorService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, doctor, "")
}

func (d *DoctorController) Create(c *gin.Context) {
	var req request_models.DoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	doctor, err := d.doctorService.Create(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, doctor, "Doctor created")
}

func (d *DoctorController) Update(c *gin.Context) {
	var req request_models.DoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	doctor, err := d.doctorService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, doctor, "Doctor updated")
}

// Delete godoc
// @Summary Delete a doctor
// @Description Refused with 409 while patients or records still reference the doctor
// @Tags Doctors
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /doctors/{id} [delete]
func (d *DoctorController) Delete(c *gin.Context) {
	if err := d.doctorService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Doctor removed")
}
