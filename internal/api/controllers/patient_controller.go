package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"healthkeeper/internal/models/request_models"
	"healthkeeper/internal/services"
	"healthkeeper/pkg/middleware"
	"healthkeeper/pkg/utils"
)

type PatientController struct {
	patientService services.PatientServiceInterface
}

func NewPatientController(patientService services.PatientServiceInterface) *PatientController {
	return &PatientController{patientService: patientService}
}

// List godoc
// @Summary List the caller's family members
// @Tags Patients
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /patients [get]
func (p *PatientController) List(c *gin.Context) {
	patients, err := p.patientService.List(c.Request.Context(), c.GetString(middleware.CtxUserID))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, patients, "")
}

func (p *PatientController) Get(c *gin.Context) {
	patient, err := p.patientService.Get(c.Request.Context(),
		c.GetString(middleware.CtxUserID), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, patient, "")
}

func (p *PatientController) Create(c *gin.Context) {
	var req request_models.PatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	patient, err := p.patientService.Create(c.Request.Context(), c.GetString(middleware.CtxUserID), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, patient, "Patient created")
}

func (p *PatientController) Update(c *gin.Context) {
	var req request_models.PatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	patient, err := p.patientService.Update(c.Request.Context(),
		c.GetString(middleware.CtxUserID), c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, patient, "Patient updated")
}

func (p *PatientController) Delete(c *gin.Context) {
	err := p.patientService.Delete(c.Request.Context(),
		c.GetString(middleware.CtxUserID), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Patient removed")
}

func (p *PatientController) AddRecord(c *gin.Context) {
	var req request_models.MedicalRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	record, err := p.patientService.AddRecord(c.Request.Context(),
		c.GetString(middleware.CtxUserID), c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, record, "Record added")
}

func (p *PatientController) UpdateRecord(c *gin.Context) {
	var req request_models.MedicalRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	record, err := p.patientService.UpdateRecord(c.Request.Context(),
		c.GetString(middleware.CtxUserID), c.Param("id"), c.Param("recordId"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, record, "Record updated")
}

func (p *PatientController) DeleteRecord(c *gin.Context) {
	err := p.patientService.DeleteRecord(c.Request.Context(),
		c.GetString(middleware.CtxUserID), c.Param("id"), c.Param("recordId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Record removed")
}

func (p *PatientController) AddMedication(c *gin.Context) {
	var req request_models.MedicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	medication, err := p.patientService.AddMedication(c.Request.Context(),
		c.GetString(middleware.CtxUserID), c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, medication, "Medication added")
}

func (p *PatientController) DeleteMedication(c *gin.Context) {
	err := p.patientService.DeleteMedication(c.Request.Context(),
		c.GetString(middleware.CtxUserID), c.Param("id"), c.Param("medicationId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Medication removed")
}

func (p *PatientController) AddReminder(c *gin.Context) {
	var req request_models.ReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	reminder, err := p.patientService.AddReminder(c.Request.Context(),
		c.GetString(middleware.CtxUserID), c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, reminder, "Reminder added")
}

func (p *PatientController) CompleteReminder(c *gin.Context) {
	err := p.patientService.CompleteReminder(c.Request.Context(),
		c.GetString(middleware.CtxUserID), c.Param("id"), c.Param("reminderId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Reminder completed")
}

func (p *PatientController) DeleteReminder(c *gin.Context) {
	err := p.patientService.DeleteReminder(c.Request.Context(),
		c.GetString(middleware.CtxUserID), c.Param("id"), c.Param("reminderId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Reminder removed")
}

func (p *PatientController) AddDocument(c *gin.Context) {
	var req request_models.DocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	doc, err := p.patientService.AddDocument(c.Request.Context(),
		c.GetString(middleware.CtxUserID), c.Param("id"), c.Param("recordId"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, doc, "Document added")
}

func (p *PatientController) DeleteDocument(c *gin.Context) {
	err := p.patientService.DeleteDocument(c.Request.Context(),
		c.GetString(middleware.CtxUserID), c.Param("id"), c.Param("recordId"), c.Param("documentId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Document removed")
}
