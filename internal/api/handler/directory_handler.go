package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/well2nest/hospital-system/internal/core/ports"
)

type DirectoryHandler struct {
	directory ports.DirectoryService
}

func NewDirectoryHandler(directory ports.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directory: directory}
}

type createDepartmentRequest struct {
	Name         string `json:"name" validate:"required"`
	Description  string `json:"description"`
	HeadDoctorID string `json:"head_doctor_id"`
}

// Doctors lists the doctor directory.
//
// @Summary      List doctors
// @Tags         directory
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  domain.Identity
// @Router       /doctors [get]
func (h *DirectoryHandler) Doctors(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	doctors, err := h.directory.Doctors(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, doctors)
}

// Patients lists the patient directory (staff only).
//
// @Summary      List patients
// @Tags         directory
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   domain.Identity
// @Failure      403  {object}  map[string]string
// @Router       /patients [get]
func (h *DirectoryHandler) Patients(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	patients, err := h.directory.Patients(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, patients)
}

// Departments lists hospital departments.
//
// @Summary      List departments
// @Tags         directory
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  domain.Department
// @Router       /departments [get]
func (h *DirectoryHandler) Departments(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	departments, err := h.directory.Departments(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, departments)
}

// CreateDepartment adds a department (admin only).
//
// @Summary      Create a department
// @Tags         directory
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      createDepartmentRequest  true  "Department details"
// @Success      201   {object}  domain.Department
// @Failure      400   {object}  map[string]string
// @Router       /departments [post]
func (h *DirectoryHandler) CreateDepartment(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req createDepartmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	department, err := h.directory.CreateDepartment(c.Request().Context(), sess, ports.CreateDepartmentInput{
		Name:         req.Name,
		Description:  req.Description,
		HeadDoctorID: req.HeadDoctorID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, department)
}
