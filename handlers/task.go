package handlers

import (
	"law_folder_app_go/db"
	"law_folder_app_go/models"
	"law_folder_app_go/services"
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/labstack/echo/v4"
)

type taskRequest struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	AssignedToID *string    `json:"assigned_to_id"`
	DueDate      *time.Time `json:"due_date"`
}

type taskStatusRequest struct {
	Status string `json:"status"`
}

// GetFolderTasksHandler lists the tasks of a folder
func GetFolderTasksHandler(c echo.Context) error {
	folder, err := requireFolder(c)
	if err != nil {
		return err
	}

	tasks, err := services.NewTaskService(db.DB).ListByFolder(c.Request().Context(), folder.ID)
	if err != nil {
		return apiError(err, "Failed to fetch tasks")
	}
	return c.JSON(http.StatusOK, tasks)
}

// CreateFolderTaskHandler adds a task to a folder
func CreateFolderTaskHandler(c echo.Context) error {
	var req taskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := validation.ValidateStruct(&req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&req.AssignedToID, is.UUID),
	); err != nil {
		return validationFailed(err)
	}

	folderID := c.Param("id")
	task, err := services.NewTaskService(db.DB).Create(c.Request().Context(), services.CreateTaskInput{
		FolderID:     &folderID,
		AssignedToID: req.AssignedToID,
		Title:        req.Title,
		Description:  req.Description,
		DueDate:      req.DueDate,
	})
	if err != nil {
		return apiError(err, "Failed to create task")
	}
	return c.JSON(http.StatusCreated, task)
}

// UpdateTaskStatusHandler moves a task to another status
func UpdateTaskStatusHandler(c echo.Context) error {
	var req taskStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := validation.ValidateStruct(&req,
		validation.Field(&req.Status, validation.Required,
			validation.In(models.TaskStatusPending, models.TaskStatusInProgress, models.TaskStatusCompleted)),
	); err != nil {
		return validationFailed(err)
	}

	task, err := services.NewTaskService(db.DB).UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return apiError(err, "Failed to update task")
	}
	return c.JSON(http.StatusOK, task)
}
