package handlers

import (
	"law_folder_app_go/db"
	"law_folder_app_go/models"
	"law_folder_app_go/services"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/labstack/echo/v4"
)

type clientRequest struct {
	Name      string `json:"name"`
	Document  string `json:"document"`
	Type      string `json:"type"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	BirthDate string `json:"birth_date"` // YYYY-MM-DD
}

func (r *clientRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Document, validation.Length(0, 32)),
		validation.Field(&r.Type, validation.In(models.ClientTypeIndividual, models.ClientTypeCompany)),
		validation.Field(&r.Email, is.EmailFormat),
		validation.Field(&r.BirthDate, validation.Date(dateLayout)),
	)
}

// CreateClientHandler registers a client
func CreateClientHandler(c echo.Context) error {
	var req clientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return validationFailed(err)
	}

	input := services.CreateClientInput{
		Name:     req.Name,
		Document: req.Document,
		Type:     req.Type,
		Email:    req.Email,
		Phone:    req.Phone,
	}
	if req.BirthDate != "" {
		birth, _ := services.ParseDate(req.BirthDate)
		input.BirthDate = &birth
	}

	client, err := services.NewClientService(db.DB).Create(c.Request().Context(), input)
	if err != nil {
		return apiError(err, "Failed to create client")
	}
	return c.JSON(http.StatusCreated, client)
}

// GetClientHandler returns one client
func GetClientHandler(c echo.Context) error {
	client, err := services.NewClientService(db.DB).GetClient(c.Request().Context(), c.Param("id"))
	if err != nil {
		return apiError(err, "Failed to fetch client")
	}
	return c.JSON(http.StatusOK, client)
}
