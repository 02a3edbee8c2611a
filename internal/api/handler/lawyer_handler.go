package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/lexlink/consultation-api/internal/api/metrics"
	"github.com/lexlink/consultation-api/internal/core/ports"
)

// LawyerHandler exposes the lawyer directory and the review ledger.
type LawyerHandler struct {
	directory ports.DirectoryService
	reviews   ports.ReviewService
}

func NewLawyerHandler(directory ports.DirectoryService, reviews ports.ReviewService) *LawyerHandler {
	return &LawyerHandler{directory: directory, reviews: reviews}
}

// Create handles POST /v1/lawyers.
//
// @Summary      Create the caller's lawyer profile
// @Tags         lawyers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      lawyerProfileRequest  true  "Profile fields"
// @Success      201   "profile created"
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/lawyers [post]
func (h *LawyerHandler) Create(c echo.Context) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req lawyerProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.directory.CreateProfile(c.Request().Context(), caller, toProfileInput(req)); err != nil {
		return err
	}
	return c.NoContent(http.StatusCreated)
}

// Update handles PUT /v1/lawyers/:lawyer_id.
//
// @Summary      Update a lawyer profile
// @Tags         lawyers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        lawyer_id  path      string                true  "Lawyer identity"
// @Param        body       body      lawyerProfileRequest  true  "Profile fields"
// @Success      204        "profile updated"
// @Failure      403        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Router       /v1/lawyers/{lawyer_id} [put]
func (h *LawyerHandler) Update(c echo.Context) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req lawyerProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.directory.UpdateProfile(c.Request().Context(), caller, c.Param("lawyer_id"), toProfileInput(req)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// List handles GET /v1/lawyers: the public directory, pro tier first.
//
// @Summary      List all lawyers
// @Tags         lawyers
// @Produce      json
// @Success      200  {array}  lawyerProfileResponse
// @Router       /v1/lawyers [get]
func (h *LawyerHandler) List(c echo.Context) error {
	profiles, err := h.directory.FindLawyers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toLawyerResponses(profiles))
}

// AddReview handles POST /v1/lawyers/:lawyer_id/reviews.
//
// @Summary      Add a review for a lawyer
// @Tags         lawyers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        lawyer_id  path      string            true  "Lawyer identity"
// @Param        body       body      addReviewRequest  true  "Review"
// @Success      201        "review added"
// @Failure      400        {object}  errorResponse
// @Failure      403        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Router       /v1/lawyers/{lawyer_id}/reviews [post]
func (h *LawyerHandler) AddReview(c echo.Context) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req addReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.reviews.Add(c.Request().Context(), caller, c.Param("lawyer_id"), req.Rating, req.Comment); err != nil {
		return err
	}

	metrics.ReviewsAddedTotal.WithLabelValues(strconv.FormatInt(req.Rating, 10)).Inc()
	return c.NoContent(http.StatusCreated)
}

func toProfileInput(req lawyerProfileRequest) ports.LawyerProfileInput {
	return ports.LawyerProfileInput{
		Name:             req.Name,
		Bio:              req.Bio,
		Credentials:      req.Credentials,
		AreasOfExpertise: req.AreasOfExpertise,
		Languages:        req.Languages,
		Fee:              req.Fee,
	}
}
