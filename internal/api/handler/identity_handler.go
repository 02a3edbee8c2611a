package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lexlink/consultation-api/internal/core/domain"
	"github.com/lexlink/consultation-api/internal/core/ports"
)

// IdentityHandler exposes onboarding, profile and role reads.
type IdentityHandler struct {
	identity ports.IdentityService
}

func NewIdentityHandler(identity ports.IdentityService) *IdentityHandler {
	return &IdentityHandler{identity: identity}
}

// CompleteOnboarding handles POST /v1/onboarding.
//
// @Summary      Complete onboarding by choosing a role
// @Tags         identity
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      onboardingRequest  true  "Chosen role"
// @Success      204   "role set"
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/onboarding [post]
func (h *IdentityHandler) CompleteOnboarding(c echo.Context) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req onboardingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.identity.CompleteOnboarding(c.Request().Context(), caller, domain.UserRole(req.Role)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// SaveProfile handles PUT /v1/profile.
//
// @Summary      Save the caller's display name
// @Tags         identity
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      saveProfileRequest  true  "Profile fields"
// @Success      204   "profile saved"
// @Failure      400   {object}  errorResponse
// @Router       /v1/profile [put]
func (h *IdentityHandler) SaveProfile(c echo.Context) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req saveProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.identity.SaveProfile(c.Request().Context(), caller, req.Name); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// GetProfile handles GET /v1/profile. Returns 204 when the caller has no
// profile yet, which the onboarding flow treats as "start onboarding".
//
// @Summary      Get the caller's profile
// @Tags         identity
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userProfileResponse
// @Success      204  "no profile yet"
// @Router       /v1/profile [get]
func (h *IdentityHandler) GetProfile(c echo.Context) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}
	return h.renderProfile(c, caller)
}

// GetProfileFor handles GET /v1/profile/:identity.
//
// @Summary      Get another user's profile
// @Tags         identity
// @Produce      json
// @Security     BearerAuth
// @Param        identity  path      string  true  "User identity"
// @Success      200       {object}  userProfileResponse
// @Success      204       "no profile"
// @Router       /v1/profile/{identity} [get]
func (h *IdentityHandler) GetProfileFor(c echo.Context) error {
	if _, err := callerIdentity(c); err != nil {
		return err
	}
	return h.renderProfile(c, c.Param("identity"))
}

func (h *IdentityHandler) renderProfile(c echo.Context, identity string) error {
	profile, err := h.identity.ProfileFor(c.Request().Context(), identity)
	if err != nil {
		return err
	}
	if profile == nil {
		return c.NoContent(http.StatusNoContent)
	}

	return c.JSON(http.StatusOK, userProfileResponse{
		Identity:  profile.Identity,
		Name:      profile.Name,
		Role:      string(profile.Role),
		AdminRole: string(profile.AdminRole),
	})
}

// GetRole handles GET /v1/role and reports the caller's administrative role.
//
// @Summary      Get the caller's administrative role
// @Tags         identity
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  callerRoleResponse
// @Router       /v1/role [get]
func (h *IdentityHandler) GetRole(c echo.Context) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}

	role, err := h.identity.AdminRoleOf(c.Request().Context(), caller)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, callerRoleResponse{
		AdminRole: string(role),
		IsAdmin:   role == domain.AdminRoleAdmin,
	})
}
