package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shenikar/parking_watchdog/internal/actiontoken"
	"github.com/shenikar/parking_watchdog/internal/config"
	"github.com/shenikar/parking_watchdog/internal/service"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	watchdogService service.WatchdogService
	tokens          *actiontoken.Issuer
	logger          *logrus.Logger
	validate        *validator.Validate
	cfg             *config.Config
	now             func() time.Time
}

func NewHandler(watchdogService service.WatchdogService, tokens *actiontoken.Issuer, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		watchdogService: watchdogService,
		tokens:          tokens,
		logger:          logger,
		validate:        validator.New(),
		cfg:             cfg,
		now:             time.Now,
	}
}

// bindAndValidate разбирает JSON и проверяет теги validate; при ошибке уже ответил клиенту
func (h *Handler) bindAndValidate(c *gin.Context, log *logrus.Entry, input any) bool {
	if err := c.ShouldBindJSON(input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// @Summary Submit a location sample
// @Description Feed one location sample into the motion classifier. A parking event opens a check-in request. Requires API key.
// @Tags Location
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param sample body LocationSampleRequest true "Location sample"
// @Success 202 {object} ParkingEventResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /location/samples [post]
func (h *Handler) submitLocationSample(c *gin.Context) {
	var input LocationSampleRequest
	log := h.logger.WithField("method", "submitLocationSample")

	if !h.bindAndValidate(c, log, &input) {
		return
	}

	// Показание без скорости - пропуск датчика, состояние не меняем
	if input.SpeedMps == nil {
		log.WithField("user_id", input.UserID).Debug("Sample without speed, skipping")
		c.JSON(http.StatusAccepted, ParkingEventResponse{})
		return
	}

	sample := DTOToLocationSample(input, h.now())
	event, err := h.watchdogService.OnLocationSample(c.Request.Context(), input.UserID, sample)
	if err != nil {
		log.WithError(err).Error("Failed to process location sample")
		c.JSON(statusForError(err))
		return
	}

	c.JSON(http.StatusAccepted, ModelToParkingEventResponse(event))
}

// @Summary Apply a notification action
// @Description Apply the confirm or decline button of a check-in prompt. Authenticated by the signed action token.
// @Tags Check-in
// @Accept json
// @Produce json
// @Param action body ActionRequest true "Signed action token"
// @Success 200 {object} AppliedResponse
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Invalid or expired token"
// @Router /actions [post]
func (h *Handler) applyAction(c *gin.Context) {
	var input ActionRequest
	log := h.logger.WithField("method", "applyAction")

	if !h.bindAndValidate(c, log, &input) {
		return
	}

	claims, err := h.tokens.Parse(input.Token)
	if err != nil {
		log.WithError(err).Warn("Rejected action token")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid action token"})
		return
	}

	applied, err := h.watchdogService.OnUserResponse(c.Request.Context(), claims.Subject, claims.NotificationID, claims.Action.Accepted())
	if err != nil {
		log.WithError(err).Error("Failed to apply action")
		c.JSON(statusForError(err))
		return
	}

	c.JSON(http.StatusOK, AppliedResponse{Applied: applied})
}

// @Summary Respond to a check-in request
// @Description Record the user's answer on behalf of a trusted client. Stale and duplicate answers are ignored. Requires API key.
// @Tags Check-in
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param response body CheckInResponseRequest true "User response"
// @Success 200 {object} AppliedResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /checkins/respond [post]
func (h *Handler) respondCheckIn(c *gin.Context) {
	var input CheckInResponseRequest
	log := h.logger.WithField("method", "respondCheckIn")

	if !h.bindAndValidate(c, log, &input) {
		return
	}

	applied, err := h.watchdogService.OnUserResponse(c.Request.Context(), input.UserID, input.NotificationID, *input.Accepted)
	if err != nil {
		log.WithError(err).Error("Failed to apply user response")
		c.JSON(statusForError(err))
		return
	}

	c.JSON(http.StatusOK, AppliedResponse{Applied: applied})
}

// @Summary Signal a deadline timeout
// @Description Deliver an external deadline signal for a check-in request. Requires API key.
// @Tags Check-in
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param timeout body DeadlineTimeoutRequest true "Deadline timeout"
// @Success 200 {object} AppliedResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /checkins/timeout [post]
func (h *Handler) signalTimeout(c *gin.Context) {
	var input DeadlineTimeoutRequest
	log := h.logger.WithField("method", "signalTimeout")

	if !h.bindAndValidate(c, log, &input) {
		return
	}

	applied, err := h.watchdogService.OnDeadlineTimeout(c.Request.Context(), input.UserID, input.NotificationID)
	if err != nil {
		log.WithError(err).Error("Failed to apply deadline timeout")
		c.JSON(statusForError(err))
		return
	}

	c.JSON(http.StatusOK, AppliedResponse{Applied: applied})
}

// @Summary Get user status
// @Description Get the persisted check-in status of a user. Requires API key.
// @Tags Status
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "User ID"
// @Success 200 {object} UserStatusResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /users/{id}/status [get]
func (h *Handler) getUserStatus(c *gin.Context) {
	userID := c.Param("id")
	log := h.logger.WithField("method", "getUserStatus").WithField("user_id", userID)

	status, err := h.watchdogService.GetUserStatus(c.Request.Context(), userID)
	if err != nil {
		log.WithError(err).Error("Failed to get user status from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, ModelToUserStatusResponse(status))
}

// @Summary Get family members with statuses
// @Description List members of a family with their current check-in status. Requires API key.
// @Tags Status
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Family ID"
// @Success 200 {array} FamilyMemberResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /families/{id}/members [get]
func (h *Handler) getFamilyMembers(c *gin.Context) {
	familyID := c.Param("id")
	log := h.logger.WithField("method", "getFamilyMembers").WithField("family_id", familyID)

	members, err := h.watchdogService.GetFamilyStatus(c.Request.Context(), familyID)
	if err != nil {
		log.WithError(err).Error("Failed to get family status from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, ModelsToFamilyMemberResponses(members))
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// statusForError сопоставляет ошибки сервиса с HTTP-кодом и телом ответа
func statusForError(err error) (int, gin.H) {
	if errors.Is(err, service.ErrNoIdentity) {
		return http.StatusBadRequest, gin.H{"error": "user identity is required"}
	}
	return http.StatusInternalServerError, gin.H{"error": "internal server error"}
}
