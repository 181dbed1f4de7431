package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campaignforge/backend/internal/http/dto"
	"github.com/campaignforge/backend/internal/middleware"
	"github.com/campaignforge/backend/internal/repositories"
	"github.com/campaignforge/backend/internal/services"
)

type CampaignHandler struct {
	campaignService *services.CampaignService
	auditRepo       *repositories.AuditRepo
	log             *zap.Logger
}

func NewCampaignHandler(campaignService *services.CampaignService, auditRepo *repositories.AuditRepo, log *zap.Logger) *CampaignHandler {
	return &CampaignHandler{campaignService: campaignService, auditRepo: auditRepo, log: log}
}

// CreateCampaign accepts the brief, responds 201 with the pending campaign
// and leaves the pipeline running in the background.
func (h *CampaignHandler) CreateCampaign(c *fiber.Ctx) error {
	var req dto.CreateCampaignRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	userID := middleware.GetUserID(c)
	campaign, err := h.campaignService.Create(c.Context(), userID, services.CreateCampaignInput{
		Name:        req.Name,
		Brief:       req.Brief,
		BudgetCents: req.BudgetCents,
		Platforms:   req.Platforms,
		TargetKPIs:  req.TargetKPIs,
		SourceURL:   req.SourceURL,
	})
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		h.log.Error("create campaign failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: dto.CampaignResponse{Campaign: campaign}})
}

func (h *CampaignHandler) GetCampaign(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid campaign id"})
	}

	campaign, result, err := h.campaignService.Get(c.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "campaign not found"})
	}
	if err != nil {
		h.log.Error("get campaign failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	if campaign.OwnerUserID != middleware.GetUserID(c) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "campaign not found"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: dto.CampaignResponse{Campaign: campaign, Result: result}})
}

func (h *CampaignHandler) ListCampaigns(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	filter := repositories.CampaignFilter{
		OwnerUserID: &userID,
		Limit:       20,
	}

	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Offset = n
		}
	}
	if v := c.Query("status"); v != "" {
		filter.Status = &v
	}

	campaigns, err := h.campaignService.List(c.Context(), filter)
	if err != nil {
		h.log.Error("list campaigns failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: campaigns})
}

// GetCampaignAudit exposes the status transition trail for debugging.
func (h *CampaignHandler) GetCampaignAudit(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid campaign id"})
	}

	campaign, _, err := h.campaignService.Get(c.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "campaign not found"})
	}
	if err != nil {
		h.log.Error("get campaign failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	if campaign.OwnerUserID != middleware.GetUserID(c) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "campaign not found"})
	}

	logs, err := h.auditRepo.GetByCampaign(c.Context(), id, 50, 0)
	if err != nil {
		h.log.Error("get audit trail failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: logs})
}
