package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campaignforge/backend/internal/http/dto"
	"github.com/campaignforge/backend/internal/models"
)

type MetaHandler struct{}

func NewMetaHandler() *MetaHandler {
	return &MetaHandler{}
}

type MetaPlatform struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	ContentType string `json:"content_type"`
	HasVisuals  bool   `json:"has_visuals"`
}

var predefinedPlatforms = []MetaPlatform{
	{ID: models.PlatformLinkedIn, Label: "LinkedIn"},
	{ID: models.PlatformFacebook, Label: "Facebook"},
	{ID: models.PlatformInstagram, Label: "Instagram"},
	{ID: models.PlatformTwitter, Label: "Twitter/X"},
	{ID: models.PlatformGoogleAds, Label: "Google Ads"},
	{ID: models.PlatformEmail, Label: "Email"},
}

func (h *MetaHandler) GetPlatforms(c *fiber.Ctx) error {
	platforms := make([]MetaPlatform, len(predefinedPlatforms))
	for i, p := range predefinedPlatforms {
		p.ContentType = models.ContentTypeFor(p.ID)
		p.HasVisuals = models.PlatformWantsVisual(p.ID)
		platforms[i] = p
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: platforms})
}
