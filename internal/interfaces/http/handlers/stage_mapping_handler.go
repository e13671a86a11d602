package handlers

import (
	"github.com/agenciahub/debriefing-api/internal/application/usecases"
	"github.com/gofiber/fiber/v2"
)

// StageMappingHandler lida com as classificações de etapa salvas por cliente
type StageMappingHandler struct {
	stageUseCase *usecases.StageMappingUseCase
}

// NewStageMappingHandler cria uma nova instância de StageMappingHandler
func NewStageMappingHandler(stageUseCase *usecases.StageMappingUseCase) *StageMappingHandler {
	return &StageMappingHandler{stageUseCase: stageUseCase}
}

// GetByClient retorna as classificações persistidas de um cliente
func (h *StageMappingHandler) GetByClient(c *fiber.Ctx) error {
	mappings, err := h.stageUseCase.GetByClient(c.Params("client_id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erro ao buscar classificações: " + err.Error()})
	}
	return c.JSON(fiber.Map{"data": mappings})
}
