package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/agenciahub/debriefing-api/internal/application/usecases"
	"github.com/agenciahub/debriefing-api/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// DebriefingHandler lida com a leitura e remoção dos relatórios consolidados
type DebriefingHandler struct {
	debriefingUseCase *usecases.DebriefingUseCase
}

// NewDebriefingHandler cria uma nova instância de DebriefingHandler
func NewDebriefingHandler(debriefingUseCase *usecases.DebriefingUseCase) *DebriefingHandler {
	return &DebriefingHandler{debriefingUseCase: debriefingUseCase}
}

// GetReports retorna relatórios paginados
// @Summary Lista relatórios de debriefing
// @Description Retorna os relatórios consolidados, paginados e com filtro opcional por cliente. Os blobs de dados brutos são omitidos da listagem.
// @Tags debriefings
// @Produce json
// @Param page query int false "Página atual" default(1)
// @Param limit query int false "Itens por página" default(10)
// @Param client_id query string false "Filtrar por cliente"
// @Success 200 {object} map[string]interface{} "Lista de relatórios"
// @Router /debriefings [get]
func (h *DebriefingHandler) GetReports(c *fiber.Ctx) error {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		return c.Status(400).JSON(fiber.Map{"error": "Parâmetro 'page' inválido"})
	}

	limit, err := strconv.Atoi(c.Query("limit", "10"))
	if err != nil || limit < 1 {
		return c.Status(400).JSON(fiber.Map{"error": "Parâmetro 'limit' inválido"})
	}

	reports, total, err := h.debriefingUseCase.GetReports(c.Query("client_id"), page, limit)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erro ao buscar relatórios: " + err.Error()})
	}

	return c.JSON(fiber.Map{
		"data":  reports,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// GetReport retorna um relatório completo pelo id
func (h *DebriefingHandler) GetReport(c *fiber.Ctx) error {
	report, err := h.debriefingUseCase.GetReport(c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Relatório não encontrado"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Erro ao buscar relatório: " + err.Error()})
	}

	return c.JSON(fiber.Map{
		"report":       report,
		"periodo_dias": periodDays(report.PeriodoInicio, report.PeriodoFim),
	})
}

// periodDays expande o período do relatório em uma lista de dias para os
// gráficos do frontend
func periodDays(inicio, fim string) []string {
	from, err := time.Parse("2006-01-02", inicio)
	if err != nil {
		return []string{}
	}
	to, err := time.Parse("2006-01-02", fim)
	if err != nil {
		return []string{}
	}
	return utils.GenerateDateRange(from, to)
}

// DeleteReport remove um relatório pelo id
func (h *DebriefingHandler) DeleteReport(c *fiber.Ctx) error {
	if err := h.debriefingUseCase.DeleteReport(c.Params("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Relatório não encontrado"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Erro ao excluir relatório: " + err.Error()})
	}
	return c.SendStatus(204)
}
