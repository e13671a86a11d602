package handlers

import (
	"errors"

	"github.com/agenciahub/debriefing-api/internal/application/usecases"
	"github.com/agenciahub/debriefing-api/internal/importer"
	"github.com/gofiber/fiber/v2"
)

// sampleRowCount limita a pré-visualização devolvida após o upload
const sampleRowCount = 5

// ImportHandler lida com as etapas do assistente de importação
type ImportHandler struct {
	importUseCase *usecases.ImportUseCase
}

// NewImportHandler cria uma nova instância de ImportHandler
func NewImportHandler(importUseCase *usecases.ImportUseCase) *ImportHandler {
	return &ImportHandler{importUseCase: importUseCase}
}

type createSessionRequest struct {
	ClientID string `json:"client_id"`
	Nome     string `json:"nome"`
}

// CreateSession abre uma nova sessão do assistente de importação
// @Summary Cria uma sessão de importação
// @Description Abre uma sessão do assistente de debriefing para um cliente. A sessão expira após 2 horas sem atividade.
// @Tags import
// @Accept json
// @Produce json
// @Param body body createSessionRequest true "Cliente dono do debriefing"
// @Success 201 {object} map[string]interface{} "Sessão criada"
// @Failure 400 {object} map[string]interface{} "Erro de parâmetros"
// @Router /debriefings/import [post]
func (h *ImportHandler) CreateSession(c *fiber.Ctx) error {
	var req createSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Corpo da requisição inválido"})
	}
	if req.ClientID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Parâmetro 'client_id' é obrigatório"})
	}

	session := h.importUseCase.CreateSession(req.ClientID, req.Nome)
	return c.Status(201).JSON(session)
}

// UploadFile recebe o conteúdo de um dos CSVs do debriefing
// @Summary Carrega um arquivo CSV na sessão
// @Description Interpreta o CSV, sugere o mapeamento de colunas e valida as primeiras linhas. O corpo da requisição é o texto bruto do arquivo.
// @Tags import
// @Accept text/csv
// @Produce json
// @Param session_id path string true "ID da sessão"
// @Param type path string true "Tipo do arquivo" Enums(sales, leads, traffic, survey, other_sources)
// @Success 200 {object} map[string]interface{} "Arquivo interpretado"
// @Failure 404 {object} map[string]interface{} "Sessão não encontrada"
// @Failure 422 {object} map[string]interface{} "Arquivo vazio ou tipo desconhecido"
// @Router /debriefings/import/{session_id}/files/{type} [post]
func (h *ImportHandler) UploadFile(c *fiber.Ctx) error {
	t := importer.DatasetType(c.Params("type"))

	dataset, err := h.importUseCase.UploadFile(c.Params("session_id"), t, c.Body())
	if err != nil {
		return importError(c, err)
	}

	return c.JSON(fiber.Map{
		"dataset":     dataset,
		"row_count":   dataset.RowCount(),
		"sample_rows": dataset.SampleRows(sampleRowCount),
	})
}

type updateMappingRequest struct {
	Mapping map[string]string `json:"mapping"`
}

// UpdateMapping aplica ajustes manuais ao mapeamento de colunas e revalida
func (h *ImportHandler) UpdateMapping(c *fiber.Ctx) error {
	var req updateMappingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Corpo da requisição inválido"})
	}

	t := importer.DatasetType(c.Params("type"))
	dataset, err := h.importUseCase.UpdateMapping(c.Params("session_id"), t, req.Mapping)
	if err != nil {
		return importError(c, err)
	}

	return c.JSON(fiber.Map{"dataset": dataset})
}

// PreviewStages devolve a classificação de etapas das campanhas de tráfego
func (h *ImportHandler) PreviewStages(c *fiber.Ctx) error {
	mappings, err := h.importUseCase.PreviewStages(c.Params("session_id"))
	if err != nil {
		return importError(c, err)
	}
	return c.JSON(fiber.Map{"etapas": mappings})
}

type updateStagesRequest struct {
	Etapas map[string]importer.FunnelStage `json:"etapas"`
}

// UpdateStages registra reclassificações manuais de campanhas na sessão
func (h *ImportHandler) UpdateStages(c *fiber.Ctx) error {
	var req updateStagesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Corpo da requisição inválido"})
	}

	if err := h.importUseCase.UpdateStages(c.Params("session_id"), req.Etapas); err != nil {
		return importError(c, err)
	}
	return c.SendStatus(204)
}

// Confirm consolida os arquivos da sessão e persiste o relatório
// @Summary Confirma a importação
// @Description Normaliza e consolida vendas, leads e tráfego, calcula as métricas derivadas, classifica as campanhas e persiste o relatório em uma única escrita.
// @Tags import
// @Produce json
// @Param session_id path string true "ID da sessão"
// @Success 201 {object} entities.DebriefingReport "Relatório persistido"
// @Failure 404 {object} map[string]interface{} "Sessão não encontrada"
// @Failure 422 {object} map[string]interface{} "Arquivos obrigatórios ausentes ou inválidos"
// @Failure 500 {object} map[string]interface{} "Falha de persistência"
// @Router /debriefings/import/{session_id}/confirm [post]
func (h *ImportHandler) Confirm(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	report, err := h.importUseCase.Confirm(c.Params("session_id"), userID)
	if err != nil {
		return importError(c, err)
	}
	return c.Status(201).JSON(report)
}

// importError mapeia os erros da pipeline para o status HTTP adequado.
// Erros de validação (422) permitem correção local no assistente; falha de
// persistência (500) encerra a ação e exige nova confirmação.
func importError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, usecases.ErrSessionNotFound):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, usecases.ErrDatasetNotLoaded),
		errors.Is(err, usecases.ErrMissingDatasets),
		errors.Is(err, usecases.ErrDatasetInvalid),
		errors.Is(err, importer.ErrEmptyFile),
		errors.Is(err, importer.ErrMissingRequiredField),
		errors.Is(err, importer.ErrRowFormat):
		return c.Status(422).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, importer.ErrUnknownDatasetType),
		errors.Is(err, usecases.ErrUnknownColumn),
		errors.Is(err, usecases.ErrUnknownStage),
		errors.Is(err, usecases.ErrUnknownCampaign):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(500).JSON(fiber.Map{"error": "Erro ao processar importação: " + err.Error()})
	}
}
