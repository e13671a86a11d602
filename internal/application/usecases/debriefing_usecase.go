package usecases

import (
	"github.com/agenciahub/debriefing-api/internal/domain/entities"
	"github.com/agenciahub/debriefing-api/internal/domain/repositories"
)

// DebriefingUseCase implementa os casos de uso de leitura e remoção dos
// relatórios consolidados
type DebriefingUseCase struct {
	reportRepo *repositories.ReportRepository
}

// NewDebriefingUseCase cria uma nova instância de DebriefingUseCase
func NewDebriefingUseCase(reportRepo *repositories.ReportRepository) *DebriefingUseCase {
	return &DebriefingUseCase{reportRepo: reportRepo}
}

// GetReports retorna relatórios paginados, com filtro opcional por cliente
func (u *DebriefingUseCase) GetReports(clientID string, page, limit int) ([]entities.DebriefingReport, int64, error) {
	return u.reportRepo.FindAll(clientID, page, limit)
}

// GetReport retorna um relatório completo, com os blobs de dados brutos
func (u *DebriefingUseCase) GetReport(id string) (*entities.DebriefingReport, error) {
	return u.reportRepo.FindByID(id)
}

// DeleteReport remove um relatório
func (u *DebriefingUseCase) DeleteReport(id string) error {
	return u.reportRepo.Delete(id)
}
