package usecases

import (
	"github.com/agenciahub/debriefing-api/internal/domain/entities"
	"github.com/agenciahub/debriefing-api/internal/domain/repositories"
)

// StageMappingUseCase expõe as classificações de etapa salvas por cliente
type StageMappingUseCase struct {
	stageRepo *repositories.StageMappingRepository
}

// NewStageMappingUseCase cria uma nova instância de StageMappingUseCase
func NewStageMappingUseCase(stageRepo *repositories.StageMappingRepository) *StageMappingUseCase {
	return &StageMappingUseCase{stageRepo: stageRepo}
}

// GetByClient retorna as classificações persistidas de um cliente
func (u *StageMappingUseCase) GetByClient(clientID string) ([]entities.CampaignStageMapping, error) {
	return u.stageRepo.FindByClient(clientID)
}
