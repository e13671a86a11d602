package repositories

import (
	"fmt"

	"github.com/agenciahub/debriefing-api/internal/domain/entities"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StageMappingRepository implementa o acesso a dados das classificações de
// etapa de funil salvas por cliente
type StageMappingRepository struct {
	db *gorm.DB
}

// NewStageMappingRepository cria uma nova instância de StageMappingRepository
func NewStageMappingRepository(db *gorm.DB) *StageMappingRepository {
	return &StageMappingRepository{db: db}
}

// FindByClient retorna todas as classificações salvas de um cliente
func (r *StageMappingRepository) FindByClient(clientID string) ([]entities.CampaignStageMapping, error) {
	var mappings []entities.CampaignStageMapping
	err := r.db.
		Where("client_id = ?", clientID).
		Order("campaign_name asc").
		Find(&mappings).Error
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar classificações do cliente: %w", err)
	}
	return mappings, nil
}

// StagesByCampaign retorna as classificações salvas de um cliente indexadas
// pelo nome da campanha, prontas para alimentar o classificador
func (r *StageMappingRepository) StagesByCampaign(clientID string) (map[string]string, error) {
	mappings, err := r.FindByClient(clientID)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(mappings))
	for _, m := range mappings {
		out[m.CampaignName] = m.Stage
	}
	return out, nil
}

// UpsertMany grava classificações confirmadas pelo usuário, com upsert pelo
// par (client_id, campaign_name)
func (r *StageMappingRepository) UpsertMany(mappings []entities.CampaignStageMapping) error {
	if len(mappings) == 0 {
		return nil
	}

	for i := range mappings {
		if mappings[i].ID == "" {
			mappings[i].ID = uuid.NewString()
		}
	}

	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "client_id"}, {Name: "campaign_name"}},
		DoUpdates: clause.AssignmentColumns([]string{"stage", "investment", "updated_at"}),
	}).Create(&mappings).Error
	if err != nil {
		return fmt.Errorf("erro ao salvar classificações: %w", err)
	}
	return nil
}
