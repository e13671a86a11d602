package entities

import "time"

// CampaignStageMapping guarda a classificação de etapa de funil confirmada
// manualmente para uma campanha de um cliente. O par (client_id,
// campaign_name) é único: importações futuras do mesmo cliente reutilizam a
// classificação humana em vez da detecção por apelido.
type CampaignStageMapping struct {
	ID           string    `json:"id" gorm:"primaryKey;column:id;type:uuid"`
	ClientID     string    `json:"client_id" gorm:"column:client_id;type:uuid;uniqueIndex:idx_client_campaign"`
	CampaignName string    `json:"campaign_name" gorm:"column:campaign_name;uniqueIndex:idx_client_campaign"`
	Stage        string    `json:"stage" gorm:"column:stage"`
	Investment   float64   `json:"investment" gorm:"column:investment"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"column:updated_at"`
}

// TableName fixa o nome da tabela
func (CampaignStageMapping) TableName() string {
	return "campaign_stage_mappings"
}
