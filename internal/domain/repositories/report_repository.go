package repositories

import (
	"fmt"

	"github.com/agenciahub/debriefing-api/internal/domain/entities"
	"gorm.io/gorm"
)

// ReportRepository implementa o acesso a dados dos relatórios de debriefing
type ReportRepository struct {
	db *gorm.DB
}

// NewReportRepository cria uma nova instância de ReportRepository
func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Create persiste um relatório completo em uma única escrita.
// Não há commit parcial: ou o relatório inteiro entra, ou nada entra.
func (r *ReportRepository) Create(report *entities.DebriefingReport) error {
	if err := r.db.Create(report).Error; err != nil {
		return fmt.Errorf("erro ao salvar relatório: %w", err)
	}
	return nil
}

// FindByID busca um relatório pelo seu UUID
func (r *ReportRepository) FindByID(id string) (*entities.DebriefingReport, error) {
	var report entities.DebriefingReport
	if err := r.db.Where("id = ?", id).First(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

// FindAll retorna relatórios paginados, opcionalmente filtrados por cliente.
// Os blobs de dados brutos são omitidos da listagem para não inflar a
// resposta; eles só vêm na busca por id.
func (r *ReportRepository) FindAll(clientID string, page, limit int) ([]entities.DebriefingReport, int64, error) {
	var reports []entities.DebriefingReport
	var total int64

	query := r.db.Model(&entities.DebriefingReport{})
	if clientID != "" {
		query = query.Where("client_id = ?", clientID)
	}

	query.Count(&total)

	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	offset := (page - 1) * limit

	err := query.
		Omit("dados_consolidados", "dados_leads", "dados_compradores", "dados_trafego", "dados_pesquisa", "dados_outras_fontes").
		Order("created_at desc").
		Offset(offset).Limit(limit).
		Find(&reports).Error
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao buscar relatórios: %w", err)
	}

	return reports, total, nil
}

// Delete remove um relatório pelo id
func (r *ReportRepository) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&entities.DebriefingReport{})
	if result.Error != nil {
		return fmt.Errorf("erro ao excluir relatório: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
