package entities

import (
	"time"
)

// DebriefingReport é o relatório consolidado de um lançamento, persistido ao
// final do assistente de importação. Os totais e métricas derivadas são
// campos planos consumidos pelos dashboards; os dados por linha ficam em
// blobs jsonb com as linhas originais dos arquivos, não o agregado.
type DebriefingReport struct {
	ID       string `json:"id" gorm:"primaryKey;column:id;type:uuid"`
	ClientID string `json:"client_id" gorm:"column:client_id;type:uuid;index"`
	UserID   string `json:"user_id" gorm:"column:user_id;type:uuid"`
	Nome     string `json:"nome" gorm:"column:nome"`

	LeadsTotal        int     `json:"leads_total" gorm:"column:leads_total"`
	VendasTotal       int     `json:"vendas_total" gorm:"column:vendas_total"`
	InvestimentoTotal float64 `json:"investimento_total" gorm:"column:investimento_total"`
	FaturamentoTotal  float64 `json:"faturamento_total" gorm:"column:faturamento_total"`

	CPL                float64 `json:"cpl" gorm:"column:cpl"`
	CPV                float64 `json:"cpv" gorm:"column:cpv"`
	CPC                float64 `json:"cpc" gorm:"column:cpc"`
	CTR                float64 `json:"ctr" gorm:"column:ctr"`
	ROAS               float64 `json:"roas" gorm:"column:roas"`
	TicketMedio        float64 `json:"ticket_medio" gorm:"column:ticket_medio"`
	ConversaoLeadVenda float64 `json:"conversao_lead_venda" gorm:"column:conversao_lead_venda"`

	PeriodoInicio string `json:"periodo_inicio" gorm:"column:periodo_inicio"`
	PeriodoFim    string `json:"periodo_fim" gorm:"column:periodo_fim"`

	DadosConsolidados  JSONB `json:"dados_consolidados,omitempty" gorm:"column:dados_consolidados"`
	DadosLeads         JSONB `json:"dados_leads,omitempty" gorm:"column:dados_leads"`
	DadosCompradores   JSONB `json:"dados_compradores,omitempty" gorm:"column:dados_compradores"`
	DadosTrafego       JSONB `json:"dados_trafego,omitempty" gorm:"column:dados_trafego"`
	DadosPesquisa      JSONB `json:"dados_pesquisa,omitempty" gorm:"column:dados_pesquisa"`
	DadosOutrasFontes  JSONB `json:"dados_outras_fontes,omitempty" gorm:"column:dados_outras_fontes"`
	DistribuicaoEtapas JSONB `json:"distribuicao_etapas,omitempty" gorm:"column:distribuicao_etapas"`

	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

// TableName fixa o nome da tabela
func (DebriefingReport) TableName() string {
	return "debriefing_reports"
}
