package importer

// DerivedMetrics reúne os totais do relatório e as métricas derivadas.
// Todos os quocientes são protegidos: denominador zero resulta em zero,
// nunca em NaN ou infinito.
type DerivedMetrics struct {
	VendasTotal       int     `json:"vendas_total"`
	LeadsTotal        int     `json:"leads_total"`
	InvestimentoTotal float64 `json:"investimento_total"`
	FaturamentoTotal  float64 `json:"faturamento_total"`
	ImpressoesTotal   int     `json:"impressoes_total"`
	CliquesTotal      int     `json:"cliques_total"`

	CPL                float64 `json:"cpl"`
	CPV                float64 `json:"cpv"`
	CPC                float64 `json:"cpc"`
	CTR                float64 `json:"ctr"`
	ROAS               float64 `json:"roas"`
	TicketMedio        float64 `json:"ticket_medio"`
	ConversaoLeadVenda float64 `json:"conversao_lead_venda"`

	PeriodoInicio string `json:"periodo_inicio"`
	PeriodoFim    string `json:"periodo_fim"`
}

// CalculateMetrics deriva as métricas do relatório a partir dos buckets
// consolidados. O período é o intervalo (min, max) das datas presentes nos
// buckets; sem nenhuma data, ambos os limites caem na data de hoje.
func CalculateMetrics(buckets []AggregateBucket, clock Clock) DerivedMetrics {
	var m DerivedMetrics

	for _, b := range buckets {
		m.VendasTotal += b.Vendas
		m.LeadsTotal += b.Leads
		m.InvestimentoTotal += b.Gasto
		m.FaturamentoTotal += b.Faturamento
		m.ImpressoesTotal += b.Impressoes
		m.CliquesTotal += b.Cliques

		if b.Data == "" {
			continue
		}
		if m.PeriodoInicio == "" || b.Data < m.PeriodoInicio {
			m.PeriodoInicio = b.Data
		}
		if m.PeriodoFim == "" || b.Data > m.PeriodoFim {
			m.PeriodoFim = b.Data
		}
	}

	if m.PeriodoInicio == "" {
		today := clock.Now().Format(isoDateLayout)
		m.PeriodoInicio = today
		m.PeriodoFim = today
	}

	m.CPL = safeDiv(m.InvestimentoTotal, float64(m.LeadsTotal))
	m.CPV = safeDiv(m.InvestimentoTotal, float64(m.VendasTotal))
	m.CPC = safeDiv(m.InvestimentoTotal, float64(m.CliquesTotal))
	m.CTR = safeDiv(float64(m.CliquesTotal), float64(m.ImpressoesTotal))
	m.ROAS = safeDiv(m.FaturamentoTotal, m.InvestimentoTotal)
	m.TicketMedio = safeDiv(m.FaturamentoTotal, float64(m.VendasTotal))
	m.ConversaoLeadVenda = safeDiv(float64(m.VendasTotal), float64(m.LeadsTotal))

	return m
}

func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
