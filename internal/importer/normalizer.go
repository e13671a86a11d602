package importer

import (
	"regexp"
	"strings"
	"time"
)

// Unattributed é o valor sentinela usado quando um campo UTM está vazio ou
// sem coluna mapeada. Mantê-lo como string (e não vazio/nulo) garante que
// toda linha participe da chave de consolidação.
const Unattributed = "(unattributed)"

// SaleRecord é uma venda normalizada, imutável após a criação
type SaleRecord struct {
	Data        string  `json:"data"`
	Email       string  `json:"email"`
	Nome        string  `json:"nome,omitempty"`
	Telefone    string  `json:"telefone,omitempty"`
	Valor       float64 `json:"valor"`
	UTMSource   string  `json:"utm_source"`
	UTMMedium   string  `json:"utm_medium"`
	UTMCampaign string  `json:"utm_campaign"`
	UTMTerm     string  `json:"utm_term"`
}

// LeadRecord é um lead normalizado
type LeadRecord struct {
	Data        string `json:"data"`
	Email       string `json:"email"`
	Nome        string `json:"nome,omitempty"`
	Telefone    string `json:"telefone,omitempty"`
	UTMSource   string `json:"utm_source"`
	UTMMedium   string `json:"utm_medium"`
	UTMCampaign string `json:"utm_campaign"`
	UTMTerm     string `json:"utm_term"`
}

// TrafficRecord é uma linha de relatório de anúncios normalizada.
// O importador de tráfego é específico de Meta Ads, por isso utm_source e
// utm_medium são fixados em facebook/paid em vez de lidos do arquivo.
type TrafficRecord struct {
	Data        string  `json:"data"`
	Campanha    string  `json:"campanha"`
	Gasto       float64 `json:"gasto"`
	Impressoes  int     `json:"impressoes"`
	Cliques     int     `json:"cliques"`
	UTMSource   string  `json:"utm_source"`
	UTMMedium   string  `json:"utm_medium"`
	UTMCampaign string  `json:"utm_campaign"`
	UTMTerm     string  `json:"utm_term"`
}

// SurveyRecord é uma resposta de pesquisa normalizada. As respostas em si
// ficam no blob bruto do relatório; aqui só interessam data e email.
type SurveyRecord struct {
	Data  string `json:"data"`
	Email string `json:"email"`
}

// OtherSourceRecord é uma linha de fontes de tráfego fora do Meta Ads
type OtherSourceRecord struct {
	Data   string  `json:"data"`
	Origem string  `json:"origem"`
	Gasto  float64 `json:"gasto"`
}

var brDatePrefix = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}`)

// NormalizeDate reescreve datas DD/MM/YYYY (com HH:MM:SS opcional ao final)
// para YYYY-MM-DD. Datas vazias ou DD/MM/YYYY inválidas viram a data de hoje
// do relógio injetado; qualquer outro formato passa adiante sem alteração.
//
// O default para hoje evita chave nula na consolidação, com o efeito colateral
// conhecido de que datas realmente ausentes colapsam no dia da importação.
func NormalizeDate(raw string, clock Clock) string {
	v := strings.TrimSpace(raw)
	if v == "" {
		return clock.Now().Format(isoDateLayout)
	}

	if brDatePrefix.MatchString(v) {
		t, err := time.Parse(brDateLayout, v[:10])
		if err != nil {
			return clock.Now().Format(isoDateLayout)
		}
		return t.Format(isoDateLayout)
	}

	return v
}

// utmOrDefault lê um campo UTM pelo mapeamento, caindo no sentinela quando a
// coluna não existe ou o valor está vazio
func utmOrDefault(row map[string]string, mapping map[string]string, field string) string {
	header := mapping[field]
	if header == "" {
		return Unattributed
	}
	if v := strings.TrimSpace(row[header]); v != "" {
		return v
	}
	return Unattributed
}

func mappedValue(row map[string]string, mapping map[string]string, field string) string {
	header := mapping[field]
	if header == "" {
		return ""
	}
	return strings.TrimSpace(row[header])
}

// NormalizeSales converte as linhas brutas de vendas em SaleRecords tipados
func NormalizeSales(rows []map[string]string, mapping map[string]string, clock Clock) []SaleRecord {
	out := make([]SaleRecord, 0, len(rows))
	for _, row := range rows {
		valor, err := ParseDecimal(mappedValue(row, mapping, "valor"))
		if err != nil {
			valor = 0
		}
		out = append(out, SaleRecord{
			Data:        NormalizeDate(mappedValue(row, mapping, "data"), clock),
			Email:       strings.ToLower(mappedValue(row, mapping, "email")),
			Nome:        mappedValue(row, mapping, "nome"),
			Telefone:    mappedValue(row, mapping, "telefone"),
			Valor:       valor,
			UTMSource:   utmOrDefault(row, mapping, "utm_source"),
			UTMMedium:   utmOrDefault(row, mapping, "utm_medium"),
			UTMCampaign: utmOrDefault(row, mapping, "utm_campaign"),
			UTMTerm:     utmOrDefault(row, mapping, "utm_term"),
		})
	}
	return out
}

// NormalizeLeads converte as linhas brutas de leads em LeadRecords tipados
func NormalizeLeads(rows []map[string]string, mapping map[string]string, clock Clock) []LeadRecord {
	out := make([]LeadRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, LeadRecord{
			Data:        NormalizeDate(mappedValue(row, mapping, "data"), clock),
			Email:       strings.ToLower(mappedValue(row, mapping, "email")),
			Nome:        mappedValue(row, mapping, "nome"),
			Telefone:    mappedValue(row, mapping, "telefone"),
			UTMSource:   utmOrDefault(row, mapping, "utm_source"),
			UTMMedium:   utmOrDefault(row, mapping, "utm_medium"),
			UTMCampaign: utmOrDefault(row, mapping, "utm_campaign"),
			UTMTerm:     utmOrDefault(row, mapping, "utm_term"),
		})
	}
	return out
}

// NormalizeTraffic converte as linhas brutas do relatório de anúncios em
// TrafficRecords tipados
func NormalizeTraffic(rows []map[string]string, mapping map[string]string, clock Clock) []TrafficRecord {
	out := make([]TrafficRecord, 0, len(rows))
	for _, row := range rows {
		gasto, err := ParseDecimal(mappedValue(row, mapping, "gasto"))
		if err != nil {
			gasto = 0
		}
		out = append(out, TrafficRecord{
			Data:        NormalizeDate(mappedValue(row, mapping, "data"), clock),
			Campanha:    mappedValue(row, mapping, "campanha"),
			Gasto:       gasto,
			Impressoes:  parseCount(mappedValue(row, mapping, "impressoes")),
			Cliques:     parseCount(mappedValue(row, mapping, "cliques")),
			UTMSource:   "facebook",
			UTMMedium:   "paid",
			UTMCampaign: Unattributed,
			UTMTerm:     Unattributed,
		})
	}
	return out
}

// NormalizeSurvey converte as linhas brutas de pesquisa
func NormalizeSurvey(rows []map[string]string, mapping map[string]string, clock Clock) []SurveyRecord {
	out := make([]SurveyRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, SurveyRecord{
			Data:  NormalizeDate(mappedValue(row, mapping, "data"), clock),
			Email: strings.ToLower(mappedValue(row, mapping, "email")),
		})
	}
	return out
}

// NormalizeOtherSources converte as linhas brutas de outras fontes de tráfego
func NormalizeOtherSources(rows []map[string]string, mapping map[string]string, clock Clock) []OtherSourceRecord {
	out := make([]OtherSourceRecord, 0, len(rows))
	for _, row := range rows {
		gasto, err := ParseDecimal(mappedValue(row, mapping, "gasto"))
		if err != nil {
			gasto = 0
		}
		out = append(out, OtherSourceRecord{
			Data:   NormalizeDate(mappedValue(row, mapping, "data"), clock),
			Origem: mappedValue(row, mapping, "origem"),
			Gasto:  gasto,
		})
	}
	return out
}
