package importer

import "strings"

// AggregateBucket acumula os totais de uma chave (data, utm_source,
// utm_medium, utm_campaign). Cada registro normalizado contribui exatamente
// para um bucket, o da sua própria chave: vendas, leads e tráfego NÃO são
// juntados entre si por email ou atribuição cruzada, apenas por igualdade de
// chave. Um bucket pode, portanto, ter vendas>0 e leads==0, ou gasto sem
// nenhum lead no mesmo dia.
type AggregateBucket struct {
	Data        string  `json:"data"`
	UTMSource   string  `json:"utm_source"`
	UTMMedium   string  `json:"utm_medium"`
	UTMCampaign string  `json:"utm_campaign"`
	Vendas      int     `json:"vendas"`
	Faturamento float64 `json:"faturamento"`
	Leads       int     `json:"leads"`
	Gasto       float64 `json:"gasto"`
	Impressoes  int     `json:"impressoes"`
	Cliques     int     `json:"cliques"`
}

// Key retorna a chave composta do bucket no formato usado pela consolidação
func (b *AggregateBucket) Key() string {
	return strings.Join([]string{b.Data, b.UTMSource, b.UTMMedium, b.UTMCampaign}, "_")
}

// Contribution é um evento tipado de consolidação. Cada registro normalizado
// vira uma contribuição que sabe sua própria chave e como se aplicar a um
// bucket; a consolidação é um fold sobre o fluxo concatenado de eventos.
type Contribution interface {
	BucketKey() (data, source, medium, campaign string)
	Apply(b *AggregateBucket)
}

// SaleContribution incrementa vendas e soma o faturamento
type SaleContribution struct {
	Data, Source, Medium, Campaign string
	Valor                          float64
}

func (c SaleContribution) BucketKey() (string, string, string, string) {
	return c.Data, c.Source, c.Medium, c.Campaign
}

func (c SaleContribution) Apply(b *AggregateBucket) {
	b.Vendas++
	b.Faturamento += c.Valor
}

// LeadContribution incrementa o contador de leads
type LeadContribution struct {
	Data, Source, Medium, Campaign string
}

func (c LeadContribution) BucketKey() (string, string, string, string) {
	return c.Data, c.Source, c.Medium, c.Campaign
}

func (c LeadContribution) Apply(b *AggregateBucket) {
	b.Leads++
}

// TrafficContribution soma gasto, impressões e cliques
type TrafficContribution struct {
	Data, Source, Medium, Campaign string
	Gasto                          float64
	Impressoes, Cliques            int
}

func (c TrafficContribution) BucketKey() (string, string, string, string) {
	return c.Data, c.Source, c.Medium, c.Campaign
}

func (c TrafficContribution) Apply(b *AggregateBucket) {
	b.Gasto += c.Gasto
	b.Impressoes += c.Impressoes
	b.Cliques += c.Cliques
}

// Consolidate constrói a tabela consolidada a partir dos três arquivos
// obrigatórios já normalizados. Pesquisa e outras fontes são informativos e
// ficam de fora do agregado.
//
// A ordem vendas → leads → tráfego não tem efeito semântico: a criação de
// bucket é idempotente e a acumulação é comutativa campo a campo. A ordem de
// saída preserva a ordem de inserção das chaves, para resultados
// determinísticos.
func Consolidate(sales []SaleRecord, leads []LeadRecord, traffic []TrafficRecord) []AggregateBucket {
	events := make([]Contribution, 0, len(sales)+len(leads)+len(traffic))

	for _, s := range sales {
		events = append(events, SaleContribution{
			Data: s.Data, Source: s.UTMSource, Medium: s.UTMMedium, Campaign: s.UTMCampaign,
			Valor: s.Valor,
		})
	}
	for _, l := range leads {
		events = append(events, LeadContribution{
			Data: l.Data, Source: l.UTMSource, Medium: l.UTMMedium, Campaign: l.UTMCampaign,
		})
	}
	for _, t := range traffic {
		events = append(events, TrafficContribution{
			Data: t.Data, Source: t.UTMSource, Medium: t.UTMMedium, Campaign: t.UTMCampaign,
			Gasto: t.Gasto, Impressoes: t.Impressoes, Cliques: t.Cliques,
		})
	}

	return Reduce(events)
}

// Reduce aplica o fluxo de contribuições sobre o mapa de buckets,
// materializando-os na ordem de primeira aparição de cada chave
func Reduce(events []Contribution) []AggregateBucket {
	buckets := make(map[string]*AggregateBucket)
	var order []string

	for _, ev := range events {
		data, source, medium, campaign := ev.BucketKey()
		key := data + "_" + source + "_" + medium + "_" + campaign

		b, ok := buckets[key]
		if !ok {
			b = &AggregateBucket{
				Data:        data,
				UTMSource:   source,
				UTMMedium:   medium,
				UTMCampaign: campaign,
			}
			buckets[key] = b
			order = append(order, key)
		}
		ev.Apply(b)
	}

	out := make([]AggregateBucket, 0, len(order))
	for _, key := range order {
		out = append(out, *buckets[key])
	}
	return out
}
