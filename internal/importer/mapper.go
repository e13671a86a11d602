package importer

import "strings"

// FieldSpec descreve um campo canônico de um tipo de arquivo e os apelidos
// de cabeçalho que o identificam em exports de diferentes ferramentas.
type FieldSpec struct {
	Key      string
	Aliases  []string
	Required bool
}

// datasetFields define o esquema canônico de cada tipo de arquivo.
// Os apelidos cobrem exports comuns (Hotmart, planilhas de leads, Meta Ads).
var datasetFields = map[DatasetType][]FieldSpec{
	DatasetVendas: {
		{Key: "data", Aliases: []string{"data", "date", "dia", "data da venda", "data da compra"}, Required: true},
		{Key: "email", Aliases: []string{"email", "e-mail", "mail"}, Required: true},
		{Key: "valor", Aliases: []string{"valor", "value", "preco", "preço", "price", "amount", "faturamento"}, Required: true},
		{Key: "nome", Aliases: []string{"nome", "name", "comprador"}},
		{Key: "telefone", Aliases: []string{"telefone", "phone", "celular", "whatsapp"}},
		{Key: "utm_source", Aliases: []string{"utm_source", "utm source", "origem"}},
		{Key: "utm_medium", Aliases: []string{"utm_medium", "utm medium", "midia", "mídia"}},
		{Key: "utm_campaign", Aliases: []string{"utm_campaign", "utm campaign"}},
		{Key: "utm_term", Aliases: []string{"utm_term", "utm term"}},
	},
	DatasetLeads: {
		{Key: "data", Aliases: []string{"data", "date", "dia", "data de inscricao", "data de inscrição", "created"}, Required: true},
		{Key: "email", Aliases: []string{"email", "e-mail", "mail"}, Required: true},
		{Key: "nome", Aliases: []string{"nome", "name"}},
		{Key: "telefone", Aliases: []string{"telefone", "phone", "celular", "whatsapp"}},
		{Key: "utm_source", Aliases: []string{"utm_source", "utm source", "origem"}},
		{Key: "utm_medium", Aliases: []string{"utm_medium", "utm medium", "midia", "mídia"}},
		{Key: "utm_campaign", Aliases: []string{"utm_campaign", "utm campaign"}},
		{Key: "utm_term", Aliases: []string{"utm_term", "utm term"}},
	},
	DatasetTrafego: {
		{Key: "data", Aliases: []string{"data", "date", "dia", "day", "reporting starts", "início dos relatórios"}, Required: true},
		{Key: "campanha", Aliases: []string{"campanha", "campaign", "nome da campanha", "campaign name"}, Required: true},
		{Key: "gasto", Aliases: []string{"gasto", "valor usado", "spend", "amount spent", "custo", "cost"}, Required: true},
		{Key: "impressoes", Aliases: []string{"impressoes", "impressões", "impressions"}},
		{Key: "cliques", Aliases: []string{"cliques", "clicks", "cliques no link", "link clicks"}},
	},
	DatasetPesquisa: {
		{Key: "data", Aliases: []string{"data", "date", "dia", "timestamp", "carimbo"}, Required: true},
		{Key: "email", Aliases: []string{"email", "e-mail", "mail"}, Required: true},
	},
	DatasetOutrasFontes: {
		{Key: "data", Aliases: []string{"data", "date", "dia"}, Required: true},
		{Key: "origem", Aliases: []string{"origem", "fonte", "source", "canal"}},
		{Key: "gasto", Aliases: []string{"gasto", "valor usado", "spend", "investimento", "custo"}},
	},
}

// Fields retorna o esquema canônico do tipo informado
func Fields(t DatasetType) []FieldSpec {
	return datasetFields[t]
}

// RequiredFields retorna apenas os campos obrigatórios do tipo informado
func RequiredFields(t DatasetType) []string {
	var out []string
	for _, f := range datasetFields[t] {
		if f.Required {
			out = append(out, f.Key)
		}
	}
	return out
}

// MapColumns sugere um mapeamento campo-canônico → cabeçalho para os
// cabeçalhos carregados. Um cabeçalho casa com um campo quando, após
// minúsculas e trim, é igual à chave do campo, igual a um apelido, ou contém
// um apelido como substring. O primeiro cabeçalho que casar vence; campos sem
// correspondência ficam fora do mapa.
//
// O resultado é uma sugestão: o usuário pode sobrescrever qualquer entrada
// antes da validação. A função é determinística e idempotente sobre os mesmos
// cabeçalhos.
func MapColumns(t DatasetType, headers []string) map[string]string {
	mapping := make(map[string]string)

	for _, field := range datasetFields[t] {
		for _, header := range headers {
			h := strings.ToLower(strings.TrimSpace(header))
			if h == "" {
				continue
			}
			if matchesField(h, field) {
				mapping[field.Key] = h
				break
			}
		}
	}

	return mapping
}

func matchesField(header string, field FieldSpec) bool {
	if header == field.Key {
		return true
	}
	for _, alias := range field.Aliases {
		if header == alias || strings.Contains(header, alias) {
			return true
		}
	}
	return false
}
