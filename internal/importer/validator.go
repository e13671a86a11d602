package importer

import "fmt"

// validationSampleSize limita a checagem de formato às primeiras linhas.
// A validação é amostral, não exaustiva: linhas além da amostra só são
// tratadas na normalização.
const validationSampleSize = 10

// ValidateDataset verifica se um arquivo mapeado está pronto para a
// consolidação. Nunca gera pânico: sempre retorna (ok, erros), mesmo com
// dataset vazio ou mapeamento nulo.
//
// Checagens, nesta ordem:
//  1. todo campo obrigatório do tipo precisa de um cabeçalho mapeado;
//  2. nas primeiras linhas, datas preenchidas precisam ter o formato
//     YYYY-MM-DD ou DD/MM/YYYY e ser datas de calendário válidas;
//  3. em vendas, o campo valor precisa ser um número positivo;
//  4. em tráfego, o campo gasto precisa ser um número não negativo.
//
// Qualquer erro de campo obrigatório bloqueia o avanço do assistente.
func ValidateDataset(t DatasetType, mapping map[string]string, rows []map[string]string) (bool, []string) {
	var errs []string

	for _, field := range RequiredFields(t) {
		if mapping[field] == "" {
			errs = append(errs, fmt.Sprintf("Campo obrigatório '%s' não mapeado", field))
		}
	}
	if len(errs) > 0 {
		return false, errs
	}

	sample := rows
	if len(sample) > validationSampleSize {
		sample = sample[:validationSampleSize]
	}

	dateHeader := mapping["data"]
	for i, row := range sample {
		n := i + 1

		if dateHeader != "" {
			if v := row[dateHeader]; v != "" && !isValidDateShape(v) {
				errs = append(errs, fmt.Sprintf("Linha %d: data inválida '%s'", n, v))
			}
		}

		switch t {
		case DatasetVendas:
			v := row[mapping["valor"]]
			if amount, err := ParseDecimal(v); err != nil || amount <= 0 {
				errs = append(errs, fmt.Sprintf("Linha %d: valor inválido '%s'", n, v))
			}
		case DatasetTrafego:
			v := row[mapping["gasto"]]
			if spend, err := ParseDecimal(v); err != nil || spend < 0 {
				errs = append(errs, fmt.Sprintf("Linha %d: gasto inválido '%s'", n, v))
			}
		}
	}

	return len(errs) == 0, errs
}
