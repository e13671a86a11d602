package importer

import "errors"

// Erros da pipeline de importação. Handlers mapeiam cada um para o status
// HTTP adequado; nenhum deles dispara retry automático.
var (
	// ErrEmptyFile indica um CSV sem nenhuma linha utilizável
	ErrEmptyFile = errors.New("arquivo vazio: nenhuma linha utilizável encontrada")

	// ErrMissingRequiredField indica mapeamento de colunas incompleto
	ErrMissingRequiredField = errors.New("campo obrigatório não mapeado")

	// ErrRowFormat indica falha de formato (data ou número) nas linhas amostradas
	ErrRowFormat = errors.New("formato inválido nas linhas do arquivo")

	// ErrUnknownDatasetType indica um tipo de arquivo fora da lista aceita
	ErrUnknownDatasetType = errors.New("tipo de arquivo desconhecido")
)
