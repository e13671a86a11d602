package importer

// DatasetType identifica cada um dos arquivos aceitos pelo assistente de importação
type DatasetType string

const (
	DatasetVendas       DatasetType = "sales"
	DatasetLeads        DatasetType = "leads"
	DatasetTrafego      DatasetType = "traffic"
	DatasetPesquisa     DatasetType = "survey"
	DatasetOutrasFontes DatasetType = "other_sources"
)

// AllDatasetTypes lista os tipos na ordem em que o assistente os apresenta
var AllDatasetTypes = []DatasetType{
	DatasetVendas,
	DatasetLeads,
	DatasetTrafego,
	DatasetPesquisa,
	DatasetOutrasFontes,
}

// IsValid verifica se o tipo informado é um dos tipos conhecidos
func (t DatasetType) IsValid() bool {
	switch t {
	case DatasetVendas, DatasetLeads, DatasetTrafego, DatasetPesquisa, DatasetOutrasFontes:
		return true
	}
	return false
}

// IsOptional indica se o arquivo pode ser omitido na consolidação.
// Pesquisa e outras fontes são informativos e não entram no join.
func (t DatasetType) IsOptional() bool {
	return t == DatasetPesquisa || t == DatasetOutrasFontes
}

// UploadedDataset representa um arquivo CSV carregado em uma etapa do assistente.
// O ciclo de vida é curto: criado no upload, mutado pelos ajustes de mapeamento
// do usuário e descartado após a confirmação da importação.
type UploadedDataset struct {
	Type             DatasetType         `json:"type"`
	RawHeaders       []string            `json:"raw_headers"`
	RawRows          []map[string]string `json:"-"`
	ColumnMapping    map[string]string   `json:"column_mapping"`
	IsValid          bool                `json:"is_valid"`
	ValidationErrors []string            `json:"validation_errors"`
	IsOptional       bool                `json:"is_optional"`
}

// RowCount retorna a quantidade de linhas de dados do arquivo
func (d *UploadedDataset) RowCount() int {
	return len(d.RawRows)
}

// SampleRows retorna até n linhas para pré-visualização no assistente
func (d *UploadedDataset) SampleRows(n int) []map[string]string {
	if n > len(d.RawRows) {
		n = len(d.RawRows)
	}
	return d.RawRows[:n]
}
