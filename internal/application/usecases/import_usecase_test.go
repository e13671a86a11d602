package usecases

import (
	"errors"
	"testing"
	"time"

	"github.com/agenciahub/debriefing-api/internal/importer"
	"github.com/agenciahub/debriefing-api/internal/infrastructure/cache"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// usecase sem banco: as etapas de upload e mapeamento não tocam os
// repositórios, só a sessão em cache
func newSessionOnlyUseCase() *ImportUseCase {
	clock := fixedClock{t: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)}
	return NewImportUseCase(cache.New(), nil, nil, importer.DefaultStageAliases(), clock)
}

const salesCSV = "data,email,valor\n01/02/2024,a@x.com,100\n02/02/2024,b@x.com,200\n"

func TestCreateAndGetSession(t *testing.T) {
	u := newSessionOnlyUseCase()

	session := u.CreateSession("client-1", "Lançamento Março")
	if session.ID == "" {
		t.Fatal("sessão sem id")
	}

	got, err := u.GetSession(session.ID)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if got.ClientID != "client-1" || got.Nome != "Lançamento Março" {
		t.Fatalf("sessão recuperada: %+v", got)
	}
}

func TestGetSessionNotFound(t *testing.T) {
	u := newSessionOnlyUseCase()
	if _, err := u.GetSession("nao-existe"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("esperava ErrSessionNotFound, veio %v", err)
	}
}

func TestUploadFileParsesAndValidates(t *testing.T) {
	u := newSessionOnlyUseCase()
	session := u.CreateSession("client-1", "")

	dataset, err := u.UploadFile(session.ID, importer.DatasetVendas, []byte(salesCSV))
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	if dataset.RowCount() != 2 {
		t.Errorf("linhas: %d", dataset.RowCount())
	}
	if !dataset.IsValid {
		t.Errorf("arquivo deveria validar: %v", dataset.ValidationErrors)
	}
	if dataset.ColumnMapping["valor"] != "valor" {
		t.Errorf("mapeamento sugerido: %v", dataset.ColumnMapping)
	}
	if dataset.IsOptional {
		t.Error("vendas não é opcional")
	}
}

func TestUploadFileUnknownType(t *testing.T) {
	u := newSessionOnlyUseCase()
	session := u.CreateSession("client-1", "")

	_, err := u.UploadFile(session.ID, importer.DatasetType("planilha"), []byte(salesCSV))
	if !errors.Is(err, importer.ErrUnknownDatasetType) {
		t.Fatalf("esperava ErrUnknownDatasetType, veio %v", err)
	}
}

func TestUploadFileEmpty(t *testing.T) {
	u := newSessionOnlyUseCase()
	session := u.CreateSession("client-1", "")

	_, err := u.UploadFile(session.ID, importer.DatasetVendas, []byte("\n\n"))
	if !errors.Is(err, importer.ErrEmptyFile) {
		t.Fatalf("esperava ErrEmptyFile, veio %v", err)
	}
}

func TestUpdateMappingRevalidates(t *testing.T) {
	u := newSessionOnlyUseCase()
	session := u.CreateSession("client-1", "")

	// cabeçalho fora dos apelidos: "total" não mapeia para valor
	csv := "data,email,total\n01/02/2024,a@x.com,100\n"
	dataset, err := u.UploadFile(session.ID, importer.DatasetVendas, []byte(csv))
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if dataset.IsValid {
		t.Fatal("sem valor mapeado deveria reprovar")
	}

	dataset, err = u.UpdateMapping(session.ID, importer.DatasetVendas, map[string]string{"valor": "total"})
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if !dataset.IsValid {
		t.Fatalf("após ajuste manual deveria validar: %v", dataset.ValidationErrors)
	}

	// desmapear um obrigatório volta a reprovar
	dataset, err = u.UpdateMapping(session.ID, importer.DatasetVendas, map[string]string{"valor": ""})
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if dataset.IsValid {
		t.Fatal("desmapeado deveria reprovar")
	}
}

// O usuário ajusta o mapeamento usando os cabeçalhos exatamente como o
// upload os devolveu, com a caixa original do arquivo; o ajuste precisa
// casar com as chaves minúsculas das linhas mesmo assim
func TestUpdateMappingAcceptsOriginalCaseHeaders(t *testing.T) {
	u := newSessionOnlyUseCase()
	session := u.CreateSession("client-1", "")

	csv := "Data,Email,Total\n01/02/2024,a@x.com,100\n"
	dataset, err := u.UploadFile(session.ID, importer.DatasetVendas, []byte(csv))
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if dataset.RawHeaders[2] != "Total" {
		t.Fatalf("cabeçalhos devolvidos deveriam manter a caixa original: %v", dataset.RawHeaders)
	}
	if dataset.IsValid {
		t.Fatal("sem valor mapeado deveria reprovar")
	}

	// override com o cabeçalho como exibido na resposta do upload
	dataset, err = u.UpdateMapping(session.ID, importer.DatasetVendas, map[string]string{"valor": "Total"})
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if dataset.ColumnMapping["valor"] != "total" {
		t.Fatalf("cabeçalho deveria ser normalizado para minúsculas: %v", dataset.ColumnMapping)
	}
	if !dataset.IsValid {
		t.Fatalf("ajuste com caixa original deveria validar: %v", dataset.ValidationErrors)
	}
}

func TestUpdateMappingRejectsUnknownHeader(t *testing.T) {
	u := newSessionOnlyUseCase()
	session := u.CreateSession("client-1", "")

	if _, err := u.UploadFile(session.ID, importer.DatasetVendas, []byte(salesCSV)); err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	_, err := u.UpdateMapping(session.ID, importer.DatasetVendas, map[string]string{"valor": "coluna_fantasma"})
	if !errors.Is(err, ErrUnknownColumn) {
		t.Fatalf("esperava ErrUnknownColumn, veio %v", err)
	}

	// a rejeição não pode ter tocado o mapeamento existente
	dataset, err := u.GetSession(session.ID)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if dataset.Datasets[importer.DatasetVendas].ColumnMapping["valor"] != "valor" {
		t.Fatalf("mapeamento alterado por override rejeitado: %v", dataset.Datasets[importer.DatasetVendas].ColumnMapping)
	}
}

func TestUpdateMappingWithoutUpload(t *testing.T) {
	u := newSessionOnlyUseCase()
	session := u.CreateSession("client-1", "")

	_, err := u.UpdateMapping(session.ID, importer.DatasetVendas, map[string]string{"valor": "total"})
	if !errors.Is(err, ErrDatasetNotLoaded) {
		t.Fatalf("esperava ErrDatasetNotLoaded, veio %v", err)
	}
}

func TestUpdateStagesValidation(t *testing.T) {
	u := newSessionOnlyUseCase()
	session := u.CreateSession("client-1", "")

	trafficCSV := "data,campanha,gasto\n2024-02-01,Capta_A,50\n"
	if _, err := u.UploadFile(session.ID, importer.DatasetTrafego, []byte(trafficCSV)); err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	err := u.UpdateStages(session.ID, map[string]importer.FunnelStage{"Capta_A": "banner"})
	if !errors.Is(err, ErrUnknownStage) {
		t.Fatalf("etapa inexistente deveria falhar: %v", err)
	}

	err = u.UpdateStages(session.ID, map[string]importer.FunnelStage{"Outra": importer.StageVendas})
	if !errors.Is(err, ErrUnknownCampaign) {
		t.Fatalf("campanha fora do arquivo deveria falhar: %v", err)
	}

	if err := u.UpdateStages(session.ID, map[string]importer.FunnelStage{"Capta_A": importer.StageVendas}); err != nil {
		t.Fatalf("edição válida falhou: %v", err)
	}
}

// Um lote de edições com uma entrada inválida não pode aplicar as demais:
// ou o lote inteiro entra, ou nada entra
func TestUpdateStagesBatchIsAtomic(t *testing.T) {
	u := newSessionOnlyUseCase()
	session := u.CreateSession("client-1", "")

	trafficCSV := "data,campanha,gasto\n2024-02-01,Capta_A,50\n2024-02-01,Capta_B,30\n"
	if _, err := u.UploadFile(session.ID, importer.DatasetTrafego, []byte(trafficCSV)); err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	edits := map[string]importer.FunnelStage{
		"Capta_A": importer.StageVendas,
		"Capta_B": "banner", // inválida
	}
	if err := u.UpdateStages(session.ID, edits); !errors.Is(err, ErrUnknownStage) {
		t.Fatalf("esperava ErrUnknownStage, veio %v", err)
	}

	if len(session.StageEdits) != 0 {
		t.Fatalf("lote rejeitado deixou edições parciais: %v", session.StageEdits)
	}
}

func TestConfirmRequiresMandatoryDatasets(t *testing.T) {
	u := newSessionOnlyUseCase()
	session := u.CreateSession("client-1", "")

	if _, err := u.UploadFile(session.ID, importer.DatasetVendas, []byte(salesCSV)); err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	_, err := u.Confirm(session.ID, "user-1")
	if !errors.Is(err, ErrMissingDatasets) {
		t.Fatalf("esperava ErrMissingDatasets, veio %v", err)
	}
}

func TestConfirmDistinguishesInvalidDatasetCause(t *testing.T) {
	u := newSessionOnlyUseCase()
	session := u.CreateSession("client-1", "")

	// vendas sem coluna de valor mapeável
	if _, err := u.UploadFile(session.ID, importer.DatasetVendas, []byte("data,email,total\n01/02/2024,a@x.com,100\n")); err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if _, err := u.UploadFile(session.ID, importer.DatasetLeads, []byte("data,email\n01/02/2024,a@x.com\n")); err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if _, err := u.UploadFile(session.ID, importer.DatasetTrafego, []byte("data,campanha,gasto\n2024-02-01,C1,50\n")); err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	_, err := u.Confirm(session.ID, "user-1")
	if !errors.Is(err, ErrDatasetInvalid) || !errors.Is(err, importer.ErrMissingRequiredField) {
		t.Fatalf("esperava ErrDatasetInvalid + ErrMissingRequiredField, veio %v", err)
	}

	// agora o campo está mapeado, mas as linhas têm valor ruim
	if _, err := u.UpdateMapping(session.ID, importer.DatasetVendas, map[string]string{"valor": "total"}); err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if _, err := u.UploadFile(session.ID, importer.DatasetVendas, []byte("data,email,valor\n01/02/2024,a@x.com,abc\n")); err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	_, err = u.Confirm(session.ID, "user-1")
	if !errors.Is(err, ErrDatasetInvalid) || !errors.Is(err, importer.ErrRowFormat) {
		t.Fatalf("esperava ErrDatasetInvalid + ErrRowFormat, veio %v", err)
	}
}
