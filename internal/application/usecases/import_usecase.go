package usecases

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/agenciahub/debriefing-api/internal/domain/entities"
	"github.com/agenciahub/debriefing-api/internal/domain/repositories"
	"github.com/agenciahub/debriefing-api/internal/importer"
	"github.com/agenciahub/debriefing-api/internal/infrastructure/cache"
	"github.com/agenciahub/debriefing-api/internal/infrastructure/metrics"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// sessionTTL é o tempo de vida de uma sessão do assistente sem atividade
const sessionTTL = 2 * time.Hour

// Erros do fluxo do assistente de importação
var (
	ErrSessionNotFound  = errors.New("sessão de importação não encontrada ou expirada")
	ErrDatasetNotLoaded = errors.New("arquivo ainda não carregado nesta sessão")
	ErrDatasetInvalid   = errors.New("arquivo com erros de validação pendentes")
	ErrMissingDatasets  = errors.New("arquivos obrigatórios ausentes: vendas, leads e tráfego")
	ErrUnknownColumn    = errors.New("coluna não encontrada no arquivo")
	ErrUnknownStage     = errors.New("etapa de funil desconhecida")
	ErrUnknownCampaign  = errors.New("campanha não encontrada no arquivo de tráfego")
)

// ImportSession é o estado em memória de uma passagem pelo assistente.
// Vive apenas no cache: expirar ou confirmar a sessão descarta os arquivos
// carregados, sobrevivendo só o relatório persistido.
type ImportSession struct {
	ID        string    `json:"id"`
	ClientID  string    `json:"client_id"`
	Nome      string    `json:"nome"`
	CreatedAt time.Time `json:"created_at"`

	mu         sync.Mutex
	Datasets   map[importer.DatasetType]*importer.UploadedDataset `json:"-"`
	StageEdits map[string]importer.FunnelStage                    `json:"-"`
}

// ImportUseCase implementa as etapas do assistente de importação do
// debriefing: upload e mapeamento dos CSVs, pré-visualização das etapas de
// funil e a confirmação final que consolida e persiste o relatório.
type ImportUseCase struct {
	sessions   *cache.Cache
	reportRepo *repositories.ReportRepository
	stageRepo  *repositories.StageMappingRepository
	aliases    importer.StageAliases
	clock      importer.Clock
}

// NewImportUseCase cria uma nova instância de ImportUseCase
func NewImportUseCase(
	sessions *cache.Cache,
	reportRepo *repositories.ReportRepository,
	stageRepo *repositories.StageMappingRepository,
	aliases importer.StageAliases,
	clock importer.Clock,
) *ImportUseCase {
	return &ImportUseCase{
		sessions:   sessions,
		reportRepo: reportRepo,
		stageRepo:  stageRepo,
		aliases:    aliases,
		clock:      clock,
	}
}

// CreateSession abre uma nova sessão do assistente para um cliente
func (u *ImportUseCase) CreateSession(clientID, nome string) *ImportSession {
	session := &ImportSession{
		ID:         uuid.NewString(),
		ClientID:   clientID,
		Nome:       nome,
		CreatedAt:  u.clock.Now(),
		Datasets:   make(map[importer.DatasetType]*importer.UploadedDataset),
		StageEdits: make(map[string]importer.FunnelStage),
	}
	u.sessions.Set(session.ID, session, sessionTTL)
	metrics.ImportsStarted.Inc()
	return session
}

// GetSession recupera uma sessão ativa
func (u *ImportUseCase) GetSession(id string) (*ImportSession, error) {
	v, ok := u.sessions.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	session, ok := v.(*ImportSession)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// UploadFile recebe o conteúdo bruto de um dos CSVs, interpreta, sugere o
// mapeamento de colunas e valida. O resultado fica na sessão aguardando
// ajustes do usuário; o upload de um mesmo tipo substitui o anterior.
func (u *ImportUseCase) UploadFile(sessionID string, t importer.DatasetType, raw []byte) (*importer.UploadedDataset, error) {
	if !t.IsValid() {
		return nil, importer.ErrUnknownDatasetType
	}

	session, err := u.GetSession(sessionID)
	if err != nil {
		return nil, err
	}

	text, err := importer.DecodeUpload(raw)
	if err != nil {
		return nil, fmt.Errorf("não foi possível decodificar o arquivo: %w", err)
	}

	headers, rows, err := importer.ParseCSV(text)
	if err != nil {
		return nil, err
	}
	metrics.RowsParsed.WithLabelValues(string(t)).Add(float64(len(rows)))

	mapping := importer.MapColumns(t, headers)
	valid, errs := importer.ValidateDataset(t, mapping, rows)

	dataset := &importer.UploadedDataset{
		Type:             t,
		RawHeaders:       headers,
		RawRows:          rows,
		ColumnMapping:    mapping,
		IsValid:          valid,
		ValidationErrors: errs,
		IsOptional:       t.IsOptional(),
	}

	session.mu.Lock()
	session.Datasets[t] = dataset
	session.mu.Unlock()
	u.touch(session)

	logrus.Infof("📥 Sessão %s: arquivo %s com %d linhas (válido=%v)", sessionID, t, len(rows), valid)
	return dataset, nil
}

// UpdateMapping aplica os ajustes manuais do usuário ao mapeamento de
// colunas de um arquivo e revalida. Campos com cabeçalho vazio são
// desmapeados.
//
// Os cabeçalhos chegam como o arquivo (e a resposta do upload) os exibem;
// aqui são normalizados para a mesma forma minúscula usada como chave das
// linhas pelo parser. Cabeçalho que não existe no arquivo é rejeitado antes
// de alterar qualquer mapeamento.
func (u *ImportUseCase) UpdateMapping(sessionID string, t importer.DatasetType, overrides map[string]string) (*importer.UploadedDataset, error) {
	session, err := u.GetSession(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	dataset, ok := session.Datasets[t]
	if !ok {
		return nil, ErrDatasetNotLoaded
	}

	known := make(map[string]bool, len(dataset.RawHeaders))
	for _, h := range dataset.RawHeaders {
		known[strings.ToLower(strings.TrimSpace(h))] = true
	}

	normalized := make(map[string]string, len(overrides))
	for field, header := range overrides {
		header = strings.ToLower(strings.TrimSpace(header))
		if header != "" && !known[header] {
			return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, header)
		}
		normalized[field] = header
	}

	for field, header := range normalized {
		if header == "" {
			delete(dataset.ColumnMapping, field)
			continue
		}
		dataset.ColumnMapping[field] = header
	}

	dataset.IsValid, dataset.ValidationErrors = importer.ValidateDataset(t, dataset.ColumnMapping, dataset.RawRows)
	u.touch(session)
	return dataset, nil
}

// PreviewStages classifica as campanhas do arquivo de tráfego carregado,
// aplicando primeiro as classificações salvas do cliente e as edições feitas
// nesta sessão
func (u *ImportUseCase) PreviewStages(sessionID string) ([]importer.StageMapping, error) {
	session, err := u.GetSession(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	dataset, ok := session.Datasets[importer.DatasetTrafego]
	if !ok {
		return nil, ErrDatasetNotLoaded
	}

	traffic := importer.NormalizeTraffic(dataset.RawRows, dataset.ColumnMapping, u.clock)
	saved, err := u.savedStages(session)
	if err != nil {
		return nil, err
	}

	return importer.ClassifyCampaigns(traffic, saved, u.aliases), nil
}

// UpdateStages registra as reclassificações manuais feitas pelo usuário na
// sessão. Elas só são persistidas na confirmação.
func (u *ImportUseCase) UpdateStages(sessionID string, edits map[string]importer.FunnelStage) error {
	session, err := u.GetSession(sessionID)
	if err != nil {
		return err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	dataset, ok := session.Datasets[importer.DatasetTrafego]
	if !ok {
		return ErrDatasetNotLoaded
	}

	campaigns := make(map[string]bool)
	for _, t := range importer.NormalizeTraffic(dataset.RawRows, dataset.ColumnMapping, u.clock) {
		campaigns[t.Campanha] = true
	}

	// Valida o lote inteiro antes de gravar qualquer edição: um erro não
	// pode deixar parte das edições aplicada na sessão
	for campaign, stage := range edits {
		if !campaigns[campaign] {
			return fmt.Errorf("%w: %s", ErrUnknownCampaign, campaign)
		}
		switch stage {
		case importer.StageCaptacao, importer.StageAquecimento, importer.StageConteudo,
			importer.StageLembrete, importer.StageVendas, importer.StageNaoClassifica:
		default:
			return fmt.Errorf("%w: %s", ErrUnknownStage, stage)
		}
	}

	for campaign, stage := range edits {
		session.StageEdits[campaign] = stage
	}

	u.touch(session)
	return nil
}

// Confirm executa a consolidação final e persiste o relatório em uma única
// escrita. Qualquer erro encerra a ação sem retry: o usuário precisa acionar
// a confirmação de novo.
func (u *ImportUseCase) Confirm(sessionID, userID string) (*entities.DebriefingReport, error) {
	session, err := u.GetSession(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	for _, t := range []importer.DatasetType{importer.DatasetVendas, importer.DatasetLeads, importer.DatasetTrafego} {
		dataset, ok := session.Datasets[t]
		if !ok {
			return nil, ErrMissingDatasets
		}
		if !dataset.IsValid {
			return nil, invalidDatasetError(t, dataset)
		}
	}

	vendas := session.Datasets[importer.DatasetVendas]
	leads := session.Datasets[importer.DatasetLeads]
	trafego := session.Datasets[importer.DatasetTrafego]

	saleRecords := importer.NormalizeSales(vendas.RawRows, vendas.ColumnMapping, u.clock)
	leadRecords := importer.NormalizeLeads(leads.RawRows, leads.ColumnMapping, u.clock)
	trafficRecords := importer.NormalizeTraffic(trafego.RawRows, trafego.ColumnMapping, u.clock)

	buckets := importer.Consolidate(saleRecords, leadRecords, trafficRecords)
	derived := importer.CalculateMetrics(buckets, u.clock)

	saved, err := u.savedStages(session)
	if err != nil {
		return nil, err
	}
	stageMappings := importer.ClassifyCampaigns(trafficRecords, saved, u.aliases)

	report := &entities.DebriefingReport{
		ID:       uuid.NewString(),
		ClientID: session.ClientID,
		UserID:   userID,
		Nome:     session.Nome,

		LeadsTotal:        derived.LeadsTotal,
		VendasTotal:       derived.VendasTotal,
		InvestimentoTotal: derived.InvestimentoTotal,
		FaturamentoTotal:  derived.FaturamentoTotal,

		CPL:                derived.CPL,
		CPV:                derived.CPV,
		CPC:                derived.CPC,
		CTR:                derived.CTR,
		ROAS:               derived.ROAS,
		TicketMedio:        derived.TicketMedio,
		ConversaoLeadVenda: derived.ConversaoLeadVenda,

		PeriodoInicio: derived.PeriodoInicio,
		PeriodoFim:    derived.PeriodoFim,
	}

	// Blobs com as linhas originais dos arquivos, não o agregado
	if report.DadosConsolidados, err = marshalBlob(buckets); err != nil {
		return nil, err
	}
	if report.DadosCompradores, err = marshalBlob(vendas.RawRows); err != nil {
		return nil, err
	}
	if report.DadosLeads, err = marshalBlob(leads.RawRows); err != nil {
		return nil, err
	}
	if report.DadosTrafego, err = marshalBlob(trafego.RawRows); err != nil {
		return nil, err
	}
	if pesquisa, ok := session.Datasets[importer.DatasetPesquisa]; ok {
		if report.DadosPesquisa, err = marshalBlob(pesquisa.RawRows); err != nil {
			return nil, err
		}
	}
	if outras, ok := session.Datasets[importer.DatasetOutrasFontes]; ok {
		if report.DadosOutrasFontes, err = marshalBlob(outras.RawRows); err != nil {
			return nil, err
		}
	}
	if report.DistribuicaoEtapas, err = marshalBlob(stageMappings); err != nil {
		return nil, err
	}

	if err := u.reportRepo.Create(report); err != nil {
		metrics.ImportsFailed.Inc()
		return nil, err
	}

	if err := u.persistStageEdits(session, stageMappings); err != nil {
		// O relatório já foi salvo; a perda aqui é só a reutilização futura
		// das classificações manuais
		logrus.Errorf("❌ Erro ao salvar classificações manuais da sessão %s: %v", session.ID, err)
	}

	u.sessions.Delete(session.ID)
	metrics.ImportsConfirmed.Inc()
	logrus.Infof("✅ Debriefing %s persistido para o cliente %s (%d buckets)", report.ID, report.ClientID, len(buckets))
	return report, nil
}

// savedStages combina as classificações persistidas do cliente com as
// edições desta sessão; a edição de sessão tem a palavra final
func (u *ImportUseCase) savedStages(session *ImportSession) (map[string]importer.FunnelStage, error) {
	stored, err := u.stageRepo.StagesByCampaign(session.ClientID)
	if err != nil {
		return nil, err
	}

	out := make(map[string]importer.FunnelStage, len(stored)+len(session.StageEdits))
	for campaign, stage := range stored {
		out[campaign] = importer.FunnelStage(stage)
	}
	for campaign, stage := range session.StageEdits {
		out[campaign] = stage
	}
	return out, nil
}

// persistStageEdits grava no banco apenas as linhas reclassificadas nesta
// sessão, com upsert por (client_id, campaign_name)
func (u *ImportUseCase) persistStageEdits(session *ImportSession, mappings []importer.StageMapping) error {
	if len(session.StageEdits) == 0 {
		return nil
	}

	var rows []entities.CampaignStageMapping
	for _, m := range mappings {
		if _, edited := session.StageEdits[m.Campanha]; !edited {
			continue
		}
		rows = append(rows, entities.CampaignStageMapping{
			ClientID:     session.ClientID,
			CampaignName: m.Campanha,
			Stage:        string(m.Etapa),
			Investment:   m.Investimento,
		})
	}

	return u.stageRepo.UpsertMany(rows)
}

// invalidDatasetError distingue por que um arquivo obrigatório ainda não
// valida: mapeamento incompleto ou formato ruim nas linhas amostradas
func invalidDatasetError(t importer.DatasetType, dataset *importer.UploadedDataset) error {
	for _, field := range importer.RequiredFields(t) {
		if dataset.ColumnMapping[field] == "" {
			return fmt.Errorf("%w: %w (%s: %s)", ErrDatasetInvalid, importer.ErrMissingRequiredField, t, field)
		}
	}
	return fmt.Errorf("%w: %w (%s)", ErrDatasetInvalid, importer.ErrRowFormat, t)
}

// touch renova o TTL da sessão a cada interação do usuário
func (u *ImportUseCase) touch(session *ImportSession) {
	u.sessions.Set(session.ID, session, sessionTTL)
}

func marshalBlob(v interface{}) (entities.JSONB, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar dados do relatório: %w", err)
	}
	return entities.JSONB(data), nil
}
