package importer

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// FunnelStage é a etapa do funil de lançamento atribuída a cada campanha
type FunnelStage string

const (
	StageCaptacao      FunnelStage = "capture"
	StageAquecimento   FunnelStage = "warmup"
	StageConteudo      FunnelStage = "content"
	StageLembrete      FunnelStage = "reminder"
	StageVendas        FunnelStage = "sales"
	StageNaoClassifica FunnelStage = "unclassified"
)

// stageOrder fixa a ordem de teste dos apelidos: a primeira etapa cujo
// apelido aparecer no nome da campanha vence
var stageOrder = []FunnelStage{
	StageCaptacao,
	StageAquecimento,
	StageConteudo,
	StageLembrete,
	StageVendas,
}

// StageAliases mapeia cada etapa para os fragmentos de nome de campanha que a
// identificam. A detecção por substring é heurística; o assistente sempre
// apresenta o resultado para confirmação humana antes de persistir.
type StageAliases map[FunnelStage][]string

// DefaultStageAliases retorna os apelidos usados quando nenhum arquivo de
// configuração é fornecido
func DefaultStageAliases() StageAliases {
	return StageAliases{
		StageCaptacao:    {"capta", "captacao", "captação", "top", "tof", "awareness"},
		StageAquecimento: {"aquec", "warmup", "warm", "antecipa"},
		StageConteudo:    {"conteudo", "conteúdo", "content", "cpl"},
		StageLembrete:    {"lembrete", "reminder", "remarketing", "rmkt"},
		StageVendas:      {"venda", "sales", "abertura", "carrinho", "bof"},
	}
}

type stageAliasFile struct {
	Stages map[string][]string `yaml:"stages"`
}

// LoadStageAliases carrega apelidos de etapa de um arquivo YAML no formato
//
//	stages:
//	  capture: ["capta", "tof"]
//	  sales: ["carrinho"]
//
// Etapas ausentes no arquivo mantêm os apelidos padrão.
func LoadStageAliases(path string) (StageAliases, error) {
	aliases := DefaultStageAliases()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file stageAliasFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	for stage, list := range file.Stages {
		if len(list) == 0 {
			continue
		}
		aliases[FunnelStage(stage)] = list
	}

	return aliases, nil
}

// StageMapping é a classificação de uma campanha de tráfego com o
// investimento somado de todas as suas linhas
type StageMapping struct {
	Campanha           string      `json:"campanha"`
	Etapa              FunnelStage `json:"etapa"`
	Investimento       float64     `json:"investimento"`
	EditadoManualmente bool        `json:"editado_manualmente"`
}

// ClassifyStage detecta a etapa de uma campanha pelo nome. O nome é
// comparado em minúsculas contra os apelidos de cada etapa, na ordem fixa de
// etapas; sem correspondência, a campanha fica não classificada.
func ClassifyStage(aliases StageAliases, campaign string) FunnelStage {
	name := strings.ToLower(campaign)
	for _, stage := range stageOrder {
		for _, alias := range aliases[stage] {
			if strings.Contains(name, alias) {
				return stage
			}
		}
	}
	return StageNaoClassifica
}

// ClassifyCampaigns produz um StageMapping por campanha distinta do tráfego,
// com o investimento somado. Um mapeamento salvo do cliente para a mesma
// campanha tem precedência sobre a detecção por apelido e chega marcado como
// edição manual. A ordem de saída segue a primeira aparição de cada campanha.
func ClassifyCampaigns(traffic []TrafficRecord, saved map[string]FunnelStage, aliases StageAliases) []StageMapping {
	index := make(map[string]int)
	var out []StageMapping

	for _, t := range traffic {
		if t.Campanha == "" {
			continue
		}
		if i, ok := index[t.Campanha]; ok {
			out[i].Investimento += t.Gasto
			continue
		}

		m := StageMapping{Campanha: t.Campanha, Investimento: t.Gasto}
		if stage, ok := saved[t.Campanha]; ok {
			m.Etapa = stage
			m.EditadoManualmente = true
		} else {
			m.Etapa = ClassifyStage(aliases, t.Campanha)
		}

		index[t.Campanha] = len(out)
		out = append(out, m)
	}

	return out
}
