package importer

import (
	"os"
	"path/filepath"
	"testing"
)

func TestClassifyStageByAlias(t *testing.T) {
	aliases := DefaultStageAliases()

	tests := []struct {
		campaign string
		want     FunnelStage
	}{
		{"Facebook_Captação_Jan", StageCaptacao}, // "captação" contém "capta"
		{"CAPTA-LEADS-02", StageCaptacao},
		{"aquecimento_video1", StageAquecimento},
		{"CPL3 - Conteúdo", StageConteudo},
		{"lembrete_aula_ao_vivo", StageLembrete},
		{"Abertura de Carrinho", StageVendas},
		{"XYZ123", StageNaoClassifica},
		{"", StageNaoClassifica},
	}

	for _, tt := range tests {
		if got := ClassifyStage(aliases, tt.campaign); got != tt.want {
			t.Errorf("ClassifyStage(%q) = %s, esperava %s", tt.campaign, got, tt.want)
		}
	}
}

func TestClassifyCampaignsSumsInvestment(t *testing.T) {
	traffic := []TrafficRecord{
		{Campanha: "Capta_A", Gasto: 30},
		{Campanha: "Capta_A", Gasto: 20},
		{Campanha: "XYZ", Gasto: 10},
	}

	mappings := ClassifyCampaigns(traffic, nil, DefaultStageAliases())
	if len(mappings) != 2 {
		t.Fatalf("esperava 2 campanhas, veio %d", len(mappings))
	}
	if mappings[0].Campanha != "Capta_A" || mappings[0].Investimento != 50 {
		t.Errorf("investimento somado: %+v", mappings[0])
	}
	if mappings[0].Etapa != StageCaptacao {
		t.Errorf("etapa: %s", mappings[0].Etapa)
	}
	if mappings[1].Etapa != StageNaoClassifica {
		t.Errorf("XYZ deveria ficar não classificada: %+v", mappings[1])
	}
}

// Round-trip: uma classificação manual salva para o par (cliente, campanha)
// tem precedência sobre a detecção por apelido em importações futuras
func TestClassifyCampaignsSavedMappingWins(t *testing.T) {
	traffic := []TrafficRecord{
		{Campanha: "Capta_A", Gasto: 30},
	}
	saved := map[string]FunnelStage{
		// o nome sugere captação, mas o humano decidiu que é venda
		"Capta_A": StageVendas,
	}

	mappings := ClassifyCampaigns(traffic, saved, DefaultStageAliases())
	if mappings[0].Etapa != StageVendas {
		t.Fatalf("classificação salva deveria vencer a detecção: %+v", mappings[0])
	}
	if !mappings[0].EditadoManualmente {
		t.Fatal("classificação salva deveria chegar marcada como manual")
	}
}

func TestClassifyCampaignsSkipsEmptyNames(t *testing.T) {
	traffic := []TrafficRecord{
		{Campanha: "", Gasto: 30},
		{Campanha: "Capta_A", Gasto: 10},
	}
	mappings := ClassifyCampaigns(traffic, nil, DefaultStageAliases())
	if len(mappings) != 1 {
		t.Fatalf("linha sem campanha deveria ser ignorada: %+v", mappings)
	}
}

func TestLoadStageAliasesOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stages.yaml")
	content := "stages:\n  capture: [\"prospec\"]\n  sales: [\"checkout\"]\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	aliases, err := LoadStageAliases(path)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	if ClassifyStage(aliases, "Prospec_01") != StageCaptacao {
		t.Error("apelido do arquivo não aplicado")
	}
	if ClassifyStage(aliases, "Checkout aberto") != StageVendas {
		t.Error("apelido de vendas do arquivo não aplicado")
	}
	// o nome "capta" não está mais na lista de captação
	if ClassifyStage(aliases, "capta_leads") != StageNaoClassifica {
		t.Error("apelidos padrão deveriam ter sido substituídos para captação")
	}
	// etapa ausente no arquivo mantém o padrão
	if ClassifyStage(aliases, "aquecimento_1") != StageAquecimento {
		t.Error("etapa fora do arquivo deveria manter o padrão")
	}
}

func TestLoadStageAliasesMissingFile(t *testing.T) {
	if _, err := LoadStageAliases("/caminho/inexistente.yaml"); err == nil {
		t.Fatal("esperava erro para arquivo inexistente")
	}
}
