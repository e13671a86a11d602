package importer

import "testing"

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"01/02/2024", "2024-02-01"},
		{"01/02/2024 13:45:00", "2024-02-01"},
		{"2024-02-01", "2024-02-01"},                   // já ISO, passa adiante
		{"2024-02-01T10:00:00", "2024-02-01T10:00:00"}, // formato estranho passa sem mexer
		{"", "2024-03-15"},                             // vazia vira hoje
		{"99/99/2024", "2024-03-15"},                   // shape BR inválido vira hoje
		{"  01/02/2024  ", "2024-02-01"},
	}

	for _, tt := range tests {
		if got := NormalizeDate(tt.in, testClock); got != tt.want {
			t.Errorf("NormalizeDate(%q) = %q, esperava %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeSalesDefaults(t *testing.T) {
	mapping := map[string]string{"data": "data", "email": "email", "valor": "valor"}
	rows := []map[string]string{
		{"data": "01/02/2024", "email": "A@X.com", "valor": "1.234,56"},
	}

	records := NormalizeSales(rows, mapping, testClock)
	if len(records) != 1 {
		t.Fatalf("esperava 1 registro, veio %d", len(records))
	}

	r := records[0]
	if r.Data != "2024-02-01" {
		t.Errorf("data: %q", r.Data)
	}
	if r.Email != "a@x.com" {
		t.Errorf("email deveria ser minúsculo: %q", r.Email)
	}
	if r.Valor != 1234.56 {
		t.Errorf("valor: %v", r.Valor)
	}
	// UTMs sem coluna mapeada caem no sentinela
	if r.UTMSource != Unattributed || r.UTMMedium != Unattributed ||
		r.UTMCampaign != Unattributed || r.UTMTerm != Unattributed {
		t.Errorf("UTMs sem default: %+v", r)
	}
}

func TestNormalizeLeadsUTMFromFile(t *testing.T) {
	mapping := map[string]string{"data": "data", "email": "email", "utm_source": "utm_source"}
	rows := []map[string]string{
		{"data": "2024-02-01", "email": "a@x.com", "utm_source": "google"},
		{"data": "2024-02-01", "email": "b@x.com", "utm_source": ""},
	}

	records := NormalizeLeads(rows, mapping, testClock)
	if records[0].UTMSource != "google" {
		t.Errorf("utm_source mapeado: %q", records[0].UTMSource)
	}
	if records[1].UTMSource != Unattributed {
		t.Errorf("utm_source vazio deveria cair no sentinela: %q", records[1].UTMSource)
	}
}

func TestNormalizeTrafficHardcodesUTM(t *testing.T) {
	mapping := map[string]string{"data": "data", "campanha": "campanha", "gasto": "gasto", "impressoes": "impressoes", "cliques": "cliques"}
	rows := []map[string]string{
		{"data": "2024-02-01", "campanha": "C1", "gasto": "50", "impressoes": "1000", "cliques": "37"},
	}

	records := NormalizeTraffic(rows, mapping, testClock)
	r := records[0]
	if r.UTMSource != "facebook" || r.UTMMedium != "paid" {
		t.Errorf("importador de Meta Ads deveria fixar facebook/paid: %+v", r)
	}
	if r.UTMCampaign != Unattributed {
		t.Errorf("utm_campaign: %q", r.UTMCampaign)
	}
	if r.Gasto != 50 || r.Impressoes != 1000 || r.Cliques != 37 {
		t.Errorf("números de tráfego: %+v", r)
	}
}

func TestNormalizeSurvey(t *testing.T) {
	mapping := map[string]string{"data": "data", "email": "email"}
	rows := []map[string]string{
		{"data": "01/02/2024", "email": "Resp@X.com", "pergunta 1": "sim"},
	}

	records := NormalizeSurvey(rows, mapping, testClock)
	if len(records) != 1 {
		t.Fatalf("esperava 1 registro, veio %d", len(records))
	}
	if records[0].Data != "2024-02-01" || records[0].Email != "resp@x.com" {
		t.Errorf("registro de pesquisa: %+v", records[0])
	}
}

func TestNormalizeOtherSources(t *testing.T) {
	mapping := map[string]string{"data": "data", "origem": "origem", "gasto": "gasto"}
	rows := []map[string]string{
		{"data": "2024-02-01", "origem": "Google Ads", "gasto": "R$ 120,50"},
		{"data": "2024-02-02", "origem": "Influencer", "gasto": "n/d"},
	}

	records := NormalizeOtherSources(rows, mapping, testClock)
	if records[0].Origem != "Google Ads" || records[0].Gasto != 120.50 {
		t.Errorf("primeira linha: %+v", records[0])
	}
	if records[1].Gasto != 0 {
		t.Errorf("gasto não numérico deveria virar zero: %+v", records[1])
	}
}

func TestNormalizeUnparseableAmountsBecomeZero(t *testing.T) {
	mapping := map[string]string{"data": "data", "email": "email", "valor": "valor"}
	rows := []map[string]string{
		{"data": "2024-02-01", "email": "a@x.com", "valor": "n/d"},
	}
	records := NormalizeSales(rows, mapping, testClock)
	if records[0].Valor != 0 {
		t.Fatalf("valor não numérico deveria virar zero: %v", records[0].Valor)
	}
}
