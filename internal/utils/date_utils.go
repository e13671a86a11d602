package utils

import "time"

// GetBrasilLocation retorna a localização de São Paulo (UTC-3)
// Esta função deve ser usada em todo o projeto para obter o fuso horário padrão brasileiro,
// garantindo consistência em todas as operações relacionadas a data e hora.
func GetBrasilLocation() *time.Location {
	brazilLocation, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		// Fallback para UTC-3 se não conseguir carregar a localização
		brazilLocation = time.FixedZone("BRT", -3*60*60)
	}
	return brazilLocation
}

// BrasilClock é o relógio de produção da pipeline de importação: "hoje" é
// sempre o dia corrente no fuso da agência, não em UTC.
type BrasilClock struct{}

// Now retorna o instante atual em São Paulo
func (BrasilClock) Now() time.Time {
	return time.Now().In(GetBrasilLocation())
}

// GenerateDateRange gera um array de strings de datas no formato "YYYY-MM-DD"
// para todas as datas no intervalo from até to (inclusive)
func GenerateDateRange(from, to time.Time) []string {
	if from.IsZero() || to.IsZero() || from.After(to) {
		return []string{}
	}

	from = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	to = time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, to.Location())

	days := int(to.Sub(from).Hours()/24) + 1

	result := make([]string, days)
	currentDate := from
	for i := 0; i < days; i++ {
		result[i] = currentDate.Format("2006-01-02")
		currentDate = currentDate.AddDate(0, 0, 1)
	}

	return result
}
