package importer

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

const (
	isoDateLayout = "2006-01-02"
	brDateLayout  = "02/01/2006"
)

// Clock abstrai a data corrente usada como default de normalização.
// Injetada para que os testes não dependam do relógio de parede.
type Clock interface {
	Now() time.Time
}

// isValidDateShape aceita YYYY-MM-DD ou DD/MM/YYYY, exigindo que a data
// exista no calendário (31/02 não passa).
func isValidDateShape(v string) bool {
	v = strings.TrimSpace(v)
	if _, err := time.Parse(isoDateLayout, v); err == nil {
		return true
	}
	if _, err := time.Parse(brDateLayout, v); err == nil {
		return true
	}
	return false
}

var errNotANumber = errors.New("valor não numérico")

// ParseDecimal interpreta valores monetários como exportados por planilhas
// brasileiras: aceita prefixo "R$", espaços, e tanto vírgula decimal
// ("1.234,56") quanto ponto decimal ("1234.56").
func ParseDecimal(v string) (float64, error) {
	v = strings.TrimSpace(v)
	v = strings.TrimPrefix(v, "R$")
	v = strings.ReplaceAll(v, " ", "")
	if v == "" {
		return 0, errNotANumber
	}

	if strings.Contains(v, ",") {
		// vírgula presente: pontos são separadores de milhar
		v = strings.ReplaceAll(v, ".", "")
		v = strings.Replace(v, ",", ".", 1)
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errNotANumber
	}
	return f, nil
}

// parseCount interpreta contagens (impressões, cliques), tolerando
// separador de milhar e casas decimais espúrias do export
func parseCount(v string) int {
	f, err := ParseDecimal(v)
	if err != nil || f < 0 {
		return 0
	}
	return int(f)
}
