package entities

import (
	"database/sql/driver"
	"errors"
	"fmt"
)

// JSONB armazena um documento JSON já serializado em uma coluna jsonb.
// Evita desserializar os blobs de dados brutos do relatório a cada leitura:
// eles só transitam entre o banco e a resposta HTTP.
type JSONB []byte

// Value implementa driver.Valuer
func (j JSONB) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return string(j), nil
}

// Scan implementa sql.Scanner
func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		*j = append((*j)[0:0], v...)
	case string:
		*j = JSONB(v)
	default:
		return fmt.Errorf("tipo inesperado para coluna jsonb: %T", value)
	}
	return nil
}

// MarshalJSON devolve o documento como está
func (j JSONB) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("null"), nil
	}
	return j, nil
}

// UnmarshalJSON guarda o documento como está
func (j *JSONB) UnmarshalJSON(data []byte) error {
	if j == nil {
		return errors.New("entities.JSONB: UnmarshalJSON em ponteiro nulo")
	}
	*j = append((*j)[0:0], data...)
	return nil
}

// GormDataType informa o tipo de coluna ao GORM
func (JSONB) GormDataType() string {
	return "jsonb"
}
