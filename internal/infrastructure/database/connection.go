package database

import (
	"context"

	"gorm.io/gorm"
)

// Chave de contexto que indica que o timezone já foi configurado
type timezoneKey struct{}

// SetTimezoneMiddleware cria um callback GORM que fixa o timezone da sessão
// em America/Sao_Paulo, para que períodos e datas dos relatórios saiam no
// fuso da agência
func SetTimezoneMiddleware() func(db *gorm.DB) {
	return func(db *gorm.DB) {
		// Evita recursão infinita quando o próprio Exec dispara o callback
		if _, ok := db.Statement.Context.Value(timezoneKey{}).(bool); ok {
			return
		}

		ctx := context.WithValue(db.Statement.Context, timezoneKey{}, true)
		db.WithContext(ctx).Exec("SET timezone = 'America/Sao_Paulo'")
	}
}

// RegisterMiddlewares registra os callbacks necessários no GORM.
// O ajuste de timezone só se aplica ao Postgres; SQLite não tem o comando.
func RegisterMiddlewares(db *gorm.DB) {
	if db.Dialector.Name() != "postgres" {
		return
	}
	db.Callback().Query().Before("gorm:query").Register("set_timezone_before_query", SetTimezoneMiddleware())
}
