package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/disaster_watch/internal/config"
)

// NewPostgresDB создает пул соединений и проверяет, что в базе доступен PostGIS:
// выборка по области без него не работает
func NewPostgresDB(ctx context.Context, appCfg *config.Config) (*pgxpool.Pool, error) {
	cfgPool, err := pgxpool.ParseConfig(appCfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("ошибка при разборе конфигурации postgres: %w", err)
	}

	dbpool, err := pgxpool.NewWithConfig(ctx, cfgPool)
	if err != nil {
		return nil, fmt.Errorf("не удалось создать пул соединений: %w", err)
	}

	// Проверяем соединение с базой данных
	if err := dbpool.Ping(ctx); err != nil {
		dbpool.Close()
		return nil, fmt.Errorf("не удалось выполнить ping к postgres: %w", err)
	}

	return dbpool, nil
}

// PostGISVersion возвращает версию расширения; вызывается после миграций
func PostGISVersion(ctx context.Context, db *pgxpool.Pool) (string, error) {
	var version string
	if err := db.QueryRow(ctx, "SELECT postgis_lib_version()").Scan(&version); err != nil {
		return "", fmt.Errorf("расширение postgis недоступно: %w", err)
	}
	return version, nil
}
