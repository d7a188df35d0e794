// Package database 负责初始化数据存储的连接。
package database

import (
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"ai-assistant-go/pkg/log"
)

// InitPostgres 建立到托管 Postgres 的连接并配置连接池。
// 返回连接句柄，由调用方注入到各 Repository，不保留包级单例。
func InitPostgres(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect database", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("failed to get sql.DB", err)
	}

	// 托管实例的连接数有限，池子保持保守
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Info("Postgres database connected successfully")
	return db
}
