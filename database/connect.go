// file: database/connect.go
package database

import (
	"fmt"
	"log"
	"time"

	"vibebuild/config"
	"vibebuild/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect(cfg *config.Config) {
	var err error
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	// TranslateError 让唯一索引冲突以 gorm.ErrDuplicatedKey 返回，
	// 报名、入队等幂等检查依赖它兜底并发竞争
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		log.Fatal("Failed to get underlying sql.DB:", err)
	}

	// 连接池配置：ConnMaxLifetime 用于规避 MySQL wait_timeout 掉线问题
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("Database connection successfully established and connection pool configured.")
}

// MigrateTables 自动迁移（生产环境建议禁用，改用 SQL 迁移脚本）
func MigrateTables() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Hackathon{},
		&models.Enrollment{},
		&models.Team{},
		&models.TeamMember{},
		&models.Project{},
		&models.Judge{},
		&models.Score{},
		&models.Result{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}
	log.Println("Database migration completed.")
}
