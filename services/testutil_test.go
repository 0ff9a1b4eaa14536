// file: services/testutil_test.go
package services

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"vibebuild/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDBSeq atomic.Int64

// testFixture 常用测试角色的组合
type testFixture struct {
	db        *gorm.DB
	organizer Actor
	alice     Actor
}

// newTestDB 每个测试独立的内存库。单连接让并发事务在连接池上
// 串行化，条件更新的守卫语义与 MySQL 行锁一致
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:vibebuild_test_%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Hackathon{},
		&models.Enrollment{},
		&models.Team{},
		&models.TeamMember{},
		&models.Project{},
		&models.Judge{},
		&models.Score{},
		&models.Result{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string, verified bool) Actor {
	t.Helper()
	user := models.User{
		Username: username,
		Password: "password123",
		Email:    username + "@example.com",
		Verified: verified,
		Status:   models.UserStatusActive,
	}
	require.NoError(t, db.Create(&user).Error)
	return Actor{UserID: user.ID, Username: user.Username, Verified: user.Verified}
}

func hoursFromNow(h int) *time.Time {
	ts := time.Now().Add(time.Duration(h) * time.Hour)
	return &ts
}

// seedHackathon 一场进行中的已发布黑客松：活动窗口 [-1h, +24h]，
// 报名窗口未配置（发布期间始终开放），评分维度 Innovation 60 / Feasibility 40
func seedHackathon(t *testing.T, db *gorm.DB, organizer Actor, mutate ...func(*models.Hackathon)) *models.Hackathon {
	t.Helper()
	h := models.Hackathon{
		Title:            "AI for Good",
		Description:      "Build something that matters",
		OrganizerID:      organizer.UserID,
		Status:           models.HackathonStatusPublished,
		RegistrationType: models.RegistrationTeam,
		TeamSizeMin:      1,
		TeamSizeMax:      3,
		EventStart:       time.Now().Add(-1 * time.Hour),
		EventEnd:         time.Now().Add(24 * time.Hour),
	}
	require.NoError(t, h.SetDimensions([]models.ScoringDimension{
		{Name: "Innovation", Weight: 60},
		{Name: "Feasibility", Weight: 40},
	}))
	for _, m := range mutate {
		m(&h)
	}
	require.NoError(t, db.Create(&h).Error)
	return &h
}

// enrollApproved 直接落一条已通过的报名，跳过报名窗口
func enrollApproved(t *testing.T, db *gorm.DB, actor Actor, hackathonID uint32) {
	t.Helper()
	require.NoError(t, db.Create(&models.Enrollment{
		UserID:      actor.UserID,
		HackathonID: hackathonID,
		Status:      models.EnrollmentApproved,
		JoinedAt:    time.Now(),
	}).Error)
}

// appointJudge 直接落一条评委任命
func appointJudge(t *testing.T, db *gorm.DB, actor Actor, hackathonID uint32) {
	t.Helper()
	require.NoError(t, db.Create(&models.Judge{
		HackathonID: hackathonID,
		UserID:      actor.UserID,
		AppointedAt: time.Now(),
	}).Error)
}
