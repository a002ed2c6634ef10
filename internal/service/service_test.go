package service

import (
	"fmt"
	"testing"

	"Lee_Village/internal/model"
	"Lee_Village/internal/repository/mysql"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB 内存 sqlite，连接数限 1 避免 :memory: 多连接各开一库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, mysql.AutoMigrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string) *model.User {
	t.Helper()
	user := &model.User{
		Email:    fmt.Sprintf("%s@example.com", name),
		Password: "hash",
		Name:     name,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// seedVillage 走 Create，顺带建好 chief 身份
func seedVillage(t *testing.T, db *gorm.DB, ownerID uint64, name string) *model.Village {
	t.Helper()
	village, err := NewVillageService(db).Create(ownerID, CreateVillageInput{
		Name:     name,
		Category: "Interest",
	})
	require.NoError(t, err)
	return village
}

func seedMember(t *testing.T, db *gorm.DB, villageID, userID uint64, role string) *model.Membership {
	t.Helper()
	membership, err := NewVillageService(db).Join(villageID, userID, "")
	require.NoError(t, err)
	if role != model.RoleVillager {
		require.NoError(t, db.Model(&model.Membership{}).
			Where("id = ?", membership.ID).Update("role", role).Error)
		membership.Role = role
	}
	return membership
}

func setPointRules(t *testing.T, db *gorm.DB, villageID uint64, rules model.PointRules) {
	t.Helper()
	require.NoError(t, db.Model(&model.Village{}).
		Where("id = ?", villageID).Update("point_rules", rules).Error)
}

func memberBalance(t *testing.T, db *gorm.DB, villageID, userID uint64) int64 {
	t.Helper()
	var m model.Membership
	require.NoError(t, db.Where("village_id = ? AND user_id = ?", villageID, userID).First(&m).Error)
	return m.Balance
}
