package service

import (
	"testing"

	"Lee_Village/internal/model"
	"Lee_Village/internal/pkg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMembershipsAndAssets(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, nil)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	first := seedVillage(t, db, alice.ID, "First Home")
	second := seedVillage(t, db, bob.ID, "Second Home")
	seedMember(t, db, second.ID, alice.ID, model.RoleVillager)
	require.NoError(t, db.Model(&model.Membership{}).
		Where("village_id = ? AND user_id = ?", second.ID, alice.ID).
		Update("balance", 42).Error)

	memberships, err := svc.GetMemberships(alice.ID)
	require.NoError(t, err)
	require.Len(t, memberships, 2)
	for _, m := range memberships {
		assert.NotEmpty(t, m.Village.Name)
		assert.NotEmpty(t, m.Village.Slug)
	}

	assets, err := svc.GetAssets(alice.ID)
	require.NoError(t, err)
	require.Len(t, assets, 2)
	byVillage := map[uint64]AssetView{}
	for _, a := range assets {
		byVillage[a.VillageID] = a
	}
	assert.Equal(t, int64(0), byVillage[first.ID].Balance)
	assert.Equal(t, int64(42), byVillage[second.ID].Balance)
	assert.Equal(t, "Coins", byVillage[second.ID].CurrencyName)
}

func TestGetByIDNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, nil)

	_, err := svc.GetByID(9999)
	require.Error(t, err)
	assert.Equal(t, 404, pkg.HTTPStatus(err))
}

func TestUpdateUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, nil)
	alice := seedUser(t, db, "alice")

	name := "Alice Wang"
	location := "Hangzhou"
	updated, err := svc.Update(alice.ID, UpdateUserInput{Name: &name, Location: &location})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, location, updated.Location)
	// 未提交的字段保持原样
	assert.Equal(t, alice.Email, updated.Email)
}
