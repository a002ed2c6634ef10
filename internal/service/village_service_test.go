package service

import (
	"strings"
	"testing"

	"Lee_Village/internal/model"
	"Lee_Village/internal/pkg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateVillage(t *testing.T) {
	db := newTestDB(t)
	svc := NewVillageService(db)
	owner := seedUser(t, db, "alice")

	village, err := svc.Create(owner.ID, CreateVillageInput{
		Name:     "Go Gophers",
		Category: "Interest",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(village.Slug, "go-gophers-"))
	assert.Equal(t, "Coins", village.CurrencyName)
	assert.Equal(t, model.VisibilityPublic, village.Visibility)
	assert.Empty(t, village.InviteCode)
	assert.Equal(t, int64(1), village.MemberCount)

	// 建村者自动 chief，昵称 Founder
	var m model.Membership
	require.NoError(t, db.Where("village_id = ? AND user_id = ?", village.ID, owner.ID).First(&m).Error)
	assert.Equal(t, model.RoleChief, m.Role)
	assert.Equal(t, "Founder", m.Nickname)
}

func TestCreateVillagePrivateGetsInviteCode(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "alice")

	village, err := NewVillageService(db).Create(owner.ID, CreateVillageInput{
		Name:       "Secret Club",
		Category:   "Interest",
		Visibility: model.VisibilityPrivate,
	})
	require.NoError(t, err)
	assert.Len(t, village.InviteCode, pkg.InviteCodeLen)
}

func TestJoinAndLeave(t *testing.T) {
	db := newTestDB(t)
	svc := NewVillageService(db)
	owner := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	village := seedVillage(t, db, owner.ID, "Join Test")

	membership, err := svc.Join(village.ID, bob.ID, "")
	require.NoError(t, err)
	assert.Equal(t, model.RoleVillager, membership.Role)
	assert.Equal(t, "bob", membership.Nickname)

	// 重复加入报 Conflict
	_, err = svc.Join(village.ID, bob.ID, "")
	require.Error(t, err)
	assert.Equal(t, 409, pkg.HTTPStatus(err))

	got, err := svc.FindByID(village.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.MemberCount)

	require.NoError(t, svc.Leave(village.ID, bob.ID))
	got, err = svc.FindByID(village.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.MemberCount)
}

func TestJoinPrivateNeedsInviteCode(t *testing.T) {
	db := newTestDB(t)
	svc := NewVillageService(db)
	owner := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	village, err := svc.Create(owner.ID, CreateVillageInput{
		Name:       "Gated",
		Category:   "Region",
		Visibility: model.VisibilityPrivate,
	})
	require.NoError(t, err)

	_, err = svc.Join(village.ID, bob.ID, "")
	require.Error(t, err)
	assert.Equal(t, 400, pkg.HTTPStatus(err))

	_, err = svc.Join(village.ID, bob.ID, "WRONGCODE")
	require.Error(t, err)

	_, err = svc.Join(village.ID, bob.ID, village.InviteCode)
	require.NoError(t, err)
}

func TestChiefCannotLeave(t *testing.T) {
	db := newTestDB(t)
	svc := NewVillageService(db)
	owner := seedUser(t, db, "alice")
	village := seedVillage(t, db, owner.ID, "No Exit")

	err := svc.Leave(village.ID, owner.ID)
	require.Error(t, err)
	assert.Equal(t, 403, pkg.HTTPStatus(err))
}

func TestUpdateVillage(t *testing.T) {
	db := newTestDB(t)
	svc := NewVillageService(db)
	owner := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	village := seedVillage(t, db, owner.ID, "Update Me")
	seedMember(t, db, village.ID, bob.ID, model.RoleVillager)

	// 普通成员无权修改
	desc := "new description"
	_, err := svc.Update(village.ID, bob.ID, UpdateVillageInput{Description: &desc})
	require.Error(t, err)
	assert.Equal(t, 403, pkg.HTTPStatus(err))

	rules := model.PointRules{"post": 10, "like_received": 5}
	constitution := model.StringList{"Be kind", "No spam"}
	visibility := model.VisibilityPrivate
	updated, err := svc.Update(village.ID, owner.ID, UpdateVillageInput{
		Description:  &desc,
		Visibility:   &visibility,
		PointRules:   &rules,
		Constitution: &constitution,
	})
	require.NoError(t, err)
	assert.Equal(t, desc, updated.Description)
	assert.Equal(t, rules, updated.PointRules)
	assert.Equal(t, constitution, updated.Constitution)
	// 切私密时自动生成邀请码
	assert.Len(t, updated.InviteCode, pkg.InviteCodeLen)
}

func TestRegenerateCode(t *testing.T) {
	db := newTestDB(t)
	svc := NewVillageService(db)
	owner := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	village := seedVillage(t, db, owner.ID, "Codes")
	seedMember(t, db, village.ID, bob.ID, model.RoleVillager)

	_, err := svc.RegenerateCode(village.ID, bob.ID)
	require.Error(t, err)
	assert.Equal(t, 403, pkg.HTTPStatus(err))

	code, err := svc.RegenerateCode(village.ID, owner.ID)
	require.NoError(t, err)
	assert.Len(t, code, pkg.InviteCodeLen)

	got, err := svc.FindByID(village.ID)
	require.NoError(t, err)
	assert.Equal(t, code, got.InviteCode)
}

func TestTransferOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := NewVillageService(db)
	owner := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	village := seedVillage(t, db, owner.ID, "Handover")
	seedMember(t, db, village.ID, bob.ID, model.RoleVillager)

	require.Error(t, svc.TransferOwnership(village.ID, owner.ID, owner.ID))
	require.Error(t, svc.TransferOwnership(village.ID, bob.ID, owner.ID))

	require.NoError(t, svc.TransferOwnership(village.ID, owner.ID, bob.ID))

	got, err := svc.FindByID(village.ID)
	require.NoError(t, err)
	assert.Equal(t, bob.ID, got.OwnerID)

	// 老村长降 elder，新村长升 chief
	var oldM, newM model.Membership
	require.NoError(t, db.Where("village_id = ? AND user_id = ?", village.ID, owner.ID).First(&oldM).Error)
	require.NoError(t, db.Where("village_id = ? AND user_id = ?", village.ID, bob.ID).First(&newM).Error)
	assert.Equal(t, model.RoleElder, oldM.Role)
	assert.Equal(t, model.RoleChief, newM.Role)
}

func TestFindAllOnlyPublic(t *testing.T) {
	db := newTestDB(t)
	svc := NewVillageService(db)
	owner := seedUser(t, db, "alice")

	seedVillage(t, db, owner.ID, "Open One")
	_, err := svc.Create(owner.ID, CreateVillageInput{
		Name:       "Hidden One",
		Category:   "Interest",
		Visibility: model.VisibilityPrivate,
	})
	require.NoError(t, err)

	villages, err := svc.FindAll("")
	require.NoError(t, err)
	require.Len(t, villages, 1)
	assert.Equal(t, "Open One", villages[0].Name)
}

func TestSameNameGetsDistinctSlugs(t *testing.T) {
	db := newTestDB(t)
	svc := NewVillageService(db)
	owner := seedUser(t, db, "alice")

	first := seedVillage(t, db, owner.ID, "Twice")
	second, err := svc.Create(owner.ID, CreateVillageInput{Name: "Twice", Category: "Interest"})
	require.NoError(t, err)
	assert.NotEqual(t, first.Slug, second.Slug)
}
