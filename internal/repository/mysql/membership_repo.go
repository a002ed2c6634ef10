package mysql

import (
	"Lee_Village/internal/model"

	"gorm.io/gorm"
)

// 成员列表过滤器
const (
	MemberFilterNewest = "newest"
	MemberFilterAdmins = "admins"
)

type MembershipRepository struct {
	DB *gorm.DB
}

func (r *MembershipRepository) Find(villageID, userID uint64) (*model.Membership, error) {
	var m model.Membership
	err := r.DB.Where("village_id = ? AND user_id = ?", villageID, userID).First(&m).Error
	return &m, err
}

func (r *MembershipRepository) ListByVillage(villageID uint64, filter string) ([]model.Membership, error) {
	q := r.DB.Where("village_id = ?", villageID)
	switch filter {
	case MemberFilterAdmins:
		q = q.Where("role IN ?", []string{model.RoleChief, model.RoleCoreMember}).Order("role ASC")
	case MemberFilterNewest:
		q = q.Order("joined_at DESC")
	default:
		// role 字符串升序恰好 chief 排最前
		q = q.Order("role ASC")
	}
	var list []model.Membership
	err := q.Find(&list).Error
	return list, err
}

func (r *MembershipRepository) ListByUser(userID uint64) ([]model.Membership, error) {
	var list []model.Membership
	err := r.DB.Where("user_id = ?", userID).Order("joined_at DESC").Find(&list).Error
	return list, err
}

// MapByVillageUsers 村内若干用户的 membership，作者信息展示用
func (r *MembershipRepository) MapByVillageUsers(villageID uint64, userIDs []uint64) (map[uint64]model.Membership, error) {
	result := make(map[uint64]model.Membership, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}
	var list []model.Membership
	if err := r.DB.Where("village_id = ? AND user_id IN ?", villageID, userIDs).
		Find(&list).Error; err != nil {
		return nil, err
	}
	for _, m := range list {
		result[m.UserID] = m
	}
	return result, nil
}

// Create 入村：membership 和 member_count+1 同一事务
func (r *MembershipRepository) Create(m *model.Membership) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		return tx.Model(&model.Village{}).Where("id = ?", m.VillageID).
			UpdateColumn("member_count", gorm.Expr("member_count + 1")).Error
	})
}

// Delete 退村/移除：删行和 member_count-1 同一事务
func (r *MembershipRepository) Delete(membershipID, villageID uint64) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&model.Membership{}, membershipID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		return tx.Model(&model.Village{}).Where("id = ?", villageID).
			UpdateColumn("member_count", gorm.Expr("member_count - 1")).Error
	})
}

func (r *MembershipRepository) UpdateRole(membershipID uint64, role string) error {
	return r.DB.Model(&model.Membership{}).Where("id = ?", membershipID).
		Update("role", role).Error
}

func (r *MembershipRepository) Updates(membershipID uint64, fields map[string]any) error {
	return r.DB.Model(&model.Membership{}).Where("id = ?", membershipID).
		Updates(fields).Error
}
