package mysql

import (
	"time"

	"Lee_Village/internal/model"

	"gorm.io/gorm"
)

type VillageRepository struct {
	DB *gorm.DB
}

// Create 建村和村长 membership 同一事务落库
func (r *VillageRepository) Create(v *model.Village, founder *model.Membership) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(v).Error; err != nil {
			return err
		}
		founder.VillageID = v.ID
		return tx.Create(founder).Error
	})
}

func (r *VillageRepository) FindByID(id uint64) (*model.Village, error) {
	var village model.Village
	err := r.DB.First(&village, id).Error
	return &village, err
}

func (r *VillageRepository) FindBySlug(slug string) (*model.Village, error) {
	var village model.Village
	err := r.DB.Where("slug = ?", slug).First(&village).Error
	return &village, err
}

func (r *VillageRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Village{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

// List 只返回公开村庄，按人数降序
func (r *VillageRepository) List(category string) ([]model.Village, error) {
	q := r.DB.Where("visibility = ?", model.VisibilityPublic)
	if category != "" && category != "All" {
		q = q.Where("category = ?", category)
	}
	var list []model.Village
	err := q.Order("member_count DESC").Find(&list).Error
	return list, err
}

// FindByIDs 用户的村庄列表/资产页批量取村，返回 id -> village
func (r *VillageRepository) FindByIDs(ids []uint64) (map[uint64]model.Village, error) {
	result := make(map[uint64]model.Village, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var list []model.Village
	if err := r.DB.Where("id IN ?", ids).Find(&list).Error; err != nil {
		return nil, err
	}
	for _, v := range list {
		result[v.ID] = v
	}
	return result, nil
}

func (r *VillageRepository) Updates(id uint64, fields map[string]any) error {
	return r.DB.Model(&model.Village{}).Where("id = ?", id).Updates(fields).Error
}

// TransferOwnership 三个写要么全成要么全不成
func (r *VillageRepository) TransferOwnership(villageID, newOwnerID, oldMembershipID, newMembershipID uint64) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Village{}).Where("id = ?", villageID).
			Update("owner_id", newOwnerID).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Membership{}).Where("id = ?", oldMembershipID).
			Update("role", model.RoleElder).Error; err != nil {
			return err
		}
		return tx.Model(&model.Membership{}).Where("id = ?", newMembershipID).
			Update("role", model.RoleChief).Error
	})
}

func (r *VillageRepository) CountPosts(villageID uint64) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Post{}).Where("village_id = ?", villageID).Count(&count).Error
	return count, err
}

// CountActiveSince membership 在 since 之后有更新的算活跃
func (r *VillageRepository) CountActiveSince(villageID uint64, since time.Time) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Membership{}).
		Where("village_id = ? AND updated_at >= ?", villageID, since).
		Count(&count).Error
	return count, err
}
