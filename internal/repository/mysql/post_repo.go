package mysql

import (
	"Lee_Village/internal/model"

	"gorm.io/gorm"
)

type PostRepository struct {
	DB *gorm.DB
}

// CreateWithReward 发帖和发帖积分同一事务入账
func (r *PostRepository) CreateWithReward(post *model.Post, membershipID uint64, points int) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		if points > 0 {
			if err := tx.Model(&model.Membership{}).Where("id = ?", membershipID).
				UpdateColumn("balance", gorm.Expr("balance + ?", points)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *PostRepository) FindByID(id uint64) (*model.Post, error) {
	var post model.Post
	err := r.DB.First(&post, id).Error
	return &post, err
}

// ListByVillage 页码分页，新帖在前
func (r *PostRepository) ListByVillage(villageID uint64, offset, limit int) ([]model.Post, int64, error) {
	var total int64
	if err := r.DB.Model(&model.Post{}).Where("village_id = ?", villageID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []model.Post
	err := r.DB.Where("village_id = ?", villageID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&list).Error
	return list, total, err
}

// Delete 帖子连同点赞、评论一起清掉
func (r *PostRepository) Delete(id uint64) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&model.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Post{}, id).Error
	})
}
