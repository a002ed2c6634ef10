package mysql

import (
	"context"
	"errors"

	"Lee_Village/internal/model"

	"gorm.io/gorm"
)

type LikeRepository struct {
	DB *gorm.DB
}

// Like 幂等点赞。首次点赞时点赞行、like_count+1、作者 like_received 积分
// 三个写同一事务；已点过返回 changed=false 不动任何计数。
// authorMembershipID 为 0 表示不奖励（自赞或无 membership）。
func (r *LikeRepository) Like(ctx context.Context, postID, userID, authorMembershipID uint64, points int) (bool, error) {
	var changed bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Like
		err := tx.Where("post_id = ? AND user_id = ?", postID, userID).First(&existing).Error
		if err == nil {
			changed = false
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// 并发重复插入由 (post_id,user_id) 唯一索引兜底
		if err = tx.Create(&model.Like{PostID: postID, UserID: userID}).Error; err != nil {
			return err
		}
		if err = tx.Model(&model.Post{}).Where("id = ?", postID).
			UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error; err != nil {
			return err
		}
		if points > 0 && authorMembershipID != 0 {
			if err = tx.Model(&model.Membership{}).Where("id = ?", authorMembershipID).
				UpdateColumn("balance", gorm.Expr("balance + ?", points)).Error; err != nil {
				return err
			}
		}
		changed = true
		return nil
	})
	return changed, err
}

// Unlike 幂等取消。未点过返回 changed=false；已奖励的积分不回收。
func (r *LikeRepository) Unlike(ctx context.Context, postID, userID uint64) (bool, error) {
	var changed bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&model.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			changed = false
			return nil
		}
		changed = true
		return tx.Model(&model.Post{}).Where("id = ?", postID).
			UpdateColumn("like_count", gorm.Expr("CASE WHEN like_count > 0 THEN like_count - 1 ELSE 0 END")).Error
	})
	return changed, err
}

func (r *LikeRepository) IsLiked(postID, userID uint64) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Like{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error
	return count > 0, err
}

// LikedSet 一批帖子里 userID 点过赞的集合，列表页标 isLiked 用
func (r *LikeRepository) LikedSet(userID uint64, postIDs []uint64) (map[uint64]bool, error) {
	result := make(map[uint64]bool, len(postIDs))
	if userID == 0 || len(postIDs) == 0 {
		return result, nil
	}
	var likes []model.Like
	if err := r.DB.Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Find(&likes).Error; err != nil {
		return nil, err
	}
	for _, l := range likes {
		result[l.PostID] = true
	}
	return result, nil
}
