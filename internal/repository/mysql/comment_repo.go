package mysql

import (
	"Lee_Village/internal/model"

	"gorm.io/gorm"
)

type CommentRepository struct {
	DB *gorm.DB
}

// CreateWithReward 评论、comment_count+1、评论积分同一事务
func (r *CommentRepository) CreateWithReward(comment *model.Comment, membershipID uint64, points int) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Post{}).Where("id = ?", comment.PostID).
			UpdateColumn("comment_count", gorm.Expr("comment_count + 1")).Error; err != nil {
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

// ListTopLevel 顶层评论，新的在前
func (r *CommentRepository) ListTopLevel(postID uint64) ([]model.Comment, error) {
	var list []model.Comment
	err := r.DB.Where("post_id = ? AND parent_id IS NULL", postID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

// ListReplies 一批顶层评论的回复，旧的在前
func (r *CommentRepository) ListReplies(parentIDs []uint64) ([]model.Comment, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}
	var list []model.Comment
	err := r.DB.Where("parent_id IN ?", parentIDs).
		Order("created_at ASC").
		Find(&list).Error
	return list, err
}
