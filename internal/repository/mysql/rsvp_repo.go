package mysql

import (
	"context"
	"errors"

	"Lee_Village/internal/model"

	"gorm.io/gorm"
)

type RsvpRepository struct {
	DB *gorm.DB
}

func (r *RsvpRepository) Find(eventID, userID uint64) (*model.EventRsvp, error) {
	var rsvp model.EventRsvp
	err := r.DB.Where("event_id = ? AND user_id = ?", eventID, userID).First(&rsvp).Error
	return &rsvp, err
}

// Upsert RSVP 行和 attendee_count 同一事务。计数只在 going 状态
// 进出时变化，interested<->not_going 互转不碰计数。
func (r *RsvpRepository) Upsert(ctx context.Context, eventID, userID uint64, status, name, phone, note string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.EventRsvp
		err := tx.Where("event_id = ? AND user_id = ?", eventID, userID).First(&existing).Error

		isNowGoing := status == model.RsvpGoing
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 并发首次 RSVP 由 (event_id,user_id) 唯一索引兜底
			rsvp := model.EventRsvp{
				EventID: eventID,
				UserID:  userID,
				Status:  status,
				Name:    name,
				Phone:   phone,
				Note:    note,
			}
			if err := tx.Create(&rsvp).Error; err != nil {
				return err
			}
			if isNowGoing {
				return bumpAttendees(tx, eventID, +1)
			}
			return nil
		}
		if err != nil {
			return err
		}

		wasGoing := existing.Status == model.RsvpGoing
		if err := tx.Model(&model.EventRsvp{}).Where("id = ?", existing.ID).Updates(map[string]any{
			"status": status,
			"name":   name,
			"phone":  phone,
			"note":   note,
		}).Error; err != nil {
			return err
		}
		switch {
		case isNowGoing && !wasGoing:
			return bumpAttendees(tx, eventID, +1)
		case wasGoing && !isNowGoing:
			return bumpAttendees(tx, eventID, -1)
		}
		return nil
	})
}

func bumpAttendees(tx *gorm.DB, eventID uint64, delta int) error {
	return tx.Model(&model.Event{}).Where("id = ?", eventID).
		UpdateColumn("attendee_count", gorm.Expr("attendee_count + ?", delta)).Error
}

// MapByUserEvents 一批活动里 userID 自己的 RSVP，列表页标 myRsvp 用
func (r *RsvpRepository) MapByUserEvents(userID uint64, eventIDs []uint64) (map[uint64]model.EventRsvp, error) {
	result := make(map[uint64]model.EventRsvp, len(eventIDs))
	if userID == 0 || len(eventIDs) == 0 {
		return result, nil
	}
	var list []model.EventRsvp
	if err := r.DB.Where("user_id = ? AND event_id IN ?", userID, eventIDs).
		Find(&list).Error; err != nil {
		return nil, err
	}
	for _, rsvp := range list {
		result[rsvp.EventID] = rsvp
	}
	return result, nil
}

// ListGoing 只列 going 的报名，新报名在前
func (r *RsvpRepository) ListGoing(eventID uint64, offset, limit int) ([]model.EventRsvp, int64, error) {
	var total int64
	if err := r.DB.Model(&model.EventRsvp{}).
		Where("event_id = ? AND status = ?", eventID, model.RsvpGoing).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []model.EventRsvp
	err := r.DB.Where("event_id = ? AND status = ?", eventID, model.RsvpGoing).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&list).Error
	return list, total, err
}
