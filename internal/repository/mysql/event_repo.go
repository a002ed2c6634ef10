package mysql

import (
	"time"

	"Lee_Village/internal/model"

	"gorm.io/gorm"
)

type EventRepository struct {
	DB *gorm.DB
}

func (r *EventRepository) Create(e *model.Event) error {
	return r.DB.Create(e).Error
}

func (r *EventRepository) FindByID(id uint64) (*model.Event, error) {
	var event model.Event
	err := r.DB.First(&event, id).Error
	return &event, err
}

// ListByVillage 非管理员只能看到已通过的活动和自己提交的；按开始时间升序
func (r *EventRepository) ListByVillage(villageID, viewerID uint64, seeAll bool, offset, limit int) ([]model.Event, int64, error) {
	q := r.DB.Model(&model.Event{}).Where("village_id = ?", villageID)
	if !seeAll {
		q = q.Where("status = ? OR organizer_id = ?", model.EventApproved, viewerID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []model.Event
	err := q.Order("start_time ASC").Offset(offset).Limit(limit).Find(&list).Error
	return list, total, err
}

func (r *EventRepository) Updates(id uint64, fields map[string]any) error {
	return r.DB.Model(&model.Event{}).Where("id = ?", id).Updates(fields).Error
}

// Delete 活动连同 rsvp 一起删
func (r *EventRepository) Delete(id uint64) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&model.EventRsvp{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Event{}, id).Error
	})
}

// Review 审批是幂等覆盖，不挡重复 approve
func (r *EventRepository) Review(id uint64, status string, reviewerID uint64) error {
	now := time.Now()
	return r.DB.Model(&model.Event{}).Where("id = ?", id).Updates(map[string]any{
		"status":      status,
		"reviewed_by": reviewerID,
		"reviewed_at": now,
	}).Error
}
