package model

import "time"

const (
	EventTypeOnline  = "Online"
	EventTypeOffline = "Offline"
)

// 活动状态机：pending -> approved / pending -> rejected，没有回头路
const (
	EventPending  = "pending"
	EventApproved = "approved"
	EventRejected = "rejected"
)

const (
	RsvpGoing      = "going"
	RsvpInterested = "interested"
	RsvpNotGoing   = "not_going"
)

type Event struct {
	ID            uint64     `gorm:"primaryKey" json:"id"`
	VillageID     uint64     `gorm:"not null;index" json:"villageId"`
	OrganizerID   uint64     `gorm:"not null;index" json:"organizerId"`
	Title         string     `gorm:"size:200;not null" json:"title"`
	Description   string     `gorm:"type:text" json:"description"`
	CoverImage    string     `gorm:"size:255" json:"coverImage"`
	Type          string     `gorm:"size:16;not null" json:"type"`
	Location      string     `gorm:"size:255" json:"location"`
	StartTime     time.Time  `gorm:"not null;index" json:"startTime"`
	EndTime       *time.Time `json:"endTime,omitempty"`
	AttendeeCount int64      `gorm:"not null;default:0" json:"attendeeCount"`
	Status        string     `gorm:"size:16;not null;default:pending" json:"status"`
	ReviewedBy    *uint64    `json:"reviewedBy,omitempty"`
	ReviewedAt    *time.Time `json:"reviewedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// EventRsvp (event_id, user_id) 唯一；报名资料不论状态都存
type EventRsvp struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	EventID   uint64    `gorm:"not null;index;uniqueIndex:uk_event_user" json:"eventId"`
	UserID    uint64    `gorm:"not null;uniqueIndex:uk_event_user" json:"userId"`
	Status    string    `gorm:"size:16;not null" json:"status"`
	Name      string    `gorm:"size:64" json:"name"`
	Phone     string    `gorm:"size:32" json:"phone"`
	Note      string    `gorm:"size:255" json:"note"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (EventRsvp) TableName() string { return "event_rsvps" }
