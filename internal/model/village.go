package model

import "time"

// 村庄分类
const (
	CategoryInterest     = "Interest"
	CategoryProfessional = "Professional"
	CategoryRegion       = "Region"
	CategoryLifestyle    = "Lifestyle"
)

const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

type Village struct {
	ID             uint64     `gorm:"primaryKey" json:"id"`
	Name           string     `gorm:"size:64;not null" json:"name"`
	Slug           string     `gorm:"uniqueIndex;size:80;not null" json:"slug"`
	Category       string     `gorm:"size:32;not null" json:"category"`
	Description    string     `gorm:"type:text" json:"description"`
	Announcement   string     `gorm:"type:text" json:"announcement"`
	CoverImage     string     `gorm:"size:255" json:"coverImage"`
	Icon           string     `gorm:"size:255" json:"icon"`
	CurrencyName   string     `gorm:"size:32;not null;default:Coins" json:"currencyName"`
	CurrencySymbol string     `gorm:"size:16" json:"currencySymbol"`
	Visibility     string     `gorm:"size:16;not null;default:public" json:"visibility"`
	InviteCode     string     `gorm:"size:16" json:"inviteCode,omitempty"`
	MemberCount    int64      `gorm:"not null;default:0" json:"memberCount"`
	Constitution   StringList `gorm:"type:text" json:"constitution"`
	PointRules     PointRules `gorm:"type:text" json:"pointRules"`
	OwnerID        uint64     `gorm:"not null;index" json:"ownerId"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}
