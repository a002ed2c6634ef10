package model

import "time"

// 村内角色。elder 不可由 updateRole 指派，只会在所有权转移时由 chief 降级产生。
const (
	RoleChief      = "chief"
	RoleCoreMember = "core_member"
	RoleElder      = "elder"
	RoleVillager   = "villager"
)

// AssignableRoles updateRole 允许指派的角色
var AssignableRoles = []string{RoleChief, RoleCoreMember, RoleVillager}

type Membership struct {
	ID           uint64    `gorm:"primaryKey" json:"id"`
	UserID       uint64    `gorm:"not null;index;uniqueIndex:uk_user_village" json:"userId"`
	VillageID    uint64    `gorm:"not null;index;uniqueIndex:uk_user_village" json:"villageId"`
	Role         string    `gorm:"size:16;not null;default:villager" json:"role"`
	Nickname     string    `gorm:"size:64" json:"nickname"`
	Bio          string    `gorm:"type:text" json:"bio"`
	Status       string    `gorm:"size:128" json:"status"`
	LocalAvatar  string    `gorm:"size:255" json:"localAvatar"`
	ShowEmail    bool      `gorm:"not null;default:false" json:"showEmail"`
	ShowPhone    bool      `gorm:"not null;default:false" json:"showPhone"`
	ShowLocation bool      `gorm:"not null;default:false" json:"showLocation"`
	ShowSocials  bool      `gorm:"not null;default:false" json:"showSocials"`
	Balance      int64     `gorm:"not null;default:0" json:"balance"`
	JoinedAt     time.Time `gorm:"autoCreateTime" json:"joinedAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CanModerateEvents 活动审核口径：chief/elder。
// 与内容管理口径是两套独立策略，不要合并。
func (m *Membership) CanModerateEvents() bool {
	return m != nil && (m.Role == RoleChief || m.Role == RoleElder)
}

// CanModerateContent 内容管理口径：chief/core_member（删帖、移除成员、活动编辑/删除）
func (m *Membership) CanModerateContent() bool {
	return m != nil && (m.Role == RoleChief || m.Role == RoleCoreMember)
}
