package service

import (
	"errors"
	"slices"
	"time"

	"Lee_Village/internal/model"
	"Lee_Village/internal/pkg"
	"Lee_Village/internal/repository/mysql"

	"gorm.io/gorm"
)

type MembershipService struct {
	repo     *mysql.MembershipRepository
	userRepo *mysql.UserRepository
}

func NewMembershipService(db *gorm.DB) *MembershipService {
	return &MembershipService{
		repo:     &mysql.MembershipRepository{DB: db},
		userRepo: &mysql.UserRepository{DB: db},
	}
}

type PrivacyView struct {
	ShowEmail    bool `json:"showEmail"`
	ShowPhone    bool `json:"showPhone"`
	ShowLocation bool `json:"showLocation"`
	ShowSocials  bool `json:"showSocials"`
}

// MemberView 对外的成员视图。email/phone/location 只在对应隐私
// 开关打开时出现，投影在取数之后做，便于单测。
type MemberView struct {
	ID       uint64      `json:"id"`
	UserID   uint64      `json:"userId"`
	Name     string      `json:"name"`
	Nickname string      `json:"nickname"`
	Avatar   string      `json:"avatar"`
	Role     string      `json:"role"`
	Status   string      `json:"status"`
	Bio      string      `json:"bio,omitempty"`
	Balance  *int64      `json:"balance,omitempty"`
	JoinedAt time.Time   `json:"joinedAt"`
	Email    string      `json:"email,omitempty"`
	Phone    string      `json:"phone,omitempty"`
	Location string      `json:"location,omitempty"`
	Privacy  PrivacyView `json:"privacy"`
}

// ProjectMember 隐私投影
func ProjectMember(m model.Membership, u model.User) MemberView {
	view := MemberView{
		ID:       m.ID,
		UserID:   m.UserID,
		Name:     u.Name,
		Nickname: m.Nickname,
		Avatar:   u.Avatar,
		Role:     m.Role,
		Status:   m.Status,
		JoinedAt: m.JoinedAt,
		Privacy: PrivacyView{
			ShowEmail:    m.ShowEmail,
			ShowPhone:    m.ShowPhone,
			ShowLocation: m.ShowLocation,
			ShowSocials:  m.ShowSocials,
		},
	}
	if m.LocalAvatar != "" {
		view.Avatar = m.LocalAvatar
	}
	if m.ShowEmail {
		view.Email = u.Email
	}
	if m.ShowPhone {
		view.Phone = u.Phone
	}
	if m.ShowLocation {
		view.Location = u.Location
	}
	return view
}

func (s *MembershipService) FindMembers(villageID uint64, filter string) ([]MemberView, error) {
	memberships, err := s.repo.ListByVillage(villageID, filter)
	if err != nil {
		return nil, err
	}

	userIDs := make([]uint64, 0, len(memberships))
	for _, m := range memberships {
		userIDs = append(userIDs, m.UserID)
	}
	users, err := s.userRepo.FindByIDs(userIDs)
	if err != nil {
		return nil, err
	}

	views := make([]MemberView, 0, len(memberships))
	for _, m := range memberships {
		views = append(views, ProjectMember(m, users[m.UserID]))
	}
	return views, nil
}

func (s *MembershipService) FindMember(villageID, userID uint64) (*MemberView, error) {
	membership, err := s.repo.Find(villageID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkg.NotFound("Member not found")
	}
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	view := ProjectMember(*membership, *user)
	view.Bio = membership.Bio
	balance := membership.Balance
	view.Balance = &balance
	return &view, nil
}

type UpdateMembershipInput struct {
	Nickname *string
	Bio      *string
	Status   *string
	Privacy  *PrivacyPatch
}

type PrivacyPatch struct {
	ShowEmail    *bool
	ShowPhone    *bool
	ShowLocation *bool
	ShowSocials  *bool
}

// UpdateMyProfile 只能改自己的村内资料
func (s *MembershipService) UpdateMyProfile(villageID, userID uint64, in UpdateMembershipInput) (*model.Membership, error) {
	membership, err := s.repo.Find(villageID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkg.NotFound("Not a member of this village")
	}
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if in.Nickname != nil {
		fields["nickname"] = *in.Nickname
	}
	if in.Bio != nil {
		fields["bio"] = *in.Bio
	}
	if in.Status != nil {
		fields["status"] = *in.Status
	}
	if in.Privacy != nil {
		if in.Privacy.ShowEmail != nil {
			fields["show_email"] = *in.Privacy.ShowEmail
		}
		if in.Privacy.ShowPhone != nil {
			fields["show_phone"] = *in.Privacy.ShowPhone
		}
		if in.Privacy.ShowLocation != nil {
			fields["show_location"] = *in.Privacy.ShowLocation
		}
		if in.Privacy.ShowSocials != nil {
			fields["show_socials"] = *in.Privacy.ShowSocials
		}
	}
	if len(fields) > 0 {
		if err := s.repo.Updates(membership.ID, fields); err != nil {
			return nil, err
		}
	}
	return s.repo.Find(villageID, userID)
}

// UpdateRole 仅 chief 可指派，且不能指派自己；elder 不在可指派之列，
// 只会在所有权转移时产生
func (s *MembershipService) UpdateRole(villageID, targetUserID, callerID uint64, role string) (*model.Membership, error) {
	if !slices.Contains(model.AssignableRoles, role) {
		return nil, pkg.BadRequest("Invalid role")
	}

	caller, err := s.repo.Find(villageID, callerID)
	if err != nil || caller.Role != model.RoleChief {
		return nil, pkg.Forbidden("Only chiefs can change roles")
	}
	if targetUserID == callerID {
		return nil, pkg.Forbidden("Cannot change your own role")
	}

	target, err := s.repo.Find(villageID, targetUserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkg.NotFound("Member not found")
	}
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateRole(target.ID, role); err != nil {
		return nil, err
	}
	return s.repo.Find(villageID, targetUserID)
}

// RemoveMember chief/core_member 可移除；chief 动不得；
// core_member 只能移除 villager
func (s *MembershipService) RemoveMember(villageID, targetUserID, callerID uint64) error {
	caller, err := s.repo.Find(villageID, callerID)
	if err != nil || !caller.CanModerateContent() {
		return pkg.Forbidden("No permission to remove members")
	}

	target, err := s.repo.Find(villageID, targetUserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkg.NotFound("Member not found")
	}
	if err != nil {
		return err
	}

	if target.Role == model.RoleChief {
		return pkg.Forbidden("Cannot remove a chief")
	}
	if caller.Role == model.RoleCoreMember && target.Role != model.RoleVillager {
		return pkg.Forbidden("Core members can only remove villagers")
	}

	return s.repo.Delete(target.ID, villageID)
}
