package service

import (
	"errors"
	"time"

	"Lee_Village/internal/model"
	"Lee_Village/internal/pkg"
	"Lee_Village/internal/repository/mysql"

	"gorm.io/gorm"
)

type VillageService struct {
	repo       *mysql.VillageRepository
	memberRepo *mysql.MembershipRepository
	userRepo   *mysql.UserRepository
}

func NewVillageService(db *gorm.DB) *VillageService {
	return &VillageService{
		repo:       &mysql.VillageRepository{DB: db},
		memberRepo: &mysql.MembershipRepository{DB: db},
		userRepo:   &mysql.UserRepository{DB: db},
	}
}

type CreateVillageInput struct {
	Name           string
	Category       string
	Description    string
	CurrencyName   string
	CurrencySymbol string
	Visibility     string
}

type UpdateVillageInput struct {
	Name           *string
	Description    *string
	Announcement   *string
	CoverImage     *string
	Icon           *string
	Visibility     *string
	CurrencyName   *string
	CurrencySymbol *string
	Constitution   *model.StringList
	PointRules     *model.PointRules
}

type VillageStats struct {
	MemberCount int64 `json:"memberCount"`
	ActiveToday int64 `json:"activeToday"`
	TotalPosts  int64 `json:"totalPosts"`
}

// Create 建村者自动成为 chief，昵称固定 "Founder"。
// slug 撞了直接报 Conflict，不重试，由调用方整单重来。
func (s *VillageService) Create(ownerID uint64, in CreateVillageInput) (*model.Village, error) {
	slug, err := pkg.Slugify(in.Name)
	if err != nil {
		return nil, err
	}
	exists, err := s.repo.SlugExists(slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, pkg.Conflict("Village name already taken")
	}

	visibility := in.Visibility
	if visibility == "" {
		visibility = model.VisibilityPublic
	}
	inviteCode := ""
	if visibility == model.VisibilityPrivate {
		if inviteCode, err = pkg.RandInviteCode(); err != nil {
			return nil, err
		}
	}
	currencyName := in.CurrencyName
	if currencyName == "" {
		currencyName = "Coins"
	}
	currencySymbol := in.CurrencySymbol
	if currencySymbol == "" {
		currencySymbol = "🪙"
	}

	village := &model.Village{
		Name:           in.Name,
		Slug:           slug,
		Category:       in.Category,
		Description:    in.Description,
		CurrencyName:   currencyName,
		CurrencySymbol: currencySymbol,
		Visibility:     visibility,
		InviteCode:     inviteCode,
		MemberCount:    1,
		Constitution:   model.StringList{},
		PointRules:     model.PointRules{},
		OwnerID:        ownerID,
	}
	founder := &model.Membership{
		UserID:   ownerID,
		Role:     model.RoleChief,
		Nickname: "Founder",
	}
	if err := s.repo.Create(village, founder); err != nil {
		return nil, err
	}
	return village, nil
}

// FindAll 只列公开村庄
func (s *VillageService) FindAll(category string) ([]model.Village, error) {
	return s.repo.List(category)
}

func (s *VillageService) FindByID(id uint64) (*model.Village, error) {
	village, err := s.repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkg.NotFound("Village not found")
	}
	return village, err
}

func (s *VillageService) FindBySlug(slug string) (*model.Village, error) {
	village, err := s.repo.FindBySlug(slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkg.NotFound("Village not found")
	}
	return village, err
}

// Update 村主或 chief 可改；切私密且没邀请码时顺手生成一个
func (s *VillageService) Update(villageID, userID uint64, in UpdateVillageInput) (*model.Village, error) {
	village, err := s.FindByID(villageID)
	if err != nil {
		return nil, err
	}

	if village.OwnerID != userID {
		membership, err := s.memberRepo.Find(villageID, userID)
		if err != nil || membership.Role != model.RoleChief {
			return nil, pkg.Forbidden("Only the chief can update the village")
		}
	}

	fields := map[string]any{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Announcement != nil {
		fields["announcement"] = *in.Announcement
	}
	if in.CoverImage != nil {
		fields["cover_image"] = *in.CoverImage
	}
	if in.Icon != nil {
		fields["icon"] = *in.Icon
	}
	if in.CurrencyName != nil {
		fields["currency_name"] = *in.CurrencyName
	}
	if in.CurrencySymbol != nil {
		fields["currency_symbol"] = *in.CurrencySymbol
	}
	if in.Constitution != nil {
		fields["constitution"] = *in.Constitution
	}
	if in.PointRules != nil {
		fields["point_rules"] = *in.PointRules
	}
	if in.Visibility != nil {
		fields["visibility"] = *in.Visibility
		if *in.Visibility == model.VisibilityPrivate && village.InviteCode == "" {
			code, err := pkg.RandInviteCode()
			if err != nil {
				return nil, err
			}
			fields["invite_code"] = code
		}
	}

	if len(fields) > 0 {
		if err := s.repo.Updates(villageID, fields); err != nil {
			return nil, err
		}
	}
	return s.FindByID(villageID)
}

// Join 私密村必须带对的邀请码；昵称默认用全局用户名
func (s *VillageService) Join(villageID, userID uint64, inviteCode string) (*model.Membership, error) {
	village, err := s.FindByID(villageID)
	if err != nil {
		return nil, err
	}

	if _, err := s.memberRepo.Find(villageID, userID); err == nil {
		return nil, pkg.Conflict("Already a member of this village")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if village.Visibility == model.VisibilityPrivate {
		if inviteCode == "" || inviteCode != village.InviteCode {
			return nil, pkg.BadRequest("Invalid invite code")
		}
	}

	nickname := "New Member"
	if user, err := s.userRepo.FindByID(userID); err == nil && user.Name != "" {
		nickname = user.Name
	}

	membership := &model.Membership{
		UserID:    userID,
		VillageID: villageID,
		Role:      model.RoleVillager,
		Nickname:  nickname,
	}
	if err := s.memberRepo.Create(membership); err != nil {
		return nil, err
	}
	return membership, nil
}

// Leave chief 必须先转让所有权才能走人
func (s *VillageService) Leave(villageID, userID uint64) error {
	membership, err := s.memberRepo.Find(villageID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkg.NotFound("Not a member of this village")
	}
	if err != nil {
		return err
	}
	if membership.Role == model.RoleChief {
		return pkg.Forbidden("Chiefs cannot leave. Transfer ownership first.")
	}
	return s.memberRepo.Delete(membership.ID, villageID)
}

func (s *VillageService) RegenerateCode(villageID, userID uint64) (string, error) {
	village, err := s.FindByID(villageID)
	if err != nil {
		return "", err
	}
	if village.OwnerID != userID {
		return "", pkg.Forbidden("Only the owner can regenerate the invite code")
	}
	code, err := pkg.RandInviteCode()
	if err != nil {
		return "", err
	}
	if err := s.repo.Updates(villageID, map[string]any{"invite_code": code}); err != nil {
		return "", err
	}
	return code, nil
}

// TransferOwnership 改村主、老村长降 elder、新村长升 chief，单事务
func (s *VillageService) TransferOwnership(villageID, currentOwnerID, newOwnerID uint64) error {
	village, err := s.FindByID(villageID)
	if err != nil {
		return err
	}
	if village.OwnerID != currentOwnerID {
		return pkg.Forbidden("Only the owner can transfer ownership")
	}
	if currentOwnerID == newOwnerID {
		return pkg.BadRequest("Cannot transfer ownership to yourself")
	}

	newOwnerMembership, err := s.memberRepo.Find(villageID, newOwnerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkg.BadRequest("New owner must be a member of the village")
	}
	if err != nil {
		return err
	}
	currentOwnerMembership, err := s.memberRepo.Find(villageID, currentOwnerID)
	if err != nil {
		return err
	}

	return s.repo.TransferOwnership(villageID, newOwnerID, currentOwnerMembership.ID, newOwnerMembership.ID)
}

func (s *VillageService) GetStats(villageID uint64) (*VillageStats, error) {
	village, err := s.FindByID(villageID)
	if err != nil {
		return nil, err
	}
	totalPosts, err := s.repo.CountPosts(villageID)
	if err != nil {
		return nil, err
	}
	activeToday, err := s.repo.CountActiveSince(villageID, time.Now().Add(-24*time.Hour))
	if err != nil {
		return nil, err
	}
	return &VillageStats{
		MemberCount: village.MemberCount,
		ActiveToday: activeToday,
		TotalPosts:  totalPosts,
	}, nil
}
