package service

import (
	"errors"

	"Lee_Village/internal/model"
	"Lee_Village/internal/pkg"
	"Lee_Village/internal/repository/mysql"
	"Lee_Village/internal/repository/redis"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	repo        *mysql.UserRepository
	memberRepo  *mysql.MembershipRepository
	villageRepo *mysql.VillageRepository
	rUser       *redis.UserRepository
	emailSvc    *EmailService
}

func NewUserService(db *gorm.DB, emailSvc *EmailService) *UserService {
	return &UserService{
		repo:        &mysql.UserRepository{DB: db},
		memberRepo:  &mysql.MembershipRepository{DB: db},
		villageRepo: &mysql.VillageRepository{DB: db},
		rUser:       &redis.UserRepository{},
		emailSvc:    emailSvc,
	}
}

type AuthResult struct {
	User   *model.User    `json:"user"`
	Tokens *pkg.TokenPair `json:"tokens"`
}

func (s *UserService) Register(email, password, name string) (*AuthResult, error) {
	if _, err := s.repo.FindByEmail(email); err == nil {
		return nil, pkg.Conflict("Email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Email:    email,
		Password: string(hash),
		Name:     name,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}
	return s.issueTokens(user)
}

func (s *UserService) Login(email, password string) (*AuthResult, error) {
	user, err := s.repo.FindByEmail(email)
	if err != nil {
		return nil, pkg.Unauthorized("Invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, pkg.Unauthorized("Invalid credentials")
	}
	return s.issueTokens(user)
}

// issueTokens 签发并把 access token 写入 redis（单点登录）
func (s *UserService) issueTokens(user *model.User) (*AuthResult, error) {
	tokens, err := pkg.GeneratePair(user.ID)
	if err != nil {
		return nil, err
	}
	if err := s.rUser.AddUserToken(user.ID, tokens.AccessToken); err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Tokens: tokens}, nil
}

func (s *UserService) Logout(userID uint64) error {
	return s.rUser.DeleteUserToken(userID)
}

func (s *UserService) Refresh(refreshToken string) (*pkg.TokenPair, error) {
	pair, err := pkg.Refresh(refreshToken)
	if err != nil {
		return nil, pkg.Unauthorized("Invalid refresh token")
	}
	claims, err := pkg.ParseAccess(pair.AccessToken)
	if err != nil {
		return nil, err
	}
	if err := s.rUser.AddUserToken(claims.UserID, pair.AccessToken); err != nil {
		return nil, err
	}
	return pair, nil
}

// ResetPassword 邮箱验证码重置密码
func (s *UserService) ResetPassword(email, code, newPassword string) error {
	ok, err := s.emailSvc.VerifyCode(ScopeReset, email, code)
	if err != nil || !ok {
		return pkg.BadRequest("Verification failed")
	}

	user, err := s.repo.FindByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkg.NotFound("User not found")
	}
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(user, string(hash))
}

func (s *UserService) GetByID(id uint64) (*model.User, error) {
	user, err := s.repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkg.NotFound("User not found")
	}
	return user, err
}

type UpdateUserInput struct {
	Name     *string
	Avatar   *string
	Phone    *string
	Location *string
}

func (s *UserService) Update(userID uint64, in UpdateUserInput) (*model.User, error) {
	fields := map[string]any{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Avatar != nil {
		fields["avatar"] = *in.Avatar
	}
	if in.Phone != nil {
		fields["phone"] = *in.Phone
	}
	if in.Location != nil {
		fields["location"] = *in.Location
	}
	if len(fields) > 0 {
		if err := s.repo.Updates(userID, fields); err != nil {
			return nil, err
		}
	}
	return s.GetByID(userID)
}

// UserMembershipView 我的村庄列表项
type UserMembershipView struct {
	model.Membership
	Village VillageSummary `json:"village"`
}

type VillageSummary struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Icon        string `json:"icon"`
	Category    string `json:"category"`
	MemberCount int64  `json:"memberCount"`
}

func (s *UserService) GetMemberships(userID uint64) ([]UserMembershipView, error) {
	memberships, err := s.memberRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	villageIDs := make([]uint64, 0, len(memberships))
	for _, m := range memberships {
		villageIDs = append(villageIDs, m.VillageID)
	}
	villages, err := s.villageRepo.FindByIDs(villageIDs)
	if err != nil {
		return nil, err
	}

	views := make([]UserMembershipView, 0, len(memberships))
	for _, m := range memberships {
		v := villages[m.VillageID]
		views = append(views, UserMembershipView{
			Membership: m,
			Village: VillageSummary{
				ID:          v.ID,
				Name:        v.Name,
				Slug:        v.Slug,
				Icon:        v.Icon,
				Category:    v.Category,
				MemberCount: v.MemberCount,
			},
		})
	}
	return views, nil
}

// AssetView 每个村的积分余额和货币信息
type AssetView struct {
	VillageID      uint64 `json:"villageId"`
	VillageName    string `json:"villageName"`
	CurrencyName   string `json:"currencyName"`
	CurrencySymbol string `json:"currencySymbol"`
	Balance        int64  `json:"balance"`
}

func (s *UserService) GetAssets(userID uint64) ([]AssetView, error) {
	memberships, err := s.memberRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	villageIDs := make([]uint64, 0, len(memberships))
	for _, m := range memberships {
		villageIDs = append(villageIDs, m.VillageID)
	}
	villages, err := s.villageRepo.FindByIDs(villageIDs)
	if err != nil {
		return nil, err
	}

	assets := make([]AssetView, 0, len(memberships))
	for _, m := range memberships {
		v := villages[m.VillageID]
		assets = append(assets, AssetView{
			VillageID:      m.VillageID,
			VillageName:    v.Name,
			CurrencyName:   v.CurrencyName,
			CurrencySymbol: v.CurrencySymbol,
			Balance:        m.Balance,
		})
	}
	return assets, nil
}
