package service

import (
	"context"
	"errors"
	"time"

	"Lee_Village/internal/model"
	"Lee_Village/internal/pkg"
	"Lee_Village/internal/repository/mysql"

	"gorm.io/gorm"
)

type PostService struct {
	repo        *mysql.PostRepository
	likeRepo    *mysql.LikeRepository
	commentRepo *mysql.CommentRepository
	memberRepo  *mysql.MembershipRepository
	villageRepo *mysql.VillageRepository
	userRepo    *mysql.UserRepository
}

func NewPostService(db *gorm.DB) *PostService {
	return &PostService{
		repo:        &mysql.PostRepository{DB: db},
		likeRepo:    &mysql.LikeRepository{DB: db},
		commentRepo: &mysql.CommentRepository{DB: db},
		memberRepo:  &mysql.MembershipRepository{DB: db},
		villageRepo: &mysql.VillageRepository{DB: db},
		userRepo:    &mysql.UserRepository{DB: db},
	}
}

// AuthorView 作者展示信息：村内昵称/头像/角色优先，缺了退回全局资料
type AuthorView struct {
	ID     uint64 `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Role   string `json:"role"`
}

func authorView(u model.User, m *model.Membership) AuthorView {
	view := AuthorView{
		ID:     u.ID,
		Name:   u.Name,
		Avatar: u.Avatar,
		Role:   model.RoleVillager,
	}
	if m == nil {
		return view
	}
	if m.Nickname != "" {
		view.Name = m.Nickname
	}
	if m.LocalAvatar != "" {
		view.Avatar = m.LocalAvatar
	}
	if m.Role != "" {
		view.Role = m.Role
	}
	return view
}

type PostView struct {
	ID           uint64     `json:"id"`
	VillageID    uint64     `json:"villageId"`
	AuthorID     uint64     `json:"authorId"`
	Author       AuthorView `json:"author"`
	Content      string     `json:"content"`
	Images       []string   `json:"images"`
	Tags         []string   `json:"tags"`
	LikeCount    int64      `json:"likeCount"`
	CommentCount int64      `json:"commentCount"`
	IsLiked      bool       `json:"isLiked"`
	PointsEarned int        `json:"pointsEarned,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

type CommentView struct {
	ID           uint64        `json:"id"`
	PostID       uint64        `json:"postId"`
	AuthorID     uint64        `json:"authorId"`
	Author       AuthorView    `json:"author"`
	Content      string        `json:"content"`
	CreatedAt    time.Time     `json:"createdAt"`
	Replies      []CommentView `json:"replies,omitempty"`
	PointsEarned int           `json:"pointsEarned,omitempty"`
}

func (s *PostService) postView(post model.Post, users map[uint64]model.User, memberships map[uint64]model.Membership, liked bool) PostView {
	var m *model.Membership
	if mem, ok := memberships[post.AuthorID]; ok {
		m = &mem
	}
	return PostView{
		ID:           post.ID,
		VillageID:    post.VillageID,
		AuthorID:     post.AuthorID,
		Author:       authorView(users[post.AuthorID], m),
		Content:      post.Content,
		Images:       post.Images,
		Tags:         post.Tags,
		LikeCount:    post.LikeCount,
		CommentCount: post.CommentCount,
		IsLiked:      liked,
		CreatedAt:    post.CreatedAt,
		UpdatedAt:    post.UpdatedAt,
	}
}

// FindPosts 村内帖子列表，新帖在前，isLiked 按调用者算
func (s *PostService) FindPosts(villageID, viewerID uint64, page, pageSize int) (*pkg.Paginated, error) {
	page, pageSize = pkg.NormalizePage(page, pageSize)
	posts, total, err := s.repo.ListByVillage(villageID, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}

	authorIDs := uniqueIDs(posts, func(p model.Post) uint64 { return p.AuthorID })
	users, err := s.userRepo.FindByIDs(authorIDs)
	if err != nil {
		return nil, err
	}
	memberships, err := s.memberRepo.MapByVillageUsers(villageID, authorIDs)
	if err != nil {
		return nil, err
	}
	postIDs := make([]uint64, 0, len(posts))
	for _, p := range posts {
		postIDs = append(postIDs, p.ID)
	}
	likedSet, err := s.likeRepo.LikedSet(viewerID, postIDs)
	if err != nil {
		return nil, err
	}

	items := make([]PostView, 0, len(posts))
	for _, post := range posts {
		items = append(items, s.postView(post, users, memberships, likedSet[post.ID]))
	}
	return &pkg.Paginated{Items: items, Pagination: pkg.NewPagination(page, pageSize, total)}, nil
}

func (s *PostService) FindByID(postID, viewerID uint64) (*PostView, error) {
	post, err := s.repo.FindByID(postID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkg.NotFound("Post not found")
	}
	if err != nil {
		return nil, err
	}

	users, err := s.userRepo.FindByIDs([]uint64{post.AuthorID})
	if err != nil {
		return nil, err
	}
	memberships, err := s.memberRepo.MapByVillageUsers(post.VillageID, []uint64{post.AuthorID})
	if err != nil {
		return nil, err
	}
	liked := false
	if viewerID != 0 {
		if liked, err = s.likeRepo.IsLiked(postID, viewerID); err != nil {
			return nil, err
		}
	}
	view := s.postView(*post, users, memberships, liked)
	return &view, nil
}

type CreatePostInput struct {
	Content string
	Images  []string
	Tags    []string
}

// Create 发帖积分和帖子同一事务入账（pointRules.post）
func (s *PostService) Create(villageID, userID uint64, in CreatePostInput) (*PostView, error) {
	membership, err := s.memberRepo.Find(villageID, userID)
	if err != nil {
		return nil, pkg.Forbidden("You must be a member to post")
	}
	village, err := s.villageRepo.FindByID(villageID)
	if err != nil {
		return nil, err
	}
	points := village.PointRules.Reward(model.ActionPost)

	if in.Images == nil {
		in.Images = []string{}
	}
	if in.Tags == nil {
		in.Tags = []string{}
	}
	post := &model.Post{
		VillageID: villageID,
		AuthorID:  userID,
		Content:   in.Content,
		Images:    in.Images,
		Tags:      in.Tags,
	}
	if err := s.repo.CreateWithReward(post, membership.ID, points); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	view := s.postView(*post,
		map[uint64]model.User{userID: *user},
		map[uint64]model.Membership{userID: *membership},
		false)
	view.PointsEarned = points
	return &view, nil
}

// Delete 作者本人或内容管理口径（chief/core_member）
func (s *PostService) Delete(postID, userID uint64) error {
	post, err := s.repo.FindByID(postID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkg.NotFound("Post not found")
	}
	if err != nil {
		return err
	}

	if post.AuthorID != userID {
		membership, err := s.memberRepo.Find(post.VillageID, userID)
		if err != nil || !membership.CanModerateContent() {
			return pkg.Forbidden("No permission to delete this post")
		}
	}
	return s.repo.Delete(postID)
}

// Like 幂等；首赞时作者吃 like_received 积分（自赞不给）
func (s *PostService) Like(ctx context.Context, postID, userID uint64) (bool, error) {
	post, err := s.repo.FindByID(postID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, pkg.NotFound("Post not found")
	}
	if err != nil {
		return false, err
	}

	points := 0
	var authorMembershipID uint64
	if post.AuthorID != userID {
		village, err := s.villageRepo.FindByID(post.VillageID)
		if err != nil {
			return false, err
		}
		points = village.PointRules.Reward(model.ActionLikeReceived)
		if points > 0 {
			if authorMembership, err := s.memberRepo.Find(post.VillageID, post.AuthorID); err == nil {
				authorMembershipID = authorMembership.ID
			}
		}
	}

	if _, err := s.likeRepo.Like(ctx, postID, userID, authorMembershipID, points); err != nil {
		return false, err
	}
	return true, nil
}

// Unlike 没点过就是 no-op；不回收已发的积分
func (s *PostService) Unlike(ctx context.Context, postID, userID uint64) (bool, error) {
	if _, err := s.likeRepo.Unlike(ctx, postID, userID); err != nil {
		return false, err
	}
	return false, nil
}

// GetComments 顶层新在前，回复旧在前，只展开一层
func (s *PostService) GetComments(postID uint64) ([]CommentView, error) {
	post, err := s.repo.FindByID(postID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkg.NotFound("Post not found")
	}
	if err != nil {
		return nil, err
	}

	topLevel, err := s.commentRepo.ListTopLevel(postID)
	if err != nil {
		return nil, err
	}
	parentIDs := make([]uint64, 0, len(topLevel))
	for _, c := range topLevel {
		parentIDs = append(parentIDs, c.ID)
	}
	replies, err := s.commentRepo.ListReplies(parentIDs)
	if err != nil {
		return nil, err
	}

	authorSet := map[uint64]struct{}{}
	for _, c := range topLevel {
		authorSet[c.AuthorID] = struct{}{}
	}
	for _, c := range replies {
		authorSet[c.AuthorID] = struct{}{}
	}
	authorIDs := make([]uint64, 0, len(authorSet))
	for id := range authorSet {
		authorIDs = append(authorIDs, id)
	}
	users, err := s.userRepo.FindByIDs(authorIDs)
	if err != nil {
		return nil, err
	}
	memberships, err := s.memberRepo.MapByVillageUsers(post.VillageID, authorIDs)
	if err != nil {
		return nil, err
	}

	commentView := func(c model.Comment) CommentView {
		var m *model.Membership
		if mem, ok := memberships[c.AuthorID]; ok {
			m = &mem
		}
		return CommentView{
			ID:        c.ID,
			PostID:    c.PostID,
			AuthorID:  c.AuthorID,
			Author:    authorView(users[c.AuthorID], m),
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
		}
	}

	repliesByParent := map[uint64][]CommentView{}
	for _, c := range replies {
		repliesByParent[*c.ParentID] = append(repliesByParent[*c.ParentID], commentView(c))
	}
	views := make([]CommentView, 0, len(topLevel))
	for _, c := range topLevel {
		view := commentView(c)
		view.Replies = repliesByParent[c.ID]
		views = append(views, view)
	}
	return views, nil
}

type CreateCommentInput struct {
	Content  string
	ParentID *uint64
}

// CreateComment 评论、计数、积分同一事务（pointRules.comment）
func (s *PostService) CreateComment(postID, userID uint64, in CreateCommentInput) (*CommentView, error) {
	post, err := s.repo.FindByID(postID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkg.NotFound("Post not found")
	}
	if err != nil {
		return nil, err
	}

	membership, err := s.memberRepo.Find(post.VillageID, userID)
	if err != nil {
		return nil, pkg.Forbidden("You must be a member to comment")
	}
	village, err := s.villageRepo.FindByID(post.VillageID)
	if err != nil {
		return nil, err
	}
	points := village.PointRules.Reward(model.ActionComment)

	comment := &model.Comment{
		PostID:   postID,
		AuthorID: userID,
		ParentID: in.ParentID,
		Content:  in.Content,
	}
	if err := s.commentRepo.CreateWithReward(comment, membership.ID, points); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	view := CommentView{
		ID:           comment.ID,
		PostID:       comment.PostID,
		AuthorID:     comment.AuthorID,
		Author:       authorView(*user, membership),
		Content:      comment.Content,
		CreatedAt:    comment.CreatedAt,
		PointsEarned: points,
	}
	return &view, nil
}

func uniqueIDs[T any](items []T, id func(T) uint64) []uint64 {
	seen := map[uint64]struct{}{}
	result := make([]uint64, 0, len(items))
	for _, item := range items {
		v := id(item)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}
