package service

import (
	"context"
	"testing"

	"Lee_Village/internal/model"
	"Lee_Village/internal/pkg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePostAwardsPoints(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	owner := seedUser(t, db, "alice")
	village := seedVillage(t, db, owner.ID, "Posting")
	setPointRules(t, db, village.ID, model.PointRules{"post": 10})

	post, err := svc.Create(village.ID, owner.ID, CreatePostInput{
		Content: "hello village",
		Tags:    []string{"intro"},
	})
	require.NoError(t, err)
	assert.Equal(t, 10, post.PointsEarned)
	assert.Equal(t, []string{"intro"}, post.Tags)
	assert.Equal(t, int64(10), memberBalance(t, db, village.ID, owner.ID))

	// 未配置奖励的村发帖不加分
	other := seedVillage(t, db, owner.ID, "No Rules")
	post, err = svc.Create(other.ID, owner.ID, CreatePostInput{Content: "free post"})
	require.NoError(t, err)
	assert.Zero(t, post.PointsEarned)
	assert.Equal(t, int64(0), memberBalance(t, db, other.ID, owner.ID))
}

func TestCreatePostRequiresMembership(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	owner := seedUser(t, db, "alice")
	outsider := seedUser(t, db, "bob")
	village := seedVillage(t, db, owner.ID, "Members Only")

	_, err := svc.Create(village.ID, outsider.ID, CreatePostInput{Content: "let me in"})
	require.Error(t, err)
	assert.Equal(t, 403, pkg.HTTPStatus(err))
}

func TestLikeIdempotentAndRewardsAuthor(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	ctx := context.Background()
	author := seedUser(t, db, "alice")
	liker := seedUser(t, db, "bob")
	village := seedVillage(t, db, author.ID, "Likes")
	seedMember(t, db, village.ID, liker.ID, model.RoleVillager)
	setPointRules(t, db, village.ID, model.PointRules{"like_received": 5})

	post, err := svc.Create(village.ID, author.ID, CreatePostInput{Content: "like me"})
	require.NoError(t, err)

	_, err = svc.Like(ctx, post.ID, liker.ID)
	require.NoError(t, err)

	got, err := svc.FindByID(post.ID, liker.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.LikeCount)
	assert.True(t, got.IsLiked)
	assert.Equal(t, int64(5), memberBalance(t, db, village.ID, author.ID))

	// 重复点赞不重复计数、不重复发分
	_, err = svc.Like(ctx, post.ID, liker.ID)
	require.NoError(t, err)
	got, err = svc.FindByID(post.ID, liker.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.LikeCount)
	assert.Equal(t, int64(5), memberBalance(t, db, village.ID, author.ID))
}

func TestSelfLikeNoReward(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	ctx := context.Background()
	author := seedUser(t, db, "alice")
	village := seedVillage(t, db, author.ID, "Self Likes")
	setPointRules(t, db, village.ID, model.PointRules{"like_received": 5})

	post, err := svc.Create(village.ID, author.ID, CreatePostInput{Content: "me first"})
	require.NoError(t, err)

	_, err = svc.Like(ctx, post.ID, author.ID)
	require.NoError(t, err)

	got, err := svc.FindByID(post.ID, author.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.LikeCount)
	assert.Equal(t, int64(0), memberBalance(t, db, village.ID, author.ID))
}

func TestUnlike(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	ctx := context.Background()
	author := seedUser(t, db, "alice")
	liker := seedUser(t, db, "bob")
	village := seedVillage(t, db, author.ID, "Unlikes")
	seedMember(t, db, village.ID, liker.ID, model.RoleVillager)
	setPointRules(t, db, village.ID, model.PointRules{"like_received": 5})

	post, err := svc.Create(village.ID, author.ID, CreatePostInput{Content: "fickle crowd"})
	require.NoError(t, err)

	// 没点过赞时取消是 no-op
	_, err = svc.Unlike(ctx, post.ID, liker.ID)
	require.NoError(t, err)
	got, err := svc.FindByID(post.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.LikeCount)

	_, err = svc.Like(ctx, post.ID, liker.ID)
	require.NoError(t, err)
	_, err = svc.Unlike(ctx, post.ID, liker.ID)
	require.NoError(t, err)

	got, err = svc.FindByID(post.ID, liker.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.LikeCount)
	assert.False(t, got.IsLiked)
	// 已发的积分不回收
	assert.Equal(t, int64(5), memberBalance(t, db, village.ID, author.ID))
}

func TestDeletePostPermissions(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	owner := seedUser(t, db, "alice")
	author := seedUser(t, db, "bob")
	other := seedUser(t, db, "carol")
	village := seedVillage(t, db, owner.ID, "Moderation")
	seedMember(t, db, village.ID, author.ID, model.RoleVillager)
	seedMember(t, db, village.ID, other.ID, model.RoleVillager)

	post, err := svc.Create(village.ID, author.ID, CreatePostInput{Content: "delete me"})
	require.NoError(t, err)

	err = svc.Delete(post.ID, other.ID)
	require.Error(t, err)
	assert.Equal(t, 403, pkg.HTTPStatus(err))

	// chief 按内容管理口径可删
	require.NoError(t, svc.Delete(post.ID, owner.ID))
	_, err = svc.FindByID(post.ID, 0)
	require.Error(t, err)
	assert.Equal(t, 404, pkg.HTTPStatus(err))
}

func TestCommentsThreading(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	owner := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	village := seedVillage(t, db, owner.ID, "Threads")
	seedMember(t, db, village.ID, bob.ID, model.RoleVillager)
	setPointRules(t, db, village.ID, model.PointRules{"comment": 3})

	post, err := svc.Create(village.ID, owner.ID, CreatePostInput{Content: "discuss"})
	require.NoError(t, err)

	top, err := svc.CreateComment(post.ID, bob.ID, CreateCommentInput{Content: "first"})
	require.NoError(t, err)
	assert.Equal(t, 3, top.PointsEarned)

	_, err = svc.CreateComment(post.ID, owner.ID, CreateCommentInput{
		Content:  "reply",
		ParentID: &top.ID,
	})
	require.NoError(t, err)

	views, err := svc.GetComments(post.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "first", views[0].Content)
	require.Len(t, views[0].Replies, 1)
	assert.Equal(t, "reply", views[0].Replies[0].Content)

	got, err := svc.FindByID(post.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.CommentCount)
	assert.Equal(t, int64(3), memberBalance(t, db, village.ID, bob.ID))
}

func TestFindPostsPagination(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	owner := seedUser(t, db, "alice")
	village := seedVillage(t, db, owner.ID, "Feed")

	for i := 0; i < 3; i++ {
		_, err := svc.Create(village.ID, owner.ID, CreatePostInput{Content: "post"})
		require.NoError(t, err)
	}

	result, err := svc.FindPosts(village.ID, 0, 1, 2)
	require.NoError(t, err)
	items := result.Items.([]PostView)
	assert.Len(t, items, 2)
	assert.Equal(t, int64(3), result.Pagination.Total)
	assert.Equal(t, 2, result.Pagination.TotalPages)
}
