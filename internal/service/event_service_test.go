package service

import (
	"context"
	"testing"
	"time"

	"Lee_Village/internal/model"
	"Lee_Village/internal/pkg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedEvent(t *testing.T, db *gorm.DB, villageID, organizerID uint64, title string) *EventView {
	t.Helper()
	event, err := NewEventService(db).Create(villageID, organizerID, CreateEventInput{
		Title:     title,
		Type:      model.EventTypeOffline,
		StartTime: time.Now().Add(48 * time.Hour),
	})
	require.NoError(t, err)
	return event
}

func TestCreateEventApprovalGate(t *testing.T) {
	db := newTestDB(t)
	chief := seedUser(t, db, "alice")
	villager := seedUser(t, db, "bob")
	village := seedVillage(t, db, chief.ID, "Events")
	seedMember(t, db, village.ID, villager.ID, model.RoleVillager)

	// chief 发起免审
	event := seedEvent(t, db, village.ID, chief.ID, "Chief Meetup")
	assert.Equal(t, model.EventApproved, event.Status)

	// villager 发起进 pending
	event = seedEvent(t, db, village.ID, villager.ID, "Villager Meetup")
	assert.Equal(t, model.EventPending, event.Status)

	var stored model.Event
	require.NoError(t, db.First(&stored, event.ID).Error)
	assert.Nil(t, stored.ReviewedBy)
}

func TestCreateEventRequiresMembership(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "alice")
	outsider := seedUser(t, db, "bob")
	village := seedVillage(t, db, owner.ID, "Closed Events")

	_, err := NewEventService(db).Create(village.ID, outsider.ID, CreateEventInput{
		Title:     "Crash the party",
		Type:      model.EventTypeOnline,
		StartTime: time.Now(),
	})
	require.Error(t, err)
	assert.Equal(t, 403, pkg.HTTPStatus(err))
}

func TestApproveAndReject(t *testing.T) {
	db := newTestDB(t)
	svc := NewEventService(db)
	chief := seedUser(t, db, "alice")
	core := seedUser(t, db, "bob")
	villager := seedUser(t, db, "carol")
	village := seedVillage(t, db, chief.ID, "Reviews")
	seedMember(t, db, village.ID, core.ID, model.RoleCoreMember)
	seedMember(t, db, village.ID, villager.ID, model.RoleVillager)

	event := seedEvent(t, db, village.ID, villager.ID, "Pending Fair")
	require.Equal(t, model.EventPending, event.Status)

	// core_member 管内容不管活动审批
	_, err := svc.Approve(event.ID, core.ID)
	require.Error(t, err)
	assert.Equal(t, 403, pkg.HTTPStatus(err))

	status, err := svc.Approve(event.ID, chief.ID)
	require.NoError(t, err)
	assert.Equal(t, model.EventApproved, status)

	var stored model.Event
	require.NoError(t, db.First(&stored, event.ID).Error)
	require.NotNil(t, stored.ReviewedBy)
	assert.Equal(t, chief.ID, *stored.ReviewedBy)

	status, err = svc.Reject(event.ID, chief.ID)
	require.NoError(t, err)
	assert.Equal(t, model.EventRejected, status)
}

func TestFindEventsVisibility(t *testing.T) {
	db := newTestDB(t)
	svc := NewEventService(db)
	chief := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")
	village := seedVillage(t, db, chief.ID, "Listings")
	seedMember(t, db, village.ID, bob.ID, model.RoleVillager)
	seedMember(t, db, village.ID, carol.ID, model.RoleVillager)

	seedEvent(t, db, village.ID, chief.ID, "Approved One")
	seedEvent(t, db, village.ID, bob.ID, "Bob Pending")

	// 普通成员看见 approved + 自己的 pending
	result, err := svc.FindEvents(village.ID, bob.ID, 1, 20, false)
	require.NoError(t, err)
	assert.Len(t, result.Items.([]EventView), 2)

	// 别人看不到 bob 的 pending
	result, err = svc.FindEvents(village.ID, carol.ID, 1, 20, false)
	require.NoError(t, err)
	assert.Len(t, result.Items.([]EventView), 1)

	// chief 全量
	result, err = svc.FindEvents(village.ID, chief.ID, 1, 20, false)
	require.NoError(t, err)
	assert.Len(t, result.Items.([]EventView), 2)
}

func TestRsvpTransitions(t *testing.T) {
	db := newTestDB(t)
	svc := NewEventService(db)
	ctx := context.Background()
	chief := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	village := seedVillage(t, db, chief.ID, "Rsvps")
	seedMember(t, db, village.ID, bob.ID, model.RoleVillager)
	event := seedEvent(t, db, village.ID, chief.ID, "Big Fair")

	attendeeCount := func() int64 {
		var e model.Event
		require.NoError(t, db.First(&e, event.ID).Error)
		return e.AttendeeCount
	}

	_, err := svc.Rsvp(ctx, event.ID, bob.ID, RsvpInput{Status: model.RsvpGoing, Name: "Bob", Phone: "123"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), attendeeCount())

	// going -> going 不重复计数
	_, err = svc.Rsvp(ctx, event.ID, bob.ID, RsvpInput{Status: model.RsvpGoing})
	require.NoError(t, err)
	assert.Equal(t, int64(1), attendeeCount())

	// going -> interested 回退计数
	_, err = svc.Rsvp(ctx, event.ID, bob.ID, RsvpInput{Status: model.RsvpInterested})
	require.NoError(t, err)
	assert.Equal(t, int64(0), attendeeCount())

	// interested <-> not_going 互转不碰计数
	_, err = svc.Rsvp(ctx, event.ID, bob.ID, RsvpInput{Status: model.RsvpNotGoing})
	require.NoError(t, err)
	assert.Equal(t, int64(0), attendeeCount())
	_, err = svc.Rsvp(ctx, event.ID, bob.ID, RsvpInput{Status: model.RsvpInterested})
	require.NoError(t, err)
	assert.Equal(t, int64(0), attendeeCount())

	// interested -> going 再进场
	_, err = svc.Rsvp(ctx, event.ID, bob.ID, RsvpInput{Status: model.RsvpGoing})
	require.NoError(t, err)
	assert.Equal(t, int64(1), attendeeCount())

	// 非成员不能报名
	outsider := seedUser(t, db, "eve")
	_, err = svc.Rsvp(ctx, event.ID, outsider.ID, RsvpInput{Status: model.RsvpGoing})
	require.Error(t, err)
	assert.Equal(t, 403, pkg.HTTPStatus(err))
}

func TestGetAttendeesPrivacy(t *testing.T) {
	db := newTestDB(t)
	svc := NewEventService(db)
	ctx := context.Background()
	chief := seedUser(t, db, "alice")
	organizer := seedUser(t, db, "bob")
	attendee := seedUser(t, db, "carol")
	viewer := seedUser(t, db, "dave")
	village := seedVillage(t, db, chief.ID, "Attendees")
	seedMember(t, db, village.ID, organizer.ID, model.RoleVillager)
	seedMember(t, db, village.ID, attendee.ID, model.RoleVillager)
	seedMember(t, db, village.ID, viewer.ID, model.RoleVillager)

	event := seedEvent(t, db, village.ID, organizer.ID, "Privacy Fair")
	_, err := svc.Rsvp(ctx, event.ID, attendee.ID, RsvpInput{
		Status: model.RsvpGoing,
		Name:   "Carol Chen",
		Phone:  "13900000000",
		Note:   "vegetarian",
	})
	require.NoError(t, err)

	// 普通成员看不到联系资料
	result, err := svc.GetAttendees(event.ID, viewer.ID, 1, 20)
	require.NoError(t, err)
	assert.False(t, result.CanSeeDetails)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "carol", result.Items[0].Name)
	assert.Empty(t, result.Items[0].Phone)

	// 组织者和 chief 可见
	for _, viewerID := range []uint64{organizer.ID, chief.ID} {
		result, err = svc.GetAttendees(event.ID, viewerID, 1, 20)
		require.NoError(t, err)
		assert.True(t, result.CanSeeDetails)
		require.Len(t, result.Items, 1)
		assert.Equal(t, "Carol Chen", result.Items[0].RegistrationName)
		assert.Equal(t, "13900000000", result.Items[0].Phone)
	}
}

func TestUpdateAndDeleteEventPermissions(t *testing.T) {
	db := newTestDB(t)
	svc := NewEventService(db)
	chief := seedUser(t, db, "alice")
	organizer := seedUser(t, db, "bob")
	other := seedUser(t, db, "carol")
	village := seedVillage(t, db, chief.ID, "Edits")
	seedMember(t, db, village.ID, organizer.ID, model.RoleVillager)
	seedMember(t, db, village.ID, other.ID, model.RoleVillager)

	event := seedEvent(t, db, village.ID, organizer.ID, "Editable")

	title := "Renamed"
	_, err := svc.Update(event.ID, other.ID, UpdateEventInput{Title: &title})
	require.Error(t, err)
	assert.Equal(t, 403, pkg.HTTPStatus(err))

	updated, err := svc.Update(event.ID, organizer.ID, UpdateEventInput{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)

	require.Error(t, svc.Delete(event.ID, other.ID))
	require.NoError(t, svc.Delete(event.ID, chief.ID))

	_, err = svc.FindByID(event.ID, 0)
	require.Error(t, err)
	assert.Equal(t, 404, pkg.HTTPStatus(err))
}
