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

type EventService struct {
	repo       *mysql.EventRepository
	rsvpRepo   *mysql.RsvpRepository
	memberRepo *mysql.MembershipRepository
	userRepo   *mysql.UserRepository
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{
		repo:       &mysql.EventRepository{DB: db},
		rsvpRepo:   &mysql.RsvpRepository{DB: db},
		memberRepo: &mysql.MembershipRepository{DB: db},
		userRepo:   &mysql.UserRepository{DB: db},
	}
}

type EventView struct {
	ID            uint64     `json:"id"`
	VillageID     uint64     `json:"villageId"`
	OrganizerID   uint64     `json:"organizerId"`
	Organizer     AuthorView `json:"organizer"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	CoverImage    string     `json:"coverImage"`
	Type          string     `json:"type"`
	Location      string     `json:"location"`
	StartTime     time.Time  `json:"startTime"`
	EndTime       *time.Time `json:"endTime,omitempty"`
	AttendeeCount int64      `json:"attendeeCount"`
	Status        string     `json:"status"`
	MyRsvp        *string    `json:"myRsvp"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func eventView(e model.Event, organizer model.User, role string, myRsvp *string) EventView {
	if role == "" {
		role = model.RoleVillager
	}
	return EventView{
		ID:          e.ID,
		VillageID:   e.VillageID,
		OrganizerID: e.OrganizerID,
		Organizer: AuthorView{
			ID:     organizer.ID,
			Name:   organizer.Name,
			Avatar: organizer.Avatar,
			Role:   role,
		},
		Title:         e.Title,
		Description:   e.Description,
		CoverImage:    e.CoverImage,
		Type:          e.Type,
		Location:      e.Location,
		StartTime:     e.StartTime,
		EndTime:       e.EndTime,
		AttendeeCount: e.AttendeeCount,
		Status:        e.Status,
		MyRsvp:        myRsvp,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

// FindEvents 非管理员（chief/elder 之外）只看到已通过的活动和
// 自己提交的待审活动；includeAll 或管理员看全部
func (s *EventService) FindEvents(villageID, viewerID uint64, page, pageSize int, includeAll bool) (*pkg.Paginated, error) {
	page, pageSize = pkg.NormalizePage(page, pageSize)

	seeAll := includeAll
	if !seeAll && viewerID != 0 {
		if membership, err := s.memberRepo.Find(villageID, viewerID); err == nil {
			seeAll = membership.CanModerateEvents()
		}
	}

	events, total, err := s.repo.ListByVillage(villageID, viewerID, seeAll, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}

	organizerIDs := uniqueIDs(events, func(e model.Event) uint64 { return e.OrganizerID })
	users, err := s.userRepo.FindByIDs(organizerIDs)
	if err != nil {
		return nil, err
	}
	memberships, err := s.memberRepo.MapByVillageUsers(villageID, organizerIDs)
	if err != nil {
		return nil, err
	}
	eventIDs := make([]uint64, 0, len(events))
	for _, e := range events {
		eventIDs = append(eventIDs, e.ID)
	}
	myRsvps, err := s.rsvpRepo.MapByUserEvents(viewerID, eventIDs)
	if err != nil {
		return nil, err
	}

	items := make([]EventView, 0, len(events))
	for _, e := range events {
		var myRsvp *string
		if rsvp, ok := myRsvps[e.ID]; ok {
			status := rsvp.Status
			myRsvp = &status
		}
		items = append(items, eventView(e, users[e.OrganizerID], memberships[e.OrganizerID].Role, myRsvp))
	}
	return &pkg.Paginated{Items: items, Pagination: pkg.NewPagination(page, pageSize, total)}, nil
}

func (s *EventService) FindByID(eventID, viewerID uint64) (*EventView, error) {
	event, err := s.repo.FindByID(eventID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkg.NotFound("Event not found")
	}
	if err != nil {
		return nil, err
	}

	users, err := s.userRepo.FindByIDs([]uint64{event.OrganizerID})
	if err != nil {
		return nil, err
	}
	memberships, err := s.memberRepo.MapByVillageUsers(event.VillageID, []uint64{event.OrganizerID})
	if err != nil {
		return nil, err
	}
	var myRsvp *string
	if viewerID != 0 {
		if rsvp, err := s.rsvpRepo.Find(eventID, viewerID); err == nil {
			status := rsvp.Status
			myRsvp = &status
		}
	}
	view := eventView(*event, users[event.OrganizerID], memberships[event.OrganizerID].Role, myRsvp)
	return &view, nil
}

type CreateEventInput struct {
	Title       string
	Description string
	CoverImage  string
	Type        string
	Location    string
	StartTime   time.Time
	EndTime     *time.Time
}

// Create chief/elder 发起的活动免审直接 approved，其余进 pending 待审
func (s *EventService) Create(villageID, userID uint64, in CreateEventInput) (*EventView, error) {
	membership, err := s.memberRepo.Find(villageID, userID)
	if err != nil {
		return nil, pkg.Forbidden("You must be a member to create events")
	}

	event := &model.Event{
		VillageID:   villageID,
		OrganizerID: userID,
		Title:       in.Title,
		Description: in.Description,
		CoverImage:  in.CoverImage,
		Type:        in.Type,
		Location:    in.Location,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		Status:      model.EventPending,
	}
	if membership.CanModerateEvents() {
		now := time.Now()
		event.Status = model.EventApproved
		event.ReviewedBy = &userID
		event.ReviewedAt = &now
	}
	if err := s.repo.Create(event); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	view := eventView(*event, *user, membership.Role, nil)
	return &view, nil
}

type UpdateEventInput struct {
	Title       *string
	Description *string
	CoverImage  *string
	Type        *string
	Location    *string
	StartTime   *time.Time
	EndTime     *time.Time
}

// Update 组织者或内容管理口径（chief/core_member，有意不是 chief/elder）
func (s *EventService) Update(eventID, userID uint64, in UpdateEventInput) (*model.Event, error) {
	event, err := s.repo.FindByID(eventID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkg.NotFound("Event not found")
	}
	if err != nil {
		return nil, err
	}

	if err := s.checkEditPermission(event, userID); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if in.Title != nil {
		fields["title"] = *in.Title
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.CoverImage != nil {
		fields["cover_image"] = *in.CoverImage
	}
	if in.Type != nil {
		fields["type"] = *in.Type
	}
	if in.Location != nil {
		fields["location"] = *in.Location
	}
	if in.StartTime != nil {
		fields["start_time"] = *in.StartTime
	}
	if in.EndTime != nil {
		fields["end_time"] = *in.EndTime
	}
	if len(fields) > 0 {
		if err := s.repo.Updates(eventID, fields); err != nil {
			return nil, err
		}
	}
	return s.repo.FindByID(eventID)
}

func (s *EventService) Delete(eventID, userID uint64) error {
	event, err := s.repo.FindByID(eventID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkg.NotFound("Event not found")
	}
	if err != nil {
		return err
	}
	if err := s.checkEditPermission(event, userID); err != nil {
		return err
	}
	return s.repo.Delete(eventID)
}

func (s *EventService) checkEditPermission(event *model.Event, userID uint64) error {
	if event.OrganizerID == userID {
		return nil
	}
	membership, err := s.memberRepo.Find(event.VillageID, userID)
	if err != nil || !membership.CanModerateContent() {
		return pkg.Forbidden("No permission to modify this event")
	}
	return nil
}

type RsvpInput struct {
	Status string
	Name   string
	Phone  string
	Note   string
}

// Rsvp upsert；attendee_count 只跟 going 的进出走
func (s *EventService) Rsvp(ctx context.Context, eventID, userID uint64, in RsvpInput) (string, error) {
	event, err := s.repo.FindByID(eventID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", pkg.NotFound("Event not found")
	}
	if err != nil {
		return "", err
	}

	if _, err := s.memberRepo.Find(event.VillageID, userID); err != nil {
		return "", pkg.Forbidden("You must be a member to RSVP")
	}

	if err := s.rsvpRepo.Upsert(ctx, eventID, userID, in.Status, in.Name, in.Phone, in.Note); err != nil {
		return "", err
	}
	return in.Status, nil
}

type AttendeeView struct {
	ID               uint64    `json:"id"`
	Name             string    `json:"name"`
	Avatar           string    `json:"avatar"`
	RsvpAt           time.Time `json:"rsvpAt"`
	RegistrationName string    `json:"registrationName,omitempty"`
	Phone            string    `json:"phone,omitempty"`
	Note             string    `json:"note,omitempty"`
}

type AttendeesResult struct {
	Items         []AttendeeView `json:"items"`
	Pagination    pkg.Pagination `json:"pagination"`
	CanSeeDetails bool           `json:"canSeeDetails"`
}

// GetAttendees 报名联系资料只给组织者和 chief/elder 看
func (s *EventService) GetAttendees(eventID, viewerID uint64, page, pageSize int) (*AttendeesResult, error) {
	event, err := s.repo.FindByID(eventID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkg.NotFound("Event not found")
	}
	if err != nil {
		return nil, err
	}

	canSeeDetails := false
	if viewerID != 0 {
		if event.OrganizerID == viewerID {
			canSeeDetails = true
		} else if membership, err := s.memberRepo.Find(event.VillageID, viewerID); err == nil {
			canSeeDetails = membership.CanModerateEvents()
		}
	}

	page, pageSize = pkg.NormalizePage(page, pageSize)
	rsvps, total, err := s.rsvpRepo.ListGoing(eventID, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}

	userIDs := uniqueIDs(rsvps, func(r model.EventRsvp) uint64 { return r.UserID })
	users, err := s.userRepo.FindByIDs(userIDs)
	if err != nil {
		return nil, err
	}

	items := make([]AttendeeView, 0, len(rsvps))
	for _, rsvp := range rsvps {
		user := users[rsvp.UserID]
		item := AttendeeView{
			ID:     user.ID,
			Name:   user.Name,
			Avatar: user.Avatar,
			RsvpAt: rsvp.CreatedAt,
		}
		if canSeeDetails {
			item.RegistrationName = rsvp.Name
			item.Phone = rsvp.Phone
			item.Note = rsvp.Note
		}
		items = append(items, item)
	}

	return &AttendeesResult{
		Items:         items,
		Pagination:    pkg.NewPagination(page, pageSize, total),
		CanSeeDetails: canSeeDetails,
	}, nil
}

// Approve 幂等覆盖，已 approved 再批一次也不报错
func (s *EventService) Approve(eventID, userID uint64) (string, error) {
	return s.review(eventID, userID, model.EventApproved, "Only admins can approve events")
}

func (s *EventService) Reject(eventID, userID uint64) (string, error) {
	return s.review(eventID, userID, model.EventRejected, "Only admins can reject events")
}

func (s *EventService) review(eventID, userID uint64, status, denyMsg string) (string, error) {
	event, err := s.repo.FindByID(eventID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", pkg.NotFound("Event not found")
	}
	if err != nil {
		return "", err
	}

	membership, err := s.memberRepo.Find(event.VillageID, userID)
	if err != nil || !membership.CanModerateEvents() {
		return "", pkg.Forbidden(denyMsg)
	}

	if err := s.repo.Review(eventID, status, userID); err != nil {
		return "", err
	}
	return status, nil
}
