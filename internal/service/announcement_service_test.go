package service

import (
	"fitu/dashboard/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnouncementSnapshotIsFrozen(t *testing.T) {
	f := newFixture(t)
	_, err := f.rosters.SaveRoster(f.ctx, instructorSess, []string{"a", "b", "c"})
	require.NoError(t, err)

	created, err := f.announcements.CreateAnnouncement(f.ctx, instructorSess, domain.AnnouncementInput{Title: "Field day", Message: "Bring water."})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, created.Students)

	_, err = f.rosters.SaveRoster(f.ctx, instructorSess, []string{"a"})
	require.NoError(t, err)
	created.Students[0] = "mutated"

	list, err := f.announcements.ListAnnouncements(f.ctx, instructorSess)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []string{"a", "b", "c"}, list[0].Students)

	for _, uid := range []string{"b", "c"} {
		got, err := f.announcements.ListStudentAnnouncements(f.ctx, domain.Session{UID: uid})
		require.NoError(t, err)
		assert.Len(t, got, 1, uid)
	}
}

func TestCreateAnnouncementWithEmptyRoster(t *testing.T) {
	f := newFixture(t)

	created, err := f.announcements.CreateAnnouncement(f.ctx, instructorSess, domain.AnnouncementInput{Title: "Hi", Message: "Welcome"})
	require.NoError(t, err)
	assert.NotNil(t, created.Students)
	assert.Empty(t, created.Students)
	assert.Equal(t, instructorSess.UID, created.ClassRosterID)
}

func TestCreateAnnouncementValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.announcements.CreateAnnouncement(f.ctx, instructorSess, domain.AnnouncementInput{Title: " ", Message: ""})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 2)

	list, err := f.announcements.ListAnnouncements(f.ctx, instructorSess)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListAnnouncementsNewestFirstAndScoped(t *testing.T) {
	f := newFixture(t)
	for _, title := range []string{"first", "second"} {
		_, err := f.announcements.CreateAnnouncement(f.ctx, instructorSess, domain.AnnouncementInput{Title: title, Message: "m"})
		require.NoError(t, err)
	}
	_, err := f.announcements.CreateAnnouncement(f.ctx, otherInstSess, domain.AnnouncementInput{Title: "other", Message: "m"})
	require.NoError(t, err)

	list, err := f.announcements.ListAnnouncements(f.ctx, instructorSess)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Title)
	assert.Equal(t, "first", list[1].Title)
}

func TestDeleteAnnouncementIsIdempotentAndScoped(t *testing.T) {
	f := newFixture(t)
	created, err := f.announcements.CreateAnnouncement(f.ctx, instructorSess, domain.AnnouncementInput{Title: "t", Message: "m"})
	require.NoError(t, err)

	require.NoError(t, f.announcements.DeleteAnnouncement(f.ctx, otherInstSess, created.ID))
	list, err := f.announcements.ListAnnouncements(f.ctx, instructorSess)
	require.NoError(t, err)
	assert.Len(t, list, 1, "another instructor cannot delete it")

	require.NoError(t, f.announcements.DeleteAnnouncement(f.ctx, instructorSess, created.ID))
	require.NoError(t, f.announcements.DeleteAnnouncement(f.ctx, instructorSess, created.ID))
	list, err = f.announcements.ListAnnouncements(f.ctx, instructorSess)
	require.NoError(t, err)
	assert.Empty(t, list)
}
