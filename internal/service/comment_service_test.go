package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidesk/ticket-backend/internal/domain"
	"github.com/aidesk/ticket-backend/internal/policy"
	apperrors "github.com/aidesk/ticket-backend/pkg/util"
)

func newCommentService(comments *fakeCommentRepo) *CommentService {
	return NewCommentService(policy.NewEngine(), comments)
}

func TestAddForcesPublicForUser(t *testing.T) {
	comments := &fakeCommentRepo{}
	svc := newCommentService(comments)

	comment, err := svc.Add(context.Background(), domain.RoleUser, "user-1", "t1", "any update?", "INTERNAL")
	require.NoError(t, err)
	assert.Equal(t, domain.CommentTypePublic, comment.Type)
}

func TestAddInternalForAssignee(t *testing.T) {
	comments := &fakeCommentRepo{}
	svc := newCommentService(comments)

	comment, err := svc.Add(context.Background(), domain.RoleAssignee, "staff-1", "t1", "escalating", "internal")
	require.NoError(t, err)
	assert.Equal(t, domain.CommentTypeInternal, comment.Type)
}

func TestAddDefaultsToPublic(t *testing.T) {
	comments := &fakeCommentRepo{}
	svc := newCommentService(comments)

	comment, err := svc.Add(context.Background(), domain.RoleAdmin, "admin-1", "t1", "looking into it", "")
	require.NoError(t, err)
	assert.Equal(t, domain.CommentTypePublic, comment.Type)
}

func TestAddRejectsInvalidType(t *testing.T) {
	svc := newCommentService(&fakeCommentRepo{})

	_, err := svc.Add(context.Background(), domain.RoleAdmin, "admin-1", "t1", "note", "PRIVATE")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestAddRejectsEmptyMessage(t *testing.T) {
	svc := newCommentService(&fakeCommentRepo{})

	_, err := svc.Add(context.Background(), domain.RoleUser, "user-1", "t1", "  ", "")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestAddDeniedForUnknownRole(t *testing.T) {
	svc := newCommentService(&fakeCommentRepo{})

	_, err := svc.Add(context.Background(), domain.Role("GUEST"), "g1", "t1", "hi", "")
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)
}

func TestListUserSeesPublicOnly(t *testing.T) {
	comments := &fakeCommentRepo{}
	svc := newCommentService(comments)

	_, err := svc.Add(context.Background(), domain.RoleAssignee, "staff-1", "t1", "internal note", "INTERNAL")
	require.NoError(t, err)
	_, err = svc.Add(context.Background(), domain.RoleAssignee, "staff-1", "t1", "public reply", "PUBLIC")
	require.NoError(t, err)

	visible, err := svc.List(context.Background(), domain.RoleUser, "t1")
	require.NoError(t, err)
	assert.True(t, comments.lastPublicOnly)
	require.Len(t, visible, 1)
	assert.Equal(t, "public reply", visible[0].Message)
}

func TestListPrivilegedSeesAll(t *testing.T) {
	comments := &fakeCommentRepo{}
	svc := newCommentService(comments)

	_, err := svc.Add(context.Background(), domain.RoleAssignee, "staff-1", "t1", "internal note", "INTERNAL")
	require.NoError(t, err)
	_, err = svc.Add(context.Background(), domain.RoleAssignee, "staff-1", "t1", "public reply", "PUBLIC")
	require.NoError(t, err)

	all, err := svc.List(context.Background(), domain.RoleAdmin, "t1")
	require.NoError(t, err)
	assert.False(t, comments.lastPublicOnly)
	assert.Len(t, all, 2)
}
