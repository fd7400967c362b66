package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/autospa/autospa-api/internal/domain/entity"
	"github.com/autospa/autospa-api/internal/domain/enum"
	"github.com/autospa/autospa-api/internal/domain/repository/mocks"
	"github.com/autospa/autospa-api/pkg/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type userFixture struct {
	users   *mocks.MockUserRepository
	roles   *mocks.MockRoleRepository
	service *UserService
}

func newUserFixture(t *testing.T) *userFixture {
	ctrl := gomock.NewController(t)
	f := &userFixture{
		users: mocks.NewMockUserRepository(ctrl),
		roles: mocks.NewMockRoleRepository(ctrl),
	}
	f.service = NewUserService(f.users, f.roles, mocks.NewMockPermissionRepository(ctrl), nil)
	return f
}

func TestUserService_CreateUser(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()
	newID := uuid.New()

	f.users.EXPECT().GetByEmail(ctx, "meena@autospa.local").Return(nil, nil)
	f.roles.EXPECT().GetByName(ctx, enum.RoleStaff).Return(&entity.Role{ID: 2, Name: enum.RoleStaff}, nil)
	f.users.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u *entity.User) error {
		assert.Equal(t, "meena@autospa.local", u.Email)
		assert.True(t, u.IsActive)
		assert.True(t, utils.CheckPasswordHash("counter-2026", u.Password))
		u.ID = newID
		return nil
	})
	f.users.EXPECT().AssignRole(ctx, newID, uint(2)).Return(nil)
	f.users.EXPECT().GetWithRoles(ctx, newID).Return(&entity.User{ID: newID, Email: "meena@autospa.local"}, nil)

	user, err := f.service.CreateUser(ctx, &CreateUserInput{
		FirstName: "Meena",
		Email:     " Meena@AutoSpa.local ",
		Password:  "counter-2026",
	})
	require.NoError(t, err)
	assert.Equal(t, newID, user.ID)
}

func TestUserService_CreateUser_DuplicateEmail(t *testing.T) {
	f := newUserFixture(t)
	f.users.EXPECT().GetByEmail(gomock.Any(), "desk@autospa.local").Return(&entity.User{}, nil)

	_, err := f.service.CreateUser(context.Background(), &CreateUserInput{Email: "desk@autospa.local", Password: "secret123"})
	requireAppError(t, err, http.StatusConflict)
}

func TestUserService_UpdateUserRoles_AdminKeepsOwnAdminRole(t *testing.T) {
	f := newUserFixture(t)
	self := uuid.New()

	f.users.EXPECT().GetByID(gomock.Any(), self).Return(&entity.User{ID: self}, nil)
	f.roles.EXPECT().GetByNames(gomock.Any(), []string{enum.RoleStaff}).Return([]entity.Role{{ID: 2, Name: enum.RoleStaff}}, nil)

	_, err := f.service.UpdateUserRoles(context.Background(), &UpdateUserRolesInput{
		ActorID: self,
		UserID:  self,
		Roles:   []string{enum.RoleStaff},
	})
	requireAppError(t, err, http.StatusBadRequest)
}

func TestUserService_UpdateUserRoles_UnknownRole(t *testing.T) {
	f := newUserFixture(t)
	id := uuid.New()

	f.users.EXPECT().GetByID(gomock.Any(), id).Return(&entity.User{ID: id}, nil)
	f.roles.EXPECT().GetByNames(gomock.Any(), []string{"owner"}).Return(nil, nil)

	_, err := f.service.UpdateUserRoles(context.Background(), &UpdateUserRolesInput{
		ActorID: uuid.New(),
		UserID:  id,
		Roles:   []string{"owner"},
	})
	requireAppError(t, err, http.StatusBadRequest)
}

func TestUserService_SetActive(t *testing.T) {
	self, other := uuid.New(), uuid.New()

	t.Run("cannot deactivate self", func(t *testing.T) {
		f := newUserFixture(t)
		_, err := f.service.SetActive(context.Background(), self, self, false)
		requireAppError(t, err, http.StatusBadRequest)
	})

	t.Run("deactivates another user", func(t *testing.T) {
		f := newUserFixture(t)
		f.users.EXPECT().GetByID(gomock.Any(), other).Return(&entity.User{ID: other, IsActive: true}, nil)
		f.users.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		user, err := f.service.SetActive(context.Background(), self, other, false)
		require.NoError(t, err)
		assert.False(t, user.IsActive)
	})
}

func TestUserService_DeleteUser(t *testing.T) {
	f := newUserFixture(t)
	self, missing := uuid.New(), uuid.New()

	err := f.service.DeleteUser(context.Background(), self, self)
	requireAppError(t, err, http.StatusBadRequest)

	f.users.EXPECT().GetByID(gomock.Any(), missing).Return(nil, nil)
	err = f.service.DeleteUser(context.Background(), self, missing)
	requireAppError(t, err, http.StatusNotFound)
}
