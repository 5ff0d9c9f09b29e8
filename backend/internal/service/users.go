package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/yamdb-dev/yamdb/backend/internal/service/utils"
	"github.com/yamdb-dev/yamdb/shared/access"
	"github.com/yamdb-dev/yamdb/shared/domain"
	"github.com/yamdb-dev/yamdb/shared/errors"
	"github.com/yamdb-dev/yamdb/shared/logger"
	shared_utils "github.com/yamdb-dev/yamdb/shared/utils"
)

type UserService interface {
	GetOrCreate(ctx context.Context, username domain.Username, email domain.Email) (domain.User, bool, error)
	FindByUsername(ctx context.Context, username domain.Username) (domain.User, error)
	SetRole(ctx context.Context, actor domain.Actor, target domain.Username, role domain.Role) (domain.User, error)

	List(ctx context.Context, actor domain.Actor, search string, page int) (domain.Page[domain.User], error)
	Create(ctx context.Context, actor domain.Actor, data domain.UserCreationData) (domain.User, error)
	Get(ctx context.Context, actor domain.Actor, username domain.Username) (domain.User, error)
	Update(ctx context.Context, actor domain.Actor, username domain.Username, upd domain.UserUpdate) (domain.User, error)
	Delete(ctx context.Context, actor domain.Actor, username domain.Username) error

	Me(ctx context.Context, actor domain.Actor) (domain.User, error)
	UpdateMe(ctx context.Context, actor domain.Actor, upd domain.UserUpdate) (domain.User, error)
}

type UserStorage interface {
	SaveUser(ctx context.Context, data domain.UserCreationData, stateHash string) (domain.User, error)
	UserById(ctx context.Context, id domain.UserId) (domain.User, error)
	UserByUsername(ctx context.Context, username domain.Username) (domain.User, error)
	UserByEmail(ctx context.Context, email domain.Email) (domain.User, error)
	Users(ctx context.Context, search string, p domain.Pagination) ([]domain.User, int, error)
	UpdateUser(ctx context.Context, user domain.User) (domain.User, error)
	DeleteUser(ctx context.Context, id domain.UserId) error
}

// Users is the identity registry: the only owner of user records.
type Users struct {
	storage      UserStorage
	pageSize     int
	newStateHash func() string
}

func NewUsers(storage UserStorage, pageSize int) *Users {
	return &Users{
		storage:      storage,
		pageSize:     pageSize,
		newStateHash: uuid.NewString,
	}
}

// GetOrCreate returns the user registered under exactly this pair, creating it
// when neither value is taken. A username or email bound to a different
// partner is a Conflict. If a concurrent signup wins the insert, the lookup is
// retried once.
func (u *Users) GetOrCreate(ctx context.Context, username domain.Username, email domain.Email) (domain.User, bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateIdentity(username, email); err != nil {
		return domain.User{}, false, err
	}

	user, err := u.findPair(ctx, username, email)
	if err == nil {
		return user, false, nil
	}
	if !errors.IsNotFound(err) {
		return domain.User{}, false, err
	}

	user, err = u.storage.SaveUser(ctx, domain.UserCreationData{Username: username, Email: email, Role: domain.RoleUser}, u.newStateHash())
	if err == nil {
		logger.Log.Info("user created", "user_id", user.Id, "username", user.Username)
		return user, true, nil
	}
	if !errors.IsConflict(err) {
		return domain.User{}, false, err
	}

	// lost the race: the winner may have registered the very same pair
	user, err = u.findPair(ctx, username, email)
	if err == nil {
		return user, false, nil
	}
	if errors.IsNotFound(err) {
		return domain.User{}, false, errors.Conflict("A user with that username or email already exists")
	}
	return domain.User{}, false, err
}

// findPair returns NotFound when neither value is taken and Conflict when one
// of them belongs to someone else.
func (u *Users) findPair(ctx context.Context, username domain.Username, email domain.Email) (domain.User, error) {
	user, err := u.storage.UserByUsername(ctx, username)
	if err == nil {
		if user.Email != email {
			return domain.User{}, errors.Conflict("A user with that username already exists")
		}
		return user, nil
	}
	if !errors.IsNotFound(err) {
		return domain.User{}, err
	}

	if _, err := u.storage.UserByEmail(ctx, email); err == nil {
		return domain.User{}, errors.Conflict("A user with that email already exists")
	} else if !errors.IsNotFound(err) {
		return domain.User{}, err
	}
	return domain.User{}, errors.NotFound("User not found")
}

func (u *Users) FindByUsername(ctx context.Context, username domain.Username) (domain.User, error) {
	return u.storage.UserByUsername(ctx, username)
}

// SetRole is the only way to change a role. Admin only.
func (u *Users) SetRole(ctx context.Context, actor domain.Actor, target domain.Username, role domain.Role) (domain.User, error) {
	if err := access.Require(actor, false, access.AdminManage); err != nil {
		return domain.User{}, err
	}
	if !role.Persisted() {
		return domain.User{}, errors.Validation("role: must be one of user, moderator, admin")
	}
	user, err := u.storage.UserByUsername(ctx, target)
	if err != nil {
		return domain.User{}, err
	}
	if user.Role == role {
		return user, nil
	}
	logger.Log.Info("role changed", "username", user.Username, "from", user.Role, "to", role, "by", actor.Id)
	user.Role = role
	return u.save(ctx, user)
}

func (u *Users) List(ctx context.Context, actor domain.Actor, search string, page int) (domain.Page[domain.User], error) {
	if err := access.Require(actor, false, access.AdminManage); err != nil {
		return domain.Page[domain.User]{}, err
	}
	p := pagination(page, u.pageSize)
	users, count, err := u.storage.Users(ctx, strings.TrimSpace(search), p)
	if err != nil {
		return domain.Page[domain.User]{}, err
	}
	return newPage(users, count, p), nil
}

func (u *Users) Create(ctx context.Context, actor domain.Actor, data domain.UserCreationData) (domain.User, error) {
	if err := access.Require(actor, false, access.AdminManage); err != nil {
		return domain.User{}, err
	}
	data.Email = strings.ToLower(strings.TrimSpace(data.Email))
	if err := validateIdentity(data.Username, data.Email); err != nil {
		return domain.User{}, err
	}
	if data.Role == "" {
		data.Role = domain.RoleUser
	}
	if !data.Role.Persisted() {
		return domain.User{}, errors.Validation("role: must be one of user, moderator, admin")
	}
	data.FirstName = utils.CleanText(data.FirstName)
	data.LastName = utils.CleanText(data.LastName)
	data.Bio = utils.CleanText(data.Bio)

	return u.storage.SaveUser(ctx, data, u.newStateHash())
}

func (u *Users) Get(ctx context.Context, actor domain.Actor, username domain.Username) (domain.User, error) {
	if err := access.Require(actor, false, access.AdminManage); err != nil {
		return domain.User{}, err
	}
	return u.storage.UserByUsername(ctx, username)
}

func (u *Users) Update(ctx context.Context, actor domain.Actor, username domain.Username, upd domain.UserUpdate) (domain.User, error) {
	if err := access.Require(actor, false, access.AdminManage); err != nil {
		return domain.User{}, err
	}
	user, err := u.storage.UserByUsername(ctx, username)
	if err != nil {
		return domain.User{}, err
	}
	return u.applyUpdate(ctx, user, upd)
}

func (u *Users) Delete(ctx context.Context, actor domain.Actor, username domain.Username) error {
	if err := access.Require(actor, false, access.AdminManage); err != nil {
		return err
	}
	user, err := u.storage.UserByUsername(ctx, username)
	if err != nil {
		return err
	}
	logger.Log.Info("user deleted", "username", user.Username, "by", actor.Id)
	return u.storage.DeleteUser(ctx, user.Id)
}

func (u *Users) Me(ctx context.Context, actor domain.Actor) (domain.User, error) {
	if actor.IsAnonymous() {
		return domain.User{}, errors.Unauthorized("Authentication credentials were not provided")
	}
	return u.storage.UserById(ctx, actor.Id)
}

// UpdateMe edits the caller's own profile. Sending the current role back is
// accepted; any other role needs admin rights, so users cannot promote themselves.
func (u *Users) UpdateMe(ctx context.Context, actor domain.Actor, upd domain.UserUpdate) (domain.User, error) {
	user, err := u.Me(ctx, actor)
	if err != nil {
		return domain.User{}, err
	}
	if upd.Role != nil && *upd.Role != user.Role {
		if err := access.Require(user.Actor(), false, access.AdminManage); err != nil {
			return domain.User{}, err
		}
	}
	return u.applyUpdate(ctx, user, upd)
}

func (u *Users) applyUpdate(ctx context.Context, user domain.User, upd domain.UserUpdate) (domain.User, error) {
	if upd.Empty() {
		return user, nil
	}
	if upd.Email != nil {
		lowered := strings.ToLower(strings.TrimSpace(*upd.Email))
		upd.Email = &lowered
	}
	upd.FirstName = utils.CleanTextPtr(upd.FirstName)
	upd.LastName = utils.CleanTextPtr(upd.LastName)
	upd.Bio = utils.CleanTextPtr(upd.Bio)

	updated := upd.Apply(user)
	if err := validateIdentity(updated.Username, updated.Email); err != nil {
		return domain.User{}, err
	}
	if !updated.Role.Persisted() {
		return domain.User{}, errors.Validation("role: must be one of user, moderator, admin")
	}
	if updated == user {
		return user, nil
	}
	return u.save(ctx, updated)
}

// save persists user with a fresh state hash, which invalidates every
// confirmation code issued for the previous state.
func (u *Users) save(ctx context.Context, user domain.User) (domain.User, error) {
	user.StateHash = u.newStateHash()
	return u.storage.UpdateUser(ctx, user)
}

func validateIdentity(username domain.Username, email domain.Email) error {
	if len(username) == 0 || len(username) > 150 || !shared_utils.ValidUsername(username) {
		return errors.Validation("username: letters, digits and @/./+/-/_ only, at most 150 characters; \"me\" is reserved")
	}
	if err := shared_utils.Validator().Var(email, "required,max=254,email"); err != nil {
		return errors.Validation("email: enter a valid email address")
	}
	return nil
}
