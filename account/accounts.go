package account

import (
	"context"
	"strings"
	"teamboard/bizerror"
	"teamboard/domain"
	"teamboard/persistence"
	"teamboard/session"

	"github.com/fundwit/go-commons/types"
	"golang.org/x/crypto/bcrypt"
)

var (
	CreateUserFunc        = CreateUser
	QueryUsersFunc        = QueryUsers
	UpdateUserFunc        = UpdateUser
	QueryAccountNamesFunc = QueryAccountNames
	VerifyCredentialFunc  = VerifyCredential
)

// bcryptCost is lowered by tests.
var bcryptCost = bcrypt.DefaultCost

func HashSecret(raw string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(raw), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func loadUsers(ctx context.Context) ([]User, error) {
	return persistence.LoadCollection[User](ctx, persistence.CollectionUsers)
}

// CreateUser registers a new account. User names are unique, case-insensitive.
func CreateUser(c *UserCreation, s *session.Session) (*UserInfo, error) {
	var created User
	err := persistence.Transaction(s.Ctx(), func(ctx context.Context) error {
		users, err := loadUsers(ctx)
		if err != nil {
			return err
		}
		name := strings.TrimSpace(c.Name)
		for _, u := range users {
			if strings.EqualFold(u.Name, name) {
				return bizerror.ErrUserNameExisted
			}
		}
		secret, err := HashSecret(c.Secret)
		if err != nil {
			return err
		}
		created = User{
			ID:       persistence.NextID(users, func(u User) types.ID { return u.ID }),
			Name:     name,
			Nickname: c.Nickname,
			Email:    strings.TrimSpace(c.Email),
			Secret:   secret,
		}
		return persistence.SaveCollection(ctx, persistence.CollectionUsers, append(users, created))
	})
	if err != nil {
		return nil, err
	}
	info := created.Info()
	return &info, nil
}

// QueryUsers lists accounts matching keyword on name, nickname or email.
func QueryUsers(q *UserQuery, s *session.Session) ([]UserInfo, error) {
	users, err := loadUsers(s.Ctx())
	if err != nil {
		return nil, err
	}
	keyword := strings.ToLower(strings.TrimSpace(q.Keyword))
	result := []UserInfo{}
	for _, u := range users {
		if keyword != "" &&
			!strings.Contains(strings.ToLower(u.Name), keyword) &&
			!strings.Contains(strings.ToLower(u.Nickname), keyword) &&
			!strings.Contains(strings.ToLower(u.Email), keyword) {
			continue
		}
		result = append(result, u.Info())
	}
	return result, nil
}

// UpdateUser is allowed for the account itself only.
func UpdateUser(userID types.ID, u *UserUpdating, s *session.Session) error {
	if userID != s.UserID() {
		return bizerror.ErrForbidden
	}
	return persistence.Transaction(s.Ctx(), func(ctx context.Context) error {
		users, err := loadUsers(ctx)
		if err != nil {
			return err
		}
		for i := range users {
			if users[i].ID == userID {
				users[i].Nickname = u.Nickname
				users[i].Email = strings.TrimSpace(u.Email)
				return persistence.SaveCollection(ctx, persistence.CollectionUsers, users)
			}
		}
		return domain.ErrNotFound
	})
}

func QueryAccountNames(ctx context.Context, ids []types.ID) (map[types.ID]string, error) {
	result := map[types.ID]string{}
	if len(ids) == 0 {
		return result, nil
	}
	users, err := loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	wanted := map[types.ID]bool{}
	for _, id := range ids {
		wanted[id] = true
	}
	for _, u := range users {
		if wanted[u.ID] {
			result[u.ID] = u.Info().DisplayName()
		}
	}
	return result, nil
}

// QueryUserInfos returns every account, used for coordinator candidates.
func QueryUserInfos(ctx context.Context) ([]UserInfo, error) {
	users, err := loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]UserInfo, 0, len(users))
	for _, u := range users {
		result = append(result, u.Info())
	}
	return result, nil
}

// VerifyCredential returns the account when the password matches, ErrUnauthenticated otherwise.
func VerifyCredential(ctx context.Context, name, password string) (*UserInfo, error) {
	users, err := loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if !strings.EqualFold(u.Name, strings.TrimSpace(name)) {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.Secret), []byte(password)) != nil {
			return nil, bizerror.ErrUnauthenticated
		}
		info := u.Info()
		return &info, nil
	}
	return nil, bizerror.ErrUnauthenticated
}
