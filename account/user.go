package account

import "github.com/fundwit/go-commons/types"

type User struct {
	ID       types.ID `json:"id"`
	Name     string   `json:"name"`
	Nickname string   `json:"nickname"`
	Email    string   `json:"email"`
	Secret   string   `json:"secret"`
}

type UserInfo struct {
	ID       types.ID `json:"id"`
	Name     string   `json:"name"`
	Nickname string   `json:"nickname"`
	Email    string   `json:"email"`
}

type UserCreation struct {
	Name     string `json:"name" binding:"required,lte=32"`
	Email    string `json:"email" binding:"omitempty,email,lte=128"`
	Secret   string `json:"secret" binding:"required,gte=6,lte=32"`
	Nickname string `json:"nickname" binding:"omitempty,gte=1,lte=32"`
}

type UserUpdating struct {
	Nickname string `json:"nickname" binding:"required,lte=32"`
	Email    string `json:"email" binding:"omitempty,email,lte=128"`
}

type UserQuery struct {
	Keyword string `form:"keyword"`
}

func (u User) Info() UserInfo {
	return UserInfo{ID: u.ID, Name: u.Name, Nickname: u.Nickname, Email: u.Email}
}

func (u UserInfo) DisplayName() string {
	if u.Nickname != "" {
		return u.Nickname
	}
	return u.Name
}
