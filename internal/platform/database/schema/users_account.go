// Copyright (c) 2026 marsAI. All rights reserved.

package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table       string
	ID          string
	Username    string
	Email       string
	Password    string
	DisplayName string
	Role        string
	FestivalID  string
	IsActive    string
	LastLoginAt string
	CreatedAt   string
	UpdatedAt   string
	DeletedAt   string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:       "users.account",
	ID:          "id",
	Username:    "username",
	Email:       "email",
	Password:    "passwordhash",
	DisplayName: "displayname",
	Role:        "role",
	FestivalID:  "festivalid",
	IsActive:    "isactive",
	LastLoginAt: "lastloginat",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
	DeletedAt:   "deletedat",
}

// Columns returns all standard column names
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.Username, t.Email, t.Password, t.DisplayName, t.Role,
		t.FestivalID, t.IsActive, t.LastLoginAt, t.CreatedAt, t.UpdatedAt, t.DeletedAt,
	}
}
