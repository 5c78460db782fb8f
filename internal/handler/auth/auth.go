// Package auth 處理註冊與登入
package auth

import (
	"nadespensa/internal/store"
)

var (
	userExistsByEmail = store.UserExistsByEmail
	insertUser        = store.InsertUser
	findUserByEmail   = store.FindUserByEmail
)

const serverErrorMsg = "server error, try again later"
