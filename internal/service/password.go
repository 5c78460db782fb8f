// File: internal/service/password.go
package service

import (
	"nadespensa/internal/worker"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost 為 bcrypt 預設成本 (2^12 rounds)
const DefaultCost = 12

var (
	bcryptGenerateFromPassword   = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
)

// PasswordHasher 以固定成本產生/比對 bcrypt 雜湊。
// 設定 pool 時，運算在 worker 上執行，限制同時進行的 bcrypt 數量。
type PasswordHasher struct {
	cost int
	pool worker.Pool
}

func NewPasswordHasher(cost int, pool worker.Pool) *PasswordHasher {
	if cost == 0 {
		cost = DefaultCost
	}
	return &PasswordHasher{cost: cost, pool: pool}
}

// Hash 接收明文密碼，回傳含 salt 與 cost 的 bcrypt 字串
func (h *PasswordHasher) Hash(password string) (string, error) {
	var (
		hashBytes []byte
		err       error
	)
	worker.Run(h.pool, func() {
		hashBytes, err = bcryptGenerateFromPassword([]byte(password), h.cost)
	})
	if err != nil {
		return "", err
	}
	return string(hashBytes), nil
}

// Verify 比對明文與雜湊；雜湊格式錯誤時回傳 false
func (h *PasswordHasher) Verify(password, digest string) bool {
	var err error
	worker.Run(h.pool, func() {
		err = bcryptCompareHashAndPassword([]byte(digest), []byte(password))
	})
	return err == nil
}
