package services

import (
	"forumx/internal/db"
	"forumx/internal/models"

	"gorm.io/gorm"
)

// RewardRequestFulfilled is credited to a fulfiller's balance when the
// requester marks their content request finished.
const RewardRequestFulfilled = 5

// AdjustBalance moves a user's balance counter by amount (negative to
// deduct).
func AdjustBalance(userID uint, amount int) error {
	return db.DB.Model(&models.Currency{}).
		Where("user_id = ?", userID).
		UpdateColumn("balance", gorm.Expr("balance + ?", amount)).
		Error
}

// AdjustBalanceAsync applies the adjustment in a goroutine; rewards are
// best-effort like notifications.
func AdjustBalanceAsync(userID uint, amount int) {
	go func() {
		_ = AdjustBalance(userID, amount)
	}()
}
