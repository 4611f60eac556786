package services

import (
	"log"

	"nexstore/database"
	"nexstore/models"

	"github.com/google/uuid"
)

// LogAdminAction records who did what. The acting admin is always passed in
// explicitly by the controller.
func LogAdminAction(adminID, actionType, targetID, details string) {
	action := models.AdminAction{
		ID:         uuid.New().String(),
		AdminID:    adminID,
		ActionType: actionType,
		TargetID:   targetID,
		Details:    details,
	}
	if err := database.DB.Create(&action).Error; err != nil {
		log.Printf("❌ audit log %s/%s: %v", actionType, targetID, err)
	}
}
