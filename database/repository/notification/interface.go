// File: database/repository/notification/interface.go
package notificationRepo

import (
	"context"

	"meetblock/database"
	"meetblock/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// NotificationRepository stores in-app notification records.
type NotificationRepository interface {
	Insert(ctx context.Context, n *models.Notification) error
	FindByUser(ctx context.Context, userID string) ([]models.Notification, error)
	MarkRead(ctx context.Context, id, userID string) error
}

type mongoNotificationRepo struct {
	coll *mongo.Collection
}

// NewMongoNotificationRepo constructs a new MongoDB NotificationRepository.
func NewMongoNotificationRepo() NotificationRepository {
	db := database.MongoClient.Database("meetblock")
	return &mongoNotificationRepo{
		coll: db.Collection("notifications"),
	}
}
