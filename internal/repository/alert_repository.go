package repository

import (
	"context"
	"time"

	"github.com/comprasmart/pricewatch/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type AlertRepository interface {
	Save(alert *models.PriceAlert) error
	GetByID(id string) (*models.PriceAlert, error)
	GetByUserID(userID string) ([]*models.PriceAlert, error)
	ActiveByProduct(productID string) ([]*models.PriceAlert, error)
	AppendNotification(id string, notification models.AlertNotification) error
	UpdateStatus(id string, status models.AlertStatus, triggeredAt *time.Time) error
}

// MongoAlertRepository keeps alert documents in MongoDB. Alert storage is
// working state, not a source of truth for prices; losing it loses alert
// registrations only.
type MongoAlertRepository struct {
	collection *mongo.Collection
}

func NewMongoAlertRepository(client *mongo.Client, dbName, collectionName string) AlertRepository {
	collection := client.Database(dbName).Collection(collectionName)
	return &MongoAlertRepository{collection: collection}
}

func (r *MongoAlertRepository) Save(alert *models.PriceAlert) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := r.collection.InsertOne(ctx, alert)
	return err
}

func (r *MongoAlertRepository) GetByID(id string) (*models.PriceAlert, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var alert models.PriceAlert
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&alert)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrAlertNotFound
	}
	if err != nil {
		return nil, err
	}
	return &alert, nil
}

func (r *MongoAlertRepository) GetByUserID(userID string) ([]*models.PriceAlert, error) {
	return r.find(bson.M{"user_id": userID})
}

func (r *MongoAlertRepository) ActiveByProduct(productID string) ([]*models.PriceAlert, error) {
	return r.find(bson.M{"product_id": productID, "status": models.AlertStatusActive})
}

func (r *MongoAlertRepository) find(filter bson.M) ([]*models.PriceAlert, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var alerts []*models.PriceAlert
	if err := cursor.All(ctx, &alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}

func (r *MongoAlertRepository) AppendNotification(id string, notification models.AlertNotification) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$push": bson.M{"notifications": notification}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return models.ErrAlertNotFound
	}
	return nil
}

func (r *MongoAlertRepository) UpdateStatus(id string, status models.AlertStatus, triggeredAt *time.Time) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	update := bson.M{"status": status}
	if triggeredAt != nil {
		update["triggered_at"] = triggeredAt
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return models.ErrAlertNotFound
	}
	return nil
}
