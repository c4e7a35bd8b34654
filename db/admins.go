package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// AddAdmin creates a new admin account. The password must already be hashed by
// the caller. If an admin with the same name exists, it returns
// ErrAlreadyExists.
func (ms *MongoStorage) AddAdmin(admin *Admin) (primitive.ObjectID, error) {
	if admin.AdminName == "" || admin.Password == "" {
		return primitive.NilObjectID, ErrInvalidData
	}
	ms.keysLock.Lock()
	defer ms.keysLock.Unlock()
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	result, err := ms.admins.InsertOne(ctx, admin)
	if err != nil {
		return primitive.NilObjectID, wrapDuplicateKey(err)
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

// AdminByName returns the admin with the given name. If the admin doesn't
// exist, it returns a specific error. If other errors occur, it returns the
// error.
func (ms *MongoStorage) AdminByName(adminName string) (*Admin, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	result := ms.admins.FindOne(ctx, bson.M{"adminName": adminName})
	admin := &Admin{}
	if err := result.Decode(admin); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return admin, nil
}
