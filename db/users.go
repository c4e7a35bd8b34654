package db

import (
	"context"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AddUser creates a new attendee record. If the name or the code collide with
// an existing record, it returns ErrAlreadyExists annotated with the offending
// field.
func (ms *MongoStorage) AddUser(user *User) (*User, error) {
	if user.Name == "" || user.ChurchName == "" || user.Code == "" || user.BirthDate == "" {
		return nil, ErrInvalidData
	}
	ms.keysLock.Lock()
	defer ms.keysLock.Unlock()
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	result, err := ms.users.InsertOne(ctx, user)
	if err != nil {
		return nil, wrapDuplicateKey(err)
	}
	user.ID = result.InsertedID.(primitive.ObjectID)
	return user, nil
}

// AddUsers inserts a batch of attendee records in a single ordered operation.
// Any duplicate name or code, within the batch or against existing data, makes
// the whole insert fail with ErrAlreadyExists. An empty batch is a no-op.
func (ms *MongoStorage) AddUsers(users []User) ([]User, error) {
	if len(users) == 0 {
		return users, nil
	}
	ms.keysLock.Lock()
	defer ms.keysLock.Unlock()
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	now := time.Now()
	documents := make([]any, len(users))
	for i := range users {
		users[i].CreatedAt = now
		users[i].UpdatedAt = now
		documents[i] = users[i]
	}
	result, err := ms.users.InsertMany(ctx, documents)
	if err != nil {
		return nil, wrapDuplicateKey(err)
	}
	for i, id := range result.InsertedIDs {
		users[i].ID = id.(primitive.ObjectID)
	}
	return users, nil
}

// Users returns one page of attendee records alongside the total number of
// pages for the given limit. Pages are 1-based.
func (ms *MongoStorage) Users(page, limit int64) (int64, []*User, error) {
	ms.keysLock.RLock()
	defer ms.keysLock.RUnlock()
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	findOpts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	return paginatedDocuments[*User](ctx, ms.users, page, limit, bson.M{}, findOpts)
}

// AllUsers returns every attendee record without pagination.
func (ms *MongoStorage) AllUsers() ([]*User, error) {
	ms.keysLock.RLock()
	defer ms.keysLock.RUnlock()
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	cursor, err := ms.users.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	users := []*User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUser replaces every attendee field of the record with the given ID and
// returns the post-update record. It returns ErrNotFound if no record has that
// ID, and ErrAlreadyExists if the new name or code collide with another record.
func (ms *MongoStorage) UpdateUser(id primitive.ObjectID, user *User) (*User, error) {
	ms.keysLock.Lock()
	defer ms.keysLock.Unlock()
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	update := bson.M{"$set": bson.M{
		"name":       user.Name,
		"churchName": user.ChurchName,
		"code":       user.Code,
		"birthDate":  user.BirthDate,
		"updatedAt":  time.Now(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	updated := &User{}
	if err := ms.users.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(updated); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, wrapDuplicateKey(err)
	}
	return updated, nil
}

// DelUser deletes the attendee record with the given ID and returns it. It
// returns ErrNotFound if no record has that ID.
func (ms *MongoStorage) DelUser(id primitive.ObjectID) (*User, error) {
	ms.keysLock.Lock()
	defer ms.keysLock.Unlock()
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	deleted := &User{}
	if err := ms.users.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(deleted); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return deleted, nil
}

// UserByCredentials returns the first attendee record matching the given name,
// church name and birth date. Name and church name are matched with a
// case-insensitive full-string comparison, the birth date with an exact string
// comparison. All three inputs are trimmed at the boundaries. It returns
// ErrNotFound when no record matches.
func (ms *MongoStorage) UserByCredentials(name, churchName, birthDate string) (*User, error) {
	ms.keysLock.RLock()
	defer ms.keysLock.RUnlock()
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	filter := bson.M{
		"name":       exactFoldFilter(name),
		"churchName": exactFoldFilter(churchName),
		"birthDate":  strings.TrimSpace(birthDate),
	}
	user := &User{}
	if err := ms.users.FindOne(ctx, filter).Decode(user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// exactFoldFilter builds a case-insensitive, anchored regex filter for the
// trimmed value. Regex metacharacters are escaped so the match is a full-string
// comparison, never a substring or pattern one.
func exactFoldFilter(value string) bson.M {
	return bson.M{
		"$regex":   "^" + regexp.QuoteMeta(strings.TrimSpace(value)) + "$",
		"$options": "i",
	}
}
