package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cytrico/frontdesk/internal/domain/models"
)

const (
	shiftsCollection    = "turnos"
	pettyCashCollection = "cajaMenor"
	usersCollection     = "users"
	alertsCollection    = "alertas"

	// pettyCashKey is the fixed id of the singleton balance document.
	pettyCashKey = "saldo"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("document not found")

// Repository is the MongoDB-backed persistence service for the front desk.
type Repository struct {
	client *mongo.Client
	dbName string
}

// NewRepository connects to MongoDB and verifies the connection.
func NewRepository(ctx context.Context, uri, dbName string) (*Repository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Repository{client: client, dbName: dbName}, nil
}

// Close disconnects the underlying client.
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func (r *Repository) collection(name string) *mongo.Collection {
	return r.client.Database(r.dbName).Collection(name)
}

// AppendShift inserts an immutable closed-shift record and returns its id.
func (r *Repository) AppendShift(ctx context.Context, record models.ShiftRecord) (string, error) {
	record.ID = primitive.NewObjectID().Hex()
	if _, err := r.collection(shiftsCollection).InsertOne(ctx, record); err != nil {
		return "", fmt.Errorf("failed to insert shift record: %w", err)
	}
	return record.ID, nil
}

// LastShift returns the most recently closed shift, or nil when none has
// ever been persisted.
func (r *Repository) LastShift(ctx context.Context) (*models.ShiftRecord, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	var record models.ShiftRecord
	err := r.collection(shiftsCollection).FindOne(ctx, bson.D{}, opts).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query last shift: %w", err)
	}
	return &record, nil
}

// GetShift fetches a closed shift by id.
func (r *Repository) GetShift(ctx context.Context, id string) (*models.ShiftRecord, error) {
	var record models.ShiftRecord
	err := r.collection(shiftsCollection).FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("shift %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shift %s: %w", id, err)
	}
	return &record, nil
}

// ListShifts returns up to limit closed shifts, newest first.
func (r *Repository) ListShifts(ctx context.Context, limit int64) ([]models.ShiftRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}

	cursor, err := r.collection(shiftsCollection).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.ShiftRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode shifts: %w", err)
	}
	return records, nil
}

// GetPettyCash reads the singleton balance document, or nil when it has
// never been set.
func (r *Repository) GetPettyCash(ctx context.Context) (*models.PettyCash, error) {
	var cash models.PettyCash
	err := r.collection(pettyCashCollection).FindOne(ctx, bson.D{{Key: "_id", Value: pettyCashKey}}).Decode(&cash)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read petty cash balance: %w", err)
	}
	return &cash, nil
}

// PutPettyCash overwrites the singleton balance document. There is exactly
// one balance system-wide; no merge semantics.
func (r *Repository) PutPettyCash(ctx context.Context, amount float64) error {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "monto", Value: amount},
		{Key: "actualizadoEn", Value: time.Now().UTC()},
	}}}
	opts := options.Update().SetUpsert(true)

	if _, err := r.collection(pettyCashCollection).UpdateByID(ctx, pettyCashKey, update, opts); err != nil {
		return fmt.Errorf("failed to upsert petty cash balance: %w", err)
	}
	return nil
}

// UsersByRole returns provisioned accounts with the given role, newest
// first.
func (r *Repository) UsersByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection(usersCollection).Find(ctx, bson.D{{Key: "role", Value: role}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query users by role: %w", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

// UserByEmail fetches a single account by its (lowercased) email.
func (r *Repository) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection(usersCollection).FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("user %s: %w", email, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user by email: %w", err)
	}
	return &user, nil
}

// CreateUser inserts a new staff account and returns its id.
func (r *Repository) CreateUser(ctx context.Context, user models.User) (string, error) {
	user.ID = primitive.NewObjectID().Hex()
	if _, err := r.collection(usersCollection).InsertOne(ctx, user); err != nil {
		return "", fmt.Errorf("failed to insert user: %w", err)
	}
	return user.ID, nil
}

// ListUsers returns every staff account, newest first.
func (r *Repository) ListUsers(ctx context.Context) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection(usersCollection).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

// UpdateUser replaces a staff account document.
func (r *Repository) UpdateUser(ctx context.Context, user models.User) error {
	res, err := r.collection(usersCollection).ReplaceOne(ctx, bson.D{{Key: "_id", Value: user.ID}}, user)
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", user.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("user %s: %w", user.ID, ErrNotFound)
	}
	return nil
}

// DeleteUser removes a staff account.
func (r *Repository) DeleteUser(ctx context.Context, id string) error {
	res, err := r.collection(usersCollection).DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("failed to delete user %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return nil
}

// CreateAlert inserts a new alert and returns its id.
func (r *Repository) CreateAlert(ctx context.Context, alert models.Alert) (string, error) {
	alert.ID = primitive.NewObjectID().Hex()
	if _, err := r.collection(alertsCollection).InsertOne(ctx, alert); err != nil {
		return "", fmt.Errorf("failed to insert alert: %w", err)
	}
	return alert.ID, nil
}

// ListAlerts returns alerts ordered by due time ascending.
func (r *Repository) ListAlerts(ctx context.Context) ([]models.Alert, error) {
	opts := options.Find().SetSort(bson.D{{Key: "dueAt", Value: 1}})
	cursor, err := r.collection(alertsCollection).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	defer cursor.Close(ctx)

	var alerts []models.Alert
	if err := cursor.All(ctx, &alerts); err != nil {
		return nil, fmt.Errorf("failed to decode alerts: %w", err)
	}
	return alerts, nil
}

// DueAlerts returns active alerts whose due time has passed.
func (r *Repository) DueAlerts(ctx context.Context, now time.Time) ([]models.Alert, error) {
	filter := bson.D{
		{Key: "active", Value: true},
		{Key: "dueAt", Value: bson.D{{Key: "$lte", Value: now}}},
	}
	cursor, err := r.collection(alertsCollection).Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query due alerts: %w", err)
	}
	defer cursor.Close(ctx)

	var alerts []models.Alert
	if err := cursor.All(ctx, &alerts); err != nil {
		return nil, fmt.Errorf("failed to decode due alerts: %w", err)
	}
	return alerts, nil
}

// UpdateAlert replaces an alert document.
func (r *Repository) UpdateAlert(ctx context.Context, alert models.Alert) error {
	res, err := r.collection(alertsCollection).ReplaceOne(ctx, bson.D{{Key: "_id", Value: alert.ID}}, alert)
	if err != nil {
		return fmt.Errorf("failed to update alert %s: %w", alert.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("alert %s: %w", alert.ID, ErrNotFound)
	}
	return nil
}

// DeleteAlert removes an alert.
func (r *Repository) DeleteAlert(ctx context.Context, id string) error {
	res, err := r.collection(alertsCollection).DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("failed to delete alert %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("alert %s: %w", id, ErrNotFound)
	}
	return nil
}
