package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shortnote/note-system/internal/core/domain"
)

const collectionNotes = "notes"

type NoteRepository struct {
	col *mongo.Collection
}

func NewNoteRepository(db *mongo.Database) *NoteRepository {
	return &NoteRepository{col: db.Collection(collectionNotes)}
}

type mongoNote struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	To        domain.SessionUser `bson:"to"`
	Sender    domain.SessionUser `bson:"sender"`
	Title     string             `bson:"title"`
	Content   string             `bson:"content"`
	CreatedAt int64              `bson:"created_at"`
}

func (mn *mongoNote) toDomain() domain.Note {
	return domain.Note{
		ID:        mn.ID.Hex(),
		To:        mn.To,
		Sender:    mn.Sender,
		Title:     mn.Title,
		Content:   mn.Content,
		CreatedAt: unixToTime(mn.CreatedAt),
	}
}

// Create inserts a new note document and returns its generated id.
func (r *NoteRepository) Create(ctx context.Context, note *domain.Note) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoNote{
		To:        note.To,
		Sender:    note.Sender,
		Title:     note.Title,
		Content:   note.Content,
		CreatedAt: note.CreatedAt.Unix(),
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert note: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert note: unexpected id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

// FindByID retrieves a note by its hex object id. Malformed ids are reported
// as not found, matching the HTTP surface where the id comes from a URL.
func (r *NoteRepository) FindByID(ctx context.Context, id string) (*domain.Note, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNoteNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mn mongoNote
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mn); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, fmt.Errorf("find note: %w", err)
	}

	note := mn.toDomain()
	return &note, nil
}

// ListByRecipient returns all notes addressed to userID, in insertion order.
func (r *NoteRepository) ListByRecipient(ctx context.Context, userID string) ([]domain.Note, error) {
	return r.list(ctx, bson.M{"to.id": userID})
}

// ListBySender returns all notes sent by userID, in insertion order.
func (r *NoteRepository) ListBySender(ctx context.Context, userID string) ([]domain.Note, error) {
	return r.list(ctx, bson.M{"sender.id": userID})
}

func (r *NoteRepository) list(ctx context.Context, filter bson.M) ([]domain.Note, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer cur.Close(ctx)

	var notes []domain.Note
	for cur.Next(ctx) {
		var mn mongoNote
		if err := cur.Decode(&mn); err != nil {
			return nil, fmt.Errorf("decode note: %w", err)
		}
		notes = append(notes, mn.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

// EnsureIndexes creates the lookup indexes on the notes collection.
func (r *NoteRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "to.id", Value: 1}}},
		{Keys: bson.D{{Key: "sender.id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
