package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/eduroese/To-Do-App/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	tasksCollection      = "tasks"
	categoriesCollection = "categories"
	usersCollection      = "users"
)

type taskDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	User      string             `bson:"user"`
	Completed int                `bson:"completed"`
	Category  string             `bson:"category"`
}

func (d taskDocument) model() models.Task {
	return models.Task{
		ID:        d.ID.Hex(),
		Title:     d.Title,
		User:      d.User,
		Completed: d.Completed,
		Category:  d.Category,
	}
}

type categoryDocument struct {
	ID    primitive.ObjectID `bson:"_id,omitempty"`
	Name  string             `bson:"name"`
	Color string             `bson:"color"`
	User  string             `bson:"user"`
}

func (d categoryDocument) model() models.Category {
	return models.Category{
		ID:    d.ID.Hex(),
		Name:  d.Name,
		Color: d.Color,
		User:  d.User,
	}
}

type userDocument struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Username string             `bson:"username"`
	Password string             `bson:"password"`
}

type MongoStore struct {
	db         *mongo.Database
	tasks      *mongo.Collection
	categories *mongo.Collection
	users      *mongo.Collection
}

// DialMongo connects to uri and verifies the deployment answers a ping
// before returning a store bound to database.
func DialMongo(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return NewMongoStore(client.Database(database)), nil
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		db:         db,
		tasks:      db.Collection(tasksCollection),
		categories: db.Collection(categoriesCollection),
		users:      db.Collection(usersCollection),
	}
}

func (s *MongoStore) Migrate(ctx context.Context) error {
	owner := mongo.IndexModel{Keys: bson.D{{Key: "user", Value: 1}}}

	if _, err := s.tasks.Indexes().CreateOne(ctx, owner); err != nil {
		return fmt.Errorf("create tasks index: %w", err)
	}

	if _, err := s.categories.Indexes().CreateOne(ctx, owner); err != nil {
		return fmt.Errorf("create categories index: %w", err)
	}

	username := mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	if _, err := s.users.Indexes().CreateOne(ctx, username); err != nil {
		return fmt.Errorf("create users index: %w", err)
	}

	return nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, readpref.Primary())
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.db.Client().Disconnect(ctx)
}

func (s *MongoStore) CreateTask(ctx context.Context, task *models.Task) error {
	doc := taskDocument{
		ID:        primitive.NewObjectID(),
		Title:     task.Title,
		User:      task.User,
		Completed: task.Completed,
		Category:  task.Category,
	}

	if _, err := s.tasks.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert task: %w", err)
	}

	task.ID = doc.ID.Hex()
	return nil
}

func (s *MongoStore) UpdateTask(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error) {
	set := bson.M{}
	if patch.Completed != nil {
		set["completed"] = *patch.Completed
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}

	var doc taskDocument
	if err := s.findOneAndSet(ctx, s.tasks, id, set, &doc); err != nil {
		return nil, err
	}

	task := doc.model()
	return &task, nil
}

func (s *MongoStore) DeleteTask(ctx context.Context, id string) (*models.Task, error) {
	var doc taskDocument
	if err := s.findOneAndDelete(ctx, s.tasks, id, &doc); err != nil {
		return nil, err
	}

	task := doc.model()
	return &task, nil
}

func (s *MongoStore) TasksByUser(ctx context.Context, user string) ([]models.Task, error) {
	cursor, err := s.tasks.Find(ctx, bson.M{"user": user})
	if err != nil {
		return nil, fmt.Errorf("find tasks: %w", err)
	}

	var docs []taskDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}

	tasks := make([]models.Task, 0, len(docs))
	for _, doc := range docs {
		tasks = append(tasks, doc.model())
	}

	return tasks, nil
}

func (s *MongoStore) CreateCategory(ctx context.Context, category *models.Category) error {
	doc := categoryDocument{
		ID:    primitive.NewObjectID(),
		Name:  category.Name,
		Color: category.Color,
		User:  category.User,
	}

	if _, err := s.categories.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert category: %w", err)
	}

	category.ID = doc.ID.Hex()
	return nil
}

func (s *MongoStore) UpdateCategory(ctx context.Context, id string, patch models.CategoryPatch) (*models.Category, error) {
	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Color != nil {
		set["color"] = *patch.Color
	}

	var doc categoryDocument
	if err := s.findOneAndSet(ctx, s.categories, id, set, &doc); err != nil {
		return nil, err
	}

	category := doc.model()
	return &category, nil
}

func (s *MongoStore) DeleteCategory(ctx context.Context, id string) (*models.Category, error) {
	var doc categoryDocument
	if err := s.findOneAndDelete(ctx, s.categories, id, &doc); err != nil {
		return nil, err
	}

	category := doc.model()
	return &category, nil
}

func (s *MongoStore) CategoriesByUser(ctx context.Context, user string) ([]models.Category, error) {
	cursor, err := s.categories.Find(ctx, bson.M{"user": user})
	if err != nil {
		return nil, fmt.Errorf("find categories: %w", err)
	}

	var docs []categoryDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}

	categories := make([]models.Category, 0, len(docs))
	for _, doc := range docs {
		categories = append(categories, doc.model())
	}

	return categories, nil
}

func (s *MongoStore) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var doc userDocument

	err := s.users.FindOne(ctx, bson.M{"username": username}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	return &models.User{
		ID:       doc.ID.Hex(),
		Username: doc.Username,
		Password: doc.Password,
	}, nil
}

func (s *MongoStore) CreateUser(ctx context.Context, user *models.User) error {
	doc := userDocument{
		ID:       primitive.NewObjectID(),
		Username: user.Username,
		Password: user.Password,
	}

	if _, err := s.users.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}

	user.ID = doc.ID.Hex()
	return nil
}

func (s *MongoStore) findOneAndSet(ctx context.Context, coll *mongo.Collection, id string, set bson.M, out interface{}) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// A malformed id cannot match any document.
		return ErrNotFound
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	err = coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return fmt.Errorf("update %s: %w", coll.Name(), err)
	}

	return nil
}

func (s *MongoStore) findOneAndDelete(ctx context.Context, coll *mongo.Collection, id string, out interface{}) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	err = coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return fmt.Errorf("delete from %s: %w", coll.Name(), err)
	}

	return nil
}
