package storage

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodcourt/rate-svc/internal/domain"
)

func TestValidateItemInOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("b1", "o1", "r1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.ValidateItemInOrder(context.Background(), "b1", "o1", "r1")

	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertReview(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresRepository(db)
	created := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("INSERT INTO reviews").
		WithArgs("b1", "o1", "r1", 4, "tasty").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(11, created))

	review := &domain.Review{MenuItemID: "b1", OrderID: "o1", RestaurantID: "r1", Rating: 4, Comment: "tasty"}
	require.NoError(t, repo.InsertReview(context.Background(), review))

	assert.Equal(t, int64(11), review.ID)
	assert.Equal(t, created, review.CreatedAt)
}

func TestRedisCache_Marker(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	cache := NewRedisCache(client, time.Hour)
	ctx := context.Background()

	key := cache.ReviewMarkerKey("b1", "o1")
	assert.Equal(t, "review:b1:o1", key)

	exists, err := cache.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, cache.SetMarker(ctx, key))
	exists, err = cache.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, time.Hour, mr.TTL(key))
}

type recordingWriter struct{ msgs []kafka.Message }

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func TestKafkaPublisher_PublishReview(t *testing.T) {
	writer := &recordingWriter{}

	err := NewKafkaPublisher(writer).PublishReview(context.Background(), domain.ReviewEvent{
		Type: domain.EventNewReview, MenuItemID: "b1", Rating: 4,
	})

	require.NoError(t, err)
	require.Len(t, writer.msgs, 1)
	assert.Equal(t, "b1", string(writer.msgs[0].Key))
	var event domain.ReviewEvent
	require.NoError(t, json.Unmarshal(writer.msgs[0].Value, &event))
	assert.Equal(t, 4, event.Rating)
}
