package review

import (
	"context"
	"testing"
	"time"

	"bookStore/package/client/database/databasetest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLStorage_Summary(t *testing.T) {
	db, mock := databasetest.New(t)
	summary := databasetest.Pattern("SELECT AVG(rating)::float8, COUNT(rating) FROM reviews WHERE book_id = $1")
	mock.ExpectQuery(summary).
		WithArgs(duneID).
		WillReturnRows(sqlmock.NewRows([]string{"avg", "count"}).AddRow(4.0, int64(2)))
	mock.ExpectQuery(summary).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"avg", "count"}).AddRow(nil, int64(0)))

	storage := NewStorage(db)
	got, err := storage.Summary(context.Background(), duneID)
	require.NoError(t, err)
	require.NotNil(t, got.Average)
	assert.InDelta(t, 4.0, *got.Average, 0.0001)
	assert.Equal(t, 2, got.Count)

	got, err = storage.Summary(context.Background(), 2)
	require.NoError(t, err)
	assert.Nil(t, got.Average)
	assert.Zero(t, got.Count)
}

func TestSQLStorage_InsertAndList(t *testing.T) {
	db, mock := databasetest.New(t)
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(databasetest.Pattern("INSERT INTO reviews (user_id, book_id, rating, review) VALUES ($1, $2, $3, $4)", "RETURNING review_id, created_at")).
		WithArgs(authorID, duneID, int64(5), "A classic.").
		WillReturnRows(sqlmock.NewRows([]string{"review_id", "created_at"}).AddRow(int64(11), created))
	mock.ExpectQuery(databasetest.Pattern("JOIN users u ON u.user_id = r.user_id", "WHERE r.book_id = $1", "ORDER BY r.created_at DESC")).
		WithArgs(duneID).
		WillReturnRows(sqlmock.NewRows([]string{"review_id", "user_id", "first_name", "last_name", "book_id", "rating", "review", "created_at"}).
			AddRow(int64(11), authorID, "Ada", "Lovelace", duneID, int64(5), "A classic.", created))

	storage := NewStorage(db)
	r := Review{UserID: authorID, BookID: duneID, Rating: 5, Text: "A classic."}
	require.NoError(t, storage.Insert(context.Background(), &r))
	assert.Equal(t, int64(11), r.ID)
	assert.Equal(t, created, r.CreatedAt)

	reviews, err := storage.List(context.Background(), duneID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "Ada", reviews[0].FirstName)
	assert.Equal(t, 5, reviews[0].Rating)
}
