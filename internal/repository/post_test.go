package repository

import (
	"context"
	"regexp"
	"sync"
	"testing"

	"devconnector/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository_LikeUsesOnConflict(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	postID, userID := uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "likes"`) + `.*` + regexp.QuoteMeta(`ON CONFLICT ("post_id","user_id") DO NOTHING`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	inserted, err := repo.Like(context.Background(), postID, userID)
	require.NoError(t, err)
	assert.False(t, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_UnlikeIsConditional(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	postID, userID := uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "likes" WHERE post_id = $1 AND user_id = $2`)).
		WithArgs(postID, userID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	removed, err := repo.Unlike(context.Background(), postID, userID)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_CreateAndGet(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	user := createTestUser(t, db, "poster")

	post := createTestPost(t, db, user, "hello")
	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Text)
	assert.Equal(t, user.ID, got.UserID)
	assert.Equal(t, user.Name, got.Name)
	assert.Empty(t, got.Likes)
	assert.Empty(t, got.Comments)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.True(t, models.HasCode(err, models.CodeNotFound))
}

func TestPostRepository_ListNewestFirst(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewPostRepository(db)
	user := createTestUser(t, db, "poster")

	first := createTestPost(t, db, user, "first")
	second := createTestPost(t, db, user, "second")

	posts, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, second.ID, posts[0].ID)
	assert.Equal(t, first.ID, posts[1].ID)
}

func TestPostRepository_LikeTwiceAffectsNoRows(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	user := createTestUser(t, db, "liker")
	post := createTestPost(t, db, user, "likeable")

	inserted, err := repo.Like(ctx, post.ID, user.ID)
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = repo.Like(ctx, post.ID, user.ID)
	require.NoError(t, err)
	assert.False(t, inserted)

	likes, err := repo.Likes(ctx, post.ID)
	require.NoError(t, err)
	assert.Len(t, likes, 1)

	removed, err := repo.Unlike(ctx, post.ID, user.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = repo.Unlike(ctx, post.ID, user.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestPostRepository_ConcurrentLikesKeepOnePerUser(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewPostRepository(db)
	user := createTestUser(t, db, "clicker")
	post := createTestPost(t, db, user, "popular")

	const attempts = 10
	var wg sync.WaitGroup
	var mu sync.Mutex
	inserted := 0
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.Like(context.Background(), post.ID, user.ID)
			assert.NoError(t, err)
			if ok {
				mu.Lock()
				inserted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, inserted)
	likes, err := repo.Likes(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Len(t, likes, 1)
}

func TestPostRepository_DeleteCommentById(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner")
	guest := createTestUser(t, db, "guest")
	post := createTestPost(t, db, owner, "discuss")

	ownerComment := &models.Comment{PostID: post.ID, UserID: owner.ID, Text: "owner's note"}
	guestComment := &models.Comment{PostID: post.ID, UserID: guest.ID, Text: "guest reply"}
	require.NoError(t, repo.AddComment(ctx, ownerComment))
	require.NoError(t, repo.AddComment(ctx, guestComment))

	// The owner cannot delete the guest's comment through the author filter.
	removed, err := repo.DeleteComment(ctx, post.ID, guestComment.ID, owner.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	removed, err = repo.DeleteComment(ctx, post.ID, guestComment.ID, guest.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	comments, err := repo.Comments(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, ownerComment.ID, comments[0].ID)

	_, err = repo.GetComment(ctx, post.ID, guestComment.ID)
	assert.True(t, models.HasCode(err, models.CodeNotFound))
}

func TestPostRepository_DeleteRemovesChildren(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	user := createTestUser(t, db, "author")
	post := createTestPost(t, db, user, "bye")

	_, err := repo.Like(ctx, post.ID, user.ID)
	require.NoError(t, err)
	require.NoError(t, repo.AddComment(ctx, &models.Comment{PostID: post.ID, UserID: user.ID, Text: "self"}))

	require.NoError(t, repo.Delete(ctx, post.ID))

	_, err = repo.GetByID(ctx, post.ID)
	assert.True(t, models.HasCode(err, models.CodeNotFound))
	likes, err := repo.Likes(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, likes)
	comments, err := repo.Comments(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}
