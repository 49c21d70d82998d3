package handler

import (
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "created_at", "updated_at", "deleted_at", "username", "email", "password_hash", "is_active"})
}

func authRouter() *gin.Engine {
	router := gin.New()
	router.POST("/signup", Signup)
	router.POST("/login", Login)
	router.POST("/token/refresh", RefreshToken)
	return router
}

func TestSignupStoresLowercasedEmail(t *testing.T) {
	mock := setupTestDB(t)

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WithArgs("alice", "alice@example.com", 1).
		WillReturnRows(userRows())
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), nil, "alice", "alice@example.com", sqlmock.AnyArg(), true).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	w := performJSON(t, authRouter(), http.MethodPost, "/signup", gin.H{
		"username": "alice",
		"email":    "Alice@Example.COM",
		"password": "password123",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	decodeBody(t, w, &resp)
	assert.Equal(t, "alice@example.com", resp["email"])
	assert.NotContains(t, resp, "password")
	assert.NotContains(t, resp, "password_hash")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignupDuplicateEmail(t *testing.T) {
	mock := setupTestDB(t)

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(userRows().AddRow(1, time.Now(), time.Now(), nil, "alice", "alice@example.com", "hash", true))

	w := performJSON(t, authRouter(), http.MethodPost, "/signup", gin.H{
		"username": "alice2",
		"email":    "ALICE@example.com",
		"password": "password123",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignupValidation(t *testing.T) {
	setupTestDB(t)

	cases := []gin.H{
		{"username": "alice", "email": "not-an-email", "password": "password123"},
		{"username": "alice", "email": "alice@example.com", "password": "short"},
		{"email": "alice@example.com", "password": "password123"},
	}
	for _, body := range cases {
		w := performJSON(t, authRouter(), http.MethodPost, "/signup", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
}

func TestLoginReturnsTokenPair(t *testing.T) {
	mock := setupTestDB(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WithArgs("bob@example.com", 1).
		WillReturnRows(userRows().AddRow(7, time.Now(), time.Now(), nil, "bob", "bob@example.com", string(hash), true))

	w := performJSON(t, authRouter(), http.MethodPost, "/login", gin.H{
		"email":    "Bob@Example.com",
		"password": "password123",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp TokenPairResponse
	decodeBody(t, w, &resp)
	assert.NotEmpty(t, resp.Access)
	assert.NotEmpty(t, resp.Refresh)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	mock := setupTestDB(t)

	// Unknown email.
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(userRows())

	wUnknown := performJSON(t, authRouter(), http.MethodPost, "/login", gin.H{
		"email":    "nobody@example.com",
		"password": "password123",
	})

	// Known email, wrong password.
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	require.NoError(t, err)
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(userRows().AddRow(7, time.Now(), time.Now(), nil, "bob", "bob@example.com", string(hash), true))

	wWrong := performJSON(t, authRouter(), http.MethodPost, "/login", gin.H{
		"email":    "bob@example.com",
		"password": "wrong-password",
	})

	assert.Equal(t, http.StatusUnauthorized, wUnknown.Code)
	assert.Equal(t, http.StatusUnauthorized, wWrong.Code)
	assert.JSONEq(t, wUnknown.Body.String(), wWrong.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshToken(t *testing.T) {
	mock := setupTestDB(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(userRows().AddRow(7, time.Now(), time.Now(), nil, "bob", "bob@example.com", string(hash), true))

	router := authRouter()
	wLogin := performJSON(t, router, http.MethodPost, "/login", gin.H{
		"email":    "bob@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, wLogin.Code)

	var pair TokenPairResponse
	decodeBody(t, wLogin, &pair)

	w := performJSON(t, router, http.MethodPost, "/token/refresh", gin.H{"refresh": pair.Refresh})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	decodeBody(t, w, &resp)
	assert.NotEmpty(t, resp["access"])

	// An access token must not be usable as a refresh token.
	wBad := performJSON(t, router, http.MethodPost, "/token/refresh", gin.H{"refresh": pair.Access})
	assert.Equal(t, http.StatusUnauthorized, wBad.Code)
}

func searchRouter() *gin.Engine {
	router := gin.New()
	router.GET("/search", asUser(1), SearchUsers)
	return router
}

func TestSearchByExactEmail(t *testing.T) {
	mock := setupTestDB(t)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE LOWER\(email\) =`).
		WithArgs("b@x.com").
		WillReturnRows(userRows().AddRow(2, time.Now(), time.Now(), nil, "bea", "b@x.com", "hash", true))

	w := performJSON(t, searchRouter(), http.MethodGet, "/search?search=B%40X.com", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var resp []UserResponse
	decodeBody(t, w, &resp)
	require.Len(t, resp, 1)
	assert.Equal(t, "bea", resp[0].Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchBySubstring(t *testing.T) {
	mock := setupTestDB(t)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE \(username ILIKE`).
		WithArgs("%bo%", "%bo%").
		WillReturnRows(userRows().
			AddRow(2, time.Now(), time.Now(), nil, "bob", "bob@example.com", "hash", true).
			AddRow(3, time.Now(), time.Now(), nil, "rambo", "rambo@example.com", "hash", true))

	w := performJSON(t, searchRouter(), http.MethodGet, "/search?search=BO", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var resp []UserResponse
	decodeBody(t, w, &resp)
	assert.Len(t, resp, 2)
	assert.NotContains(t, w.Body.String(), "password")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchEmptyKeywordReturnsAll(t *testing.T) {
	mock := setupTestDB(t)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE \(username ILIKE`).
		WithArgs("%%", "%%").
		WillReturnRows(userRows().
			AddRow(1, time.Now(), time.Now(), nil, "alice", "alice@example.com", "hash", true).
			AddRow(2, time.Now(), time.Now(), nil, "bob", "bob@example.com", "hash", true))

	w := performJSON(t, searchRouter(), http.MethodGet, "/search", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var resp []UserResponse
	decodeBody(t, w, &resp)
	assert.Len(t, resp, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
