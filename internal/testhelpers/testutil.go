package testhelpers

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pageza/nutrichat/backend/internal/models"
)

// TestPassword is the plain password of users made by CreateTestUser
const TestPassword = "testpassword123"

// TokenIssuer signs tokens for a user
type TokenIssuer interface {
	GenerateToken(userID uuid.UUID, username string) (string, error)
}

// CreateTestUser creates a user with a unique email and TestPassword
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	require.NoError(t, err)

	id := uuid.New()
	user := &models.User{
		ID:           id,
		Username:     "user_" + id.String()[:8],
		Email:        fmt.Sprintf("testuser+%s@example.com", id),
		PasswordHash: string(hash),
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateTestUserAndToken creates a user and signs a token for it
func CreateTestUserAndToken(t *testing.T, db *gorm.DB, issuer TokenIssuer) (*models.User, string) {
	t.Helper()
	user := CreateTestUser(t, db)
	token, err := issuer.GenerateToken(user.ID, user.Username)
	require.NoError(t, err)
	return user, token
}

// JSONMarshal is a helper function to marshal JSON for testing
func JSONMarshal(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Failed to marshal JSON: %v", err)
	}
	return data
}
