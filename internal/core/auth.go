package core

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/argon2"

	"github.com/meera/certportal/internal/model"
	"github.com/meera/certportal/internal/platform"
)

const (
	argonTime    = 3
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
)

type AuthService struct {
	db DB
}

func NewAuthService(db DB) *AuthService {
	return &AuthService{db: db}
}

// RegisterParams carries the profile collected at registration.
type RegisterParams struct {
	Username   string
	Password   string
	FullName   string
	Email      string
	Mobile     string
	NationalID string
	Address    string
}

// Register creates a new user with an argon2id password hash.
func (s *AuthService) Register(ctx context.Context, params RegisterParams) (*model.User, error) {
	hash, err := hashArgon2(params.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := model.User{
		ID:           platform.NewID(),
		Username:     params.Username,
		PasswordHash: hash,
		FullName:     params.FullName,
		Email:        params.Email,
		Mobile:       params.Mobile,
		NationalID:   params.NationalID,
		Address:      params.Address,
		CreatedAt:    time.Now(),
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO users (id, username, password_hash, full_name, email, mobile, national_id, address, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		user.ID, user.Username, user.PasswordHash, user.FullName, user.Email,
		user.Mobile, user.NationalID, user.Address, user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("register %s: %w", params.Username, ErrUsernameTaken)
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return &user, nil
}

// Login authenticates a user by username and password and opens a session.
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.User, *model.Session, error) {
	var u model.User
	err := s.db.QueryRow(ctx,
		`SELECT id, username, password_hash, full_name, email, mobile, national_id, address, created_at
		 FROM users WHERE username = $1`, username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.FullName, &u.Email,
		&u.Mobile, &u.NationalID, &u.Address, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("get user by username: %w", err)
	}

	if !verifyArgon2(password, u.PasswordHash) {
		return nil, nil, ErrInvalidCredentials
	}

	session, err := s.CreateSession(ctx, u.ID)
	if err != nil {
		return nil, nil, err
	}

	return &u, session, nil
}

// CreateSession opens a new session for the user with an absolute TTL.
func (s *AuthService) CreateSession(ctx context.Context, userID string) (*model.Session, error) {
	now := time.Now()
	session := model.Session{
		ID:        platform.NewSessionToken(),
		UserID:    userID,
		ExpiresAt: now.Add(model.SessionTTL),
		CreatedAt: now,
	}

	_, err := s.db.Exec(ctx,
		`INSERT INTO sessions (id, user_id, expires_at, created_at) VALUES ($1, $2, $3, $4)`,
		session.ID, session.UserID, session.ExpiresAt, session.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}

	return &session, nil
}

// GetSessionUser resolves a session token to its user. Expired or unknown
// tokens return ErrNotFound.
func (s *AuthService) GetSessionUser(ctx context.Context, sessionID string) (*model.User, error) {
	var u model.User
	err := s.db.QueryRow(ctx,
		`SELECT u.id, u.username, u.password_hash, u.full_name, u.email, u.mobile, u.national_id, u.address, u.created_at
		 FROM sessions s JOIN users u ON u.id = s.user_id
		 WHERE s.id = $1 AND s.expires_at > now()`, sessionID,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.FullName, &u.Email,
		&u.Mobile, &u.NationalID, &u.Address, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("session: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("get session user: %w", err)
	}
	return &u, nil
}

// Logout deletes the session. Unknown tokens are a no-op.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// hashArgon2 hashes a password into PHC format:
// $argon2id$v=19$m=65536,t=3,p=4$<salt>$<hash>
func hashArgon2(password string) (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

// verifyArgon2 checks a password against a PHC-format argon2id hash.
func verifyArgon2(password, hash string) bool {
	parts := strings.Split(hash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false
	}

	paramParts := strings.Split(parts[3], ",")
	if len(paramParts) != 3 {
		return false
	}

	memory, err := parseParam(paramParts[0], "m=")
	if err != nil {
		return false
	}
	iterations, err := parseParam(paramParts[1], "t=")
	if err != nil {
		return false
	}
	parallelism, err := parseParam(paramParts[2], "p=")
	if err != nil {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	expectedHash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false
	}

	computed := argon2.IDKey([]byte(password), salt, uint32(iterations), uint32(memory), uint8(parallelism), uint32(len(expectedHash)))
	return subtle.ConstantTimeCompare(computed, expectedHash) == 1
}

func parseParam(s, prefix string) (int, error) {
	if !strings.HasPrefix(s, prefix) {
		return 0, fmt.Errorf("missing prefix %s", prefix)
	}
	return strconv.Atoi(s[len(prefix):])
}
