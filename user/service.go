package user

import (
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"

	"github.com/sawara-dev/ashiato/apperr"
	"github.com/sawara-dev/ashiato/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service looks up users and verifies credentials against the legacy
// salted SHA-512 passhash scheme the users/salts schema carries.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// New creates a user Service.
func New(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// HashPassword computes the legacy passhash: hex(SHA-512(password + salt)).
func HashPassword(password, salt string) string {
	sum := sha512.Sum512([]byte(password + salt))
	return hex.EncodeToString(sum[:])
}

// Get returns the user with the given id.
func (s *Service) Get(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	err := s.db.WithContext(ctx).First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("user not found")
	}
	if err != nil {
		return nil, apperr.Unavailable("user lookup failed", err)
	}
	return &u, nil
}

// ByAccountName returns the user with the given account name.
func (s *Service) ByAccountName(ctx context.Context, accountName string) (*model.User, error) {
	var u model.User
	err := s.db.WithContext(ctx).Where("account_name = ?", accountName).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("user not found")
	}
	if err != nil {
		return nil, apperr.Unavailable("user lookup failed", err)
	}
	return &u, nil
}

// Authenticate verifies email and password and returns the matching user.
// Any mismatch, including an unknown email, reads as an authentication
// failure; callers cannot distinguish the two.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	var u model.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Authentication("invalid email or password")
	}
	if err != nil {
		return nil, apperr.Unavailable("user lookup failed", err)
	}

	var salt model.Salt
	err = s.db.WithContext(ctx).Where("user_id = ?", u.ID).First(&salt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Authentication("invalid email or password")
	}
	if err != nil {
		return nil, apperr.Unavailable("salt lookup failed", err)
	}

	computed := HashPassword(password, salt.Salt)
	if subtle.ConstantTimeCompare([]byte(computed), []byte(u.Passhash)) != 1 {
		return nil, apperr.Authentication("invalid email or password")
	}
	return &u, nil
}

// Profile returns the extended profile for userID, or an empty profile if
// none has been saved yet.
func (s *Service) Profile(ctx context.Context, userID int64) (*model.Profile, error) {
	var p model.Profile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &model.Profile{UserID: userID}, nil
	}
	if err != nil {
		return nil, apperr.Unavailable("profile lookup failed", err)
	}
	return &p, nil
}

// ProfileUpdate carries the editable profile fields.
type ProfileUpdate struct {
	FirstName string
	LastName  string
	Sex       string
	Birthday  string // YYYY-MM-DD, empty to leave unset
	Pref      string
}

// UpsertProfile creates or updates the profile row for userID.
func (s *Service) UpsertProfile(ctx context.Context, userID int64, upd ProfileUpdate) error {
	p := model.Profile{
		UserID:    userID,
		FirstName: upd.FirstName,
		LastName:  upd.LastName,
		Sex:       upd.Sex,
		Pref:      upd.Pref,
	}
	if upd.Birthday != "" {
		bd, err := parseDate(upd.Birthday)
		if err != nil {
			return err
		}
		p.Birthday = bd
	}
	err := s.db.WithContext(ctx).Save(&p).Error
	if err != nil {
		return apperr.Unavailable("profile write failed", err)
	}
	return nil
}
