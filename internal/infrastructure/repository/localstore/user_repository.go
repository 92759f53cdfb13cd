package localstore

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/riskibarqy/blueprint-fantasy/internal/domain/user"
	"github.com/riskibarqy/blueprint-fantasy/internal/platform/collection"
	"github.com/riskibarqy/blueprint-fantasy/internal/platform/kv"
	"github.com/riskibarqy/blueprint-fantasy/internal/platform/logging"
)

type userRecord struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash,omitempty"`
}

func (r userRecord) toDomain() user.User {
	return user.User{ID: r.ID, Name: r.Name, Email: r.Email, Username: r.Username}
}

func userRecordFromDomain(u user.User) userRecord {
	return userRecord{ID: u.ID, Name: u.Name, Email: u.Email, Username: u.Username}
}

// migrateLegacyUsers flattens {user, password} rows and hashes the stored
// plain-text password. UserRepository writes the result back on first read.
func migrateLegacyUsers(rows []map[string]any) ([]map[string]any, error) {
	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		if row == nil {
			continue
		}
		nested, ok := row["user"].(map[string]any)
		if !ok {
			out = append(out, row)
			continue
		}

		flat := make(map[string]any, len(nested)+1)
		for k, v := range nested {
			flat[k] = v
		}
		if password, ok := row["password"].(string); ok && password != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				return nil, errors.Wrap(err, "hash legacy password")
			}
			flat["passwordHash"] = string(hash)
		}
		out = append(out, flat)
	}
	return out, nil
}

type UserRepository struct {
	users *collection.Collection[userRecord]
}

func NewUserRepository(store kv.Store, logger *logging.Logger) *UserRepository {
	return &UserRepository{
		users: newCollection(store, KeyUsers, migrateLegacyUsers, func(r userRecord) string { return r.ID }, logger),
	}
}

func (r *UserRepository) find(ctx context.Context, match func(userRecord) bool) (userRecord, bool) {
	for _, rec := range r.users.Upgrade(ctx) {
		if match(rec) {
			return rec, true
		}
	}
	return userRecord{}, false
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.Account, bool, error) {
	email = strings.TrimSpace(email)
	rec, ok := r.find(ctx, func(rec userRecord) bool { return strings.EqualFold(rec.Email, email) })
	if !ok {
		return user.Account{}, false, nil
	}
	return user.Account{User: rec.toDomain(), PasswordHash: []byte(rec.PasswordHash)}, true, nil
}

func (r *UserRepository) GetByID(ctx context.Context, userID string) (user.User, bool, error) {
	rec, ok := r.find(ctx, func(rec userRecord) bool { return rec.ID == userID })
	if !ok {
		return user.User{}, false, nil
	}
	return rec.toDomain(), true, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (user.User, bool, error) {
	username = strings.TrimSpace(username)
	rec, ok := r.find(ctx, func(rec userRecord) bool { return strings.EqualFold(rec.Username, username) })
	if !ok {
		return user.User{}, false, nil
	}
	return rec.toDomain(), true, nil
}

func (r *UserRepository) Create(ctx context.Context, account user.Account) error {
	rec := userRecordFromDomain(account.User)
	rec.PasswordHash = string(account.PasswordHash)
	if err := r.users.Append(ctx, rec); err != nil {
		return errors.Wrap(err, "create user")
	}
	return nil
}

// SessionRepository keeps at most one signed-in user.
type SessionRepository struct {
	session *collection.Collection[userRecord]
}

func NewSessionRepository(store kv.Store, logger *logging.Logger) *SessionRepository {
	return &SessionRepository{
		session: collection.New(store, collection.Options[userRecord]{
			Key:          KeySession,
			Version:      schemaVersion,
			Migrations:   []collection.Migration{collection.Identity},
			IDOf:         func(r userRecord) string { return r.ID },
			LegacyObject: true,
			Logger:       logger,
		}),
	}
}

func (r *SessionRepository) Current(ctx context.Context) (user.User, bool, error) {
	records := r.session.List(ctx)
	if len(records) == 0 || records[0].ID == "" {
		return user.User{}, false, nil
	}
	return records[0].toDomain(), true, nil
}

func (r *SessionRepository) Set(ctx context.Context, u user.User) error {
	if err := r.session.Replace(ctx, []userRecord{userRecordFromDomain(u)}); err != nil {
		return errors.Wrap(err, "set session")
	}
	return nil
}

func (r *SessionRepository) Clear(ctx context.Context) error {
	if err := r.session.Clear(ctx); err != nil {
		return errors.Wrap(err, "clear session")
	}
	return nil
}
