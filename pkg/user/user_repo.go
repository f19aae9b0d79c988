package user

import (
	"context"
	"database/sql"
	"errors"

	log "github.com/sirupsen/logrus"
)

type Repo interface {
	CreateUser(ctx context.Context, user User) (int, error)
	GetUser(ctx context.Context, id int) (User, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
	UpdateUser(ctx context.Context, userId int, user User) (User, error)
}

type UserRepoImpl struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepoImpl {
	return &UserRepoImpl{db: db}
}

func (u *UserRepoImpl) CreateUser(ctx context.Context, user User) (int, error) {
	query := `INSERT INTO users (uid, username, display_name, photo_url) VALUES ($1, $2, $3, $4) RETURNING id`
	var id int
	err := u.db.QueryRowContext(ctx, query, user.Uid, user.Username, user.DisplayName, user.PhotoUrl).Scan(&id)
	if err != nil {
		log.Errorf("failed to create user: %v", err)
		return 0, err
	}
	return id, nil
}

func (u *UserRepoImpl) GetUser(ctx context.Context, id int) (User, error) {
	query := `SELECT id, uid, username, display_name, photo_url FROM users WHERE id = $1`
	var user User
	err := u.db.QueryRowContext(ctx, query, id).
		Scan(&user.Id, &user.Uid, &user.Username, &user.DisplayName, &user.PhotoUrl)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	} else if err != nil {
		log.Errorf("failed to get user: %v", err)
		return User{}, err
	}
	return user, nil
}

func (u *UserRepoImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	query := `SELECT id, uid, username, display_name, photo_url FROM users WHERE uid = $1`
	var user User
	err := u.db.QueryRowContext(ctx, query, uid).
		Scan(&user.Id, &user.Uid, &user.Username, &user.DisplayName, &user.PhotoUrl)
	if errors.Is(err, sql.ErrNoRows) {
		log.Infof("user with uid %s not found", uid)
		return User{}, ErrUserNotFound
	} else if err != nil {
		log.Errorf("failed to get user: %v", err)
		return User{}, err
	}
	return user, nil
}

func (u *UserRepoImpl) UpdateUser(ctx context.Context, userId int, user User) (User, error) {
	query := `UPDATE users SET username = $1, display_name = $2, photo_url = $3 WHERE id = $4`
	result, err := u.db.ExecContext(ctx, query, user.Username, user.DisplayName, user.PhotoUrl, userId)
	if err != nil {
		return User{}, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return User{}, err
	}
	if rowsAffected == 0 {
		log.Info("no rows affected updating user")
		return User{}, ErrUserNotFound
	}
	user.Id = userId
	return user, nil
}
