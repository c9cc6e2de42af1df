package repository

import (
	"database/sql"
	"errors"

	"github.com/Doneddie/kampala-closet/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type UserRepository interface {
	GetUserByEmail(email string) (models.User_db, bool, error)
	EncryptPassword(userPass string) (hashedPassword string, err error)
	VerifyPassword(hashedPassword string, sentPassword string) bool
	UpdatePassword(email string, newPassword string) error
	AddNewUser(uModel models.User_db) (newUserId string, err error)
}

type UserRepo struct {
	db *sql.DB
}

func NewUserRepository(conn *sql.DB) (UserRepository, error) {
	if conn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	err := conn.Ping()
	if err != nil {
		return nil, err
	}
	return &UserRepo{
		db: conn,
	}, nil
}

func (u *UserRepo) GetUserByEmail(email string) (uModel models.User_db, exists bool, err error) {
	row := u.db.QueryRow("SELECT Id, Email, Password, Role FROM Users WHERE Email = $1", email)
	err = row.Scan(&uModel.Id, &uModel.Email, &uModel.Password, &uModel.Role)
	if err != nil {
		if err == sql.ErrNoRows {
			err = nil
			return
		}
		zap.S().Errorf("GetUserByEmail: %v", err)
		err = models.ErrServerError
		return
	}
	exists = true
	return
}

func (u *UserRepo) EncryptPassword(userPass string) (hashedPassword string, err error) {
	var password []byte
	password, err = bcrypt.GenerateFromPassword([]byte(userPass), 8)
	if err != nil {
		zap.S().Errorf("EncryptPassword: %v", err)
		err = models.ErrServerError
		return
	}
	hashedPassword = string(password)
	return
}

func (u *UserRepo) VerifyPassword(hashedPassword string, sentPassword string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(sentPassword))
	if err != nil {
		zap.S().Errorf("VerifyPassword: %v", err)
	}
	return err == nil
}

func (u *UserRepo) AddNewUser(uModel models.User_db) (newUserId string, err error) {
	newUserId = uuid.NewString()
	_, err = u.db.Exec("INSERT INTO Users (Id, Email, Password, Role) VALUES ($1, $2, $3, $4)",
		newUserId, uModel.Email, uModel.Password, uModel.Role)
	if err != nil {
		zap.S().Errorf("AddNewUser: %v", err)
		err = models.ErrServerError
	}
	return
}

func (u *UserRepo) UpdatePassword(email string, newPassword string) error {
	_, err := u.db.Exec("UPDATE Users SET Password = $1 WHERE Email = $2", newPassword, email)
	if err != nil {
		zap.S().Errorf("UpdatePassword: %v", err)
		err = models.ErrServerError
	}
	return err
}
