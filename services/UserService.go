package services

import (
	"time"

	"github.com/Doneddie/kampala-closet/models"
	"github.com/Doneddie/kampala-closet/repository"

	"go.uber.org/zap"
)

type UserService struct {
	ur repository.UserRepository
	sr repository.SessionRepository
}

func NewUserService(uRepo repository.UserRepository, sRepo repository.SessionRepository) UserService {
	return UserService{
		ur: uRepo,
		sr: sRepo,
	}
}

func (us *UserService) SignupRequest(creds models.Credentials) (uModel models.User_db, err error) {
	var hashedPassword string
	uModel.Email = creds.Email
	uModel.Password = creds.Password
	if creds.Role == "" {
		creds.Role = "user"
	}
	uModel.Role = creds.Role

	if uModel.Email == "" || uModel.Password == "" {
		zap.S().Errorf("SignupRequest: email and password are required")
		err = models.ErrNotAllowed
		return
	}
	var ex bool
	_, ex, err = us.ur.GetUserByEmail(uModel.Email)
	if err != nil {
		return
	}
	if ex {
		zap.S().Errorf("SignupRequest: user already exists")
		err = models.ErrNotAllowed
		return
	}
	hashedPassword, err = us.ur.EncryptPassword(uModel.Password)
	if err != nil {
		return
	}
	uModel.Password = hashedPassword
	uModel.Id, err = us.ur.AddNewUser(uModel)
	if err != nil {
		return
	}
	return
}

func (us *UserService) SigninRequest(email, password string) (uModel models.User_db, sessionId string, err error) {
	var ex bool
	uModel, ex, err = us.ur.GetUserByEmail(email)
	if err != nil {
		return
	}
	if !ex {
		zap.S().Errorf("SigninRequest: user not found")
		err = models.ErrNotAllowed
		return
	}
	if !us.ur.VerifyPassword(uModel.Password, password) {
		zap.S().Errorf("SigninRequest: wrong password")
		err = models.ErrUnautorized
		return
	}
	sessionId, err = us.sr.CreateSession(uModel.Email, uModel.Role)
	return
}

func (us *UserService) RefreshRequest(sessionId string) (err error) {
	err = us.sr.RefreshSession(sessionId, 30*time.Minute)
	return
}

func (us *UserService) CheckAccess(sessionId string) (access bool, err error) {
	_, role, exists, e := us.sr.GetUserSessionInfo(sessionId)
	if e != nil {
		err = e
		return
	}
	if !exists || role != "manager" {
		return
	}
	access = true
	return
}

func (us *UserService) CheckAuth(sessionId string) (bool, error) {
	autorized, err := us.sr.CheckSession(sessionId)
	return autorized, err
}

func (us *UserService) DeleteSessionRequest(sessionId string) (err error) {
	err = us.sr.DeleteSession(sessionId)
	return
}

// CurrentUser resolves the session to a user; a dead or unknown session is
// reported as "no user", never as an error.
func (us *UserService) CurrentUser(sessionId string) (user models.UserData, ex bool) {
	email, _, exist, err := us.sr.GetUserSessionInfo(sessionId)
	if err != nil || !exist {
		return
	}
	uModel, exist, err := us.ur.GetUserByEmail(email)
	if err != nil || !exist {
		return
	}
	user = models.UserData{
		Id:    uModel.Id,
		Email: uModel.Email,
		Role:  uModel.Role,
	}
	ex = true
	return
}

func (us *UserService) ChangePasswordRequest(sessionId string, oldPass string, newPass string) (err error) {
	email, _, _, e := us.sr.GetUserSessionInfo(sessionId)
	if e != nil {
		err = e
		return
	}

	uModel, _, err := us.ur.GetUserByEmail(email)
	if err != nil {
		return
	}

	if !us.ur.VerifyPassword(uModel.Password, oldPass) {
		err = models.ErrBadRequest
		return
	}
	newPass, err = us.ur.EncryptPassword(newPass)
	if err != nil {
		return
	}
	err = us.ur.UpdatePassword(email, newPass)
	if err != nil {
		return
	}

	err = us.sr.DeleteSession(sessionId)
	return
}
