package user

import "errors"

type User struct {
	Id          int
	Uid         string
	Username    string
	DisplayName string
	PhotoUrl    string
}

var ErrUserNotFound = errors.New("user not found")
var ErrUserDataInvalid = errors.New("user data invalid")
