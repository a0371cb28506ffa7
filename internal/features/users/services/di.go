package users_services

import (
	users_repositories "picktask-backend/internal/features/users/repositories"
)

var userService = &UserService{
	users_repositories.GetUserRepository(),
	nil,
	nil,
}

func GetUserService() *UserService {
	return userService
}
