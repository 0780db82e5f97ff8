package data

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"techfix-hub/internal/kv"
	"techfix-hub/internal/model"
)

func (s *Service) Users() ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadUsers()
}

func (s *Service) User(id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userLocked(id)
}

func (s *Service) UserByEmail(email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}
	return nil, ErrUserNotFound
}

// AddUser назначает идентификатор, добавляет пользователя и публикует
// уведомление о регистрации. Роль должна существовать в списке ролей.
func (s *Service) AddUser(user model.User) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkRoleLocked(user.Role); err != nil {
		return nil, err
	}

	users, err := s.loadUsers()
	if err != nil {
		return nil, err
	}

	user.ID = uuid.NewString()
	users = append(users, user)
	if err := s.store.Save(kv.KeyUsers, users); err != nil {
		return nil, err
	}

	s.notes.Publish("New User Registration",
		fmt.Sprintf("%s has registered as a %s", user.Name, user.Role),
		model.NotifyUser)
	return &user, nil
}

// UserPatch — частичное обновление: nil-поля не трогаются.
type UserPatch struct {
	Name         *string
	Email        *string
	Role         *string
	Credits      *int64
	PasswordHash *string
	ProfileImage *string
	Bio          *string
	Phone        *string
	Location     *string
}

func (s *Service) UpdateUser(id string, patch UserPatch) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if patch.Role != nil {
		if err := s.checkRoleLocked(*patch.Role); err != nil {
			return nil, err
		}
	}

	users, err := s.loadUsers()
	if err != nil {
		return nil, err
	}

	idx := slices.IndexFunc(users, func(u model.User) bool { return u.ID == id })
	if idx == -1 {
		return nil, ErrUserNotFound
	}

	u := &users[idx]
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.Role != nil {
		u.Role = *patch.Role
	}
	if patch.Credits != nil {
		u.Credits = *patch.Credits
	}
	if patch.PasswordHash != nil {
		u.PasswordHash = *patch.PasswordHash
	}
	if patch.ProfileImage != nil {
		u.ProfileImage = *patch.ProfileImage
	}
	if patch.Bio != nil {
		u.Bio = *patch.Bio
	}
	if patch.Phone != nil {
		u.Phone = *patch.Phone
	}
	if patch.Location != nil {
		u.Location = *patch.Location
	}

	if err := s.store.Save(kv.KeyUsers, users); err != nil {
		return nil, err
	}
	updated := *u
	return &updated, nil
}

func (s *Service) DeleteUser(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers()
	if err != nil {
		return err
	}

	filtered := slices.DeleteFunc(users, func(u model.User) bool { return u.ID == id })
	if len(filtered) == len(users) {
		return ErrUserNotFound
	}
	return s.store.Save(kv.KeyUsers, filtered)
}

// AddCredits изменяет баланс на amount; отрицательное значение — списание.
func (s *Service) AddCredits(userID string, amount int64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addCreditsLocked(userID, amount)
}

func (s *Service) userLocked(id string) (*model.User, error) {
	users, err := s.loadUsers()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, ErrUserNotFound
}

func (s *Service) addCreditsLocked(userID string, amount int64) (*model.User, error) {
	users, err := s.loadUsers()
	if err != nil {
		return nil, err
	}

	idx := slices.IndexFunc(users, func(u model.User) bool { return u.ID == userID })
	if idx == -1 {
		return nil, ErrUserNotFound
	}

	users[idx].Credits += amount
	if err := s.store.Save(kv.KeyUsers, users); err != nil {
		return nil, err
	}
	updated := users[idx]
	return &updated, nil
}
