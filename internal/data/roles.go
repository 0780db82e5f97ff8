package data

import (
	"slices"

	"techfix-hub/internal/kv"
	"techfix-hub/internal/model"
)

func (s *Service) AvailableRoles() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rolesLocked()
}

func (s *Service) AddRole(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	roles, err := s.rolesLocked()
	if err != nil {
		return err
	}
	if slices.Contains(roles, name) {
		return ErrRoleExists
	}
	return s.store.Save(kv.KeyRoles, append(roles, name))
}

// DeleteRole отклоняет удаление роли, на которую ссылается хотя бы один
// пользователь.
func (s *Service) DeleteRole(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	roles, err := s.rolesLocked()
	if err != nil {
		return err
	}
	if !slices.Contains(roles, name) {
		return ErrUnknownRole
	}

	users, err := s.loadUsers()
	if err != nil {
		return err
	}
	for _, u := range users {
		if u.Role == name {
			return ErrRoleInUse
		}
	}

	filtered := slices.DeleteFunc(roles, func(r string) bool { return r == name })
	return s.store.Save(kv.KeyRoles, filtered)
}

func (s *Service) rolesLocked() ([]string, error) {
	var roles []string
	ok, err := s.store.Load(kv.KeyRoles, &roles)
	if err != nil {
		return nil, err
	}
	if !ok {
		return model.DefaultRoles(), nil
	}
	return roles, nil
}

func (s *Service) checkRoleLocked(name string) error {
	roles, err := s.rolesLocked()
	if err != nil {
		return err
	}
	if !slices.Contains(roles, name) {
		return ErrUnknownRole
	}
	return nil
}
