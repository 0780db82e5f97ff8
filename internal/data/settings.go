package data

import (
	"techfix-hub/internal/kv"
	"techfix-hub/internal/model"
)

func (s *Service) Settings() (model.AppSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var settings model.AppSettings
	ok, err := s.store.Load(kv.KeyAppSettings, &settings)
	if err != nil {
		return model.AppSettings{}, err
	}
	if !ok {
		return model.DefaultSettings(), nil
	}
	return settings, nil
}

func (s *Service) SaveSettings(settings model.AppSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Save(kv.KeyAppSettings, settings)
}
