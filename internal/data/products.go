package data

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"techfix-hub/internal/kv"
	"techfix-hub/internal/model"
)

func (s *Service) Products() ([]model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadProducts()
}

func (s *Service) Product(id string) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.productLocked(id)
}

func (s *Service) AddProduct(product model.Product) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.loadProducts()
	if err != nil {
		return nil, err
	}

	product.ID = uuid.NewString()
	products = append(products, product)
	if err := s.store.Save(kv.KeyProducts, products); err != nil {
		return nil, err
	}

	s.notes.Publish("New Product Added",
		fmt.Sprintf("%s (%s) has been added", product.Name, product.Category),
		model.NotifyProduct)
	return &product, nil
}

type ProductPatch struct {
	Name        *string
	Description *string
	Price       *int64
	Prices      *map[string]int64
	Category    *string
	Fields      *[]model.CustomField
	Quantities  *[]model.QuantityOption
}

func (s *Service) UpdateProduct(id string, patch ProductPatch) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.loadProducts()
	if err != nil {
		return nil, err
	}

	idx := slices.IndexFunc(products, func(p model.Product) bool { return p.ID == id })
	if idx == -1 {
		return nil, ErrProductNotFound
	}

	p := &products[idx]
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Prices != nil {
		p.Prices = *patch.Prices
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Fields != nil {
		p.Fields = *patch.Fields
	}
	if patch.Quantities != nil {
		p.Quantities = *patch.Quantities
	}

	if err := s.store.Save(kv.KeyProducts, products); err != nil {
		return nil, err
	}

	s.notes.Publish("Product Updated",
		fmt.Sprintf("%s has been updated", p.Name),
		model.NotifyProduct)
	updated := *p
	return &updated, nil
}

func (s *Service) DeleteProduct(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.loadProducts()
	if err != nil {
		return err
	}

	idx := slices.IndexFunc(products, func(p model.Product) bool { return p.ID == id })
	if idx == -1 {
		return ErrProductNotFound
	}
	name := products[idx].Name

	filtered := slices.Delete(products, idx, idx+1)
	if err := s.store.Save(kv.KeyProducts, filtered); err != nil {
		return err
	}

	s.notes.Publish("Product Deleted",
		fmt.Sprintf("%s has been removed", name),
		model.NotifyProduct)
	return nil
}

func (s *Service) productLocked(id string) (*model.Product, error) {
	products, err := s.loadProducts()
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, ErrProductNotFound
}
