package main

import "github.com/google/uuid"

// Pet is the body schema for creating and replacing pets.
type Pet struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name" validate:"required"`
	Category  string   `json:"category" validate:"omitempty,oneof=dog cat bird fish"`
	PhotoURLs []string `json:"photoUrls"`
	Status    string   `json:"status" validate:"omitempty,oneof=available pending sold"`
}

// defaultPet is the Pet prototype; its field values are the defaults applied
// when a request omits the corresponding keys.
func defaultPet() *Pet {
	return &Pet{Status: "available"}
}

// FindByStatusQuery is the query schema for pet listing. Repeated status
// keys arrive as a list; a single key as one element.
type FindByStatusQuery struct {
	Status []string `json:"status" validate:"omitempty,dive,oneof=available pending sold"`
	Limit  int      `json:"limit" validate:"omitempty,gte=1,lte=100"`
}

func defaultFindByStatusQuery() *FindByStatusQuery {
	return &FindByStatusQuery{Limit: 20}
}

// PetForm is the form schema for updating a pet via an HTML form post.
type PetForm struct {
	Name   string `json:"name" validate:"required"`
	Status string `json:"status" validate:"omitempty,oneof=available pending sold"`
}

// OrderPath is an explicit path schema with a UUID segment.
type OrderPath struct {
	OrderID uuid.UUID `json:"orderId" validate:"required"`
}
