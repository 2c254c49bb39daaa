package model

// Kitten represents a kitten row owned by a user.
type Kitten struct {
	ID      int64
	OwnerID int64
	Name    string
	Color   string
	Age     int
}

// CreateKittenRequest is the body of POST /kittens.
type CreateKittenRequest struct {
	Name  string `json:"name" validate:"required,max=255"`
	Color string `json:"color" validate:"max=64"`
	Age   int    `json:"age" validate:"gte=0,lte=100"`
}

// KittenResponse is the public view of a kitten. Field order follows the
// documented response shapes: get returns name, color, age.
type KittenResponse struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Age   int    `json:"age"`
}

// CreatedKittenResponse is returned by POST /kittens as name, age, color.
type CreatedKittenResponse struct {
	Name  string `json:"name"`
	Age   int    `json:"age"`
	Color string `json:"color"`
}

// ToResponse converts a kitten row to its public view.
func (k Kitten) ToResponse() KittenResponse {
	return KittenResponse{Name: k.Name, Color: k.Color, Age: k.Age}
}
