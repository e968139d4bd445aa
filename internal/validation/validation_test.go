package validation

import "testing"

func TestOrderRequestValidation(t *testing.T) {
	v := New()

	valid := OrderRequest{
		CustomerID: 1,
		ProductID:  "abbey-road-vinilo",
		Quantity:   2,
		Status:     "CREATED",
	}
	if err := v.Struct(valid); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	cases := []struct {
		name string
		req  OrderRequest
	}{
		{"missing customer", OrderRequest{ProductID: "x", Quantity: 1, Status: "CREATED"}},
		{"missing product", OrderRequest{CustomerID: 1, Quantity: 1, Status: "CREATED"}},
		{"zero quantity", OrderRequest{CustomerID: 1, ProductID: "x", Status: "CREATED"}},
		{"negative quantity", OrderRequest{CustomerID: 1, ProductID: "x", Quantity: -2, Status: "CREATED"}},
		{"missing status", OrderRequest{CustomerID: 1, ProductID: "x", Quantity: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := v.Struct(tc.req); err == nil {
				t.Error("invalid request accepted")
			}
		})
	}
}

func TestCartItemRequestValidation(t *testing.T) {
	v := New()

	if err := v.Struct(AddCartItemRequest{ProductID: "abbey-road-vinilo", Quantity: 1}); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}
	if err := v.Struct(AddCartItemRequest{Quantity: 1}); err == nil {
		t.Error("missing product id accepted")
	}
	if err := v.Struct(AddCartItemRequest{ProductID: "x"}); err == nil {
		t.Error("missing quantity accepted")
	}
	if err := v.Struct(UpdateCartItemRequest{}); err == nil {
		t.Error("missing quantity accepted")
	}
}

func TestUserRequestValidation(t *testing.T) {
	v := New()

	valid := UserRequest{
		RUT:       "11111111-1",
		Email:     "juan@example.com",
		FirstName: "Juan",
		LastName:  "Pérez",
		Age:       30,
		Role:      "USER",
	}
	if err := v.Struct(valid); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	bad := valid
	bad.Email = "not-an-email"
	if err := v.Struct(bad); err == nil {
		t.Error("malformed email accepted")
	}

	bad = valid
	bad.Role = "SUPERUSER"
	if err := v.Struct(bad); err == nil {
		t.Error("unknown role accepted")
	}
}

func TestProductRequestValidation(t *testing.T) {
	v := New()

	valid := ProductRequest{
		ProductID:  "abbey-road-vinilo",
		Title:      "Abbey Road",
		ArtistID:   1,
		LabelID:    1,
		FormatName: "Vinilo",
		FormatType: "physical",
		Price:      20000,
	}
	if err := v.Struct(valid); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	bad := valid
	bad.Price = 0
	if err := v.Struct(bad); err == nil {
		t.Error("zero price accepted")
	}

	bad = valid
	bad.AvgRating = 5.5
	if err := v.Struct(bad); err == nil {
		t.Error("rating above 5 accepted")
	}
}
