package core

import (
	"errors"
	"slices"
	"testing"
)

func TestProductForm_Parse(t *testing.T) {
	form := ProductForm{
		Title:       "  Classic Shirt ",
		Price:       "19.90",
		Description: "Cotton",
		CategoryID:  " 3 ",
		Images:      "https://a.example/1.png, , https://a.example/2.png ,",
	}

	input, err := form.Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if input.Title != "Classic Shirt" {
		t.Errorf("Title = %q", input.Title)
	}
	if input.Price.String() != "19.9" {
		t.Errorf("Price = %s, want 19.9", input.Price)
	}
	if input.CategoryID != 3 {
		t.Errorf("CategoryID = %d, want 3", input.CategoryID)
	}
	if want := []string{"https://a.example/1.png", "https://a.example/2.png"}; !slices.Equal(input.Images, want) {
		t.Errorf("Images = %v, want %v", input.Images, want)
	}
}

func TestProductForm_ParseErrors(t *testing.T) {
	valid := ProductForm{Title: "Shirt", Price: "10", CategoryID: "1"}

	tests := []struct {
		name      string
		mutate    func(f *ProductForm)
		wantField string
		wantMsg   string
	}{
		{"missing title", func(f *ProductForm) { f.Title = "   " }, "title", "is required"},
		{"missing price", func(f *ProductForm) { f.Price = "" }, "price", "is required"},
		{"non-numeric price", func(f *ProductForm) { f.Price = "ten" }, "price", "must be a number"},
		{"two decimal points", func(f *ProductForm) { f.Price = "1.2.3" }, "price", "must be a number"},
		{"missing category", func(f *ProductForm) { f.CategoryID = "" }, "categoryId", "is required"},
		{"fractional category", func(f *ProductForm) { f.CategoryID = "1.5" }, "categoryId", "must be a whole number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := valid
			tt.mutate(&form)

			_, err := form.Parse()

			var fe *FormError
			if !errors.As(err, &fe) {
				t.Fatalf("Parse() error = %v, want *FormError", err)
			}
			if got := fe.Field(tt.wantField); got != tt.wantMsg {
				t.Errorf("Field(%q) = %q, want %q (all: %v)", tt.wantField, got, tt.wantMsg, fe.Fields)
			}
		})
	}
}

func TestProductForm_ParseAcceptsDecimalNotation(t *testing.T) {
	tests := []struct {
		price string
		want  string
	}{
		{".5", "0.5"},
		{"10.", "10"},
		{"1e2", "100"},
		{"-3.25", "-3.25"},
	}

	for _, tt := range tests {
		t.Run(tt.price, func(t *testing.T) {
			input, err := ProductForm{Title: "Shirt", Price: tt.price, CategoryID: "1"}.Parse()
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if got := input.Price.String(); got != tt.want {
				t.Errorf("Price = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestProductForm_ParseReportsEveryField(t *testing.T) {
	_, err := ProductForm{}.Parse()

	var fe *FormError
	if !errors.As(err, &fe) {
		t.Fatalf("Parse() error = %v, want *FormError", err)
	}
	if len(fe.Fields) != 3 {
		t.Errorf("got %d field errors, want 3: %v", len(fe.Fields), fe.Fields)
	}
	if want := "invalid form: title is required; price is required; categoryId is required"; fe.Error() != want {
		t.Errorf("Error() = %q, want %q", fe.Error(), want)
	}
}

func TestProductForm_ParseForCreate(t *testing.T) {
	tests := []struct {
		name        string
		images      string
		placeholder string
		want        []string
	}{
		{"no images uses placeholder", "", "", []string{DefaultPlaceholderImage}},
		{"blank entries only uses placeholder", " , ,", "", []string{DefaultPlaceholderImage}},
		{"custom placeholder", "", "https://cdn.example/none.png", []string{"https://cdn.example/none.png"}},
		{"given images are kept", "https://a.example/x.png", "", []string{"https://a.example/x.png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := ProductForm{Title: "Shirt", Price: "10", CategoryID: "1", Images: tt.images}

			input, err := form.ParseForCreate(tt.placeholder)
			if err != nil {
				t.Fatalf("ParseForCreate() error = %v", err)
			}
			if !slices.Equal(input.Images, tt.want) {
				t.Errorf("Images = %v, want %v", input.Images, tt.want)
			}
		})
	}
}

func TestProductForm_ParseKeepsEmptyImagesForEdit(t *testing.T) {
	input, err := ProductForm{Title: "Shirt", Price: "10", CategoryID: "1"}.Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if input.Images == nil || len(input.Images) != 0 {
		t.Errorf("Images = %#v, want empty non-nil slice", input.Images)
	}
}

func TestFormFromProduct(t *testing.T) {
	p := product(7, "Shirt", "12.50")
	p.Images = []string{"https://a.example/1.png", "https://a.example/2.png"}

	form := FormFromProduct(p)

	if form.Title != "Shirt" || form.Price != "12.5" || form.CategoryID != "1" {
		t.Errorf("FormFromProduct() = %+v", form)
	}
	if form.Images != "https://a.example/1.png, https://a.example/2.png" {
		t.Errorf("Images = %q", form.Images)
	}

	// Round trip back through Parse yields the same values.
	input, err := form.Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !input.Price.Equal(p.Price) || !slices.Equal(input.Images, p.Images) {
		t.Errorf("round trip = %+v", input)
	}
}
